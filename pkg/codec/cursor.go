package codec

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Cursor reads little-endian values from a byte slice. Every read checks the
// remaining length first and only advances on success, so the offset never
// passes the end of the buffer.
type Cursor struct {
	buf []byte
	off int
}

// NewCursor returns a cursor positioned at the start of buf
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Offset returns the number of bytes consumed so far
func (c *Cursor) Offset() int {
	return c.off
}

// Remaining returns the number of unread bytes
func (c *Cursor) Remaining() int {
	return len(c.buf) - c.off
}

// Done reports whether the whole buffer has been consumed
func (c *Cursor) Done() bool {
	return c.off == len(c.buf)
}

func (c *Cursor) take(n int) ([]byte, error) {
	if n < 0 || c.Remaining() < n {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrTruncatedInput, n, c.off, c.Remaining())
	}
	b := c.buf[c.off : c.off+n]
	c.off += n
	return b, nil
}

func (c *Cursor) Uint8() (uint8, error) {
	b, err := c.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *Cursor) Int8() (int8, error) {
	v, err := c.Uint8()
	return int8(v), err
}

func (c *Cursor) Uint16() (uint16, error) {
	b, err := c.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (c *Cursor) Uint32() (uint32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (c *Cursor) Int32() (int32, error) {
	v, err := c.Uint32()
	return int32(v), err
}

func (c *Cursor) Float32() (float32, error) {
	v, err := c.Uint32()
	return math.Float32frombits(v), err
}

// CString reads a NUL-terminated string. The terminator is consumed but not
// returned. Each byte is one character code, so bytes above 0x7f become the
// matching Latin-1 rune.
func (c *Cursor) CString() (string, error) {
	rest := c.buf[c.off:]
	end := -1
	ascii := true
	for i, b := range rest {
		if b == 0 {
			end = i
			break
		}
		if b >= 0x80 {
			ascii = false
		}
	}
	if end < 0 {
		return "", fmt.Errorf("%w: unterminated string at offset %d", ErrTruncatedInput, c.off)
	}
	raw := rest[:end]
	c.off += end + 1
	if ascii {
		return string(raw), nil
	}
	runes := make([]rune, len(raw))
	for i, b := range raw {
		runes[i] = rune(b)
	}
	return string(runes), nil
}
