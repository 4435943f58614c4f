package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"sort"
)

// MaxArrayLen is the largest element count a counted array can carry
const MaxArrayLen = math.MaxUint16

// Encoder builds binary databases record by record. The first error is kept
// and returned by Bytes; later calls are ignored.
type Encoder struct {
	buf bytes.Buffer
	err error
}

// NewEncoder returns an empty encoder
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Bytes returns the encoded database or the first error encountered
func (e *Encoder) Bytes() ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.buf.Bytes(), nil
}

// Len returns the number of bytes written so far
func (e *Encoder) Len() int {
	return e.buf.Len()
}

func (e *Encoder) header(t Type, id int32) {
	e.buf.WriteByte(byte(t))
	e.u32(uint32(id))
}

func (e *Encoder) u16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	e.buf.Write(b[:])
}

func (e *Encoder) u32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	e.buf.Write(b[:])
}

func (e *Encoder) count(n int) bool {
	if n > MaxArrayLen {
		e.err = fmt.Errorf("counted array of %d elements exceeds %d", n, MaxArrayLen)
		return false
	}
	e.u16(uint16(n))
	return true
}

// cstring writes s as single-byte character codes plus a terminator
func (e *Encoder) cstring(s string) bool {
	for _, r := range s {
		if r == 0 || r > 0xff {
			e.err = fmt.Errorf("text %q: character %U cannot be encoded", s, r)
			return false
		}
		e.buf.WriteByte(byte(r))
	}
	e.buf.WriteByte(0)
	return true
}

func (e *Encoder) Bool(id int32, v bool) *Encoder {
	if e.err == nil {
		e.header(TypeBool, id)
		if v {
			e.buf.WriteByte(1)
		} else {
			e.buf.WriteByte(0)
		}
	}
	return e
}

func (e *Encoder) Int8(id int32, v int8) *Encoder {
	if e.err == nil {
		e.header(TypeInt8, id)
		e.buf.WriteByte(byte(v))
	}
	return e
}

func (e *Encoder) Uint8(id int32, v uint8) *Encoder {
	if e.err == nil {
		e.header(TypeUint8, id)
		e.buf.WriteByte(v)
	}
	return e
}

func (e *Encoder) Int32(id int32, v int32) *Encoder {
	if e.err == nil {
		e.header(TypeInt32, id)
		e.u32(uint32(v))
	}
	return e
}

func (e *Encoder) Uint32(id int32, v uint32) *Encoder {
	if e.err == nil {
		e.header(TypeUint32, id)
		e.u32(v)
	}
	return e
}

func (e *Encoder) Float32(id int32, v float32) *Encoder {
	if e.err == nil {
		e.header(TypeFloat32, id)
		e.u32(math.Float32bits(v))
	}
	return e
}

// Text writes a NUL-terminated string. Only characters U+0001 to U+00FF can
// be represented.
func (e *Encoder) Text(id int32, v string) *Encoder {
	if e.err == nil {
		e.header(TypeText, id)
		e.cstring(v)
	}
	return e
}

func (e *Encoder) List(id int32, v []uint32) *Encoder {
	if e.err == nil {
		e.header(TypeList, id)
		e.list(v)
	}
	return e
}

func (e *Encoder) list(v []uint32) bool {
	if !e.count(len(v)) {
		return false
	}
	for _, x := range v {
		e.u32(x)
	}
	return true
}

// Modification writes a modification record. Insert pairs go out in
// ascending id order.
func (e *Encoder) Modification(id int32, insert map[uint32]string, remove []uint32) *Encoder {
	if e.err != nil {
		return e
	}
	e.header(TypeModification, id)

	ids := make([]uint32, 0, len(insert))
	for k := range insert {
		ids = append(ids, k)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	if !e.count(len(ids)) {
		return e
	}
	for _, k := range ids {
		e.u32(k)
		if !e.cstring(insert[k]) {
			return e
		}
	}
	e.list(remove)
	return e
}

// Raw appends bytes as-is, for building deliberately malformed buffers
func (e *Encoder) Raw(b ...byte) *Encoder {
	if e.err == nil {
		e.buf.Write(b)
	}
	return e
}
