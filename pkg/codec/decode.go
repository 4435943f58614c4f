package codec

import (
	"fmt"
	"strconv"
)

// HeaderSize is the encoded size of a record header: Type(1) + ID(4)
const HeaderSize = 5

// Header is the fixed prefix of every record
type Header struct {
	Type Type
	ID   int32
}

// Key returns the id in the decimal form used as the database key
func (h Header) Key() string {
	return strconv.FormatInt(int64(h.ID), 10)
}

// ReadHeader reads a record header. The tag is returned as read; it is up to
// the caller to reject unknown tags.
func ReadHeader(c *Cursor) (Header, error) {
	if c.Remaining() < HeaderSize {
		return Header{}, fmt.Errorf("%w: record header needs %d bytes, have %d", ErrTruncatedInput, HeaderSize, c.Remaining())
	}
	tag, _ := c.Uint8()
	id, _ := c.Int32()
	return Header{Type: Type(tag), ID: id}, nil
}

// ReadValue decodes a payload of type t at the cursor
func ReadValue(c *Cursor, t Type) (Value, error) {
	switch t {
	case TypeBool:
		v, err := c.Uint8()
		return Bool(v != 0), err
	case TypeInt8:
		v, err := c.Int8()
		return Int8(v), err
	case TypeUint8:
		v, err := c.Uint8()
		return Uint8(v), err
	case TypeInt32:
		v, err := c.Int32()
		return Int32(v), err
	case TypeUint32:
		v, err := c.Uint32()
		return Uint32(v), err
	case TypeFloat32:
		v, err := c.Float32()
		return Float32(v), err
	case TypeText:
		v, err := c.CString()
		return Text(v), err
	case TypeList:
		v, err := readList(c)
		return List(v), err
	case TypeModification:
		return readModification(c)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownTypeTag, uint8(t))
	}
}

// readCount reads a counted-array length and checks that n elements of at
// least elemSize bytes can still follow.
func readCount(c *Cursor, elemSize int) (int, error) {
	n, err := c.Uint16()
	if err != nil {
		return 0, err
	}
	if need := int(n) * elemSize; c.Remaining() < need {
		return 0, fmt.Errorf("%w: array of %d elements needs %d bytes, have %d", ErrTruncatedInput, n, need, c.Remaining())
	}
	return int(n), nil
}

func readList(c *Cursor) ([]uint32, error) {
	n, err := readCount(c, 4)
	if err != nil {
		return nil, err
	}
	list := make([]uint32, n)
	for i := range list {
		list[i], _ = c.Uint32()
	}
	return list, nil
}

func readModification(c *Cursor) (*Modification, error) {
	// Each insert pair is at least a 4 byte id and a terminator.
	n, err := readCount(c, 5)
	if err != nil {
		return nil, fmt.Errorf("insert section: %w", err)
	}
	m := &Modification{Insert: make(map[string]string, n)}
	for i := 0; i < n; i++ {
		id, err := c.Uint32()
		if err != nil {
			return nil, fmt.Errorf("insert section: %w", err)
		}
		text, err := c.CString()
		if err != nil {
			return nil, fmt.Errorf("insert section: %w", err)
		}
		m.Insert[text] = strconv.FormatUint(uint64(id), 10)
	}

	remove, err := readList(c)
	if err != nil {
		return nil, fmt.Errorf("remove section: %w", err)
	}
	m.Remove = make([]string, len(remove))
	for i, id := range remove {
		m.Remove[i] = strconv.FormatUint(uint64(id), 10)
	}
	return m, nil
}

// Decode parses a complete binary database. The buffer must hold a whole
// number of records; on any error no database is returned.
func Decode(buf []byte) (*Database, error) {
	c := NewCursor(buf)
	db := NewDatabase()

	for !c.Done() {
		start := c.Offset()
		if c.Remaining() < HeaderSize {
			return nil, &DecodeError{Offset: start, Err: fmt.Errorf("%w: %d", ErrTrailingBytes, c.Remaining())}
		}
		h, err := ReadHeader(c)
		if err != nil {
			return nil, &DecodeError{Offset: start, Err: err}
		}
		v, err := ReadValue(c, h.Type)
		if err != nil {
			return nil, &DecodeError{Offset: start, ID: h.ID, Type: h.Type, Err: err}
		}
		db.Set(h.Key(), v)
	}

	return db, nil
}
