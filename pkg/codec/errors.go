package codec

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncatedInput is returned when fewer bytes remain than a read needs
	ErrTruncatedInput = errors.New("truncated input")
	// ErrUnknownTypeTag is returned for a tag byte outside the known type set
	ErrUnknownTypeTag = errors.New("unknown type tag")
	// ErrTrailingBytes is returned when bytes remain after the last complete record
	ErrTrailingBytes = errors.New("trailing bytes after last record")
)

// DecodeError describes where in the buffer decoding stopped.
type DecodeError struct {
	Offset int   // start of the record being decoded
	ID     int32 // zero if the header could not be read
	Type   Type
	Err    error
}

func (e *DecodeError) Error() string {
	if errors.Is(e.Err, ErrTrailingBytes) {
		return fmt.Sprintf("record at offset %d: %v", e.Offset, e.Err)
	}
	return fmt.Sprintf("record %d (%s) at offset %d: %v", e.ID, e.Type, e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
