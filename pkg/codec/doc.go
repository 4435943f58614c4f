// Package codec decodes the bindb binary database format.
//
// A binary database is a flat sequence of tagged records with no file header
// and no index. Decoding walks the buffer from the first byte to the last and
// produces a Database that maps the decimal form of each record id to its
// decoded Value.
//
// # Record Format
//
// Every record starts with a five byte header followed by a payload whose
// layout depends on the type tag:
//
//	[Type(1)][ID(4)][Payload]
//
// All multi-byte integers are little-endian. ID is a signed 32-bit integer.
//
//	Tag  Type          Payload
//	0    bool          1 byte, nonzero is true
//	1    int8          1 byte, two's complement
//	2    uint8         1 byte
//	3    int32         4 bytes
//	4    uint32        4 bytes
//	5    float32       4 bytes, IEEE-754 single precision
//	6    text          bytes up to and including a 0x00 terminator
//	7    list          [Count(2)] then Count uint32 values
//	8    modification  insert section then remove section
//
// Text bytes are single-byte character codes; values above 0x7f decode to the
// Latin-1 rune with the same code point.
//
// # Modification Records
//
// A modification record has no overall length prefix. It is an insert section
//
//	[Count(2)] then Count times [ID(4)][Text...0x00]
//
// immediately followed by a remove section with the same layout as a list.
// The insert pairs are decoded into a map keyed by text whose values are the
// decimal ids, so Modification.Insert answers "which id belongs to this text".
// Remove ids are rendered as decimal strings in wire order.
//
// # Usage
//
//	db, err := codec.Decode(buf)
//	if err != nil {
//	    return err
//	}
//	db.Range(func(key string, v codec.Value) bool {
//	    fmt.Println(key, v.Type(), v)
//	    return true
//	})
//
// Buffers for tests and tooling can be produced with an Encoder:
//
//	buf, err := codec.NewEncoder().
//	    Text(1, "Hello World").
//	    List(2, []uint32{43, 44, 45}).
//	    Bytes()
//
// # Error Handling
//
// Decode is all or nothing. Failures are returned as *DecodeError, which
// records the offset of the record that could not be read and wraps one of
// ErrTruncatedInput, ErrUnknownTypeTag or ErrTrailingBytes for use with
// errors.Is.
//
// # Thread Safety
//
// Decode keeps no state between calls and may be used from any number of
// goroutines. A Database is not safe for concurrent mutation.
package codec
