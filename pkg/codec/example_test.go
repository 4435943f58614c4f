package codec_test

import (
	"errors"
	"fmt"
	"log"

	"github.com/ssargent/bindb/pkg/codec"
)

// ExampleDecode demonstrates decoding a buffer and walking its records
func ExampleDecode() {
	buf, err := codec.NewEncoder().
		Bool(1, true).
		Int32(2, -543).
		Text(3, "Hello World").
		List(4, []uint32{43, 44, 45, 46}).
		Bytes()
	if err != nil {
		log.Fatal(err)
	}

	db, err := codec.Decode(buf)
	if err != nil {
		log.Fatal(err)
	}

	db.Range(func(key string, v codec.Value) bool {
		fmt.Printf("%s %s %v\n", key, v.Type(), v)
		return true
	})

	// Output:
	// 1 bool true
	// 2 int32 -543
	// 3 text Hello World
	// 4 list [43 44 45 46]
}

// ExampleModification demonstrates the reversed insert mapping
func ExampleModification() {
	buf, err := codec.NewEncoder().
		Modification(42, map[uint32]string{46: "Hello", 57: "World"}, []uint32{43, 44, 45}).
		Bytes()
	if err != nil {
		log.Fatal(err)
	}

	db, err := codec.Decode(buf)
	if err != nil {
		log.Fatal(err)
	}

	v, _ := db.Value(42)
	m := v.(*codec.Modification)
	id, _ := m.Lookup("World")
	fmt.Println("World is", id)
	fmt.Println("removed", m.Remove)

	// Output:
	// World is 57
	// removed [43 44 45]
}

// ExampleDecode_errorHandling demonstrates inspecting decode failures
func ExampleDecode_errorHandling() {
	buf, _ := codec.NewEncoder().Uint8(1, 7).Raw(0xff).Bytes()

	_, err := codec.Decode(buf)
	fmt.Println(errors.Is(err, codec.ErrTrailingBytes))
	fmt.Println(err)

	// Output:
	// true
	// record at offset 6: trailing bytes after last record: 1
}
