package codec

import (
	"fmt"
	"math"
	"strconv"
)

// Type is the tag byte that precedes every record payload
type Type uint8

// Record type tags. The numbering is part of the wire format.
const (
	TypeBool Type = iota
	TypeInt8
	TypeUint8
	TypeInt32
	TypeUint32
	TypeFloat32
	TypeText
	TypeList
	TypeModification
)

var typeNames = [...]string{
	TypeBool:         "bool",
	TypeInt8:         "int8",
	TypeUint8:        "uint8",
	TypeInt32:        "int32",
	TypeUint32:       "uint32",
	TypeFloat32:      "float32",
	TypeText:         "text",
	TypeList:         "list",
	TypeModification: "modification",
}

// Valid reports whether t is one of the known record tags
func (t Type) Valid() bool {
	return t <= TypeModification
}

func (t Type) String() string {
	if t.Valid() {
		return typeNames[t]
	}
	return "type(" + strconv.Itoa(int(t)) + ")"
}

// ParseType maps a type name as returned by String back to its tag
func ParseType(name string) (Type, error) {
	for i, n := range typeNames {
		if n == name {
			return Type(i), nil
		}
	}
	return 0, fmt.Errorf("unknown record type %q", name)
}

// Value is a decoded record payload. The concrete type is one of Bool, Int8,
// Uint8, Int32, Uint32, Float32, Text, List or *Modification.
type Value interface {
	Type() Type
}

type (
	Bool    bool
	Int8    int8
	Uint8   uint8
	Int32   int32
	Uint32  uint32
	Float32 float32
	Text    string
	List    []uint32
)

func (Bool) Type() Type    { return TypeBool }
func (Int8) Type() Type    { return TypeInt8 }
func (Uint8) Type() Type   { return TypeUint8 }
func (Int32) Type() Type   { return TypeInt32 }
func (Uint32) Type() Type  { return TypeUint32 }
func (Float32) Type() Type { return TypeFloat32 }
func (Text) Type() Type    { return TypeText }
func (List) Type() Type    { return TypeList }

// Modification is the decoded form of a modification record.
//
// Insert is keyed by the text of each wire pair and holds the decimal id as its
// value, the reverse of how the pairs are encoded. Remove keeps wire order.
type Modification struct {
	Insert map[string]string `json:"insert"`
	Remove []string          `json:"remove"`
}

func (*Modification) Type() Type { return TypeModification }

// Lookup returns the id registered for text in the insert section
func (m *Modification) Lookup(text string) (string, bool) {
	id, ok := m.Insert[text]
	return id, ok
}

// MarshalJSON writes non-finite floats as strings since JSON has no literal for them
func (f Float32) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return []byte(`"NaN"`), nil
	case math.IsInf(v, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Inf"`), nil
	}
	return strconv.AppendFloat(nil, v, 'g', -1, 32), nil
}
