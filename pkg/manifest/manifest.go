// Package manifest describes binary databases as YAML documents.
//
// A manifest lists records in the order they are written:
//
//	records:
//	  - id: 42
//	    type: text
//	    value: Hello World
//	  - id: 7
//	    type: modification
//	    insert: {46: Hello, 57: World}
//	    remove: [43, 44, 45]
package manifest

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ssargent/bindb/pkg/codec"
)

// Manifest is an ordered list of record descriptions
type Manifest struct {
	Records []Record `yaml:"records"`
}

// Record describes one record. Value is used by every type except
// modification, which uses Insert and Remove.
type Record struct {
	ID     int32             `yaml:"id"`
	Type   string            `yaml:"type"`
	Value  yaml.Node         `yaml:"value,omitempty"`
	Insert map[uint32]string `yaml:"insert,omitempty"`
	Remove []uint32          `yaml:"remove,omitempty"`
}

// Parse reads a manifest from YAML
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}

// Load reads a manifest file
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return Parse(data)
}

// Encode writes every record into a binary database
func (m *Manifest) Encode() ([]byte, error) {
	enc := codec.NewEncoder()
	for i := range m.Records {
		if err := m.Records[i].encode(enc); err != nil {
			return nil, fmt.Errorf("record %d (id %d): %w", i, m.Records[i].ID, err)
		}
	}
	return enc.Bytes()
}

func (r *Record) encode(enc *codec.Encoder) error {
	t, err := codec.ParseType(r.Type)
	if err != nil {
		return err
	}

	if t != codec.TypeModification && r.Value.IsZero() {
		return fmt.Errorf("%s record needs a value", t)
	}

	switch t {
	case codec.TypeBool:
		var v bool
		if err := r.Value.Decode(&v); err != nil {
			return err
		}
		enc.Bool(r.ID, v)
	case codec.TypeInt8:
		v, err := r.integer(math.MinInt8, math.MaxInt8)
		if err != nil {
			return err
		}
		enc.Int8(r.ID, int8(v))
	case codec.TypeUint8:
		v, err := r.integer(0, math.MaxUint8)
		if err != nil {
			return err
		}
		enc.Uint8(r.ID, uint8(v))
	case codec.TypeInt32:
		v, err := r.integer(math.MinInt32, math.MaxInt32)
		if err != nil {
			return err
		}
		enc.Int32(r.ID, int32(v))
	case codec.TypeUint32:
		v, err := r.integer(0, math.MaxUint32)
		if err != nil {
			return err
		}
		enc.Uint32(r.ID, uint32(v))
	case codec.TypeFloat32:
		var v float64
		if err := r.Value.Decode(&v); err != nil {
			return err
		}
		enc.Float32(r.ID, float32(v))
	case codec.TypeText:
		var v string
		if err := r.Value.Decode(&v); err != nil {
			return err
		}
		enc.Text(r.ID, v)
	case codec.TypeList:
		var v []uint32
		if err := r.Value.Decode(&v); err != nil {
			return err
		}
		enc.List(r.ID, v)
	case codec.TypeModification:
		enc.Modification(r.ID, r.Insert, r.Remove)
	}

	// The encoder keeps its first error; surface it against this record
	if _, err := enc.Bytes(); err != nil {
		return err
	}
	return nil
}

func (r *Record) integer(lo, hi int64) (int64, error) {
	var v int64
	if err := r.Value.Decode(&v); err != nil {
		return 0, err
	}
	if v < lo || v > hi {
		return 0, fmt.Errorf("value %d out of range [%d, %d]", v, lo, hi)
	}
	return v, nil
}
