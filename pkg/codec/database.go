package codec

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Database is the decoded form of a binary database: a mapping from the
// decimal id of each record to its value. Keys keep the order in which they
// first appeared in the buffer; a repeated id replaces the earlier value.
type Database struct {
	keys   []string
	values map[string]Value
}

// NewDatabase returns an empty database
func NewDatabase() *Database {
	return &Database{values: make(map[string]Value)}
}

// Set stores v under key, replacing any previous value
func (d *Database) Set(key string, v Value) {
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = v
}

// Get returns the value stored under key
func (d *Database) Get(key string) (Value, bool) {
	v, ok := d.values[key]
	return v, ok
}

// Value looks a record up by its numeric id
func (d *Database) Value(id int32) (Value, bool) {
	return d.Get(strconv.FormatInt(int64(id), 10))
}

// Len returns the number of distinct ids
func (d *Database) Len() int {
	return len(d.keys)
}

// Keys returns the ids in buffer order
func (d *Database) Keys() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Range calls fn for each entry in buffer order until fn returns false
func (d *Database) Range(fn func(key string, v Value) bool) {
	for _, k := range d.keys {
		if !fn(k, d.values[k]) {
			return
		}
	}
}

// MarshalJSON encodes the database as a JSON object with keys in buffer order
func (d *Database) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range d.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(d.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
