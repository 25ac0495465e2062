package jsonvalue

import (
	"bytes"
	"encoding/json"
	"iter"

	// Packages
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Object is a JSON object which remembers the order keys were first set
type Object struct {
	m *orderedmap.OrderedMap[string, Value]
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewObject returns an empty object
func NewObject() *Object {
	return &Object{m: orderedmap.New[string, Value]()}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Len returns the number of keys
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return o.m.Len()
}

// Set stores a value under key. A key which already exists keeps its
// position. Returns the object so calls can be chained.
func (o *Object) Set(key string, value Value) *Object {
	o.m.Set(key, value)
	return o
}

// Get returns the value for key, and false if the key does not exist
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return Value{}, false
	}
	return o.m.Get(key)
}

// Has returns true if the key exists
func (o *Object) Has(key string) bool {
	_, exists := o.Get(key)
	return exists
}

// Delete removes key, returning true if it existed
func (o *Object) Delete(key string) bool {
	_, exists := o.m.Delete(key)
	return exists
}

// Keys returns the keys in insertion order
func (o *Object) Keys() []string {
	keys := make([]string, 0, o.Len())
	for key := range o.All() {
		keys = append(keys, key)
	}
	return keys
}

// All iterates over key-value pairs in insertion order
func (o *Object) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if o == nil {
			return
		}
		for pair := o.m.Oldest(); pair != nil; pair = pair.Next() {
			if !yield(pair.Key, pair.Value) {
				return
			}
		}
	}
}

// Clone returns a shallow copy: the key order is copied, values are shared
func (o *Object) Clone() *Object {
	result := NewObject()
	for key, value := range o.All() {
		result.Set(key, value)
	}
	return result
}

// Equal reports whether both objects hold equal values under the same keys
// in the same order
func (o *Object) Equal(other *Object) bool {
	if o.Len() != other.Len() {
		return false
	}
	a, b := o.Keys(), other.Keys()
	for i, key := range a {
		if b[i] != key {
			return false
		}
		va, _ := o.Get(key)
		vb, _ := other.Get(key)
		if !Equal(va, vb) {
			return false
		}
	}
	return true
}

///////////////////////////////////////////////////////////////////////////////
// JSON MARSHALLING

func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := o.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (o *Object) encode(buf *bytes.Buffer) error {
	buf.WriteByte('{')
	first := true
	for key, value := range o.All() {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		data, err := json.Marshal(key)
		if err != nil {
			return err
		}
		buf.Write(data)
		buf.WriteByte(':')
		if err := value.encode(buf); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}
