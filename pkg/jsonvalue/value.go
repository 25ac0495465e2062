// Package jsonvalue implements a tagged-variant JSON value whose objects
// keep their keys in insertion order, so documents built from it always
// encode to the same bytes.
package jsonvalue

import (
	"bytes"
	"encoding/json"
	"slices"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Kind is the variant held by a Value
type Kind int

// Value is a JSON value: null, boolean, number, string, array or object.
// The zero value is null.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	a    []Value
	o    *Object
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Null returns the JSON null value
func Null() Value {
	return Value{}
}

// Bool returns a boolean value
func Bool(v bool) Value {
	return Value{kind: KindBool, b: v}
}

// Number returns a numeric value
func Number(v float64) Value {
	return Value{kind: KindNumber, n: v}
}

// String returns a string value
func String(v string) Value {
	return Value{kind: KindString, s: v}
}

// Array returns an array holding the given elements
func Array(elems ...Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{kind: KindArray, a: elems}
}

// Strings returns an array of string values
func Strings(elems ...string) Value {
	result := make([]Value, 0, len(elems))
	for _, elem := range elems {
		result = append(result, String(elem))
	}
	return Value{kind: KindArray, a: result}
}

// ObjectValue wraps an object as a value. A nil object becomes an empty one.
func ObjectValue(o *Object) Value {
	if o == nil {
		o = NewObject()
	}
	return Value{kind: KindObject, o: o}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Kind returns the variant of the value
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull returns true for the null value
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// AsBool returns the boolean, and false if the value is not a boolean
func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// AsNumber returns the number, and false if the value is not a number
func (v Value) AsNumber() (float64, bool) {
	return v.n, v.kind == KindNumber
}

// AsString returns the string, and false if the value is not a string
func (v Value) AsString() (string, bool) {
	return v.s, v.kind == KindString
}

// AsArray returns the elements, and false if the value is not an array
func (v Value) AsArray() ([]Value, bool) {
	return v.a, v.kind == KindArray
}

// AsObject returns the object, and false if the value is not an object
func (v Value) AsObject() (*Object, bool) {
	return v.o, v.kind == KindObject
}

// Equal reports whether two values are structurally identical, including
// the order of object keys
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindNumber:
		return a.n == b.n
	case KindString:
		return a.s == b.s
	case KindArray:
		return slices.EqualFunc(a.a, b.a, Equal)
	case KindObject:
		return a.o.Equal(b.o)
	}
	return false
}

///////////////////////////////////////////////////////////////////////////////
// JSON MARSHALLING

func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) encode(buf *bytes.Buffer) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		if v.b {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case KindNumber, KindString:
		var scalar any = v.s
		if v.kind == KindNumber {
			scalar = v.n
		}
		data, err := json.Marshal(scalar)
		if err != nil {
			return err
		}
		buf.Write(data)
	case KindArray:
		buf.WriteByte('[')
		for i, elem := range v.a {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := elem.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindObject:
		return v.o.encode(buf)
	}
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (v Value) String() string {
	return types.Stringify(v)
}
