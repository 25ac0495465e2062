// Package typeexpr splits a raw field type string into its outermost
// structure: an optional marker, and either a bare type name, an array
// "[T]" or a map "[K: V]". Element, key and value types are returned as
// text for the caller to parse in turn.
package typeexpr

import (
	"strings"

	// Packages
	fnschema "github.com/mutablelogic/go-fnschema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Kind is the outermost form of a type expression
type Kind int

// Expr is one level of a parsed type string
type Expr struct {
	Kind     Kind
	Optional bool   // One or more trailing '?' markers were stripped
	Name     string // KindNamed: the bare type name
	Elem     string // KindArray: the element type text
	Key      string // KindMap: the key type text
	Value    string // KindMap: the value type text
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	KindNamed Kind = iota
	KindArray
	KindMap
)

const (
	optionalSuffix = "?"
	openBracket    = '['
	closeBracket   = ']'
	separator      = ':'
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Parse splits a raw type string. Bracket syntax which is structurally
// invalid returns an ErrMalformedContainer error; anything else which is not
// a container is returned as a (possibly empty) name.
func Parse(raw string) (Expr, error) {
	expr := Expr{}
	text, optional := StripOptional(raw)
	expr.Optional = optional

	// Bare name
	if !strings.HasPrefix(text, string(openBracket)) && !strings.HasSuffix(text, string(closeBracket)) {
		expr.Kind = KindNamed
		expr.Name = text
		return expr, nil
	}

	// The outer brackets must enclose the whole text
	inner, ok := unwrap(text)
	if !ok {
		return expr, fnschema.NewMalformedContainer(raw, "", "", "unbalanced brackets")
	}

	// Look for key/value separators which are not inside nested brackets
	seps := topLevel(inner, separator)
	switch len(seps) {
	case 0:
		elem := strings.TrimSpace(inner)
		if elem == "" {
			return expr, fnschema.NewMalformedContainer(raw, "", "", "empty element type")
		}
		expr.Kind = KindArray
		expr.Elem = elem
	case 1:
		key := strings.TrimSpace(inner[:seps[0]])
		value := strings.TrimSpace(inner[seps[0]+1:])
		if key == "" || value == "" {
			return expr, fnschema.NewMalformedContainer(raw, "", "", "empty key or value type")
		}
		expr.Kind = KindMap
		expr.Key = key
		expr.Value = value
	default:
		return expr, fnschema.NewMalformedContainer(raw, "", "", "more than one key/value separator")
	}

	return expr, nil
}

// StripOptional trims whitespace and removes trailing optional markers,
// returning true if there were any
func StripOptional(raw string) (string, bool) {
	text := strings.TrimSpace(raw)
	optional := false
	for strings.HasSuffix(text, optionalSuffix) {
		text = strings.TrimSpace(strings.TrimSuffix(text, optionalSuffix))
		optional = true
	}
	return text, optional
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// unwrap removes the outer brackets, checking they open at the first
// character, close at the last, and that brackets in between balance
func unwrap(text string) (string, bool) {
	if len(text) < 2 || text[0] != openBracket || text[len(text)-1] != closeBracket {
		return "", false
	}
	depth := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case openBracket:
			depth++
		case closeBracket:
			depth--
			if depth < 0 || (depth == 0 && i != len(text)-1) {
				return "", false
			}
		}
	}
	if depth != 0 {
		return "", false
	}
	return text[1 : len(text)-1], true
}

// topLevel returns the byte offsets of ch which are not nested in brackets
func topLevel(text string, ch byte) []int {
	var result []int
	depth := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case openBracket:
			depth++
		case closeBracket:
			depth--
		case ch:
			if depth == 0 {
				result = append(result, i)
			}
		}
	}
	return result
}
