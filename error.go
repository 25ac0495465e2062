package fnschema

import (
	"fmt"
	"strings"
)

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	ErrSuccess Err = iota
	ErrNotFound
	ErrBadParameter
	ErrNotImplemented
	ErrConflict
	ErrInternalServerError
	ErrUnsupportedType
	ErrMalformedContainer
	ErrUnrequestedReference
	ErrCyclicDependency
	ErrUnsupportedDialectFeature
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Errors
type Err int

// SchemaError carries the context of a failed generation: the offending
// type, the record and field which referenced it, and for cycles the chain
// of records being generated.
type SchemaError struct {
	Kind   Err
	Type   string
	Record string
	Field  string
	Chain  []string
	Detail string
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (e Err) Error() string {
	switch e {
	case ErrSuccess:
		return "success"
	case ErrNotFound:
		return "not found"
	case ErrBadParameter:
		return "bad parameter"
	case ErrNotImplemented:
		return "not implemented"
	case ErrConflict:
		return "conflict"
	case ErrInternalServerError:
		return "internal server error"
	case ErrUnsupportedType:
		return "unsupported type"
	case ErrMalformedContainer:
		return "malformed container"
	case ErrUnrequestedReference:
		return "unrequested reference"
	case ErrCyclicDependency:
		return "cyclic dependency"
	case ErrUnsupportedDialectFeature:
		return "unsupported dialect feature"
	}
	return fmt.Sprintf("error code %d", int(e))
}

func (e Err) With(args ...interface{}) error {
	return fmt.Errorf("%w: %s", e, fmt.Sprint(args...))
}

func (e Err) Withf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", e, fmt.Sprintf(format, args...))
}

////////////////////////////////////////////////////////////////////////////////
// SCHEMA ERRORS

// NewUnsupportedType returns an error for a type string which matches none
// of the recognised forms
func NewUnsupportedType(typ, record, field string) *SchemaError {
	return &SchemaError{Kind: ErrUnsupportedType, Type: typ, Record: record, Field: field}
}

// NewMalformedContainer returns an error for invalid array or map syntax
func NewMalformedContainer(typ, record, field, detail string) *SchemaError {
	return &SchemaError{Kind: ErrMalformedContainer, Type: typ, Record: record, Field: field, Detail: detail}
}

// NewUnrequestedReference returns an error for a reference to a record
// which was not part of the requested set
func NewUnrequestedReference(typ, record, field string) *SchemaError {
	return &SchemaError{Kind: ErrUnrequestedReference, Type: typ, Record: record, Field: field}
}

// NewCyclicDependency returns an error for a record which references itself,
// directly or through other records
func NewCyclicDependency(chain []string) *SchemaError {
	return &SchemaError{Kind: ErrCyclicDependency, Chain: append([]string(nil), chain...)}
}

// NewUnsupportedDialectFeature returns an error for a fragment which the
// named dialect cannot represent
func NewUnsupportedDialectFeature(dialect, record, field, detail string) *SchemaError {
	return &SchemaError{Kind: ErrUnsupportedDialectFeature, Type: dialect, Record: record, Field: field, Detail: detail}
}

func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	switch e.Kind {
	case ErrCyclicDependency:
		b.WriteString(": ")
		b.WriteString(strings.Join(e.Chain, " -> "))
	case ErrUnrequestedReference:
		fmt.Fprintf(&b, ": %q referenced by %s.%s was not requested", e.Type, e.Record, e.Field)
	case ErrUnsupportedDialectFeature:
		fmt.Fprintf(&b, ": %s cannot represent %s.%s", e.Type, e.Record, e.Field)
	default:
		fmt.Fprintf(&b, ": %q", e.Type)
		if e.Record != "" {
			fmt.Fprintf(&b, " in %s.%s", e.Record, e.Field)
		}
	}
	if e.Detail != "" {
		b.WriteString(" (")
		b.WriteString(e.Detail)
		b.WriteString(")")
	}
	return b.String()
}

// Unwrap returns the error kind, so errors.Is matches against the Err constants
func (e *SchemaError) Unwrap() error {
	return e.Kind
}
