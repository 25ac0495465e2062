// Package descriptor holds the extracted structural facts about records,
// fields and string-backed enumerations which schemas are generated from.
package descriptor

import (
	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Record describes a record type and its fields in declaration order
type Record struct {
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      []Field `json:"fields" yaml:"fields"`
}

// Field describes one stored property of a record. Type is the raw type
// string, such as "[String: Int]" or "Date?".
type Field struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Optional    bool   `json:"optional,omitempty" yaml:"optional,omitempty"`
}

// Enum describes a string-backed enumeration
type Enum struct {
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Cases       []EnumCase `json:"cases" yaml:"cases"`
}

// EnumCase is one case of an enumeration
type EnumCase struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// CaseNames returns the names of the cases in declaration order
func (e Enum) CaseNames() []string {
	result := make([]string, 0, len(e.Cases))
	for _, c := range e.Cases {
		result = append(result, c.Name)
	}
	return result
}

// EnumTable indexes enumerations by name
func EnumTable(enums ...Enum) map[string]Enum {
	result := make(map[string]Enum, len(enums))
	for _, e := range enums {
		result[e.Name] = e
	}
	return result
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (r Record) String() string {
	return types.Stringify(r)
}

func (e Enum) String() string {
	return types.Stringify(e)
}
