// Package openai formats schemas as chat completions tools:
//
//	[{"type":"function","function":{"name":...,"description":...,"parameters":{...}}}]
package openai

import (
	// Packages
	dialect "github.com/mutablelogic/go-fnschema/pkg/dialect"
	generator "github.com/mutablelogic/go-fnschema/pkg/generator"
	jsonvalue "github.com/mutablelogic/go-fnschema/pkg/jsonvalue"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type formatter struct{}

var _ dialect.Formatter = (*formatter)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	Name = "openai"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func New() dialect.Formatter {
	return new(formatter)
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (*formatter) Name() string {
	return Name
}

func (*formatter) Format(schemas []*generator.Schema) (jsonvalue.Value, error) {
	return dialect.Functions(schemas), nil
}
