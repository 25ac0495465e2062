// Package ollama formats schemas as Ollama chat tools, which follow the
// same wrapper as chat completions tools
package ollama

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
	Name = "ollama"
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
