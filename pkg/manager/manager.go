package manager

import (
	// Packages
	fnschema "github.com/mutablelogic/go-fnschema"
	dialect "github.com/mutablelogic/go-fnschema/pkg/dialect"
	gemini "github.com/mutablelogic/go-fnschema/pkg/dialect/gemini"
	ollama "github.com/mutablelogic/go-fnschema/pkg/dialect/ollama"
	openai "github.com/mutablelogic/go-fnschema/pkg/dialect/openai"
	otel "go.opentelemetry.io/otel"
	trace "go.opentelemetry.io/otel/trace"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Manager runs schema generation and formatting, one run per call
type Manager struct {
	tracer  trace.Tracer
	dialect dialect.Registry
	name    string
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	tracerName = "github.com/mutablelogic/go-fnschema"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewManager returns a manager. Without options the openai, ollama and
// gemini dialects are registered and openai is the default.
func NewManager(opts ...Opt) (*Manager, error) {
	m := new(Manager)
	m.dialect = make(dialect.Registry)

	// Apply options
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	// Default dialects
	if len(m.dialect) == 0 {
		for _, f := range []dialect.Formatter{openai.New(), ollama.New(), gemini.New()} {
			if err := m.dialect.Register(f); err != nil {
				return nil, err
			}
		}
	}

	// Default dialect name
	if m.name == "" {
		if _, exists := m.dialect[openai.Name]; exists {
			m.name = openai.Name
		} else if names := m.dialect.Names(); len(names) > 0 {
			m.name = names[0]
		}
	}
	if _, err := m.dialect.Get(m.name); err != nil {
		return nil, err
	}

	// Default tracer
	if m.tracer == nil {
		m.tracer = otel.Tracer(tracerName)
	}

	// Return success
	return m, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Dialects returns the registered dialect names, sorted
func (m *Manager) Dialects() []string {
	return m.dialect.Names()
}

// Dialect returns the default dialect name
func (m *Manager) Dialect() string {
	return m.name
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (m *Manager) formatter(name string) (dialect.Formatter, error) {
	if name == "" {
		name = m.name
	}
	f, err := m.dialect.Get(name)
	if err != nil {
		return nil, fnschema.ErrBadParameter.With(err.Error())
	}
	return f, nil
}
