package manager

import (
	"strings"

	// Packages
	fnschema "github.com/mutablelogic/go-fnschema"
	dialect "github.com/mutablelogic/go-fnschema/pkg/dialect"
	trace "go.opentelemetry.io/otel/trace"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Opt is a functional option for configuring a manager
type Opt func(*Manager) error

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithTracer sets the tracer used for spans. If not set, the global
// tracer provider is used.
func WithTracer(tracer trace.Tracer) Opt {
	return func(m *Manager) error {
		if tracer == nil {
			return fnschema.ErrBadParameter.With("tracer is required")
		}
		m.tracer = tracer
		return nil
	}
}

// WithDialect registers a formatter. When any formatter is registered the
// default dialects are not added.
func WithDialect(f dialect.Formatter) Opt {
	return func(m *Manager) error {
		if f == nil {
			return fnschema.ErrBadParameter.With("formatter is required")
		}
		return m.dialect.Register(f)
	}
}

// WithDefaultDialect sets the dialect used when a run does not name one
func WithDefaultDialect(name string) Opt {
	return func(m *Manager) error {
		name = strings.TrimSpace(name)
		if name == "" {
			return fnschema.ErrBadParameter.With("dialect name is required")
		}
		m.name = name
		return nil
	}
}
