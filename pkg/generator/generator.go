// Package generator turns record descriptors into JSON-Schema-shaped
// components. A Generator owns the state of exactly one run: the cache of
// generated records and the stack of records being generated, which is
// used to detect cycles.
package generator

import (
	"slices"

	// Packages
	fnschema "github.com/mutablelogic/go-fnschema"
	descriptor "github.com/mutablelogic/go-fnschema/pkg/descriptor"
	jsonvalue "github.com/mutablelogic/go-fnschema/pkg/jsonvalue"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Generator generates schemas for a batch of target records
type Generator struct {
	batch   []descriptor.Record
	targets map[string]descriptor.Record
	enums   map[string]descriptor.Enum
	cache   map[string]*Components
	stack   []string
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New returns a generator for the target records, in the order given, which
// may reference each other and any of the enumerations. A record name which
// appears twice with different fields is a conflict.
func New(records []descriptor.Record, enums map[string]descriptor.Enum) (*Generator, error) {
	g := &Generator{
		batch:   make([]descriptor.Record, 0, len(records)),
		targets: make(map[string]descriptor.Record, len(records)),
		enums:   make(map[string]descriptor.Enum, len(enums)),
		cache:   make(map[string]*Components, len(records)),
	}
	for _, record := range records {
		if record.Name == "" {
			return nil, fnschema.ErrBadParameter.With("record without a name")
		}
		if existing, exists := g.targets[record.Name]; exists {
			if !sameRecord(existing, record) {
				return nil, fnschema.ErrConflict.Withf("record %q declared twice", record.Name)
			}
			continue
		}
		g.targets[record.Name] = record
		g.batch = append(g.batch, record)
	}
	for name, enum := range enums {
		g.enums[name] = enum
	}
	return g, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Generate returns the schema of every target record in batch order. The
// first error encountered, in record then field declaration order, aborts
// the run.
func (g *Generator) Generate() ([]*Schema, error) {
	result := make([]*Schema, 0, len(g.batch))
	for _, record := range g.batch {
		components, err := g.generate(record)
		if err != nil {
			return nil, err
		}
		result = append(result, &Schema{
			Name:        record.Name,
			Description: record.Description,
			Components:  components,
		})
	}
	return result, nil
}

// Components generates a single target record, and any targets it
// references, without generating the rest of the batch
func (g *Generator) Components(name string) (*Components, error) {
	record, exists := g.targets[name]
	if !exists {
		return nil, fnschema.ErrNotFound.Withf("record %q", name)
	}
	return g.generate(record)
}

// Lookup returns the components of a record which has been generated
func (g *Generator) Lookup(name string) (*Components, bool) {
	components, exists := g.cache[name]
	return components, exists
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// generate returns the components for one record, generating and caching
// them on first use. It is entered from Generate and from MapType when a
// field references a pending target.
func (g *Generator) generate(record descriptor.Record) (*Components, error) {
	if components, exists := g.cache[record.Name]; exists {
		return components, nil
	}
	if slices.Contains(g.stack, record.Name) {
		return nil, fnschema.NewCyclicDependency(append(slices.Clone(g.stack), record.Name))
	}

	// Push onto the in-progress stack, and pop on every return path
	g.stack = append(g.stack, record.Name)
	defer func() {
		g.stack = g.stack[:len(g.stack)-1]
	}()

	components := &Components{
		Properties: jsonvalue.NewObject(),
		Required:   make([]string, 0, len(record.Fields)),
	}
	for _, field := range record.Fields {
		fragment, err := g.MapType(field.Type, record.Name, field.Name)
		if err != nil {
			return nil, err
		}
		components.Properties.Set(field.Name, withDescription(fragment, field.Description))
		if !field.Optional {
			components.Required = append(components.Required, field.Name)
		}
	}

	g.cache[record.Name] = components
	return components, nil
}

// sameRecord returns true if two descriptors are identical
func sameRecord(a, b descriptor.Record) bool {
	return a.Name == b.Name && a.Description == b.Description && slices.Equal(a.Fields, b.Fields)
}
