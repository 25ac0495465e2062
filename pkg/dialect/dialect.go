// Package dialect wraps generated schemas into the document shapes which
// function calling APIs expect. Each dialect lives in its own subpackage
// and is registered explicitly by the caller.
package dialect

import (
	"slices"
	"strings"

	// Packages
	fnschema "github.com/mutablelogic/go-fnschema"
	generator "github.com/mutablelogic/go-fnschema/pkg/generator"
	jsonvalue "github.com/mutablelogic/go-fnschema/pkg/jsonvalue"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Formatter produces the output document for one dialect
type Formatter interface {
	// Return the dialect name (e.g. "openai", "gemini")
	Name() string

	// Format wraps the schemas, in the order given, into an array
	Format(schemas []*generator.Schema) (jsonvalue.Value, error)
}

// Registry maps dialect names to formatters
type Registry map[string]Formatter

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	keyType        = "type"
	keyFunction    = "function"
	keyName        = "name"
	keyDescription = "description"
	keyParameters  = "parameters"
	keyProperties  = "properties"
	keyRequired    = "required"
)

const (
	typeFunction = "function"
	typeObject   = "object"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewRegistry returns a registry of the given formatters
func NewRegistry(formatters ...Formatter) (Registry, error) {
	r := make(Registry, len(formatters))
	for _, f := range formatters {
		if err := r.Register(f); err != nil {
			return nil, err
		}
	}
	return r, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Register adds a formatter, failing if its name is empty or taken
func (r Registry) Register(f Formatter) error {
	name := strings.TrimSpace(f.Name())
	if name == "" {
		return fnschema.ErrBadParameter.With("formatter without a name")
	}
	if _, exists := r[name]; exists {
		return fnschema.ErrConflict.Withf("duplicate dialect %q", name)
	}
	r[name] = f
	return nil
}

// Get returns the formatter for a dialect name
func (r Registry) Get(name string) (Formatter, error) {
	f, exists := r[name]
	if !exists {
		return nil, fnschema.ErrNotFound.Withf("unknown dialect %q (available: %s)", name, strings.Join(r.Names(), ", "))
	}
	return f, nil
}

// Names returns the registered dialect names, sorted
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

///////////////////////////////////////////////////////////////////////////////
// SHARED SHAPES

// Parameters returns the parameters object {type, properties, required}
// with the given object type token
func Parameters(typ string, properties *jsonvalue.Object, required []string) jsonvalue.Value {
	return jsonvalue.ObjectValue(jsonvalue.NewObject().
		Set(keyType, jsonvalue.String(typ)).
		Set(keyProperties, jsonvalue.ObjectValue(properties)).
		Set(keyRequired, jsonvalue.Strings(required...)),
	)
}

// Function returns the tool wrapper
// {type:"function", function:{name, description?, parameters}} shared by
// dialects which follow the chat completions tool format. The description
// is omitted when empty.
func Function(schema *generator.Schema) jsonvalue.Value {
	fn := jsonvalue.NewObject().Set(keyName, jsonvalue.String(schema.Name))
	if desc := strings.TrimSpace(schema.Description); desc != "" {
		fn.Set(keyDescription, jsonvalue.String(desc))
	}
	fn.Set(keyParameters, Parameters(typeObject, schema.Components.Properties, schema.Components.Required))
	return jsonvalue.ObjectValue(jsonvalue.NewObject().
		Set(keyType, jsonvalue.String(typeFunction)).
		Set(keyFunction, jsonvalue.ObjectValue(fn)),
	)
}

// Functions returns an array of tool wrappers, one per schema
func Functions(schemas []*generator.Schema) jsonvalue.Value {
	result := make([]jsonvalue.Value, 0, len(schemas))
	for _, schema := range schemas {
		result = append(result, Function(schema))
	}
	return jsonvalue.Array(result...)
}
