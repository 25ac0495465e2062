// Package gemini formats schemas as Gemini function declarations. Gemini
// schemas use uppercase type tokens ("STRING", "OBJECT") and carry no
// format hints, so every property fragment is rewritten before wrapping.
package gemini

import (
	"strings"

	// Packages
	fnschema "github.com/mutablelogic/go-fnschema"
	dialect "github.com/mutablelogic/go-fnschema/pkg/dialect"
	generator "github.com/mutablelogic/go-fnschema/pkg/generator"
	jsonvalue "github.com/mutablelogic/go-fnschema/pkg/jsonvalue"
	cases "golang.org/x/text/cases"
	language "golang.org/x/text/language"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type formatter struct{}

var _ dialect.Formatter = (*formatter)(nil)

// transformer rewrites fragments for one Format call. cases.Caser keeps
// state, so it is not shared between calls.
type transformer struct {
	upper  cases.Caser
	record string
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	Name = "gemini"
)

const (
	keyName                 = "name"
	keyDescription          = "description"
	keyParameters           = "parameters"
	keyType                 = "type"
	keyFormat               = "format"
	keyItems                = "items"
	keyAdditionalProperties = "additionalProperties"
	keyProperties           = "properties"
)

const (
	typeObject = "OBJECT"
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

// Format returns an array of {name, description, parameters}. The
// description is always present, empty when the record has none.
func (*formatter) Format(schemas []*generator.Schema) (jsonvalue.Value, error) {
	result := make([]jsonvalue.Value, 0, len(schemas))
	for _, schema := range schemas {
		t := &transformer{upper: cases.Upper(language.Und), record: schema.Name}
		properties, err := t.properties(schema.Components.Properties, "")
		if err != nil {
			return jsonvalue.Null(), err
		}
		result = append(result, jsonvalue.ObjectValue(jsonvalue.NewObject().
			Set(keyName, jsonvalue.String(schema.Name)).
			Set(keyDescription, jsonvalue.String(strings.TrimSpace(schema.Description))).
			Set(keyParameters, dialect.Parameters(typeObject, properties, schema.Components.Required)),
		))
	}
	return jsonvalue.Array(result...), nil
}

// Transform returns a copy of a fragment with every type token uppercased
// and every format removed, recursing through items, additionalProperties
// and properties. The fragment itself is not modified.
func Transform(fragment jsonvalue.Value) (jsonvalue.Value, error) {
	t := &transformer{upper: cases.Upper(language.Und)}
	return t.fragment(fragment, "")
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (t *transformer) fragment(fragment jsonvalue.Value, path string) (jsonvalue.Value, error) {
	o, ok := fragment.AsObject()
	if !ok {
		return jsonvalue.Null(), fnschema.NewUnsupportedDialectFeature(Name, t.record, path, "schema is not an object")
	}

	result := jsonvalue.NewObject()
	for key, value := range o.All() {
		switch key {
		case keyFormat:
			continue
		case keyType:
			if typ, ok := value.AsString(); ok {
				value = jsonvalue.String(t.upper.String(typ))
			}
		case keyItems, keyAdditionalProperties:
			v, err := t.fragment(value, join(path, key))
			if err != nil {
				return jsonvalue.Null(), err
			}
			value = v
		case keyProperties:
			properties, ok := value.AsObject()
			if !ok {
				return jsonvalue.Null(), fnschema.NewUnsupportedDialectFeature(Name, t.record, join(path, key), "properties is not an object")
			}
			v, err := t.properties(properties, path)
			if err != nil {
				return jsonvalue.Null(), err
			}
			value = jsonvalue.ObjectValue(v)
		}
		result.Set(key, value)
	}
	return jsonvalue.ObjectValue(result), nil
}

func (t *transformer) properties(properties *jsonvalue.Object, path string) (*jsonvalue.Object, error) {
	result := jsonvalue.NewObject()
	for name, value := range properties.All() {
		v, err := t.fragment(value, join(path, name))
		if err != nil {
			return nil, err
		}
		result.Set(name, v)
	}
	return result, nil
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
