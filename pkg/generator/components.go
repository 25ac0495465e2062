package generator

import (
	"encoding/json"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	fnschema "github.com/mutablelogic/go-fnschema"
	jsonvalue "github.com/mutablelogic/go-fnschema/pkg/jsonvalue"
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Components is the generated shape of one record: a fragment per field in
// declaration order, and the names of the fields which are not optional
type Components struct {
	Properties *jsonvalue.Object `json:"properties"`
	Required   []string          `json:"required"`
}

// Schema pairs a generated record with its components
type Schema struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Components  *Components `json:"components"`
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Fragment returns the object fragment {type, properties, required}. The
// properties object is shared with the components, not copied.
func (c *Components) Fragment() jsonvalue.Value {
	return jsonvalue.ObjectValue(jsonvalue.NewObject().
		Set(keyType, jsonvalue.String(typeObject)).
		Set(keyProperties, jsonvalue.ObjectValue(c.Properties)).
		Set(keyRequired, jsonvalue.Strings(c.Required...)),
	)
}

// JSONSchema converts the components into a JSON Schema object schema
func (c *Components) JSONSchema() (*jsonschema.Schema, error) {
	data, err := json.Marshal(c.Fragment())
	if err != nil {
		return nil, fnschema.ErrInternalServerError.Withf("marshal schema: %v", err)
	}
	var schema jsonschema.Schema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fnschema.ErrInternalServerError.Withf("unmarshal schema: %v", err)
	}
	return &schema, nil
}

// Validate checks a tool call's JSON arguments against the components
func (c *Components) Validate(args json.RawMessage) error {
	schema, err := c.JSONSchema()
	if err != nil {
		return err
	}

	// Resolve the schema for validation
	resolved, err := schema.Resolve(nil)
	if err != nil {
		return fnschema.ErrInternalServerError.Withf("schema resolution failed: %v", err)
	}

	// Validate expects a native Go value, not raw JSON
	var instance any
	if err := json.Unmarshal(args, &instance); err != nil {
		return fnschema.ErrBadParameter.Withf("invalid JSON arguments: %v", err)
	}
	if err := resolved.Validate(instance); err != nil {
		return fnschema.ErrBadParameter.Withf("arguments validation failed: %v", err)
	}
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (c Components) String() string {
	return types.Stringify(c)
}

func (s Schema) String() string {
	return types.Stringify(s)
}
