package generator_test

import (
	"encoding/json"
	"errors"
	"testing"

	// Packages
	fnschema "github.com/mutablelogic/go-fnschema"
	descriptor "github.com/mutablelogic/go-fnschema/pkg/descriptor"
	generator "github.com/mutablelogic/go-fnschema/pkg/generator"
	jsonvalue "github.com/mutablelogic/go-fnschema/pkg/jsonvalue"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

///////////////////////////////////////////////////////////////////////////////
// FIXTURES

var searchPriority = descriptor.Enum{
	Name:        "SearchPriority",
	Description: "How urgently results are needed",
	Cases: []descriptor.EnumCase{
		{Name: "standard", Description: "Normal ordering"},
		{Name: "high", Description: "Fastest results first"},
	},
}

var hotelSearch = descriptor.Record{
	Name:        "HotelSearch",
	Description: "Search for available hotels",
	Fields: []descriptor.Field{
		{Name: "destination", Type: "String", Description: "City or region"},
		{Name: "checkInDate", Type: "Date"},
		{Name: "checkOutDate", Type: "Date?", Optional: true},
		{Name: "adults", Type: "Int"},
		{Name: "priority", Type: "SearchPriority"},
	},
}

func toJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func mustGenerator(t *testing.T, records []descriptor.Record, enums ...descriptor.Enum) *generator.Generator {
	t.Helper()
	g, err := generator.New(records, descriptor.EnumTable(enums...))
	require.NoError(t, err)
	return g
}

///////////////////////////////////////////////////////////////////////////////
// SCENARIOS

// Record with primitives, an optional date and an enum
func Test_generator_001(t *testing.T) {
	assert := assert.New(t)
	g := mustGenerator(t, []descriptor.Record{hotelSearch}, searchPriority)

	schemas, err := g.Generate()
	require.NoError(t, err)
	require.Len(t, schemas, 1)
	assert.Equal("HotelSearch", schemas[0].Name)
	assert.Equal("Search for available hotels", schemas[0].Description)

	components := schemas[0].Components
	assert.Equal([]string{"destination", "checkInDate", "adults", "priority"}, components.Required)
	assert.Equal([]string{"destination", "checkInDate", "checkOutDate", "adults", "priority"}, components.Properties.Keys())

	destination, _ := components.Properties.Get("destination")
	assert.JSONEq(`{"type":"string","description":"City or region"}`, toJSON(t, destination))

	checkOut, _ := components.Properties.Get("checkOutDate")
	assert.JSONEq(`{"type":"string","format":"date-time"}`, toJSON(t, checkOut))

	priority, _ := components.Properties.Get("priority")
	assert.JSONEq(`{
		"type": "string",
		"enum": ["standard", "high"],
		"description": "How urgently results are needed\n\nPossible values:\n  - standard: Normal ordering\n  - high: Fastest results first"
	}`, toJSON(t, priority))
}

// Reference to a record which was not requested
func Test_generator_002(t *testing.T) {
	assert := assert.New(t)
	order := descriptor.Record{Name: "Order", Fields: []descriptor.Field{
		{Name: "id", Type: "UUID"},
		{Name: "customer", Type: "Customer"},
	}}
	g := mustGenerator(t, []descriptor.Record{order})

	_, err := g.Generate()
	assert.ErrorIs(err, fnschema.ErrUnrequestedReference)

	var schemaErr *fnschema.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal("Customer", schemaErr.Type)
	assert.Equal("Order", schemaErr.Record)
	assert.Equal("customer", schemaErr.Field)

	_, exists := g.Lookup("Order")
	assert.False(exists)
}

// Maps and nested arrays
func Test_generator_003(t *testing.T) {
	assert := assert.New(t)
	g := mustGenerator(t, nil)

	fragment, err := g.MapType("[String: Int]", "R", "f")
	assert.NoError(err)
	assert.JSONEq(`{"type":"object","additionalProperties":{"type":"integer"}}`, toJSON(t, fragment))

	fragment, err = g.MapType("[[Int]]", "R", "f")
	assert.NoError(err)
	assert.JSONEq(`{"type":"array","items":{"type":"array","items":{"type":"integer"}}}`, toJSON(t, fragment))

	fragment, err = g.MapType("[String: [URL?]]?", "R", "f")
	assert.NoError(err)
	assert.JSONEq(`{"type":"object","additionalProperties":{"type":"array","items":{"type":"string","format":"uri"}}}`, toJSON(t, fragment))
}

// Primitive table
func Test_generator_004(t *testing.T) {
	tests := map[string]string{
		"String":  `{"type":"string"}`,
		"Int64":   `{"type":"integer"}`,
		"UInt8":   `{"type":"integer"}`,
		"Bool":    `{"type":"boolean"}`,
		"Double":  `{"type":"number"}`,
		"Float":   `{"type":"number"}`,
		"Date":    `{"type":"string","format":"date-time"}`,
		"UUID":    `{"type":"string","format":"uuid"}`,
		"Data":    `{"type":"string","format":"byte"}`,
		"URL":     `{"type":"string","format":"uri"}`,
		"Decimal": `{"type":"number"}`,
	}
	g := mustGenerator(t, nil)
	for raw, want := range tests {
		t.Run(raw, func(t *testing.T) {
			fragment, err := g.MapType(raw, "R", "f")
			assert.NoError(t, err)
			assert.JSONEq(t, want, toJSON(t, fragment))
		})
	}
}

// Mapping failures carry the referencing record and field
func Test_generator_005(t *testing.T) {
	g := mustGenerator(t, nil)
	tests := []struct {
		raw  string
		kind fnschema.Err
	}{
		{"[]", fnschema.ErrMalformedContainer},
		{"[Int", fnschema.ErrMalformedContainer},
		{"[Int: String]", fnschema.ErrUnsupportedType},
		{"[[]]", fnschema.ErrMalformedContainer},
		{"[String: []]", fnschema.ErrMalformedContainer},
		{"Set<Int>", fnschema.ErrUnsupportedType},
		{"", fnschema.ErrUnsupportedType},
		{"Unknown", fnschema.ErrUnrequestedReference},
		{"Outer.Inner", fnschema.ErrUnrequestedReference},
	}
	for _, test := range tests {
		t.Run(test.raw, func(t *testing.T) {
			_, err := g.MapType(test.raw, "R", "f")
			assert.ErrorIs(t, err, test.kind)
			var schemaErr *fnschema.SchemaError
			if assert.True(t, errors.As(err, &schemaErr)) {
				assert.Equal(t, "R", schemaErr.Record)
				assert.Equal(t, "f", schemaErr.Field)
			}
		})
	}
}

// Map keys are checked before map values
func Test_generator_006(t *testing.T) {
	g := mustGenerator(t, nil)
	_, err := g.MapType("[Int: []]", "R", "f")
	assert.ErrorIs(t, err, fnschema.ErrUnsupportedType)
}

///////////////////////////////////////////////////////////////////////////////
// CYCLES

// Mutually referencing records, both requested
func Test_generator_007(t *testing.T) {
	assert := assert.New(t)
	a := descriptor.Record{Name: "A", Fields: []descriptor.Field{{Name: "b", Type: "B"}}}
	b := descriptor.Record{Name: "B", Fields: []descriptor.Field{{Name: "a", Type: "A"}}}

	_, err := mustGenerator(t, []descriptor.Record{a, b}).Generate()
	assert.ErrorIs(err, fnschema.ErrCyclicDependency)
	var schemaErr *fnschema.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal([]string{"A", "B", "A"}, schemaErr.Chain)
	assert.Contains(err.Error(), "A -> B -> A")

	// Either alone is an unrequested reference instead
	_, err = mustGenerator(t, []descriptor.Record{a}).Generate()
	assert.ErrorIs(err, fnschema.ErrUnrequestedReference)
	_, err = mustGenerator(t, []descriptor.Record{b}).Generate()
	assert.ErrorIs(err, fnschema.ErrUnrequestedReference)
}

// Self reference through an optional array
func Test_generator_008(t *testing.T) {
	assert := assert.New(t)
	node := descriptor.Record{Name: "Node", Fields: []descriptor.Field{
		{Name: "value", Type: "Int"},
		{Name: "children", Type: "[Node]?", Optional: true},
	}}
	_, err := mustGenerator(t, []descriptor.Record{node}).Generate()
	assert.ErrorIs(err, fnschema.ErrCyclicDependency)
	var schemaErr *fnschema.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal([]string{"Node", "Node"}, schemaErr.Chain)
}

///////////////////////////////////////////////////////////////////////////////
// LAWS

// Required contains exactly the non-optional fields in declaration order
func Test_generator_009(t *testing.T) {
	assert := assert.New(t)
	record := descriptor.Record{Name: "R", Fields: []descriptor.Field{
		{Name: "z", Type: "Int?", Optional: true},
		{Name: "y", Type: "Int"},
		{Name: "x", Type: "[Int]?", Optional: true},
		{Name: "w", Type: "[String: Bool]"},
	}}
	schemas, err := mustGenerator(t, []descriptor.Record{record}).Generate()
	require.NoError(t, err)
	assert.Equal([]string{"y", "w"}, schemas[0].Components.Required)

	// A record with no required fields still has an empty required list
	empty := descriptor.Record{Name: "E", Fields: []descriptor.Field{{Name: "a", Type: "Int?", Optional: true}}}
	schemas, err = mustGenerator(t, []descriptor.Record{empty}).Generate()
	require.NoError(t, err)
	assert.NotNil(schemas[0].Components.Required)
	assert.Empty(schemas[0].Components.Required)
}

// Records referencing a common nested record share its components
func Test_generator_010(t *testing.T) {
	assert := assert.New(t)
	address := descriptor.Record{Name: "Address", Fields: []descriptor.Field{
		{Name: "city", Type: "String"},
		{Name: "postcode", Type: "String?", Optional: true},
	}}
	home := descriptor.Record{Name: "Home", Fields: []descriptor.Field{{Name: "address", Type: "Address", Description: "Where"}}}
	work := descriptor.Record{Name: "Work", Fields: []descriptor.Field{{Name: "sites", Type: "[Address]"}}}

	// Address is requested last, so it is generated early through Home
	g := mustGenerator(t, []descriptor.Record{home, work, address})
	schemas, err := g.Generate()
	require.NoError(t, err)
	require.Len(t, schemas, 3)
	assert.Equal("Home", schemas[0].Name)
	assert.Equal("Work", schemas[1].Name)
	assert.Equal("Address", schemas[2].Name)

	nested, exists := g.Lookup("Address")
	require.True(t, exists)
	assert.Same(nested, schemas[2].Components)

	inHome, _ := schemas[0].Components.Properties.Get("address")
	homeObject, _ := inHome.AsObject()
	homeProperties, _ := homeObject.Get("properties")
	homeRequired, _ := homeObject.Get("required")

	inWork, _ := schemas[1].Components.Properties.Get("sites")
	workObject, _ := inWork.AsObject()
	workItems, _ := workObject.Get("items")
	workItemsObject, _ := workItems.AsObject()
	workProperties, _ := workItemsObject.Get("properties")
	workRequired, _ := workItemsObject.Get("required")

	top := jsonvalue.ObjectValue(nested.Properties)
	assert.True(jsonvalue.Equal(top, homeProperties))
	assert.True(jsonvalue.Equal(top, workProperties))
	assert.True(jsonvalue.Equal(homeRequired, workRequired))
	assert.JSONEq(`["city"]`, toJSON(t, homeRequired))

	// The field description sits on the wrapper, not the shared properties
	desc, _ := homeObject.Get("description")
	text, _ := desc.AsString()
	assert.Equal("Where", text)
	assert.False(nested.Properties.Has("description"))
}

///////////////////////////////////////////////////////////////////////////////
// BATCH

// Repeated requests are generated once; conflicting declarations fail
func Test_generator_011(t *testing.T) {
	assert := assert.New(t)
	a := descriptor.Record{Name: "A", Fields: []descriptor.Field{{Name: "x", Type: "Int"}}}

	schemas, err := mustGenerator(t, []descriptor.Record{a, a}).Generate()
	assert.NoError(err)
	assert.Len(schemas, 1)

	other := descriptor.Record{Name: "A", Fields: []descriptor.Field{{Name: "y", Type: "Int"}}}
	_, err = generator.New([]descriptor.Record{a, other}, nil)
	assert.ErrorIs(err, fnschema.ErrConflict)

	_, err = generator.New([]descriptor.Record{{}}, nil)
	assert.ErrorIs(err, fnschema.ErrBadParameter)

	schemas, err = mustGenerator(t, nil).Generate()
	assert.NoError(err)
	assert.Empty(schemas)
}

// The first failing field in declaration order is reported
func Test_generator_012(t *testing.T) {
	assert := assert.New(t)
	ok := descriptor.Record{Name: "OK", Fields: []descriptor.Field{{Name: "x", Type: "Int"}}}
	bad := descriptor.Record{Name: "Bad", Fields: []descriptor.Field{
		{Name: "first", Type: "[]"},
		{Name: "second", Type: "Missing"},
	}}
	g := mustGenerator(t, []descriptor.Record{ok, bad})
	_, err := g.Generate()
	assert.ErrorIs(err, fnschema.ErrMalformedContainer)

	var schemaErr *fnschema.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal("first", schemaErr.Field)

	// Nothing partial is cached for the failed record
	_, exists := g.Lookup("Bad")
	assert.False(exists)
}

// Enum descriptions are omitted when there is nothing to say
func Test_generator_013(t *testing.T) {
	assert := assert.New(t)
	plain := descriptor.Enum{Name: "Color", Cases: []descriptor.EnumCase{{Name: "red"}, {Name: "green"}}}
	casesOnly := descriptor.Enum{Name: "Size", Cases: []descriptor.EnumCase{{Name: "s", Description: "Small"}, {Name: "m"}}}
	g := mustGenerator(t, nil, plain, casesOnly)

	fragment, err := g.MapType("Color", "R", "f")
	assert.NoError(err)
	assert.JSONEq(`{"type":"string","enum":["red","green"]}`, toJSON(t, fragment))

	fragment, err = g.MapType("[Size]", "R", "f")
	assert.NoError(err)
	assert.JSONEq(`{"type":"array","items":{"type":"string","enum":["s","m"],"description":"Possible values:\n  - s: Small"}}`, toJSON(t, fragment))
}

// A field description is prepended to an enum description
func Test_generator_014(t *testing.T) {
	assert := assert.New(t)
	record := descriptor.Record{Name: "R", Fields: []descriptor.Field{
		{Name: "priority", Type: "SearchPriority?", Optional: true, Description: "Result ordering"},
	}}
	schemas, err := mustGenerator(t, []descriptor.Record{record}, searchPriority).Generate()
	require.NoError(t, err)
	priority, _ := schemas[0].Components.Properties.Get("priority")
	object, _ := priority.AsObject()
	desc, _ := object.Get("description")
	text, _ := desc.AsString()
	assert.Equal("Result ordering\n\nHow urgently results are needed\n\nPossible values:\n  - standard: Normal ordering\n  - high: Fastest results first", text)
}

// A single record generates only what it references
func Test_generator_015(t *testing.T) {
	assert := assert.New(t)
	address := descriptor.Record{Name: "Address", Fields: []descriptor.Field{{Name: "street", Type: "String"}}}
	person := descriptor.Record{Name: "Person", Fields: []descriptor.Field{{Name: "home", Type: "Address"}}}
	broken := descriptor.Record{Name: "Broken", Fields: []descriptor.Field{{Name: "x", Type: "Set<Int>"}}}
	g := mustGenerator(t, []descriptor.Record{broken, person, address})

	components, err := g.Components("Person")
	require.NoError(t, err)
	assert.Equal([]string{"home"}, components.Required)

	_, exists := g.Lookup("Address")
	assert.True(exists)
	_, exists = g.Lookup("Broken")
	assert.False(exists)

	_, err = g.Components("Missing")
	assert.ErrorIs(err, fnschema.ErrNotFound)
}
