package generator

import (
	"errors"
	"strings"
	"unicode"

	// Packages
	fnschema "github.com/mutablelogic/go-fnschema"
	descriptor "github.com/mutablelogic/go-fnschema/pkg/descriptor"
	jsonvalue "github.com/mutablelogic/go-fnschema/pkg/jsonvalue"
	typeexpr "github.com/mutablelogic/go-fnschema/pkg/typeexpr"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	keyType                 = "type"
	keyFormat               = "format"
	keyEnum                 = "enum"
	keyDescription          = "description"
	keyItems                = "items"
	keyAdditionalProperties = "additionalProperties"
	keyProperties           = "properties"
	keyRequired             = "required"
)

const (
	typeString  = "string"
	typeInteger = "integer"
	typeNumber  = "number"
	typeBoolean = "boolean"
	typeArray   = "array"
	typeObject  = "object"
)

const (
	mapKeyType         = "String"
	enumValuesHeading  = "Possible values:"
	descriptionDivider = "\n\n"
)

// primitive is a type and optional format for a bare type name
type primitive struct {
	typ, format string
}

var primitives = map[string]primitive{
	"String":    {typeString, ""},
	"Character": {typeString, ""},
	"Substring": {typeString, ""},
	"Int":       {typeInteger, ""},
	"Int8":      {typeInteger, ""},
	"Int16":     {typeInteger, ""},
	"Int32":     {typeInteger, ""},
	"Int64":     {typeInteger, ""},
	"UInt":      {typeInteger, ""},
	"UInt8":     {typeInteger, ""},
	"UInt16":    {typeInteger, ""},
	"UInt32":    {typeInteger, ""},
	"UInt64":    {typeInteger, ""},
	"Bool":      {typeBoolean, ""},
	"Double":    {typeNumber, ""},
	"Float":     {typeNumber, ""},
	"Float16":   {typeNumber, ""},
	"Float32":   {typeNumber, ""},
	"Float64":   {typeNumber, ""},
	"Float80":   {typeNumber, ""},
	"CGFloat":   {typeNumber, ""},
	"Decimal":   {typeNumber, ""},
	"Date":      {typeString, "date-time"},
	"UUID":      {typeString, "uuid"},
	"Data":      {typeString, "byte"},
	"URL":       {typeString, "uri"},
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// MapType maps a raw type string to a schema fragment. The record and field
// name the reference for error reporting. Mapping a record which is a
// pending target generates and caches it.
func (g *Generator) MapType(raw, record, field string) (jsonvalue.Value, error) {
	expr, err := typeexpr.Parse(raw)
	if err != nil {
		return jsonvalue.Null(), withContext(err, record, field)
	}

	switch expr.Kind {
	case typeexpr.KindMap:
		if expr.Key != mapKeyType {
			return jsonvalue.Null(), &fnschema.SchemaError{
				Kind: fnschema.ErrUnsupportedType, Type: expr.Key, Record: record, Field: field,
				Detail: "map keys must be " + mapKeyType,
			}
		}
		value, err := g.MapType(expr.Value, record, field)
		if err != nil {
			return jsonvalue.Null(), err
		}
		return jsonvalue.ObjectValue(jsonvalue.NewObject().
			Set(keyType, jsonvalue.String(typeObject)).
			Set(keyAdditionalProperties, value),
		), nil
	case typeexpr.KindArray:
		items, err := g.MapType(expr.Elem, record, field)
		if err != nil {
			return jsonvalue.Null(), err
		}
		return jsonvalue.ObjectValue(jsonvalue.NewObject().
			Set(keyType, jsonvalue.String(typeArray)).
			Set(keyItems, items),
		), nil
	default:
		return g.mapName(expr.Name, record, field)
	}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// mapName resolves a bare type name against the primitives, enumerations
// and records, in that order
func (g *Generator) mapName(name, record, field string) (jsonvalue.Value, error) {
	if p, exists := primitives[name]; exists {
		fragment := jsonvalue.NewObject().Set(keyType, jsonvalue.String(p.typ))
		if p.format != "" {
			fragment.Set(keyFormat, jsonvalue.String(p.format))
		}
		return jsonvalue.ObjectValue(fragment), nil
	}

	if enum, exists := g.enums[name]; exists {
		return enumFragment(enum), nil
	}

	if components, exists := g.cache[name]; exists {
		return components.Fragment(), nil
	}

	if target, exists := g.targets[name]; exists {
		components, err := g.generate(target)
		if err != nil {
			return jsonvalue.Null(), err
		}
		return components.Fragment(), nil
	}

	if !isTypeName(name) {
		return jsonvalue.Null(), fnschema.NewUnsupportedType(name, record, field)
	}
	return jsonvalue.Null(), fnschema.NewUnrequestedReference(name, record, field)
}

// enumFragment returns a string fragment listing the case names. The
// description combines the enumeration's own description with a bullet for
// each documented case.
func enumFragment(enum descriptor.Enum) jsonvalue.Value {
	fragment := jsonvalue.NewObject().
		Set(keyType, jsonvalue.String(typeString)).
		Set(keyEnum, jsonvalue.Strings(enum.CaseNames()...))

	var parts []string
	if desc := strings.TrimSpace(enum.Description); desc != "" {
		parts = append(parts, desc)
	}
	var bullets []string
	for _, c := range enum.Cases {
		if desc := strings.TrimSpace(c.Description); desc != "" {
			bullets = append(bullets, "  - "+c.Name+": "+desc)
		}
	}
	if len(bullets) > 0 {
		parts = append(parts, enumValuesHeading+"\n"+strings.Join(bullets, "\n"))
	}
	if len(parts) > 0 {
		fragment.Set(keyDescription, jsonvalue.String(strings.Join(parts, descriptionDivider)))
	}

	return jsonvalue.ObjectValue(fragment)
}

// withDescription prepends a field description to the fragment's own
// description, if it has one
func withDescription(fragment jsonvalue.Value, desc string) jsonvalue.Value {
	desc = strings.TrimSpace(desc)
	o, ok := fragment.AsObject()
	if !ok || desc == "" {
		return fragment
	}
	if existing, ok := o.Get(keyDescription); ok {
		if text, ok := existing.AsString(); ok && text != "" {
			desc = desc + descriptionDivider + text
		}
	}
	o.Set(keyDescription, jsonvalue.String(desc))
	return fragment
}

// withContext fills in the record and field of a parser error
func withContext(err error, record, field string) error {
	var schemaErr *fnschema.SchemaError
	if errors.As(err, &schemaErr) {
		result := *schemaErr
		result.Record = record
		result.Field = field
		return &result
	}
	return err
}

// isTypeName returns true for a name which could refer to a declared type,
// including qualified names such as "Outer.Inner"
func isTypeName(name string) bool {
	if name == "" {
		return false
	}
	for _, part := range strings.Split(name, ".") {
		if part == "" {
			return false
		}
		for i, r := range part {
			if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
				continue
			}
			return false
		}
	}
	return true
}
