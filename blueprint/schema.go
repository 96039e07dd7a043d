package blueprint

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// SchemaDraft is the $schema of inferred schemas.
const SchemaDraft = "http://json-schema.org/draft-07/schema#"

// JSON Schema type constants.
const (
	typeBoolean = "boolean"
	typeInteger = "integer"
	typeNumber  = "number"
	typeString  = "string"
	typeArray   = "array"
	typeObject  = "object"
)

// InferSchema returns a JSON Schema describing the shape of a JSON body.
// Objects list their properties, arrays describe their items when the
// elements agree on a type, and null values are left unconstrained.
func InferSchema(body []byte) (*jsonschema.Schema, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v any

	err := dec.Decode(&v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataFormat, err)
	}

	s := inferValue(v)
	s.Schema = SchemaDraft

	return s, nil
}

func inferValue(v any) *jsonschema.Schema {
	switch v := v.(type) {
	case map[string]any:
		s := &jsonschema.Schema{Type: typeObject}
		if len(v) > 0 {
			s.Properties = make(map[string]*jsonschema.Schema, len(v))
		}

		for k, child := range v {
			s.Properties[k] = inferValue(child)
		}

		return s

	case []any:
		s := &jsonschema.Schema{Type: typeArray}
		s.Items = inferItems(v)

		return s
	}

	return &jsonschema.Schema{Type: inferType(v)}
}

// inferType returns the JSON Schema type of a scalar, or "" for null.
func inferType(v any) string {
	switch v := v.(type) {
	case bool:
		return typeBoolean
	case json.Number:
		if _, err := v.Int64(); err == nil {
			return typeInteger
		}

		return typeNumber
	case string:
		return typeString
	case []any:
		return typeArray
	case map[string]any:
		return typeObject
	}

	return ""
}

// inferItems describes the elements of an array. Mixed element types widen
// to no constraint; objects use the first element's shape.
func inferItems(values []any) *jsonschema.Schema {
	if len(values) == 0 {
		return nil
	}

	resultType := inferType(values[0])
	for _, val := range values[1:] {
		elemType := inferType(val)
		if elemType == "" {
			continue
		}

		if resultType != "" {
			elemType = widenType(resultType, elemType)
			if elemType == "" {
				return nil
			}
		}

		resultType = elemType
	}

	switch resultType {
	case "":
		return nil
	case typeObject, typeArray:
		for _, val := range values {
			if inferType(val) == resultType {
				return inferValue(val)
			}
		}
	}

	return &jsonschema.Schema{Type: resultType}
}

// widenType returns the widened type when merging two type strings.
// Returns empty string (no constraint) for incompatible types.
func widenType(a, b string) string {
	if a == b {
		return a
	}

	if a == "" {
		return b
	}

	if b == "" {
		return a
	}

	if (a == typeInteger && b == typeNumber) || (a == typeNumber && b == typeInteger) {
		return typeNumber
	}

	return ""
}

// prettySchema renders the inferred schema for body with two-space indents.
func prettySchema(body []byte) (string, error) {
	s, err := InferSchema(body)
	if err != nil {
		return "", err
	}

	out, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDataFormat, err)
	}

	return string(out), nil
}
