package blueprint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/apidocs/blueprint"
)

func TestInferSchema(t *testing.T) {
	t.Parallel()

	s, err := blueprint.InferSchema([]byte(`{
		"id": 1,
		"price": 9.5,
		"name": "a",
		"active": true,
		"deleted_at": null,
		"tags": ["x", "y"],
		"sizes": [1, 2.5],
		"mixed": [1, "a", 2],
		"parts": [{"qty": 1}],
		"empty": []
	}`))
	require.NoError(t, err)

	assert.Equal(t, blueprint.SchemaDraft, s.Schema)
	assert.Equal(t, "object", s.Type)
	require.Len(t, s.Properties, 10)

	tcs := map[string]struct {
		wantType  string
		wantItems string
		noItems   bool
	}{
		"id":         {wantType: "integer", noItems: true},
		"price":      {wantType: "number", noItems: true},
		"name":       {wantType: "string", noItems: true},
		"active":     {wantType: "boolean", noItems: true},
		"deleted_at": {wantType: "", noItems: true},
		"tags":       {wantType: "array", wantItems: "string"},
		"sizes":      {wantType: "array", wantItems: "number"},
		"mixed":      {wantType: "array", noItems: true},
		"parts":      {wantType: "array", wantItems: "object"},
		"empty":      {wantType: "array", noItems: true},
	}

	for name, tc := range tcs {
		prop := s.Properties[name]
		require.NotNil(t, prop, name)
		assert.Equal(t, tc.wantType, prop.Type, name)

		if tc.noItems {
			assert.Nil(t, prop.Items, name)

			continue
		}

		require.NotNil(t, prop.Items, name)
		assert.Equal(t, tc.wantItems, prop.Items.Type, name)
	}

	assert.Equal(t, "integer", s.Properties["parts"].Items.Properties["qty"].Type)
}

func TestInferSchemaInvalid(t *testing.T) {
	t.Parallel()

	_, err := blueprint.InferSchema([]byte(`{"id":`))
	require.ErrorIs(t, err, blueprint.ErrDataFormat)
}
