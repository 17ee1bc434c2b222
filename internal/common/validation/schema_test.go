package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSchema = JSONSchema{
	Type: "object",
	Properties: map[string]Property{
		"Medidor":  {Type: "string", MinLength: intPtr(3)},
		"MedidorW": {Type: "string", MinLength: intPtr(3), MaxLength: intPtr(3)},
		"Mas":      {Type: "string", Enum: []string{"no"}},
	},
	Required:             []string{"Medidor", "MedidorW", "Mas"},
	AdditionalProperties: true,
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		doc       map[string]interface{}
		wantValid bool
		wantField string
	}{
		{
			name:      "valid",
			doc:       map[string]interface{}{"Medidor": "999999", "MedidorW": "999", "Mas": "no"},
			wantValid: true,
		},
		{
			name:      "missing field",
			doc:       map[string]interface{}{"Medidor": "999999", "Mas": "no"},
			wantField: "MedidorW",
		},
		{
			name:      "too short",
			doc:       map[string]interface{}{"Medidor": "99", "MedidorW": "999", "Mas": "no"},
			wantField: "Medidor",
		},
		{
			name:      "enum mismatch",
			doc:       map[string]interface{}{"Medidor": "999999", "MedidorW": "999", "Mas": "si"},
			wantField: "Mas",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Validate(tt.doc, testSchema)
			require.NoError(t, err)
			assert.Equal(t, tt.wantValid, result.Valid)
			if !tt.wantValid {
				assert.True(t, result.HasErrors(tt.wantField), "errors: %v", result.GetErrorMessages())
			}
		})
	}
}

func TestGetSchemaFromJSON(t *testing.T) {
	schema, err := GetSchemaFromJSON(`{"type":"object","properties":{"ID":{"type":"string"}},"required":["ID"]}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"ID"}, schema.Required)
	assert.Equal(t, "string", schema.Properties["ID"].Type)
}

func intPtr(v int) *int {
	return &v
}
