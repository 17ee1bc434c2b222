package submitclaim

import "enre-reclamos/internal/common/validation"

// GetFormSchema describes the form payload posted to the claim endpoint.
func GetFormSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"Medidor", "Empresa", "IDCliente", "MedidorW", "Mas", "ID", "Fecha", "__Click"},
		Properties: map[string]validation.Property{
			"Medidor": {
				Type:        "string",
				Description: "Meter number",
				MinLength:   intPtr(3),
			},
			"Empresa": {
				Type:        "string",
				Description: "Distributor name",
				MinLength:   intPtr(1),
			},
			"IDCliente": {
				Type:        "string",
				Description: "Customer number",
				MinLength:   intPtr(1),
			},
			"MedidorW": {
				Type:        "string",
				Description: "Last three characters of the meter number",
				MinLength:   intPtr(3),
				MaxLength:   intPtr(3),
			},
			"Mas": {
				Type: "string",
				Enum: []string{"no"},
			},
			"ID": {
				Type:      "string",
				MinLength: intPtr(1),
			},
			"Fecha": {
				Type:        "string",
				Description: "Submission date as MM/dd/yyyy",
				Pattern:     strPtr(`^\d{2}/\d{2}/\d{4}$`),
			},
			"__Click": {
				Type:      "string",
				MinLength: intPtr(1),
			},
		},
		AdditionalProperties: true,
	}
}

func intPtr(i int) *int {
	return &i
}

func strPtr(s string) *string {
	return &s
}
