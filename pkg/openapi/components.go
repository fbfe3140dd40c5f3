package openapi

import "maps"

// NewComponents creates Components with shared schemas and error responses.
func NewComponents() *Components {
	return &Components{
		Schemas: map[string]*Schema{
			"Error": {
				Type: "object",
				Properties: map[string]*Schema{
					"error":   {Type: "string", Description: "Error message"},
					"message": {Type: "string", Description: "Underlying cause, when available"},
				},
				Required: []string{"error"},
			},
		},
		Responses: map[string]*Response{
			"BadRequest": {
				Description: "Invalid request",
				Content:     jsonContent(SchemaRef("Error")),
			},
			"NotFound": {
				Description: "Resource not found",
				Content:     jsonContent(SchemaRef("Error")),
			},
			"ServerError": {
				Description: "Internal failure",
				Content:     jsonContent(SchemaRef("Error")),
			},
		},
	}
}

// AddSchemas merges the given schemas into the component schemas.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	maps.Copy(c.Schemas, schemas)
}

// AddResponses merges the given responses into the component responses.
func (c *Components) AddResponses(responses map[string]*Response) {
	maps.Copy(c.Responses, responses)
}

func jsonContent(schema *Schema) map[string]*MediaType {
	return map[string]*MediaType{
		"application/json": {Schema: schema},
	}
}
