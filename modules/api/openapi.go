package api

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	apiTitle   = "Task API"
	apiVersion = "1.0.0"
)

// BuildOpenAPIDocument derives an OpenAPI 3.0 document from the route
// table. It is rebuilt on demand; nothing is cached across requests.
func BuildOpenAPIDocument(routes []Route) map[string]any {
	paths := make(map[string]any)
	schemas := make(map[string]any)

	for _, route := range routes {
		docPath := strings.ReplaceAll(route.Path, ":id", "{id}")
		operations, _ := paths[docPath].(map[string]any)
		if operations == nil {
			operations = make(map[string]any)
			paths[docPath] = operations
		}
		operations[strings.ToLower(route.Method)] = buildOperation(route, schemas)
	}

	return map[string]any{
		"openapi": "3.0.3",
		"info": map[string]any{
			"title":       apiTitle,
			"version":     apiVersion,
			"description": "Task management API with delegated session authentication.",
		},
		"paths": paths,
		"components": map[string]any{
			"schemas": schemas,
		},
		"tags": []map[string]any{
			{"name": "tasks", "description": "Task CRUD operations"},
		},
	}
}

func buildOperation(route Route, schemas map[string]any) map[string]any {
	operation := map[string]any{
		"operationId": route.OperationID,
		"summary":     route.Summary,
		"tags":        route.Tags,
		"responses":   buildResponses(route, schemas),
	}

	if route.IDParam {
		operation["parameters"] = []map[string]any{
			{
				"name":     "id",
				"in":       "path",
				"required": true,
				"schema": map[string]any{
					"type":    "integer",
					"minimum": 1,
				},
			},
		}
	}

	if route.Body != nil {
		operation["requestBody"] = map[string]any{
			"required": true,
			"content": map[string]any{
				"application/json": map[string]any{
					"schema": schemaRef(route.Body, schemas),
				},
			},
		}
	}

	return operation
}

func buildResponses(route Route, schemas map[string]any) map[string]any {
	responses := make(map[string]any)
	for status, spec := range route.Responses {
		response := map[string]any{
			"description": spec.Description,
		}
		if spec.Shape != nil {
			var schema map[string]any
			if spec.Array {
				schema = map[string]any{
					"type":  "array",
					"items": schemaRef(spec.Shape, schemas),
				}
			} else {
				schema = schemaRef(spec.Shape, schemas)
			}
			response["content"] = map[string]any{
				"application/json": map[string]any{
					"schema": schema,
				},
			}
		}
		responses[strconv.Itoa(status)] = response
	}
	return responses
}

// schemaRef registers the shape's schema under components and returns a
// reference to it.
func schemaRef(shape *Shape, schemas map[string]any) map[string]any {
	if _, done := schemas[shape.Name]; !done {
		schemas[shape.Name] = buildSchema(shape)
	}
	return map[string]any{
		"$ref": fmt.Sprintf("#/components/schemas/%s", shape.Name),
	}
}

func buildSchema(shape *Shape) map[string]any {
	properties := make(map[string]any, len(shape.Fields))
	var required []string

	for _, field := range shape.Fields {
		properties[field.Name] = buildProperty(&field)
		if field.Required {
			required = append(required, field.Name)
		}
	}

	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if shape.Description != "" {
		schema["description"] = shape.Description
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	if shape.MinFields > 0 {
		schema["minProperties"] = shape.MinFields
	}
	return schema
}

func buildProperty(field *Field) map[string]any {
	property := make(map[string]any)
	switch field.Type {
	case FieldInteger:
		property["type"] = "integer"
	case FieldBoolean:
		property["type"] = "boolean"
	case FieldDateTime:
		property["type"] = "string"
		property["format"] = "date-time"
	case FieldArray:
		property["type"] = "array"
		property["items"] = map[string]any{"type": "object"}
	default:
		property["type"] = "string"
		if field.MinLength > 0 {
			property["minLength"] = field.MinLength
		}
		if field.MaxLength > 0 {
			property["maxLength"] = field.MaxLength
		}
	}
	if field.ReadOnly {
		property["readOnly"] = true
	}
	if field.Description != "" {
		property["description"] = field.Description
	}
	return property
}
