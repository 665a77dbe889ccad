package api

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// referenceHTML embeds the Scalar API reference viewer pointed at /doc.
const referenceHTML = `<!doctype html>
<html>
  <head>
    <title>Task API Reference</title>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
  </head>
  <body>
    <script id="api-reference" data-url="/doc"></script>
    <script src="https://cdn.jsdelivr.net/npm/@scalar/api-reference"></script>
  </body>
</html>
`

// handleOpenAPI serves the machine-readable OpenAPI document.
func (m *APIModule) handleOpenAPI(c *fiber.Ctx) error {
	return c.JSON(BuildOpenAPIDocument(m.routes))
}

// handleReference serves the human-browsable rendering.
func (m *APIModule) handleReference(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(referenceHTML)
}

// handleLLMsText serves a plain-text markdown derivative of the API
// documentation. A generation failure degrades to a server error.
func (m *APIModule) handleLLMsText(c *fiber.Ctx) error {
	text, err := RenderLLMsText(m.routes)
	if err != nil {
		m.logger.Error("llms.txt generation failed", "error", err)
		return fiber.ErrInternalServerError
	}
	c.Set(fiber.HeaderContentType, "text/markdown; charset=utf-8")
	return c.SendString(text)
}

// RenderLLMsText renders the route table as plain markdown for
// non-interactive consumers.
func RenderLLMsText(routes []Route) (string, error) {
	if len(routes) == 0 {
		return "", errors.New("no routes to document")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", apiTitle)
	b.WriteString("Task management API with delegated session authentication.\n")
	fmt.Fprintf(&b, "Version %s. OpenAPI document at /doc, interactive reference at /reference.\n\n", apiVersion)

	documented := make(map[string]bool)
	for _, route := range routes {
		fmt.Fprintf(&b, "## %s %s\n\n", route.Method, route.Path)
		fmt.Fprintf(&b, "%s.\n\n", route.Summary)

		if route.IDParam {
			b.WriteString("Path parameter: `id`, a positive integer.\n\n")
		}
		if route.Body != nil {
			fmt.Fprintf(&b, "Request body: %s\n\n", route.Body.Name)
			writeShapeFields(&b, route.Body)
			documented[route.Body.Name] = true
		}

		statuses := make([]int, 0, len(route.Responses))
		for status := range route.Responses {
			statuses = append(statuses, status)
		}
		sort.Ints(statuses)

		b.WriteString("Responses:\n\n")
		for _, status := range statuses {
			spec := route.Responses[status]
			line := fmt.Sprintf("- `%d`: %s", status, spec.Description)
			if spec.Shape != nil {
				shape := spec.Shape.Name
				if spec.Array {
					shape += "[]"
				}
				line += fmt.Sprintf(" (%s)", shape)
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("## Schemas\n\n")
	for _, shape := range []*Shape{&TaskShape, &TaskCreateShape, &TaskUpdateShape, &ErrorShape, &ValidationErrorShape} {
		fmt.Fprintf(&b, "### %s\n\n%s\n\n", shape.Name, shape.Description)
		writeShapeFields(&b, shape)
	}

	return b.String(), nil
}

func writeShapeFields(b *strings.Builder, shape *Shape) {
	for _, field := range shape.Fields {
		var notes []string
		if field.Required {
			notes = append(notes, "required")
		}
		if field.ReadOnly {
			notes = append(notes, "server-generated")
		}
		if field.MaxLength > 0 {
			notes = append(notes, fmt.Sprintf("max %d chars", field.MaxLength))
		}
		line := fmt.Sprintf("- `%s` (%s)", field.Name, field.Type)
		if len(notes) > 0 {
			line += ": " + strings.Join(notes, ", ")
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")
}
