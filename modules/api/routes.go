package api

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// ResponseSpec declares one possible response of a route.
type ResponseSpec struct {
	Description string
	Shape       *Shape // nil means no body
	Array       bool   // body is an array of Shape
}

// Route declares one endpoint: method, path, request shape and the map
// of status code to response shape. Routes are pure data with a handler
// attached; the dispatcher registers them and the documentation exporter
// iterates them. Paths use Fiber parameter syntax (":id").
type Route struct {
	Method      string
	Path        string
	OperationID string
	Summary     string
	Tags        []string
	Body        *Shape
	IDParam     bool
	Responses   map[int]ResponseSpec
	Handler     fiber.Handler
}

// taskRoutes is the route table: the single source of truth for both
// dispatch and documentation.
func taskRoutes(h *Handlers) []Route {
	return []Route{
		{
			Method:      http.MethodGet,
			Path:        "/api/tasks",
			OperationID: "listTasks",
			Summary:     "List all tasks in stable id order",
			Tags:        []string{"tasks"},
			Responses: map[int]ResponseSpec{
				http.StatusOK: {Description: "All tasks", Shape: &TaskShape, Array: true},
			},
			Handler: h.ListTasks,
		},
		{
			Method:      http.MethodPost,
			Path:        "/api/tasks",
			OperationID: "createTask",
			Summary:     "Create a task",
			Tags:        []string{"tasks"},
			Body:        &TaskCreateShape,
			Responses: map[int]ResponseSpec{
				http.StatusOK:                  {Description: "The created task", Shape: &TaskShape},
				http.StatusUnprocessableEntity: {Description: "Validation failure", Shape: &ValidationErrorShape},
			},
			Handler: h.CreateTask,
		},
		{
			Method:      http.MethodGet,
			Path:        "/api/tasks/:id",
			OperationID: "getTask",
			Summary:     "Get a task by id",
			Tags:        []string{"tasks"},
			IDParam:     true,
			Responses: map[int]ResponseSpec{
				http.StatusOK:                  {Description: "The matching task", Shape: &TaskShape},
				http.StatusNotFound:            {Description: "No task with this id", Shape: &ErrorShape},
				http.StatusUnprocessableEntity: {Description: "Malformed id", Shape: &ValidationErrorShape},
			},
			Handler: h.GetTask,
		},
		{
			Method:      http.MethodPatch,
			Path:        "/api/tasks/:id",
			OperationID: "updateTask",
			Summary:     "Partially update a task",
			Tags:        []string{"tasks"},
			IDParam:     true,
			Body:        &TaskUpdateShape,
			Responses: map[int]ResponseSpec{
				http.StatusOK:                  {Description: "The updated task", Shape: &TaskShape},
				http.StatusNotFound:            {Description: "No task with this id", Shape: &ErrorShape},
				http.StatusUnprocessableEntity: {Description: "Empty body or malformed input", Shape: &ValidationErrorShape},
			},
			Handler: h.UpdateTask,
		},
		{
			Method:      http.MethodDelete,
			Path:        "/api/tasks/:id",
			OperationID: "deleteTask",
			Summary:     "Delete a task",
			Tags:        []string{"tasks"},
			IDParam:     true,
			Responses: map[int]ResponseSpec{
				http.StatusNoContent:           {Description: "Deleted, no body"},
				http.StatusNotFound:            {Description: "No task with this id", Shape: &ErrorShape},
				http.StatusUnprocessableEntity: {Description: "Malformed id", Shape: &ValidationErrorShape},
			},
			Handler: h.DeleteTask,
		},
	}
}
