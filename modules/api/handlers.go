package api

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/example/task-api/modules/task"
	"github.com/gofiber/fiber/v2"
)

// Handlers contains the HTTP handlers for the task surface. Each handler
// validates its input against the record shapes, performs a single
// persistence operation through the task port and shapes the response.
type Handlers struct {
	tasks  task.TaskPort
	logger *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(tasks task.TaskPort) *Handlers {
	return &Handlers{
		tasks:  tasks,
		logger: slog.Default(),
	}
}

// ListTasks handles GET /api/tasks.
func (h *Handlers) ListTasks(c *fiber.Ctx) error {
	resp, err := h.tasks.List(c.UserContext())
	if err != nil {
		h.logger.Error("list tasks failed", "error", err)
		return fiber.ErrInternalServerError
	}
	return c.JSON(resp.Tasks)
}

// CreateTask handles POST /api/tasks.
func (h *Handlers) CreateTask(c *fiber.Ctx) error {
	decoded, verr := ValidateBody(&TaskCreateShape, c.Body())
	if verr != nil {
		return renderValidationError(c, verr)
	}

	req := task.CreateTaskRequest{
		Name: decoded["name"].(string),
	}
	if completed, ok := decoded["completed"].(bool); ok {
		req.Completed = &completed
	}

	resp, err := h.tasks.Create(c.UserContext(), &req)
	if err != nil {
		h.logger.Error("create task failed", "error", err)
		return fiber.ErrInternalServerError
	}
	return c.JSON(resp)
}

// GetTask handles GET /api/tasks/:id.
func (h *Handlers) GetTask(c *fiber.Ctx) error {
	id, verr := parseID(c)
	if verr != nil {
		return renderValidationError(c, verr)
	}

	resp, err := h.tasks.Get(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, task.ErrNotFound) {
			return renderNotFound(c)
		}
		h.logger.Error("get task failed", "id", id, "error", err)
		return fiber.ErrInternalServerError
	}
	return c.JSON(resp)
}

// UpdateTask handles PATCH /api/tasks/:id. An empty body is rejected
// before the store is touched.
func (h *Handlers) UpdateTask(c *fiber.Ctx) error {
	id, verr := parseID(c)
	if verr != nil {
		return renderValidationError(c, verr)
	}

	decoded, verr := ValidateBody(&TaskUpdateShape, c.Body())
	if verr != nil {
		return renderValidationError(c, verr)
	}

	req := task.UpdateTaskRequest{TaskID: id}
	if name, ok := decoded["name"].(string); ok {
		req.Name = &name
	}
	if completed, ok := decoded["completed"].(bool); ok {
		req.Completed = &completed
	}

	resp, err := h.tasks.Update(c.UserContext(), &req)
	if err != nil {
		switch {
		case errors.Is(err, task.ErrNotFound):
			return renderNotFound(c)
		case errors.Is(err, task.ErrEmptyUpdate):
			return renderValidationError(c, &ValidationError{Code: codeEmptyUpdate})
		}
		h.logger.Error("update task failed", "id", id, "error", err)
		return fiber.ErrInternalServerError
	}
	return c.JSON(resp)
}

// DeleteTask handles DELETE /api/tasks/:id.
func (h *Handlers) DeleteTask(c *fiber.Ctx) error {
	id, verr := parseID(c)
	if verr != nil {
		return renderValidationError(c, verr)
	}

	if err := h.tasks.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, task.ErrNotFound) {
			return renderNotFound(c)
		}
		h.logger.Error("delete task failed", "id", id, "error", err)
		return fiber.ErrInternalServerError
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parseID extracts the :id path parameter as a positive integer.
func parseID(c *fiber.Ctx) (uint, *ValidationError) {
	raw := c.Params("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, &ValidationError{
			Code: codeInvalidID,
			Fields: []FieldError{
				{Field: "id", Rule: "positiveInteger", Message: "id must be a positive integer"},
			},
		}
	}
	return uint(id), nil
}

func renderValidationError(c *fiber.Ctx, verr *ValidationError) error {
	message := "Request validation failed"
	if len(verr.Fields) > 0 {
		message = verr.Fields[0].Message
	} else if verr.Code == codeEmptyUpdate {
		message = "Update must include at least one field"
	}
	return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
		Error:   verr.Code,
		Message: message,
		Details: verr.Fields,
	})
}

func renderNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
		Error:   "not_found",
		Message: "Task not found",
	})
}
