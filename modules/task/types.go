package task

import (
	"context"
	"time"
)

// CreateTaskRequest is the request for creating a task.
// Completed is optional and defaults to false.
type CreateTaskRequest struct {
	Name      string `json:"name"`
	Completed *bool  `json:"completed,omitempty"`
}

// GetTaskRequest is the request for getting a task.
type GetTaskRequest struct {
	TaskID uint `json:"task_id"`
}

// UpdateTaskRequest is the request for a partial update. Nil pointers
// mean "field not supplied"; at least one field must be present.
type UpdateTaskRequest struct {
	TaskID    uint    `json:"task_id"`
	Name      *string `json:"name,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// DeleteTaskRequest is the request for deleting a task.
type DeleteTaskRequest struct {
	TaskID uint `json:"task_id"`
}

// DeleteTaskResponse is the response for deleting a task.
type DeleteTaskResponse struct {
	Deleted bool `json:"deleted"`
}

// ListTasksRequest is the request for listing tasks.
type ListTasksRequest struct{}

// ListTasksResponse is the response for listing tasks.
type ListTasksResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Total int            `json:"total"`
}

// TaskResponse is the read shape of a single task.
type TaskResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TaskPort defines the interface for task operations. This is the
// contract driving adapters (the HTTP API) use to reach the core domain.
type TaskPort interface {
	Create(ctx context.Context, req *CreateTaskRequest) (*TaskResponse, error)
	Get(ctx context.Context, taskID uint) (*TaskResponse, error)
	List(ctx context.Context) (*ListTasksResponse, error)
	Update(ctx context.Context, req *UpdateTaskRequest) (*TaskResponse, error)
	Delete(ctx context.Context, taskID uint) error
}
