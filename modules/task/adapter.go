package task

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// taskAdapter wraps ServiceContainer for type-safe cross-module
// communication. It implements the TaskPort interface.
type taskAdapter struct {
	container mono.ServiceContainer
}

// NewTaskAdapter creates a new adapter for task services. container is
// the ServiceContainer received via SetDependencyServiceContainer.
func NewTaskAdapter(container mono.ServiceContainer) TaskPort {
	if container == nil {
		panic("task adapter requires non-nil ServiceContainer")
	}
	return &taskAdapter{container: container}
}

// Create creates a new task via the create service.
func (a *taskAdapter) Create(ctx context.Context, req *CreateTaskRequest) (*TaskResponse, error) {
	var resp TaskResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"create",
		json.Marshal,
		json.Unmarshal,
		req,
		&resp,
	); err != nil {
		return nil, mapServiceError("create", err)
	}
	return &resp, nil
}

// Get retrieves a task by ID via the get service.
func (a *taskAdapter) Get(ctx context.Context, taskID uint) (*TaskResponse, error) {
	req := GetTaskRequest{TaskID: taskID}
	var resp TaskResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"get",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, mapServiceError("get", err)
	}
	return &resp, nil
}

// List lists all tasks via the list service.
func (a *taskAdapter) List(ctx context.Context) (*ListTasksResponse, error) {
	req := ListTasksRequest{}
	var resp ListTasksResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"list",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, mapServiceError("list", err)
	}
	return &resp, nil
}

// Update applies a partial update via the update service.
func (a *taskAdapter) Update(ctx context.Context, req *UpdateTaskRequest) (*TaskResponse, error) {
	var resp TaskResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"update",
		json.Marshal,
		json.Unmarshal,
		req,
		&resp,
	); err != nil {
		return nil, mapServiceError("update", err)
	}
	return &resp, nil
}

// Delete deletes a task via the delete service.
func (a *taskAdapter) Delete(ctx context.Context, taskID uint) error {
	req := DeleteTaskRequest{TaskID: taskID}
	var resp DeleteTaskResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"delete",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return mapServiceError("delete", err)
	}
	return nil
}

// mapServiceError restores sentinel errors that crossed the service
// container boundary as plain strings.
func mapServiceError(service string, err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, ErrNotFound.Error()):
		return ErrNotFound
	case strings.Contains(msg, ErrEmptyUpdate.Error()):
		return ErrEmptyUpdate
	}
	return fmt.Errorf("%s service call failed: %w", service, err)
}
