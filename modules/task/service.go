package task

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	domain "github.com/example/task-api/domain/task"
	"github.com/example/task-api/events"
	"github.com/go-monolith/mono"
)

// ErrEmptyUpdate is returned when a partial update supplies no fields.
var ErrEmptyUpdate = errors.New("update must include at least one field")

// createTask handles the create service request.
func (m *TaskModule) createTask(_ context.Context, req CreateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	if req.Name == "" {
		return TaskResponse{}, fmt.Errorf("name is required")
	}

	newTask := &domain.Task{
		Name: req.Name,
	}
	if req.Completed != nil {
		newTask.Completed = *req.Completed
	}

	// The database assigns the ID; GORM fills both timestamps.
	if err := m.repo.Create(newTask); err != nil {
		return TaskResponse{}, fmt.Errorf("failed to save task: %w", err)
	}

	if m.eventBus != nil {
		event := events.TaskCreatedEvent{
			TaskID:    newTask.ID,
			Name:      newTask.Name,
			Completed: newTask.Completed,
			CreatedAt: newTask.CreatedAt,
		}
		if err := events.TaskCreatedV1.Publish(m.eventBus, event, nil); err != nil {
			// Event publishing is best-effort; log but don't fail the operation
			log.Printf("[task] Warning: failed to publish TaskCreated event for task %d: %v", newTask.ID, err)
		}
	}

	return toTaskResponse(newTask), nil
}

// getTask handles the get service request.
func (m *TaskModule) getTask(_ context.Context, req GetTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	task, err := m.repo.FindByID(req.TaskID)
	if err != nil {
		return TaskResponse{}, err
	}
	return toTaskResponse(task), nil
}

// listTasks handles the list service request.
func (m *TaskModule) listTasks(_ context.Context, _ ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	tasks, err := m.repo.FindAll()
	if err != nil {
		return ListTasksResponse{}, err
	}

	response := ListTasksResponse{
		Tasks: make([]TaskResponse, 0, len(tasks)),
		Total: len(tasks),
	}
	for _, task := range tasks {
		response.Tasks = append(response.Tasks, toTaskResponse(task))
	}
	return response, nil
}

// updateTask handles the update service request. Only supplied fields
// change; UpdatedAt is refreshed by GORM on save.
func (m *TaskModule) updateTask(_ context.Context, req UpdateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	if req.Name == nil && req.Completed == nil {
		return TaskResponse{}, ErrEmptyUpdate
	}

	task, err := m.repo.FindByID(req.TaskID)
	if err != nil {
		return TaskResponse{}, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return TaskResponse{}, fmt.Errorf("name cannot be empty")
		}
		task.Name = *req.Name
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}

	if err := m.repo.Save(task); err != nil {
		return TaskResponse{}, err
	}

	if m.eventBus != nil {
		event := events.TaskUpdatedEvent{
			TaskID:    task.ID,
			Name:      task.Name,
			Completed: task.Completed,
			UpdatedAt: task.UpdatedAt,
		}
		if err := events.TaskUpdatedV1.Publish(m.eventBus, event, nil); err != nil {
			log.Printf("[task] Warning: failed to publish TaskUpdated event for task %d: %v", task.ID, err)
		}
	}

	return toTaskResponse(task), nil
}

// deleteTask handles the delete service request.
func (m *TaskModule) deleteTask(_ context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskResponse, error) {
	if err := m.repo.Delete(req.TaskID); err != nil {
		return DeleteTaskResponse{Deleted: false}, err
	}

	if m.eventBus != nil {
		event := events.TaskDeletedEvent{
			TaskID:    req.TaskID,
			DeletedAt: time.Now(),
		}
		if err := events.TaskDeletedV1.Publish(m.eventBus, event, nil); err != nil {
			log.Printf("[task] Warning: failed to publish TaskDeleted event for task %d: %v", req.TaskID, err)
		}
	}

	return DeleteTaskResponse{Deleted: true}, nil
}

// toTaskResponse converts a domain Task to its read shape.
func toTaskResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:        task.ID,
		Name:      task.Name,
		Completed: task.Completed,
		CreatedAt: task.CreatedAt,
		UpdatedAt: task.UpdatedAt,
	}
}
