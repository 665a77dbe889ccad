package task

import (
	"errors"
	"fmt"

	domain "github.com/example/task-api/domain/task"
	"gorm.io/gorm"
)

// ErrNotFound is returned when no task matches the requested ID.
var ErrNotFound = errors.New("task not found")

// TaskRepository provides access to task storage using GORM.
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository.
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts a new task. The database assigns the ID and GORM fills
// CreatedAt/UpdatedAt on the passed entity.
func (r *TaskRepository) Create(task *domain.Task) error {
	if err := r.db.Create(task).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// FindByID retrieves a task by its ID.
func (r *TaskRepository) FindByID(id uint) (*domain.Task, error) {
	var task domain.Task
	if err := r.db.First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &task, nil
}

// FindAll retrieves all tasks in stable ascending ID order, so repeated
// calls with no writes in between return identical ordering.
func (r *TaskRepository) FindAll() ([]*domain.Task, error) {
	var tasks []*domain.Task
	if err := r.db.Order("id ASC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to find tasks: %w", err)
	}
	return tasks, nil
}

// Save persists the supplied fields of an existing task and refreshes
// UpdatedAt via GORM.
func (r *TaskRepository) Save(task *domain.Task) error {
	if err := r.db.Save(task).Error; err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

// Delete removes a task by ID. Hard delete, no tombstone.
func (r *TaskRepository) Delete(id uint) error {
	result := r.db.Delete(&domain.Task{}, "id = ?", id)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
