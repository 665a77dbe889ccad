package notification

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/example/task-api/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// ActivityEntry is one logged task activity.
type ActivityEntry struct {
	TaskID    uint      `json:"task_id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// NotificationModule keeps an in-memory activity log of task changes.
// It is a driven adapter subscribed to the task domain events.
type NotificationModule struct {
	activity []ActivityEntry
	mu       sync.RWMutex
}

var _ mono.Module = (*NotificationModule)(nil)
var _ mono.EventConsumerModule = (*NotificationModule)(nil)

func NewModule() *NotificationModule {
	return &NotificationModule{
		activity: make([]ActivityEntry, 0),
	}
}

func (m *NotificationModule) Name() string {
	return "notification"
}

func (m *NotificationModule) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskCreatedV1, m.handleTaskCreated, m); err != nil {
		return fmt.Errorf("failed to register TaskCreated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskUpdatedV1, m.handleTaskUpdated, m); err != nil {
		return fmt.Errorf("failed to register TaskUpdated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskDeletedV1, m.handleTaskDeleted, m); err != nil {
		return fmt.Errorf("failed to register TaskDeleted consumer: %w", err)
	}

	log.Printf("[notification] Registered event consumers: TaskCreated, TaskUpdated, TaskDeleted")
	return nil
}

func (m *NotificationModule) handleTaskCreated(_ context.Context, event events.TaskCreatedEvent, _ *mono.Msg) error {
	m.logActivity(event.TaskID, "task_created", fmt.Sprintf("Task %d created: %q", event.TaskID, event.Name))
	return nil
}

func (m *NotificationModule) handleTaskUpdated(_ context.Context, event events.TaskUpdatedEvent, _ *mono.Msg) error {
	state := "open"
	if event.Completed {
		state = "completed"
	}
	m.logActivity(event.TaskID, "task_updated", fmt.Sprintf("Task %d updated: %q (%s)", event.TaskID, event.Name, state))
	return nil
}

func (m *NotificationModule) handleTaskDeleted(_ context.Context, event events.TaskDeletedEvent, _ *mono.Msg) error {
	m.logActivity(event.TaskID, "task_deleted", fmt.Sprintf("Task %d deleted", event.TaskID))
	return nil
}

func (m *NotificationModule) logActivity(taskID uint, activityType, message string) {
	log.Printf("[notification] %s", message)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.activity = append(m.activity, ActivityEntry{
		TaskID:    taskID,
		Type:      activityType,
		Message:   message,
		Timestamp: time.Now(),
	})
}

// Activity returns a copy of the logged activity entries.
func (m *NotificationModule) Activity() []ActivityEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]ActivityEntry, len(m.activity))
	copy(result, m.activity)
	return result
}

func (m *NotificationModule) Start(_ context.Context) error {
	log.Println("[notification] Module started - listening for task events")
	return nil
}

func (m *NotificationModule) Stop(_ context.Context) error {
	log.Println("[notification] Module stopped")
	return nil
}
