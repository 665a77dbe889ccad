package notification

import (
	"context"
	"strings"
	"testing"

	"github.com/example/task-api/events"
)

func TestActivityLog(t *testing.T) {
	m := NewModule()
	ctx := context.Background()

	if err := m.handleTaskCreated(ctx, events.TaskCreatedEvent{TaskID: 1, Name: "buy milk"}, nil); err != nil {
		t.Fatalf("handleTaskCreated() error = %v", err)
	}
	if err := m.handleTaskUpdated(ctx, events.TaskUpdatedEvent{TaskID: 1, Name: "buy milk", Completed: true}, nil); err != nil {
		t.Fatalf("handleTaskUpdated() error = %v", err)
	}
	if err := m.handleTaskDeleted(ctx, events.TaskDeletedEvent{TaskID: 1}, nil); err != nil {
		t.Fatalf("handleTaskDeleted() error = %v", err)
	}

	activity := m.Activity()
	if len(activity) != 3 {
		t.Fatalf("len(activity) = %d, want 3", len(activity))
	}

	wantTypes := []string{"task_created", "task_updated", "task_deleted"}
	for i, want := range wantTypes {
		if activity[i].Type != want {
			t.Errorf("activity[%d].Type = %q, want %q", i, activity[i].Type, want)
		}
		if activity[i].TaskID != 1 {
			t.Errorf("activity[%d].TaskID = %d, want 1", i, activity[i].TaskID)
		}
		if activity[i].Timestamp.IsZero() {
			t.Errorf("activity[%d].Timestamp is zero", i)
		}
	}
	if !strings.Contains(activity[1].Message, "completed") {
		t.Errorf("update message = %q, want completion state", activity[1].Message)
	}
}

func TestActivityReturnsCopy(t *testing.T) {
	m := NewModule()
	if err := m.handleTaskCreated(context.Background(), events.TaskCreatedEvent{TaskID: 1, Name: "a"}, nil); err != nil {
		t.Fatalf("handleTaskCreated() error = %v", err)
	}

	first := m.Activity()
	first[0].Message = "mutated"

	if m.Activity()[0].Message == "mutated" {
		t.Error("Activity() must return a copy")
	}
}
