package task

import (
	"errors"
	"testing"

	domain "github.com/example/task-api/domain/task"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&domain.Task{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func TestRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)

	task := &domain.Task{Name: "buy milk"}
	if err := repo.Create(task); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if task.ID == 0 {
		t.Error("expected database-assigned ID, got 0")
	}
	if task.CreatedAt.IsZero() || task.UpdatedAt.IsZero() {
		t.Error("expected GORM to fill timestamps")
	}

	var found domain.Task
	if err := db.First(&found, "id = ?", task.ID).Error; err != nil {
		t.Fatalf("failed to find created task: %v", err)
	}
	if found.Name != "buy milk" {
		t.Errorf("expected name %q, got %q", "buy milk", found.Name)
	}
	if found.Completed {
		t.Error("expected completed to default to false")
	}
}

func TestRepository_FindByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)

	task := &domain.Task{Name: "find me"}
	if err := db.Create(task).Error; err != nil {
		t.Fatalf("failed to create test task: %v", err)
	}

	t.Run("existing task", func(t *testing.T) {
		found, err := repo.FindByID(task.ID)
		if err != nil {
			t.Fatalf("FindByID() error = %v", err)
		}
		if found.ID != task.ID {
			t.Errorf("expected ID %d, got %d", task.ID, found.ID)
		}
		if found.Name != task.Name {
			t.Errorf("expected name %q, got %q", task.Name, found.Name)
		}
	})

	t.Run("non-existent task", func(t *testing.T) {
		_, err := repo.FindByID(9999)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestRepository_FindAll(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)

	t.Run("empty database", func(t *testing.T) {
		tasks, err := repo.FindAll()
		if err != nil {
			t.Fatalf("FindAll() error = %v", err)
		}
		if len(tasks) != 0 {
			t.Errorf("expected 0 tasks, got %d", len(tasks))
		}
	})

	t.Run("stable id order", func(t *testing.T) {
		for _, name := range []string{"one", "two", "three"} {
			if err := db.Create(&domain.Task{Name: name}).Error; err != nil {
				t.Fatalf("failed to create test task: %v", err)
			}
		}

		tasks, err := repo.FindAll()
		if err != nil {
			t.Fatalf("FindAll() error = %v", err)
		}
		if len(tasks) != 3 {
			t.Fatalf("expected 3 tasks, got %d", len(tasks))
		}
		for i := 1; i < len(tasks); i++ {
			if tasks[i-1].ID >= tasks[i].ID {
				t.Errorf("expected ascending ids, got %d before %d", tasks[i-1].ID, tasks[i].ID)
			}
		}
	})
}

func TestRepository_Save(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)

	task := &domain.Task{Name: "original"}
	if err := db.Create(task).Error; err != nil {
		t.Fatalf("failed to create test task: %v", err)
	}

	task.Name = "renamed"
	task.Completed = true
	if err := repo.Save(task); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	var found domain.Task
	if err := db.First(&found, "id = ?", task.ID).Error; err != nil {
		t.Fatalf("failed to find updated task: %v", err)
	}
	if found.Name != "renamed" || !found.Completed {
		t.Errorf("expected updated fields, got name=%q completed=%v", found.Name, found.Completed)
	}
}

func TestRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)

	task := &domain.Task{Name: "doomed"}
	if err := db.Create(task).Error; err != nil {
		t.Fatalf("failed to create test task: %v", err)
	}

	t.Run("existing task", func(t *testing.T) {
		if err := repo.Delete(task.ID); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}

		// Hard delete: the row is gone.
		var count int64
		db.Model(&domain.Task{}).Where("id = ?", task.ID).Count(&count)
		if count != 0 {
			t.Errorf("expected 0 rows after delete, got %d", count)
		}
	})

	t.Run("non-existent task", func(t *testing.T) {
		if err := repo.Delete(9999); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}
