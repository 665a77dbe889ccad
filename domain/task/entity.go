package task

import "time"

// Task is the core domain entity: a single todo item.
// The ID is generated by the database; timestamps are managed by GORM,
// with UpdatedAt refreshed on every mutation.
type Task struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Completed bool      `gorm:"not null;default:false" json:"completed"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

// TableName returns the table name for the Task entity.
func (Task) TableName() string {
	return "tasks"
}
