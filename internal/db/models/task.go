package models

import (
	"time"
)

type Task struct {
	ID          int64          `db:"id"`
	Title       string         `db:"title"`
	Description string         `db:"description"`
	Priority    int            `db:"priority"`
	Severity    SeverityType   `db:"severity_type"`
	Status      TaskStatusType `db:"status_type"`
	UserID      int64          `db:"user_id"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`

	// Populated by joins, not columns on the tasks table.
	Owner *User
	Tags  []Tag
}
