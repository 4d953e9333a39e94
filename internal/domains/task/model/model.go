package model

import "taskorganizer/shared/model"

const (
	TableName  = "tasks"
	EntityName = "task"

	FieldID          = "id"
	FieldTitle       = "title"
	FieldIsCompleted = "is_completed"

	TitleMaxLength = 255
)

// Task is one to-do item. ID and the timestamps are always assigned by the store.
type Task struct {
	ID          int64  `db:"id"`
	Title       string `db:"title"`
	IsCompleted bool   `db:"is_completed"`
	model.Metadata
}

// Toggle flips the completion flag.
func (t *Task) Toggle() {
	t.IsCompleted = !t.IsCompleted
}
