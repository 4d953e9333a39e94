package dto

import (
	"taskorganizer/internal/domains/task/model"
	gDto "taskorganizer/shared/dto"
	"taskorganizer/shared/optional"
)

type CreateTaskRequest struct {
	Title string `json:"title" validate:"required,min=1,max=255" example:"Buy milk"`
}

func (c *CreateTaskRequest) ToModel() model.Task {
	return model.Task{
		Title:       c.Title,
		IsCompleted: false,
	}
}

// UpdateTaskRequest is a partial update. Omitted and null fields leave the
// stored value untouched; supplied fields replace it.
type UpdateTaskRequest struct {
	Title       optional.Value[string] `json:"title" validate:"omitempty,min=1,max=255" swaggertype:"string" example:"Buy oat milk"`
	IsCompleted optional.Value[bool]   `json:"is_completed" swaggertype:"boolean" example:"true"`
}

// ApplyTo merges the supplied fields into task.
func (u UpdateTaskRequest) ApplyTo(task *model.Task) {
	if title, ok := u.Title.Get(); ok {
		task.Title = title
	}

	if isCompleted, ok := u.IsCompleted.Get(); ok {
		task.IsCompleted = isCompleted
	}
}

type TaskResponse struct {
	ID          int64  `json:"id" example:"1"`
	Title       string `json:"title" example:"Buy milk"`
	IsCompleted bool   `json:"is_completed" example:"false"`
	gDto.Metadata
}

func (r *TaskResponse) FromModel(model model.Task) {
	r.ID = model.ID
	r.Title = model.Title
	r.IsCompleted = model.IsCompleted
	r.Metadata.FromModel(model.Metadata)
}

// FromModels converts tasks preserving order. The result is never nil so it
// encodes as [] rather than null.
func FromModels(models []model.Task) []TaskResponse {
	res := make([]TaskResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}
