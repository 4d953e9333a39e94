package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"taskorganizer/internal/domains/task/model"
	"taskorganizer/internal/domains/task/model/dto"
	gModel "taskorganizer/shared/model"
	"taskorganizer/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTaskRequest_ToModel(t *testing.T) {
	req := dto.CreateTaskRequest{Title: "Buy milk"}

	task := req.ToModel()

	assert.Equal(t, "Buy milk", task.Title)
	assert.False(t, task.IsCompleted)
	assert.Zero(t, task.ID)
}

func TestUpdateTaskRequest_ApplyTo(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		wantTitle string
		wantDone  bool
	}{
		{
			name:      "empty object changes nothing",
			payload:   `{}`,
			wantTitle: "Buy milk",
			wantDone:  false,
		},
		{
			name:      "title only",
			payload:   `{"title":"Buy oat milk"}`,
			wantTitle: "Buy oat milk",
			wantDone:  false,
		},
		{
			name:      "completion only",
			payload:   `{"is_completed":true}`,
			wantTitle: "Buy milk",
			wantDone:  true,
		},
		{
			name:      "both fields",
			payload:   `{"title":"Walk dog","is_completed":true}`,
			wantTitle: "Walk dog",
			wantDone:  true,
		},
		{
			name:      "explicit null is ignored",
			payload:   `{"title":null,"is_completed":null}`,
			wantTitle: "Buy milk",
			wantDone:  false,
		},
		{
			name:      "unknown fields are ignored",
			payload:   `{"priority":3}`,
			wantTitle: "Buy milk",
			wantDone:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req dto.UpdateTaskRequest
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &req))

			task := model.Task{ID: 1, Title: "Buy milk"}
			req.ApplyTo(&task)

			assert.Equal(t, int64(1), task.ID)
			assert.Equal(t, tt.wantTitle, task.Title)
			assert.Equal(t, tt.wantDone, task.IsCompleted)
		})
	}
}

func TestTaskResponse_JSON(t *testing.T) {
	timezone.Init("UTC")

	created := time.Date(2025, 3, 1, 8, 30, 0, 0, time.UTC)

	var res dto.TaskResponse
	res.FromModel(model.Task{
		ID:          7,
		Title:       "Buy milk",
		IsCompleted: true,
		Metadata:    gModel.Metadata{CreatedAt: created, UpdatedAt: created.Add(time.Second)},
	})

	raw, err := json.Marshal(res)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"id": 7,
		"title": "Buy milk",
		"is_completed": true,
		"created_at": "2025-03-01T08:30:00Z",
		"updated_at": "2025-03-01T08:30:01Z"
	}`, string(raw))
}

func TestFromModels(t *testing.T) {
	t.Run("empty input encodes as an empty array", func(t *testing.T) {
		raw, err := json.Marshal(dto.FromModels(nil))
		require.NoError(t, err)
		assert.Equal(t, "[]", string(raw))
	})

	t.Run("order is preserved", func(t *testing.T) {
		res := dto.FromModels([]model.Task{{ID: 3}, {ID: 1}, {ID: 2}})

		require.Len(t, res, 3)
		assert.Equal(t, int64(3), res[0].ID)
		assert.Equal(t, int64(1), res[1].ID)
		assert.Equal(t, int64(2), res[2].ID)
	})
}
