package dto_test

import (
	"testing"
	"time"

	"taskorganizer/shared/dto"
	"taskorganizer/shared/model"
	"taskorganizer/shared/timezone"

	"github.com/stretchr/testify/assert"
)

func TestMetadata_FromModel(t *testing.T) {
	timezone.Init("UTC")

	created := time.Date(2025, 3, 1, 8, 30, 0, 123000000, time.UTC)
	updated := created.Add(time.Minute)

	var meta dto.Metadata
	meta.FromModel(model.Metadata{CreatedAt: created, UpdatedAt: updated})

	assert.Equal(t, "2025-03-01T08:30:00.123Z", meta.CreatedAt)
	assert.Equal(t, "2025-03-01T08:31:00.123Z", meta.UpdatedAt)
}
