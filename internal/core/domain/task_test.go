package domain_test

import (
	"testing"
	"time"

	"taskmanager/internal/core/domain"

	"github.com/stretchr/testify/assert"
)

func TestTaskStatus_IsValid(t *testing.T) {
	for _, status := range domain.TaskStatuses {
		assert.True(t, status.IsValid(), status)
	}
	assert.False(t, domain.TaskStatus("done").IsValid())
	assert.False(t, domain.TaskStatus("").IsValid())
}

func TestTaskPriority_IsValid(t *testing.T) {
	assert.True(t, domain.TaskPriorityLow.IsValid())
	assert.True(t, domain.TaskPriorityMedium.IsValid())
	assert.True(t, domain.TaskPriorityHigh.IsValid())
	assert.False(t, domain.TaskPriority("urgent").IsValid())
}

func TestTaskPatch_IsEmpty(t *testing.T) {
	assert.True(t, domain.TaskPatch{}.IsEmpty())
	assert.False(t, domain.TaskPatch{Title: domain.Some("x")}.IsEmpty())
	// A nil value that is present still counts as a change.
	assert.False(t, domain.TaskPatch{Description: domain.Some[*string](nil)}.IsEmpty())
	assert.False(t, domain.TaskPatch{DueDate: domain.Some[*time.Time](nil)}.IsEmpty())
}

func TestOptional(t *testing.T) {
	var absent domain.Optional[string]
	value, ok := absent.Get()
	assert.False(t, ok)
	assert.Equal(t, "", value)

	present := domain.Some("")
	value, ok = present.Get()
	assert.True(t, ok)
	assert.Equal(t, "", value)
	assert.True(t, present.IsSet())
}
