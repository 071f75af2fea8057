package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()

	t.Run("creates task with OPEN status", func(t *testing.T) {
		t.Parallel()
		task, err := NewTask(ownerID, "Buy milk", "Two liters, whole")
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, task.ID)
		assert.Equal(t, ownerID, task.UserID)
		assert.Equal(t, "Buy milk", task.Title)
		assert.Equal(t, "Two liters, whole", task.Description)
		assert.Equal(t, TaskStatusOpen, task.Status)
		assert.False(t, task.CreatedAt.IsZero())
		assert.False(t, task.UpdatedAt.IsZero())
	})

	t.Run("rejects missing owner", func(t *testing.T) {
		t.Parallel()
		_, err := NewTask(uuid.Nil, "Buy milk", "Two liters")
		assert.ErrorIs(t, err, ErrEmptyUserID)
	})

	t.Run("rejects empty title", func(t *testing.T) {
		t.Parallel()
		_, err := NewTask(ownerID, "", "Two liters")
		assert.ErrorIs(t, err, ErrEmptyTitle)
	})

	t.Run("rejects empty description", func(t *testing.T) {
		t.Parallel()
		_, err := NewTask(ownerID, "Buy milk", "")
		assert.ErrorIs(t, err, ErrEmptyDescription)
	})
}

func TestTaskValidate(t *testing.T) {
	t.Parallel()

	task, err := NewTask(uuid.New(), "Buy milk", "Two liters")
	require.NoError(t, err)

	t.Run("rejects empty task ID", func(t *testing.T) {
		t.Parallel()
		bad := *task
		bad.ID = uuid.Nil
		assert.ErrorIs(t, bad.Validate(), ErrEmptyTaskID)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		t.Parallel()
		bad := *task
		bad.Status = TaskStatus("ARCHIVED")
		assert.ErrorIs(t, bad.Validate(), ErrInvalidTaskStatus)
	})
}

func TestTaskStatusIsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status TaskStatus
		want   bool
	}{
		{TaskStatusOpen, true},
		{TaskStatusInProgress, true},
		{TaskStatusDone, true},
		{TaskStatus(""), false},
		{TaskStatus("open"), false},
		{TaskStatus("CLOSED"), false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.status.IsValid(), "status %q", tt.status)
	}
}
