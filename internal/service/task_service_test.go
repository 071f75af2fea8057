package service

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskward/taskward/internal/domain"
	"github.com/taskward/taskward/internal/store"
)

// fakeTaskStore is an in-memory TaskStore mirroring the owner-scoping and
// filtering behavior of the real implementation.
type fakeTaskStore struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]*domain.Task
}

var _ store.TaskStore = (*fakeTaskStore)(nil)

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{tasks: make(map[uuid.UUID]*domain.Task)}
}

func (f *fakeTaskStore) Create(_ context.Context, task *domain.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *task
	f.tasks[task.ID] = &copied
	return nil
}

func (f *fakeTaskStore) GetByID(_ context.Context, id, ownerID uuid.UUID) (*domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	task, ok := f.tasks[id]
	if !ok || task.UserID != ownerID {
		return nil, store.ErrTaskNotFound
	}
	copied := *task
	return &copied, nil
}

func (f *fakeTaskStore) List(
	_ context.Context,
	ownerID uuid.UUID,
	filter store.TaskFilter,
) ([]*domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	result := []*domain.Task{}
	for _, task := range f.tasks {
		if task.UserID != ownerID {
			continue
		}
		if filter.Status != nil && task.Status != *filter.Status {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(task.Title), needle) &&
				!strings.Contains(strings.ToLower(task.Description), needle) {
				continue
			}
		}
		copied := *task
		result = append(result, &copied)
	}
	return result, nil
}

func (f *fakeTaskStore) Update(_ context.Context, task *domain.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.tasks[task.ID]
	if !ok || existing.UserID != task.UserID {
		return store.ErrTaskNotFound
	}
	copied := *task
	f.tasks[task.ID] = &copied
	return nil
}

func (f *fakeTaskStore) Delete(_ context.Context, id, ownerID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.tasks[id]
	if !ok || existing.UserID != ownerID {
		return store.ErrTaskNotFound
	}
	delete(f.tasks, id)
	return nil
}

func newTestTaskService(t *testing.T) (TaskService, *fakeTaskStore) {
	t.Helper()
	taskStore := newFakeTaskStore()
	svc, err := NewTaskService(taskStore, nil)
	require.NoError(t, err)
	return svc, taskStore
}

func TestNewTaskService(t *testing.T) {
	t.Parallel()

	_, err := NewTaskService(nil, nil)
	assert.Error(t, err)
}

func TestCreateTask(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, taskStore := newTestTaskService(t)
	ownerID := uuid.New()

	t.Run("creates task owned by caller", func(t *testing.T) {
		task, err := svc.CreateTask(ctx, ownerID, "Buy milk", "Two liters")
		require.NoError(t, err)

		assert.Equal(t, ownerID, task.UserID)
		assert.Equal(t, domain.TaskStatusOpen, task.Status)

		stored, err := taskStore.GetByID(ctx, task.ID, ownerID)
		require.NoError(t, err)
		assert.Equal(t, "Buy milk", stored.Title)
	})

	t.Run("rejects empty title", func(t *testing.T) {
		_, err := svc.CreateTask(ctx, ownerID, "", "Two liters")
		assert.ErrorIs(t, err, domain.ErrEmptyTitle)
	})

	t.Run("rejects missing owner", func(t *testing.T) {
		_, err := svc.CreateTask(ctx, uuid.Nil, "Buy milk", "Two liters")
		assert.ErrorIs(t, err, domain.ErrEmptyUserID)
	})
}

func TestListTasks(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newTestTaskService(t)
	alice := uuid.New()
	bob := uuid.New()

	groceries, err := svc.CreateTask(ctx, alice, "Buy milk", "Two liters")
	require.NoError(t, err)
	laundry, err := svc.CreateTask(ctx, alice, "Do laundry", "Whites only")
	require.NoError(t, err)
	_, err = svc.CreateTask(ctx, bob, "Buy milk", "For bob")
	require.NoError(t, err)

	_, err = svc.UpdateTaskStatus(ctx, laundry.ID, alice, domain.TaskStatusDone)
	require.NoError(t, err)

	t.Run("rejects missing owner", func(t *testing.T) {
		_, err := svc.ListTasks(ctx, uuid.Nil, store.TaskFilter{})
		assert.ErrorIs(t, err, domain.ErrEmptyUserID)
	})

	t.Run("returns only the caller's tasks", func(t *testing.T) {
		tasks, err := svc.ListTasks(ctx, alice, store.TaskFilter{})
		require.NoError(t, err)
		assert.Len(t, tasks, 2)
		for _, task := range tasks {
			assert.Equal(t, alice, task.UserID)
		}
	})

	t.Run("filters by status", func(t *testing.T) {
		done := domain.TaskStatusDone
		tasks, err := svc.ListTasks(ctx, alice, store.TaskFilter{Status: &done})
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, laundry.ID, tasks[0].ID)
	})

	t.Run("filters by search term case-insensitively", func(t *testing.T) {
		tasks, err := svc.ListTasks(ctx, alice, store.TaskFilter{Search: "MILK"})
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, groceries.ID, tasks[0].ID)
	})

	t.Run("empty result is an empty slice", func(t *testing.T) {
		tasks, err := svc.ListTasks(ctx, alice, store.TaskFilter{Search: "no such task"})
		require.NoError(t, err)
		assert.NotNil(t, tasks)
		assert.Empty(t, tasks)
	})
}

func TestGetTaskByID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newTestTaskService(t)
	alice := uuid.New()
	bob := uuid.New()

	task, err := svc.CreateTask(ctx, alice, "Buy milk", "Two liters")
	require.NoError(t, err)

	t.Run("owner can fetch", func(t *testing.T) {
		got, err := svc.GetTaskByID(ctx, task.ID, alice)
		require.NoError(t, err)
		assert.Equal(t, task.ID, got.ID)
	})

	t.Run("another user's task looks absent", func(t *testing.T) {
		_, err := svc.GetTaskByID(ctx, task.ID, bob)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})

	t.Run("unknown task", func(t *testing.T) {
		_, err := svc.GetTaskByID(ctx, uuid.New(), alice)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}

func TestDeleteTask(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newTestTaskService(t)
	alice := uuid.New()
	bob := uuid.New()

	task, err := svc.CreateTask(ctx, alice, "Buy milk", "Two liters")
	require.NoError(t, err)

	t.Run("another user's delete looks absent", func(t *testing.T) {
		err := svc.DeleteTask(ctx, task.ID, bob)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})

	t.Run("owner can delete", func(t *testing.T) {
		require.NoError(t, svc.DeleteTask(ctx, task.ID, alice))

		_, err := svc.GetTaskByID(ctx, task.ID, alice)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})

	t.Run("repeat delete reports not found", func(t *testing.T) {
		err := svc.DeleteTask(ctx, task.ID, alice)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}

func TestUpdateTaskStatus(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newTestTaskService(t)
	alice := uuid.New()
	bob := uuid.New()

	task, err := svc.CreateTask(ctx, alice, "Buy milk", "Two liters")
	require.NoError(t, err)

	t.Run("rejects unknown status", func(t *testing.T) {
		_, err := svc.UpdateTaskStatus(ctx, task.ID, alice, domain.TaskStatus("ARCHIVED"))
		assert.ErrorIs(t, err, domain.ErrInvalidTaskStatus)
	})

	t.Run("another user's task looks absent", func(t *testing.T) {
		_, err := svc.UpdateTaskStatus(ctx, task.ID, bob, domain.TaskStatusDone)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})

	t.Run("owner can update and change persists", func(t *testing.T) {
		updated, err := svc.UpdateTaskStatus(ctx, task.ID, alice, domain.TaskStatusInProgress)
		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusInProgress, updated.Status)

		got, err := svc.GetTaskByID(ctx, task.ID, alice)
		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusInProgress, got.Status)
	})
}
