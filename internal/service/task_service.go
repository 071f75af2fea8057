// Package service provides application-level services orchestrating the
// store layer. Every operation takes the authenticated owner explicitly;
// there is no ambient identity.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/taskward/taskward/internal/domain"
	"github.com/taskward/taskward/internal/platform/logger"
	"github.com/taskward/taskward/internal/store"
)

// TaskService provides owner-scoped task CRUD operations.
type TaskService interface {
	// ListTasks returns all tasks owned by ownerID that match the filter.
	ListTasks(ctx context.Context, ownerID uuid.UUID, filter store.TaskFilter) ([]*domain.Task, error)

	// GetTaskByID returns the task with the given ID if it is owned by ownerID.
	// Returns store.ErrTaskNotFound otherwise, whether the task is absent or
	// owned by someone else.
	GetTaskByID(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error)

	// CreateTask creates a task owned by ownerID with status OPEN.
	// The owner always comes from the authenticated caller, never from input.
	CreateTask(ctx context.Context, ownerID uuid.UUID, title, description string) (*domain.Task, error)

	// DeleteTask deletes the task with the given ID if it is owned by ownerID.
	// Returns store.ErrTaskNotFound otherwise.
	DeleteTask(ctx context.Context, id, ownerID uuid.UUID) error

	// UpdateTaskStatus sets the status of the task with the given ID if it is
	// owned by ownerID, and returns the updated task.
	// Returns store.ErrTaskNotFound otherwise.
	UpdateTaskStatus(ctx context.Context, id, ownerID uuid.UUID, status domain.TaskStatus) (*domain.Task, error)
}

// taskService is the default TaskService implementation backed by a TaskStore.
type taskService struct {
	taskStore store.TaskStore
	logger    *slog.Logger
}

// Ensure taskService implements TaskService interface
var _ TaskService = (*taskService)(nil)

// NewTaskService creates a new TaskService with the given dependencies.
func NewTaskService(taskStore store.TaskStore, log *slog.Logger) (TaskService, error) {
	if taskStore == nil {
		return nil, fmt.Errorf("task store cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &taskService{
		taskStore: taskStore,
		logger:    log.With(slog.String("component", "task_service")),
	}, nil
}

// ListTasks implements TaskService.ListTasks
func (s *taskService) ListTasks(
	ctx context.Context,
	ownerID uuid.UUID,
	filter store.TaskFilter,
) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// A missing owner must never widen the query to everyone's tasks.
	if ownerID == uuid.Nil {
		return nil, domain.ErrEmptyUserID
	}

	tasks, err := s.taskStore.List(ctx, ownerID, filter)
	if err != nil {
		log.Error("failed to list tasks",
			slog.String("error", err.Error()),
			slog.String("user_id", ownerID.String()))
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

// GetTaskByID implements TaskService.GetTaskByID
func (s *taskService) GetTaskByID(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error) {
	if ownerID == uuid.Nil {
		return nil, domain.ErrEmptyUserID
	}

	return s.taskStore.GetByID(ctx, id, ownerID)
}

// CreateTask implements TaskService.CreateTask
func (s *taskService) CreateTask(
	ctx context.Context,
	ownerID uuid.UUID,
	title, description string,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(ownerID, title, description)
	if err != nil {
		return nil, err
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("user_id", ownerID.String()))
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// DeleteTask implements TaskService.DeleteTask
func (s *taskService) DeleteTask(ctx context.Context, id, ownerID uuid.UUID) error {
	if ownerID == uuid.Nil {
		return domain.ErrEmptyUserID
	}

	return s.taskStore.Delete(ctx, id, ownerID)
}

// UpdateTaskStatus implements TaskService.UpdateTaskStatus
// It fetches the task through the owner-scoped GetTaskByID, so the NotFound
// semantics (absent or not yours) are inherited, then persists the new status.
func (s *taskService) UpdateTaskStatus(
	ctx context.Context,
	id, ownerID uuid.UUID,
	status domain.TaskStatus,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !status.IsValid() {
		return nil, domain.ErrInvalidTaskStatus
	}

	task, err := s.GetTaskByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	task.Status = status

	if err := s.taskStore.Update(ctx, task); err != nil {
		log.Error("failed to update task status",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()),
			slog.String("status", string(status)))
		return nil, err
	}

	return task, nil
}
