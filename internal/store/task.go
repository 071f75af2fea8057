package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskward/taskward/internal/domain"
)

// TaskFilter narrows the results of a task listing. Both fields are
// optional and combine with AND when present. The owner scope is not part
// of the filter: it is a mandatory parameter on every TaskStore read/write.
type TaskFilter struct {
	// Status restricts results to tasks with exactly this status.
	Status *domain.TaskStatus

	// Search restricts results to tasks whose title or description
	// contains this string as a case-insensitive substring.
	Search string
}

// TaskStore defines the interface for task data persistence.
// Every read and mutation is owner-scoped: operations match rows by both
// task ID and owner ID, so "does not exist" and "owned by someone else"
// collapse into the same ErrTaskNotFound outcome.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns validation errors from the domain Task if data is invalid.
	// Returns ErrInvalidEntity if the owning user does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its ID, scoped to the given owner.
	// Returns ErrTaskNotFound if no task matches both ID and owner.
	GetByID(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error)

	// List retrieves all tasks owned by ownerID that match the filter.
	// Returns an empty slice when nothing matches.
	List(ctx context.Context, ownerID uuid.UUID, filter TaskFilter) ([]*domain.Task, error)

	// Update persists changes to an existing task, scoped to the given owner.
	// The owner is taken from the task's UserID field.
	// Returns ErrTaskNotFound if no task matches both ID and owner.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task by its ID, scoped to the given owner.
	// Returns ErrTaskNotFound if no task matches both ID and owner.
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}
