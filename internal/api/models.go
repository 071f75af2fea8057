package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/taskward/taskward/internal/domain"
)

// Common request/response structures

// SignUpRequest defines the payload for the user signup endpoint.
// Password complexity beyond length is checked by the domain layer.
type SignUpRequest struct {
	Username string `json:"username" validate:"required,min=4,max=20"`
	Password string `json:"password" validate:"required,min=8,max=32"`
}

// SignInRequest defines the payload for the user signin endpoint.
type SignInRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SignUpResponse defines the successful response for the signup endpoint.
type SignUpResponse struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
}

// SignInResponse defines the successful response for the signin endpoint.
type SignInResponse struct {
	// AccessToken is the bearer token used for API authorization.
	AccessToken string `json:"token"`
}

// CreateTaskRequest defines the payload for the create-task endpoint.
type CreateTaskRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description" validate:"required"`
}

// UpdateTaskStatusRequest defines the payload for the update-status endpoint.
type UpdateTaskStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=OPEN IN_PROGRESS DONE"`
}

// TaskResponse represents the response data for a task.
// The owner is identified by ID only; user details are never embedded.
type TaskResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// taskToResponse converts a domain.Task to a TaskResponse.
func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID.String(),
		UserID:      task.UserID.String(),
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// tasksToResponse converts a slice of domain tasks to response form.
func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskToResponse(t))
	}
	return out
}
