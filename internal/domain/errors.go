// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyUserID is returned when a user ID is missing.
	ErrEmptyUserID = errors.New("user ID cannot be empty")

	// ErrInvalidUsername is returned when a username is outside the
	// allowed 4-20 character range.
	ErrInvalidUsername = errors.New("username must be between 4 and 20 characters")

	// ErrInvalidPassword is returned when a password doesn't meet the
	// complexity requirements.
	ErrInvalidPassword = errors.New(
		"password must be 8-32 characters and contain an uppercase letter, a lowercase letter, and a digit or symbol",
	)

	// ErrEmptyHashedPassword is returned when a stored user has no password hash.
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")

	// ErrEmptyTaskID is returned when a task ID is missing.
	ErrEmptyTaskID = errors.New("task ID cannot be empty")

	// ErrEmptyTitle is returned when a task title is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrEmptyDescription is returned when a task description is empty.
	ErrEmptyDescription = errors.New("description cannot be empty")

	// ErrInvalidTaskStatus is returned when a task status is not one of
	// OPEN, IN_PROGRESS, or DONE.
	ErrInvalidTaskStatus = errors.New("invalid task status")
)
