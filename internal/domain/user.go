package domain

import (
	"time"
	"unicode"

	"github.com/google/uuid"
)

// Username length limits.
const (
	MinUsernameLength = 4
	MaxUsernameLength = 20
)

// Password length limits.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 32
)

// User represents a registered account.
// It contains essential user information and authentication details.
type User struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Password       string    `json:"-"` // Plaintext password, used temporarily during registration
	HashedPassword string    `json:"-"` // Never expose the password hash in JSON
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new User with the given username and password.
// It generates a new UUID for the user ID and sets the creation/update timestamps.
// Returns an error if validation fails.
//
// NOTE: This function only sets up the user structure with the plaintext password.
// The caller is responsible for hashing the password before storing the user.
func NewUser(username, password string) (*User, error) {
	user := &User{
		ID:        uuid.New(),
		Username:  username,
		Password:  password, // Plaintext password - must be hashed before storage
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if len(u.Username) < MinUsernameLength || len(u.Username) > MaxUsernameLength {
		return ErrInvalidUsername
	}

	if u.Password != "" {
		// When a plaintext password is provided, validate its complexity.
		if !ValidatePasswordComplexity(u.Password) {
			return ErrInvalidPassword
		}
	} else {
		// Users loaded from the database carry only the hash.
		if u.HashedPassword == "" {
			return ErrEmptyHashedPassword
		}
	}

	return nil
}

// ValidatePasswordComplexity checks that a password is 8-32 characters and
// contains at least one uppercase letter, one lowercase letter, and one
// character that is a digit or a symbol. Digit and symbol are deliberately
// interchangeable: either alone satisfies the third requirement.
func ValidatePasswordComplexity(password string) bool {
	length := len(password)
	if length < MinPasswordLength || length > MaxPasswordLength {
		return false
	}

	var hasUpper, hasLower, hasDigitOrSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r) || !unicode.IsLetter(r):
			hasDigitOrSymbol = true
		}
	}

	return hasUpper && hasLower && hasDigitOrSymbol
}
