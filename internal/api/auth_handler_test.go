package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskward/taskward/internal/domain"
	"github.com/taskward/taskward/internal/service/auth"
	"github.com/taskward/taskward/internal/store"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test-secret-key-thats-long-enough-for-hmac"

// fakeUserStore is an in-memory UserStore. Create hashes the password and
// enforces username uniqueness like the real implementation.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User
}

var _ store.UserStore = (*fakeUserStore)(nil)

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]*domain.User)}
}

func (f *fakeUserStore) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.users {
		if existing.Username == user.Username {
			return fmt.Errorf("%w: duplicate username", store.ErrUsernameExists)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.MinCost)
	if err != nil {
		return err
	}
	user.HashedPassword = string(hash)
	user.Password = ""

	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (f *fakeUserStore) delete(id uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, id)
}

func newTestAuthHandler(t *testing.T) (*AuthHandler, *fakeUserStore) {
	t.Helper()
	userStore := newFakeUserStore()
	jwtService := auth.NewTestJWTService(testJWTSecret, time.Hour, nil)
	return NewAuthHandler(userStore, jwtService, auth.NewBcryptVerifier(), nil), userStore
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestSignUp(t *testing.T) {
	t.Parallel()

	t.Run("creates user", func(t *testing.T) {
		t.Parallel()
		handler, userStore := newTestAuthHandler(t)

		rec := postJSON(t, handler.SignUp, "/auth/signup", SignUpRequest{
			Username: "alice",
			Password: "Password1",
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		var resp SignUpResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "alice", resp.Username)
		assert.NotEqual(t, uuid.Nil, resp.UserID)

		stored, err := userStore.GetByID(context.Background(), resp.UserID)
		require.NoError(t, err)
		assert.NotEmpty(t, stored.HashedPassword)
		assert.Empty(t, stored.Password)
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		t.Parallel()
		handler, _ := newTestAuthHandler(t)

		req := SignUpRequest{Username: "alice", Password: "Password1"}
		rec := postJSON(t, handler.SignUp, "/auth/signup", req)
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = postJSON(t, handler.SignUp, "/auth/signup", req)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("rejects short password", func(t *testing.T) {
		t.Parallel()
		handler, _ := newTestAuthHandler(t)

		rec := postJSON(t, handler.SignUp, "/auth/signup", SignUpRequest{
			Username: "alice",
			Password: "Pw1",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects weak password of valid length", func(t *testing.T) {
		t.Parallel()
		handler, _ := newTestAuthHandler(t)

		rec := postJSON(t, handler.SignUp, "/auth/signup", SignUpRequest{
			Username: "alice",
			Password: "passwordonly",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		t.Parallel()
		handler, _ := newTestAuthHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewReader([]byte("{not json")))
		rec := httptest.NewRecorder()
		handler.SignUp(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestSignIn(t *testing.T) {
	t.Parallel()

	signUp := func(t *testing.T, handler *AuthHandler, username, password string) {
		t.Helper()
		rec := postJSON(t, handler.SignUp, "/auth/signup", SignUpRequest{
			Username: username,
			Password: password,
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	t.Run("returns token for valid credentials", func(t *testing.T) {
		t.Parallel()
		handler, _ := newTestAuthHandler(t)
		signUp(t, handler, "alice", "Password1")

		rec := postJSON(t, handler.SignIn, "/auth/signin", SignInRequest{
			Username: "alice",
			Password: "Password1",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp SignInResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotEmpty(t, resp.AccessToken)

		jwtService := auth.NewTestJWTService(testJWTSecret, time.Hour, nil)
		claims, err := jwtService.ValidateToken(context.Background(), resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "alice", claims.Username)
	})

	t.Run("unknown user and wrong password are indistinguishable", func(t *testing.T) {
		t.Parallel()
		handler, _ := newTestAuthHandler(t)
		signUp(t, handler, "alice", "Password1")

		unknown := postJSON(t, handler.SignIn, "/auth/signin", SignInRequest{
			Username: "nobody",
			Password: "Password1",
		})
		wrongPassword := postJSON(t, handler.SignIn, "/auth/signin", SignInRequest{
			Username: "alice",
			Password: "Password2",
		})

		assert.Equal(t, http.StatusUnauthorized, unknown.Code)
		assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
		assert.JSONEq(t, unknown.Body.String(), wrongPassword.Body.String())
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		t.Parallel()
		handler, _ := newTestAuthHandler(t)

		rec := postJSON(t, handler.SignIn, "/auth/signin", SignInRequest{Username: "alice"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
