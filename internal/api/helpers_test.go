package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mtakagi/tasklist-api/internal/api/shared"
	"github.com/mtakagi/tasklist-api/internal/config"
	"github.com/mtakagi/tasklist-api/internal/domain"
	"github.com/mtakagi/tasklist-api/internal/platform/cache"
	"github.com/mtakagi/tasklist-api/internal/ratelimit"
	"github.com/mtakagi/tasklist-api/internal/service"
	"github.com/mtakagi/tasklist-api/internal/service/auth"
	"github.com/mtakagi/tasklist-api/internal/store"
	"github.com/stretchr/testify/require"
)

// In-memory store fakes shared by the handler tests.

type memUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[uuid.UUID]*domain.User)}
}

func (s *memUserStore) Create(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return store.ErrEmailExists
		}
	}
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *memUserStore) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *memUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (s *memUserStore) WithTx(*sql.Tx) store.UserStore { return s }

type memTokenStore struct {
	mu     sync.Mutex
	tokens map[uuid.UUID]*domain.AuthToken
}

func newMemTokenStore() *memTokenStore {
	return &memTokenStore{tokens: make(map[uuid.UUID]*domain.AuthToken)}
}

func (s *memTokenStore) Create(_ context.Context, token *domain.AuthToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *token
	s.tokens[token.JTI] = &copied
	return nil
}

func (s *memTokenStore) GetByJTI(_ context.Context, jti uuid.UUID) (*domain.AuthToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	token, ok := s.tokens[jti]
	if !ok {
		return nil, store.ErrTokenNotFound
	}
	copied := *token
	return &copied, nil
}

func (s *memTokenStore) Delete(_ context.Context, jti uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tokens[jti]; !ok {
		return store.ErrTokenNotFound
	}
	delete(s.tokens, jti)
	return nil
}

func (s *memTokenStore) WithTx(*sql.Tx) store.TokenStore { return s }

type memTaskStore struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]*domain.Task
}

func newMemTaskStore() *memTaskStore {
	return &memTaskStore{tasks: make(map[uuid.UUID]*domain.Task)}
}

func (s *memTaskStore) Create(_ context.Context, task *domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *task
	s.tasks[task.ID] = &copied
	return nil
}

func (s *memTaskStore) ListByOwner(_ context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Task, 0)
	for _, task := range s.tasks {
		if task.UserID == userID && task.DeletedAt == nil {
			copied := *task
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *memTaskStore) GetForOwner(_ context.Context, userID, id uuid.UUID) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.tasks[id]
	if !ok || task.UserID != userID || task.DeletedAt != nil {
		return nil, store.ErrTaskNotFound
	}
	copied := *task
	return &copied, nil
}

func (s *memTaskStore) UpdateVersioned(
	_ context.Context,
	userID, id uuid.UUID,
	expectedVersion int64,
	title string,
	description *string,
) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.tasks[id]
	if !ok || task.UserID != userID || task.DeletedAt != nil || task.Version != expectedVersion {
		return nil, store.ErrTaskNotFound
	}
	task.Title = title
	task.Description = description
	task.Version++
	task.UpdatedAt = time.Now().UTC()
	copied := *task
	return &copied, nil
}

func (s *memTaskStore) SoftDelete(_ context.Context, userID, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.tasks[id]
	if !ok || task.UserID != userID || task.DeletedAt != nil {
		return store.ErrTaskNotFound
	}
	now := time.Now().UTC()
	task.DeletedAt = &now
	return nil
}

func (s *memTaskStore) SoftDeleteByOwner(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	for _, task := range s.tasks {
		if task.UserID == userID && task.DeletedAt == nil {
			task.DeletedAt = &now
		}
	}
	return nil
}

func (s *memTaskStore) WithTx(*sql.Tx) store.TaskStore { return s }

// newTestAuthService builds an auth service over the in-memory fakes.
func newTestAuthService(t *testing.T) *auth.Service {
	t.Helper()

	users := newMemUserStore()
	tokens, err := auth.NewTokenService(config.AuthConfig{
		TokenSecret:          "test-secret-test-secret-test-secret!",
		TokenLifetimeMinutes: 60,
	}, newMemTokenStore(), users)
	require.NoError(t, err)

	return auth.NewService(users, tokens, auth.NewBcryptHasher(4), ratelimit.New(time.Minute), 5)
}

// newTestTaskService builds a task service over an in-memory fake store.
// The sqlmock database serves only the transaction calls, which are allowed
// in any order because handler tests assert on HTTP behavior, not SQL.
func newTestTaskService(t *testing.T) (*service.TaskService, *memTaskStore) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mock.MatchExpectationsInOrder(false)
	for i := 0; i < 64; i++ {
		mock.ExpectBegin()
		mock.ExpectCommit()
		mock.ExpectRollback()
	}

	tasks := newMemTaskStore()
	return service.NewTaskService(db, tasks, cache.New[*domain.Task](5*time.Minute)), tasks
}

// newTaskRouter mounts the task handler under /v2/tasks behind a middleware
// that injects user into every request context, standing in for the auth
// middleware.
func newTaskRouter(handler *TaskHandler, user *domain.User) http.Handler {
	r := chi.NewRouter()
	r.Route("/v2/tasks", func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				next.ServeHTTP(w, req.WithContext(shared.WithUser(req.Context(), user)))
			})
		})
		r.Get("/", handler.List)
		r.Post("/", handler.Create)
		r.Get("/{id}", handler.Get)
		r.Put("/{id}", handler.Update)
		r.Delete("/", handler.DeleteAll)
		r.Delete("/{id}", handler.Delete)
	})
	return r
}

// doJSON performs a request with a JSON body against the handler and
// returns the recorder.
func doJSON(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// doRaw performs a prepared request against the handler and returns the
// recorder. Used when the body must stay exactly as written, e.g. malformed
// JSON.
func doRaw(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// decodeBody unmarshals the recorded response body into a generic map.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func newTestUser(t *testing.T) *domain.User {
	t.Helper()

	user, err := domain.NewUser("Alice", "alice@example.com", "password123")
	require.NoError(t, err)
	return user
}
