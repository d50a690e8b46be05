package handler_test

// store_test.go holds the in-memory UserStore fake shared by the handler
// tests, plus the helper that assembles a full server (router + session
// and ownership middleware) around it.

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/kunstewi/account-service/internal/config"
	"github.com/kunstewi/account-service/internal/handler"
	"github.com/kunstewi/account-service/internal/middleware"
	"github.com/kunstewi/account-service/internal/model"
	"github.com/kunstewi/account-service/internal/repository"
	"github.com/kunstewi/account-service/internal/router"
	"github.com/kunstewi/account-service/internal/utils"
)

const testCookieName = "KUNSTEWI-AUTH"

// memStore is an in-memory handler.UserStore (and middleware.SessionStore).
type memStore struct {
	mu     sync.Mutex
	nextID uint64
	users  map[uint64]model.User
}

func newMemStore() *memStore {
	return &memStore{users: map[uint64]model.User{}}
}

func stripAuth(u model.User) model.User {
	u.Auth = model.Authentication{}
	return u
}

func (m *memStore) Create(_ context.Context, email, username, salt, passHash string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return model.User{}, repository.ErrEmailExists
		}
	}
	m.nextID++
	now := time.Now().UTC()
	u := model.User{
		ID:        m.nextID,
		Email:     email,
		Username:  username,
		Auth:      model.Authentication{Salt: salt, PasswordHash: passHash},
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.users[u.ID] = u
	return stripAuth(u), nil
}

func (m *memStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return stripAuth(u), nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (m *memStore) GetByEmailWithAuth(_ context.Context, email string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (m *memStore) GetByID(_ context.Context, id uint64) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return stripAuth(u), nil
}

func (m *memStore) GetBySessionToken(_ context.Context, token string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Auth.SessionToken != "" && u.Auth.SessionToken == token {
			return stripAuth(u), nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (m *memStore) List(_ context.Context) ([]model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, stripAuth(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) UpdateUsername(_ context.Context, id uint64, username string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	u.Username = username
	u.UpdatedAt = time.Now().UTC()
	m.users[id] = u
	return stripAuth(u), nil
}

func (m *memStore) Delete(_ context.Context, id uint64) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	delete(m.users, id)
	return u, nil
}

func (m *memStore) SetSessionToken(_ context.Context, id uint64, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Auth.SessionToken = token
	m.users[id] = u
	return nil
}

// sessionToken reads the persisted token for a user id directly from the
// fake, bypassing projections.
func (m *memStore) sessionToken(id uint64) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.users[id].Auth.SessionToken
}

// newTestServer wires the full route table around the fake store, the way
// cmd/server does around the real one.
func newTestServer(store *memStore) *echo.Echo {
	cfg := config.Config{SessionCookieName: testCookieName}
	cache := repository.NewSessionCache(nil, 0)
	hasher := utils.NewHasher("test-secret")
	session := middleware.SessionAuth(store, cache, cfg.SessionCookieName)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, store, hasher, cache), session)
	router.RegisterUsers(e, handler.NewUserHandler(store, cache), session)
	return e
}

// do issues a JSON request against the test server, optionally with a
// session cookie.
func do(t *testing.T, e *echo.Echo, method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// sessionCookie extracts the session cookie from a login response.
func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == testCookieName {
			return ck
		}
	}
	require.FailNow(t, "no session cookie in response")
	return nil
}
