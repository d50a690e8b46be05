package handler

import (
	"context"  // provides context with cancellation for DB calls
	"errors"   // sentinel error matching against the repository
	"net/http" // HTTP status codes and primitives
	"strconv"  // id rendering for session-token derivation
	"strings"  // string manipulation utilities
	"time"     // timeouts for DB calls, cookie expiry

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/kunstewi/account-service/internal/config"     // app configuration
	"github.com/kunstewi/account-service/internal/middleware" // typed identity accessor
	"github.com/kunstewi/account-service/internal/model"      // user records
	"github.com/kunstewi/account-service/internal/queue"      // account event payloads
	"github.com/kunstewi/account-service/internal/repository" // DB repositories
	queue_publisher "github.com/kunstewi/account-service/internal/service"
	"github.com/kunstewi/account-service/internal/utils" // helper functions (salting, hashing)
)

// UserStore abstracts the user repository for handlers. *repository.UserRepo
// satisfies it; tests substitute an in-memory fake.
type UserStore interface {
	Create(ctx context.Context, email, username, salt, passHash string) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByEmailWithAuth(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	GetBySessionToken(ctx context.Context, token string) (model.User, error)
	List(ctx context.Context) ([]model.User, error)
	UpdateUsername(ctx context.Context, id uint64, username string) (model.User, error)
	Delete(ctx context.Context, id uint64) (model.User, error)
	SetSessionToken(ctx context.Context, id uint64, token string) error
}

// AuthHandler bundles dependencies for the account lifecycle endpoints.
type AuthHandler struct {
	Cfg    config.Config
	Users  UserStore
	Hasher *utils.Hasher
	Cache  *repository.SessionCache
}

func NewAuthHandler(cfg config.Config, users UserStore, hasher *utils.Hasher, cache *repository.SessionCache) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users, Hasher: hasher, Cache: cache}
}

// ----- DTOs -----

type registerReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register: create an account with a salted password hash.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Username = strings.TrimSpace(req.Username)
	if req.Email == "" || req.Password == "" || req.Username == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password/username required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// Existence check before the insert. Not atomic with it; the unique
	// index on email settles a race between two concurrent registrations.
	if _, err := h.Users.GetByEmail(ctx, req.Email); err == nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
	} else if !errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "request failed"})
	}

	salt, err := h.Hasher.GenerateSalt()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "request failed"})
	}
	u, err := h.Users.Create(ctx, req.Email, req.Username, salt, h.Hasher.Hash(salt, req.Password))
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "request failed"})
	}

	// Best effort: registration succeeds even when the broker is down.
	_ = queue_publisher.PublishAccountEvent(ctx, queue.NewAccountEvent(queue.EventUserRegistered, u))

	return c.JSON(http.StatusOK, u.Public())
}

// Login: verify credentials, rotate the session token, set the cookie.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmailWithAuth(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Same status and body as a wrong password so responses do not
			// reveal which emails are registered.
			return c.JSON(http.StatusForbidden, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "request failed"})
	}
	if !h.Hasher.Verify(u.Auth.Salt, req.Password, u.Auth.PasswordHash) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "invalid credentials"})
	}

	// A fresh salt each login means a fresh token each login; the previous
	// token stops resolving as soon as this one is persisted.
	salt, err := h.Hasher.GenerateSalt()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "request failed"})
	}
	token := h.Hasher.Hash(salt, strconv.FormatUint(u.ID, 10))
	if err := h.Users.SetSessionToken(ctx, u.ID, token); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "request failed"})
	}
	h.Cache.Del(ctx, u.Auth.SessionToken)
	h.Cache.Set(ctx, token, u.ID)

	c.SetCookie(h.sessionCookie(token, 0))
	return c.JSON(http.StatusOK, u.Public())
}

// Logout: clear the session cookie. The persisted token is not touched;
// it stays valid until the next login overwrites it.
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(h.Cfg.SessionCookieName); err == nil && cookie.Value != "" {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()
		h.Cache.Del(ctx, cookie.Value)
	}
	c.SetCookie(h.sessionCookie("", -1))
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

// Me: returns the authenticated identity attached by the session middleware.
func (h *AuthHandler) Me(c echo.Context) error {
	u, ok := middleware.Identity(c)
	if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "unauthenticated"})
	}
	return c.JSON(http.StatusOK, u.Public())
}

// sessionCookie builds the session cookie with the configured name and
// domain, rooted at "/". maxAge < 0 clears the cookie on the client.
func (h *AuthHandler) sessionCookie(token string, maxAge int) *http.Cookie {
	cookie := &http.Cookie{
		Name:     h.Cfg.SessionCookieName,
		Value:    token,
		Domain:   h.Cfg.SessionCookieDomain,
		Path:     "/",
		HttpOnly: true,
	}
	if maxAge < 0 {
		cookie.MaxAge = -1
		cookie.Expires = time.Unix(0, 0)
	}
	return cookie
}
