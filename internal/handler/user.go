package handler // handler defines http handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kunstewi/account-service/internal/model"
	"github.com/kunstewi/account-service/internal/queue"
	"github.com/kunstewi/account-service/internal/repository"
	queue_publisher "github.com/kunstewi/account-service/internal/service"
)

// UserHandler bundles dependencies for the user CRUD endpoints. All of
// them sit behind the session middleware; Update and Delete additionally
// sit behind the ownership middleware.
type UserHandler struct {
	Users UserStore
	Cache *repository.SessionCache
}

func NewUserHandler(users UserStore, cache *repository.SessionCache) *UserHandler {
	return &UserHandler{Users: users, Cache: cache}
}

type updateUserReq struct {
	Username string `json:"username"`
}

// List returns every user in the public projection.
func (h *UserHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "request failed"})
	}
	out := make([]model.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns one user by id.
func (h *UserHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "request failed"})
	}
	return c.JSON(http.StatusOK, u.Public())
}

// Update changes a user's username. Ownership has already been enforced
// by the middleware chain; username is the only mutable field on this
// surface.
func (h *UserHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req updateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.UpdateUsername(ctx, id, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "request failed"})
	}
	return c.JSON(http.StatusOK, u.Public())
}

// Delete removes a user and drops any cached session entry for it.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "request failed"})
	}
	h.Cache.Del(ctx, u.Auth.SessionToken)

	// Best effort, same as registration.
	_ = queue_publisher.PublishAccountEvent(ctx, queue.NewAccountEvent(queue.EventUserDeleted, u))

	return c.JSON(http.StatusOK, echo.Map{"message": "user deleted"})
}

// parseID extracts the numeric `:id` path parameter.
func parseID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}
