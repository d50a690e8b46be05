package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"context"  // context with timeout bounds the store lookups
	"errors"   // sentinel error matching against the repository
	"net/http" // HTTP status codes for responses
	"time"     // timeout duration for store calls

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

	"github.com/kunstewi/account-service/internal/model"
	"github.com/kunstewi/account-service/internal/repository"
)

// SessionStore is the slice of the user store the session middleware
// needs: resolving a token to a user, and resolving a cached user id.
type SessionStore interface {
	GetBySessionToken(ctx context.Context, token string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// SessionAuth returns an Echo middleware that authenticates a request from
// its session cookie and injects the resolved user into the request
// context. The request moves through four states: no cookie (rejected),
// cookie present (token resolved via cache then store), token matching no
// user (rejected), and authenticated (identity attached, chain continues).
// There is no expiry check; a token stays valid until a newer login
// overwrites it. Protected routes should wrap themselves with this
// middleware so handlers can read the user via Identity(c).
func SessionAuth(store SessionStore, cache *repository.SessionCache, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Read the session cookie. Absence or an empty value means the
			// client never logged in; respond with 403 without touching
			// the store.
			cookie, err := c.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "unauthenticated"})
			}
			token := cookie.Value

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()

			// Fast path: the cache maps the token straight to a user id.
			// A cached id whose record has since disappeared falls back to
			// the authoritative token lookup below.
			if id, ok := cache.Get(ctx, token); ok {
				if u, err := store.GetByID(ctx, id); err == nil {
					setIdentity(c, u)
					return next(c)
				}
				cache.Del(ctx, token)
			}

			u, err := store.GetBySessionToken(ctx, token)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					// The token matches no stored session: stale cookie or
					// one superseded by a later login.
					return c.JSON(http.StatusForbidden, echo.Map{"error": "unauthenticated"})
				}
				// Store failure: generic client-facing error, details stay
				// server-side.
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "request failed"})
			}

			cache.Set(ctx, token, u.ID)
			setIdentity(c, u)
			return next(c)
		}
	}
}
