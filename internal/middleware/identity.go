package middleware

// identity.go defines how the authenticated user travels through the
// request. The session middleware stores a typed model.User under a fixed
// context key and everything downstream reads it back through Identity;
// handlers never touch the key directly, so the identity cannot be
// attached with the wrong shape.

import (
	"github.com/labstack/echo/v4"

	"github.com/kunstewi/account-service/internal/model"
)

// identityKey is the echo context key under which SessionAuth stores the
// authenticated user.
const identityKey = "auth.identity"

// setIdentity attaches the authenticated user to the request context.
func setIdentity(c echo.Context, u model.User) {
	c.Set(identityKey, u)
}

// Identity returns the authenticated user attached by SessionAuth. The
// second return value is false when no identity is present, which means
// the route was reached without the session middleware.
func Identity(c echo.Context) (model.User, bool) {
	u, ok := c.Get(identityKey).(model.User)
	return u, ok
}
