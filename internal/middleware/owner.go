package middleware // middleware provides shared request processing for handlers

import (
	"net/http" // http package defines standard HTTP status codes
	"strconv"  // strconv renders the identity id for comparison

	"github.com/labstack/echo/v4" // echo provides middleware chaining and context
)

// RequireOwner returns a middleware function that enforces that the
// authenticated user owns the resource addressed by the `:id` path
// parameter. It assumes SessionAuth has already run and attached an
// identity; a missing identity is treated as unauthenticated rather than
// as a server error, so a misordered route chain fails closed. The ids are
// compared as strings, matching how the parameter arrives from the router.
func RequireOwner() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u, ok := Identity(c)
			if !ok {
				// Defensive: should not happen when SessionAuth runs first.
				return c.JSON(http.StatusForbidden, echo.Map{"error": "unauthenticated"})
			}
			if strconv.FormatUint(u.ID, 10) != c.Param("id") {
				// Authenticated, but not the owner of this resource.
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
