package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/kunstewi/account-service/internal/handler"    // import the handlers that implement business logic
	"github.com/kunstewi/account-service/internal/middleware" // import middleware for session authentication and ownership
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the account lifecycle routes.  Register, login
// and logout do not require a session; /me runs behind the session
// middleware so it can return the attached identity.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, session echo.MiddlewareFunc) {
	// Register a POST endpoint to create a new account.
	e.POST("/register", a.Register)
	// Register a POST endpoint to authenticate and receive the session cookie.
	e.POST("/login", a.Login)
	// Logout clears the cookie client-side and therefore needs no session;
	// a request without a cookie still succeeds.
	e.POST("/logout", a.Logout)
	// The /me endpoint reports the authenticated identity and requires a
	// valid session cookie.
	e.GET("/me", a.Me, session)
}

// RegisterUsers registers the user CRUD routes.  Every route requires an
// authenticated session; the mutating routes additionally require that the
// authenticated user owns the addressed record.
func RegisterUsers(e *echo.Echo, u *handler.UserHandler, session echo.MiddlewareFunc) {
	// Group all user routes under /users and apply the session middleware
	// once for the whole group.
	g := e.Group("/users", session)
	// List all users.
	g.GET("", u.List)
	// Fetch a single user by id.
	g.GET("/:id", u.Get)
	// Update a user's username; only the owner may do this.
	g.PATCH("/:id", u.Update, middleware.RequireOwner())
	// Delete a user; only the owner may do this.
	g.DELETE("/:id", u.Delete, middleware.RequireOwner())
}
