package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/kunstewi/account-service/internal/model"
)

func runOwner(t *testing.T, identity *model.User, paramID string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPatch, "/users/"+paramID, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(paramID)
	if identity != nil {
		setIdentity(c, *identity)
	}

	called := false
	next := func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	}
	require.NoError(t, RequireOwner()(next)(c))
	return rec, called
}

func TestRequireOwnerNoIdentity(t *testing.T) {
	rec, called := runOwner(t, nil, "7")
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.False(t, called)
}

func TestRequireOwnerMismatch(t *testing.T) {
	u := model.User{ID: 7}
	rec, called := runOwner(t, &u, "8")
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.False(t, called)
}

func TestRequireOwnerMatch(t *testing.T) {
	u := model.User{ID: 7}
	rec, called := runOwner(t, &u, "7")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, called)
}
