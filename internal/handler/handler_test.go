package handler

// Shared helpers for handler tests. Handlers are exercised against a
// sqlmock-backed repository; Echo contexts are built with httptest so no
// network listener is involved.

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

// newMockDB returns a sqlmock database and registers its cleanup.
func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// newJSONContext builds an Echo context carrying a JSON body.
func newJSONContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// asPrincipal mimics what the JWT middleware stores for an authenticated
// request: numeric claims arrive as float64.
func asPrincipal(c echo.Context, id uint64, role string) {
	c.Set("user_id", float64(id))
	c.Set("role", role)
}
