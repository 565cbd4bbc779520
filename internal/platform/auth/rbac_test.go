package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func requestWithRoles(t *testing.T, mw echo.MiddlewareFunc, roles []string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := context.WithValue(req.Context(), UserRolesKey, roles)
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name     string
		required []string
		has      []string
		want     int
	}{
		{"exact match", []string{"provider"}, []string{"provider"}, http.StatusOK},
		{"one of several", []string{"provider", "billing"}, []string{"billing"}, http.StatusOK},
		{"admin always passes", []string{"billing"}, []string{"admin"}, http.StatusOK},
		{"missing role", []string{"billing"}, []string{"provider"}, http.StatusForbidden},
		{"no roles at all", []string{"provider"}, nil, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := requestWithRoles(t, RequireRole(tt.required...), tt.has)
			if rec.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, rec.Code)
			}
		})
	}
}
