package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func protectedEcho(handler echo.HandlerFunc, mw ...echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.GET("/protected", handler, mw...)
	return e
}

func TestJWTMiddlewareAcceptsValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := GenerateJWT("64f0c2e8a1b2c3d4e5f60718", "student@mail.com", "student", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	e := protectedEcho(func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"accountId": c.Get("accountId"),
			"role":      c.Get("role"),
			"email":     c.Get("email"),
		})
	}, JWTMiddleware())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	for _, want := range []string{"64f0c2e8a1b2c3d4e5f60718", "student", "student@mail.com"} {
		if !strings.Contains(body, want) {
			t.Errorf("response missing %q: %s", want, body)
		}
	}
}

func TestJWTMiddlewareRejectsMissingToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	e := protectedEcho(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, JWTMiddleware())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestJWTMiddlewareRejectsExpiredToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := GenerateJWT("64f0c2e8a1b2c3d4e5f60718", "student@mail.com", "student", -time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	e := protectedEcho(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, JWTMiddleware())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestJWTMiddlewareRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "other-secret")
	token, err := GenerateJWT("64f0c2e8a1b2c3d4e5f60718", "student@mail.com", "student", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	t.Setenv("JWT_SECRET", "test-secret")
	e := protectedEcho(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, JWTMiddleware())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireRoleAllows(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, _ := GenerateJWT("64f0c2e8a1b2c3d4e5f60718", "student@mail.com", "student", time.Hour)
	e := protectedEcho(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, JWTMiddleware(), RequireRole("student", "admin"))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireRoleForbids(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, _ := GenerateJWT("64f0c2e8a1b2c3d4e5f60718", "student@mail.com", "student", time.Hour)
	e := protectedEcho(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, JWTMiddleware(), RequireRole("admin"))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}
