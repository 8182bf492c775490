package auth

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestContext(apiKey string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/generate_tts", nil)
	if apiKey != "" {
		req.Header.Set(HeaderAPIKey, apiKey)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAuthenticate_MissingKey(t *testing.T) {
	m := NewMiddleware("secret", testLogger())
	c, _ := newTestContext("")

	called := false
	err := m.Authenticate(func(c echo.Context) error {
		called = true
		return nil
	})(c)

	if called {
		t.Error("handler should not run without an API key")
	}

	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T", err)
	}
	if he.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", he.Code)
	}
}

func TestAuthenticate_WrongKey(t *testing.T) {
	m := NewMiddleware("secret", testLogger())
	c, _ := newTestContext("not-the-secret")

	err := m.Authenticate(func(c echo.Context) error {
		t.Error("handler should not run with a wrong key")
		return nil
	})(c)

	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T", err)
	}
	if he.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", he.Code)
	}
}

func TestAuthenticate_ValidKey(t *testing.T) {
	m := NewMiddleware("secret", testLogger())
	c, _ := newTestContext("secret")

	called := false
	err := m.Authenticate(func(c echo.Context) error {
		called = true
		return nil
	})(c)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Error("handler should run with a valid key")
	}
}
