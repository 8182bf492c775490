package auth

import (
	"crypto/subtle"
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/voiceforge/clone-backend/internal/shared"
)

const HeaderAPIKey = "X-API-Key"

// Middleware rejects requests that do not carry the shared API key.
// It runs before every handler it wraps; handlers never see an
// unauthenticated request.
type Middleware struct {
	key    []byte
	logger *slog.Logger
}

func NewMiddleware(apiKey string, logger *slog.Logger) *Middleware {
	return &Middleware{
		key:    []byte(apiKey),
		logger: logger,
	}
}

func (m *Middleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		provided := c.Request().Header.Get(HeaderAPIKey)
		if provided == "" || subtle.ConstantTimeCompare([]byte(provided), m.key) != 1 {
			m.logger.Warn("invalid or missing API key", "path", c.Path())
			return shared.Forbidden("Invalid or missing API key")
		}

		m.logger.Debug("valid API key", "path", c.Path())
		return next(c)
	}
}
