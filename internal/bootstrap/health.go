package bootstrap

import (
	"github.com/labstack/echo/v4"
	"github.com/nats-io/nats.go"
	"go.uber.org/fx"

	"github.com/voiceforge/clone-backend/internal/health"
)

const version = "1.0.0"

func ProvideHealthHandler(nc *nats.Conn) *health.Handler {
	return health.NewHandler(nc, version)
}

func metricsMiddleware(h *health.Handler) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h.IncrementRequests()
			h.IncrementConnections()
			defer h.DecrementConnections()
			return next(c)
		}
	}
}

func RegisterHealthRoutes(e *echo.Echo, h *health.Handler) {
	e.Use(metricsMiddleware(h))
	h.RegisterRoutes(e)
}

var HealthModule = fx.Options(
	fx.Provide(ProvideHealthHandler),
	fx.Invoke(RegisterHealthRoutes),
)
