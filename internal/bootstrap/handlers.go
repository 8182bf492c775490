package bootstrap

import (
	"errors"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/fx"

	"github.com/voiceforge/clone-backend/internal/artifact"
	"github.com/voiceforge/clone-backend/internal/audio"
	"github.com/voiceforge/clone-backend/internal/auth"
	"github.com/voiceforge/clone-backend/internal/engine"
	"github.com/voiceforge/clone-backend/internal/speaker"
	"github.com/voiceforge/clone-backend/internal/storage"
	"github.com/voiceforge/clone-backend/internal/synthesis"
)

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func ProvideLogger(cfg *Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
}

func ProvideArtifactStore(cfg *Config, logger *slog.Logger) (*artifact.Store, error) {
	return artifact.NewStore(cfg.SpeakersDir, cfg.TempDir, logger.With("component", "artifact"))
}

func ProvideNormalizer(cfg *Config, logger *slog.Logger) *audio.Normalizer {
	return audio.NewNormalizer(cfg.TranscoderBinary, logger.With("component", "normalizer"))
}

func ProvideEngineGate(cfg *Config, logger *slog.Logger) *engine.Gate {
	engineLogger := logger.With("component", "engine")

	// The model is loaded lazily on first use and reused until the process
	// exits; a load failure makes every later synthesis call fail the same way.
	loader := func() (engine.Synthesizer, error) {
		return engine.NewCommandEngine(engine.CommandConfig{
			Binary:   cfg.SynthesisBinary,
			ModelDir: cfg.SynthesisModels,
		}, engineLogger)
	}

	return engine.NewGate(loader, engineLogger)
}

func ProvideSpeakerService(artifacts *artifact.Store, normalizer *audio.Normalizer, logger *slog.Logger) *speaker.Service {
	return speaker.NewService(artifacts, normalizer, logger.With("component", "speaker"))
}

func ProvideSpeakerHandler(svc *speaker.Service, logger *slog.Logger) *speaker.Handler {
	return speaker.NewHandler(svc, logger.With("handler", "speaker"))
}

func ProvideSynthesisService(artifacts *artifact.Store, gate *engine.Gate, store *storage.NATSStore, logger *slog.Logger) *synthesis.Service {
	return synthesis.NewService(artifacts, gate, store, logger.With("component", "synthesis"))
}

func ProvideSynthesisHandler(svc *synthesis.Service, logger *slog.Logger) *synthesis.Handler {
	return synthesis.NewHandler(svc, logger.With("handler", "synthesis"))
}

func ProvideAuthMiddleware(cfg *Config, logger *slog.Logger) (*auth.Middleware, error) {
	// An empty key would make the middleware reject every request; refuse to
	// start instead of serving nothing but 403s.
	if cfg.APIKey == "" {
		return nil, errors.New("API_KEY must be set")
	}
	return auth.NewMiddleware(cfg.APIKey, logger.With("component", "auth")), nil
}

type HandlerParams struct {
	fx.In

	SpeakerHandler   *speaker.Handler
	SynthesisHandler *synthesis.Handler
	AuthMiddleware   *auth.Middleware
}

func RegisterRoutes(e *echo.Echo, params HandlerParams) {
	api := e.Group("")
	api.Use(params.AuthMiddleware.Authenticate)
	params.SpeakerHandler.RegisterRoutes(api)
	params.SynthesisHandler.RegisterRoutes(api)

	e.GET("/swagger/*", echoSwagger.EchoWrapHandler())
}

var HandlersModule = fx.Options(
	fx.Provide(
		ProvideLogger,
		ProvideArtifactStore,
		ProvideNormalizer,
		ProvideEngineGate,
		ProvideSpeakerService,
		ProvideSpeakerHandler,
		ProvideSynthesisService,
		ProvideSynthesisHandler,
		ProvideAuthMiddleware,
	),
	fx.Invoke(RegisterRoutes),
)
