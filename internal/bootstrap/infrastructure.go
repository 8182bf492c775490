package bootstrap

import (
	"context"
	"log/slog"

	"github.com/nats-io/nats.go"
	"go.uber.org/fx"

	"github.com/voiceforge/clone-backend/internal/storage"
)

func ProvideNATSConn(lc fx.Lifecycle, cfg *Config, logger *slog.Logger) (*nats.Conn, error) {
	nc, err := nats.Connect(cfg.NATSURL, nats.Name("voiceforge-clone-backend"))
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			nc.Close()
			return nil
		},
	})

	logger.Info("connected to NATS", "url", cfg.NATSURL)

	return nc, nil
}

func ProvideJetStream(nc *nats.Conn) (nats.JetStreamContext, error) {
	return nc.JetStream()
}

func ProvideObjectStore(js nats.JetStreamContext, cfg *Config, logger *slog.Logger) (*storage.NATSStore, error) {
	return storage.New(js, cfg.AudioBucket, cfg.PublicBaseURL, logger.With("component", "storage"))
}

var InfrastructureModule = fx.Options(
	fx.Provide(
		ProvideNATSConn,
		ProvideJetStream,
		ProvideObjectStore,
	),
)
