package engine

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// Loader builds the engine on first use. Loading is expensive (the model
// claims the accelerator), so it happens once per process and the result is
// reused until exit.
type Loader func() (Synthesizer, error)

// Gate serializes every synthesis call onto the single engine instance. The
// model expects exclusive use of its hardware; two overlapping calls risk
// contention or corrupted output, so at most one runs at a time and the rest
// block until their turn.
type Gate struct {
	load   Loader
	logger *slog.Logger

	once    sync.Once
	engine  Synthesizer
	loadErr error

	mu sync.Mutex
}

func NewGate(load Loader, logger *slog.Logger) *Gate {
	return &Gate{
		load:   load,
		logger: logger,
	}
}

// Synthesize admits one call onto the engine. A load failure is sticky:
// every call after a failed load reports the same error until the process
// restarts. The gate is released on every return path, success or failure.
func (g *Gate) Synthesize(ctx context.Context, req Request) error {
	g.once.Do(func() {
		start := time.Now()
		g.engine, g.loadErr = g.load()
		if g.loadErr != nil {
			g.logger.Error("engine load failed", "error", g.loadErr)
			return
		}
		g.logger.Info("synthesis engine loaded", "elapsed", time.Since(start))
	})

	if g.loadErr != nil {
		return &SynthesisError{Message: "engine unavailable: " + g.loadErr.Error()}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	err := g.engine.Synthesize(ctx, req)
	if err != nil {
		var synthErr *SynthesisError
		if errors.As(err, &synthErr) {
			return err
		}
		return &SynthesisError{Message: err.Error()}
	}

	return nil
}
