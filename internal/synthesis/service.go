// Package synthesis implements the synthesis request lifecycle: resolve the
// speaker reference, run the engine under its gate, upload the result, and
// clean up the request's temp artifacts on every path.
package synthesis

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/voiceforge/clone-backend/internal/artifact"
	"github.com/voiceforge/clone-backend/internal/engine"
)

const (
	// KeyPrefix is the object-store prefix synthesized audio is stored under.
	KeyPrefix = "tts_outputs/"

	defaultLanguage = "en"
)

// Engine admits synthesis calls; the gate in internal/engine satisfies it.
type Engine interface {
	Synthesize(ctx context.Context, req engine.Request) error
}

// Uploader persists a local artifact remotely and returns its URL.
type Uploader interface {
	Put(ctx context.Context, localPath, key string) (string, error)
}

type Service struct {
	artifacts *artifact.Store
	engine    Engine
	uploader  Uploader
	logger    *slog.Logger
}

func NewService(artifacts *artifact.Store, eng Engine, uploader Uploader, logger *slog.Logger) *Service {
	return &Service{
		artifacts: artifacts,
		engine:    eng,
		uploader:  uploader,
		logger:    logger,
	}
}

// Synthesize runs one job end to end and returns the URL of the uploaded
// result. The speaker is resolved before any scope is allocated; after that,
// the scope is released on every exit path, so neither the synthesis output
// nor any partial artifact survives the request. An upload failure loses the
// synthesized audio; there is no fallback.
func (s *Service) Synthesize(ctx context.Context, text, speakerName, language string) (string, error) {
	refPath, err := s.artifacts.SpeakerPath(speakerName)
	if err != nil {
		return "", err
	}
	if !s.artifacts.HasSpeaker(speakerName) {
		return "", fmt.Errorf("%w: %s", artifact.ErrSpeakerNotFound, speakerName)
	}

	if language == "" {
		language = defaultLanguage
	}

	scope := s.artifacts.NewScope()
	defer scope.Release()

	outputPath := scope.Path(artifact.PurposeSynthesisOutput)

	s.logger.Info("generating speech", "speaker", speakerName, "language", language, "chars", len(text))

	err = s.engine.Synthesize(ctx, engine.Request{
		Text:       text,
		SpeakerWAV: refPath,
		Language:   language,
		OutputPath: outputPath,
	})
	if err != nil {
		return "", err
	}

	url, err := s.uploader.Put(ctx, outputPath, KeyPrefix+speakerName+".wav")
	if err != nil {
		return "", err
	}

	return url, nil
}
