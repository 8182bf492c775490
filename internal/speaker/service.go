// Package speaker implements voice registration: an uploaded sample becomes
// the canonical reference file a speaker name resolves to.
package speaker

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/voiceforge/clone-backend/internal/artifact"
)

// Normalizer converts an uploaded sample into the canonical reference format.
type Normalizer interface {
	Normalize(ctx context.Context, inputPath, outputPath string) error
}

type Service struct {
	artifacts  *artifact.Store
	normalizer Normalizer
	logger     *slog.Logger
}

func NewService(artifacts *artifact.Store, normalizer Normalizer, logger *slog.Logger) *Service {
	return &Service{
		artifacts:  artifacts,
		normalizer: normalizer,
		logger:     logger,
	}
}

// Register saves the payload under a request scope, normalizes it into the
// speaker's reference path, and releases the scope on every exit path. A
// repeat registration overwrites the previous reference. The reference file
// lives outside the scope and survives release.
func (s *Service) Register(ctx context.Context, name string, payload io.Reader) error {
	refPath, err := s.artifacts.SpeakerPath(name)
	if err != nil {
		return err
	}

	scope := s.artifacts.NewScope()
	defer scope.Release()

	rawPath := scope.Path(artifact.PurposeRawInput)
	if err := saveTo(rawPath, payload); err != nil {
		return fmt.Errorf("save uploaded sample: %w", err)
	}

	if err := s.normalizer.Normalize(ctx, rawPath, refPath); err != nil {
		return err
	}

	s.logger.Info("speaker registered", "speaker", name)

	return nil
}

func saveTo(path string, payload io.Reader) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}

	_, copyErr := io.Copy(f, payload)
	closeErr := f.Close()

	if copyErr != nil {
		return copyErr
	}
	return closeErr
}
