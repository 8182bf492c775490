package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
)

// CommandConfig configures the external synthesis binary.
type CommandConfig struct {
	Binary   string
	ModelDir string
}

// CommandEngine drives an XTTS-style voice-cloning CLI. Each call runs the
// binary once with the reference sample and writes the result to the
// requested output path.
type CommandEngine struct {
	binary   string
	modelDir string
	logger   *slog.Logger
}

func NewCommandEngine(cfg CommandConfig, logger *slog.Logger) (*CommandEngine, error) {
	path, err := exec.LookPath(cfg.Binary)
	if err != nil {
		return nil, fmt.Errorf("synthesis binary %q not found: %w", cfg.Binary, err)
	}

	return &CommandEngine{
		binary:   path,
		modelDir: cfg.ModelDir,
		logger:   logger,
	}, nil
}

func (e *CommandEngine) Synthesize(ctx context.Context, req Request) error {
	args := []string{
		"--model_dir", e.modelDir,
		"--text", req.Text,
		"--speaker_wav", req.SpeakerWAV,
		"--language", req.Language,
		"--out", req.OutputPath,
	}

	cmd := exec.CommandContext(ctx, e.binary, args...)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return &SynthesisError{
			Message: fmt.Sprintf("synthesis binary failed: %v: %s", err, output),
		}
	}

	info, err := os.Stat(req.OutputPath)
	if err != nil {
		return &SynthesisError{Message: "no output produced: " + err.Error()}
	}
	if info.Size() == 0 {
		return &SynthesisError{Message: "empty output produced"}
	}

	e.logger.Info("synthesized audio", "output", req.OutputPath, "bytes", info.Size())

	return nil
}
