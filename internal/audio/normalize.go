// Package audio wraps the external transcoding utility that converts uploaded
// voice samples into the canonical reference format, plus the PCM/WAV helpers
// the rest of the service needs.
package audio

import (
	"bytes"
	"context"
	"log/slog"
	"os/exec"
	"strings"
)

// Canonical reference profile: mono, 44.1kHz, 16-bit PCM.
const (
	targetSampleRate = "44100"
	targetChannels   = "1"
	targetCodec      = "pcm_s16le"
)

// TranscodeError reports a failed normalization. The source audio is treated
// as unsalvageable client input; callers do not retry.
type TranscodeError struct {
	Stderr string
}

func (e *TranscodeError) Error() string {
	return "transcode failed: " + e.Stderr
}

// Normalizer invokes the external transcoder (ffmpeg by default) with a fixed
// target profile. It holds no state and is safe for concurrent use.
type Normalizer struct {
	binary string
	logger *slog.Logger
}

func NewNormalizer(binary string, logger *slog.Logger) *Normalizer {
	if binary == "" {
		binary = "ffmpeg"
	}
	return &Normalizer{
		binary: binary,
		logger: logger,
	}
}

// Normalize transcodes inputPath into outputPath, overwriting any existing
// output so re-registration replaces the previous reference.
func (n *Normalizer) Normalize(ctx context.Context, inputPath, outputPath string) error {
	args := []string{
		"-y",
		"-i", inputPath,
		"-ar", targetSampleRate,
		"-ac", targetChannels,
		"-c:a", targetCodec,
		outputPath,
	}

	cmd := exec.CommandContext(ctx, n.binary, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		n.logger.Error("transcode failed", "input", inputPath, "error", detail)
		return &TranscodeError{Stderr: detail}
	}

	return nil
}
