// Package engine owns the single loaded synthesis model and the admission
// gate that makes it safe to call under concurrent HTTP traffic.
package engine

import "context"

// Request is one synthesis call: text rendered in the voice of the reference
// sample, written to the caller-supplied output path. The output path comes
// from the artifact store, so concurrent requests never share a filename.
type Request struct {
	Text       string
	SpeakerWAV string
	Language   string
	OutputPath string
}

// Synthesizer is the underlying model. Implementations are not required to
// tolerate concurrent calls; the Gate serializes access.
type Synthesizer interface {
	Synthesize(ctx context.Context, req Request) error
}

// SynthesisError reports a per-call failure from the engine.
type SynthesisError struct {
	Message string
}

func (e *SynthesisError) Error() string {
	return "synthesis failed: " + e.Message
}
