// Package artifact manages the on-disk files behind voice registration and
// synthesis: long-lived speaker reference audio, and per-request temp
// artifacts grouped into scopes that are always released.
package artifact

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/google/uuid"
)

// Purpose names the temp artifact a scope path is allocated for.
type Purpose string

const (
	PurposeRawInput        Purpose = "raw_input"
	PurposeSynthesisOutput Purpose = "synthesis_output"
)

const dirPermissions = 0o750

var (
	ErrInvalidSpeakerName = errors.New("invalid speaker name")
	ErrSpeakerNotFound    = errors.New("speaker not found")
)

// Speaker names become filesystem and object-store keys, so the accepted
// charset is restricted and a leading dot is rejected to rule out traversal
// and hidden files.
var speakerNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-][A-Za-z0-9._-]{0,63}$`)

// ValidateSpeakerName reports whether name is usable as a speaker key.
func ValidateSpeakerName(name string) error {
	if !speakerNamePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidSpeakerName, name)
	}
	return nil
}

// Store owns the speaker reference directory and the temp directory that
// request scopes allocate from. It is safe for concurrent use: every scope
// gets unique paths, and speaker files are keyed by validated names.
type Store struct {
	speakersDir string
	tempDir     string
	logger      *slog.Logger
}

func NewStore(speakersDir, tempDir string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(speakersDir, dirPermissions); err != nil {
		return nil, fmt.Errorf("create speakers dir: %w", err)
	}
	if err := os.MkdirAll(tempDir, dirPermissions); err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}

	return &Store{
		speakersDir: speakersDir,
		tempDir:     tempDir,
		logger:      logger,
	}, nil
}

// SpeakerPath returns the canonical reference path for name. The path lives
// outside every scope and is never removed by Release.
func (s *Store) SpeakerPath(name string) (string, error) {
	if err := ValidateSpeakerName(name); err != nil {
		return "", err
	}
	return filepath.Join(s.speakersDir, name+".wav"), nil
}

// HasSpeaker reports whether a complete reference file exists for name.
func (s *Store) HasSpeaker(name string) bool {
	path, err := s.SpeakerPath(name)
	if err != nil {
		return false
	}

	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// NewScope begins a temp-artifact scope for one request.
func (s *Store) NewScope() *Scope {
	return &Scope{
		store: s,
		id:    uuid.NewString(),
	}
}

// Scope collects the temp paths allocated for a single request. Release
// removes whichever of them exist and is safe to call more than once; only
// the first call does work.
type Scope struct {
	store *Store
	id    string

	mu       sync.Mutex
	paths    []string
	released bool
}

// Path allocates a unique temp path for the given purpose. Two scopes never
// share a path, so concurrent requests cannot collide on temp artifacts.
func (sc *Scope) Path(purpose Purpose) string {
	path := filepath.Join(sc.store.tempDir, fmt.Sprintf("%s-%s.wav", sc.id, purpose))

	sc.mu.Lock()
	sc.paths = append(sc.paths, path)
	sc.mu.Unlock()

	return path
}

// Release deletes every path allocated under the scope that still exists.
// Deletion failures are logged and do not stop the remaining removals.
func (sc *Scope) Release() {
	sc.mu.Lock()
	if sc.released {
		sc.mu.Unlock()
		return
	}
	sc.released = true
	paths := sc.paths
	sc.paths = nil
	sc.mu.Unlock()

	for _, path := range paths {
		err := os.Remove(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			sc.store.logger.Warn("failed to remove temp artifact", "path", path, "error", err)
		}
	}
}
