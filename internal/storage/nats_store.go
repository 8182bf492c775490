// Package storage uploads synthesis outputs to the remote object store and
// hands back the public URL they are addressable at.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// UploadErrorKind classifies upload failures for the caller.
type UploadErrorKind string

const (
	UploadErrorNoCredentials UploadErrorKind = "no_credentials"
	UploadErrorTransport     UploadErrorKind = "transport"
)

// UploadError is the single error type the upload adapter surfaces. There is
// no retry policy; one attempt per request.
type UploadError struct {
	Kind   UploadErrorKind
	Detail string
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload failed (%s): %s", e.Kind, e.Detail)
}

// NATSStore persists objects in a JetStream object store bucket. Objects only
// exist once the store confirms the put; a failed put leaves nothing
// addressable.
type NATSStore struct {
	store         nats.ObjectStore
	bucket        string
	publicBaseURL string
	logger        *slog.Logger
}

// New binds to the audio bucket, creating it first if it does not exist.
func New(js nats.JetStreamContext, bucket, publicBaseURL string, logger *slog.Logger) (*NATSStore, error) {
	store, err := js.CreateObjectStore(&nats.ObjectStoreConfig{
		Bucket:      bucket,
		Description: fmt.Sprintf("Synthesized audio for the %s bucket.", bucket),
		Storage:     nats.FileStorage,
		Replicas:    1,
	})
	if err != nil {
		if !errors.Is(err, jetstream.ErrBucketExists) {
			return nil, fmt.Errorf("create object store bucket %q: %w", bucket, err)
		}

		store, err = js.ObjectStore(bucket)
		if err != nil {
			return nil, fmt.Errorf("bind to object store bucket %q: %w", bucket, err)
		}
	}

	return &NATSStore{
		store:         store,
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		logger:        logger,
	}, nil
}

// Put uploads the file at localPath under key and returns its public URL.
func (s *NATSStore) Put(_ context.Context, localPath, key string) (string, error) {
	data, err := os.ReadFile(localPath)
	if err != nil {
		return "", &UploadError{Kind: UploadErrorTransport, Detail: "read local artifact: " + err.Error()}
	}

	_, err = s.store.Put(&nats.ObjectMeta{Name: key}, bytes.NewReader(data))
	if err != nil {
		return "", classify(err)
	}

	url := s.publicBaseURL + "/" + key
	s.logger.Info("uploaded object", "bucket", s.bucket, "key", key, "url", url, "bytes", len(data))

	return url, nil
}

func classify(err error) *UploadError {
	if errors.Is(err, nats.ErrAuthorization) || errors.Is(err, nats.ErrAuthExpired) {
		return &UploadError{Kind: UploadErrorNoCredentials, Detail: err.Error()}
	}
	return &UploadError{Kind: UploadErrorTransport, Detail: err.Error()}
}
