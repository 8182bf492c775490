package storage

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	natstest "github.com/nats-io/nats-server/v2/test"
	"github.com/nats-io/nats.go"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startTestServer runs an in-memory NATS server with JetStream enabled and
// returns a JetStream context bound to it.
func startTestServer(t *testing.T) nats.JetStreamContext {
	t.Helper()

	opts := natstest.DefaultTestOptions
	opts.Port = -1
	opts.JetStream = true
	opts.StoreDir = t.TempDir()
	srv := natstest.RunServer(&opts)
	t.Cleanup(srv.Shutdown)

	nc, err := nats.Connect(srv.ClientURL())
	if err != nil {
		t.Fatalf("connect to test NATS server: %v", err)
	}
	t.Cleanup(nc.Close)

	js, err := nc.JetStream()
	if err != nil {
		t.Fatalf("jetstream context: %v", err)
	}

	return js
}

func TestNATSStore_Put(t *testing.T) {
	js := startTestServer(t)

	store, err := New(js, "tts-audio", "https://audio.example.com", testLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	localPath := filepath.Join(t.TempDir(), "alice.wav")
	if err := os.WriteFile(localPath, []byte("RIFFaudio"), 0o600); err != nil {
		t.Fatal(err)
	}

	url, err := store.Put(context.Background(), localPath, "tts_outputs/alice.wav")
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if url != "https://audio.example.com/tts_outputs/alice.wav" {
		t.Errorf("unexpected URL: %s", url)
	}

	obj, err := store.store.Get("tts_outputs/alice.wav")
	if err != nil {
		t.Fatalf("object not stored: %v", err)
	}
	data, err := io.ReadAll(obj)
	if cerr := obj.Close(); cerr != nil {
		t.Fatalf("close object: %v", cerr)
	}
	if err != nil {
		t.Fatalf("read object: %v", err)
	}
	if string(data) != "RIFFaudio" {
		t.Errorf("stored bytes differ: %q", data)
	}
}

func TestNATSStore_BindsToExistingBucket(t *testing.T) {
	js := startTestServer(t)

	if _, err := New(js, "tts-audio", "https://audio.example.com", testLogger()); err != nil {
		t.Fatalf("first New: %v", err)
	}
	if _, err := New(js, "tts-audio", "https://audio.example.com", testLogger()); err != nil {
		t.Fatalf("second New should bind, got: %v", err)
	}
}

func TestNATSStore_PutMissingLocalFile(t *testing.T) {
	js := startTestServer(t)

	store, err := New(js, "tts-audio", "https://audio.example.com", testLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = store.Put(context.Background(), filepath.Join(t.TempDir(), "missing.wav"), "tts_outputs/x.wav")

	var upErr *UploadError
	if !errors.As(err, &upErr) {
		t.Fatalf("expected *UploadError, got %v", err)
	}
	if upErr.Kind != UploadErrorTransport {
		t.Errorf("kind = %s, want %s", upErr.Kind, UploadErrorTransport)
	}
}

func TestClassify(t *testing.T) {
	if got := classify(nats.ErrAuthorization).Kind; got != UploadErrorNoCredentials {
		t.Errorf("authorization error classified as %s", got)
	}
	if got := classify(nats.ErrConnectionClosed).Kind; got != UploadErrorTransport {
		t.Errorf("connection error classified as %s", got)
	}
}
