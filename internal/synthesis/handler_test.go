package synthesis

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/voiceforge/clone-backend/internal/artifact"
	"github.com/voiceforge/clone-backend/internal/engine"
	"github.com/voiceforge/clone-backend/internal/storage"
)

func newTestHandler(t *testing.T, eng Engine, up Uploader) (*echo.Echo, *artifact.Store, string) {
	t.Helper()

	artifacts, tempDir := newTestArtifacts(t)
	svc := NewService(artifacts, eng, up, testLogger())
	h := NewHandler(svc, testLogger())

	e := echo.New()
	h.RegisterRoutes(e.Group(""))

	return e, artifacts, tempDir
}

func postJSON(e *echo.Echo, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/generate_tts", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestGenerate(t *testing.T) {
	eng := &fakeEngine{}
	e, artifacts, tempDir := newTestHandler(t, eng, &fakeUploader{})
	registerSpeaker(t, artifacts, "alice")

	rec := postJSON(e, `{"text":"Hello world","speaker_name":"alice"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success bool   `json:"success"`
		URL     string `json:"url"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success {
		t.Error("success should be true")
	}
	if resp.URL != "https://audio.example.com/tts_outputs/alice.wav" {
		t.Errorf("unexpected URL: %s", resp.URL)
	}

	assertNoTempArtifacts(t, tempDir)
}

func TestGenerate_EmptyBody(t *testing.T) {
	e, _, _ := newTestHandler(t, &fakeEngine{}, &fakeUploader{})

	rec := postJSON(e, `{}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var resp struct {
		Success bool `json:"success"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Success {
		t.Error("success should be false")
	}
}

func TestGenerate_UnknownSpeaker(t *testing.T) {
	e, _, _ := newTestHandler(t, &fakeEngine{}, &fakeUploader{})

	rec := postJSON(e, `{"text":"hi","speaker_name":"nobody"}`)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Success {
		t.Error("success should be false")
	}
	if resp.Message != "Speaker nobody not found!" {
		t.Errorf("unexpected message: %q", resp.Message)
	}
}

func TestGenerate_SynthesisFailure(t *testing.T) {
	eng := &fakeEngine{err: &engine.SynthesisError{Message: "model crashed"}}
	e, artifacts, tempDir := newTestHandler(t, eng, &fakeUploader{})
	registerSpeaker(t, artifacts, "alice")

	rec := postJSON(e, `{"text":"hi","speaker_name":"alice"}`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}

	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Success {
		t.Error("success should be false")
	}
	if resp.Error == "" {
		t.Error("error detail should be present")
	}

	assertNoTempArtifacts(t, tempDir)
}

func TestGenerate_UploadFailure(t *testing.T) {
	eng := &fakeEngine{}
	up := &fakeUploader{err: &storage.UploadError{Kind: storage.UploadErrorTransport, Detail: "store unreachable"}}
	e, artifacts, tempDir := newTestHandler(t, eng, up)
	registerSpeaker(t, artifacts, "alice")

	rec := postJSON(e, `{"text":"hi","speaker_name":"alice"}`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}

	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Success {
		t.Error("success should be false")
	}
	if !strings.Contains(resp.Error, "transport") {
		t.Errorf("upload kind not surfaced: %q", resp.Error)
	}

	assertNoTempArtifacts(t, tempDir)
}
