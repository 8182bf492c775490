package synthesis

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/voiceforge/clone-backend/internal/artifact"
	"github.com/voiceforge/clone-backend/internal/dto"
	"github.com/voiceforge/clone-backend/internal/engine"
	"github.com/voiceforge/clone-backend/internal/shared"
	"github.com/voiceforge/clone-backend/internal/storage"
)

type Handler struct {
	service *Service
	logger  *slog.Logger
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/generate_tts", h.Generate)
}

// Generate godoc
// @Summary      Synthesize speech
// @Description  Generates speech for the given text in a registered speaker's voice and returns the URL of the uploaded audio
// @Tags         synthesis
// @Accept       json
// @Produce      json
// @Param        request  body      dto.GenerateTTSRequest  true  "Synthesis request"
// @Success      200      {object}  dto.GenerateTTSResponse
// @Failure      400      {object}  shared.APIError
// @Failure      403      {object}  shared.APIError
// @Failure      404      {object}  shared.APIError
// @Failure      500      {object}  shared.APIError
// @Security     APIKeyAuth
// @Router       /generate_tts [post]
func (h *Handler) Generate(c echo.Context) error {
	var req dto.GenerateTTSRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("Text and speaker_name are required!")
	}

	if req.Text == "" || req.SpeakerName == "" {
		h.logger.Warn("missing text or speaker_name", "path", c.Path())
		return shared.BadRequest("Text and speaker_name are required!")
	}

	url, err := h.service.Synthesize(c.Request().Context(), req.Text, req.SpeakerName, req.Language)
	if err != nil {
		return h.mapError(c, req.SpeakerName, err)
	}

	return c.JSON(http.StatusOK, dto.GenerateTTSResponse{
		Success: true,
		URL:     url,
	})
}

func (h *Handler) mapError(c echo.Context, speakerName string, err error) error {
	if errors.Is(err, artifact.ErrInvalidSpeakerName) {
		return shared.BadRequest("Invalid speaker_name!")
	}

	if errors.Is(err, artifact.ErrSpeakerNotFound) {
		h.logger.Warn("speaker not found", "speaker", speakerName)
		return shared.NotFound(fmt.Sprintf("Speaker %s not found!", speakerName))
	}

	var synthErr *engine.SynthesisError
	if errors.As(err, &synthErr) {
		h.logger.Error("synthesis failed", "speaker", speakerName, "stage", "synthesize", "error", synthErr.Message)
		return shared.InternalError(synthErr.Error())
	}

	var upErr *storage.UploadError
	if errors.As(err, &upErr) {
		h.logger.Error("upload failed", "speaker", speakerName, "stage", "upload", "kind", string(upErr.Kind), "error", upErr.Detail)
		return shared.InternalError(upErr.Error())
	}

	h.logger.Error("synthesis request failed", "speaker", speakerName, "error", err)
	return shared.InternalError("failed to generate speech")
}
