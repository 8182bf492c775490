package speaker

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/voiceforge/clone-backend/internal/artifact"
	"github.com/voiceforge/clone-backend/internal/audio"
	"github.com/voiceforge/clone-backend/internal/dto"
	"github.com/voiceforge/clone-backend/internal/shared"
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
	g.POST("/upload_speaker", h.Upload)
}

// Upload godoc
// @Summary      Register a speaker voice
// @Description  Stores an uploaded audio sample as the reference voice for a speaker name
// @Tags         speakers
// @Accept       multipart/form-data
// @Produce      json
// @Param        file          formData  file    true  "Reference audio sample"
// @Param        speaker_name  formData  string  true  "Speaker name"
// @Success      200  {object}  dto.UploadSpeakerResponse
// @Failure      400  {object}  shared.APIError
// @Failure      403  {object}  shared.APIError
// @Failure      500  {object}  shared.APIError
// @Security     APIKeyAuth
// @Router       /upload_speaker [post]
func (h *Handler) Upload(c echo.Context) error {
	name := c.FormValue("speaker_name")
	fileHeader, err := c.FormFile("file")
	if err != nil || name == "" {
		h.logger.Warn("missing file or speaker_name", "path", c.Path())
		return shared.BadRequest("File and speaker_name are required!")
	}

	src, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("failed to open uploaded file", "error", err)
		return shared.InternalError("failed to read uploaded file")
	}
	defer src.Close()

	if err := h.service.Register(c.Request().Context(), name, src); err != nil {
		if errors.Is(err, artifact.ErrInvalidSpeakerName) {
			return shared.BadRequest("Invalid speaker_name!")
		}

		var transcodeErr *audio.TranscodeError
		if errors.As(err, &transcodeErr) {
			h.logger.Error("speaker registration failed", "speaker", name, "stage", "normalize", "error", transcodeErr.Stderr)
			return shared.InternalError(transcodeErr.Error())
		}

		h.logger.Error("speaker registration failed", "speaker", name, "error", err)
		return shared.InternalError("failed to store speaker")
	}

	return c.JSON(http.StatusOK, dto.UploadSpeakerResponse{
		Success: true,
		Message: fmt.Sprintf("Speaker %s uploaded successfully!", name),
	})
}
