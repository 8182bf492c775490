package shared

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// APIError is the failure payload returned on every error response. Client
// mistakes (missing fields, unknown speaker) carry Message; internal failures
// carry Detail under the "error" key.
type APIError struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty" example:"Text and speaker_name are required!"`
	Detail  string `json:"error,omitempty" example:"transcode failed"`
}

func NewAPIError(message string) *APIError {
	return &APIError{
		Success: false,
		Message: message,
	}
}

func (e *APIError) ToHTTP(status int) *echo.HTTPError {
	return echo.NewHTTPError(status, e)
}

func BadRequest(message string) *echo.HTTPError {
	return NewAPIError(message).ToHTTP(http.StatusBadRequest)
}

func Forbidden(message string) *echo.HTTPError {
	return NewAPIError(message).ToHTTP(http.StatusForbidden)
}

func NotFound(message string) *echo.HTTPError {
	return NewAPIError(message).ToHTTP(http.StatusNotFound)
}

func InternalError(detail string) *echo.HTTPError {
	return (&APIError{Success: false, Detail: detail}).ToHTTP(http.StatusInternalServerError)
}
