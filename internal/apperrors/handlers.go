package apperrors

import (
	"net/http"

	"findthem_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// HandleError writes an AppError to the Gin response. Server-side errors
// are logged with full detail but surfaced with a generic message.
func HandleError(c *gin.Context, err *AppError) {
	if err.HTTPCode >= 500 {
		logger.CtxWithError(c.Request.Context(), "server error", err,
			"path", c.Request.URL.Path,
		)
		// Hide internals from the client
		err = New(err.Code, err.Message, err.HTTPCode)
	}

	c.JSON(err.HTTPCode, ErrorResponse{Error: err})
}

// HandleUnknownError wraps a plain error before responding.
func HandleUnknownError(c *gin.Context, err error) {
	var appErr *AppError
	if As(err, &appErr) {
		HandleError(c, appErr)
		return
	}
	HandleError(c, Wrap(err, CodeInternalError, "Internal server error", http.StatusInternalServerError))
}
