package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/defipulse/internal/domain/dto"
	"github.com/guttosm/defipulse/internal/logger"
)

// ErrorHandler turns errors attached with c.Error into a JSON ErrorResponse
// when the handler has not written a response itself.
//
// Behavior:
//   - Runs after the rest of the chain (c.Next()).
//   - Logs the last error with the request id.
//   - Responds 500 unless a status was already written.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 {
		return
	}
	err := c.Errors.Last().Err
	rid, _ := c.Get(RequestIDKey)
	logger.L().Error().
		Str("request_id", toString(rid)).
		Str("path", c.Request.URL.Path).
		Err(err).
		Msg("request_error")

	if c.Writer.Written() {
		return
	}
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error", err))
}

// AbortWithError stops the chain and writes a standardized error body.
//
// Parameters:
//   - c: the gin context.
//   - status: HTTP status code to send.
//   - message: client-facing message.
//   - err: underlying error (may be nil); its text goes to error_details.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
