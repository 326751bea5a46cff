// Package response writes the JSON bodies every endpoint shares, including the
// error envelope {"error":{"message","code","reason"}}.
package response

import (
	"errors"
	"net/http"

	"prodtrack/internal/apperr"
	"prodtrack/internal/logger"

	"github.com/gin-gonic/gin"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// RespondError maps err onto its status and aborts the request. Errors outside
// the apperr taxonomy become 500 and are logged; their text is not sent.
func RespondError(c *gin.Context, log *logger.Logger, err error) {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		c.AbortWithStatusJSON(ae.Status(), ErrorEnvelope{
			Error: APIError{Message: ae.Error(), Code: string(ae.Kind), Reason: ae.Reason},
		})
		return
	}

	if log != nil {
		log.Error("unhandled error", "method", c.Request.Method, "path", c.Request.URL.Path, "error", err)
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorEnvelope{
		Error: APIError{Message: "internal server error", Code: "internal"},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

func RespondNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
