package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	goerrors "github.com/goliatone/go-errors"
)

// writeError maps a service error to a response. Validation problems are
// the caller's fault; everything else is a gateway fault.
func writeError(c *gin.Context, err error) {
	var e *goerrors.Error
	if goerrors.As(err, &e) && e.Category == goerrors.CategoryValidation {
		body := gin.H{"error": e.Message}
		if fields := e.ValidationMap(); len(fields) > 0 {
			body["fields"] = fields
		}
		c.JSON(http.StatusBadRequest, body)
		return
	}

	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error", "request_id": GetRequestID(c)})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
