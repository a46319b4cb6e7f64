// Package respond holds the JSON response helpers shared by the document
// and user handlers, so success and error envelopes stay uniform across
// the API surface.
package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSON writes payload as a JSON body with the given status. Handlers use it
// for non-200 success codes such as 201 on upload and 202 on job enqueue.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// OK writes payload with a 200 status.
func OK(c *gin.Context, payload interface{}) {
	JSON(c, http.StatusOK, payload)
}
