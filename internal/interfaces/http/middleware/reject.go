package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ilim-academy/website/internal/shared/constants"
	"github.com/ilim-academy/website/internal/shared/utils"
)

// Rejector writes the response for a request a middleware refuses. Page
// routes render an HTML error; JSON routes keep the API envelope.
type Rejector func(c *gin.Context, status int, message string)

// JSONRejector answers with the standard error envelope.
func JSONRejector(c *gin.Context, status int, message string) {
	utils.ErrorResponse(c, status, message)
}

func reject(c *gin.Context, onReject Rejector, status int, message string) {
	if onReject == nil || WantsJSON(c) {
		onReject = JSONRejector
	}
	onReject(c, status, message)
	c.Abort()
}

// WantsJSON reports whether the client asked for a JSON response.
func WantsJSON(c *gin.Context) bool {
	if strings.Contains(c.GetHeader("Accept"), constants.ContentTypeJSON) {
		return true
	}
	return c.GetHeader("X-Requested-With") == "XMLHttpRequest"
}
