// Package site serves the public pages, forms and language switching.
package site

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ilim-academy/website/internal/domain/locale"
	"github.com/ilim-academy/website/internal/interfaces/http/handlers/common"
)

type PageHandler struct {
	*common.PageBase
}

func NewPageHandler(base *common.PageBase) *PageHandler {
	return &PageHandler{PageBase: base}
}

func (h *PageHandler) Home(c *gin.Context) {
	h.show(c, locale.TopicHome, "home")
}

func (h *PageHandler) About(c *gin.Context) {
	h.show(c, locale.TopicAbout, "about")
}

func (h *PageHandler) Programs(c *gin.Context) {
	h.show(c, locale.TopicPrograms, "programs")
}

func (h *PageHandler) FAQ(c *gin.Context) {
	h.show(c, locale.TopicFAQ, "faq")
}

func (h *PageHandler) show(c *gin.Context, topic locale.Topic, name string) {
	h.Render(c, http.StatusOK, name, h.NewPage(c, topic))
}
