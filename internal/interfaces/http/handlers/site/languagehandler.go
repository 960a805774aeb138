package site

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ilim-academy/website/internal/domain/locale"
	"github.com/ilim-academy/website/internal/interfaces/http/handlers/common"
	"github.com/ilim-academy/website/internal/interfaces/http/middleware"
	"github.com/ilim-academy/website/internal/interfaces/http/view"
	"github.com/ilim-academy/website/internal/shared/config"
	"github.com/ilim-academy/website/internal/shared/constants"
	"github.com/ilim-academy/website/internal/shared/utils"
)

// httpEnvironment applies a language switch to one response: the document
// attributes of the request and the persisted lang cookie.
type httpEnvironment struct {
	c            *gin.Context
	doc          *view.Document
	cookieConfig config.CookieConfig
}

func (e *httpEnvironment) SetDirection(dir locale.Direction) {
	e.doc.SetDirection(dir)
}

func (e *httpEnvironment) SetLanguage(lang locale.Language) {
	e.doc.SetLanguage(lang)
}

func (e *httpEnvironment) ChangeLanguage(lang locale.Language) error {
	utils.SetLanguageCookie(e.c, e.cookieConfig, lang.String())
	e.c.Set(constants.ContextKeyLanguage, lang)
	return nil
}

type LanguageHandler struct {
	*common.PageBase
	switcher *locale.Switcher
}

func NewLanguageHandler(base *common.PageBase, switcher *locale.Switcher) *LanguageHandler {
	return &LanguageHandler{
		PageBase: base,
		switcher: switcher,
	}
}

type languageResult struct {
	Language locale.Language  `json:"lang"`
	Dir      locale.Direction `json:"dir"`
	Changed  bool             `json:"changed"`
}

// Switch handles POST /language with form fields lang and redirect.
func (h *LanguageHandler) Switch(c *gin.Context) {
	current := middleware.GetLanguage(c)
	target, ok := locale.ParseLanguage(c.PostForm("lang"))
	if !ok {
		h.respondError(c, http.StatusBadRequest, locale.ErrUnsupportedLanguage.Error())
		return
	}

	env := &httpEnvironment{c: c, doc: middleware.GetDocument(c), cookieConfig: h.CookieConfig()}
	changed, err := h.switcher.Switch(env, c.ClientIP(), current, target)
	switch {
	case errors.Is(err, locale.ErrSwitchInProgress):
		// A second click during the cooldown is ignored; the first one wins.
		h.GetLogger().Ctx(c.Request.Context()).Debugw("language switch ignored during cooldown", "target", target)
	case err != nil:
		h.GetLogger().Ctx(c.Request.Context()).Warnw("language switch failed", "target", target, "error", err)
		h.respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	if middleware.WantsJSON(c) {
		doc := middleware.GetDocument(c)
		utils.SuccessResponse(c, http.StatusOK, "", languageResult{Language: doc.Lang, Dir: doc.Dir, Changed: changed})
		return
	}
	c.Redirect(http.StatusSeeOther, safeRedirect(c.PostForm("redirect")))
}

func (h *LanguageHandler) respondError(c *gin.Context, status int, message string) {
	if middleware.WantsJSON(c) {
		utils.ErrorResponse(c, status, message)
		return
	}
	h.RenderError(c, status, message)
}

// safeRedirect keeps redirects on this site.
func safeRedirect(target string) string {
	target = strings.TrimSpace(target)
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.Contains(target, `\`) {
		return "/"
	}
	return target
}
