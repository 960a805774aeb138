package middleware

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/ilim-academy/website/internal/domain/locale"
	"github.com/ilim-academy/website/internal/interfaces/http/view"
	"github.com/ilim-academy/website/internal/shared/config"
	"github.com/ilim-academy/website/internal/shared/constants"
	"github.com/ilim-academy/website/internal/shared/logger"
	"github.com/ilim-academy/website/internal/shared/utils"
)

// LanguageSource names where the request language came from.
type LanguageSource string

const (
	SourceQuery   LanguageSource = "query"
	SourceCookie  LanguageSource = "cookie"
	SourceHeader  LanguageSource = "header"
	SourceDefault LanguageSource = "default"
)

// DetectLanguage picks the request language: ?lang, then the lang cookie,
// then Accept-Language, then defaultLang. Unsupported values are skipped.
func DetectLanguage(c *gin.Context, defaultLang locale.Language) (locale.Language, LanguageSource) {
	if lang, ok := locale.ParseLanguage(c.Query("lang")); ok {
		return lang, SourceQuery
	}
	if raw, err := c.Cookie(utils.LanguageCookie); err == nil {
		if lang, ok := locale.ParseLanguage(raw); ok {
			return lang, SourceCookie
		}
	}
	if lang, ok := locale.MatchAcceptLanguage(c.GetHeader(constants.HeaderAcceptLang)); ok {
		return lang, SourceHeader
	}
	return defaultLang, SourceDefault
}

// Language stores the detected language and a fresh view.Document for the
// request. A ?lang parameter is persisted to the lang cookie.
func Language(defaultLang locale.Language, cookieConfig config.CookieConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang, source := DetectLanguage(c, defaultLang)
		if source == SourceQuery {
			utils.SetLanguageCookie(c, cookieConfig, lang.String())
		}

		c.Set(constants.ContextKeyLanguage, lang)
		c.Set(constants.ContextKeyDocument, view.NewDocument(lang))
		c.Header("Content-Language", lang.String())
		c.Request = c.Request.WithContext(logger.WithAttrs(c.Request.Context(), slog.String("lang", lang.String())))

		c.Next()
	}
}

// GetLanguage returns the language chosen by Language, or Arabic when the
// middleware did not run.
func GetLanguage(c *gin.Context) locale.Language {
	if lang, ok := c.Get(constants.ContextKeyLanguage); ok {
		if l, ok := lang.(locale.Language); ok {
			return l
		}
	}
	return locale.Arabic
}

// GetDocument returns the request's document attributes, creating them from
// the current language when absent.
func GetDocument(c *gin.Context) *view.Document {
	if v, ok := c.Get(constants.ContextKeyDocument); ok {
		if doc, ok := v.(*view.Document); ok {
			return doc
		}
	}
	doc := view.NewDocument(GetLanguage(c))
	c.Set(constants.ContextKeyDocument, doc)
	return doc
}
