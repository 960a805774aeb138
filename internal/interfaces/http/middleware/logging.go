package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ilim-academy/website/internal/shared/constants"
	"github.com/ilim-academy/website/internal/shared/logger"
)

// Logger logs every request through gin's formatter hook.
func Logger(log logger.Interface) gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		args := []any{
			"method", param.Method,
			"path", param.Path,
			"status", param.StatusCode,
			"latency", param.Latency,
			"client_ip", param.ClientIP,
			"user_agent", param.Request.UserAgent(),
		}

		if param.ErrorMessage != "" {
			args = append(args, "error", param.ErrorMessage)
		}

		if param.StatusCode >= 500 {
			log.Errorw("HTTP request completed", args...)
		} else if param.StatusCode >= 400 {
			log.Warnw("HTTP request completed", args...)
		} else {
			log.Debugw("HTTP request completed", args...)
		}

		return ""
	})
}

func CustomLogger(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)

		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"query", c.Request.URL.RawQuery,
			"status", c.Writer.Status(),
			"latency", latency,
			"client_ip", c.ClientIP(),
			"body_size", c.Writer.Size(),
		}

		if lang, exists := c.Get(constants.ContextKeyLanguage); exists {
			args = append(args, "lang", lang)
		}

		if len(c.Errors) > 0 {
			args = append(args, "error", c.Errors.Last().Error())
		}

		// request_id comes from the context attributes set by RequestID.
		l := log.Ctx(c.Request.Context())

		status := c.Writer.Status()
		switch {
		case status >= 500:
			l.Errorw("HTTP request completed with server error", args...)
		case status >= 400:
			l.Warnw("HTTP request completed with client error", args...)
		case status >= 300:
			l.Debugw("HTTP request completed with redirect", args...)
		default:
			l.Debugw("HTTP request completed successfully", args...)
		}
	}
}
