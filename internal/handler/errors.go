package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// NewHTTPErrorHandler returns the Echo error handler for the site.
// Everything that escapes a handler becomes either the 404 or the 500
// page; nothing is fatal to the process.  Server-side failures are
// logged for operators with the request path attached.
func NewHTTPErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		code := http.StatusInternalServerError
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
		}
		if code == http.StatusNotFound {
			if rerr := c.Render(http.StatusNotFound, "errors/404.html", echo.Map{}); rerr != nil {
				_ = c.String(http.StatusNotFound, "not found")
			}
			return
		}
		if code < http.StatusInternalServerError {
			// Other client errors (bad form encoding, method not
			// allowed) keep their status with a plain message.
			msg := http.StatusText(code)
			if he != nil {
				if s, ok := he.Message.(string); ok {
					msg = s
				}
			}
			_ = c.String(code, msg)
			return
		}
		log.Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Request().URL.Path),
			zap.Int("status", code),
			zap.Error(err))
		if rerr := c.Render(http.StatusInternalServerError, "errors/500.html", echo.Map{}); rerr != nil {
			_ = c.String(http.StatusInternalServerError, "server error")
		}
	}
}
