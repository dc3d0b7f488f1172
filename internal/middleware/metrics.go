package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/fyyur/fyyur/internal/metrics"
)

// PageViews counts every handled request by method and route pattern.
func PageViews() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			metrics.PageViews.WithLabelValues(c.Request().Method, route).Inc()
			return next(c)
		}
	}
}
