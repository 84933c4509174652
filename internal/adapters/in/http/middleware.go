package http

import (
	"net/http"
	"strconv"
	"time"

	"fulfillment/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	"go.uber.org/zap"
)

// RateLimit throttles requests per client IP. rate uses the limiter format,
// e.g. "100-M".
func RateLimit(rate string, log *zap.Logger) (echo.MiddlewareFunc, error) {
	r, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, err
	}
	instance := limiter.New(memory.NewStore(), r)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			lctx, err := instance.Get(c.Request().Context(), c.RealIP())
			if err != nil {
				return err
			}

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.FormatInt(lctx.Limit, 10))
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(lctx.Remaining, 10))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(lctx.Reset, 10))

			if lctx.Reached {
				metrics.RateLimitExceededTotal.WithLabelValues(c.Request().Method, c.Path()).Inc()
				log.Warn("rate limit exceeded",
					zap.String("method", c.Request().Method),
					zap.String("route", c.Path()),
					zap.String("remote_addr", c.RealIP()),
				)
				return c.JSON(http.StatusTooManyRequests, ErrorResponse{Code: http.StatusTooManyRequests, Message: "rate limit exceeded"})
			}
			return next(c)
		}
	}, nil
}

// RequestMetrics records latency and status per route and logs each request.
func RequestMetrics(log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			duration := time.Since(start)
			status := strconv.Itoa(c.Response().Status)
			route := c.Path()

			metrics.HTTPRequestDuration.WithLabelValues(c.Request().Method, route).Observe(duration.Seconds())
			metrics.HTTPRequestsTotal.WithLabelValues(c.Request().Method, route, status).Inc()

			log.Info("HTTP request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.String("route", route),
				zap.String("status", status),
				zap.Duration("duration", duration),
			)
			return nil
		}
	}
}
