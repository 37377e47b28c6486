package middleware

import (
	"context"

	"github.com/Eursukkul/menulink/pkg/logger"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

const (
	HeaderClientID  = "X-Client-ID"
	HeaderRequestID = echo.HeaderXRequestID
)

// RequestContext stores the request id and the caller's client id in the
// request context so service logs can be correlated.
func RequestContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			requestID := req.Header.Get(HeaderRequestID)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			c.Response().Header().Set(HeaderRequestID, requestID)

			ctx := context.WithValue(req.Context(), logger.RequestIDKey, requestID)
			if clientID := req.Header.Get(HeaderClientID); clientID != "" {
				ctx = context.WithValue(ctx, logger.ClientIDKey, clientID)
			}
			c.SetRequest(req.WithContext(ctx))
			return next(c)
		}
	}
}

// ClientID returns the X-Client-ID header of the request, if any.
func ClientID(c echo.Context) string {
	return c.Request().Header.Get(HeaderClientID)
}

// RequestLogger logs one line per request through zap.
func RequestLogger() echo.MiddlewareFunc {
	return echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("remote_ip", v.RemoteIP),
			}
			log := logger.Ctx(c.Request().Context())
			if v.Error != nil {
				log.Warn("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			log.Info("request", fields...)
			return nil
		},
	})
}
