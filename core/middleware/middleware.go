package middleware

import (
	"net/http"

	"game-scheduler/core/constants"
	"game-scheduler/core/logger"
	"game-scheduler/core/utils"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// RequestID tags every request with a short id and stores it on the context.
func RequestID() echo.MiddlewareFunc {
	return echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: utils.GenerateID,
		RequestIDHandler: func(c echo.Context, id string) {
			c.Set(constants.ContextRequestID, id)
		},
	})
}

// RequestLogger writes one structured line per request.
func RequestLogger() echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			args := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency_ms", v.Latency.Milliseconds(),
				"request_id", v.RequestID,
			}
			switch {
			case v.Status >= http.StatusInternalServerError:
				logger.Error("HTTP", append(args, "error", v.Error)...)
			case v.Status >= http.StatusBadRequest:
				logger.Warn("HTTP", args...)
			default:
				logger.Info("HTTP", args...)
			}
			return nil
		},
	})
}

func Recover() echo.MiddlewareFunc {
	return echomw.RecoverWithConfig(echomw.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("HTTP:Recover", err, "stack", string(stack))
			return err
		},
	})
}
