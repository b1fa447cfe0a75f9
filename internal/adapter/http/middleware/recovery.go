package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"

	"github.com/wanderplan/flight-engine/internal/adapter/http/response"
	"github.com/wanderplan/flight-engine/internal/infrastructure/logger"
)

// Recover returns middleware that turns handler panics into 500 responses.
// The panic is logged with its stack trace and the server keeps serving.
func Recover(log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				if r := recover(); r != nil {
					panicMsg := fmt.Sprintf("%v", r)
					if err, ok := r.(error); ok {
						panicMsg = err.Error()
					}

					log.Error().
						Str("request_id", GetRequestID(c)).
						Str("panic", panicMsg).
						Str("stack", string(debug.Stack())).
						Msg("panic recovered")

					if !c.Response().Committed {
						// Nothing useful to do with a write failure here.
						_ = c.JSON(http.StatusInternalServerError, &response.ErrorDetail{
							Code:    response.CodeInternalError,
							Message: response.MsgInternalError,
						})
					}
				}
			}()

			return next(c)
		}
	}
}
