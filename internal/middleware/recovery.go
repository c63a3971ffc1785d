package middleware

import (
	"fmt"
	"net/http"
	"runtime"

	"triage_queue/internal/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				var stack [4096]byte
				n := runtime.Stack(stack[:], false)

				log.Error().
					Str("path", c.Request.URL.Path).
					Str("panic", fmt.Sprintf("%v", r)).
					Str("stack", string(stack[:n])).
					Msg("panic recovered")

				c.AbortWithStatusJSON(http.StatusInternalServerError, response.ErrorResponse{
					Code:    "INTERNAL_ERROR",
					Message: "Внутренняя ошибка сервера",
				})
			}
		}()
		c.Next()
	}
}
