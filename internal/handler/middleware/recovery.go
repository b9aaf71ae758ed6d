package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"course-platform/internal/handler/response"
	"course-platform/pkg/logger"
)

// Recovery перехватывает панику в обработчике, логирует её со стеком и отвечает 500.
// В режиме отладки текст паники попадает в details ответа.
func Recovery(log logger.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered interface{}) {
		log.Error("panic recovered", map[string]any{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"ip":     c.ClientIP(),
			"panic":  fmt.Sprintf("%v", recovered),
			"stack":  string(debug.Stack()),
		})

		var details interface{}
		if gin.Mode() == gin.DebugMode {
			details = fmt.Sprintf("%v", recovered)
		}
		response.Error(c, http.StatusInternalServerError, "internal_error", "Внутренняя ошибка сервера", details)
	})
}
