package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"course-platform/pkg/validation"
)

// ErrorBody описывает стандартный формат ошибки API.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// Paginated описывает страницу списка.
type Paginated[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
}

// NewPaginated собирает страницу; nil-срез превращается в пустой массив в JSON.
func NewPaginated[T any](items []T, total int64, page, pageSize int) Paginated[T] {
	if items == nil {
		items = []T{}
	}
	return Paginated[T]{
		Items:      items,
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
	}
}

// Error отправляет JSON-ответ с ошибкой в едином формате и прерывает цепочку обработчиков.
func Error(c *gin.Context, status int, code, message string, details interface{}) {
	c.AbortWithStatusJSON(status, gin.H{
		"error": ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// InvalidRequest отвечает 400 с деталями ошибок валидации тела или параметров.
func InvalidRequest(c *gin.Context, err error) {
	var details interface{}
	if d := validation.Details(err); d != nil {
		details = d
	} else if err != nil {
		details = err.Error()
	}
	Error(c, http.StatusBadRequest, "invalid_request", "Некорректное тело запроса", details)
}

// Internal отвечает 500 без подробностей.
func Internal(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "internal_error", "Внутренняя ошибка сервера", nil)
}
