package request

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"course-platform/internal/handler/response"
	repo "course-platform/internal/repository/interfaces"
)

// UUIDParam разбирает path-параметр name как UUID.
// При ошибке отвечает 400 и возвращает false.
func UUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid_id", "Некорректный идентификатор", map[string]string{name: c.Param(name)})
		return uuid.Nil, false
	}
	return id, true
}

// ParseUUIDs разбирает список строковых идентификаторов.
func ParseUUIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Page читает параметры пагинации page и pageSize из query-строки.
// Некорректные значения заменяются значениями по умолчанию.
func Page(c *gin.Context) repo.PageRequest {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("pageSize"))
	return repo.PageRequest{Page: page, PageSize: size}.Normalize()
}
