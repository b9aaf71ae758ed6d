package interfaces

import "context"

// Transactor выполняет функцию в рамках одной транзакции хранилища.
// Репозитории, вызванные с переданным в fn контекстом, работают внутри этой транзакции.
// Ошибка из fn откатывает транзакцию целиком.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// PageRequest описывает запрос страницы (нумерация с 1).
type PageRequest struct {
	Page     int
	PageSize int
}

// Значения пагинации по умолчанию.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Normalize приводит параметры страницы к допустимым значениям.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

// Offset возвращает смещение первой записи страницы.
func (p PageRequest) Offset() int {
	p = p.Normalize()
	return (p.Page - 1) * p.PageSize
}
