package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	repo "course-platform/internal/repository/interfaces"
)

type txKey struct{}

// Transactor реализует repo.Transactor поверх gorm.
// Транзакция передаётся репозиториям через контекст.
type Transactor struct {
	db *gorm.DB
}

var _ repo.Transactor = (*Transactor)(nil)

// NewTransactor создаёт Transactor.
func NewTransactor(db *gorm.DB) *Transactor {
	return &Transactor{db: db}
}

// WithinTransaction выполняет fn в транзакции. Вложенный вызов переиспользует уже открытую транзакцию.
func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// conn возвращает транзакцию из контекста или обычное подключение.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// lockRow берёт блокировку строки (SELECT ... FOR UPDATE) до конца транзакции из ctx.
// SQLite блокировок строк не поддерживает, там проверяется только существование.
func lockRow(ctx context.Context, db *gorm.DB, model interface{}, id uuid.UUID) error {
	q := conn(ctx, db).Model(model).Where("id = ?", id.String()).Limit(1)
	if db.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var ids []string
	if err := q.Pluck("id", &ids).Error; err != nil {
		return err
	}
	if len(ids) == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func uuidStrings[T interface{ String() string }](ids []T) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
