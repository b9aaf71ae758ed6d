package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgconn"
	pgxconn "github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	repo "course-platform/internal/repository/interfaces"
)

// notFound переводит gorm.ErrRecordNotFound в repo.ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repo.ErrNotFound
	}
	return err
}

// duplicate переводит нарушение уникального ограничения в repo.ErrAlreadyExists.
func duplicate(err error) error {
	if isUniqueViolation(err) {
		return repo.ErrAlreadyExists
	}
	return err
}

// isUniqueViolation проверяет, является ли ошибка нарушением уникального ограничения PostgreSQL.
// Ориентируется на код ошибки 23505 (unique_violation) и, при наличии, имя индекса/constraint.
func isUniqueViolation(err error, constraintNames ...string) bool {
	if err == nil {
		return false
	}

	// Драйвер gorm/postgres работает через pgx v5
	var pgxErr *pgxconn.PgError
	if errors.As(err, &pgxErr) {
		return matchConstraint(pgxErr.Code, pgxErr.ConstraintName, constraintNames)
	}

	// Ошибки старого pgconn (lib/pq-совместимые сценарии, миграции)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return matchConstraint(pgErr.Code, pgErr.ConstraintName, constraintNames)
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	// Fallback для нестандартных ошибок: ищем 23505 и имя индекса/constraint в сообщении
	errStr := err.Error()
	if !strings.Contains(errStr, "23505") && !strings.Contains(errStr, "UNIQUE constraint failed") {
		return false
	}
	if len(constraintNames) == 0 {
		return true
	}
	lower := strings.ToLower(errStr)
	for _, name := range constraintNames {
		if name != "" && strings.Contains(lower, strings.ToLower(name)) {
			return true
		}
	}
	return false
}

func matchConstraint(code, constraint string, names []string) bool {
	if code != "23505" { // unique_violation
		return false
	}
	// Если конкретные имена не заданы — достаточно кода ошибки
	if len(names) == 0 {
		return true
	}
	for _, name := range names {
		if name != "" && strings.EqualFold(constraint, name) {
			return true
		}
	}
	return false
}
