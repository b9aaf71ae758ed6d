package interfaces

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "course-platform/internal/domain/notification"
)

// EmailJobRepository определяет контракт очереди отложенных писем.
type EmailJobRepository interface {
	// Enqueue ставит задачи в очередь. Задачи с уже существующим DedupKey пропускаются.
	// Возвращает количество реально добавленных задач.
	Enqueue(ctx context.Context, jobs []*domain.EmailJob) (int64, error)

	// ClaimDue атомарно забирает до limit задач, у которых наступил RunAt,
	// переводит их в processing и увеличивает счётчик попыток.
	// Задачи, застрявшие в processing дольше lease (упавший или остановленный воркер),
	// забираются повторно. lease <= 0 отключает повторный захват.
	ClaimDue(ctx context.Context, now time.Time, limit int, lease time.Duration) ([]*domain.EmailJob, error)

	// MarkSent отмечает задачу как успешно выполненную.
	MarkSent(ctx context.Context, id uuid.UUID, at time.Time) error

	// Reschedule возвращает задачу в очередь с новым временем запуска.
	Reschedule(ctx context.Context, id uuid.UUID, runAt time.Time, lastErr string) error

	// MarkFailed отмечает задачу как окончательно неуспешную.
	MarkFailed(ctx context.Context, id uuid.UUID, lastErr string) error
}
