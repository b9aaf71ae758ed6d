package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "course-platform/internal/domain/notification"
	repo "course-platform/internal/repository/interfaces"
)

// pgEmailJob — ORM-модель таблицы email_jobs (очередь отложенных писем).
type pgEmailJob struct {
	ID        string    `gorm:"column:id;type:uuid;primaryKey"`
	Kind      string    `gorm:"column:kind;type:varchar(64);not null"`
	Recipient string    `gorm:"column:recipient;type:varchar(255);not null"`
	Subject   string    `gorm:"column:subject;type:varchar(255);not null"`
	Payload   string    `gorm:"column:payload;type:text;not null"`
	DedupKey  string    `gorm:"column:dedup_key;type:varchar(255);not null;uniqueIndex:idx_email_jobs_dedup_key"`
	RunAt     time.Time `gorm:"column:run_at;not null;index:idx_email_jobs_due,priority:2"`
	Status    string    `gorm:"column:status;type:varchar(16);not null;index:idx_email_jobs_due,priority:1"`
	Attempts  int       `gorm:"column:attempts;not null"`
	LastError string    `gorm:"column:last_error;type:text"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (pgEmailJob) TableName() string {
	return "email_jobs"
}

func (m *pgEmailJob) toDomain() (*domain.EmailJob, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, err
	}
	payload := map[string]any{}
	if m.Payload != "" {
		if err := json.Unmarshal([]byte(m.Payload), &payload); err != nil {
			return nil, err
		}
	}
	return &domain.EmailJob{
		ID:        id,
		Kind:      m.Kind,
		Recipient: m.Recipient,
		Subject:   m.Subject,
		Payload:   payload,
		DedupKey:  m.DedupKey,
		RunAt:     m.RunAt.UTC(),
		Status:    domain.JobStatus(m.Status),
		Attempts:  m.Attempts,
		LastError: m.LastError,
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}, nil
}

func fromDomainEmailJob(j *domain.EmailJob) (*pgEmailJob, error) {
	payload, err := json.Marshal(j.Payload)
	if err != nil {
		return nil, err
	}
	return &pgEmailJob{
		ID:        j.ID.String(),
		Kind:      j.Kind,
		Recipient: j.Recipient,
		Subject:   j.Subject,
		Payload:   string(payload),
		DedupKey:  j.DedupKey,
		RunAt:     j.RunAt.UTC(),
		Status:    string(j.Status),
		Attempts:  j.Attempts,
		LastError: j.LastError,
		CreatedAt: j.CreatedAt.UTC(),
		UpdatedAt: j.UpdatedAt.UTC(),
	}, nil
}

// EmailJobRepository реализует repo.EmailJobRepository.
type EmailJobRepository struct {
	db *gorm.DB
}

var _ repo.EmailJobRepository = (*EmailJobRepository)(nil)

// NewEmailJobRepository создает репозиторий очереди писем.
func NewEmailJobRepository(db *gorm.DB) *EmailJobRepository {
	return &EmailJobRepository{db: db}
}

// Enqueue вставляет задачи, пропуская уже существующие по dedup_key.
func (r *EmailJobRepository) Enqueue(ctx context.Context, jobs []*domain.EmailJob) (int64, error) {
	if len(jobs) == 0 {
		return 0, nil
	}
	models := make([]*pgEmailJob, 0, len(jobs))
	for _, j := range jobs {
		m, err := fromDomainEmailJob(j)
		if err != nil {
			return 0, err
		}
		models = append(models, m)
	}

	result := conn(ctx, r.db).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "dedup_key"}}, DoNothing: true}).
		Create(&models)
	return result.RowsAffected, result.Error
}

// ClaimDue забирает готовые к отправке задачи и переводит их в processing.
// Вместе с ними забираются задачи, чья аренда (updated_at + lease) истекла.
// На Postgres строки блокируются с SKIP LOCKED, чтобы несколько воркеров не брали одни и те же задачи.
func (r *EmailJobRepository) ClaimDue(ctx context.Context, now time.Time, limit int, lease time.Duration) ([]*domain.EmailJob, error) {
	if limit <= 0 {
		return nil, nil
	}
	now = now.UTC()

	var claimed []pgEmailJob
	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		var q *gorm.DB
		if lease > 0 {
			q = tx.Where("(status = ? AND run_at <= ?) OR (status = ? AND updated_at <= ?)",
				string(domain.JobPending), now, string(domain.JobProcessing), now.Add(-lease))
		} else {
			q = tx.Where("status = ? AND run_at <= ?", string(domain.JobPending), now)
		}
		q = q.Order("run_at").
			Limit(limit)
		if tx.Dialector.Name() == "postgres" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"})
		}

		var due []pgEmailJob
		if err := q.Find(&due).Error; err != nil {
			return err
		}
		if len(due) == 0 {
			return nil
		}

		ids := make([]string, len(due))
		for i := range due {
			ids[i] = due[i].ID
		}
		err := tx.Model(&pgEmailJob{}).
			Where("id IN ?", ids).
			Updates(map[string]interface{}{
				"status":     string(domain.JobProcessing),
				"attempts":   gorm.Expr("attempts + 1"),
				"updated_at": now,
			}).Error
		if err != nil {
			return err
		}

		for i := range due {
			due[i].Status = string(domain.JobProcessing)
			due[i].Attempts++
			due[i].UpdatedAt = now
		}
		claimed = due
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mapAll(claimed, (*pgEmailJob).toDomain)
}

func (r *EmailJobRepository) setState(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	result := conn(ctx, r.db).
		Model(&pgEmailJob{}).
		Where("id = ?", id.String()).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// MarkSent отмечает задачу как отправленную.
func (r *EmailJobRepository) MarkSent(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.setState(ctx, id, map[string]interface{}{
		"status":     string(domain.JobSent),
		"last_error": "",
		"updated_at": at.UTC(),
	})
}

// Reschedule возвращает задачу в pending с новым временем запуска.
func (r *EmailJobRepository) Reschedule(ctx context.Context, id uuid.UUID, runAt time.Time, lastErr string) error {
	return r.setState(ctx, id, map[string]interface{}{
		"status":     string(domain.JobPending),
		"run_at":     runAt.UTC(),
		"last_error": lastErr,
		"updated_at": time.Now().UTC(),
	})
}

// MarkFailed отмечает задачу как окончательно неуспешную.
func (r *EmailJobRepository) MarkFailed(ctx context.Context, id uuid.UUID, lastErr string) error {
	return r.setState(ctx, id, map[string]interface{}{
		"status":     string(domain.JobFailed),
		"last_error": lastErr,
		"updated_at": time.Now().UTC(),
	})
}
