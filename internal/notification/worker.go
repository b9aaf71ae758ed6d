package notification

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	domain "course-platform/internal/domain/notification"
	repo "course-platform/internal/repository/interfaces"
	"course-platform/pkg/logger"
)

// TemplateSender рендерит шаблон и отправляет письмо.
type TemplateSender interface {
	SendTemplate(ctx context.Context, name, to, subject string, data any) error
}

// WorkerConfig — параметры доставки писем из очереди.
type WorkerConfig struct {
	PollInterval time.Duration
	BatchSize    int
	Concurrency  int
	MaxAttempts  int
	RetryBackoff time.Duration
	// LeaseTimeout задаёт, через сколько задачу, зависшую в processing, можно забрать повторно.
	LeaseTimeout time.Duration
}

// finishTimeout ограничивает запись итогового состояния задачи после остановки воркера.
const finishTimeout = 10 * time.Second

// Worker периодически забирает задачи, у которых наступило время, и отправляет письма.
type Worker struct {
	jobs   repo.EmailJobRepository
	sender TemplateSender
	cfg    WorkerConfig
	logger logger.Logger
	now    func() time.Time
}

// NewWorker создаёт воркер очереди писем.
func NewWorker(jobs repo.EmailJobRepository, sender TemplateSender, cfg WorkerConfig, log logger.Logger) *Worker {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 30 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	if cfg.LeaseTimeout <= 0 {
		cfg.LeaseTimeout = 10 * time.Minute
	}
	return &Worker{
		jobs:   jobs,
		sender: sender,
		cfg:    cfg,
		logger: log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Run опрашивает очередь до отмены ctx.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	for {
		if _, err := w.ProcessDue(ctx); err != nil && ctx.Err() == nil {
			w.logger.Error("email worker iteration failed", map[string]any{"err": err.Error()})
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// ProcessDue забирает одну пачку задач и обрабатывает её. Возвращает число забранных задач.
func (w *Worker) ProcessDue(ctx context.Context) (int, error) {
	jobs, err := w.jobs.ClaimDue(ctx, w.now(), w.cfg.BatchSize, w.cfg.LeaseTimeout)
	if err != nil {
		return 0, fmt.Errorf("failed to claim email jobs: %w", err)
	}
	if len(jobs) == 0 {
		return 0, nil
	}

	var g errgroup.Group
	g.SetLimit(w.cfg.Concurrency)
	for _, job := range jobs {
		job := job
		g.Go(func() error {
			return w.process(ctx, job)
		})
	}
	return len(jobs), g.Wait()
}

func (w *Worker) process(ctx context.Context, job *domain.EmailJob) error {
	sendErr := w.sender.SendTemplate(ctx, job.Kind, job.Recipient, job.Subject, job.Payload)

	// Итоговое состояние пишется и после отмены ctx, иначе задача останется в processing.
	finishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), finishTimeout)
	defer cancel()

	if sendErr == nil {
		if err := w.jobs.MarkSent(finishCtx, job.ID, w.now()); err != nil {
			return fmt.Errorf("failed to mark job %s sent: %w", job.ID, err)
		}
		return nil
	}

	fields := map[string]any{
		"job_id":    job.ID.String(),
		"kind":      job.Kind,
		"recipient": job.Recipient,
		"attempt":   job.Attempts,
		"err":       sendErr.Error(),
	}

	if ctx.Err() != nil {
		// Отправку прервала остановка: возвращаем задачу в очередь без ожидания.
		w.logger.Warn("email job interrupted by shutdown", fields)
		if err := w.jobs.Reschedule(finishCtx, job.ID, w.now(), sendErr.Error()); err != nil {
			return fmt.Errorf("failed to requeue job %s: %w", job.ID, err)
		}
		return nil
	}

	if job.Attempts >= w.cfg.MaxAttempts {
		w.logger.Error("email job failed permanently", fields)
		if err := w.jobs.MarkFailed(finishCtx, job.ID, sendErr.Error()); err != nil {
			return fmt.Errorf("failed to mark job %s failed: %w", job.ID, err)
		}
		return nil
	}

	w.logger.Warn("email job failed, retry scheduled", fields)
	if err := w.jobs.Reschedule(finishCtx, job.ID, w.now().Add(w.backoff(job.Attempts)), sendErr.Error()); err != nil {
		return fmt.Errorf("failed to reschedule job %s: %w", job.ID, err)
	}
	return nil
}

// backoff возвращает задержку перед попыткой attempt+1: RetryBackoff * 2^(attempt-1).
func (w *Worker) backoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	d := w.cfg.RetryBackoff
	for i := 1; i < attempt && d < 24*time.Hour; i++ {
		d *= 2
	}
	return d
}
