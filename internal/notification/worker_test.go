package notification

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	domain "course-platform/internal/domain/notification"
	"course-platform/internal/repository/memory"
	"course-platform/pkg/logger"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []string
	fail map[string]bool
}

func (s *fakeSender) SendTemplate(_ context.Context, name, to, subject string, data any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail[to] {
		return errors.New("mailbox unavailable")
	}
	s.sent = append(s.sent, to)
	return nil
}

func newWorker(repos *memory.Repos, sender TemplateSender, now time.Time) *Worker {
	w := NewWorker(repos.Jobs, sender, WorkerConfig{
		BatchSize:    10,
		Concurrency:  2,
		MaxAttempts:  2,
		RetryBackoff: time.Minute,
	}, logger.Nop())
	w.now = func() time.Time { return now }
	return w
}

func enqueue(t *testing.T, repos *memory.Repos, email string, runAt time.Time) {
	t.Helper()
	job := domain.NewCourseNotificationJob(uuid.New(), uuid.New(), email, "Go", 3, runAt, runAt)
	_, err := repos.Jobs.Enqueue(context.Background(), []*domain.EmailJob{job})
	require.NoError(t, err)
}

func statusOf(repos *memory.Repos, email string) domain.EmailJob {
	for _, j := range repos.Jobs.All() {
		if j.Recipient == email {
			return j
		}
	}
	return domain.EmailJob{}
}

func TestProcessDue_SendsOnlyDueJobs(t *testing.T) {
	repos := memory.New()
	now := time.Date(2026, 3, 10, 17, 48, 0, 0, time.UTC)
	enqueue(t, repos, "due@example.com", now.Add(-time.Minute))
	enqueue(t, repos, "later@example.com", now.Add(time.Hour))

	sender := &fakeSender{}
	n, err := newWorker(repos, sender, now).ProcessDue(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, []string{"due@example.com"}, sender.sent)

	require.Equal(t, domain.JobSent, statusOf(repos, "due@example.com").Status)
	require.Equal(t, domain.JobPending, statusOf(repos, "later@example.com").Status)
}

func TestProcessDue_RetriesThenFails(t *testing.T) {
	repos := memory.New()
	now := time.Date(2026, 3, 10, 17, 48, 0, 0, time.UTC)
	enqueue(t, repos, "broken@example.com", now)

	sender := &fakeSender{fail: map[string]bool{"broken@example.com": true}}
	w := newWorker(repos, sender, now)

	_, err := w.ProcessDue(context.Background())
	require.NoError(t, err)
	job := statusOf(repos, "broken@example.com")
	require.Equal(t, domain.JobPending, job.Status)
	require.Equal(t, 1, job.Attempts)
	require.Equal(t, now.Add(time.Minute), job.RunAt)
	require.Equal(t, "mailbox unavailable", job.LastError)

	// До наступления нового времени задача не забирается.
	n, err := w.ProcessDue(context.Background())
	require.NoError(t, err)
	require.Zero(t, n)

	w.now = func() time.Time { return now.Add(2 * time.Minute) }
	_, err = w.ProcessDue(context.Background())
	require.NoError(t, err)
	job = statusOf(repos, "broken@example.com")
	require.Equal(t, domain.JobFailed, job.Status)
	require.Equal(t, 2, job.Attempts)
}

// cancellingSender имитирует остановку процесса во время отправки.
type cancellingSender struct {
	cancel context.CancelFunc
}

func (s *cancellingSender) SendTemplate(ctx context.Context, _, _, _ string, _ any) error {
	s.cancel()
	<-ctx.Done()
	return ctx.Err()
}

func TestProcessDue_ShutdownDuringSendRequeuesJob(t *testing.T) {
	repos := memory.New()
	now := time.Date(2026, 3, 10, 17, 48, 0, 0, time.UTC)
	enqueue(t, repos, "shutdown@example.com", now)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := newWorker(repos, &cancellingSender{cancel: cancel}, now)
	_, err := w.ProcessDue(ctx)
	require.NoError(t, err)

	job := statusOf(repos, "shutdown@example.com")
	require.Equal(t, domain.JobPending, job.Status)
	require.Equal(t, now, job.RunAt)

	// После перезапуска задача отправляется.
	sender := &fakeSender{}
	w = newWorker(repos, sender, now.Add(time.Minute))
	_, err = w.ProcessDue(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"shutdown@example.com"}, sender.sent)
	require.Equal(t, domain.JobSent, statusOf(repos, "shutdown@example.com").Status)
}

func TestProcessDue_ReclaimsStuckJobAfterLease(t *testing.T) {
	repos := memory.New()
	now := time.Date(2026, 3, 10, 17, 48, 0, 0, time.UTC)
	enqueue(t, repos, "stuck@example.com", now)

	// Задачу забрал воркер, который упал до записи результата.
	claimed, err := repos.Jobs.ClaimDue(context.Background(), now, 10, 10*time.Minute)
	require.NoError(t, err)
	require.Len(t, claimed, 1)

	sender := &fakeSender{}
	n, err := newWorker(repos, sender, now.Add(time.Minute)).ProcessDue(context.Background())
	require.NoError(t, err)
	require.Zero(t, n)

	n, err = newWorker(repos, sender, now.Add(time.Hour)).ProcessDue(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, []string{"stuck@example.com"}, sender.sent)
	require.Equal(t, domain.JobSent, statusOf(repos, "stuck@example.com").Status)
}

func TestBackoff(t *testing.T) {
	w := NewWorker(nil, nil, WorkerConfig{RetryBackoff: time.Minute}, logger.Nop())
	require.Equal(t, time.Minute, w.backoff(1))
	require.Equal(t, 2*time.Minute, w.backoff(2))
	require.Equal(t, 4*time.Minute, w.backoff(3))
}

func TestNewCron_InvalidSpec(t *testing.T) {
	_, err := NewCron("not a spec", &Scheduler{}, logger.Nop())
	require.Error(t, err)

	c, err := NewCron("@daily", &Scheduler{}, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()
	cancel()
	require.NoError(t, <-done)
}
