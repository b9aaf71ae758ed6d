package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"course-platform/internal/domain/notification"
	repo "course-platform/internal/repository/interfaces"
)

// EmailJobRepository реализует repo.EmailJobRepository в памяти.
type EmailJobRepository struct {
	s *Store
}

var _ repo.EmailJobRepository = (*EmailJobRepository)(nil)

func (r *EmailJobRepository) Enqueue(_ context.Context, jobs []*notification.EmailJob) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	keys := make(map[string]bool, len(r.s.jobs))
	for _, j := range r.s.jobs {
		keys[j.DedupKey] = true
	}
	var n int64
	for _, j := range jobs {
		if keys[j.DedupKey] {
			continue
		}
		keys[j.DedupKey] = true
		r.s.jobs[j.ID] = *j
		n++
	}
	return n, nil
}

func (r *EmailJobRepository) ClaimDue(_ context.Context, now time.Time, limit int, lease time.Duration) ([]*notification.EmailJob, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var due []notification.EmailJob
	for _, j := range r.s.jobs {
		pending := j.Status == notification.JobPending && !j.RunAt.After(now)
		expired := lease > 0 && j.Status == notification.JobProcessing && !j.UpdatedAt.After(now.Add(-lease))
		if pending || expired {
			due = append(due, j)
		}
	}
	sort.Slice(due, func(i, k int) bool { return due[i].RunAt.Before(due[k].RunAt) })
	if len(due) > limit {
		due = due[:limit]
	}
	out := make([]*notification.EmailJob, 0, len(due))
	for _, j := range due {
		j.Status = notification.JobProcessing
		j.Attempts++
		j.UpdatedAt = now
		r.s.jobs[j.ID] = j
		cp := j
		out = append(out, &cp)
	}
	return out, nil
}

func (r *EmailJobRepository) update(id uuid.UUID, fn func(*notification.EmailJob)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	j, ok := r.s.jobs[id]
	if !ok {
		return repo.ErrNotFound
	}
	fn(&j)
	r.s.jobs[id] = j
	return nil
}

func (r *EmailJobRepository) MarkSent(_ context.Context, id uuid.UUID, at time.Time) error {
	return r.update(id, func(j *notification.EmailJob) {
		j.Status = notification.JobSent
		j.LastError = ""
		j.UpdatedAt = at
	})
}

func (r *EmailJobRepository) Reschedule(_ context.Context, id uuid.UUID, runAt time.Time, lastErr string) error {
	return r.update(id, func(j *notification.EmailJob) {
		j.Status = notification.JobPending
		j.RunAt = runAt
		j.LastError = lastErr
		j.UpdatedAt = time.Now().UTC()
	})
}

func (r *EmailJobRepository) MarkFailed(_ context.Context, id uuid.UUID, lastErr string) error {
	return r.update(id, func(j *notification.EmailJob) {
		j.Status = notification.JobFailed
		j.LastError = lastErr
		j.UpdatedAt = time.Now().UTC()
	})
}

// All возвращает все задачи, отсортированные по времени запуска и получателю.
func (r *EmailJobRepository) All() []notification.EmailJob {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]notification.EmailJob, 0, len(r.s.jobs))
	for _, j := range r.s.jobs {
		out = append(out, j)
	}
	sort.Slice(out, func(i, k int) bool {
		if !out[i].RunAt.Equal(out[k].RunAt) {
			return out[i].RunAt.Before(out[k].RunAt)
		}
		return out[i].Recipient < out[k].Recipient
	})
	return out
}
