package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"course-platform/internal/domain/enrollment"
	repo "course-platform/internal/repository/interfaces"
)

// RegistrationRepository реализует repo.RegistrationRepository в памяти.
type RegistrationRepository struct {
	s *Store
}

var _ repo.RegistrationRepository = (*RegistrationRepository)(nil)

func (r *RegistrationRepository) Create(_ context.Context, reg *enrollment.Registration) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.registrations {
		if other.UserID == reg.UserID && other.CourseID == reg.CourseID {
			return repo.ErrAlreadyExists
		}
	}
	r.s.registrations[reg.ID] = *reg
	return nil
}

func (r *RegistrationRepository) Get(_ context.Context, userID, courseID uuid.UUID) (*enrollment.Registration, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, reg := range r.s.registrations {
		if reg.UserID == userID && reg.CourseID == courseID {
			cp := reg
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *RegistrationRepository) Delete(_ context.Context, userID, courseID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, reg := range r.s.registrations {
		if reg.UserID == userID && reg.CourseID == courseID {
			delete(r.s.registrations, id)
			return nil
		}
	}
	return repo.ErrNotFound
}

func (r *RegistrationRepository) list(match func(enrollment.Registration) bool, newestFirst bool) []*enrollment.Registration {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*enrollment.Registration
	for _, reg := range r.s.registrations {
		if match(reg) {
			cp := reg
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if newestFirst {
			return out[i].RegisteredAt.After(out[j].RegisteredAt)
		}
		return out[i].RegisteredAt.Before(out[j].RegisteredAt)
	})
	return out
}

func (r *RegistrationRepository) ListByCourse(_ context.Context, courseID uuid.UUID) ([]*enrollment.Registration, error) {
	return r.list(func(reg enrollment.Registration) bool { return reg.CourseID == courseID }, false), nil
}

func (r *RegistrationRepository) ListByUser(_ context.Context, userID uuid.UUID, p repo.PageRequest) ([]*enrollment.Registration, int64, error) {
	all := r.list(func(reg enrollment.Registration) bool { return reg.UserID == userID }, true)
	return page(all, p), int64(len(all)), nil
}

// FeedbackRepository реализует repo.FeedbackRepository в памяти.
type FeedbackRepository struct {
	s *Store
}

var _ repo.FeedbackRepository = (*FeedbackRepository)(nil)

func (r *FeedbackRepository) Create(_ context.Context, f *enrollment.Feedback) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.feedbacks {
		if other.UserID == f.UserID && other.CourseID == f.CourseID {
			return repo.ErrAlreadyExists
		}
	}
	r.s.feedbacks[f.ID] = *f
	return nil
}

func (r *FeedbackRepository) GetByID(_ context.Context, id uuid.UUID) (*enrollment.Feedback, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f, ok := r.s.feedbacks[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &f, nil
}

func (r *FeedbackRepository) GetByUserAndCourse(_ context.Context, userID, courseID uuid.UUID) (*enrollment.Feedback, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, f := range r.s.feedbacks {
		if f.UserID == userID && f.CourseID == courseID {
			cp := f
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *FeedbackRepository) list(match func(enrollment.Feedback) bool) []*enrollment.Feedback {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*enrollment.Feedback
	for _, f := range r.s.feedbacks {
		if match(f) {
			cp := f
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *FeedbackRepository) ListByUser(_ context.Context, userID uuid.UUID) ([]*enrollment.Feedback, error) {
	return r.list(func(f enrollment.Feedback) bool { return f.UserID == userID }), nil
}

func (r *FeedbackRepository) ListByCourse(_ context.Context, courseID uuid.UUID) ([]*enrollment.Feedback, error) {
	return r.list(func(f enrollment.Feedback) bool { return f.CourseID == courseID }), nil
}

func (r *FeedbackRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.feedbacks[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.s.feedbacks, id)
	return nil
}

// BanRepository реализует repo.BanRepository в памяти.
type BanRepository struct {
	s *Store
}

var _ repo.BanRepository = (*BanRepository)(nil)

func (r *BanRepository) Create(_ context.Context, b *enrollment.Ban) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.bans {
		if other.UserID == b.UserID && other.CourseID == b.CourseID {
			return repo.ErrAlreadyExists
		}
	}
	r.s.bans[b.ID] = *b
	return nil
}

func (r *BanRepository) GetByID(_ context.Context, id uuid.UUID) (*enrollment.Ban, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bans[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &b, nil
}

func (r *BanRepository) Get(_ context.Context, userID, courseID uuid.UUID) (*enrollment.Ban, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.bans {
		if b.UserID == userID && b.CourseID == courseID {
			cp := b
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *BanRepository) list(match func(enrollment.Ban) bool) []*enrollment.Ban {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*enrollment.Ban
	for _, b := range r.s.bans {
		if match(b) {
			cp := b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BannedAt.After(out[j].BannedAt) })
	return out
}

func (r *BanRepository) List(_ context.Context) ([]*enrollment.Ban, error) {
	return r.list(func(enrollment.Ban) bool { return true }), nil
}

func (r *BanRepository) ListByCourse(_ context.Context, courseID uuid.UUID) ([]*enrollment.Ban, error) {
	return r.list(func(b enrollment.Ban) bool { return b.CourseID == courseID }), nil
}

func (r *BanRepository) ListByUser(_ context.Context, userID uuid.UUID, p repo.PageRequest) ([]*enrollment.Ban, int64, error) {
	all := r.list(func(b enrollment.Ban) bool { return b.UserID == userID })
	return page(all, p), int64(len(all)), nil
}

func (r *BanRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.bans[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.s.bans, id)
	return nil
}
