package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"course-platform/internal/domain/user"
	repo "course-platform/internal/repository/interfaces"
)

// UserRepository реализует repo.UserRepository в памяти.
type UserRepository struct {
	s *Store
}

var _ repo.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) conflict(u *user.User) error {
	for _, other := range r.s.users {
		if other.ID == u.ID || other.DeletedAt != nil {
			continue
		}
		if strings.EqualFold(other.Email, u.Email) {
			return repo.ErrEmailExists
		}
		if other.Username == u.Username {
			return repo.ErrUsernameExists
		}
	}
	return nil
}

func (r *UserRepository) Create(_ context.Context, u *user.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.conflict(u); err != nil {
		return err
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepository) find(match func(user.User) bool) (*user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.DeletedAt == nil && match(u) {
			cp := u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *UserRepository) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	return r.find(func(u user.User) bool { return u.ID == id })
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*user.User, error) {
	return r.find(func(u user.User) bool { return strings.EqualFold(u.Email, email) })
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (*user.User, error) {
	return r.find(func(u user.User) bool { return u.Username == username })
}

func (r *UserRepository) active() []*user.User {
	out := make([]*user.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		if u.DeletedAt == nil {
			cp := u
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (r *UserRepository) ListByIDs(_ context.Context, ids []uuid.UUID) ([]*user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	want := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []*user.User
	for _, u := range r.active() {
		if want[u.ID] {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *UserRepository) List(_ context.Context, search string, p repo.PageRequest) ([]*user.User, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	search = strings.ToLower(strings.TrimSpace(search))
	var matched []*user.User
	all := r.active()
	for i := len(all) - 1; i >= 0; i-- {
		u := all[i]
		if search == "" || strings.Contains(strings.ToLower(u.Email), search) || strings.Contains(strings.ToLower(u.Username), search) {
			matched = append(matched, u)
		}
	}
	return page(matched, p), int64(len(matched)), nil
}

func (r *UserRepository) Update(_ context.Context, u *user.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.users[u.ID]
	if !ok || cur.DeletedAt != nil {
		return repo.ErrNotFound
	}
	if err := r.conflict(u); err != nil {
		return err
	}
	updated := *u
	updated.CreatedAt = cur.CreatedAt
	r.s.users[u.ID] = updated
	return nil
}

func (r *UserRepository) SoftDelete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok || u.DeletedAt != nil {
		return repo.ErrNotFound
	}
	now := nowUTC()
	u.MarkDeleted(now)
	r.s.users[id] = u
	return nil
}

// EmailVerificationRepository реализует repo.EmailVerificationRepository в памяти.
type EmailVerificationRepository struct {
	s *Store
}

var _ repo.EmailVerificationRepository = (*EmailVerificationRepository)(nil)

func (r *EmailVerificationRepository) Create(_ context.Context, v *user.EmailVerification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.verifSeq++
	v.ID = r.s.verifSeq
	r.s.verifications[v.ID] = *v
	return nil
}

func (r *EmailVerificationRepository) GetByID(_ context.Context, id int64) (*user.EmailVerification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.verifications[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &v, nil
}

func (r *EmailVerificationRepository) GetLatestByUserID(_ context.Context, userID uuid.UUID) (*user.EmailVerification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var latest *user.EmailVerification
	for _, v := range r.s.verifications {
		if v.UserID != userID {
			continue
		}
		if latest == nil || v.ID > latest.ID {
			cp := v
			latest = &cp
		}
	}
	if latest == nil {
		return nil, repo.ErrNotFound
	}
	return latest, nil
}

func (r *EmailVerificationRepository) IncrementAttempts(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.verifications[id]
	if !ok {
		return repo.ErrNotFound
	}
	v.Attempts++
	r.s.verifications[id] = v
	return nil
}

func (r *EmailVerificationRepository) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, v := range r.s.verifications {
		if v.UserID == userID {
			delete(r.s.verifications, id)
		}
	}
	return nil
}
