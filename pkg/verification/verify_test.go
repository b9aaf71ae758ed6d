package verification

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	domain "course-platform/internal/domain/user"
	repo "course-platform/internal/repository/interfaces"
	"course-platform/pkg/password"
)

type fakeVerifs struct {
	items map[int64]*domain.EmailVerification
}

func (f *fakeVerifs) Create(ctx context.Context, v *domain.EmailVerification) error {
	f.items[v.ID] = v
	return nil
}

func (f *fakeVerifs) GetByID(ctx context.Context, id int64) (*domain.EmailVerification, error) {
	v, ok := f.items[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (f *fakeVerifs) GetLatestByUserID(ctx context.Context, userID uuid.UUID) (*domain.EmailVerification, error) {
	return nil, repo.ErrNotFound
}

func (f *fakeVerifs) IncrementAttempts(ctx context.Context, id int64) error {
	f.items[id].Attempts++
	return nil
}

func (f *fakeVerifs) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return nil
}

func newVerification(t *testing.T, token string, maxAttempts int) (*domain.EmailVerification, *fakeVerifs) {
	t.Helper()
	hash, err := password.Hash(token)
	require.NoError(t, err)
	v := &domain.EmailVerification{
		ID:          1,
		UserID:      uuid.New(),
		TokenHash:   hash,
		ExpiresAt:   time.Now().Add(time.Hour),
		MaxAttempts: maxAttempts,
	}
	store := &fakeVerifs{items: map[int64]*domain.EmailVerification{1: v}}
	return v, store
}

func TestGenerateToken(t *testing.T) {
	a, err := GenerateToken(DefaultTokenBytes)
	require.NoError(t, err)
	require.Len(t, a, DefaultTokenBytes*2)

	b, err := GenerateToken(DefaultTokenBytes)
	require.NoError(t, err)
	require.NotEqual(t, a, b)

	_, err = GenerateToken(0)
	require.Error(t, err)
}

func TestVerifyToken_Success(t *testing.T) {
	v, store := newVerification(t, "secret-token", 3)

	res, err := VerifyToken(context.Background(), v, "secret-token", time.Now(), store)
	require.NoError(t, err)
	require.Equal(t, Success, res)
	require.Equal(t, 0, store.items[1].Attempts)
}

func TestVerifyToken_InvalidThenExceeded(t *testing.T) {
	v, store := newVerification(t, "secret-token", 2)
	ctx := context.Background()

	res, err := VerifyToken(ctx, v, "wrong", time.Now(), store)
	require.NoError(t, err)
	require.Equal(t, TokenInvalid, res)

	res, err = VerifyToken(ctx, v, "wrong", time.Now(), store)
	require.NoError(t, err)
	require.Equal(t, AttemptsExceeded, res)
	require.Equal(t, 2, store.items[1].Attempts)
}

func TestVerifyToken_Expired(t *testing.T) {
	v, store := newVerification(t, "secret-token", 3)

	res, err := VerifyToken(context.Background(), v, "secret-token", v.ExpiresAt.Add(time.Second), store)
	require.NoError(t, err)
	require.Equal(t, Expired, res)
	require.Equal(t, "expired", res.String())
}
