package auth_test

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"course-platform/internal/config"
	domain "course-platform/internal/domain/user"
	repo "course-platform/internal/repository/interfaces"
	"course-platform/internal/repository/memory"
	authuc "course-platform/internal/usecase/auth"
	jwtsvc "course-platform/pkg/jwt"
	"course-platform/pkg/logger"
)

// ==== Fakes ====

type sentEmail struct {
	to, username, link string
	resend             bool
}

type fakeEmailSender struct {
	sent []sentEmail
	err  error
}

func (s *fakeEmailSender) SendVerificationEmail(_ context.Context, to, username, link string, _ time.Duration, resend bool) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sentEmail{to: to, username: username, link: link, resend: resend})
	return nil
}

func (s *fakeEmailSender) lastToken(t *testing.T) (uuid.UUID, string) {
	t.Helper()
	require.NotEmpty(t, s.sent)
	u, err := url.Parse(s.sent[len(s.sent)-1].link)
	require.NoError(t, err)
	require.Equal(t, "/api/v1/users/verify-email", u.Path)
	id, err := uuid.Parse(u.Query().Get("userId"))
	require.NoError(t, err)
	return id, u.Query().Get("token")
}

func newService(repos *memory.Repos, sender authuc.EmailSender) authuc.Service {
	jwt := jwtsvc.NewService(&config.JWTConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		Issuer:        "test",
		AccessTTL:     time.Minute,
		RefreshTTL:    time.Hour,
	})
	return authuc.NewService(repos.Users, repos.Verifications, repos.Tx, jwt, sender, authuc.Config{
		UserRole:        "User",
		VerificationTTL: 24 * time.Hour,
		MaxAttempts:     3,
		PublicURL:       "http://api.example.com/",
	}, logger.Nop())
}

// ==== Register / Login / Refresh ====

func TestRegister_IssuesTokensAndSendsLink(t *testing.T) {
	repos := memory.New()
	sender := &fakeEmailSender{}
	svc := newService(repos, sender)
	ctx := context.Background()

	u, access, refresh, err := svc.Register(ctx, "alice@example.com", "Secret#123", "alice")
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	require.Equal(t, domain.Role("User"), u.Role)
	require.False(t, u.IsEmailVerified)

	require.Len(t, sender.sent, 1)
	require.Equal(t, "alice@example.com", sender.sent[0].to)
	require.False(t, sender.sent[0].resend)
	id, token := sender.lastToken(t)
	require.Equal(t, u.ID, id)
	require.NotEmpty(t, token)

	_, _, _, err = svc.Register(ctx, "ALICE@example.com", "Secret#123", "alice2")
	require.ErrorIs(t, err, repo.ErrEmailExists)

	_, _, _, err = svc.Register(ctx, "other@example.com", "Secret#123", "alice")
	require.ErrorIs(t, err, repo.ErrUsernameExists)
}

func TestRegister_SendFailureDoesNotFail(t *testing.T) {
	repos := memory.New()
	svc := newService(repos, &fakeEmailSender{err: errors.New("smtp down")})

	u, _, _, err := svc.Register(context.Background(), "bob@example.com", "Secret#123", "bob")
	require.NoError(t, err)

	_, err = repos.Verifications.GetLatestByUserID(context.Background(), u.ID)
	require.NoError(t, err)
}

func TestLoginAndRefresh(t *testing.T) {
	repos := memory.New()
	svc := newService(repos, &fakeEmailSender{})
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, "carol@example.com", "Secret#123", "carol")
	require.NoError(t, err)

	_, _, _, err = svc.Login(ctx, "carol@example.com", "Wrong#123")
	require.ErrorIs(t, err, authuc.ErrInvalidCredentials)
	_, _, _, err = svc.Login(ctx, "nobody@example.com", "Secret#123")
	require.ErrorIs(t, err, authuc.ErrInvalidCredentials)

	u, _, refresh, err := svc.Login(ctx, "carol@example.com", "Secret#123")
	require.NoError(t, err)

	refreshed, access, _, err := svc.Refresh(ctx, refresh)
	require.NoError(t, err)
	require.Equal(t, u.ID, refreshed.ID)
	require.NotEmpty(t, access)

	_, _, _, err = svc.Refresh(ctx, "garbage")
	require.ErrorIs(t, err, authuc.ErrInvalidRefreshToken)

	require.NoError(t, repos.Users.SoftDelete(ctx, u.ID))
	_, _, _, err = svc.Refresh(ctx, refresh)
	require.ErrorIs(t, err, authuc.ErrInvalidRefreshToken)
}

// ==== VerifyEmail ====

func TestVerifyEmail(t *testing.T) {
	repos := memory.New()
	sender := &fakeEmailSender{}
	svc := newService(repos, sender)
	ctx := context.Background()

	u, _, _, err := svc.Register(ctx, "dave@example.com", "Secret#123", "dave")
	require.NoError(t, err)
	_, token := sender.lastToken(t)

	_, err = svc.VerifyEmail(ctx, u.ID, "not-the-token")
	require.ErrorIs(t, err, authuc.ErrVerificationTokenInvalid)

	verified, err := svc.VerifyEmail(ctx, u.ID, token)
	require.NoError(t, err)
	require.True(t, verified.IsEmailVerified)

	_, err = repos.Verifications.GetLatestByUserID(ctx, u.ID)
	require.ErrorIs(t, err, repo.ErrNotFound)

	_, err = svc.VerifyEmail(ctx, u.ID, token)
	require.ErrorIs(t, err, authuc.ErrEmailAlreadyVerified)

	_, err = svc.VerifyEmail(ctx, uuid.New(), token)
	require.ErrorIs(t, err, authuc.ErrUserNotFound)
}

func TestVerifyEmail_AttemptsExceeded(t *testing.T) {
	repos := memory.New()
	sender := &fakeEmailSender{}
	svc := newService(repos, sender)
	ctx := context.Background()

	u, _, _, err := svc.Register(ctx, "erin@example.com", "Secret#123", "erin")
	require.NoError(t, err)
	_, token := sender.lastToken(t)

	for i := 0; i < 2; i++ {
		_, err = svc.VerifyEmail(ctx, u.ID, "bad")
		require.ErrorIs(t, err, authuc.ErrVerificationTokenInvalid)
	}
	_, err = svc.VerifyEmail(ctx, u.ID, "bad")
	require.ErrorIs(t, err, authuc.ErrVerificationAttemptsExceeded)

	_, err = svc.VerifyEmail(ctx, u.ID, token)
	require.ErrorIs(t, err, authuc.ErrVerificationAttemptsExceeded)
}

// ==== ResendVerification ====

func TestResendVerification_NoUser(t *testing.T) {
	repos := memory.New()
	sender := &fakeEmailSender{}
	svc := newService(repos, sender)

	err := svc.ResendVerification(context.Background(), "nouser@example.com")
	require.ErrorIs(t, err, authuc.ErrUserNotFound)
	require.Empty(t, sender.sent)
}

func TestResendVerification_AlreadyVerifiedIsNoop(t *testing.T) {
	repos := memory.New()
	sender := &fakeEmailSender{}
	svc := newService(repos, sender)
	ctx := context.Background()

	u := domain.NewUser("verified@example.com", "hash", "verified", "User")
	u.IsEmailVerified = true
	require.NoError(t, repos.Users.Create(ctx, u))

	require.NoError(t, svc.ResendVerification(ctx, u.Email))
	require.Empty(t, sender.sent)
	_, err := repos.Verifications.GetLatestByUserID(ctx, u.ID)
	require.ErrorIs(t, err, repo.ErrNotFound)
}

func TestResendVerification_ReplacesOldToken(t *testing.T) {
	repos := memory.New()
	sender := &fakeEmailSender{}
	svc := newService(repos, sender)
	ctx := context.Background()

	u, _, _, err := svc.Register(ctx, "frank@example.com", "Secret#123", "frank")
	require.NoError(t, err)
	_, oldToken := sender.lastToken(t)

	require.NoError(t, svc.ResendVerification(ctx, u.Email))
	require.Len(t, sender.sent, 2)
	require.True(t, sender.sent[1].resend)
	_, newToken := sender.lastToken(t)
	require.NotEqual(t, oldToken, newToken)

	_, err = svc.VerifyEmail(ctx, u.ID, oldToken)
	require.ErrorIs(t, err, authuc.ErrVerificationTokenInvalid)

	_, err = svc.VerifyEmail(ctx, u.ID, newToken)
	require.NoError(t, err)
}
