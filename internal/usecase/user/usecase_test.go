package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"course-platform/internal/domain/course"
	"course-platform/internal/domain/enrollment"
	domain "course-platform/internal/domain/user"
	repo "course-platform/internal/repository/interfaces"
	"course-platform/internal/repository/memory"
	useruc "course-platform/internal/usecase/user"
	"course-platform/pkg/password"
)

const (
	adminRole domain.Role = "Admin"
	userRole  domain.Role = "User"
)

func newService(repos *memory.Repos) useruc.Service {
	return useruc.NewService(repos.Users, repos.Courses, repos.Registrations, repos.Bans, repos.Tx, adminRole)
}

func createUser(t *testing.T, repos *memory.Repos, name string, role domain.Role) *domain.User {
	t.Helper()
	hash, err := password.Hash("Secret#123")
	require.NoError(t, err)
	u := domain.NewUser(name+"@example.com", hash, name, role)
	require.NoError(t, repos.Users.Create(context.Background(), u))
	return u
}

func createCourse(t *testing.T, repos *memory.Repos, name string, start, finish time.Time) *course.Course {
	t.Helper()
	c := course.NewCourse(name, "description", uuid.New(), start, finish, "en", "")
	require.NoError(t, repos.Courses.Create(context.Background(), c))
	return c
}

func TestUpdateProfile_PhoneAndPassword(t *testing.T) {
	repos := memory.New()
	svc := newService(repos)
	u := createUser(t, repos, "alice", userRole)
	ctx := context.Background()

	phone := "+380501234567"
	updated, err := svc.UpdateProfile(ctx, u.ID, useruc.ProfileUpdateInput{PhoneNumber: &phone})
	require.NoError(t, err)
	require.Equal(t, phone, updated.PhoneNumber)

	bad := "12345"
	_, err = svc.UpdateProfile(ctx, u.ID, useruc.ProfileUpdateInput{PhoneNumber: &bad})
	require.ErrorIs(t, err, useruc.ErrInvalidPhone)

	wrong, newPass := "Wrong#123", "Better#456"
	_, err = svc.UpdateProfile(ctx, u.ID, useruc.ProfileUpdateInput{OldPassword: &wrong, NewPassword: &newPass})
	require.ErrorIs(t, err, useruc.ErrInvalidPassword)

	old, weak := "Secret#123", "weak"
	_, err = svc.UpdateProfile(ctx, u.ID, useruc.ProfileUpdateInput{OldPassword: &old, NewPassword: &weak})
	require.ErrorIs(t, err, useruc.ErrWeakPassword)

	_, err = svc.UpdateProfile(ctx, u.ID, useruc.ProfileUpdateInput{OldPassword: &old, NewPassword: &newPass})
	require.NoError(t, err)

	stored, err := repos.Users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.NoError(t, password.Compare(stored.PasswordHash, newPass))
}

func TestDeleteAccount_Rules(t *testing.T) {
	repos := memory.New()
	svc := newService(repos)
	ctx := context.Background()

	admin := createUser(t, repos, "root", adminRole)
	otherAdmin := createUser(t, repos, "boss", adminRole)
	alice := createUser(t, repos, "alice", userRole)
	bob := createUser(t, repos, "bob", userRole)

	err := svc.DeleteAccount(ctx, useruc.Actor{ID: alice.ID}, bob.ID)
	require.ErrorIs(t, err, useruc.ErrUnauthorizedAccess)

	err = svc.DeleteAccount(ctx, useruc.Actor{ID: admin.ID, IsAdmin: true}, otherAdmin.ID)
	require.ErrorIs(t, err, useruc.ErrCannotDeleteAdmin)

	require.NoError(t, svc.DeleteAccount(ctx, useruc.Actor{ID: admin.ID, IsAdmin: true}, bob.ID))
	require.NoError(t, svc.DeleteAccount(ctx, useruc.Actor{ID: alice.ID}, alice.ID))

	_, err = svc.GetByID(ctx, alice.ID)
	require.ErrorIs(t, err, useruc.ErrUserNotFound)

	err = svc.DeleteAccount(ctx, useruc.Actor{ID: admin.ID, IsAdmin: true}, uuid.New())
	require.ErrorIs(t, err, useruc.ErrUserNotFound)

	users, total, err := svc.ListUsers(ctx, "", repo.PageRequest{})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, users, 2)
}

func TestListUsers_Search(t *testing.T) {
	repos := memory.New()
	svc := newService(repos)
	createUser(t, repos, "alice", userRole)
	createUser(t, repos, "alina", userRole)
	createUser(t, repos, "bob", userRole)

	users, total, err := svc.ListUsers(context.Background(), "ALI", repo.PageRequest{Page: 1, PageSize: 1})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, users, 1)
}

func TestEnroll(t *testing.T) {
	repos := memory.New()
	svc := newService(repos)
	ctx := context.Background()
	now := time.Now().UTC()

	u := createUser(t, repos, "alice", userRole)
	open := createCourse(t, repos, "Open course", now.Add(24*time.Hour), now.Add(240*time.Hour))
	finished := createCourse(t, repos, "Past course", now.Add(-240*time.Hour), now.Add(-24*time.Hour))
	banned := createCourse(t, repos, "Banned course", now.Add(24*time.Hour), now.Add(240*time.Hour))
	require.NoError(t, repos.Bans.Create(ctx, enrollment.NewBan(u.ID, banned.ID, "cheating", now)))

	reg, err := svc.Enroll(ctx, u.ID, open.ID)
	require.NoError(t, err)
	require.Equal(t, open.ID, reg.CourseID)

	_, err = svc.Enroll(ctx, u.ID, open.ID)
	require.ErrorIs(t, err, useruc.ErrAlreadyRegistered)

	_, err = svc.Enroll(ctx, u.ID, finished.ID)
	require.ErrorIs(t, err, useruc.ErrCourseFinished)

	_, err = svc.Enroll(ctx, u.ID, banned.ID)
	require.ErrorIs(t, err, useruc.ErrBannedFromCourse)

	_, err = svc.Enroll(ctx, u.ID, uuid.New())
	require.ErrorIs(t, err, useruc.ErrCourseNotFound)

	items, total, err := svc.ListRegistrations(ctx, u.ID, repo.PageRequest{})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, items, 1)

	require.NoError(t, svc.Unregister(ctx, u.ID, open.ID))
	require.ErrorIs(t, svc.Unregister(ctx, u.ID, open.ID), useruc.ErrRegistrationMissing)
}
