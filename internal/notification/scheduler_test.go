package notification

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"course-platform/internal/domain/course"
	"course-platform/internal/domain/enrollment"
	domain "course-platform/internal/domain/notification"
	"course-platform/internal/domain/user"
	"course-platform/internal/repository/memory"
	"course-platform/internal/storage"
	courseuc "course-platform/internal/usecase/course"
	"course-platform/pkg/logger"
)

var today = time.Date(2026, 3, 10, 0, 5, 0, 0, time.UTC)

func newScheduler(repos *memory.Repos) *Scheduler {
	courses := courseuc.NewService(repos.Courses, repos.Categories, repos.Users, repos.Tx, storage.Noop{}, logger.Nop())
	s := NewScheduler(courses, repos.Registrations, repos.Users, repos.Jobs, SchedulerConfig{
		Days:   []int{7, 3, 1},
		Hour:   17,
		Minute: 48,
	}, logger.Nop())
	s.now = func() time.Time { return today }
	return s
}

func addCourse(t *testing.T, repos *memory.Repos, name string, start time.Time) *course.Course {
	t.Helper()
	c := course.NewCourse(name, "description", uuid.New(), start, start.AddDate(0, 1, 0), "en", "")
	require.NoError(t, repos.Courses.Create(context.Background(), c))
	return c
}

func addUser(t *testing.T, repos *memory.Repos, name string) *user.User {
	t.Helper()
	u := user.NewUser(name+"@example.com", "hash", name, "User")
	require.NoError(t, repos.Users.Create(context.Background(), u))
	return u
}

func enroll(t *testing.T, repos *memory.Repos, u *user.User, c *course.Course) {
	t.Helper()
	require.NoError(t, repos.Registrations.Create(context.Background(), enrollment.NewRegistration(u.ID, c.ID, today)))
}

func TestDeliveryTime(t *testing.T) {
	start := time.Date(2026, 3, 17, 9, 30, 0, 0, time.UTC)
	require.Equal(t, time.Date(2026, 3, 10, 17, 48, 0, 0, time.UTC), DeliveryTime(start, 7, 17, 48))
	require.Equal(t, time.Date(2026, 3, 16, 8, 0, 0, 0, time.UTC), DeliveryTime(start, 1, 8, 0))
}

func TestRunOnce_SevenDaysBefore(t *testing.T) {
	repos := memory.New()
	s := newScheduler(repos)
	ctx := context.Background()

	c := addCourse(t, repos, "Kubernetes", time.Date(2026, 3, 17, 9, 0, 0, 0, time.UTC))
	alice := addUser(t, repos, "alice")
	bob := addUser(t, repos, "bob")
	enroll(t, repos, alice, c)
	enroll(t, repos, bob, c)
	// Повторная запись того же пользователя не даёт второго письма.
	enroll(t, repos, alice, c)

	// Курс, не попадающий ни в один из дней.
	other := addCourse(t, repos, "Terraform", time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC))
	enroll(t, repos, alice, other)

	n, err := s.RunOnce(ctx, today)
	require.NoError(t, err)
	require.EqualValues(t, 2, n)

	jobs := repos.Jobs.All()
	require.Len(t, jobs, 2)
	wantRunAt := time.Date(2026, 3, 10, 17, 48, 0, 0, time.UTC)
	for i, u := range []*user.User{alice, bob} {
		j := jobs[i]
		require.Equal(t, u.Email, j.Recipient)
		require.Equal(t, wantRunAt, j.RunAt)
		require.Equal(t, domain.KindCourseNotification, j.Kind)
		require.Equal(t, domain.JobPending, j.Status)
		require.Equal(t, "Reminder: Kubernetes starts in 7 day(s)", j.Subject)
		require.Equal(t, "Kubernetes", j.Payload["CourseName"])
		require.Equal(t, domain.CourseNotificationDedupKey(c.ID, u.ID, 7), j.DedupKey)
	}
}

func TestRunOnce_RerunDoesNotDuplicate(t *testing.T) {
	repos := memory.New()
	s := newScheduler(repos)
	ctx := context.Background()

	week := addCourse(t, repos, "Kubernetes", today.AddDate(0, 0, 7))
	tomorrow := addCourse(t, repos, "Go", today.AddDate(0, 0, 1))
	alice := addUser(t, repos, "alice")
	enroll(t, repos, alice, week)
	enroll(t, repos, alice, tomorrow)

	n, err := s.RunOnce(ctx, today)
	require.NoError(t, err)
	require.EqualValues(t, 2, n)

	n, err = s.RunOnce(ctx, today)
	require.NoError(t, err)
	require.Zero(t, n)
	require.Len(t, repos.Jobs.All(), 2)
}

func TestRunOnce_SkipsDeletedUsers(t *testing.T) {
	repos := memory.New()
	s := newScheduler(repos)
	ctx := context.Background()

	c := addCourse(t, repos, "Kubernetes", today.AddDate(0, 0, 3))
	alice := addUser(t, repos, "alice")
	enroll(t, repos, alice, c)
	require.NoError(t, repos.Users.SoftDelete(ctx, alice.ID))

	n, err := s.RunOnce(ctx, today)
	require.NoError(t, err)
	require.Zero(t, n)
}
