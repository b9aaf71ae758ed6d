package feedback_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"course-platform/internal/domain/course"
	"course-platform/internal/domain/enrollment"
	"course-platform/internal/repository/memory"
	feedbackuc "course-platform/internal/usecase/feedback"
)

func setup(t *testing.T) (*memory.Repos, feedbackuc.Service, uuid.UUID, *course.Course) {
	t.Helper()
	repos := memory.New()
	start := time.Now().UTC().Add(24 * time.Hour)
	c := course.NewCourse("Databases 101", "description", uuid.New(), start, start.Add(240*time.Hour), "en", "")
	require.NoError(t, repos.Courses.Create(context.Background(), c))
	return repos, feedbackuc.NewService(repos.Feedbacks, repos.Registrations, repos.Courses), uuid.New(), c
}

func TestCreate_RequiresRegistration(t *testing.T) {
	repos, svc, userID, c := setup(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, userID, c.ID, "Great course", 9)
	require.ErrorIs(t, err, feedbackuc.ErrNotRegistered)

	require.NoError(t, repos.Registrations.Create(ctx, enrollment.NewRegistration(userID, c.ID, time.Now())))

	f, err := svc.Create(ctx, userID, c.ID, "  Great course  ", 9)
	require.NoError(t, err)
	require.Equal(t, "Great course", f.Content)

	_, err = svc.Create(ctx, userID, c.ID, "Another one", 3)
	require.ErrorIs(t, err, feedbackuc.ErrFeedbackExists)

	list, err := svc.ListByCourse(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestCreate_Validation(t *testing.T) {
	_, svc, userID, c := setup(t)
	ctx := context.Background()

	cases := []struct {
		name    string
		content string
		rating  int
	}{
		{"short content", "ok", 5},
		{"long content", strings.Repeat("x", 301), 5},
		{"rating too low", "Fine course", 0},
		{"rating too high", "Fine course", 11},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, userID, c.ID, tc.content, tc.rating)
			require.ErrorIs(t, err, feedbackuc.ErrInvalidInput)
		})
	}

	_, err := svc.Create(ctx, userID, uuid.New(), "Fine course", 5)
	require.ErrorIs(t, err, feedbackuc.ErrCourseNotFound)
}

func TestDelete_AuthorOrAdmin(t *testing.T) {
	repos, svc, userID, c := setup(t)
	ctx := context.Background()
	require.NoError(t, repos.Registrations.Create(ctx, enrollment.NewRegistration(userID, c.ID, time.Now())))

	f, err := svc.Create(ctx, userID, c.ID, "Great course", 9)
	require.NoError(t, err)

	require.ErrorIs(t, svc.Delete(ctx, uuid.New(), false, f.ID), feedbackuc.ErrForbidden)
	require.NoError(t, svc.Delete(ctx, uuid.New(), true, f.ID))
	require.ErrorIs(t, svc.Delete(ctx, userID, false, f.ID), feedbackuc.ErrFeedbackNotFound)
}
