package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"course-platform/internal/database"
	"course-platform/internal/domain/chapter"
	"course-platform/internal/domain/course"
	"course-platform/internal/domain/enrollment"
	"course-platform/internal/domain/notification"
	repo "course-platform/internal/repository/interfaces"
	chapteruc "course-platform/internal/usecase/chapter"
)

// newTestDB открывает SQLite в памяти со схемой из ORM-моделей.
// Одно соединение: иначе каждое соединение получит свою пустую базу.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(sqlite.Open(":memory:"), "test")
	require.NoError(t, err)

	sqlDB, err := db.DB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&pgUser{}, &pgEmailVerification{},
		&pgCategory{}, &pgCourse{}, &pgCourseCategory{},
		&pgChapter{}, &pgSubChapter{},
		&pgRegistration{}, &pgFeedback{}, &pgBan{},
		&pgEmailJob{},
	))
	return db.DB
}

func seedCourse(t *testing.T, db *gorm.DB) *course.Course {
	t.Helper()
	start := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	c := course.NewCourse("Kubernetes in depth", "description", uuid.New(), start, start.AddDate(0, 1, 0), "en", "")
	require.NoError(t, NewCourseRepository(db).Create(context.Background(), c))
	return c
}

func chapterNumbers(t *testing.T, chapters *ChapterRepository, courseID uuid.UUID) map[string]int {
	t.Helper()
	list, err := chapters.ListByCourse(context.Background(), courseID)
	require.NoError(t, err)
	out := make(map[string]int, len(list))
	for _, ch := range list {
		out[ch.Name] = ch.Number
	}
	return out
}

func TestTransactor_RollsBackOnError(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	c := seedCourse(t, db)
	chapters := NewChapterRepository(db)

	ch := &chapter.Chapter{ID: uuid.New(), CourseID: c.ID, Name: "Intro", Number: 1}
	require.NoError(t, chapters.Create(ctx, ch))

	boom := errors.New("boom")
	err := NewTransactor(db).WithinTransaction(ctx, func(ctx context.Context) error {
		require.NoError(t, chapters.UpdateNumber(ctx, ch.ID, 42))
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := chapters.GetByID(ctx, ch.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.Number)
}

func TestChapterReorder_UnknownIDLeavesNumbers(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	c := seedCourse(t, db)
	chapters := NewChapterRepository(db)
	svc := chapteruc.NewService(chapters, NewCourseRepository(db), NewTransactor(db))

	a, err := svc.Create(ctx, chapteruc.CreateInput{CourseID: c.ID, Name: "A"})
	require.NoError(t, err)
	b, err := svc.Create(ctx, chapteruc.CreateInput{CourseID: c.ID, Name: "B"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, chapteruc.CreateInput{CourseID: c.ID, Name: "C"})
	require.NoError(t, err)
	require.Equal(t, map[string]int{"A": 1, "B": 2, "C": 3}, chapterNumbers(t, chapters, c.ID))

	require.NoError(t, svc.Reorder(ctx, []uuid.UUID{a.ID, b.ID}, []int{2, 1}))
	require.Equal(t, map[string]int{"A": 2, "B": 1, "C": 3}, chapterNumbers(t, chapters, c.ID))

	err = svc.Reorder(ctx, []uuid.UUID{a.ID, uuid.New()}, []int{1, 2})
	require.ErrorIs(t, err, chapteruc.ErrChapterNotFound)
	require.Equal(t, map[string]int{"A": 2, "B": 1, "C": 3}, chapterNumbers(t, chapters, c.ID))

	require.NoError(t, svc.Delete(ctx, b.ID))
	require.Equal(t, map[string]int{"A": 1, "C": 2}, chapterNumbers(t, chapters, c.ID))
}

func TestChapterDelete_CascadesSubchapters(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	c := seedCourse(t, db)
	chapters := NewChapterRepository(db)
	subchapters := NewSubChapterRepository(db)

	ch := &chapter.Chapter{ID: uuid.New(), CourseID: c.ID, Name: "Intro", Number: 1}
	require.NoError(t, chapters.Create(ctx, ch))
	sc := &chapter.SubChapter{ID: uuid.New(), ChapterID: ch.ID, Name: "Lesson", Content: "text", Number: 1}
	require.NoError(t, subchapters.Create(ctx, sc))

	require.NoError(t, chapters.Delete(ctx, ch.ID))
	_, err := subchapters.GetByID(ctx, sc.ID)
	require.ErrorIs(t, err, repo.ErrNotFound)
	require.ErrorIs(t, chapters.Delete(ctx, ch.ID), repo.ErrNotFound)
}

func TestEmailJobs_DedupAndClaim(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	jobs := NewEmailJobRepository(db)

	now := time.Date(2026, 4, 24, 17, 48, 0, 0, time.UTC)
	courseID := uuid.New()
	first := notification.NewCourseNotificationJob(courseID, uuid.New(), "a@example.com", "Go", 7, now, now)
	second := notification.NewCourseNotificationJob(courseID, uuid.New(), "b@example.com", "Go", 7, now.Add(time.Hour), now)

	n, err := jobs.Enqueue(ctx, []*notification.EmailJob{first, second})
	require.NoError(t, err)
	require.EqualValues(t, 2, n)

	dup := notification.NewCourseNotificationJob(courseID, uuid.Nil, "a@example.com", "Go", 7, now, now)
	dup.DedupKey = first.DedupKey
	n, err = jobs.Enqueue(ctx, []*notification.EmailJob{dup})
	require.NoError(t, err)
	require.Zero(t, n)

	claimed, err := jobs.ClaimDue(ctx, now, 10, 0)
	require.NoError(t, err)
	require.Len(t, claimed, 1)
	require.Equal(t, first.ID, claimed[0].ID)
	require.Equal(t, notification.JobProcessing, claimed[0].Status)
	require.Equal(t, 1, claimed[0].Attempts)
	require.Equal(t, "Go", claimed[0].Payload["CourseName"])
	require.EqualValues(t, 7, claimed[0].Payload["DaysBefore"])

	// Уже забранная задача повторно не выдаётся.
	claimed, err = jobs.ClaimDue(ctx, now, 10, 0)
	require.NoError(t, err)
	require.Empty(t, claimed)

	require.NoError(t, jobs.MarkSent(ctx, first.ID, now))
	require.ErrorIs(t, jobs.MarkSent(ctx, uuid.New(), now), repo.ErrNotFound)

	require.NoError(t, jobs.Reschedule(ctx, second.ID, now.Add(-time.Minute), "temporary"))
	claimed, err = jobs.ClaimDue(ctx, now, 10, 0)
	require.NoError(t, err)
	require.Len(t, claimed, 1)
	require.Equal(t, "temporary", claimed[0].LastError)
}

func TestEmailJobs_ReclaimAfterLease(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	jobs := NewEmailJobRepository(db)

	now := time.Date(2026, 4, 24, 17, 48, 0, 0, time.UTC)
	job := notification.NewCourseNotificationJob(uuid.New(), uuid.New(), "a@example.com", "Go", 3, now, now)
	_, err := jobs.Enqueue(ctx, []*notification.EmailJob{job})
	require.NoError(t, err)

	claimed, err := jobs.ClaimDue(ctx, now, 10, 10*time.Minute)
	require.NoError(t, err)
	require.Len(t, claimed, 1)

	// Воркер упал, задача осталась в processing. До истечения аренды её никто не берёт.
	claimed, err = jobs.ClaimDue(ctx, now.Add(5*time.Minute), 10, 10*time.Minute)
	require.NoError(t, err)
	require.Empty(t, claimed)

	claimed, err = jobs.ClaimDue(ctx, now.Add(48*time.Hour), 10, 10*time.Minute)
	require.NoError(t, err)
	require.Len(t, claimed, 1)
	require.Equal(t, job.ID, claimed[0].ID)
	require.Equal(t, 2, claimed[0].Attempts)

	// Без аренды зависшие задачи не забираются.
	claimed, err = jobs.ClaimDue(ctx, now.Add(96*time.Hour), 10, 0)
	require.NoError(t, err)
	require.Empty(t, claimed)
}

func TestCourseRepository_CategoriesAndStartDates(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	categories := NewCategoryRepository(db)
	courses := NewCourseRepository(db)

	tech := course.NewCategory("Technology")
	art := course.NewCategory("Art")
	require.NoError(t, categories.Create(ctx, tech))
	require.NoError(t, categories.Create(ctx, art))

	start := time.Date(2026, 5, 8, 13, 0, 0, 0, time.UTC)
	c := course.NewCourse("Design systems", "description", uuid.New(), start, start.AddDate(0, 1, 0), "en", "")
	c.CategoryIDs = []uuid.UUID{tech.ID, art.ID}
	require.NoError(t, courses.Create(ctx, c))

	got, err := courses.GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, got.Categories, 2)
	require.Equal(t, "Art", got.Categories[0].Name)

	n, err := categories.CountCourses(ctx, tech.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	require.NoError(t, courses.RemoveCategories(ctx, c.ID, []uuid.UUID{tech.ID}))
	n, err = categories.CountCourses(ctx, tech.ID)
	require.NoError(t, err)
	require.Zero(t, n)

	list, err := courses.ListStartingOn(ctx, []time.Time{time.Date(2026, 5, 8, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	require.Len(t, list, 1)

	list, err = courses.ListStartingOn(ctx, []time.Time{time.Date(2026, 5, 7, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	require.Empty(t, list)

	_, err = courses.GetByName(ctx, "Missing")
	require.ErrorIs(t, err, repo.ErrNotFound)
}

func TestCreate_UniqueViolationIsAlreadyExists(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	c := seedCourse(t, db)

	categories := NewCategoryRepository(db)
	science := course.NewCategory("Science")
	require.NoError(t, categories.Create(ctx, science))
	require.ErrorIs(t, categories.Create(ctx, course.NewCategory("Science")), repo.ErrAlreadyExists)

	music := course.NewCategory("Music")
	require.NoError(t, categories.Create(ctx, music))
	music.Name = "Science"
	require.ErrorIs(t, categories.Update(ctx, music), repo.ErrAlreadyExists)

	courses := NewCourseRepository(db)
	twin := course.NewCourse(c.Name, "description", uuid.New(), c.StartDate, c.FinishDate, "en", "")
	require.ErrorIs(t, courses.Create(ctx, twin), repo.ErrAlreadyExists)

	userID := uuid.New()
	registrations := NewRegistrationRepository(db)
	require.NoError(t, registrations.Create(ctx, enrollment.NewRegistration(userID, c.ID, time.Now())))
	require.ErrorIs(t, registrations.Create(ctx, enrollment.NewRegistration(userID, c.ID, time.Now())), repo.ErrAlreadyExists)

	feedbacks := NewFeedbackRepository(db)
	require.NoError(t, feedbacks.Create(ctx, enrollment.NewFeedback(userID, c.ID, "Great", 9, time.Now())))
	require.ErrorIs(t, feedbacks.Create(ctx, enrollment.NewFeedback(userID, c.ID, "Again", 3, time.Now())), repo.ErrAlreadyExists)

	bans := NewBanRepository(db)
	require.NoError(t, bans.Create(ctx, enrollment.NewBan(userID, c.ID, "spamming", time.Now())))
	require.ErrorIs(t, bans.Create(ctx, enrollment.NewBan(userID, c.ID, "spamming", time.Now())), repo.ErrAlreadyExists)

	chapters := NewChapterRepository(db)
	require.NoError(t, chapters.Create(ctx, &chapter.Chapter{ID: uuid.New(), CourseID: c.ID, Name: "Intro", Number: 1}))
	err := chapters.Create(ctx, &chapter.Chapter{ID: uuid.New(), CourseID: c.ID, Name: "Intro", Number: 2})
	require.ErrorIs(t, err, repo.ErrAlreadyExists)
}

func TestLockForUpdate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	c := seedCourse(t, db)
	courses := NewCourseRepository(db)
	chapters := NewChapterRepository(db)

	ch := &chapter.Chapter{ID: uuid.New(), CourseID: c.ID, Name: "Intro", Number: 1}
	require.NoError(t, chapters.Create(ctx, ch))

	err := NewTransactor(db).WithinTransaction(ctx, func(ctx context.Context) error {
		require.NoError(t, courses.LockForUpdate(ctx, c.ID))
		require.NoError(t, chapters.LockForUpdate(ctx, ch.ID))
		require.ErrorIs(t, courses.LockForUpdate(ctx, uuid.New()), repo.ErrNotFound)
		return chapters.LockForUpdate(ctx, uuid.New())
	})
	require.ErrorIs(t, err, repo.ErrNotFound)
}
