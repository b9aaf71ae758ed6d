package course_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	domain "course-platform/internal/domain/course"
	"course-platform/internal/domain/user"
	"course-platform/internal/repository/memory"
	courseuc "course-platform/internal/usecase/course"
	"course-platform/pkg/logger"
)

type fakeStorage struct {
	objects map[string]string
	deleted []string
	failUp  bool
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string]string{}}
}

func (s *fakeStorage) Upload(_ context.Context, key string, body io.Reader, _ int64, _ string) (string, error) {
	if s.failUp {
		return "", errors.New("upload failed")
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	s.objects[key] = string(b)
	return "https://bucket.example/" + key, nil
}

func (s *fakeStorage) Delete(_ context.Context, key string) error {
	delete(s.objects, key)
	s.deleted = append(s.deleted, key)
	return nil
}

type fixture struct {
	repos   *memory.Repos
	storage *fakeStorage
	svc     courseuc.Service
	creator *user.User
	tech    *domain.Category
	art     *domain.Category
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	repos := memory.New()
	store := newFakeStorage()

	creator := user.NewUser("admin@example.com", "hash", "admin", "Admin")
	require.NoError(t, repos.Users.Create(ctx, creator))
	tech := domain.NewCategory("Technology")
	art := domain.NewCategory("Art")
	require.NoError(t, repos.Categories.Create(ctx, tech))
	require.NoError(t, repos.Categories.Create(ctx, art))

	return &fixture{
		repos:   repos,
		storage: store,
		svc:     courseuc.NewService(repos.Courses, repos.Categories, repos.Users, repos.Tx, store, logger.Nop()),
		creator: creator,
		tech:    tech,
		art:     art,
	}
}

func (f *fixture) input(name string) courseuc.Input {
	start := time.Now().UTC().Add(72 * time.Hour)
	return courseuc.Input{
		Name:        name,
		Description: "A practical course",
		CreatorID:   f.creator.ID,
		StartDate:   start,
		FinishDate:  start.Add(30 * 24 * time.Hour),
		Language:    "English",
		CategoryIDs: []uuid.UUID{f.tech.ID, f.tech.ID},
	}
}

func TestCreate_WithImageAndCategories(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := f.input("Go in practice")
	in.Image = &courseuc.Image{Body: strings.NewReader("png"), Size: 3, ContentType: "image/png"}

	c, err := f.svc.Create(ctx, in)
	require.NoError(t, err)
	require.Equal(t, "https://bucket.example/courses/"+c.ID.String(), c.ImageURL)
	require.Equal(t, "png", f.storage.objects["courses/"+c.ID.String()])
	require.Equal(t, []uuid.UUID{f.tech.ID}, c.CategoryIDs)

	_, err = f.svc.Create(ctx, f.input("Go in practice"))
	require.ErrorIs(t, err, courseuc.ErrCourseExists)
}

func TestCreate_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := f.input("Go")
	_, err := f.svc.Create(ctx, in)
	require.ErrorIs(t, err, courseuc.ErrInvalidInput)

	in = f.input("Go in practice")
	in.StartDate = time.Now().Add(-time.Hour)
	_, err = f.svc.Create(ctx, in)
	require.ErrorIs(t, err, courseuc.ErrInvalidInput)

	in = f.input("Go in practice")
	in.FinishDate = in.StartDate
	_, err = f.svc.Create(ctx, in)
	require.ErrorIs(t, err, courseuc.ErrInvalidInput)

	in = f.input("Go in practice")
	in.CreatorID = uuid.New()
	_, err = f.svc.Create(ctx, in)
	require.ErrorIs(t, err, courseuc.ErrCreatorNotFound)

	in = f.input("Go in practice")
	in.CategoryIDs = []uuid.UUID{uuid.New()}
	_, err = f.svc.Create(ctx, in)
	require.ErrorIs(t, err, courseuc.ErrCategoryNotFound)

	in = f.input("Go in practice")
	in.Image = &courseuc.Image{Body: strings.NewReader("x")}
	f.storage.failUp = true
	_, err = f.svc.Create(ctx, in)
	require.Error(t, err)

	list, err := f.svc.List(ctx)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestUpdate_DiffsCategories(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.svc.Create(ctx, f.input("Go in practice"))
	require.NoError(t, err)
	other, err := f.svc.Create(ctx, f.input("Rust in practice"))
	require.NoError(t, err)

	in := f.input("Go in depth")
	in.CategoryIDs = []uuid.UUID{f.art.ID}
	updated, err := f.svc.Update(ctx, c.ID, in)
	require.NoError(t, err)
	require.Equal(t, "Go in depth", updated.Name)
	require.Equal(t, []uuid.UUID{f.art.ID}, updated.CategoryIDs)
	require.Equal(t, f.creator.ID, updated.CreatorID)

	_, err = f.svc.Update(ctx, other.ID, f.input("Go in depth"))
	require.ErrorIs(t, err, courseuc.ErrCourseExists)

	_, err = f.svc.Update(ctx, uuid.New(), f.input("Missing course"))
	require.ErrorIs(t, err, courseuc.ErrCourseNotFound)
}

func TestDelete_RemovesImage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := f.input("Go in practice")
	in.Image = &courseuc.Image{Body: strings.NewReader("png"), Size: 3, ContentType: "image/png"}
	c, err := f.svc.Create(ctx, in)
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, c.ID))
	require.Equal(t, []string{"courses/" + c.ID.String()}, f.storage.deleted)

	_, err = f.svc.GetByID(ctx, c.ID)
	require.ErrorIs(t, err, courseuc.ErrCourseNotFound)
	require.ErrorIs(t, f.svc.Delete(ctx, c.ID), courseuc.ErrCourseNotFound)
}

func TestListStartingInDays(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	today := time.Now().UTC()

	at := func(days int) time.Time {
		d := domain.DateOf(today).AddDate(0, 0, days)
		return d.Add(10 * time.Hour)
	}
	for name, days := range map[string]int{"Starts in seven": 7, "Starts in five": 5, "Starts tomorrow": 1} {
		c := domain.NewCourse(name, "description", f.creator.ID, at(days), at(days+10), "en", "")
		require.NoError(t, f.repos.Courses.Create(ctx, c))
	}

	list, err := f.svc.ListStartingInDays(ctx, today, []int{7, 3, 1})
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "Starts tomorrow", list[0].Name)
	require.Equal(t, "Starts in seven", list[1].Name)
}
