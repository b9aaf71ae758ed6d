package category_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"course-platform/internal/domain/course"
	repo "course-platform/internal/repository/interfaces"
	"course-platform/internal/repository/memory"
	categoryuc "course-platform/internal/usecase/category"
)

func TestCreate_DuplicateNameIgnoresCase(t *testing.T) {
	repos := memory.New()
	svc := categoryuc.NewService(repos.Categories)
	ctx := context.Background()

	_, err := svc.Create(ctx, "Science")
	require.NoError(t, err)

	_, err = svc.Create(ctx, "science")
	require.ErrorIs(t, err, categoryuc.ErrCategoryExists)

	_, err = svc.Create(ctx, "   ")
	require.ErrorIs(t, err, categoryuc.ErrInvalidName)
}

// blindCategories не видит существующих названий, как при параллельном создании
// категории между проверкой имени и вставкой.
type blindCategories struct {
	*memory.CategoryRepository
}

func (blindCategories) GetByName(context.Context, string) (*course.Category, error) {
	return nil, repo.ErrNotFound
}

func TestCreate_ConcurrentDuplicateIsConflict(t *testing.T) {
	repos := memory.New()
	svc := categoryuc.NewService(blindCategories{repos.Categories})
	ctx := context.Background()

	_, err := svc.Create(ctx, "Science")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "SCIENCE")
	require.ErrorIs(t, err, categoryuc.ErrCategoryExists)

	art, err := svc.Create(ctx, "Art")
	require.NoError(t, err)
	_, err = svc.Update(ctx, art.ID, "science")
	require.ErrorIs(t, err, categoryuc.ErrCategoryExists)
}

func TestUpdate(t *testing.T) {
	repos := memory.New()
	svc := categoryuc.NewService(repos.Categories)
	ctx := context.Background()

	art, err := svc.Create(ctx, "Art")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "Ai")
	require.NoError(t, err)

	_, err = svc.Update(ctx, art.ID, "Ai")
	require.ErrorIs(t, err, categoryuc.ErrCategoryExists)

	// Переименование в то же имя не считается конфликтом.
	updated, err := svc.Update(ctx, art.ID, "Art")
	require.NoError(t, err)
	require.Equal(t, "Art", updated.Name)

	updated, err = svc.Update(ctx, art.ID, "Fine Art")
	require.NoError(t, err)
	require.Equal(t, "Fine Art", updated.Name)

	_, err = svc.Update(ctx, uuid.New(), "Other")
	require.ErrorIs(t, err, categoryuc.ErrCategoryNotFound)
}

func TestDelete_RejectsCategoryWithCourses(t *testing.T) {
	repos := memory.New()
	svc := categoryuc.NewService(repos.Categories)
	ctx := context.Background()

	used, err := svc.Create(ctx, "Technology")
	require.NoError(t, err)
	free, err := svc.Create(ctx, "Education")
	require.NoError(t, err)

	c := course.NewCourse("Go basics", "Intro to Go", uuid.New(), time.Now().Add(24*time.Hour), time.Now().Add(48*time.Hour), "en", "")
	c.CategoryIDs = []uuid.UUID{used.ID}
	require.NoError(t, repos.Courses.Create(ctx, c))

	require.ErrorIs(t, svc.Delete(ctx, used.ID), categoryuc.ErrCategoryHasCourses)
	require.NoError(t, svc.Delete(ctx, free.ID))
	require.ErrorIs(t, svc.Delete(ctx, free.ID), categoryuc.ErrCategoryNotFound)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "Technology", list[0].Name)
}
