package subchapter_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"course-platform/internal/domain/chapter"
	"course-platform/internal/repository/memory"
	subchapteruc "course-platform/internal/usecase/subchapter"
)

func setup(t *testing.T) (*memory.Repos, subchapteruc.Service, *chapter.Chapter) {
	t.Helper()
	repos := memory.New()
	ch := &chapter.Chapter{ID: uuid.New(), CourseID: uuid.New(), Name: "Basics", Number: 1}
	require.NoError(t, repos.Chapters.Create(context.Background(), ch))
	return repos, subchapteruc.NewService(repos.SubChapters, repos.Chapters, repos.Tx), ch
}

func create(t *testing.T, svc subchapteruc.Service, chapterID uuid.UUID, names ...string) []uuid.UUID {
	t.Helper()
	ids := make([]uuid.UUID, 0, len(names))
	for _, name := range names {
		sc, err := svc.Create(context.Background(), subchapteruc.CreateInput{ChapterID: chapterID, Name: name, Content: "text"})
		require.NoError(t, err)
		ids = append(ids, sc.ID)
	}
	return ids
}

func numbers(t *testing.T, svc subchapteruc.Service, chapterID uuid.UUID) []int {
	t.Helper()
	list, err := svc.ListByChapter(context.Background(), chapterID)
	require.NoError(t, err)
	out := make([]int, len(list))
	for i, sc := range list {
		out[i] = sc.Number
	}
	return out
}

func TestCreateAndDelete_KeepContiguousNumbers(t *testing.T) {
	_, svc, ch := setup(t)
	ctx := context.Background()

	ids := create(t, svc, ch.ID, "one", "two", "three", "four", "five")
	require.Equal(t, []int{1, 2, 3, 4, 5}, numbers(t, svc, ch.ID))

	require.NoError(t, svc.Delete(ctx, ids[2]))
	require.Equal(t, []int{1, 2, 3, 4}, numbers(t, svc, ch.ID))

	require.NoError(t, svc.Delete(ctx, ids[4]))
	require.NoError(t, svc.Delete(ctx, ids[0]))
	require.Equal(t, []int{1, 2}, numbers(t, svc, ch.ID))

	sc, err := svc.GetByID(ctx, ids[3])
	require.NoError(t, err)
	require.Equal(t, 2, sc.Number)

	next := create(t, svc, ch.ID, "six")
	sc, err = svc.GetByID(ctx, next[0])
	require.NoError(t, err)
	require.Equal(t, 3, sc.Number)
}

func TestCreate_Errors(t *testing.T) {
	_, svc, ch := setup(t)
	ctx := context.Background()

	create(t, svc, ch.ID, "one")
	_, err := svc.Create(ctx, subchapteruc.CreateInput{ChapterID: ch.ID, Name: "one"})
	require.ErrorIs(t, err, subchapteruc.ErrSubChapterExists)

	_, err = svc.Create(ctx, subchapteruc.CreateInput{ChapterID: uuid.New(), Name: "two"})
	require.ErrorIs(t, err, subchapteruc.ErrChapterNotFound)

	_, err = svc.Create(ctx, subchapteruc.CreateInput{ChapterID: ch.ID, Name: " "})
	require.ErrorIs(t, err, subchapteruc.ErrInvalidInput)
}

func TestReorder_UnknownIDChangesNothing(t *testing.T) {
	_, svc, ch := setup(t)
	ctx := context.Background()

	ids := create(t, svc, ch.ID, "one", "two")
	require.NoError(t, svc.Reorder(ctx, ids, []int{2, 1}))

	first, err := svc.GetByID(ctx, ids[0])
	require.NoError(t, err)
	require.Equal(t, 2, first.Number)

	err = svc.Reorder(ctx, []uuid.UUID{ids[1], uuid.New()}, []int{7, 8})
	require.ErrorIs(t, err, subchapteruc.ErrSubChapterNotFound)

	second, err := svc.GetByID(ctx, ids[1])
	require.NoError(t, err)
	require.Equal(t, 1, second.Number)
}

func TestDeleteChapter_CascadesSubchapters(t *testing.T) {
	repos, svc, ch := setup(t)
	ctx := context.Background()

	ids := create(t, svc, ch.ID, "one", "two")
	require.NoError(t, repos.Chapters.Delete(ctx, ch.ID))

	_, err := svc.GetByID(ctx, ids[0])
	require.ErrorIs(t, err, subchapteruc.ErrSubChapterNotFound)
}
