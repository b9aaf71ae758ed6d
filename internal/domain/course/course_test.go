package course

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestDaysUntilStartIgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	c := NewCourse("Distributed systems", "description", uuid.New(), start, start.AddDate(0, 1, 0), "en", "")

	require.Equal(t, 7, c.DaysUntilStart(time.Date(2026, 3, 3, 23, 59, 0, 0, time.UTC)))
	require.Equal(t, 0, c.DaysUntilStart(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)))
}

func TestIsFinished(t *testing.T) {
	start := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	finish := start.AddDate(0, 0, 14)
	c := NewCourse("Distributed systems", "description", uuid.New(), start, finish, "en", "")

	require.False(t, c.IsFinished(finish.Add(-time.Second)))
	require.True(t, c.IsFinished(finish))
}

func TestDiffCategories(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	toAdd, toRemove := DiffCategories([]uuid.UUID{a, b}, []uuid.UUID{b, c, c})
	require.Equal(t, []uuid.UUID{c}, toAdd)
	require.Equal(t, []uuid.UUID{a}, toRemove)

	toAdd, toRemove = DiffCategories([]uuid.UUID{a}, []uuid.UUID{a})
	require.Empty(t, toAdd)
	require.Empty(t, toRemove)
}

func TestImageKey(t *testing.T) {
	id := uuid.MustParse("6f1c2d3e-0000-4000-8000-000000000001")
	require.Equal(t, "courses/6f1c2d3e-0000-4000-8000-000000000001", ImageKey(id))
}
