package seed_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"course-platform/internal/config"
	"course-platform/internal/domain/course"
	"course-platform/internal/repository/memory"
	"course-platform/internal/seed"
	"course-platform/pkg/logger"
	"course-platform/pkg/password"
)

func TestSeederCreatesCategoriesAndAdmin(t *testing.T) {
	ctx := context.Background()
	repos := memory.New()

	cfg := config.SeedConfig{
		Enabled:       true,
		AdminEmail:    "Admin@Example.com",
		AdminUsername: "admin",
		AdminPassword: "Str0ng!Pass",
	}
	s := seed.NewSeeder(repos.Categories, repos.Users, cfg, "Admin", logger.Nop())

	require.NoError(t, s.Run(ctx))
	// второй запуск не должен создавать дубликаты
	require.NoError(t, s.Run(ctx))

	cats, err := repos.Categories.List(ctx)
	require.NoError(t, err)
	require.Len(t, cats, len(seed.DefaultCategories))

	admin, err := repos.Users.GetByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	require.Equal(t, "admin", admin.Username)
	require.True(t, admin.HasRole("Admin"))
	require.True(t, admin.IsEmailVerified)
	require.NoError(t, password.Compare(admin.PasswordHash, "Str0ng!Pass"))
}

func TestSeederKeepsExistingCategories(t *testing.T) {
	ctx := context.Background()
	repos := memory.New()

	art := course.NewCategory("Art")
	require.NoError(t, repos.Categories.Create(ctx, art))

	s := seed.NewSeeder(repos.Categories, repos.Users, config.SeedConfig{Enabled: true}, "Admin", logger.Nop())
	require.NoError(t, s.Run(ctx))

	got, err := repos.Categories.GetByName(ctx, "Art")
	require.NoError(t, err)
	require.Equal(t, art.ID, got.ID)

	cats, err := repos.Categories.List(ctx)
	require.NoError(t, err)
	require.Len(t, cats, len(seed.DefaultCategories))
}

func TestSeederDisabledOrWithoutAdminCredentials(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled", func(t *testing.T) {
		repos := memory.New()
		s := seed.NewSeeder(repos.Categories, repos.Users, config.SeedConfig{}, "Admin", logger.Nop())
		require.NoError(t, s.Run(ctx))

		cats, err := repos.Categories.List(ctx)
		require.NoError(t, err)
		require.Empty(t, cats)
	})

	t.Run("no admin password", func(t *testing.T) {
		repos := memory.New()
		cfg := config.SeedConfig{Enabled: true, AdminEmail: "admin@example.com", AdminUsername: "admin"}
		s := seed.NewSeeder(repos.Categories, repos.Users, cfg, "Admin", logger.Nop())
		require.NoError(t, s.Run(ctx))

		_, err := repos.Users.GetByEmail(ctx, "admin@example.com")
		require.Error(t, err)
	})
}
