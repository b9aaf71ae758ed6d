// Package seed наполняет пустую базу справочными данными:
// стандартными категориями курсов и учётной записью администратора.
package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"course-platform/internal/config"
	"course-platform/internal/domain/course"
	"course-platform/internal/domain/user"
	repo "course-platform/internal/repository/interfaces"
	"course-platform/pkg/logger"
	"course-platform/pkg/password"
)

// DefaultCategories создаются при первом запуске.
var DefaultCategories = []string{"Technology", "Art", "Science", "Ai", "Education"}

// Seeder создаёт недостающие справочные записи. Повторный запуск ничего не меняет.
type Seeder struct {
	categories repo.CategoryRepository
	users      repo.UserRepository
	cfg        config.SeedConfig
	adminRole  user.Role
	logger     logger.Logger
}

// NewSeeder создаёт сидер.
func NewSeeder(
	categories repo.CategoryRepository,
	users repo.UserRepository,
	cfg config.SeedConfig,
	adminRole user.Role,
	log logger.Logger,
) *Seeder {
	return &Seeder{
		categories: categories,
		users:      users,
		cfg:        cfg,
		adminRole:  adminRole,
		logger:     log,
	}
}

// Run создаёт категории и администратора, если их ещё нет.
func (s *Seeder) Run(ctx context.Context) error {
	if !s.cfg.Enabled {
		return nil
	}
	if err := s.seedCategories(ctx); err != nil {
		return err
	}
	return s.seedAdmin(ctx)
}

func (s *Seeder) seedCategories(ctx context.Context) error {
	created := 0
	for _, name := range DefaultCategories {
		_, err := s.categories.GetByName(ctx, name)
		if err == nil {
			continue
		}
		if !errors.Is(err, repo.ErrNotFound) {
			return fmt.Errorf("seed: поиск категории %q: %w", name, err)
		}
		if err := s.categories.Create(ctx, course.NewCategory(name)); err != nil {
			// Категорию успел создать параллельно стартующий экземпляр
			if errors.Is(err, repo.ErrAlreadyExists) {
				continue
			}
			return fmt.Errorf("seed: создание категории %q: %w", name, err)
		}
		created++
	}
	if created > 0 {
		s.logger.Info("categories seeded", map[string]any{"created": created})
	}
	return nil
}

func (s *Seeder) seedAdmin(ctx context.Context) error {
	email := strings.TrimSpace(strings.ToLower(s.cfg.AdminEmail))
	if email == "" || s.cfg.AdminPassword == "" {
		return nil
	}

	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return fmt.Errorf("seed: поиск администратора: %w", err)
	}

	hash, err := password.Hash(s.cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("seed: хеширование пароля: %w", err)
	}

	admin := user.NewUser(email, hash, s.cfg.AdminUsername, s.adminRole)
	admin.IsEmailVerified = true
	if err := s.users.Create(ctx, admin); err != nil {
		return fmt.Errorf("seed: создание администратора: %w", err)
	}

	s.logger.Info("admin account seeded", map[string]any{
		"user_id":  admin.ID.String(),
		"username": admin.Username,
	})
	return nil
}
