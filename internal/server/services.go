package server

import (
	"gorm.io/gorm"

	"course-platform/internal/config"
	domain "course-platform/internal/domain/user"
	repo "course-platform/internal/repository/interfaces"
	pgrepo "course-platform/internal/repository/postgres"
	"course-platform/internal/storage"
	authuc "course-platform/internal/usecase/auth"
	banuc "course-platform/internal/usecase/ban"
	categoryuc "course-platform/internal/usecase/category"
	chapteruc "course-platform/internal/usecase/chapter"
	courseuc "course-platform/internal/usecase/course"
	feedbackuc "course-platform/internal/usecase/feedback"
	subchapteruc "course-platform/internal/usecase/subchapter"
	useruc "course-platform/internal/usecase/user"
	jwtsvc "course-platform/pkg/jwt"
	"course-platform/pkg/logger"
)

// Repositories содержит репозитории, из которых собираются сервисы.
type Repositories struct {
	Tx            repo.Transactor
	Users         repo.UserRepository
	Verifications repo.EmailVerificationRepository
	Categories    repo.CategoryRepository
	Courses       repo.CourseRepository
	Chapters      repo.ChapterRepository
	SubChapters   repo.SubChapterRepository
	Registrations repo.RegistrationRepository
	Feedbacks     repo.FeedbackRepository
	Bans          repo.BanRepository
	Jobs          repo.EmailJobRepository
}

// PostgresRepositories создаёт репозитории поверх одного подключения gorm.
func PostgresRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Tx:            pgrepo.NewTransactor(db),
		Users:         pgrepo.NewUserRepository(db),
		Verifications: pgrepo.NewEmailVerificationRepository(db),
		Categories:    pgrepo.NewCategoryRepository(db),
		Courses:       pgrepo.NewCourseRepository(db),
		Chapters:      pgrepo.NewChapterRepository(db),
		SubChapters:   pgrepo.NewSubChapterRepository(db),
		Registrations: pgrepo.NewRegistrationRepository(db),
		Feedbacks:     pgrepo.NewFeedbackRepository(db),
		Bans:          pgrepo.NewBanRepository(db),
		Jobs:          pgrepo.NewEmailJobRepository(db),
	}
}

// Services содержит usecase-сервисы приложения.
type Services struct {
	JWT         jwtsvc.Service
	Auth        authuc.Service
	Users       useruc.Service
	Categories  categoryuc.Service
	Courses     courseuc.Service
	Chapters    chapteruc.Service
	SubChapters subchapteruc.Service
	Bans        banuc.Service
	Feedbacks   feedbackuc.Service
}

// NewServices собирает usecase-сервисы из репозиториев и внешних зависимостей.
func NewServices(
	cfg *config.Config,
	r Repositories,
	emails authuc.EmailSender,
	images storage.ObjectStorage,
	log logger.Logger,
) *Services {
	jwt := jwtsvc.NewService(&cfg.JWT)
	return &Services{
		JWT: jwt,
		Auth: authuc.NewService(r.Users, r.Verifications, r.Tx, jwt, emails, authuc.Config{
			UserRole:        domain.Role(cfg.Roles.User),
			VerificationTTL: cfg.Email.VerificationTTL,
			MaxAttempts:     cfg.Email.VerificationMaxAttempts,
			PublicURL:       cfg.PublicURL,
		}, log),
		Users:       useruc.NewService(r.Users, r.Courses, r.Registrations, r.Bans, r.Tx, domain.Role(cfg.Roles.Admin)),
		Categories:  categoryuc.NewService(r.Categories),
		Courses:     courseuc.NewService(r.Courses, r.Categories, r.Users, r.Tx, images, log),
		Chapters:    chapteruc.NewService(r.Chapters, r.Courses, r.Tx),
		SubChapters: subchapteruc.NewService(r.SubChapters, r.Chapters, r.Tx),
		Bans:        banuc.NewService(r.Bans, r.Registrations, r.Users, r.Courses, r.Tx),
		Feedbacks:   feedbackuc.NewService(r.Feedbacks, r.Registrations, r.Courses),
	}
}
