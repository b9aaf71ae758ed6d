package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "course-platform/internal/domain/enrollment"
	repo "course-platform/internal/repository/interfaces"
)

// pgRegistration — ORM-модель таблицы registrations.
type pgRegistration struct {
	ID           string    `gorm:"column:id;type:uuid;primaryKey"`
	UserID       string    `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_registrations_user_course"`
	CourseID     string    `gorm:"column:course_id;type:uuid;not null;uniqueIndex:idx_registrations_user_course"`
	RegisteredAt time.Time `gorm:"column:registered_at;not null"`
}

func (pgRegistration) TableName() string {
	return "registrations"
}

func (m *pgRegistration) toDomain() (*domain.Registration, error) {
	ids, err := parseUUIDs(m.ID, m.UserID, m.CourseID)
	if err != nil {
		return nil, err
	}
	return &domain.Registration{ID: ids[0], UserID: ids[1], CourseID: ids[2], RegisteredAt: m.RegisteredAt.UTC()}, nil
}

// pgFeedback описывает строку таблицы feedbacks.
type pgFeedback struct {
	ID        string    `gorm:"column:id;type:uuid;primaryKey"`
	UserID    string    `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_feedbacks_user_course"`
	CourseID  string    `gorm:"column:course_id;type:uuid;not null;uniqueIndex:idx_feedbacks_user_course"`
	Content   string    `gorm:"column:content;type:varchar(300);not null"`
	Rating    int       `gorm:"column:rating;not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

func (pgFeedback) TableName() string {
	return "feedbacks"
}

func (m *pgFeedback) toDomain() (*domain.Feedback, error) {
	ids, err := parseUUIDs(m.ID, m.UserID, m.CourseID)
	if err != nil {
		return nil, err
	}
	return &domain.Feedback{
		ID:        ids[0],
		UserID:    ids[1],
		CourseID:  ids[2],
		Content:   m.Content,
		Rating:    m.Rating,
		CreatedAt: m.CreatedAt.UTC(),
	}, nil
}

// pgBan описывает строку таблицы course_bans.
type pgBan struct {
	ID       string    `gorm:"column:id;type:uuid;primaryKey"`
	UserID   string    `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_course_bans_user_course"`
	CourseID string    `gorm:"column:course_id;type:uuid;not null;uniqueIndex:idx_course_bans_user_course"`
	Reason   string    `gorm:"column:reason;type:varchar(255);not null"`
	BannedAt time.Time `gorm:"column:banned_at;not null"`
}

func (pgBan) TableName() string {
	return "course_bans"
}

func (m *pgBan) toDomain() (*domain.Ban, error) {
	ids, err := parseUUIDs(m.ID, m.UserID, m.CourseID)
	if err != nil {
		return nil, err
	}
	return &domain.Ban{ID: ids[0], UserID: ids[1], CourseID: ids[2], Reason: m.Reason, BannedAt: m.BannedAt.UTC()}, nil
}

func parseUUIDs(values ...string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, len(values))
	for i, v := range values {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, err
		}
		out[i] = id
	}
	return out, nil
}

// mapAll маппит срез ORM-моделей в доменные.
func mapAll[M any, D any](models []M, fn func(*M) (D, error)) ([]D, error) {
	out := make([]D, 0, len(models))
	for i := range models {
		d, err := fn(&models[i])
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// RegistrationRepository реализует repo.RegistrationRepository.
type RegistrationRepository struct {
	db *gorm.DB
}

var _ repo.RegistrationRepository = (*RegistrationRepository)(nil)

// NewRegistrationRepository создает репозиторий записей на курсы.
func NewRegistrationRepository(db *gorm.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

func (r *RegistrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	err := conn(ctx, r.db).Create(&pgRegistration{
		ID:           reg.ID.String(),
		UserID:       reg.UserID.String(),
		CourseID:     reg.CourseID.String(),
		RegisteredAt: reg.RegisteredAt.UTC(),
	}).Error
	return duplicate(err)
}

func (r *RegistrationRepository) Get(ctx context.Context, userID, courseID uuid.UUID) (*domain.Registration, error) {
	var model pgRegistration
	err := conn(ctx, r.db).
		Where("user_id = ? AND course_id = ?", userID.String(), courseID.String()).
		Take(&model).Error
	if err != nil {
		return nil, notFound(err)
	}
	return model.toDomain()
}

func (r *RegistrationRepository) Delete(ctx context.Context, userID, courseID uuid.UUID) error {
	result := conn(ctx, r.db).
		Where("user_id = ? AND course_id = ?", userID.String(), courseID.String()).
		Delete(&pgRegistration{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *RegistrationRepository) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*domain.Registration, error) {
	var models []pgRegistration
	err := conn(ctx, r.db).
		Where("course_id = ?", courseID.String()).
		Order("registered_at").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return mapAll(models, (*pgRegistration).toDomain)
}

func (r *RegistrationRepository) ListByUser(ctx context.Context, userID uuid.UUID, page repo.PageRequest) ([]*domain.Registration, int64, error) {
	page = page.Normalize()
	q := conn(ctx, r.db).Model(&pgRegistration{}).Where("user_id = ?", userID.String()).
		Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []pgRegistration
	if err := q.Order("registered_at DESC").Offset(page.Offset()).Limit(page.PageSize).Find(&models).Error; err != nil {
		return nil, 0, err
	}
	regs, err := mapAll(models, (*pgRegistration).toDomain)
	if err != nil {
		return nil, 0, err
	}
	return regs, total, nil
}

// FeedbackRepository реализует repo.FeedbackRepository.
type FeedbackRepository struct {
	db *gorm.DB
}

var _ repo.FeedbackRepository = (*FeedbackRepository)(nil)

// NewFeedbackRepository создает репозиторий отзывов.
func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

func (r *FeedbackRepository) Create(ctx context.Context, f *domain.Feedback) error {
	err := conn(ctx, r.db).Create(&pgFeedback{
		ID:        f.ID.String(),
		UserID:    f.UserID.String(),
		CourseID:  f.CourseID.String(),
		Content:   f.Content,
		Rating:    f.Rating,
		CreatedAt: f.CreatedAt.UTC(),
	}).Error
	return duplicate(err)
}

func (r *FeedbackRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Feedback, error) {
	var model pgFeedback
	if err := conn(ctx, r.db).Where("id = ?", id.String()).Take(&model).Error; err != nil {
		return nil, notFound(err)
	}
	return model.toDomain()
}

func (r *FeedbackRepository) GetByUserAndCourse(ctx context.Context, userID, courseID uuid.UUID) (*domain.Feedback, error) {
	var model pgFeedback
	err := conn(ctx, r.db).
		Where("user_id = ? AND course_id = ?", userID.String(), courseID.String()).
		Take(&model).Error
	if err != nil {
		return nil, notFound(err)
	}
	return model.toDomain()
}

func (r *FeedbackRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Feedback, error) {
	return r.listWhere(ctx, "user_id = ?", userID.String())
}

func (r *FeedbackRepository) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*domain.Feedback, error) {
	return r.listWhere(ctx, "course_id = ?", courseID.String())
}

func (r *FeedbackRepository) listWhere(ctx context.Context, query string, args ...interface{}) ([]*domain.Feedback, error) {
	var models []pgFeedback
	if err := conn(ctx, r.db).Where(query, args...).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	return mapAll(models, (*pgFeedback).toDomain)
}

func (r *FeedbackRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).Where("id = ?", id.String()).Delete(&pgFeedback{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// BanRepository реализует repo.BanRepository.
type BanRepository struct {
	db *gorm.DB
}

var _ repo.BanRepository = (*BanRepository)(nil)

// NewBanRepository создает репозиторий блокировок.
func NewBanRepository(db *gorm.DB) *BanRepository {
	return &BanRepository{db: db}
}

func (r *BanRepository) Create(ctx context.Context, b *domain.Ban) error {
	err := conn(ctx, r.db).Create(&pgBan{
		ID:       b.ID.String(),
		UserID:   b.UserID.String(),
		CourseID: b.CourseID.String(),
		Reason:   b.Reason,
		BannedAt: b.BannedAt.UTC(),
	}).Error
	return duplicate(err)
}

func (r *BanRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Ban, error) {
	var model pgBan
	if err := conn(ctx, r.db).Where("id = ?", id.String()).Take(&model).Error; err != nil {
		return nil, notFound(err)
	}
	return model.toDomain()
}

func (r *BanRepository) Get(ctx context.Context, userID, courseID uuid.UUID) (*domain.Ban, error) {
	var model pgBan
	err := conn(ctx, r.db).
		Where("user_id = ? AND course_id = ?", userID.String(), courseID.String()).
		Take(&model).Error
	if err != nil {
		return nil, notFound(err)
	}
	return model.toDomain()
}

func (r *BanRepository) List(ctx context.Context) ([]*domain.Ban, error) {
	var models []pgBan
	if err := conn(ctx, r.db).Order("banned_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	return mapAll(models, (*pgBan).toDomain)
}

func (r *BanRepository) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*domain.Ban, error) {
	var models []pgBan
	err := conn(ctx, r.db).
		Where("course_id = ?", courseID.String()).
		Order("banned_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return mapAll(models, (*pgBan).toDomain)
}

func (r *BanRepository) ListByUser(ctx context.Context, userID uuid.UUID, page repo.PageRequest) ([]*domain.Ban, int64, error) {
	page = page.Normalize()
	q := conn(ctx, r.db).Model(&pgBan{}).Where("user_id = ?", userID.String()).
		Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []pgBan
	if err := q.Order("banned_at DESC").Offset(page.Offset()).Limit(page.PageSize).Find(&models).Error; err != nil {
		return nil, 0, err
	}
	bans, err := mapAll(models, (*pgBan).toDomain)
	if err != nil {
		return nil, 0, err
	}
	return bans, total, nil
}

func (r *BanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).Where("id = ?", id.String()).Delete(&pgBan{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
