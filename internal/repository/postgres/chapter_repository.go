package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "course-platform/internal/domain/chapter"
	repo "course-platform/internal/repository/interfaces"
)

// pgChapter описывает строку таблицы chapters.
// Уникального индекса на (course_id, number) нет: явная перестановка сохраняет номера как есть.
type pgChapter struct {
	ID                           string `gorm:"column:id;type:uuid;primaryKey"`
	CourseID                     string `gorm:"column:course_id;type:uuid;not null;index;uniqueIndex:uq_chapters_course_name"`
	Name                         string `gorm:"column:name;type:varchar(255);not null;uniqueIndex:uq_chapters_course_name"`
	EstimatedLearningTimeMinutes int    `gorm:"column:estimated_learning_time_minutes;not null"`
	Number                       int    `gorm:"column:number;not null"`
}

func (pgChapter) TableName() string {
	return "chapters"
}

func (m *pgChapter) toDomain() (*domain.Chapter, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, err
	}
	courseID, err := uuid.Parse(m.CourseID)
	if err != nil {
		return nil, err
	}
	return &domain.Chapter{
		ID:                           id,
		CourseID:                     courseID,
		Name:                         m.Name,
		EstimatedLearningTimeMinutes: m.EstimatedLearningTimeMinutes,
		Number:                       m.Number,
	}, nil
}

func chaptersToDomain(models []pgChapter) ([]*domain.Chapter, error) {
	out := make([]*domain.Chapter, 0, len(models))
	for i := range models {
		ch, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, ch)
	}
	return out, nil
}

// ChapterRepository реализует repo.ChapterRepository.
type ChapterRepository struct {
	db *gorm.DB
}

var _ repo.ChapterRepository = (*ChapterRepository)(nil)

// NewChapterRepository создает репозиторий глав.
func NewChapterRepository(db *gorm.DB) *ChapterRepository {
	return &ChapterRepository{db: db}
}

func (r *ChapterRepository) Create(ctx context.Context, ch *domain.Chapter) error {
	err := conn(ctx, r.db).Create(&pgChapter{
		ID:                           ch.ID.String(),
		CourseID:                     ch.CourseID.String(),
		Name:                         ch.Name,
		EstimatedLearningTimeMinutes: ch.EstimatedLearningTimeMinutes,
		Number:                       ch.Number,
	}).Error
	return duplicate(err)
}

func (r *ChapterRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Chapter, error) {
	var model pgChapter
	if err := conn(ctx, r.db).Where("id = ?", id.String()).Take(&model).Error; err != nil {
		return nil, notFound(err)
	}
	return model.toDomain()
}

func (r *ChapterRepository) GetByNameInCourse(ctx context.Context, courseID uuid.UUID, name string) (*domain.Chapter, error) {
	var model pgChapter
	err := conn(ctx, r.db).
		Where("course_id = ? AND name = ?", courseID.String(), name).
		Take(&model).Error
	if err != nil {
		return nil, notFound(err)
	}
	return model.toDomain()
}

func (r *ChapterRepository) LockForUpdate(ctx context.Context, id uuid.UUID) error {
	return lockRow(ctx, r.db, &pgChapter{}, id)
}

func (r *ChapterRepository) List(ctx context.Context) ([]*domain.Chapter, error) {
	var models []pgChapter
	if err := conn(ctx, r.db).Order("course_id, number").Find(&models).Error; err != nil {
		return nil, err
	}
	return chaptersToDomain(models)
}

func (r *ChapterRepository) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*domain.Chapter, error) {
	var models []pgChapter
	err := conn(ctx, r.db).
		Where("course_id = ?", courseID.String()).
		Order("number").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return chaptersToDomain(models)
}

func (r *ChapterRepository) Update(ctx context.Context, ch *domain.Chapter) error {
	result := conn(ctx, r.db).
		Model(&pgChapter{}).
		Where("id = ?", ch.ID.String()).
		Updates(map[string]interface{}{
			"name":                            ch.Name,
			"estimated_learning_time_minutes": ch.EstimatedLearningTimeMinutes,
			"number":                          ch.Number,
		})
	if result.Error != nil {
		return duplicate(result.Error)
	}
	if result.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ChapterRepository) UpdateNumber(ctx context.Context, id uuid.UUID, number int) error {
	result := conn(ctx, r.db).
		Model(&pgChapter{}).
		Where("id = ?", id.String()).
		Update("number", number)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// Delete удаляет главу вместе с её подглавами.
func (r *ChapterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := conn(ctx, r.db)
	if err := db.Where("chapter_id = ?", id.String()).Delete(&pgSubChapter{}).Error; err != nil {
		return err
	}
	result := db.Where("id = ?", id.String()).Delete(&pgChapter{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
