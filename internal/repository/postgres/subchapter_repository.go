package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "course-platform/internal/domain/chapter"
	repo "course-platform/internal/repository/interfaces"
)

// pgSubChapter описывает строку таблицы subchapters.
type pgSubChapter struct {
	ID                           string `gorm:"column:id;type:uuid;primaryKey"`
	ChapterID                    string `gorm:"column:chapter_id;type:uuid;not null;index;uniqueIndex:uq_subchapters_chapter_name"`
	Name                         string `gorm:"column:name;type:varchar(255);not null;uniqueIndex:uq_subchapters_chapter_name"`
	Content                      string `gorm:"column:content;type:text;not null"`
	EstimatedLearningTimeMinutes int    `gorm:"column:estimated_learning_time_minutes;not null"`
	Number                       int    `gorm:"column:number;not null"`
}

func (pgSubChapter) TableName() string {
	return "subchapters"
}

func (m *pgSubChapter) toDomain() (*domain.SubChapter, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, err
	}
	chapterID, err := uuid.Parse(m.ChapterID)
	if err != nil {
		return nil, err
	}
	return &domain.SubChapter{
		ID:                           id,
		ChapterID:                    chapterID,
		Name:                         m.Name,
		Content:                      m.Content,
		EstimatedLearningTimeMinutes: m.EstimatedLearningTimeMinutes,
		Number:                       m.Number,
	}, nil
}

func subChaptersToDomain(models []pgSubChapter) ([]*domain.SubChapter, error) {
	out := make([]*domain.SubChapter, 0, len(models))
	for i := range models {
		sc, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, nil
}

// SubChapterRepository реализует repo.SubChapterRepository.
type SubChapterRepository struct {
	db *gorm.DB
}

var _ repo.SubChapterRepository = (*SubChapterRepository)(nil)

// NewSubChapterRepository создает репозиторий подглав.
func NewSubChapterRepository(db *gorm.DB) *SubChapterRepository {
	return &SubChapterRepository{db: db}
}

func (r *SubChapterRepository) Create(ctx context.Context, sc *domain.SubChapter) error {
	err := conn(ctx, r.db).Create(&pgSubChapter{
		ID:                           sc.ID.String(),
		ChapterID:                    sc.ChapterID.String(),
		Name:                         sc.Name,
		Content:                      sc.Content,
		EstimatedLearningTimeMinutes: sc.EstimatedLearningTimeMinutes,
		Number:                       sc.Number,
	}).Error
	return duplicate(err)
}

func (r *SubChapterRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SubChapter, error) {
	var model pgSubChapter
	if err := conn(ctx, r.db).Where("id = ?", id.String()).Take(&model).Error; err != nil {
		return nil, notFound(err)
	}
	return model.toDomain()
}

func (r *SubChapterRepository) GetByNameInChapter(ctx context.Context, chapterID uuid.UUID, name string) (*domain.SubChapter, error) {
	var model pgSubChapter
	err := conn(ctx, r.db).
		Where("chapter_id = ? AND name = ?", chapterID.String(), name).
		Take(&model).Error
	if err != nil {
		return nil, notFound(err)
	}
	return model.toDomain()
}

func (r *SubChapterRepository) List(ctx context.Context) ([]*domain.SubChapter, error) {
	var models []pgSubChapter
	if err := conn(ctx, r.db).Order("chapter_id, number").Find(&models).Error; err != nil {
		return nil, err
	}
	return subChaptersToDomain(models)
}

func (r *SubChapterRepository) ListByChapter(ctx context.Context, chapterID uuid.UUID) ([]*domain.SubChapter, error) {
	var models []pgSubChapter
	err := conn(ctx, r.db).
		Where("chapter_id = ?", chapterID.String()).
		Order("number").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return subChaptersToDomain(models)
}

func (r *SubChapterRepository) Update(ctx context.Context, sc *domain.SubChapter) error {
	result := conn(ctx, r.db).
		Model(&pgSubChapter{}).
		Where("id = ?", sc.ID.String()).
		Updates(map[string]interface{}{
			"name":                            sc.Name,
			"content":                         sc.Content,
			"estimated_learning_time_minutes": sc.EstimatedLearningTimeMinutes,
			"number":                          sc.Number,
		})
	if result.Error != nil {
		return duplicate(result.Error)
	}
	if result.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *SubChapterRepository) UpdateNumber(ctx context.Context, id uuid.UUID, number int) error {
	result := conn(ctx, r.db).
		Model(&pgSubChapter{}).
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

func (r *SubChapterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).Where("id = ?", id.String()).Delete(&pgSubChapter{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
