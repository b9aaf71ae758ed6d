package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "course-platform/internal/domain/course"
	repo "course-platform/internal/repository/interfaces"
)

// pgCategory описывает строку таблицы categories.
type pgCategory struct {
	ID   string `gorm:"column:id;type:uuid;primaryKey"`
	Name string `gorm:"column:name;type:varchar(255);not null;uniqueIndex:idx_categories_name_unique"`
}

func (pgCategory) TableName() string {
	return "categories"
}

func (m *pgCategory) toDomain() (*domain.Category, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, err
	}
	return &domain.Category{ID: id, Name: m.Name}, nil
}

func categoriesToDomain(models []pgCategory) ([]*domain.Category, error) {
	out := make([]*domain.Category, 0, len(models))
	for i := range models {
		c, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// CategoryRepository реализует repo.CategoryRepository.
type CategoryRepository struct {
	db *gorm.DB
}

var _ repo.CategoryRepository = (*CategoryRepository)(nil)

// NewCategoryRepository создает репозиторий категорий.
func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	return duplicate(conn(ctx, r.db).Create(&pgCategory{ID: c.ID.String(), Name: c.Name}).Error)
}

func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	var model pgCategory
	if err := conn(ctx, r.db).Where("id = ?", id.String()).Take(&model).Error; err != nil {
		return nil, notFound(err)
	}
	return model.toDomain()
}

// GetByName ищет категорию по названию без учёта регистра.
func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	var model pgCategory
	if err := conn(ctx, r.db).Where("LOWER(name) = LOWER(?)", name).Take(&model).Error; err != nil {
		return nil, notFound(err)
	}
	return model.toDomain()
}

func (r *CategoryRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var models []pgCategory
	if err := conn(ctx, r.db).Where("id IN ?", uuidStrings(ids)).Order("name").Find(&models).Error; err != nil {
		return nil, err
	}
	return categoriesToDomain(models)
}

func (r *CategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	var models []pgCategory
	if err := conn(ctx, r.db).Order("name").Find(&models).Error; err != nil {
		return nil, err
	}
	return categoriesToDomain(models)
}

func (r *CategoryRepository) Update(ctx context.Context, c *domain.Category) error {
	result := conn(ctx, r.db).
		Model(&pgCategory{}).
		Where("id = ?", c.ID.String()).
		Update("name", c.Name)
	if result.Error != nil {
		return duplicate(result.Error)
	}
	if result.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).Where("id = ?", id.String()).Delete(&pgCategory{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// CountCourses возвращает число курсов в категории.
func (r *CategoryRepository) CountCourses(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := conn(ctx, r.db).
		Model(&pgCourseCategory{}).
		Where("category_id = ?", id.String()).
		Count(&n).Error
	return n, err
}
