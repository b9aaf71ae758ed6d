package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "course-platform/internal/domain/course"
	repo "course-platform/internal/repository/interfaces"
)

// pgCourse — ORM-модель таблицы courses.
type pgCourse struct {
	ID           string    `gorm:"column:id;type:uuid;primaryKey"`
	Name         string    `gorm:"column:name;type:varchar(255);not null;uniqueIndex:idx_courses_name_unique"`
	ImageURL     string    `gorm:"column:image_url;type:varchar(1024)"`
	Description  string    `gorm:"column:description;type:varchar(1000);not null"`
	CreatorID    string    `gorm:"column:creator_id;type:uuid;not null"`
	StartDate    time.Time `gorm:"column:start_date;not null"`
	FinishDate   time.Time `gorm:"column:finish_date;not null"`
	Language     string    `gorm:"column:language;type:varchar(64)"`
	Requirements string    `gorm:"column:requirements;type:text"`
	CreatedAt    time.Time `gorm:"column:created_at;not null"`
	UpdatedAt    time.Time `gorm:"column:updated_at;not null"`
}

func (pgCourse) TableName() string {
	return "courses"
}

// pgCourseCategory — строка связующей таблицы course_categories.
type pgCourseCategory struct {
	CourseID   string `gorm:"column:course_id;type:uuid;primaryKey"`
	CategoryID string `gorm:"column:category_id;type:uuid;primaryKey"`
}

func (pgCourseCategory) TableName() string {
	return "course_categories"
}

func (m *pgCourse) toDomain() (*domain.Course, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, err
	}
	creatorID, err := uuid.Parse(m.CreatorID)
	if err != nil {
		return nil, err
	}
	return &domain.Course{
		ID:           id,
		Name:         m.Name,
		ImageURL:     m.ImageURL,
		Description:  m.Description,
		CreatorID:    creatorID,
		StartDate:    m.StartDate.UTC(),
		FinishDate:   m.FinishDate.UTC(),
		Language:     m.Language,
		Requirements: m.Requirements,
	}, nil
}

func fromDomainCourse(c *domain.Course) *pgCourse {
	return &pgCourse{
		ID:           c.ID.String(),
		Name:         c.Name,
		ImageURL:     c.ImageURL,
		Description:  c.Description,
		CreatorID:    c.CreatorID.String(),
		StartDate:    c.StartDate.UTC(),
		FinishDate:   c.FinishDate.UTC(),
		Language:     c.Language,
		Requirements: c.Requirements,
	}
}

// CourseRepository реализует repo.CourseRepository на GORM.
type CourseRepository struct {
	db *gorm.DB
}

var _ repo.CourseRepository = (*CourseRepository)(nil)

// NewCourseRepository создает репозиторий курсов.
func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// Create сохраняет курс и его связи с категориями.
func (r *CourseRepository) Create(ctx context.Context, c *domain.Course) error {
	model := fromDomainCourse(c)
	now := time.Now().UTC()
	model.CreatedAt, model.UpdatedAt = now, now

	db := conn(ctx, r.db)
	if err := db.Create(model).Error; err != nil {
		return duplicate(err)
	}
	return r.AddCategories(ctx, c.ID, c.CategoryIDs)
}

func (r *CourseRepository) one(ctx context.Context, query string, args ...interface{}) (*domain.Course, error) {
	var model pgCourse
	if err := conn(ctx, r.db).Where(query, args...).Take(&model).Error; err != nil {
		return nil, notFound(err)
	}
	courses, err := r.withCategories(ctx, []pgCourse{model})
	if err != nil {
		return nil, err
	}
	return courses[0], nil
}

// GetByID возвращает курс с категориями.
func (r *CourseRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	return r.one(ctx, "id = ?", id.String())
}

// GetByName возвращает курс по точному названию.
func (r *CourseRepository) GetByName(ctx context.Context, name string) (*domain.Course, error) {
	return r.one(ctx, "name = ?", name)
}

// List возвращает все курсы по дате старта.
func (r *CourseRepository) List(ctx context.Context) ([]*domain.Course, error) {
	var models []pgCourse
	if err := conn(ctx, r.db).Order("start_date, name").Find(&models).Error; err != nil {
		return nil, err
	}
	return r.withCategories(ctx, models)
}

// ListByCreator возвращает курсы автора.
func (r *CourseRepository) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]*domain.Course, error) {
	var models []pgCourse
	err := conn(ctx, r.db).
		Where("creator_id = ?", creatorID.String()).
		Order("start_date, name").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.withCategories(ctx, models)
}

// ListStartingOn возвращает курсы, стартующие в один из указанных дней (UTC).
func (r *CourseRepository) ListStartingOn(ctx context.Context, dates []time.Time) ([]*domain.Course, error) {
	if len(dates) == 0 {
		return nil, nil
	}

	db := conn(ctx, r.db)
	cond := db.Where("1 = 0")
	for _, d := range dates {
		day := domain.DateOf(d)
		cond = cond.Or("start_date >= ? AND start_date < ?", day, day.AddDate(0, 0, 1))
	}

	var models []pgCourse
	if err := db.Where(cond).Order("start_date").Find(&models).Error; err != nil {
		return nil, err
	}
	return r.withCategories(ctx, models)
}

// Update обновляет поля курса. Категории меняются через AddCategories/RemoveCategories.
func (r *CourseRepository) LockForUpdate(ctx context.Context, id uuid.UUID) error {
	return lockRow(ctx, r.db, &pgCourse{}, id)
}

func (r *CourseRepository) Update(ctx context.Context, c *domain.Course) error {
	model := fromDomainCourse(c)
	result := conn(ctx, r.db).
		Model(&pgCourse{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":         model.Name,
			"image_url":    model.ImageURL,
			"description":  model.Description,
			"start_date":   model.StartDate,
			"finish_date":  model.FinishDate,
			"language":     model.Language,
			"requirements": model.Requirements,
			"updated_at":   time.Now().UTC(),
		})
	if result.Error != nil {
		return duplicate(result.Error)
	}
	if result.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// AddCategories добавляет связи курса с категориями, существующие связи пропускаются.
func (r *CourseRepository) AddCategories(ctx context.Context, courseID uuid.UUID, categoryIDs []uuid.UUID) error {
	if len(categoryIDs) == 0 {
		return nil
	}
	rows := make([]pgCourseCategory, 0, len(categoryIDs))
	for _, id := range categoryIDs {
		rows = append(rows, pgCourseCategory{CourseID: courseID.String(), CategoryID: id.String()})
	}
	return conn(ctx, r.db).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
}

// RemoveCategories удаляет связи курса с категориями.
func (r *CourseRepository) RemoveCategories(ctx context.Context, courseID uuid.UUID, categoryIDs []uuid.UUID) error {
	if len(categoryIDs) == 0 {
		return nil
	}
	return conn(ctx, r.db).
		Where("course_id = ? AND category_id IN ?", courseID.String(), uuidStrings(categoryIDs)).
		Delete(&pgCourseCategory{}).Error
}

// Delete удаляет курс.
func (r *CourseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := conn(ctx, r.db)
	// Связи удаляем явно: в тестовой SQLite внешние ключи могут быть выключены
	if err := db.Where("course_id = ?", id.String()).Delete(&pgCourseCategory{}).Error; err != nil {
		return err
	}
	result := db.Where("id = ?", id.String()).Delete(&pgCourse{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// courseCategoryRow содержит категорию вместе с курсом, к которому она привязана.
type courseCategoryRow struct {
	CourseID string
	ID       string
	Name     string
}

// withCategories маппит курсы в доменные модели и подгружает их категории одним запросом.
func (r *CourseRepository) withCategories(ctx context.Context, models []pgCourse) ([]*domain.Course, error) {
	if len(models) == 0 {
		return nil, nil
	}

	ids := make([]string, len(models))
	for i := range models {
		ids[i] = models[i].ID
	}

	var rows []courseCategoryRow
	err := conn(ctx, r.db).
		Table("course_categories").
		Select("course_categories.course_id AS course_id, categories.id AS id, categories.name AS name").
		Joins("JOIN categories ON categories.id = course_categories.category_id").
		Where("course_categories.course_id IN ?", ids).
		Order("categories.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	byCourse := make(map[string][]domain.Category, len(models))
	for _, row := range rows {
		id, err := uuid.Parse(row.ID)
		if err != nil {
			return nil, err
		}
		byCourse[row.CourseID] = append(byCourse[row.CourseID], domain.Category{ID: id, Name: row.Name})
	}

	courses := make([]*domain.Course, 0, len(models))
	for i := range models {
		c, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		c.Categories = byCourse[models[i].ID]
		c.CategoryIDs = make([]uuid.UUID, 0, len(c.Categories))
		for _, cat := range c.Categories {
			c.CategoryIDs = append(c.CategoryIDs, cat.ID)
		}
		courses = append(courses, c)
	}
	return courses, nil
}
