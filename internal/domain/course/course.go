package course

import (
	"time"

	"github.com/google/uuid"
)

// Course представляет доменную модель курса.
type Course struct {
	ID           uuid.UUID // Идентификатор курса
	Name         string    // Название (уникальное)
	ImageURL     string    // Адрес картинки в объектном хранилище (может быть пустым)
	Description  string    // Описание
	CreatorID    uuid.UUID // Автор курса
	StartDate    time.Time // Дата старта
	FinishDate   time.Time // Дата окончания
	Language     string    // Язык преподавания
	Requirements string    // Требования к слушателям
	CategoryIDs  []uuid.UUID
	Categories   []Category // Заполняется при чтении
}

// NewCourse создаёт курс с новым идентификатором.
func NewCourse(name, description string, creatorID uuid.UUID, start, finish time.Time, language, requirements string) *Course {
	return &Course{
		ID:           uuid.New(),
		Name:         name,
		Description:  description,
		CreatorID:    creatorID,
		StartDate:    start.UTC(),
		FinishDate:   finish.UTC(),
		Language:     language,
		Requirements: requirements,
	}
}

// IsFinished сообщает, закончился ли курс к моменту now.
func (c *Course) IsFinished(now time.Time) bool {
	return !c.FinishDate.After(now)
}

// ImageKey возвращает ключ картинки курса в объектном хранилище.
func (c *Course) ImageKey() string {
	return ImageKey(c.ID)
}

// ImageKey возвращает ключ картинки курса с указанным идентификатором.
func ImageKey(id uuid.UUID) string {
	return "courses/" + id.String()
}

// DaysUntilStart возвращает число календарных дней (UTC) от today до даты старта курса.
func (c *Course) DaysUntilStart(today time.Time) int {
	start := DateOf(c.StartDate)
	return int(start.Sub(DateOf(today)).Hours() / 24)
}

// DateOf отбрасывает время суток, оставляя дату в UTC.
func DateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Category представляет категорию курсов.
type Category struct {
	ID   uuid.UUID
	Name string
}

// NewCategory создаёт категорию с новым идентификатором.
func NewCategory(name string) *Category {
	return &Category{ID: uuid.New(), Name: name}
}

// DiffCategories возвращает категории, которые нужно добавить и удалить,
// чтобы привести набор current к набору wanted.
func DiffCategories(current, wanted []uuid.UUID) (toAdd, toRemove []uuid.UUID) {
	cur := make(map[uuid.UUID]struct{}, len(current))
	for _, id := range current {
		cur[id] = struct{}{}
	}
	want := make(map[uuid.UUID]struct{}, len(wanted))
	for _, id := range wanted {
		if _, dup := want[id]; dup {
			continue
		}
		want[id] = struct{}{}
		if _, ok := cur[id]; !ok {
			toAdd = append(toAdd, id)
		}
	}
	for _, id := range current {
		if _, ok := want[id]; !ok {
			toRemove = append(toRemove, id)
		}
	}
	return toAdd, toRemove
}
