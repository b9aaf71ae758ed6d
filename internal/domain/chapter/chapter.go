package chapter

import (
	"github.com/google/uuid"
)

// Chapter представляет главу курса.
type Chapter struct {
	ID                           uuid.UUID // Идентификатор главы
	CourseID                     uuid.UUID // Курс, которому принадлежит глава
	Name                         string    // Название (уникальное в пределах курса)
	EstimatedLearningTimeMinutes int       // Оценка времени изучения
	Number                       int       // Позиция главы в курсе, начиная с 1
}

// SubChapter представляет подглаву (урок) внутри главы.
type SubChapter struct {
	ID                           uuid.UUID // Идентификатор подглавы
	ChapterID                    uuid.UUID // Глава, которой принадлежит подглава
	Name                         string    // Название (уникальное в пределах главы)
	Content                      string    // Содержимое урока
	EstimatedLearningTimeMinutes int       // Оценка времени изучения
	Number                       int       // Позиция подглавы в главе, начиная с 1
}
