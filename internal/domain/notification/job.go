package notification

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// JobStatus — состояние отложенной задачи отправки письма.
type JobStatus string

const (
	JobPending    JobStatus = "pending"    // ждёт наступления RunAt
	JobProcessing JobStatus = "processing" // взята воркером
	JobSent       JobStatus = "sent"       // письмо отправлено
	JobFailed     JobStatus = "failed"     // попытки исчерпаны
)

// KindCourseNotification — напоминание о скором старте курса.
const KindCourseNotification = "course_notification"

// EmailJob — отложенная отправка письма, хранится в БД.
type EmailJob struct {
	ID        uuid.UUID
	Kind      string         // имя шаблона письма
	Recipient string         // email получателя
	Subject   string         // тема письма
	Payload   map[string]any // данные для шаблона
	DedupKey  string         // ключ защиты от повторной постановки
	RunAt     time.Time      // когда отправлять
	Status    JobStatus
	Attempts  int
	LastError string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CourseNotificationPayload содержит данные письма-напоминания.
type CourseNotificationPayload struct {
	CourseName string
	DaysBefore int
}

// CourseNotificationSubject возвращает тему письма-напоминания.
func CourseNotificationSubject(courseName string, daysBefore int) string {
	return fmt.Sprintf("Reminder: %s starts in %d day(s)", courseName, daysBefore)
}

// CourseNotificationDedupKey возвращает ключ, уникальный для пары (курс, пользователь) и дня напоминания.
func CourseNotificationDedupKey(courseID, userID uuid.UUID, daysBefore int) string {
	return fmt.Sprintf("course-notification:%s:%s:%d", courseID, userID, daysBefore)
}

// NewCourseNotificationJob создаёт задачу напоминания о старте курса.
func NewCourseNotificationJob(courseID, userID uuid.UUID, email, courseName string, daysBefore int, runAt, now time.Time) *EmailJob {
	return &EmailJob{
		ID:        uuid.New(),
		Kind:      KindCourseNotification,
		Recipient: email,
		Subject:   CourseNotificationSubject(courseName, daysBefore),
		Payload: map[string]any{
			"CourseName": courseName,
			"DaysBefore": daysBefore,
		},
		DedupKey:  CourseNotificationDedupKey(courseID, userID, daysBefore),
		RunAt:     runAt.UTC(),
		Status:    JobPending,
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
}
