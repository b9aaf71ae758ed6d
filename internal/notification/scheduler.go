// Package notification планирует и доставляет напоминания о старте курсов.
package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"course-platform/internal/domain/course"
	domain "course-platform/internal/domain/notification"
	repo "course-platform/internal/repository/interfaces"
	"course-platform/pkg/logger"
)

// CourseLister находит курсы, стартующие через заданное число дней.
type CourseLister interface {
	ListStartingInDays(ctx context.Context, today time.Time, days []int) ([]*course.Course, error)
}

// SchedulerConfig — параметры планировщика напоминаний.
type SchedulerConfig struct {
	Days   []int // за сколько дней до старта напоминать
	Hour   int   // час отправки, UTC
	Minute int   // минута отправки
}

// Scheduler ставит в очередь письма-напоминания для записанных на курс пользователей.
type Scheduler struct {
	courses       CourseLister
	registrations repo.RegistrationRepository
	users         repo.UserRepository
	jobs          repo.EmailJobRepository
	cfg           SchedulerConfig
	logger        logger.Logger
	now           func() time.Time
}

// NewScheduler создаёт планировщик.
func NewScheduler(
	courses CourseLister,
	registrations repo.RegistrationRepository,
	users repo.UserRepository,
	jobs repo.EmailJobRepository,
	cfg SchedulerConfig,
	log logger.Logger,
) *Scheduler {
	return &Scheduler{
		courses:       courses,
		registrations: registrations,
		users:         users,
		jobs:          jobs,
		cfg:           cfg,
		logger:        log,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// DeliveryTime возвращает момент отправки: дата старта минус daysBefore дней, в hour:minute UTC.
func DeliveryTime(startDate time.Time, daysBefore, hour, minute int) time.Time {
	day := course.DateOf(startDate).AddDate(0, 0, -daysBefore)
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

// Run выполняет планирование на текущую дату.
func (s *Scheduler) Run(ctx context.Context) {
	today := s.now()
	n, err := s.RunOnce(ctx, today)
	if err != nil {
		s.logger.Error("course notification scheduling failed", map[string]any{
			"date": course.DateOf(today).Format(time.DateOnly),
			"err":  err.Error(),
		})
		return
	}
	s.logger.Info("course notifications scheduled", map[string]any{
		"date":     course.DateOf(today).Format(time.DateOnly),
		"enqueued": n,
	})
}

// RunOnce ставит в очередь напоминания по курсам, стартующим через каждый из дней конфигурации
// относительно today. Повторный запуск в тот же день не создаёт дубликатов.
// Возвращает число добавленных задач.
func (s *Scheduler) RunOnce(ctx context.Context, today time.Time) (int64, error) {
	courses, err := s.courses.ListStartingInDays(ctx, today, s.cfg.Days)
	if err != nil {
		return 0, fmt.Errorf("failed to list upcoming courses: %w", err)
	}

	now := s.now()
	var total int64
	for _, c := range courses {
		jobs, err := s.jobsForCourse(ctx, c, today, now)
		if err != nil {
			return total, err
		}
		if len(jobs) == 0 {
			continue
		}
		n, err := s.jobs.Enqueue(ctx, jobs)
		if err != nil {
			return total, fmt.Errorf("failed to enqueue notifications for course %s: %w", c.ID, err)
		}
		total += n
	}
	return total, nil
}

func (s *Scheduler) jobsForCourse(ctx context.Context, c *course.Course, today, now time.Time) ([]*domain.EmailJob, error) {
	regs, err := s.registrations.ListByCourse(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations for course %s: %w", c.ID, err)
	}
	if len(regs) == 0 {
		return nil, nil
	}

	seen := make(map[uuid.UUID]struct{}, len(regs))
	ids := make([]uuid.UUID, 0, len(regs))
	for _, r := range regs {
		if _, ok := seen[r.UserID]; ok {
			continue
		}
		seen[r.UserID] = struct{}{}
		ids = append(ids, r.UserID)
	}

	users, err := s.users.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load registered users: %w", err)
	}

	daysBefore := c.DaysUntilStart(today)
	runAt := DeliveryTime(c.StartDate, daysBefore, s.cfg.Hour, s.cfg.Minute)
	jobs := make([]*domain.EmailJob, 0, len(users))
	for _, u := range users {
		jobs = append(jobs, domain.NewCourseNotificationJob(c.ID, u.ID, u.Email, c.Name, daysBefore, runAt, now))
	}
	return jobs, nil
}
