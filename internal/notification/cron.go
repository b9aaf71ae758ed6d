package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"course-platform/pkg/logger"
)

// Cron запускает планировщик напоминаний по расписанию (UTC).
type Cron struct {
	c      *cron.Cron
	logger logger.Logger
}

// NewCron регистрирует запуск scheduler по расписанию spec (формат robfig/cron, например "@daily").
func NewCron(spec string, scheduler *Scheduler, log logger.Logger) (*Cron, error) {
	c := cron.New(cron.WithLocation(time.UTC))
	_, err := c.AddFunc(spec, func() {
		log.Info("[SCHEDULER] course notification run started", map[string]any{"spec": spec})
		scheduler.Run(context.Background())
	})
	if err != nil {
		return nil, fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}
	return &Cron{c: c, logger: log}, nil
}

// Run запускает расписание и блокируется до отмены ctx.
// При остановке дожидается завершения текущего запуска.
func (c *Cron) Run(ctx context.Context) error {
	c.c.Start()
	c.logger.Info("[SCHEDULER] started", nil)

	<-ctx.Done()
	<-c.c.Stop().Done()
	c.logger.Info("[SCHEDULER] stopped", nil)
	return nil
}
