package processor

import (
	"context"

	"github.com/robfig/cron/v3"

	"goaguide/background-worker-service/internal/app/background-worker/service"
	"goaguide/pkg/logger"
)

// CronScheduler периодически сверяет business_count всех категорий
type CronScheduler struct {
	cron       *cron.Cron
	recountSvc service.RecountServiceInterface
}

func NewCronScheduler(recountSvc service.RecountServiceInterface) *CronScheduler {
	c := cron.New(cron.WithLogger(cron.PrintfLogger(logger.PrintfLogger{})))

	return &CronScheduler{
		cron:       c,
		recountSvc: recountSvc,
	}
}

// Start регистрирует задачу по расписанию (например, "@every 1h") и сразу выполняет первый пересчет
func (s *CronScheduler) Start(ctx context.Context, schedule string) error {
	logger.Info().Str("schedule", schedule).Msg("Starting cron scheduler")

	_, err := s.cron.AddFunc(schedule, func() {
		logger.Info().Msg("Cron job triggered: recounting categories")

		if err := s.recountSvc.RecountAll(ctx, service.TriggerCron); err != nil {
			logger.Error().Err(err).Msg("Failed to recount categories")
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()

	if err := s.recountSvc.RecountAll(ctx, service.TriggerStartup); err != nil {
		logger.Warn().Err(err).Msg("Failed initial categories recount")
	}

	return nil
}

func (s *CronScheduler) Stop() {
	logger.Info().Msg("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info().Msg("Cron scheduler stopped")
}

func (s *CronScheduler) GetEntries() []cron.Entry {
	return s.cron.Entries()
}
