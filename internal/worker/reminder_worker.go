package worker

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/AlexMorrigan04/pilotforce-api/internal/config"
	"github.com/AlexMorrigan04/pilotforce-api/internal/service"
)

// StartReminderWorker schedules the booking reminder sweep. Returns the cron
// runner so the caller can stop it on shutdown; returns nil when disabled.
func StartReminderWorker(cfg config.ReminderConfig, bookings *service.BookingService, logger *zap.Logger) *cron.Cron {
	if !cfg.Enabled {
		logger.Info("booking reminder sweep disabled")
		return nil
	}

	lookahead := time.Duration(cfg.LookaheadHrs) * time.Hour
	if lookahead <= 0 {
		lookahead = 24 * time.Hour
	}

	runner := cron.New()
	_, err := runner.AddFunc(cfg.CronSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		sent, err := bookings.SendReminders(ctx, lookahead)
		if err != nil {
			logger.Error("reminder sweep failed", zap.Error(err))
			return
		}
		if sent > 0 {
			logger.Info("booking reminders sent", zap.Int("count", sent))
		}
	})
	if err != nil {
		logger.Error("invalid reminder cron spec", zap.String("spec", cfg.CronSpec), zap.Error(err))
		return nil
	}

	runner.Start()
	logger.Info("booking reminder sweep scheduled", zap.String("spec", cfg.CronSpec))
	return runner
}
