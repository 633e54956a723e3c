package usecasees

import (
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"settler/internal/repository/mongo"
	"settler/internal/repository/postgres"
	"settler/internal/usecasees/structs"
	"settler/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

type reminderUseCase struct {
	orderRepo    postgres.OrderRepo
	settingsRepo mongo.SettingsRepo
	sink         NotificationSink

	interval time.Duration
	window   time.Duration

	metrics map[structs.MetricConst]prometheus.Counter

	logger *logrus.Logger
}

func NewReminderUseCase(
	orderRepo postgres.OrderRepo,
	settingsRepo mongo.SettingsRepo,
	sink NotificationSink,
	interval time.Duration,
	window time.Duration,
	metrics map[structs.MetricConst]prometheus.Counter,
	logger *logrus.Logger,
) *reminderUseCase {
	return &reminderUseCase{
		orderRepo:    orderRepo,
		settingsRepo: settingsRepo,
		sink:         sink,
		interval:     interval,
		window:       window,
		metrics:      metrics,
		logger:       logger,
	}
}

// Monitoring starts the periodic expiry-reminder scan.
func (u *reminderUseCase) Monitoring() error {
	ticker := time.NewTicker(u.interval)
	done := make(chan bool)

	go func() {
		for {
			select {
			case <-done:
				return
			case t := <-ticker.C:
				u.remind(t)
			}
		}
	}()

	return nil
}

// remind flags Pending orders entering the reminder window. The reminded
// claim commits before the notification, so concurrent ticks fire at most
// one reminder per order.
func (u *reminderUseCase) remind(now time.Time) {
	manual, err := u.settingsRepo.GetMode()
	if err != nil {
		u.logger.
			WithError(err).
			Error(string(debug.Stack()))

		return
	}

	if !manual {
		return
	}

	pending, err := u.orderRepo.GetByStatus(models.OrderStatusPending)
	if err != nil {
		u.logger.
			WithError(err).
			Error(string(debug.Stack()))

		return
	}

	deadline := now.Add(u.window)

	for _, order := range pending {
		if order.Reminded {
			continue
		}

		if !order.ExpiresAt.After(now) || order.ExpiresAt.After(deadline) {
			continue
		}

		if err := u.orderRepo.SetReminded(order.ID); err != nil {
			if errors.Is(err, postgres.ErrAlreadyReminded) {
				continue
			}

			u.logger.
				WithError(err).
				Error(string(debug.Stack()))

			continue
		}

		u.sink.Emit(
			models.AdminTarget,
			fmt.Sprintf("Order %s for account %s is expiring in ~%.0f seconds.",
				order.Reference, order.AccountID, order.ExpiresAt.Sub(now).Seconds()),
			models.NotificationOrder,
			tradeLink,
		)

		incMetric(u.metrics, structs.MetricReminderSent)
	}
}
