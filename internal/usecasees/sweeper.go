package usecasees

import (
	"runtime/debug"
	"time"

	"settler/internal/repository/mongo"
	"settler/internal/repository/postgres"
	"settler/internal/usecasees/structs"
	"settler/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

type sweeperUseCase struct {
	orderUseCase *orderUseCase
	orderRepo    postgres.OrderRepo
	settingsRepo mongo.SettingsRepo

	interval time.Duration

	metrics map[structs.MetricConst]prometheus.Counter

	logger *logrus.Logger
}

func NewSweeperUseCase(
	orderUseCase *orderUseCase,
	orderRepo postgres.OrderRepo,
	settingsRepo mongo.SettingsRepo,
	interval time.Duration,
	metrics map[structs.MetricConst]prometheus.Counter,
	logger *logrus.Logger,
) *sweeperUseCase {
	return &sweeperUseCase{
		orderUseCase: orderUseCase,
		orderRepo:    orderRepo,
		settingsRepo: settingsRepo,
		interval:     interval,
		metrics:      metrics,
		logger:       logger,
	}
}

// Monitoring starts the periodic expiry sweep.
func (u *sweeperUseCase) Monitoring() error {
	ticker := time.NewTicker(u.interval)
	done := make(chan bool)

	go func() {
		for {
			select {
			case <-done:
				return
			case t := <-ticker.C:
				u.sweep(t)
			}
		}
	}()

	return nil
}

// sweep reads the mode once, then drives every expired Pending order through
// the state machine. One order's failure never aborts the rest of the batch.
func (u *sweeperUseCase) sweep(now time.Time) {
	manual, err := u.settingsRepo.GetMode()
	if err != nil {
		u.logger.
			WithError(err).
			Error(string(debug.Stack()))

		return
	}

	pending, err := u.orderRepo.GetByStatus(models.OrderStatusPending)
	if err != nil {
		u.logger.
			WithError(err).
			Error(string(debug.Stack()))

		return
	}

	if manual {
		// Orders already held for review are scanned for visibility only.
		held, err := u.orderRepo.GetByStatus(models.OrderStatusNowProcessing)
		if err != nil {
			u.logger.
				WithError(err).
				Error(string(debug.Stack()))
		} else if len(held) > 0 {
			u.logger.WithField("count", len(held)).Info("orders awaiting operator review")
		}
	}

	for _, order := range pending {
		if !order.Expired(now) {
			continue
		}

		if manual {
			if err := u.orderRepo.SetStatus(order.ID, models.OrderStatusPending, models.OrderStatusNowProcessing); err != nil {
				u.logger.
					WithError(err).
					Error(string(debug.Stack()))

				continue
			}

			incMetric(u.metrics, structs.MetricOrderHeldForReview)

			continue
		}

		// Auto-Settle always grants the win outcome.
		if err := u.orderUseCase.Resolve(order.ID, models.OrderStatusCompleted); err != nil {
			u.logger.
				WithError(err).
				Error(string(debug.Stack()))

			continue
		}

		incMetric(u.metrics, structs.MetricOrderAutoSettled)
	}
}
