package usecasees

import (
	"fmt"
	"time"

	"settler/internal/controllers"
	"settler/internal/repository/postgres"
	"settler/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type notifierUseCase struct {
	notificationRepo postgres.NotificationRepo
	tgmController    controllers.TgmCtrl

	logger *logrus.Logger
}

func NewNotifierUseCase(
	notificationRepo postgres.NotificationRepo,
	tgmController controllers.TgmCtrl,
	logger *logrus.Logger,
) *notifierUseCase {
	return &notifierUseCase{
		notificationRepo: notificationRepo,
		tgmController:    tgmController,
		logger:           logger,
	}
}

// Emit stores the notification and mirrors operator-facing ones to telegram.
// Delivery failures are logged, never returned.
func (u *notifierUseCase) Emit(targetID, message, category, link string) {
	if err := u.notificationRepo.Store(&models.Notification{
		ID:        uuid.NewString(),
		TargetID:  targetID,
		Message:   message,
		Category:  category,
		Link:      link,
		CreatedAt: time.Now(),
	}); err != nil {
		u.logger.
			WithError(err).
			WithField("method", "Emit").
			Error("notification store failed")
	}

	if targetID == models.AdminTarget {
		if err := u.tgmController.Send(fmt.Sprintf("[ %s ]\n%s", category, message)); err != nil {
			u.logger.WithField("method", "Emit").Debug(err)
		}
	}
}
