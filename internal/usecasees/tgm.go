package usecasees

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"settler/internal/controllers"
	"settler/internal/repository/mongo"
	"settler/internal/repository/postgres"
	"settler/models"

	"github.com/sirupsen/logrus"
)

type tgmUseCase struct {
	orderRepo     postgres.OrderRepo
	settingsRepo  mongo.SettingsRepo
	tgmController controllers.TgmCtrl

	logger *logrus.Logger
}

func NewTgmUseCase(
	orderRepo postgres.OrderRepo,
	settingsRepo mongo.SettingsRepo,
	tgmController controllers.TgmCtrl,
	logger *logrus.Logger,
) *tgmUseCase {
	return &tgmUseCase{
		orderRepo:     orderRepo,
		settingsRepo:  settingsRepo,
		tgmController: tgmController,
		logger:        logger,
	}
}

func (u *tgmUseCase) CommandProcessor() {
	for update := range u.tgmController.GetUpdates() {
		if update.Message == nil {
			continue
		}

		if !u.tgmController.CheckChatID(update.Message.Chat.ID) {
			continue
		}

		switch update.Message.Command() {
		case "ping":
			u.pingProc()
		case "mode":
			u.modeProc(update.Message.CommandArguments())
		case "stat":
			u.orderStatProc()
		}
	}
}

func (u *tgmUseCase) pingProc() {
	if err := u.tgmController.Send(
		fmt.Sprintf(
			"PONG [ %s ]",
			time.Now().Format(time.RFC822),
		)); err != nil {
		u.logger.WithField("method", "pingProc").Debug(err)
	}
}

// modeProc switches between Auto-Settle and Manual-Review, or reports the
// current mode when called without an argument.
func (u *tgmUseCase) modeProc(args string) {
	reply := func(text string) {
		if err := u.tgmController.Send(text); err != nil {
			u.logger.WithField("method", "modeProc").Debug(err)
		}
	}

	switch strings.TrimSpace(strings.ToLower(args)) {
	case "manual":
		if err := u.settingsRepo.SetMode(true); err != nil {
			u.logger.
				WithError(err).
				Error(string(debug.Stack()))

			reply("mode update failed")

			return
		}

		reply("Manual-Review mode enabled")
	case "auto":
		if err := u.settingsRepo.SetMode(false); err != nil {
			u.logger.
				WithError(err).
				Error(string(debug.Stack()))

			reply("mode update failed")

			return
		}

		reply("Auto-Settle mode enabled")
	case "":
		manual, err := u.settingsRepo.GetMode()
		if err != nil {
			u.logger.
				WithError(err).
				Error(string(debug.Stack()))

			reply("mode read failed")

			return
		}

		if manual {
			reply("Current mode: Manual-Review")
		} else {
			reply("Current mode: Auto-Settle")
		}
	default:
		reply("usage: /mode [manual|auto]")
	}
}

func (u *tgmUseCase) orderStatProc() {
	eTime := time.Now()
	sTime := eTime.Add(-24 * time.Hour)

	orders, err := u.orderRepo.GetWithInterval(sTime, eTime)
	if err != nil {
		u.logger.
			WithError(err).
			Error(string(debug.Stack()))

		return
	}

	var pending, processing, completed, failed int

	for _, order := range orders {
		switch order.Status {
		case models.OrderStatusPending:
			pending++
		case models.OrderStatusNowProcessing:
			processing++
		case models.OrderStatusCompleted:
			completed++
		case models.OrderStatusFailed:
			failed++
		}
	}

	msg := fmt.Sprintf(
		"[ Orders Stat 24h ]\n"+
			"Total:\t%d\n"+
			"Pending:\t%d\n"+
			"NowProcessing:\t%d\n"+
			"Completed:\t%d\n"+
			"Failed:\t%d\n",
		len(orders),
		pending,
		processing,
		completed,
		failed,
	)

	if err := u.tgmController.Send(msg); err != nil {
		u.logger.
			WithError(err).
			Error(string(debug.Stack()))
	}
}
