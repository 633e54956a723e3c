package http

import (
	"settler/internal/repository/mongo"
	"settler/internal/repository/postgres"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

func RegisterHTTPEndpoints(
	f *fiber.App,
	orders OrderService,
	wallet WalletService,
	settingsRepo mongo.SettingsRepo,
	notifications postgres.NotificationRepo,
	l *logrus.Logger,
) {
	h := NewHandler(f, orders, wallet, settingsRepo, notifications, l)
	router := f.Group("api")

	router.Get("/healthcheck", h.HealthCheck)

	router.Post("/orders", h.PlaceOrder)
	router.Post("/orders/:id/resolve", h.ResolveOrder)

	router.Get("/accounts/:id/orders", h.OrderHistory)
	router.Get("/accounts/:id/balances", h.Balances)
	router.Post("/accounts/:id/deposit", h.Deposit)
	router.Post("/accounts/:id/withdraw", h.Withdraw)
	router.Post("/accounts/:id/convert", h.Convert)

	router.Get("/settings/mode", h.GetMode)
	router.Post("/settings/mode", h.SetMode)

	router.Get("/notifications/:target", h.Notifications)
	router.Post("/notifications/:id/read", h.ReadNotification)
}
