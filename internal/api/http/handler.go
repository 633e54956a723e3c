package http

import (
	"errors"

	"settler/internal/repository/mongo"
	"settler/internal/repository/postgres"
	"settler/internal/usecasees"
	"settler/internal/usecasees/structs"
	"settler/models"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type OrderService interface {
	Place(req *structs.PlaceOrder) (*models.Order, error)
	Resolve(orderID, outcome string) error
	History(accountID string) ([]models.Order, error)
}

type WalletService interface {
	Deposit(accountID, asset string, amount float64) (float64, error)
	Withdraw(accountID, asset string, amount float64) (float64, error)
	Convert(accountID, fromAsset, toAsset string, amount, rate float64) error
	Balances(accountID string) (map[string]float64, error)
}

type Handler struct {
	fiber *fiber.App

	orders        OrderService
	wallet        WalletService
	settingsRepo  mongo.SettingsRepo
	notifications postgres.NotificationRepo

	logger *logrus.Logger
}

func NewHandler(
	f *fiber.App,
	orders OrderService,
	wallet WalletService,
	settingsRepo mongo.SettingsRepo,
	notifications postgres.NotificationRepo,
	l *logrus.Logger,
) *Handler {
	return &Handler{
		fiber:         f,
		orders:        orders,
		wallet:        wallet,
		settingsRepo:  settingsRepo,
		notifications: notifications,
		logger:        l,
	}
}

func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	body := struct {
		Status bool `json:"status"`
	}{
		Status: true,
	}

	if err := c.JSON(body); err != nil {
		return err
	}

	return nil
}

func (h *Handler) PlaceOrder(c *fiber.Ctx) error {
	var req structs.PlaceOrder

	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	order, err := h.orders.Place(&req)
	if err != nil {
		return h.fail(c, "PlaceOrder", err)
	}

	return c.Status(fiber.StatusCreated).JSON(order)
}

func (h *Handler) ResolveOrder(c *fiber.Ctx) error {
	var req struct {
		Outcome string `json:"outcome"`
	}

	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := h.orders.Resolve(c.Params("id"), req.Outcome); err != nil {
		return h.fail(c, "ResolveOrder", err)
	}

	return c.JSON(fiber.Map{"resolved": true})
}

func (h *Handler) OrderHistory(c *fiber.Ctx) error {
	orders, err := h.orders.History(c.Params("id"))
	if err != nil {
		return h.fail(c, "OrderHistory", err)
	}

	return c.JSON(orders)
}

func (h *Handler) Balances(c *fiber.Ctx) error {
	balances, err := h.wallet.Balances(c.Params("id"))
	if err != nil {
		return h.fail(c, "Balances", err)
	}

	return c.JSON(balances)
}

func (h *Handler) Deposit(c *fiber.Ctx) error {
	var req struct {
		Asset  string  `json:"asset"`
		Amount float64 `json:"amount"`
	}

	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	balance, err := h.wallet.Deposit(c.Params("id"), req.Asset, req.Amount)
	if err != nil {
		return h.fail(c, "Deposit", err)
	}

	return c.JSON(fiber.Map{"balance": balance})
}

func (h *Handler) Withdraw(c *fiber.Ctx) error {
	var req struct {
		Asset  string  `json:"asset"`
		Amount float64 `json:"amount"`
	}

	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	balance, err := h.wallet.Withdraw(c.Params("id"), req.Asset, req.Amount)
	if err != nil {
		return h.fail(c, "Withdraw", err)
	}

	return c.JSON(fiber.Map{"balance": balance})
}

func (h *Handler) Convert(c *fiber.Ctx) error {
	var req struct {
		FromAsset string  `json:"fromAsset"`
		ToAsset   string  `json:"toAsset"`
		Amount    float64 `json:"amount"`
		Rate      float64 `json:"rate"`
	}

	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := h.wallet.Convert(c.Params("id"), req.FromAsset, req.ToAsset, req.Amount, req.Rate); err != nil {
		return h.fail(c, "Convert", err)
	}

	return c.JSON(fiber.Map{"converted": true})
}

func (h *Handler) GetMode(c *fiber.Ctx) error {
	manual, err := h.settingsRepo.GetMode()
	if err != nil {
		return h.fail(c, "GetMode", err)
	}

	return c.JSON(fiber.Map{"manual": manual})
}

func (h *Handler) SetMode(c *fiber.Ctx) error {
	var req struct {
		Manual bool `json:"manual"`
	}

	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := h.settingsRepo.SetMode(req.Manual); err != nil {
		return h.fail(c, "SetMode", err)
	}

	return c.JSON(fiber.Map{"manual": req.Manual})
}

func (h *Handler) Notifications(c *fiber.Ctx) error {
	notifications, err := h.notifications.GetByTargetID(c.Params("target"))
	if err != nil {
		return h.fail(c, "Notifications", err)
	}

	return c.JSON(notifications)
}

func (h *Handler) ReadNotification(c *fiber.Ctx) error {
	if err := h.notifications.SetRead(c.Params("id")); err != nil {
		return h.fail(c, "ReadNotification", err)
	}

	return c.JSON(fiber.Map{"read": true})
}

func (h *Handler) fail(c *fiber.Ctx, method string, err error) error {
	status := fiber.StatusInternalServerError

	switch {
	case errors.Is(err, usecasees.ErrInsufficientFunds),
		errors.Is(err, usecasees.ErrBadAmount),
		errors.Is(err, usecasees.ErrBadRate),
		errors.Is(err, usecasees.ErrSameAsset),
		errors.Is(err, usecasees.ErrUnknownTimeframe),
		errors.Is(err, usecasees.ErrStakeOutOfRange),
		errors.Is(err, usecasees.ErrUnknownDirection),
		errors.Is(err, usecasees.ErrUnknownOutcome):
		status = fiber.StatusBadRequest
	case errors.Is(err, postgres.ErrOrderNotFound),
		errors.Is(err, mongo.ErrAccountNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, postgres.ErrStaleStatus),
		errors.Is(err, postgres.ErrInvalidTransition),
		errors.Is(err, usecasees.ErrConcurrencyExhausted):
		status = fiber.StatusConflict
	}

	if status == fiber.StatusInternalServerError {
		h.logger.
			WithError(err).
			WithField("method", method).
			Error("request failed")
	}

	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
