package usecasees

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"settler/internal/repository/postgres"
	"settler/internal/usecasees/structs"
	"settler/models"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

const (
	// QuoteAsset is the settlement currency; stakes and payouts move in it.
	QuoteAsset = "USDT"

	tradeLink = "/trader-dashboard/trade"

	creditRetryLimit = 3
	creditRetryDelay = 100 * time.Millisecond
)

var (
	ErrUnknownTimeframe = errors.New("unknown timeframe")
	ErrStakeOutOfRange  = errors.New("stake outside timeframe bounds")
	ErrUnknownDirection = errors.New("direction must be Up or Down")
	ErrUnknownOutcome   = errors.New("outcome must be Completed or Failed")
)

type orderUseCase struct {
	ledgerUseCase *ledgerUseCase
	orderRepo     postgres.OrderRepo
	sink          NotificationSink

	// one Resolve per order at a time in this process
	resolveMu sync.Mutex
	resolving map[string]*sync.Mutex

	metrics map[structs.MetricConst]prometheus.Counter

	logger *logrus.Logger
}

func NewOrderUseCase(
	ledgerUseCase *ledgerUseCase,
	orderRepo postgres.OrderRepo,
	sink NotificationSink,
	metrics map[structs.MetricConst]prometheus.Counter,
	logger *logrus.Logger,
) *orderUseCase {
	return &orderUseCase{
		ledgerUseCase: ledgerUseCase,
		orderRepo:     orderRepo,
		sink:          sink,
		resolving:     map[string]*sync.Mutex{},
		metrics:       metrics,
		logger:        logger,
	}
}

// Place debits the stake and creates a Pending order expiring after the
// tier's duration. The tier's profit rate is captured onto the order and
// never re-read.
func (u *orderUseCase) Place(req *structs.PlaceOrder) (*models.Order, error) {
	if req.Direction != models.DirectionUp && req.Direction != models.DirectionDown {
		return nil, ErrUnknownDirection
	}

	tier, ok := structs.Timeframes[req.Timeframe]
	if !ok {
		return nil, ErrUnknownTimeframe
	}

	if !tier.StakeAllowed(req.Stake) {
		return nil, ErrStakeOutOfRange
	}

	reference := newReference()

	// The debit commits before the order exists; log the reference first so
	// a crash between the two calls stays auditable.
	u.logger.
		WithField("reference", reference).
		WithField("account", req.AccountID).
		Info("placing order")

	if _, err := u.ledgerUseCase.AdjustBalance(req.AccountID, QuoteAsset, -req.Stake); err != nil {
		return nil, err
	}

	now := time.Now()

	order := &models.Order{
		ID:         uuid.NewString(),
		AccountID:  req.AccountID,
		Pair:       req.Pair,
		Direction:  req.Direction,
		Stake:      req.Stake,
		Asset:      QuoteAsset,
		EntryPrice: req.EntryPrice,
		ProfitRate: tier.ProfitRate,
		Timeframe:  tier.Code,
		Reference:  reference,
		Status:     models.OrderStatusPending,
		CreatedAt:  now,
		ExpiresAt:  now.Add(tier.Duration),
	}

	if err := u.orderRepo.Store(order); err != nil {
		return nil, err
	}

	incMetric(u.metrics, structs.MetricOrderPlaced)

	u.sink.Emit(
		models.AdminTarget,
		fmt.Sprintf("Account %s placed a %s order for %s/%s (ID: %s).",
			req.AccountID, order.Direction, order.Pair, QuoteAsset, order.Reference),
		models.NotificationOrder,
		tradeLink,
	)

	return order, nil
}

func (u *orderUseCase) History(accountID string) ([]models.Order, error) {
	return u.orderRepo.GetByAccountID(accountID)
}

// Resolve is the sole path by which stake and profit move. Re-invoking it on
// a terminal order is a no-op; the credit for a Completed order commits
// before the status flip makes it visible.
func (u *orderUseCase) Resolve(orderID, outcome string) error {
	if outcome != models.OrderStatusCompleted && outcome != models.OrderStatusFailed {
		return ErrUnknownOutcome
	}

	mu := u.resolveLock(orderID)
	mu.Lock()
	defer mu.Unlock()

	order, err := u.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}

	if order.Terminal() {
		return nil
	}

	if outcome == models.OrderStatusCompleted {
		if err := u.creditPayout(order); err != nil {
			return err
		}
	}

	if err := u.orderRepo.SetStatus(order.ID, order.Status, outcome); err != nil {
		if !errors.Is(err, postgres.ErrStaleStatus) {
			return err
		}

		reloaded, rerr := u.orderRepo.GetByID(orderID)
		if rerr != nil {
			return rerr
		}

		if reloaded.Terminal() {
			return nil
		}

		if err := u.orderRepo.SetStatus(reloaded.ID, reloaded.Status, outcome); err != nil {
			return err
		}
	}

	switch outcome {
	case models.OrderStatusCompleted:
		incMetric(u.metrics, structs.MetricOrderCompleted)
	case models.OrderStatusFailed:
		incMetric(u.metrics, structs.MetricOrderFailed)
	}

	u.sink.Emit(
		order.AccountID,
		fmt.Sprintf("Your order %s for %s/%s has been %s.",
			order.Reference, order.Pair, order.Asset, outcome),
		models.NotificationOrder,
		tradeLink,
	)

	return nil
}

// creditPayout retries transient ledger contention with backoff. It never
// marks the order terminal itself, so a failure here leaves the order
// re-driveable.
func (u *orderUseCase) creditPayout(order *models.Order) error {
	var err error

	for try := 0; try < creditRetryLimit; try++ {
		if _, err = u.ledgerUseCase.AdjustBalance(order.AccountID, order.Asset, order.Payout()); err == nil {
			return nil
		}

		if !errors.Is(err, ErrConcurrencyExhausted) {
			return err
		}

		time.Sleep(time.Duration(try+1) * creditRetryDelay)
	}

	return err
}

func (u *orderUseCase) resolveLock(orderID string) *sync.Mutex {
	u.resolveMu.Lock()
	defer u.resolveMu.Unlock()

	mu, ok := u.resolving[orderID]
	if !ok {
		mu = &sync.Mutex{}
		u.resolving[orderID] = mu
	}

	return mu
}

func newReference() string {
	return "ORD-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:7])
}
