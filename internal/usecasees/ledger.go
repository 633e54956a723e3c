package usecasees

import (
	"errors"
	"time"

	"settler/internal/repository/mongo"
	"settler/internal/usecasees/structs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

const (
	adjustRetryLimit = 5
	adjustRetryDelay = 50 * time.Millisecond
)

var (
	// ErrInsufficientFunds means the debit would drive the balance below
	// zero. Never retried, no partial effect.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrConcurrencyExhausted means the compare-and-retry budget ran out.
	ErrConcurrencyExhausted = errors.New("balance update retry budget exhausted")
)

type ledgerUseCase struct {
	accountRepo mongo.AccountRepo

	metrics map[structs.MetricConst]prometheus.Counter

	logger *logrus.Logger
}

func NewLedgerUseCase(
	accountRepo mongo.AccountRepo,
	metrics map[structs.MetricConst]prometheus.Counter,
	logger *logrus.Logger,
) *ledgerUseCase {
	return &ledgerUseCase{
		accountRepo: accountRepo,
		metrics:     metrics,
		logger:      logger,
	}
}

// AdjustBalance applies delta to one asset of the account and returns the
// committed balance. Negative results abort with ErrInsufficientFunds before
// anything is written.
func (u *ledgerUseCase) AdjustBalance(accountID, asset string, delta float64) (float64, error) {
	var out float64

	err := u.mutate(accountID, func(balances map[string]float64) error {
		next := balances[asset] + delta
		if next < 0 {
			return ErrInsufficientFunds
		}

		balances[asset] = next
		out = next

		return nil
	})
	if err != nil {
		return 0, err
	}

	return out, nil
}

// Convert debits fromAsset and credits toAsset at the given rate in a single
// account commit. Both assets live in one document, so the version guard
// covers the pair.
func (u *ledgerUseCase) Convert(accountID, fromAsset, toAsset string, amount, rate float64) error {
	return u.mutate(accountID, func(balances map[string]float64) error {
		if balances[fromAsset] < amount {
			return ErrInsufficientFunds
		}

		balances[fromAsset] -= amount
		balances[toAsset] += amount * rate

		return nil
	})
}

func (u *ledgerUseCase) GetBalance(accountID, asset string) (float64, error) {
	account, err := u.accountRepo.Load(accountID)
	if err != nil {
		return 0, err
	}

	return account.Balance(asset), nil
}

func (u *ledgerUseCase) GetBalances(accountID string) (map[string]float64, error) {
	account, err := u.accountRepo.Load(accountID)
	if err != nil {
		return nil, err
	}

	return account.CloneBalances(), nil
}

// mutate runs read-compute-write cycles until the version guard commits or
// the retry budget is spent.
func (u *ledgerUseCase) mutate(accountID string, fn func(balances map[string]float64) error) error {
	for try := 0; try < adjustRetryLimit; try++ {
		account, err := u.accountRepo.Load(accountID)
		if err != nil {
			return err
		}

		balances := account.CloneBalances()
		if err := fn(balances); err != nil {
			return err
		}

		err = u.accountRepo.CommitBalances(account, balances)
		if err == nil {
			return nil
		}

		if !errors.Is(err, mongo.ErrVersionConflict) {
			return err
		}

		incMetric(u.metrics, structs.MetricLedgerConflict)
		time.Sleep(time.Duration(try+1) * adjustRetryDelay)
	}

	return ErrConcurrencyExhausted
}

func incMetric(metrics map[structs.MetricConst]prometheus.Counter, m structs.MetricConst) {
	if metrics == nil {
		return
	}

	if counter, ok := metrics[m]; ok {
		counter.Inc()
	}
}
