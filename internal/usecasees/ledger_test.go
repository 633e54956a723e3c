package usecasees

import (
	"sync"
	"testing"

	"settler/internal/repository/mongo"

	"github.com/stretchr/testify/assert"
)

func initLedgerTest(balances map[string]float64) (*ledgerUseCase, *memAccountRepo) {
	accounts := newMemAccountRepo()
	accounts.seed("acc-1", balances)

	return NewLedgerUseCase(accounts, nil, testLogger()), accounts
}

func Test_AdjustBalance(t *testing.T) {
	t.Run("credit", func(t *testing.T) {
		ledger, _ := initLedgerTest(map[string]float64{"USDT": 1000})

		balance, err := ledger.AdjustBalance("acc-1", "USDT", 500)
		assert.NoError(t, err)
		assert.Equal(t, float64(1500), balance)
	})

	t.Run("debit", func(t *testing.T) {
		ledger, _ := initLedgerTest(map[string]float64{"USDT": 1000})

		balance, err := ledger.AdjustBalance("acc-1", "USDT", -1000)
		assert.NoError(t, err)
		assert.Equal(t, float64(0), balance)
	})

	t.Run("insufficient funds applies nothing", func(t *testing.T) {
		ledger, _ := initLedgerTest(map[string]float64{"USDT": 100})

		_, err := ledger.AdjustBalance("acc-1", "USDT", -101)
		assert.ErrorIs(t, err, ErrInsufficientFunds)

		balance, err := ledger.GetBalance("acc-1", "USDT")
		assert.NoError(t, err)
		assert.Equal(t, float64(100), balance)
	})

	t.Run("absent asset means zero", func(t *testing.T) {
		ledger, _ := initLedgerTest(map[string]float64{"USDT": 100})

		balance, err := ledger.GetBalance("acc-1", "BTC")
		assert.NoError(t, err)
		assert.Equal(t, float64(0), balance)

		_, err = ledger.AdjustBalance("acc-1", "BTC", -1)
		assert.ErrorIs(t, err, ErrInsufficientFunds)
	})

	t.Run("unknown account", func(t *testing.T) {
		ledger, _ := initLedgerTest(nil)

		_, err := ledger.AdjustBalance("acc-2", "USDT", 1)
		assert.ErrorIs(t, err, mongo.ErrAccountNotFound)
	})

	t.Run("version conflict retried", func(t *testing.T) {
		ledger, accounts := initLedgerTest(map[string]float64{"USDT": 100})
		accounts.forceConflicts = 2

		balance, err := ledger.AdjustBalance("acc-1", "USDT", 50)
		assert.NoError(t, err)
		assert.Equal(t, float64(150), balance)
	})

	t.Run("retry budget exhausted", func(t *testing.T) {
		ledger, accounts := initLedgerTest(map[string]float64{"USDT": 100})
		accounts.forceConflicts = adjustRetryLimit

		_, err := ledger.AdjustBalance("acc-1", "USDT", 50)
		assert.ErrorIs(t, err, ErrConcurrencyExhausted)

		balance, err := ledger.GetBalance("acc-1", "USDT")
		assert.NoError(t, err)
		assert.Equal(t, float64(100), balance)
	})
}

func Test_AdjustBalance_Concurrent(t *testing.T) {
	ledger, _ := initLedgerTest(map[string]float64{"USDT": 100})

	var wg sync.WaitGroup
	var mu sync.Mutex
	var committed int

	for i := 0; i < 20; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			if _, err := ledger.AdjustBalance("acc-1", "USDT", -10); err == nil {
				mu.Lock()
				committed++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	balance, err := ledger.GetBalance("acc-1", "USDT")
	assert.NoError(t, err)

	assert.True(t, balance >= 0)
	assert.Equal(t, 100-float64(committed)*10, balance)
	assert.True(t, committed <= 10)
}

func Test_Convert(t *testing.T) {
	t.Run("moves both assets in one commit", func(t *testing.T) {
		ledger, accounts := initLedgerTest(map[string]float64{"USDT": 1000})

		assert.NoError(t, ledger.Convert("acc-1", "USDT", "BTC", 500, 0.00002))

		account, err := accounts.Load("acc-1")
		assert.NoError(t, err)
		assert.Equal(t, float64(500), account.Balance("USDT"))
		assert.InDelta(t, 0.01, account.Balance("BTC"), 1e-9)
	})

	t.Run("insufficient source", func(t *testing.T) {
		ledger, _ := initLedgerTest(map[string]float64{"USDT": 100})

		err := ledger.Convert("acc-1", "USDT", "BTC", 500, 1)
		assert.ErrorIs(t, err, ErrInsufficientFunds)

		balance, err := ledger.GetBalance("acc-1", "BTC")
		assert.NoError(t, err)
		assert.Equal(t, float64(0), balance)
	})
}
