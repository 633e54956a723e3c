package usecasees

import (
	"errors"
	"fmt"

	"settler/models"

	"github.com/sirupsen/logrus"
)

const walletLink = "/trader-dashboard/wallet"

var (
	ErrBadAmount = errors.New("amount must be positive")
	ErrBadRate   = errors.New("rate must be positive")
	ErrSameAsset = errors.New("conversion assets must differ")
)

type walletUseCase struct {
	ledgerUseCase *ledgerUseCase
	sink          NotificationSink

	logger *logrus.Logger
}

func NewWalletUseCase(
	ledgerUseCase *ledgerUseCase,
	sink NotificationSink,
	logger *logrus.Logger,
) *walletUseCase {
	return &walletUseCase{
		ledgerUseCase: ledgerUseCase,
		sink:          sink,
		logger:        logger,
	}
}

func (u *walletUseCase) Deposit(accountID, asset string, amount float64) (float64, error) {
	if amount <= 0 {
		return 0, ErrBadAmount
	}

	balance, err := u.ledgerUseCase.AdjustBalance(accountID, asset, amount)
	if err != nil {
		return 0, err
	}

	u.sink.Emit(
		accountID,
		fmt.Sprintf("Your deposit of %.2f %s has been credited.", amount, asset),
		models.NotificationDeposit,
		walletLink,
	)
	u.sink.Emit(
		models.AdminTarget,
		fmt.Sprintf("Account %s deposited %.2f %s.", accountID, amount, asset),
		models.NotificationDeposit,
		walletLink,
	)

	return balance, nil
}

func (u *walletUseCase) Withdraw(accountID, asset string, amount float64) (float64, error) {
	if amount <= 0 {
		return 0, ErrBadAmount
	}

	balance, err := u.ledgerUseCase.AdjustBalance(accountID, asset, -amount)
	if err != nil {
		return 0, err
	}

	u.sink.Emit(
		accountID,
		fmt.Sprintf("Your withdrawal of %.2f %s has been processed.", amount, asset),
		models.NotificationWithdrawal,
		walletLink,
	)
	u.sink.Emit(
		models.AdminTarget,
		fmt.Sprintf("Account %s withdrew %.2f %s.", accountID, amount, asset),
		models.NotificationWithdrawal,
		walletLink,
	)

	return balance, nil
}

func (u *walletUseCase) Convert(accountID, fromAsset, toAsset string, amount, rate float64) error {
	if amount <= 0 {
		return ErrBadAmount
	}

	if rate <= 0 {
		return ErrBadRate
	}

	if fromAsset == toAsset {
		return ErrSameAsset
	}

	if err := u.ledgerUseCase.Convert(accountID, fromAsset, toAsset, amount, rate); err != nil {
		return err
	}

	u.sink.Emit(
		accountID,
		fmt.Sprintf("Converted %.2f %s to %.2f %s.", amount, fromAsset, amount*rate, toAsset),
		models.NotificationGeneral,
		walletLink,
	)

	return nil
}

func (u *walletUseCase) Balances(accountID string) (map[string]float64, error) {
	return u.ledgerUseCase.GetBalances(accountID)
}
