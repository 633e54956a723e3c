package mongo

import (
	"settler/internal/repository/mongo/structs"
)

//go:generate mockery --case=snake --name=AccountRepo
//go:generate mockery --case=snake --name=SettingsRepo

type AccountRepo interface {
	Create(accountID string) error
	Load(accountID string) (*structs.Account, error)
	CommitBalances(account *structs.Account, balances map[string]float64) error
}

type SettingsRepo interface {
	SetDefault() error
	GetMode() (bool, error)
	SetMode(manual bool) error
}
