package structs

import "go.mongodb.org/mongo-driver/bson/primitive"

// Account is one user's multi-asset balance document. Version is bumped on
// every committed mutation and guards the compare-and-retry cycle.
type Account struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	AccountID string             `bson:"account_id"`
	Balances  map[string]float64 `bson:"balances"`
	Version   int64              `bson:"version"`
}

// Balance returns 0 for an asset the account never held.
func (a *Account) Balance(asset string) float64 {
	return a.Balances[asset]
}

func (a *Account) CloneBalances() map[string]float64 {
	out := make(map[string]float64, len(a.Balances))
	for asset, amount := range a.Balances {
		out[asset] = amount
	}

	return out
}
