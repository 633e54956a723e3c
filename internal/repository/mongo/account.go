package mongo

import (
	"context"
	"errors"

	"settler/internal/repository/mongo/structs"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrVersionConflict means the account document changed between the read
	// and the write. The caller retries the whole read-compute-write cycle.
	ErrVersionConflict = errors.New("account version conflict")

	ErrAccountNotFound = errors.New("account not found")
	ErrAccountExists   = errors.New("account already exists")
)

type AccountRepository struct {
	conn       *mongo.Client
	collection *mongo.Collection
}

func NewAccountRepository(conn *mongo.Client, dbName string) AccountRepo {
	collection := conn.Database(dbName).Collection("accounts")

	return &AccountRepository{conn: conn, collection: collection}
}

func (r *AccountRepository) Create(accountID string) error {
	check, err := r.Load(accountID)
	if err != nil && !errors.Is(err, ErrAccountNotFound) {
		return err
	}

	if check != nil {
		return ErrAccountExists
	}

	_, err = r.collection.InsertOne(context.TODO(), structs.Account{
		AccountID: accountID,
		Balances:  map[string]float64{},
		Version:   1,
	})
	if err != nil {
		return err
	}

	return nil
}

func (r *AccountRepository) Load(accountID string) (*structs.Account, error) {
	var result structs.Account

	if err := r.collection.FindOne(context.TODO(), bson.D{{"account_id", accountID}}).Decode(&result); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAccountNotFound
		}

		return nil, err
	}

	return &result, nil
}

// CommitBalances writes the full balance map, but only if the document still
// carries the version observed at read time.
func (r *AccountRepository) CommitBalances(account *structs.Account, balances map[string]float64) error {
	res, err := r.collection.UpdateOne(
		context.TODO(),
		bson.D{{"account_id", account.AccountID}, {"version", account.Version}},
		bson.D{
			{"$set", bson.D{{"balances", balances}}},
			{"$inc", bson.D{{"version", 1}}},
		},
	)
	if err != nil {
		return err
	}

	if res.ModifiedCount == 0 {
		return ErrVersionConflict
	}

	return nil
}
