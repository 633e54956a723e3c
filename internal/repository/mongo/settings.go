package mongo

import (
	"context"
	"errors"

	"settler/internal/repository/mongo/structs"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SettingsRepository struct {
	conn       *mongo.Client
	collection *mongo.Collection
}

func NewSettingsRepository(conn *mongo.Client, dbName string) SettingsRepo {
	collection := conn.Database(dbName).Collection("settings")

	return &SettingsRepository{conn: conn, collection: collection}
}

// SetDefault seeds the manual-review flag to Auto-Settle when missing.
func (r *SettingsRepository) SetDefault() error {
	var check structs.Settings

	err := r.collection.FindOne(context.TODO(), bson.D{{"key", structs.ManualReviewKey}}).Decode(&check)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	if primitive.ObjectID.IsZero(check.ID) {
		if _, err := r.collection.InsertOne(context.TODO(), structs.Settings{
			Key:    structs.ManualReviewKey,
			Manual: false,
		}); err != nil {
			return err
		}
	}

	return nil
}

func (r *SettingsRepository) GetMode() (bool, error) {
	var result structs.Settings

	if err := r.collection.FindOne(context.TODO(), bson.D{{"key", structs.ManualReviewKey}}).Decode(&result); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}

		return false, err
	}

	return result.Manual, nil
}

func (r *SettingsRepository) SetMode(manual bool) error {
	_, err := r.collection.UpdateOne(
		context.TODO(),
		bson.D{{"key", structs.ManualReviewKey}},
		bson.D{{"$set", bson.D{{"manual", manual}}}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return err
	}

	return nil
}
