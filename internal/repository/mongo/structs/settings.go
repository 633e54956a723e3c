package structs

import "go.mongodb.org/mongo-driver/bson/primitive"

type Settings struct {
	ID     primitive.ObjectID `bson:"_id,omitempty"`
	Key    string             `bson:"key"`
	Manual bool               `bson:"manual"`
}

const ManualReviewKey = "manual_review"
