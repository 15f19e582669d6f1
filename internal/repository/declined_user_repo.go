package repository

import (
	"context"

	"proinc-backend/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type DeclinedUserRepo struct {
	collection *mongo.Collection
}

func NewDeclinedUserRepo(db *mongo.Database) *DeclinedUserRepo {
	return &DeclinedUserRepo{
		collection: db.Collection("declined_users"),
	}
}

// Archive writes the decline snapshot. Same key every time, so re-declining
// a user overwrites the previous snapshot.
func (r *DeclinedUserRepo) Archive(ctx context.Context, snapshot *models.DeclinedUser) error {
	id := snapshot.ID
	snapshot.ID = ""
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": snapshot},
		options.UpdateOne().SetUpsert(true),
	)
	snapshot.ID = id
	return err
}

func (r *DeclinedUserRepo) FindByID(ctx context.Context, id string) (*models.DeclinedUser, error) {
	var declined models.DeclinedUser
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&declined)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &declined, nil
}
