package repository

import (
	"context"
	"time"

	"proinc-backend/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type PaymentRepo struct {
	collection *mongo.Collection
}

func NewPaymentRepo(db *mongo.Database) *PaymentRepo {
	return &PaymentRepo{
		collection: db.Collection("payments"),
	}
}

func (r *PaymentRepo) Merge(ctx context.Context, id string, payment *models.Payment) error {
	payment.ID = "" // the id travels in the filter, not the update
	payment.UpdatedAt = time.Now()
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": payment},
		options.UpdateOne().SetUpsert(true),
	)
	return err
}

func (r *PaymentRepo) FindByID(ctx context.Context, id string) (*models.Payment, error) {
	var payment models.Payment
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&payment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}
