package repository

import (
	"context"
	"time"

	"proinc-backend/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type AccountRepo struct {
	collection *mongo.Collection
}

func NewAccountRepo(db *mongo.Database) *AccountRepo {
	return &AccountRepo{
		collection: db.Collection("accounts"),
	}
}

func (r *AccountRepo) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&account)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepo) FindByID(ctx context.Context, id string) (*models.Account, error) {
	var account models.Account
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&account)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepo) Create(ctx context.Context, account *models.Account) error {
	account.CreatedAt = time.Now()
	account.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, account)
	return err
}

func (r *AccountRepo) MarkEmailVerified(ctx context.Context, email string) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"email": email}, bson.M{
		"$set": bson.M{
			"email_verified": true,
			"updated_at":     time.Now(),
		},
	})
	return err
}

// EnsureIndexes creates necessary indexes for the accounts collection
func (r *AccountRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
