package repository

import (
	"context"
	"time"

	"proinc-backend/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type CompanyRepo struct {
	collection *mongo.Collection
}

func NewCompanyRepo(db *mongo.Database) *CompanyRepo {
	return &CompanyRepo{
		collection: db.Collection("companies"),
	}
}

func (r *CompanyRepo) Merge(ctx context.Context, id string, company *models.Company) error {
	company.ID = ""
	company.UpdatedAt = time.Now()
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": company},
		options.UpdateOne().SetUpsert(true),
	)
	return err
}

func (r *CompanyRepo) FindByID(ctx context.Context, id string) (*models.Company, error) {
	var company models.Company
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&company)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &company, nil
}
