package repository

import (
	"context"
	"time"

	"proinc-backend/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type DocumentRepo struct {
	collection *mongo.Collection
}

func NewDocumentRepo(db *mongo.Database) *DocumentRepo {
	return &DocumentRepo{
		collection: db.Collection("documents"),
	}
}

func (r *DocumentRepo) Merge(ctx context.Context, id string, document *models.Document) error {
	document.ID = ""
	document.UpdatedAt = time.Now()
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": document},
		options.UpdateOne().SetUpsert(true),
	)
	return err
}

func (r *DocumentRepo) FindByID(ctx context.Context, id string) (*models.Document, error) {
	var document models.Document
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&document)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &document, nil
}
