package repository

import (
	"context"
	"log"
	"time"

	"proinc-backend/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type UserRepo struct {
	collection *mongo.Collection
}

func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{
		collection: db.Collection("users"),
	}
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Merge upserts the user record with the given fields, preserving anything
// not named in the update. This mirrors the store's merge semantics that the
// rest of the system is built around.
func (r *UserRepo) Merge(ctx context.Context, id string, fields bson.M) error {
	fields["updated_at"] = time.Now()
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
		options.UpdateOne().SetUpsert(true),
	)
	return err
}

func (r *UserRepo) ListAll(ctx context.Context) ([]models.User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// SetApproval toggles the approval flag. Approving also clears any standing
// decline so the two flags never stay true together.
func (r *UserRepo) SetApproval(ctx context.Context, id string, approved bool) error {
	set := bson.M{
		"is_approved": approved,
		"updated_at":  time.Now(),
	}
	if approved {
		set["is_declined"] = false
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	return err
}

func (r *UserRepo) SetRole(ctx context.Context, id string, role models.Role) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"role":       role,
			"updated_at": time.Now(),
		},
	})
	return err
}

// Decline flips the record into the declined state. A single update document
// clears approval together with setting the decline flag and reason.
func (r *UserRepo) Decline(ctx context.Context, id, reason string) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"is_declined": true,
			"is_approved": false,
			"description": reason,
			"updated_at":  time.Now(),
		},
	})
	return err
}

// WatchUser streams the user's record: the current state first, then the full
// document after every subsequent change. The channel closes when ctx is
// canceled or the change stream ends. Requires a replica set, as change
// streams do.
func (r *UserRepo) WatchUser(ctx context.Context, id string) (<-chan models.User, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "documentKey._id", Value: id}}}},
	}
	stream, err := r.collection.Watch(ctx, pipeline,
		options.ChangeStream().SetFullDocument(options.UpdateLookup))
	if err != nil {
		return nil, err
	}

	out := make(chan models.User, 1)
	go func() {
		defer close(out)
		defer stream.Close(context.Background())

		// Seed with the current state so a record that changed before the
		// watch was opened is still observed.
		if user, err := r.FindByID(ctx, id); err == nil && user != nil {
			select {
			case out <- *user:
			case <-ctx.Done():
				return
			}
		}

		for stream.Next(ctx) {
			var event struct {
				FullDocument models.User `bson:"fullDocument"`
			}
			if err := stream.Decode(&event); err != nil {
				log.Printf("Error decoding change event for user %s: %v", id, err)
				continue
			}
			select {
			case out <- event.FullDocument:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
