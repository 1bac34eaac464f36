package sessionRepo

import (
	"context"
	"fmt"
	"time"

	"urbania/database"
	"urbania/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSessionRepo implements SessionRepository using MongoDB.
type MongoSessionRepo struct {
	coll *mongo.Collection
}

// NewMongoSessionRepo creates a new instance of SessionRepository using MongoDB.
func NewMongoSessionRepo() SessionRepository {
	coll := database.MongoClient.Database(database.DatabaseName).Collection("draft_sessions")
	repo := &MongoSessionRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes enforces one session per user at the persistence layer.
func (r *MongoSessionRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "updated_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetOrCreate upserts the user's session. The upsert plus the unique index
// make concurrent first-time accesses converge on a single row; the
// UpsertedCount of the write tells the caller whether this call inserted it.
func (r *MongoSessionRepo) GetOrCreate(userID, username, email string) (*models.DraftSession, bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	update := bson.M{
		"$setOnInsert": bson.M{
			"user_id":      userID,
			"username":     username,
			"user_email":   email,
			"data":         bson.M{},
			"current_step": 0,
			"created_at":   now,
			"updated_at":   now,
		},
	}
	return r.upsert(ctx, userID, update)
}

// Save upserts the user's session with an autosave update. Fields absent
// from the update keep their stored values; on a first-time save the absent
// fields take the empty defaults.
func (r *MongoSessionRepo) Save(userID, username, email string, update models.SessionUpdate) (*models.DraftSession, bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	set := bson.M{"updated_at": now}
	setOnInsert := bson.M{
		"user_id":    userID,
		"username":   username,
		"user_email": email,
		"created_at": now,
	}
	// A key must not appear in both $set and $setOnInsert.
	if update.Data != nil {
		set["data"] = *update.Data
	} else {
		setOnInsert["data"] = bson.M{}
	}
	if update.CurrentStep != nil {
		set["current_step"] = *update.CurrentStep
	} else {
		setOnInsert["current_step"] = 0
	}

	return r.upsert(ctx, userID, bson.M{"$set": set, "$setOnInsert": setOnInsert})
}

func (r *MongoSessionRepo) upsert(ctx context.Context, userID string, update bson.M) (*models.DraftSession, bool, error) {
	result, err := r.coll.UpdateOne(ctx, bson.M{"user_id": userID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return nil, false, fmt.Errorf("failed to upsert session for user %s: %w", userID, err)
	}
	created := result.UpsertedCount > 0

	var session models.DraftSession
	if err := r.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&session); err != nil {
		return nil, false, fmt.Errorf("failed to fetch session for user %s: %w", userID, err)
	}
	return &session, created, nil
}

// ListAll returns every session, newest-updated first.
func (r *MongoSessionRepo) ListAll() ([]models.DraftSession, error) {
	return r.list(bson.M{})
}

// ListActive returns sessions with a non-empty form document.
func (r *MongoSessionRepo) ListActive() ([]models.DraftSession, error) {
	return r.list(bson.M{"data": bson.M{"$nin": bson.A{bson.M{}, nil}}})
}

func (r *MongoSessionRepo) list(filter bson.M) ([]models.DraftSession, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve sessions: %w", err)
	}
	defer cursor.Close(ctx)

	var sessions []models.DraftSession
	for cursor.Next(ctx) {
		var s models.DraftSession
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to decode session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}
