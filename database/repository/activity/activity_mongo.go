package activityRepo

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

// MongoActivityRepo implements ActivityRepository using MongoDB.
type MongoActivityRepo struct {
	coll *mongo.Collection
}

// NewMongoActivityRepo creates a new instance of ActivityRepository using MongoDB.
func NewMongoActivityRepo() ActivityRepository {
	coll := database.MongoClient.Database(database.DatabaseName).Collection("activity_logs")
	repo := &MongoActivityRepo{coll: coll}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "timestamp", Value: -1}},
	})
	if err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// Insert appends one activity entry.
func (r *MongoActivityRepo) Insert(entry *models.ActivityLog) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	entry.Timestamp = time.Now()
	if _, err := r.coll.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to insert activity log: %w", err)
	}
	return nil
}

// ListRecent returns the newest entries, most recent first.
func (r *MongoActivityRepo) ListRecent(limit int) ([]models.ActivityLog, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve activity logs: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []models.ActivityLog
	for cursor.Next(ctx) {
		var e models.ActivityLog
		if err := cursor.Decode(&e); err != nil {
			return nil, fmt.Errorf("failed to decode activity log: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
