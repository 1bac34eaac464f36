package dossierRepo

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

// MongoDossierRepo implements DossierRepository using MongoDB.
type MongoDossierRepo struct {
	coll     *mongo.Collection
	sessions *mongo.Collection
}

// NewMongoDossierRepo creates a new instance of DossierRepository using MongoDB.
func NewMongoDossierRepo() DossierRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	repo := &MongoDossierRepo{
		coll:     db.Collection("dossiers"),
		sessions: db.Collection("draft_sessions"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoDossierRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// CreateAndClearDraft inserts the dossier and resets the owner's draft
// session atomically, so a reader never sees the new dossier next to the
// stale draft.
func (r *MongoDossierRepo) CreateAndClearDraft(d *models.Dossier) error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	d.CreatedAt = time.Now()

	session, err := database.MongoClient.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start mongo session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := r.coll.InsertOne(sc, d); err != nil {
			return nil, fmt.Errorf("failed to insert dossier: %w", err)
		}
		clear := bson.M{"$set": bson.M{
			"data":         bson.M{},
			"current_step": 0,
			"updated_at":   time.Now(),
		}}
		if _, err := r.sessions.UpdateOne(sc, bson.M{"user_id": d.UserID}, clear); err != nil {
			return nil, fmt.Errorf("failed to clear draft session: %w", err)
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("failed to create dossier for user %s: %w", d.UserID, err)
	}
	return nil
}

// GetByID retrieves one dossier scoped to its owner. Returns (nil, nil)
// when absent.
func (r *MongoDossierRepo) GetByID(userID, id string) (*models.Dossier, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var d models.Dossier
	if err := r.coll.FindOne(ctx, bson.M{"id": id, "user_id": userID}).Decode(&d); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch dossier %s: %w", id, err)
	}
	return &d, nil
}

// ListByUser returns a user's dossiers, newest first.
func (r *MongoDossierRepo) ListByUser(userID string) ([]models.Dossier, error) {
	return r.list(bson.M{"user_id": userID})
}

// ListAll returns every dossier, newest first.
func (r *MongoDossierRepo) ListAll() ([]models.Dossier, error) {
	return r.list(bson.M{})
}

func (r *MongoDossierRepo) list(filter bson.M) ([]models.Dossier, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve dossiers: %w", err)
	}
	defer cursor.Close(ctx)

	var dossiers []models.Dossier
	for cursor.Next(ctx) {
		var d models.Dossier
		if err := cursor.Decode(&d); err != nil {
			return nil, fmt.Errorf("failed to decode dossier: %w", err)
		}
		dossiers = append(dossiers, d)
	}
	return dossiers, nil
}

// SetPDFURL records the generated PDF URL on an owned dossier.
func (r *MongoDossierRepo) SetPDFURL(userID, id, pdfURL string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"pdf_url": pdfURL}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id, "user_id": userID}, update)
	if err != nil {
		return fmt.Errorf("failed to set pdf url on dossier %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("dossier %s not found", id)
	}
	return nil
}
