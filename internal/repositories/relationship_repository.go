package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/gobook-app/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// RelationshipRepository defines the interface for directed friendship rows.
type RelationshipRepository interface {
	Create(ctx context.Context, rel *models.Relationship) error
	GetByID(ctx context.Context, id string) (*models.Relationship, error)
	Find(ctx context.Context, userID, friendID, status string) (*models.Relationship, error)
	HasAccepted(ctx context.Context, userID, friendID string) (bool, error)
	ListByUser(ctx context.Context, userID, status string) ([]models.Relationship, error)
	ListByFriend(ctx context.Context, friendID, status string) ([]models.Relationship, error)
	Update(ctx context.Context, rel *models.Relationship) error
	Delete(ctx context.Context, id string) error
	DeleteBetween(ctx context.Context, userID, friendID string) error
}

// MongoRelationshipRepository implements RelationshipRepository for MongoDB
type MongoRelationshipRepository struct {
	collection *mongo.Collection
}

// NewMongoRelationshipRepository creates a new MongoRelationshipRepository
func NewMongoRelationshipRepository(db *mongo.Database) *MongoRelationshipRepository {
	return &MongoRelationshipRepository{collection: db.Collection("friends")}
}

// Create inserts a new relationship row
func (r *MongoRelationshipRepository) Create(ctx context.Context, rel *models.Relationship) error {
	if rel.ID.IsZero() {
		rel.ID = primitive.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, rel)
	return err
}

// GetByID retrieves a relationship row by ID
func (r *MongoRelationshipRepository) GetByID(ctx context.Context, id string) (*models.Relationship, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid request ID format: %w", err)
	}

	var rel models.Relationship
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&rel)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rel, nil
}

// Find retrieves the row for the ordered pair (userID, friendID) with the given status
func (r *MongoRelationshipRepository) Find(ctx context.Context, userID, friendID, status string) (*models.Relationship, error) {
	var rel models.Relationship
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID, "friend_id": friendID, "status": status}).Decode(&rel)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rel, nil
}

// HasAccepted reports whether an ACCEPTED row exists for the pair in either direction
func (r *MongoRelationshipRepository) HasAccepted(ctx context.Context, userID, friendID string) (bool, error) {
	filter := bson.M{
		"status": models.RelationshipAccepted,
		"$or": bson.A{
			bson.M{"user_id": userID, "friend_id": friendID},
			bson.M{"user_id": friendID, "friend_id": userID},
		},
	}
	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByUser retrieves all rows where userID is the origin, filtered by status
func (r *MongoRelationshipRepository) ListByUser(ctx context.Context, userID, status string) ([]models.Relationship, error) {
	return r.list(ctx, bson.M{"user_id": userID, "status": status})
}

// ListByFriend retrieves all rows where friendID is the target, filtered by status
func (r *MongoRelationshipRepository) ListByFriend(ctx context.Context, friendID, status string) ([]models.Relationship, error) {
	return r.list(ctx, bson.M{"friend_id": friendID, "status": status})
}

func (r *MongoRelationshipRepository) list(ctx context.Context, filter bson.M) ([]models.Relationship, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	rels := []models.Relationship{}
	if err = cursor.All(ctx, &rels); err != nil {
		return nil, err
	}
	return rels, nil
}

// Update replaces an existing relationship row
func (r *MongoRelationshipRepository) Update(ctx context.Context, rel *models.Relationship) error {
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": rel.ID}, rel)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a relationship row by ID
func (r *MongoRelationshipRepository) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid request ID format: %w", err)
	}
	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	return err
}

// DeleteBetween removes every row between the two users, in both directions.
// Duplicate rows left behind by races are swept up too.
func (r *MongoRelationshipRepository) DeleteBetween(ctx context.Context, userID, friendID string) error {
	filter := bson.M{
		"$or": bson.A{
			bson.M{"user_id": userID, "friend_id": friendID},
			bson.M{"user_id": friendID, "friend_id": userID},
		},
	}
	_, err := r.collection.DeleteMany(ctx, filter)
	return err
}
