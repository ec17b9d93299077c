package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	petserrors "homeward/internal/pets/errors"
	"homeward/pkg/config"
	"homeward/pkg/model"
)

const (
	CollectionName = "pets"
)

type PetRepository interface {
	Create(ctx context.Context, pet *model.Pet) error
	FindByID(ctx context.Context, id string) (*model.Pet, error)
	FindByStatus(ctx context.Context, status string, limit int, offset int64) ([]*model.Pet, error)
	FindByIDs(ctx context.Context, ids []string) ([]*model.Pet, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	Delete(ctx context.Context, id string) error

	Reserve(ctx context.Context, petID, visitID string) error
	MarkAdopted(ctx context.Context, petID, visitID string) error
	Release(ctx context.Context, petID string) error
}

type mongoPetRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoPetRepository(cfg *config.Config) PetRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoPetRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoPetRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		return context.WithTimeout(ctx, time.Until(deadline))
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoPetRepository) Create(ctx context.Context, pet *model.Pet) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	pet.CreatedAt = now
	pet.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, pet)
	if err != nil {
		return fmt.Errorf("failed to create pet: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		pet.ID = oid.Hex()
	}
	return nil
}

func (r *mongoPetRepository) FindByID(ctx context.Context, id string) (*model.Pet, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", petserrors.ErrInvalidID, id)
	}

	var pet model.Pet
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&pet)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, petserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find pet: %w", err)
	}

	return &pet, nil
}

func (r *mongoPetRepository) FindByStatus(ctx context.Context, status string, limit int, offset int64) ([]*model.Pet, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find pets: %w", err)
	}
	defer cursor.Close(ctx)

	var pets []*model.Pet
	if err = cursor.All(ctx, &pets); err != nil {
		return nil, fmt.Errorf("failed to decode pets: %w", err)
	}

	return pets, nil
}

func (r *mongoPetRepository) FindByIDs(ctx context.Context, ids []string) ([]*model.Pet, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			objectIDs = append(objectIDs, oid)
		}
	}
	if len(objectIDs) == 0 {
		return nil, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": objectIDs}})
	if err != nil {
		return nil, fmt.Errorf("failed to find pets by ids: %w", err)
	}
	defer cursor.Close(ctx)

	var pets []*model.Pet
	if err = cursor.All(ctx, &pets); err != nil {
		return nil, fmt.Errorf("failed to decode pets: %w", err)
	}

	return pets, nil
}

func (r *mongoPetRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count pets: %w", err)
	}

	return count, nil
}

func (r *mongoPetRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", petserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete pet: %w", err)
	}

	if result.DeletedCount == 0 {
		return petserrors.ErrNotFound
	}

	return nil
}

// Reserve is the concurrency guard for scheduling: a conditional update that
// only matches while the pet is AVAILABLE with no active visit. Of two
// concurrent schedulers exactly one matches; the loser sees ErrNotAvailable.
func (r *mongoPetRepository) Reserve(ctx context.Context, petID, visitID string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	petObjectID, err := primitive.ObjectIDFromHex(petID)
	if err != nil {
		return fmt.Errorf("%w: %s", petserrors.ErrInvalidID, petID)
	}

	filter := bson.M{
		"_id":    petObjectID,
		"status": model.PetAvailable,
		"$or": []bson.M{
			{"active_visit_id": nil},
			{"active_visit_id": bson.M{"$exists": false}},
		},
	}
	update := bson.M{
		"$set": bson.M{
			"status":          model.PetReserved,
			"active_visit_id": visitID,
			"updated_at":      time.Now().UTC().Truncate(time.Millisecond),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to reserve pet: %w", err)
	}

	if result.MatchedCount == 0 {
		return petserrors.ErrNotAvailable
	}

	return nil
}

// MarkAdopted records a PASS outcome: the pet leaves the pool and
// active_visit_id stays pointed at the visit that led to the adoption.
func (r *mongoPetRepository) MarkAdopted(ctx context.Context, petID, visitID string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	petObjectID, err := primitive.ObjectIDFromHex(petID)
	if err != nil {
		return fmt.Errorf("%w: %s", petserrors.ErrInvalidID, petID)
	}

	update := bson.M{
		"$set": bson.M{
			"status":          model.PetAdopted,
			"active_visit_id": visitID,
			"updated_at":      time.Now().UTC().Truncate(time.Millisecond),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": petObjectID}, update)
	if err != nil {
		return fmt.Errorf("failed to mark pet adopted: %w", err)
	}

	if result.MatchedCount == 0 {
		return petserrors.ErrNotFound
	}

	return nil
}

// Release returns the pet to the adoptable pool after a FAIL outcome or an
// orphan retraction.
func (r *mongoPetRepository) Release(ctx context.Context, petID string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	petObjectID, err := primitive.ObjectIDFromHex(petID)
	if err != nil {
		return fmt.Errorf("%w: %s", petserrors.ErrInvalidID, petID)
	}

	update := bson.M{
		"$set": bson.M{
			"status":     model.PetAvailable,
			"updated_at": time.Now().UTC().Truncate(time.Millisecond),
		},
		"$unset": bson.M{
			"active_visit_id": "",
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": petObjectID}, update)
	if err != nil {
		return fmt.Errorf("failed to release pet: %w", err)
	}

	if result.MatchedCount == 0 {
		return petserrors.ErrNotFound
	}

	return nil
}
