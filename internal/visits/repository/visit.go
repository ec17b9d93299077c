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

	visitserrors "homeward/internal/visits/errors"
	"homeward/pkg/config"
	"homeward/pkg/model"
)

const (
	CollectionName = "visits"
)

// Query scopes for visit listings.
const (
	ScopePending   = "pending"
	ScopeCompleted = "completed"
	ScopeOpen      = "open"
	ScopeClaimed   = "claimed"
	ScopeAll       = "all"
)

// Completion carries everything the conditional completion write sets.
// BackfillClaimedByID is non-nil only when the visit had no claimant, so the
// completer is recorded as the claimant too.
type Completion struct {
	Outcome             string
	Comment             string
	CompletedAt         time.Time
	CompletedBy         model.CompletedBy
	BackfillClaimedByID *string
}

type VisitRepository interface {
	Insert(ctx context.Context, visit *model.Visit) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*model.Visit, error)
	Claim(ctx context.Context, visitID, claimantID string) error
	Complete(ctx context.Context, visitID string, completion Completion) error
	FindByScope(ctx context.Context, scope string, limit int) ([]*model.Visit, error)
	FindOrphanCandidates(ctx context.Context, cutoff time.Time) ([]*model.Visit, error)
}

type mongoVisitRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoVisitRepository(cfg *config.Config) VisitRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoVisitRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoVisitRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		return context.WithTimeout(ctx, time.Until(deadline))
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoVisitRepository) Insert(ctx context.Context, visit *model.Visit) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	visit.CreatedAt = now
	visit.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, visit)
	if err != nil {
		return fmt.Errorf("failed to insert visit: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		visit.ID = oid.Hex()
	}
	return nil
}

// Delete is the compensating action for a failed pet reservation: the only
// case where a visit document is destroyed rather than archived.
func (r *mongoVisitRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", visitserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete visit: %w", err)
	}

	if result.DeletedCount == 0 {
		return visitserrors.ErrNotFound
	}

	return nil
}

func (r *mongoVisitRepository) FindByID(ctx context.Context, id string) (*model.Visit, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", visitserrors.ErrInvalidID, id)
	}

	var visit model.Visit
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&visit)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, visitserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find visit: %w", err)
	}

	return &visit, nil
}

// Claim is a single conditional write: it only matches while the visit is
// OPEN, so a second claimer (or a claim on a completed visit) sees
// ErrNotOpen without any read-modify-write window.
func (r *mongoVisitRepository) Claim(ctx context.Context, visitID, claimantID string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(visitID)
	if err != nil {
		return fmt.Errorf("%w: %s", visitserrors.ErrInvalidID, visitID)
	}

	filter := bson.M{
		"_id":    objectID,
		"status": model.VisitOpen,
	}
	update := bson.M{
		"$set": bson.M{
			"status":        model.VisitClaimed,
			"claimed_by_id": claimantID,
			"updated_at":    time.Now().UTC().Truncate(time.Millisecond),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to claim visit: %w", err)
	}

	if result.MatchedCount == 0 {
		return visitserrors.ErrNotOpen
	}

	return nil
}

func (r *mongoVisitRepository) Complete(ctx context.Context, visitID string, completion Completion) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(visitID)
	if err != nil {
		return fmt.Errorf("%w: %s", visitserrors.ErrInvalidID, visitID)
	}

	filter := bson.M{
		"_id":    objectID,
		"status": bson.M{"$in": []string{model.VisitOpen, model.VisitClaimed}},
	}

	set := bson.M{
		"status":                model.VisitCompleted,
		"outcome":               completion.Outcome,
		"comment":               completion.Comment,
		"background_check_done": true,
		"completed_at":          completion.CompletedAt,
		"completed_by":          completion.CompletedBy,
		"updated_at":            completion.CompletedAt,
	}
	if completion.BackfillClaimedByID != nil {
		set["claimed_by_id"] = *completion.BackfillClaimedByID
	}

	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to complete visit: %w", err)
	}

	if result.MatchedCount == 0 {
		return visitserrors.ErrNotInProgress
	}

	return nil
}

func (r *mongoVisitRepository) FindByScope(ctx context.Context, scope string, limit int) ([]*model.Visit, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := scopeFilter(scope)

	sort := bson.D{{Key: "_id", Value: -1}}
	if scope == ScopeCompleted {
		sort = bson.D{{Key: "completed_at", Value: -1}, {Key: "_id", Value: -1}}
	}

	opts := options.Find().
		SetSort(sort).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find visits: %w", err)
	}
	defer cursor.Close(ctx)

	var visits []*model.Visit
	if err = cursor.All(ctx, &visits); err != nil {
		return nil, fmt.Errorf("failed to decode visits: %w", err)
	}

	return visits, nil
}

func scopeFilter(scope string) bson.M {
	switch scope {
	case ScopePending:
		return bson.M{"status": bson.M{"$in": []string{model.VisitOpen, model.VisitClaimed}}}
	case ScopeCompleted:
		return bson.M{"status": model.VisitCompleted}
	case ScopeOpen:
		return bson.M{"status": model.VisitOpen}
	case ScopeClaimed:
		return bson.M{"status": model.VisitClaimed}
	default:
		return bson.M{}
	}
}

// FindOrphanCandidates returns OPEN, never-claimed visits older than the
// cutoff. Whether a candidate is a true orphan (pet never reserved for it)
// is decided by the caller against the pets collection.
func (r *mongoVisitRepository) FindOrphanCandidates(ctx context.Context, cutoff time.Time) ([]*model.Visit, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"status": model.VisitOpen,
		"$or": []bson.M{
			{"claimed_by_id": nil},
			{"claimed_by_id": bson.M{"$exists": false}},
		},
		"created_at": bson.M{"$lt": cutoff},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find orphan candidates: %w", err)
	}
	defer cursor.Close(ctx)

	var visits []*model.Visit
	if err = cursor.All(ctx, &visits); err != nil {
		return nil, fmt.Errorf("failed to decode orphan candidates: %w", err)
	}

	return visits, nil
}
