package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	cabinserrors "refugio/internal/cabins/errors"
	"refugio/pkg/config"
	"refugio/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Cabins"
)

type mongoCabinRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

type CabinRepository interface {
	Create(ctx context.Context, cabin *model.Cabin) error
	FindByID(ctx context.Context, id string) (*model.Cabin, error)
	FindAll(ctx context.Context, activeOnly bool, limit int, offset int64) ([]*model.Cabin, error)
	Count(ctx context.Context, activeOnly bool) (int64, error)
}

func NewMongoCabinRepository(cfg *config.Config) CabinRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoCabinRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoCabinRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoCabinRepository) Create(ctx context.Context, cabin *model.Cabin) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	cabin.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, cabin)
	if err != nil {
		return fmt.Errorf("failed to create cabin: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		cabin.ID = oid.Hex()
	}
	return nil
}

func (r *mongoCabinRepository) FindByID(ctx context.Context, id string) (*model.Cabin, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", cabinserrors.ErrInvalidID, id)
	}

	var cabin model.Cabin
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&cabin)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, cabinserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find cabin: %w", err)
	}

	return &cabin, nil
}

func (r *mongoCabinRepository) FindAll(ctx context.Context, activeOnly bool, limit int, offset int64) ([]*model.Cabin, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{}
	if activeOnly {
		filter["is_active"] = true
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find cabins: %w", err)
	}
	defer cursor.Close(ctx)

	var cabins []*model.Cabin
	if err = cursor.All(ctx, &cabins); err != nil {
		return nil, fmt.Errorf("failed to decode cabins: %w", err)
	}

	return cabins, nil
}

func (r *mongoCabinRepository) Count(ctx context.Context, activeOnly bool) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{}
	if activeOnly {
		filter["is_active"] = true
	}

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count cabins: %w", err)
	}

	return count, nil
}
