package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	reservationserrors "refugio/internal/reservations/errors"
	"refugio/pkg/config"
	mongotx "refugio/pkg/db/mongo"
	"refugio/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Reservations"
)

type mongoReservationRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

type ReservationRepository interface {
	Create(ctx context.Context, reservation *model.Reservation) error
	FindByID(ctx context.Context, id string) (*model.Reservation, error)
	FindAll(ctx context.Context, status model.Status, limit int, offset int64) ([]*model.Reservation, error)
	FindByCabin(ctx context.Context, cabinID string) ([]*model.Reservation, error)
	FindBlockingByCabin(ctx context.Context, cabinID string, start, end time.Time) ([]*model.Reservation, error)
	UpdateStatus(ctx context.Context, id string, status model.Status) (*model.Reservation, error)
	Count(ctx context.Context, status model.Status) (int64, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

func NewMongoReservationRepository(cfg *config.Config) ReservationRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoReservationRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// withTimeout wraps the context with a timeout if not already in a transaction.
// When inside a transaction (SessionContext), returns the original context unchanged
// with a no-op cancel function, as we cannot wrap SessionContext without breaking
// transaction semantics.
func (r *mongoReservationRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoReservationRepository) Create(ctx context.Context, reservation *model.Reservation) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	reservation.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, reservation)
	if err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		reservation.ID = oid.Hex()
	}
	return nil
}

func (r *mongoReservationRepository) FindByID(ctx context.Context, id string) (*model.Reservation, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", reservationserrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID}

	var reservation model.Reservation
	err = r.collection.FindOne(ctx, filter).Decode(&reservation)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, reservationserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find reservation: %w", err)
	}

	return &reservation, nil
}

func (r *mongoReservationRepository) FindAll(ctx context.Context, status model.Status, limit int, offset int64) ([]*model.Reservation, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "start_date", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find reservations: %w", err)
	}
	defer cursor.Close(ctx)

	var reservations []*model.Reservation
	if err = cursor.All(ctx, &reservations); err != nil {
		return nil, fmt.Errorf("failed to decode reservations: %w", err)
	}

	return reservations, nil
}

func (r *mongoReservationRepository) FindByCabin(ctx context.Context, cabinID string) ([]*model.Reservation, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "start_date", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"cabin_id": cabinID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find reservations by cabin: %w", err)
	}
	defer cursor.Close(ctx)

	var reservations []*model.Reservation
	if err = cursor.All(ctx, &reservations); err != nil {
		return nil, fmt.Errorf("failed to decode reservations: %w", err)
	}

	return reservations, nil
}

// FindBlockingByCabin returns PENDING and CONFIRMED reservations of the
// cabin whose inclusive date range overlaps [start, end].
func (r *mongoReservationRepository) FindBlockingByCabin(ctx context.Context, cabinID string, start, end time.Time) ([]*model.Reservation, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"cabin_id":   cabinID,
		"status":     bson.M{"$in": []model.Status{model.StatusPending, model.StatusConfirmed}},
		"start_date": bson.M{"$lte": end},
		"end_date":   bson.M{"$gte": start},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find blocking reservations: %w", err)
	}
	defer cursor.Close(ctx)

	var reservations []*model.Reservation
	if err = cursor.All(ctx, &reservations); err != nil {
		return nil, fmt.Errorf("failed to decode blocking reservations: %w", err)
	}

	return reservations, nil
}

func (r *mongoReservationRepository) UpdateStatus(ctx context.Context, id string, status model.Status) (*model.Reservation, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", reservationserrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID}
	update := bson.M{
		"$set": bson.M{
			"status":     status,
			"updated_at": time.Now().UTC().Truncate(time.Millisecond),
		},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated model.Reservation
	err = r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, reservationserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update reservation status: %w", err)
	}

	return &updated, nil
}

func (r *mongoReservationRepository) Count(ctx context.Context, status model.Status) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count reservations: %w", err)
	}

	return count, nil
}

func (r *mongoReservationRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
