package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"squadly/pkg/config"
	"squadly/pkg/model"
)

const (
	CollectionName = "courts"
)

var (
	ErrNotFound = errors.New("court not found")

	ErrInvalidID = errors.New("invalid court ID format")
)

type mongoCourtRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

type CourtRepository interface {
	Create(ctx context.Context, court *model.Court) error
	FindAll(ctx context.Context) ([]*model.Court, error)
	Update(ctx context.Context, id string, court *model.Court) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

func NewMongoCourtRepository(cfg *config.Config) CourtRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoCourtRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoCourtRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoCourtRepository) Create(ctx context.Context, court *model.Court) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	court.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, court)
	if err != nil {
		return fmt.Errorf("failed to create court: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		court.ID = oid.Hex()
	}
	return nil
}

func (r *mongoCourtRepository) FindAll(ctx context.Context) ([]*model.Court, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to find courts: %w", err)
	}
	defer cursor.Close(ctx)

	courts := []*model.Court{}
	if err = cursor.All(ctx, &courts); err != nil {
		return nil, fmt.Errorf("failed to decode courts: %w", err)
	}

	return courts, nil
}

func (r *mongoCourtRepository) Update(ctx context.Context, id string, court *model.Court) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidID, id)
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	update := bson.M{
		"$set": bson.M{
			"type":              court.Type,
			"time_slots":        court.TimeSlots,
			"price_per_session": court.PricePerSession,
			"image_url":         court.ImageURL,
			"updated_at":        now,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to update court: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *mongoCourtRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete court: %w", err)
	}

	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *mongoCourtRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count courts: %w", err)
	}
	return count, nil
}
