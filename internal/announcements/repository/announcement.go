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

	"squadly/pkg/config"
	"squadly/pkg/model"
)

const (
	CollectionName = "announcements"
)

var (
	ErrNotFound = errors.New("announcement not found")

	ErrInvalidID = errors.New("invalid announcement ID format")
)

type mongoAnnouncementRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

type AnnouncementRepository interface {
	Create(ctx context.Context, announcement *model.Announcement) error
	FindAll(ctx context.Context) ([]*model.Announcement, error)
	Upsert(ctx context.Context, id string, announcement *model.Announcement) error
	Delete(ctx context.Context, id string) error
}

func NewMongoAnnouncementRepository(cfg *config.Config) AnnouncementRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoAnnouncementRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoAnnouncementRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoAnnouncementRepository) Create(ctx context.Context, announcement *model.Announcement) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	announcement.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, announcement)
	if err != nil {
		return fmt.Errorf("failed to create announcement: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		announcement.ID = oid.Hex()
	}
	return nil
}

func (r *mongoAnnouncementRepository) FindAll(ctx context.Context) ([]*model.Announcement, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to find announcements: %w", err)
	}
	defer cursor.Close(ctx)

	announcements := []*model.Announcement{}
	if err = cursor.All(ctx, &announcements); err != nil {
		return nil, fmt.Errorf("failed to decode announcements: %w", err)
	}

	return announcements, nil
}

// Upsert replaces the announcement body at the given id, creating the
// document if it does not exist.
func (r *mongoAnnouncementRepository) Upsert(ctx context.Context, id string, announcement *model.Announcement) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidID, id)
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	update := bson.M{
		"$set": bson.M{
			"title":      announcement.Title,
			"message":    announcement.Message,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"created_at": now,
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update, opts); err != nil {
		return fmt.Errorf("failed to upsert announcement: %w", err)
	}

	return nil
}

func (r *mongoAnnouncementRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete announcement: %w", err)
	}

	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}
