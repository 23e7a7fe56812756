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
	CollectionName = "coupons"
)

type mongoCouponRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

type CouponRepository interface {
	Create(ctx context.Context, coupon *model.Coupon) error
	FindAll(ctx context.Context) ([]*model.Coupon, error)
	FindByCode(ctx context.Context, code string) (*model.Coupon, error)
	FindByCodeExcludingID(ctx context.Context, code string, excludeID string) (*model.Coupon, error)
	Update(ctx context.Context, id string, coupon *model.Coupon) error
	Delete(ctx context.Context, id string) error
}

func NewMongoCouponRepository(cfg *config.Config) CouponRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoCouponRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoCouponRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoCouponRepository) Create(ctx context.Context, coupon *model.Coupon) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	coupon.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, coupon)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateCode
		}
		return fmt.Errorf("failed to create coupon: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		coupon.ID = oid.Hex()
	}
	return nil
}

func (r *mongoCouponRepository) FindAll(ctx context.Context) ([]*model.Coupon, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to find coupons: %w", err)
	}
	defer cursor.Close(ctx)

	coupons := []*model.Coupon{}
	if err = cursor.All(ctx, &coupons); err != nil {
		return nil, fmt.Errorf("failed to decode coupons: %w", err)
	}

	return coupons, nil
}

func (r *mongoCouponRepository) FindByCode(ctx context.Context, code string) (*model.Coupon, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var coupon model.Coupon
	err := r.collection.FindOne(ctx, bson.M{"code": code}).Decode(&coupon)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find coupon: %w", err)
	}

	return &coupon, nil
}

// FindByCodeExcludingID backs the duplicate-code check on update: the coupon
// being updated may of course keep its own code.
func (r *mongoCouponRepository) FindByCodeExcludingID(ctx context.Context, code string, excludeID string) (*model.Coupon, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(excludeID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidID, excludeID)
	}

	var coupon model.Coupon
	err = r.collection.FindOne(ctx, bson.M{
		"code": code,
		"_id":  bson.M{"$ne": objectID},
	}).Decode(&coupon)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find coupon: %w", err)
	}

	return &coupon, nil
}

func (r *mongoCouponRepository) Update(ctx context.Context, id string, coupon *model.Coupon) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidID, id)
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	update := bson.M{
		"$set": bson.M{
			"code":       coupon.Code,
			"discount":   coupon.Discount,
			"updated_at": now,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateCode
		}
		return fmt.Errorf("failed to update coupon: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *mongoCouponRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete coupon: %w", err)
	}

	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}
