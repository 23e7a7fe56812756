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

	bookingserrors "squadly/internal/bookings/errors"
	"squadly/pkg/config"
	mongotx "squadly/pkg/db/mongo"
	"squadly/pkg/model"
)

const (
	CollectionName = "bookings"
)

// memberStatuses is the denormalized membership predicate: a user with at
// least one booking in these statuses is a member.
var memberStatuses = []model.BookingStatus{model.StatusApproved, model.StatusConfirmed}

type mongoBookingRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	FindByID(ctx context.Context, id string) (*model.Booking, error)
	FindByStatus(ctx context.Context, status model.BookingStatus) ([]*model.Booking, error)
	FindByUserAndStatus(ctx context.Context, email string, status model.BookingStatus) ([]*model.Booking, error)
	FindApprovedUnpaid(ctx context.Context, email string) ([]*model.Booking, error)
	FindConfirmedByUser(ctx context.Context, email string) ([]*model.Booking, error)
	SetApproved(ctx context.Context, id string, approvedAt time.Time) error
	SetConfirmed(ctx context.Context, id string, paymentID string, paidAt time.Time) error
	Delete(ctx context.Context, id string) error
	DistinctMemberEmails(ctx context.Context) ([]string, error)
	CountMemberBookings(ctx context.Context, email string) (int64, error)
	DeleteMemberBookings(ctx context.Context, email string) (int64, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// withTimeout wraps the context with a timeout unless already inside a
// transaction; a SessionContext cannot be wrapped without breaking
// transaction semantics.
func (r *mongoBookingRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	booking.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		booking.ID = oid.Hex()
	}
	return nil
}

func (r *mongoBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	var booking model.Booking
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}

	return &booking, nil
}

func (r *mongoBookingRepository) FindByStatus(ctx context.Context, status model.BookingStatus) ([]*model.Booking, error) {
	return r.findAll(ctx, bson.M{"status": status}, nil)
}

func (r *mongoBookingRepository) FindByUserAndStatus(ctx context.Context, email string, status model.BookingStatus) ([]*model.Booking, error) {
	return r.findAll(ctx, bson.M{"user_email": email, "status": status}, nil)
}

// FindApprovedUnpaid surfaces approved bookings still awaiting payment. A
// booking that already carries a payment reference is confirmed in all but
// name and must not reappear in the payable list.
func (r *mongoBookingRepository) FindApprovedUnpaid(ctx context.Context, email string) ([]*model.Booking, error) {
	filter := bson.M{
		"user_email": email,
		"status":     model.StatusApproved,
		"payment_id": bson.M{"$exists": false},
	}
	return r.findAll(ctx, filter, nil)
}

func (r *mongoBookingRepository) FindConfirmedByUser(ctx context.Context, email string) ([]*model.Booking, error) {
	filter := bson.M{
		"user_email": email,
		"status":     model.StatusConfirmed,
	}
	opts := options.Find().SetSort(bson.D{{Key: "paid_at", Value: -1}})
	return r.findAll(ctx, filter, opts)
}

func (r *mongoBookingRepository) findAll(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = r.collection.Find(ctx, filter, opts)
	} else {
		cursor, err = r.collection.Find(ctx, filter)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []*model.Booking{}
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return bookings, nil
}

func (r *mongoBookingRepository) SetApproved(ctx context.Context, id string, approvedAt time.Time) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"status":      model.StatusApproved,
			"approved_at": approvedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to approve booking: %w", err)
	}

	if result.MatchedCount == 0 {
		return bookingserrors.ErrNotFound
	}

	return nil
}

func (r *mongoBookingRepository) SetConfirmed(ctx context.Context, id string, paymentID string, paidAt time.Time) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"status":     model.StatusConfirmed,
			"payment_id": paymentID,
			"paid_at":    paidAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to confirm booking: %w", err)
	}

	if result.MatchedCount == 0 {
		return bookingserrors.ErrNotFound
	}

	return nil
}

func (r *mongoBookingRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}

	if result.DeletedCount == 0 {
		return bookingserrors.ErrNotFound
	}

	return nil
}

func (r *mongoBookingRepository) DistinctMemberEmails(ctx context.Context) ([]string, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	values, err := r.collection.Distinct(ctx, "user_email", bson.M{"status": bson.M{"$in": memberStatuses}})
	if err != nil {
		return nil, fmt.Errorf("failed to list member emails: %w", err)
	}

	emails := make([]string, 0, len(values))
	for _, v := range values {
		if email, ok := v.(string); ok {
			emails = append(emails, email)
		}
	}
	return emails, nil
}

func (r *mongoBookingRepository) CountMemberBookings(ctx context.Context, email string) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{
		"user_email": email,
		"status":     bson.M{"$in": memberStatuses},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count member bookings: %w", err)
	}
	return count, nil
}

func (r *mongoBookingRepository) DeleteMemberBookings(ctx context.Context, email string) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteMany(ctx, bson.M{
		"user_email": email,
		"status":     bson.M{"$in": memberStatuses},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete member bookings: %w", err)
	}
	return result.DeletedCount, nil
}

func (r *mongoBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
