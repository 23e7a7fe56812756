package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"squadly/pkg/client"
	"squadly/pkg/config"
	"squadly/pkg/logger"
	"squadly/pkg/model"
)

const testDatabaseName = "squadlyTestDB"

// newTestRepository connects to the Mongo instance named by TEST_MONGO_URI
// and returns a repository backed by a clean bookings collection. Tests are
// skipped when no instance is available.
func newTestRepository(t *testing.T) BookingRepository {
	t.Helper()

	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set, skipping Mongo-backed tests")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("failed to connect to mongo: %v", err)
	}
	if err := mongoClient.Ping(ctx, nil); err != nil {
		t.Fatalf("failed to ping mongo: %v", err)
	}

	collection := mongoClient.Database(testDatabaseName).Collection(CollectionName)
	if err := collection.Drop(ctx); err != nil {
		t.Fatalf("failed to drop bookings collection: %v", err)
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = collection.Drop(ctx)
		_ = mongoClient.Disconnect(ctx)
	})

	cfg := &config.Config{
		MongoDatabaseName: testDatabaseName,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      5 * time.Second,
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.JSON,
			Service: "bookings-repository-tests",
		}),
		Client: &client.Client{Mongo: mongoClient},
	}
	return NewMongoBookingRepository(cfg)
}

func TestFindApprovedUnpaid_ExcludesPaidBookings(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	unpaid := &model.Booking{
		UserEmail: "alice@example.com",
		CourtType: "padel",
		Status:    model.StatusApproved,
	}
	if err := repo.Create(ctx, unpaid); err != nil {
		t.Fatalf("failed to create unpaid booking: %v", err)
	}

	paid := &model.Booking{
		UserEmail: "alice@example.com",
		CourtType: "tennis",
		Status:    model.StatusApproved,
	}
	if err := repo.Create(ctx, paid); err != nil {
		t.Fatalf("failed to create paid booking: %v", err)
	}
	if err := repo.SetConfirmed(ctx, paid.ID, "507f1f77bcf86cd799439099", time.Now().UTC().Truncate(time.Millisecond)); err != nil {
		t.Fatalf("failed to confirm booking: %v", err)
	}
	// Flip the status back while keeping payment_id set. An approved booking
	// that already carries a payment reference must stay out of the payable
	// list regardless of status.
	if err := repo.SetApproved(ctx, paid.ID, time.Now().UTC().Truncate(time.Millisecond)); err != nil {
		t.Fatalf("failed to re-approve booking: %v", err)
	}

	pending := &model.Booking{
		UserEmail: "alice@example.com",
		Status:    model.StatusPending,
	}
	if err := repo.Create(ctx, pending); err != nil {
		t.Fatalf("failed to create pending booking: %v", err)
	}

	otherUser := &model.Booking{
		UserEmail: "bob@example.com",
		Status:    model.StatusApproved,
	}
	if err := repo.Create(ctx, otherUser); err != nil {
		t.Fatalf("failed to create other user's booking: %v", err)
	}

	results, err := repo.FindApprovedUnpaid(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 approved unpaid booking, got %d", len(results))
	}
	if results[0].ID != unpaid.ID {
		t.Errorf("expected booking %s, got %s", unpaid.ID, results[0].ID)
	}
	for _, b := range results {
		if b.PaymentID != "" {
			t.Errorf("booking %s has a payment reference, must not be listed as payable", b.ID)
		}
	}
}

func TestFindConfirmedByUser_SortedByPaidAtDescending(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Millisecond)
	paidTimes := []time.Time{
		base.Add(-48 * time.Hour),
		base,
		base.Add(-24 * time.Hour),
	}

	ids := make([]string, len(paidTimes))
	for i, paidAt := range paidTimes {
		booking := &model.Booking{
			UserEmail: "alice@example.com",
			Status:    model.StatusPending,
		}
		if err := repo.Create(ctx, booking); err != nil {
			t.Fatalf("failed to create booking %d: %v", i, err)
		}
		if err := repo.SetConfirmed(ctx, booking.ID, "507f1f77bcf86cd7994390aa", paidAt); err != nil {
			t.Fatalf("failed to confirm booking %d: %v", i, err)
		}
		ids[i] = booking.ID
	}

	otherUser := &model.Booking{
		UserEmail: "bob@example.com",
		Status:    model.StatusPending,
	}
	if err := repo.Create(ctx, otherUser); err != nil {
		t.Fatalf("failed to create other user's booking: %v", err)
	}
	if err := repo.SetConfirmed(ctx, otherUser.ID, "507f1f77bcf86cd7994390ab", base.Add(time.Hour)); err != nil {
		t.Fatalf("failed to confirm other user's booking: %v", err)
	}

	results, err := repo.FindConfirmedByUser(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 confirmed bookings, got %d", len(results))
	}

	// Most recent payment first: base, base-24h, base-48h.
	wantOrder := []string{ids[1], ids[2], ids[0]}
	for i, want := range wantOrder {
		if results[i].ID != want {
			t.Errorf("position %d: expected booking %s, got %s", i, want, results[i].ID)
		}
	}
	for i := 1; i < len(results); i++ {
		prev, curr := results[i-1].PaidAt, results[i].PaidAt
		if prev == nil || curr == nil {
			t.Fatalf("confirmed booking missing paid_at at position %d", i)
		}
		if curr.After(*prev) {
			t.Errorf("results not sorted by paid_at descending: %v before %v", prev, curr)
		}
	}
}
