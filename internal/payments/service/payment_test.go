package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	bookingserrors "squadly/internal/bookings/errors"
	"squadly/internal/events"
	"squadly/internal/payments/validator"
	"squadly/pkg/config"
	mongotx "squadly/pkg/db/mongo"
	apperrors "squadly/pkg/errors"
	"squadly/pkg/logger"
	"squadly/pkg/model"
)

// ────────────────────────────────────────────────
// Mock repositories for testing
// ────────────────────────────────────────────────

type mockPaymentRepository struct {
	createFunc             func(ctx context.Context, payment *model.Payment) error
	historyByUserFunc      func(ctx context.Context, email string) ([]*model.PaymentWithBooking, error)
	executeTransactionFunc func(ctx context.Context, fn mongotx.TransactionFunc) error
	txErr                  error
}

func (m *mockPaymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, payment)
	}
	payment.ID = "507f1f77bcf86cd799439099"
	return nil
}

func (m *mockPaymentRepository) HistoryByUser(ctx context.Context, email string) ([]*model.PaymentWithBooking, error) {
	if m.historyByUserFunc != nil {
		return m.historyByUserFunc(ctx, email)
	}
	return []*model.PaymentWithBooking{}, nil
}

func (m *mockPaymentRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	if m.executeTransactionFunc != nil {
		return m.executeTransactionFunc(ctx, fn)
	}
	if m.txErr != nil {
		return m.txErr
	}
	return fn(nil)
}

type mockBookingRepository struct {
	findByIDFunc     func(ctx context.Context, id string) (*model.Booking, error)
	setConfirmedFunc func(ctx context.Context, id string, paymentID string, paidAt time.Time) error
}

func (m *mockBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	return nil
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, bookingserrors.ErrNotFound
}

func (m *mockBookingRepository) FindByStatus(ctx context.Context, status model.BookingStatus) ([]*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingRepository) FindByUserAndStatus(ctx context.Context, email string, status model.BookingStatus) ([]*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingRepository) FindApprovedUnpaid(ctx context.Context, email string) ([]*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingRepository) FindConfirmedByUser(ctx context.Context, email string) ([]*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingRepository) SetApproved(ctx context.Context, id string, approvedAt time.Time) error {
	return nil
}

func (m *mockBookingRepository) SetConfirmed(ctx context.Context, id string, paymentID string, paidAt time.Time) error {
	if m.setConfirmedFunc != nil {
		return m.setConfirmedFunc(ctx, id, paymentID, paidAt)
	}
	return nil
}

func (m *mockBookingRepository) Delete(ctx context.Context, id string) error {
	return nil
}

func (m *mockBookingRepository) DistinctMemberEmails(ctx context.Context) ([]string, error) {
	return nil, nil
}

func (m *mockBookingRepository) CountMemberBookings(ctx context.Context, email string) (int64, error) {
	return 0, nil
}

func (m *mockBookingRepository) DeleteMemberBookings(ctx context.Context, email string) (int64, error) {
	return 0, nil
}

func (m *mockBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

type recordingPublisher struct {
	completed []*model.Payment
}

func (p *recordingPublisher) BookingApproved(ctx context.Context, booking *model.Booking) {}

func (p *recordingPublisher) PaymentCompleted(ctx context.Context, payment *model.Payment) {
	p.completed = append(p.completed, payment)
}

func testConfig() *config.Config {
	log := logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	return &config.Config{
		Log:          log,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}

func newTestService(repo *mockPaymentRepository, bookingRepo *mockBookingRepository, publisher events.Publisher) PaymentService {
	cfg := testConfig()
	if publisher == nil {
		publisher = events.NewNoopPublisher()
	}
	return NewPaymentService(repo, bookingRepo, validator.NewPaymentValidator(cfg.Log), publisher, cfg)
}

func pendingBooking(id string) *model.Booking {
	return &model.Booking{ID: id, UserEmail: "player@example.com", Status: model.StatusPending}
}

// ────────────────────────────────────────────────
// Tests for Process()
// ────────────────────────────────────────────────

func TestProcess_ConfirmsBookingWithPayment(t *testing.T) {
	var confirmedBookingID, confirmedPaymentID string
	mockBookings := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return pendingBooking(id), nil
		},
		setConfirmedFunc: func(ctx context.Context, id string, paymentID string, paidAt time.Time) error {
			confirmedBookingID = id
			confirmedPaymentID = paymentID
			return nil
		},
	}
	mockRepo := &mockPaymentRepository{}
	publisher := &recordingPublisher{}
	svc := newTestService(mockRepo, mockBookings, publisher)

	payment := &model.Payment{
		BookingID: "507f1f77bcf86cd799439011",
		UserEmail: "player@example.com",
		Amount:    45.50,
	}

	processed, err := svc.Process(context.Background(), payment)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if processed.Status != model.PaymentStatusCompleted {
		t.Errorf("expected status completed, got %s", processed.Status)
	}
	if confirmedBookingID != payment.BookingID {
		t.Errorf("expected booking %s confirmed, got %q", payment.BookingID, confirmedBookingID)
	}
	if confirmedPaymentID != processed.ID {
		t.Errorf("expected booking linked to payment %s, got %q", processed.ID, confirmedPaymentID)
	}
	if len(publisher.completed) != 1 {
		t.Fatalf("expected 1 completed event, got %d", len(publisher.completed))
	}
}

func TestProcess_BookingNotFound(t *testing.T) {
	mockBookings := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return nil, bookingserrors.ErrNotFound
		},
	}
	svc := newTestService(&mockPaymentRepository{}, mockBookings, nil)

	_, err := svc.Process(context.Background(), &model.Payment{
		BookingID: "507f1f77bcf86cd799439011",
		UserEmail: "player@example.com",
		Amount:    45.50,
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeNotFound {
		t.Errorf("expected code %s, got %s", apperrors.CodeNotFound, appErr.Code)
	}
}

func TestProcess_ValidationFailure(t *testing.T) {
	tests := []struct {
		name    string
		payment *model.Payment
	}{
		{"missing booking id", &model.Payment{UserEmail: "player@example.com", Amount: 10}},
		{"zero amount", &model.Payment{BookingID: "507f1f77bcf86cd799439011", UserEmail: "player@example.com", Amount: 0}},
		{"negative amount", &model.Payment{BookingID: "507f1f77bcf86cd799439011", UserEmail: "player@example.com", Amount: -5}},
		{"bad email", &model.Payment{BookingID: "507f1f77bcf86cd799439011", UserEmail: "nope", Amount: 10}},
	}

	svc := newTestService(&mockPaymentRepository{}, &mockBookingRepository{}, nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Process(context.Background(), tt.payment)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeValidation {
				t.Errorf("expected code %s, got %s", apperrors.CodeValidation, appErr.Code)
			}
		})
	}
}

func TestProcess_TransactionFailure(t *testing.T) {
	mockBookings := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return pendingBooking(id), nil
		},
	}
	mockRepo := &mockPaymentRepository{
		txErr: apperrors.Internal("transaction aborted", fmt.Errorf("write conflict")),
	}
	publisher := &recordingPublisher{}
	svc := newTestService(mockRepo, mockBookings, publisher)

	_, err := svc.Process(context.Background(), &model.Payment{
		BookingID: "507f1f77bcf86cd799439011",
		UserEmail: "player@example.com",
		Amount:    45.50,
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if len(publisher.completed) != 0 {
		t.Error("no event should be published when the transaction fails")
	}
}

func TestProcess_RetriedTransactionInsertsWithFreshID(t *testing.T) {
	mockBookings := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return pendingBooking(id), nil
		},
	}

	var createdIDs []string
	mockRepo := &mockPaymentRepository{
		createFunc: func(ctx context.Context, p *model.Payment) error {
			createdIDs = append(createdIDs, p.ID)
			p.ID = "507f1f77bcf86cd799439099"
			return nil
		},
	}
	// Run the callback twice, the way the driver does after a transient
	// transaction error aborts the first attempt.
	mockRepo.executeTransactionFunc = func(ctx context.Context, fn mongotx.TransactionFunc) error {
		if err := fn(nil); err != nil {
			return err
		}
		return fn(nil)
	}
	svc := newTestService(mockRepo, mockBookings, nil)

	processed, err := svc.Process(context.Background(), &model.Payment{
		BookingID: "507f1f77bcf86cd799439011",
		UserEmail: "player@example.com",
		Amount:    45.50,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(createdIDs) != 2 {
		t.Fatalf("expected 2 insert attempts, got %d", len(createdIDs))
	}
	for i, id := range createdIDs {
		if id != "" {
			t.Errorf("attempt %d inserted with stale ID %q, want empty", i+1, id)
		}
	}
	if processed.ID != "507f1f77bcf86cd799439099" {
		t.Errorf("expected processed payment to carry the inserted ID, got %q", processed.ID)
	}
}

func TestProcess_AlreadyConfirmedBookingAcceptsRepayment(t *testing.T) {
	mockBookings := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return &model.Booking{ID: id, UserEmail: "player@example.com", Status: model.StatusConfirmed}, nil
		},
	}
	svc := newTestService(&mockPaymentRepository{}, mockBookings, nil)

	_, err := svc.Process(context.Background(), &model.Payment{
		BookingID: "507f1f77bcf86cd799439011",
		UserEmail: "player@example.com",
		Amount:    45.50,
	})
	if err != nil {
		t.Fatalf("re-confirming a confirmed booking should succeed, got: %v", err)
	}
}

// ────────────────────────────────────────────────
// Tests for HistoryForUser()
// ────────────────────────────────────────────────

func TestHistoryForUser(t *testing.T) {
	mockRepo := &mockPaymentRepository{
		historyByUserFunc: func(ctx context.Context, email string) ([]*model.PaymentWithBooking, error) {
			if email != "player@example.com" {
				t.Errorf("unexpected email: %s", email)
			}
			return []*model.PaymentWithBooking{
				{Payment: model.Payment{ID: "1", Amount: 30}},
				{Payment: model.Payment{ID: "2", Amount: 45}, Booking: &model.Booking{ID: "b1"}},
			}, nil
		},
	}
	svc := newTestService(mockRepo, &mockBookingRepository{}, nil)

	history, err := svc.HistoryForUser(context.Background(), "player@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(history))
	}
	if history[0].Booking != nil {
		t.Error("expected first entry to have no booking attached")
	}
}

func TestHistoryForUser_EmptyEmail(t *testing.T) {
	svc := newTestService(&mockPaymentRepository{}, &mockBookingRepository{}, nil)

	_, err := svc.HistoryForUser(context.Background(), "")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeInvalidInput {
		t.Errorf("expected code %s, got %s", apperrors.CodeInvalidInput, appErr.Code)
	}
}
