package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	bookingserrors "squadly/internal/bookings/errors"
	bookingsrepo "squadly/internal/bookings/repository"
	"squadly/internal/events"
	"squadly/internal/payments/repository"
	"squadly/internal/payments/validator"
	"squadly/pkg/config"
	apperrors "squadly/pkg/errors"
	"squadly/pkg/model"
)

type PaymentService interface {
	Process(ctx context.Context, payment *model.Payment) (*model.Payment, error)
	HistoryForUser(ctx context.Context, email string) ([]*model.PaymentWithBooking, error)
}

type paymentService struct {
	repo        repository.PaymentRepository
	bookingRepo bookingsrepo.BookingRepository
	validator   *validator.PaymentValidator
	publisher   events.Publisher
	cfg         *config.Config
}

func NewPaymentService(
	repo repository.PaymentRepository,
	bookingRepo bookingsrepo.BookingRepository,
	paymentValidator *validator.PaymentValidator,
	publisher events.Publisher,
	cfg *config.Config,
) PaymentService {
	return &paymentService{
		repo:        repo,
		bookingRepo: bookingRepo,
		validator:   paymentValidator,
		publisher:   publisher,
		cfg:         cfg,
	}
}

// Process creates the payment and confirms its booking in one Mongo
// transaction, so the payment and the confirmation become visible together.
// The booking does not have to be approved first, and the amount is taken as
// given: the coupon code is informational only.
func (s *paymentService) Process(ctx context.Context, payment *model.Payment) (*model.Payment, error) {
	payment.Status = model.PaymentStatusCompleted

	if err := s.validator.Validate(payment); err != nil {
		s.cfg.Log.Warn("Payment validation failed", "error", err)
		return nil, apperrors.Validation("Payment validation failed", map[string]any{"error": err.Error()})
	}

	booking, err := s.bookingRepo.FindByID(ctx, payment.BookingID)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", payment.BookingID)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	if !booking.Status.CanTransition(model.StatusConfirmed) {
		return nil, apperrors.Conflict("Booking cannot be confirmed from status " + string(booking.Status))
	}

	paidAt := time.Now().UTC().Truncate(time.Millisecond)
	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		// The driver may retry this callback on transient transaction errors.
		// A retried insert must not reuse the _id assigned by an aborted
		// attempt; Create re-stamps ID and CreatedAt on every attempt.
		payment.ID = ""
		if err := s.repo.Create(sessCtx, payment); err != nil {
			return apperrors.Internal("Failed to create payment", err)
		}
		if err := s.bookingRepo.SetConfirmed(sessCtx, payment.BookingID, payment.ID, paidAt); err != nil {
			if errors.Is(err, bookingserrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Booking", payment.BookingID)
			}
			return apperrors.Internal("Failed to confirm booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to process payment", "booking_id", payment.BookingID, "error", err)
		return nil, err
	}

	s.cfg.Log.Info("Payment processed",
		"payment_id", payment.ID,
		"booking_id", payment.BookingID,
		"user_email", payment.UserEmail,
		"amount", payment.Amount,
	)

	s.publisher.PaymentCompleted(ctx, payment)

	return payment, nil
}

func (s *paymentService) HistoryForUser(ctx context.Context, email string) ([]*model.PaymentWithBooking, error) {
	if email == "" {
		return nil, apperrors.InvalidInput("Email cannot be empty")
	}

	history, err := s.repo.HistoryByUser(ctx, email)
	if err != nil {
		s.cfg.Log.Error("Failed to retrieve payment history", "user_email", email, "error", err)
		return nil, apperrors.Internal("Failed to retrieve payment history", err)
	}

	return history, nil
}
