package service

import (
	"context"
	"errors"
	"time"

	bookingserrors "squadly/internal/bookings/errors"
	"squadly/internal/bookings/repository"
	"squadly/internal/bookings/validator"
	"squadly/internal/events"
	"squadly/pkg/config"
	apperrors "squadly/pkg/errors"
	"squadly/pkg/model"
)

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) error
	ListPending(ctx context.Context) ([]*model.Booking, error)
	ListPendingForUser(ctx context.Context, email string) ([]*model.Booking, error)
	ListApprovedForUser(ctx context.Context, email string) ([]*model.Booking, error)
	ListConfirmedForUser(ctx context.Context, email string) ([]*model.Booking, error)
	Approve(ctx context.Context, id string) error
	Reject(ctx context.Context, id string) error
	Cancel(ctx context.Context, id string) error
}

type bookingService struct {
	repo      repository.BookingRepository
	validator *validator.BookingValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	bookingValidator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		validator: bookingValidator,
		publisher: publisher,
		cfg:       cfg,
	}
}

// Create persists a new pending booking. No overlap check is made against
// existing bookings for the same court and slot; requests for a taken slot
// surface later when an admin declines to approve them.
func (s *bookingService) Create(ctx context.Context, booking *model.Booking) error {
	booking.Status = model.StatusPending
	booking.PaymentID = ""
	booking.ApprovedAt = nil
	booking.PaidAt = nil

	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		s.cfg.Log.Error("Failed to create booking", "error", err)
		return apperrors.Internal("Failed to create booking", err)
	}

	s.cfg.Log.Info("Booking created",
		"id", booking.ID,
		"user_email", booking.UserEmail,
		"court_id", booking.CourtID,
	)
	return nil
}

func (s *bookingService) ListPending(ctx context.Context) ([]*model.Booking, error) {
	bookings, err := s.repo.FindByStatus(ctx, model.StatusPending)
	if err != nil {
		s.cfg.Log.Error("Failed to list pending bookings", "error", err)
		return nil, apperrors.Internal("Failed to retrieve pending bookings", err)
	}
	return bookings, nil
}

func (s *bookingService) ListPendingForUser(ctx context.Context, email string) ([]*model.Booking, error) {
	if email == "" {
		return nil, apperrors.InvalidInput("Email cannot be empty")
	}
	bookings, err := s.repo.FindByUserAndStatus(ctx, email, model.StatusPending)
	if err != nil {
		s.cfg.Log.Error("Failed to list pending bookings", "user_email", email, "error", err)
		return nil, apperrors.Internal("Failed to retrieve pending bookings", err)
	}
	return bookings, nil
}

func (s *bookingService) ListApprovedForUser(ctx context.Context, email string) ([]*model.Booking, error) {
	if email == "" {
		return nil, apperrors.InvalidInput("Email cannot be empty")
	}
	bookings, err := s.repo.FindApprovedUnpaid(ctx, email)
	if err != nil {
		s.cfg.Log.Error("Failed to list approved bookings", "user_email", email, "error", err)
		return nil, apperrors.Internal("Failed to retrieve approved bookings", err)
	}
	return bookings, nil
}

func (s *bookingService) ListConfirmedForUser(ctx context.Context, email string) ([]*model.Booking, error) {
	if email == "" {
		return nil, apperrors.InvalidInput("Email cannot be empty")
	}
	bookings, err := s.repo.FindConfirmedByUser(ctx, email)
	if err != nil {
		s.cfg.Log.Error("Failed to list confirmed bookings", "user_email", email, "error", err)
		return nil, apperrors.Internal("Failed to retrieve confirmed bookings", err)
	}
	return bookings, nil
}

// Approve moves a booking to approved and stamps approved_at. Re-approving
// an already-approved booking succeeds again (last write wins on the
// timestamp); moving a confirmed booking backward is rejected.
func (s *bookingService) Approve(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return s.mapRepoError(err, id, "Failed to retrieve booking")
	}

	if !booking.Status.CanTransition(model.StatusApproved) {
		return apperrors.Conflict("Booking cannot be approved from status " + string(booking.Status))
	}

	approvedAt := time.Now().UTC().Truncate(time.Millisecond)
	if err := s.repo.SetApproved(ctx, id, approvedAt); err != nil {
		return s.mapRepoError(err, id, "Failed to approve booking")
	}

	s.cfg.Log.Info("Booking approved", "id", id, "user_email", booking.UserEmail)

	booking.Status = model.StatusApproved
	booking.ApprovedAt = &approvedAt
	s.publisher.BookingApproved(ctx, booking)

	return nil
}

// Reject deletes the booking outright; the deletion is the rejection record.
func (s *bookingService) Reject(ctx context.Context, id string) error {
	return s.delete(ctx, id, "rejected")
}

func (s *bookingService) Cancel(ctx context.Context, id string) error {
	return s.delete(ctx, id, "cancelled")
}

func (s *bookingService) delete(ctx context.Context, id string, action string) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapRepoError(err, id, "Failed to delete booking")
	}

	s.cfg.Log.Info("Booking "+action, "id", id)
	return nil
}

func (s *bookingService) mapRepoError(err error, id string, internalMsg string) error {
	if errors.Is(err, bookingserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Booking", id)
	}
	if errors.Is(err, bookingserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid booking ID format")
	}
	s.cfg.Log.Error(internalMsg, "id", id, "error", err)
	return apperrors.Internal(internalMsg, err)
}
