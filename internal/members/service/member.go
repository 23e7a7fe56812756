package service

import (
	"context"

	bookingsrepo "squadly/internal/bookings/repository"
	usersrepo "squadly/internal/users/repository"
	"squadly/pkg/config"
	apperrors "squadly/pkg/errors"
	"squadly/pkg/model"
)

// MemberService derives membership from bookings: a user is a member iff at
// least one of their bookings is approved or confirmed. Nothing is persisted
// for membership itself.
type MemberService interface {
	IsMember(ctx context.Context, email string) (bool, error)
	ListMembers(ctx context.Context) ([]*model.User, error)
	RemoveMember(ctx context.Context, email string) error
}

type memberService struct {
	bookingRepo bookingsrepo.BookingRepository
	userRepo    usersrepo.UserRepository
	cfg         *config.Config
}

func NewMemberService(
	bookingRepo bookingsrepo.BookingRepository,
	userRepo usersrepo.UserRepository,
	cfg *config.Config,
) MemberService {
	return &memberService{
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
		cfg:         cfg,
	}
}

func (s *memberService) IsMember(ctx context.Context, email string) (bool, error) {
	if email == "" {
		return false, apperrors.InvalidInput("Email cannot be empty")
	}

	count, err := s.bookingRepo.CountMemberBookings(ctx, email)
	if err != nil {
		s.cfg.Log.Error("Failed to check membership", "email", email, "error", err)
		return false, apperrors.Internal("Failed to check membership", err)
	}

	return count > 0, nil
}

// ListMembers resolves the distinct member emails to their user records.
// Emails without a registered user are skipped silently.
func (s *memberService) ListMembers(ctx context.Context) ([]*model.User, error) {
	emails, err := s.bookingRepo.DistinctMemberEmails(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list member emails", "error", err)
		return nil, apperrors.Internal("Failed to retrieve members", err)
	}

	users, err := s.userRepo.FindByEmails(ctx, emails)
	if err != nil {
		s.cfg.Log.Error("Failed to resolve member users", "error", err)
		return nil, apperrors.Internal("Failed to retrieve members", err)
	}

	return users, nil
}

// RemoveMember deletes the member-qualifying bookings for the email. Payments
// referencing those bookings are left in place and become orphaned history.
func (s *memberService) RemoveMember(ctx context.Context, email string) error {
	if email == "" {
		return apperrors.InvalidInput("Email cannot be empty")
	}

	deleted, err := s.bookingRepo.DeleteMemberBookings(ctx, email)
	if err != nil {
		s.cfg.Log.Error("Failed to remove member", "email", email, "error", err)
		return apperrors.Internal("Failed to remove member", err)
	}

	s.cfg.Log.Info("Member removed", "email", email, "bookings_deleted", deleted)
	return nil
}
