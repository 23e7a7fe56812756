package service

import (
	"context"
	"sync"

	bookingsrepo "squadly/internal/bookings/repository"
	courtsrepo "squadly/internal/courts/repository"
	usersrepo "squadly/internal/users/repository"
	"squadly/pkg/config"
	apperrors "squadly/pkg/errors"
)

type Stats struct {
	TotalCourts  int64 `json:"total_courts"`
	TotalUsers   int64 `json:"total_users"`
	TotalMembers int64 `json:"total_members"`
}

type StatsService interface {
	Collect(ctx context.Context) (*Stats, error)
}

type statsService struct {
	courtRepo   courtsrepo.CourtRepository
	userRepo    usersrepo.UserRepository
	bookingRepo bookingsrepo.BookingRepository
	cfg         *config.Config
}

func NewStatsService(
	courtRepo courtsrepo.CourtRepository,
	userRepo usersrepo.UserRepository,
	bookingRepo bookingsrepo.BookingRepository,
	cfg *config.Config,
) StatsService {
	return &statsService{
		courtRepo:   courtRepo,
		userRepo:    userRepo,
		bookingRepo: bookingRepo,
		cfg:         cfg,
	}
}

// Collect gathers the three dashboard counts concurrently; the member count
// is the number of distinct emails holding an approved or confirmed booking.
func (s *statsService) Collect(ctx context.Context) (*Stats, error) {
	var stats Stats
	var errCourts, errUsers, errMembers error
	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		stats.TotalCourts, errCourts = s.courtRepo.Count(ctx)
	}()

	go func() {
		defer wg.Done()
		stats.TotalUsers, errUsers = s.userRepo.Count(ctx)
	}()

	go func() {
		defer wg.Done()
		var emails []string
		emails, errMembers = s.bookingRepo.DistinctMemberEmails(ctx)
		stats.TotalMembers = int64(len(emails))
	}()

	wg.Wait()

	for _, err := range []error{errCourts, errUsers, errMembers} {
		if err != nil {
			s.cfg.Log.Error("Failed to collect admin stats", "error", err)
			return nil, apperrors.Internal("Failed to collect stats", err)
		}
	}

	return &stats, nil
}
