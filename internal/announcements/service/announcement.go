package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"

	"squadly/internal/announcements/repository"
	"squadly/pkg/config"
	apperrors "squadly/pkg/errors"
	"squadly/pkg/model"
)

type AnnouncementService interface {
	Create(ctx context.Context, announcement *model.Announcement) error
	List(ctx context.Context) ([]*model.Announcement, error)
	Upsert(ctx context.Context, id string, announcement *model.Announcement) error
	Delete(ctx context.Context, id string) error
}

type announcementService struct {
	repo     repository.AnnouncementRepository
	validate *validator.Validate
	cfg      *config.Config
}

func NewAnnouncementService(repo repository.AnnouncementRepository, cfg *config.Config) AnnouncementService {
	return &announcementService{
		repo:     repo,
		validate: validator.New(),
		cfg:      cfg,
	}
}

func (s *announcementService) Create(ctx context.Context, announcement *model.Announcement) error {
	if err := s.validate.Struct(announcement); err != nil {
		s.cfg.Log.Warn("Announcement validation failed", "error", err)
		return apperrors.Validation("Announcement validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, announcement); err != nil {
		s.cfg.Log.Error("Failed to create announcement", "error", err)
		return apperrors.Internal("Failed to create announcement", err)
	}

	s.cfg.Log.Info("Announcement created", "id", announcement.ID)
	return nil
}

func (s *announcementService) List(ctx context.Context) ([]*model.Announcement, error) {
	announcements, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list announcements", "error", err)
		return nil, apperrors.Internal("Failed to retrieve announcements", err)
	}
	return announcements, nil
}

func (s *announcementService) Upsert(ctx context.Context, id string, announcement *model.Announcement) error {
	if id == "" {
		return apperrors.InvalidInput("Announcement ID cannot be empty")
	}
	if err := s.validate.Struct(announcement); err != nil {
		s.cfg.Log.Warn("Announcement validation failed", "id", id, "error", err)
		return apperrors.Validation("Announcement validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Upsert(ctx, id, announcement); err != nil {
		if errors.Is(err, repository.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid announcement ID format")
		}
		s.cfg.Log.Error("Failed to upsert announcement", "id", id, "error", err)
		return apperrors.Internal("Failed to update announcement", err)
	}

	s.cfg.Log.Info("Announcement upserted", "id", id)
	return nil
}

func (s *announcementService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Announcement ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFoundWithID("Announcement", id)
		}
		if errors.Is(err, repository.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid announcement ID format")
		}
		s.cfg.Log.Error("Failed to delete announcement", "id", id, "error", err)
		return apperrors.Internal("Failed to delete announcement", err)
	}

	s.cfg.Log.Info("Announcement deleted", "id", id)
	return nil
}
