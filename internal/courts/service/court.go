package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"

	"squadly/internal/courts/repository"
	"squadly/pkg/config"
	apperrors "squadly/pkg/errors"
	"squadly/pkg/model"
)

type CourtService interface {
	Create(ctx context.Context, court *model.Court) error
	List(ctx context.Context) ([]*model.Court, error)
	Update(ctx context.Context, id string, court *model.Court) error
	Delete(ctx context.Context, id string) error
}

type courtService struct {
	repo     repository.CourtRepository
	validate *validator.Validate
	cfg      *config.Config
}

func NewCourtService(repo repository.CourtRepository, cfg *config.Config) CourtService {
	return &courtService{
		repo:     repo,
		validate: validator.New(),
		cfg:      cfg,
	}
}

func (s *courtService) Create(ctx context.Context, court *model.Court) error {
	if err := s.validate.Struct(court); err != nil {
		s.cfg.Log.Warn("Court validation failed", "error", err)
		return apperrors.Validation("All fields are required", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, court); err != nil {
		s.cfg.Log.Error("Failed to create court", "error", err)
		return apperrors.Internal("Failed to create court", err)
	}

	s.cfg.Log.Info("Court created", "id", court.ID, "type", court.Type)
	return nil
}

func (s *courtService) List(ctx context.Context) ([]*model.Court, error) {
	courts, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list courts", "error", err)
		return nil, apperrors.Internal("Failed to retrieve courts", err)
	}
	return courts, nil
}

func (s *courtService) Update(ctx context.Context, id string, court *model.Court) error {
	if id == "" {
		return apperrors.InvalidInput("Court ID cannot be empty")
	}
	if err := s.validate.Struct(court); err != nil {
		s.cfg.Log.Warn("Court validation failed", "id", id, "error", err)
		return apperrors.Validation("All fields are required", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Update(ctx, id, court); err != nil {
		return s.mapRepoError(err, id, "Failed to update court")
	}

	s.cfg.Log.Info("Court updated", "id", id)
	return nil
}

func (s *courtService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Court ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapRepoError(err, id, "Failed to delete court")
	}

	s.cfg.Log.Info("Court deleted", "id", id)
	return nil
}

func (s *courtService) mapRepoError(err error, id string, internalMsg string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFoundWithID("Court", id)
	}
	if errors.Is(err, repository.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid court ID format")
	}
	s.cfg.Log.Error(internalMsg, "id", id, "error", err)
	return apperrors.Internal(internalMsg, err)
}
