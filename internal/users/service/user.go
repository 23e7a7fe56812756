package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"

	"squadly/internal/users/repository"
	"squadly/pkg/config"
	apperrors "squadly/pkg/errors"
	"squadly/pkg/model"
)

type UserService interface {
	Register(ctx context.Context, user *model.User) error
}

type userService struct {
	repo     repository.UserRepository
	validate *validator.Validate
	cfg      *config.Config
}

func NewUserService(repo repository.UserRepository, cfg *config.Config) UserService {
	return &userService{
		repo:     repo,
		validate: validator.New(),
		cfg:      cfg,
	}
}

// Register stores a new user, rejecting a uid that is already registered.
func (s *userService) Register(ctx context.Context, user *model.User) error {
	if err := s.validate.Struct(user); err != nil {
		s.cfg.Log.Warn("User validation failed", "error", err)
		return apperrors.Validation("User validation failed", map[string]any{"error": err.Error()})
	}

	if _, err := s.repo.FindByUID(ctx, user.UID); err == nil {
		return apperrors.Conflict("User already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		s.cfg.Log.Error("Failed to check user existence", "uid", user.UID, "error", err)
		return apperrors.Internal("Failed to check user existence", err)
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUID) {
			return apperrors.Conflict("User already exists")
		}
		s.cfg.Log.Error("Failed to create user", "uid", user.UID, "error", err)
		return apperrors.Internal("Failed to create user", err)
	}

	s.cfg.Log.Info("User registered", "id", user.ID, "uid", user.UID, "email", user.Email)
	return nil
}
