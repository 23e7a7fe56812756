package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"

	"squadly/internal/coupons/repository"
	"squadly/pkg/config"
	apperrors "squadly/pkg/errors"
	"squadly/pkg/model"
)

type CouponService interface {
	Validate(ctx context.Context, code string) (*model.CouponValidation, error)
	Create(ctx context.Context, coupon *model.Coupon) error
	List(ctx context.Context) ([]*model.Coupon, error)
	Update(ctx context.Context, id string, coupon *model.Coupon) error
	Delete(ctx context.Context, id string) error
}

type couponService struct {
	repo     repository.CouponRepository
	validate *validator.Validate
	cfg      *config.Config
}

func NewCouponService(repo repository.CouponRepository, cfg *config.Config) CouponService {
	return &couponService{
		repo:     repo,
		validate: validator.New(),
		cfg:      cfg,
	}
}

// Validate is purely advisory: it reports whether the code exists and its
// discount, and never reserves or consumes the coupon.
func (s *couponService) Validate(ctx context.Context, code string) (*model.CouponValidation, error) {
	if code == "" {
		return nil, apperrors.InvalidInput("Coupon code cannot be empty")
	}

	coupon, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &model.CouponValidation{Valid: false}, nil
		}
		s.cfg.Log.Error("Failed to look up coupon", "code", code, "error", err)
		return nil, apperrors.Internal("Failed to validate coupon", err)
	}

	return &model.CouponValidation{
		Valid:    true,
		Discount: &coupon.Discount,
	}, nil
}

func (s *couponService) Create(ctx context.Context, coupon *model.Coupon) error {
	if err := s.validate.Struct(coupon); err != nil {
		s.cfg.Log.Warn("Coupon validation failed", "error", err)
		return apperrors.Validation("Code and discount are required", map[string]any{"error": err.Error()})
	}

	if _, err := s.repo.FindByCode(ctx, coupon.Code); err == nil {
		return apperrors.Conflict("Coupon code already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return apperrors.Internal("Failed to check coupon code", err)
	}

	if err := s.repo.Create(ctx, coupon); err != nil {
		if errors.Is(err, repository.ErrDuplicateCode) {
			return apperrors.Conflict("Coupon code already exists")
		}
		s.cfg.Log.Error("Failed to create coupon", "code", coupon.Code, "error", err)
		return apperrors.Internal("Failed to create coupon", err)
	}

	s.cfg.Log.Info("Coupon created", "id", coupon.ID, "code", coupon.Code)
	return nil
}

func (s *couponService) List(ctx context.Context) ([]*model.Coupon, error) {
	coupons, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list coupons", "error", err)
		return nil, apperrors.Internal("Failed to retrieve coupons", err)
	}
	return coupons, nil
}

func (s *couponService) Update(ctx context.Context, id string, coupon *model.Coupon) error {
	if id == "" {
		return apperrors.InvalidInput("Coupon ID cannot be empty")
	}
	if err := s.validate.Struct(coupon); err != nil {
		s.cfg.Log.Warn("Coupon validation failed", "id", id, "error", err)
		return apperrors.Validation("Code and discount are required", map[string]any{"error": err.Error()})
	}

	if _, err := s.repo.FindByCodeExcludingID(ctx, coupon.Code, id); err == nil {
		return apperrors.Conflict("Coupon code already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return s.mapRepoError(err, id, "Failed to check coupon code")
	}

	if err := s.repo.Update(ctx, id, coupon); err != nil {
		if errors.Is(err, repository.ErrDuplicateCode) {
			return apperrors.Conflict("Coupon code already exists")
		}
		return s.mapRepoError(err, id, "Failed to update coupon")
	}

	s.cfg.Log.Info("Coupon updated", "id", id, "code", coupon.Code)
	return nil
}

func (s *couponService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Coupon ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapRepoError(err, id, "Failed to delete coupon")
	}

	s.cfg.Log.Info("Coupon deleted", "id", id)
	return nil
}

func (s *couponService) mapRepoError(err error, id string, internalMsg string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFoundWithID("Coupon", id)
	}
	if errors.Is(err, repository.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid coupon ID format")
	}
	s.cfg.Log.Error(internalMsg, "id", id, "error", err)
	return apperrors.Internal(internalMsg, err)
}
