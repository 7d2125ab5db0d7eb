package services

import (
	"context"

	"findthem_backend/internal/apperrors"
	"findthem_backend/internal/auth"
	"findthem_backend/internal/models"
	"findthem_backend/internal/repositories"
	"findthem_backend/internal/services/dto"
)

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error)
	AssignRole(ctx context.Context, actor *auth.Claims, userID, role string) (*dto.UserResponse, error)
}

type UserServiceImpl struct {
	userRepo repositories.UserRepository
	audit    AuditHook
}

func NewUserService(userRepo repositories.UserRepository, audit AuditHook) UserService {
	if audit == nil {
		audit = func(context.Context, string, map[string]interface{}) {}
	}
	return &UserServiceImpl{
		userRepo: userRepo,
		audit:    audit,
	}
}

func (s *UserServiceImpl) GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.StoreError(err)
	}
	return dto.NewUserResponse(user), nil
}

// AssignRole changes an account's role. Admin capability only.
func (s *UserServiceImpl) AssignRole(ctx context.Context, actor *auth.Claims, userID, role string) (*dto.UserResponse, error) {
	if err := auth.Authorize(actor, auth.CapabilityAssignRole); err != nil {
		return nil, authorizationError(err)
	}

	if err := auth.ValidateRole(role); err != nil {
		return nil, apperrors.ErrInvalidRole
	}

	if err := s.userRepo.UpdateRole(ctx, userID, models.UserRole(role)); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.StoreError(err)
	}

	s.audit(ctx, "role_assigned", map[string]interface{}{
		"actor_id": actor.UserID,
		"user_id":  userID,
		"role":     role,
	})

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperrors.StoreError(err)
	}
	return dto.NewUserResponse(user), nil
}

// authorizationError maps the pure policy outcomes onto the HTTP error
// taxonomy, keeping unauthenticated distinct from forbidden.
func authorizationError(err error) *apperrors.AppError {
	if apperrors.Is(err, auth.ErrUnauthenticated) {
		return apperrors.ErrUnauthorized
	}
	return apperrors.ErrForbidden
}
