package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"findthem_backend/internal/apperrors"
	"findthem_backend/internal/auth"
	"findthem_backend/internal/email"
	"findthem_backend/internal/logger"
	"findthem_backend/internal/models"
	"findthem_backend/internal/repositories"
	"findthem_backend/internal/services/dto"
)

// AuditHook is an extension point for recording sensitive operations
// (verification attempts, role changes). No-op by default.
type AuditHook func(ctx context.Context, event string, fields map[string]interface{})

type AuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	VerifyEmail(ctx context.Context, token string) (*dto.UserResponse, error)
}

type AuthServiceImpl struct {
	userRepo      repositories.UserRepository
	emailProvider email.Provider
	jwtSecret     []byte
	jwtTTL        time.Duration
	frontendURL   string
	audit         AuditHook
}

func NewAuthService(
	userRepo repositories.UserRepository,
	emailProvider email.Provider,
	jwtSecret []byte,
	jwtTTL time.Duration,
	frontendURL string,
	audit AuditHook,
) AuthService {
	if audit == nil {
		audit = func(context.Context, string, map[string]interface{}) {}
	}
	return &AuthServiceImpl{
		userRepo:      userRepo,
		emailProvider: emailProvider,
		jwtSecret:     jwtSecret,
		jwtTTL:        jwtTTL,
		frontendURL:   frontendURL,
		audit:         audit,
	}
}

// Signup creates an unverified account and dispatches the verification
// email. The email leaves on a goroutine after the account is persisted;
// delivery failure is logged and never rolls the signup back.
func (s *AuthServiceImpl) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.UserResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	verificationToken, err := generateVerificationToken()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		FirstName:         strings.TrimSpace(req.FirstName),
		LastName:          strings.TrimSpace(req.LastName),
		Username:          strings.TrimSpace(req.Username),
		Email:             normalizeEmail(req.Email),
		PasswordHash:      hashedPassword,
		Role:              models.UserRoleUser,
		IsVerified:        false,
		VerificationToken: &verificationToken,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrAccountTaken
		}
		return nil, apperrors.StoreError(err)
	}

	s.sendVerificationEmail(ctx, user, verificationToken)

	return dto.NewUserResponse(user), nil
}

// Login authenticates by username and password and issues a session token.
// An unverified account never gets a session, even with a correct password.
func (s *AuthServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.StoreError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsVerified {
		return nil, apperrors.ErrUserNotVerified
	}

	token, err := auth.GenerateToken(user.ID, user.Username, user.Role, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LoginResponse{
		Token: token,
		User:  dto.NewUserResponse(user),
	}, nil
}

// VerifyEmail consumes a verification token. Used, forged and never-issued
// tokens are indistinguishable to the caller.
func (s *AuthServiceImpl) VerifyEmail(ctx context.Context, token string) (*dto.UserResponse, error) {
	if token == "" {
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.ConsumeVerificationToken(ctx, token)
	if err != nil {
		if apperrors.Is(err, repositories.ErrTokenNotFound) {
			s.audit(ctx, "verification_rejected", map[string]interface{}{})
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.StoreError(err)
	}

	s.audit(ctx, "account_verified", map[string]interface{}{"user_id": user.ID})

	return dto.NewUserResponse(user), nil
}

func (s *AuthServiceImpl) sendVerificationEmail(ctx context.Context, user *models.User, token string) {
	if s.emailProvider == nil {
		return
	}

	link := fmt.Sprintf("%s/verify?token=%s", s.frontendURL, token)
	to := user.Email
	firstName := user.FirstName

	go func() {
		if err := s.emailProvider.SendVerification(to, firstName, link); err != nil {
			logger.Warn("failed to send verification email",
				"error", err.Error(),
				"email", to,
			)
		}
	}()
}

func normalizeEmail(addr string) string {
	return strings.ToLower(strings.TrimSpace(addr))
}

// generateVerificationToken returns 32 random bytes, hex-encoded.
func generateVerificationToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
