package services

import (
	"context"
	"testing"
	"time"

	"findthem_backend/internal/apperrors"
	"findthem_backend/internal/auth"
	"findthem_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret"

func newTestAuthService(userRepo *fakeUserRepo, provider *fakeEmailProvider) AuthService {
	return NewAuthService(userRepo, provider, []byte(testJWTSecret), time.Hour, "http://localhost:3000", nil)
}

func signupRequest() *dto.SignupRequest {
	return &dto.SignupRequest{
		FirstName: "Alice",
		LastName:  "Nguyen",
		Email:     "Alice@Example.com",
		Username:  "alice",
		Password:  "long-enough-password",
	}
}

func TestSignupCreatesUnverifiedAccount(t *testing.T) {
	userRepo := newFakeUserRepo()
	provider := newFakeEmailProvider()
	svc := newTestAuthService(userRepo, provider)

	resp, err := svc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.Username)
	assert.False(t, resp.IsVerified)
	// Email address is normalized before storage.
	assert.Equal(t, "alice@example.com", resp.Email)

	stored, err := userRepo.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.False(t, stored.IsVerified)
	require.NotNil(t, stored.VerificationToken)
	assert.Len(t, *stored.VerificationToken, 64)
	assert.NotEqual(t, "long-enough-password", stored.PasswordHash)
}

func TestSignupDispatchesVerificationEmail(t *testing.T) {
	userRepo := newFakeUserRepo()
	provider := newFakeEmailProvider()
	svc := newTestAuthService(userRepo, provider)

	_, err := svc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)

	require.True(t, provider.waitForSend(2*time.Second), "verification email was not dispatched")

	provider.mu.Lock()
	defer provider.mu.Unlock()
	require.Len(t, provider.sent, 1)
	assert.Equal(t, "alice@example.com", provider.sent[0])
	assert.Contains(t, provider.links[0], "http://localhost:3000/verify?token=")
}

func TestSignupWeakPassword(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newTestAuthService(userRepo, newFakeEmailProvider())

	req := signupRequest()
	req.Password = "short"
	_, err := svc.Signup(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrWeakPassword)
	_, err = userRepo.FindByUsername(context.Background(), "alice")
	assert.Error(t, err)
}

func TestSignupDuplicateAccount(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newTestAuthService(userRepo, newFakeEmailProvider())

	_, err := svc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), signupRequest())
	assert.ErrorIs(t, err, apperrors.ErrAccountTaken)
}

func TestLoginHappyPath(t *testing.T) {
	userRepo := newFakeUserRepo()
	provider := newFakeEmailProvider()
	svc := newTestAuthService(userRepo, provider)

	_, err := svc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)

	stored, err := userRepo.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	_, err = svc.VerifyEmail(context.Background(), *stored.VerificationToken)
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "alice", Password: "long-enough-password"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	claims, err := auth.ParseToken(resp.Token, []byte(testJWTSecret))
	require.NoError(t, err)
	assert.Equal(t, stored.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestLoginUnverifiedAccountRejected(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newTestAuthService(userRepo, newFakeEmailProvider())

	_, err := svc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)

	// Correct password, but the account never verified.
	_, err = svc.Login(context.Background(), &dto.LoginRequest{Username: "alice", Password: "long-enough-password"})
	assert.ErrorIs(t, err, apperrors.ErrUserNotVerified)
}

func TestLoginWrongCredentials(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newTestAuthService(userRepo, newFakeEmailProvider())

	_, err := svc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{Username: "alice", Password: "wrong-password"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	// Unknown username reports the same error as a wrong password.
	_, err = svc.Login(context.Background(), &dto.LoginRequest{Username: "nobody", Password: "whatever-password"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestVerifyEmailTokenIsSingleUse(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newTestAuthService(userRepo, newFakeEmailProvider())

	_, err := svc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)

	stored, err := userRepo.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	token := *stored.VerificationToken

	resp, err := svc.VerifyEmail(context.Background(), token)
	require.NoError(t, err)
	assert.True(t, resp.IsVerified)

	// Second use of the same token fails like a forged one.
	_, err = svc.VerifyEmail(context.Background(), token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestVerifyEmailUnknownToken(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo(), newFakeEmailProvider())

	_, err := svc.VerifyEmail(context.Background(), "never-issued")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	_, err = svc.VerifyEmail(context.Background(), "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}
