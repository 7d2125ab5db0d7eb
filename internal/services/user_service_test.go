package services

import (
	"context"
	"testing"

	"findthem_backend/internal/apperrors"
	"findthem_backend/internal/auth"
	"findthem_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminClaims() *auth.Claims {
	return &auth.Claims{UserID: "admin-1", Username: "admin", Role: models.UserRoleAdmin}
}

func seedUser(t *testing.T, repo *fakeUserRepo) *models.User {
	t.Helper()
	user := &models.User{
		Username:   "bob",
		Email:      "bob@example.com",
		Role:       models.UserRoleUser,
		IsVerified: true,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestGetProfile(t *testing.T) {
	repo := newFakeUserRepo()
	user := seedUser(t, repo)
	svc := NewUserService(repo, nil)

	profile, err := svc.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", profile.Username)

	_, err = svc.GetProfile(context.Background(), "missing-id")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestAssignRole(t *testing.T) {
	repo := newFakeUserRepo()
	user := seedUser(t, repo)

	var events []string
	svc := NewUserService(repo, func(ctx context.Context, event string, fields map[string]interface{}) {
		events = append(events, event)
	})

	updated, err := svc.AssignRole(context.Background(), adminClaims(), user.ID, "moderator")
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleModerator, updated.Role)
	assert.Contains(t, events, "role_assigned")
}

func TestAssignRoleAuthorization(t *testing.T) {
	repo := newFakeUserRepo()
	user := seedUser(t, repo)
	svc := NewUserService(repo, nil)

	_, err := svc.AssignRole(context.Background(), nil, user.ID, "moderator")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	modClaims := &auth.Claims{UserID: "m1", Role: models.UserRoleModerator}
	_, err = svc.AssignRole(context.Background(), modClaims, user.ID, "moderator")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	// The role never changed.
	stored, err := repo.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleUser, stored.Role)
}

func TestAssignRoleInvalidRole(t *testing.T) {
	repo := newFakeUserRepo()
	user := seedUser(t, repo)
	svc := NewUserService(repo, nil)

	_, err := svc.AssignRole(context.Background(), adminClaims(), user.ID, "superuser")
	assert.ErrorIs(t, err, apperrors.ErrInvalidRole)
}

func TestAssignRoleUnknownUser(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), nil)

	_, err := svc.AssignRole(context.Background(), adminClaims(), "missing-id", "moderator")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
