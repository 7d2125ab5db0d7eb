package auth

import (
	"errors"

	"findthem_backend/internal/models"
)

// Capability is a named privileged action gated by the authorization policy.
type Capability string

const (
	CapabilitySubmitCase   Capability = "case:submit"
	CapabilityModerateCase Capability = "case:moderate"
	CapabilityAssignRole   Capability = "user:assign-role"
	CapabilityComment      Capability = "case:comment"
)

// Capabilities maps each role to the actions it may perform.
var Capabilities = map[models.UserRole][]Capability{
	models.UserRoleAdmin: {
		CapabilitySubmitCase,
		CapabilityModerateCase,
		CapabilityAssignRole,
		CapabilityComment,
	},
	models.UserRoleModerator: {
		CapabilitySubmitCase,
		CapabilityModerateCase,
		CapabilityComment,
	},
	models.UserRoleUser: {
		CapabilitySubmitCase,
		CapabilityComment,
	},
}

// HasCapability reports whether the role grants the capability.
func HasCapability(role models.UserRole, capability Capability) bool {
	capabilities, exists := Capabilities[role]
	if !exists {
		return false
	}

	for _, c := range capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

// Authorization outcomes. Unauthenticated and forbidden are distinct so
// callers can prompt for login instead of reporting a permissions error.
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("insufficient permissions")
)

// Authorize decides whether the session claims allow the capability.
// nil claims means no session at all.
func Authorize(claims *Claims, capability Capability) error {
	if claims == nil {
		return ErrUnauthenticated
	}
	if !HasCapability(claims.Role, capability) {
		return ErrForbidden
	}
	return nil
}

// IsModeratorOrHigher reports whether the claims carry moderation rights.
func IsModeratorOrHigher(claims *Claims) bool {
	return claims != nil && (claims.Role == models.UserRoleModerator || claims.Role == models.UserRoleAdmin)
}

// ValidateRole checks that a role name is one of the known roles.
func ValidateRole(role string) error {
	switch models.UserRole(role) {
	case models.UserRoleAdmin, models.UserRoleUser, models.UserRoleModerator:
		return nil
	default:
		return errors.New("invalid role")
	}
}
