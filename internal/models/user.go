package models

type UserRole string

const (
	UserRoleUser      UserRole = "user"
	UserRoleAdmin     UserRole = "admin"
	UserRoleModerator UserRole = "moderator"
)

// User is an account in the registry. Uniqueness of username and email is
// enforced by the database indexes, not just by application checks, so two
// concurrent signups for the same name cannot both succeed.
type User struct {
	BaseModel
	FirstName         string   `gorm:"not null" json:"firstName"`
	LastName          string   `gorm:"not null" json:"lastName"`
	Username          string   `gorm:"uniqueIndex;not null" json:"username"`
	Email             string   `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash      string   `gorm:"not null" json:"-"`
	Role              UserRole `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	IsVerified        bool     `gorm:"default:false" json:"isVerified"`
	VerificationToken *string  `gorm:"index" json:"-"`
}
