package models

import "time"

type CaseStatus string

// Known statuses. The column is free-form varchar so new statuses can be
// introduced without a migration.
const (
	CaseStatusMissing   CaseStatus = "Missing"
	CaseStatusSearching CaseStatus = "Searching"
	CaseStatusFound     CaseStatus = "Found"
)

// Case is a missing-person report. A case is created pending and becomes
// publicly visible only after a moderator clears the flag.
type Case struct {
	BaseModel
	Name        string     `gorm:"not null;index" json:"name"`
	Status      CaseStatus `gorm:"type:varchar(40);not null;default:'Missing'" json:"status"`
	Date        time.Time  `gorm:"not null" json:"date"`
	LastSeen    string     `gorm:"not null" json:"lastSeen"`
	Latitude    float64    `gorm:"not null" json:"latitude"`
	Longitude   float64    `gorm:"not null" json:"longitude"`
	Description string     `json:"description"`
	PhotoURL    string     `json:"photoUrl"`
	Pending     bool       `gorm:"not null;default:true;index" json:"pending"`

	Comments []Comment `gorm:"foreignKey:CaseID" json:"comments"`
}

// Comment is an append-only entry in a case's discussion. Each comment is
// its own row, so concurrent appends are plain concurrent inserts and can
// never overwrite one another. UserID is nil for anonymous comments; the
// author's username is joined at read time, never denormalized here.
type Comment struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	CaseID    string    `gorm:"type:uuid;not null;index" json:"-"`
	UserID    *string   `gorm:"type:uuid;index" json:"userId"`
	Text      string    `gorm:"not null" json:"text"`
	CreatedAt time.Time `gorm:"default:now()" json:"date"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}
