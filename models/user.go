package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the persisted account record. Handlers convert this to a
// lightweight DTO for the client; PasswordHash never leaves the server.
type User struct {
	ID           uint       `gorm:"primaryKey"`
	Email        string     `gorm:"uniqueIndex;size:320;not null"`
	PasswordHash string     `gorm:"size:255;not null"`
	Name         string     `gorm:"size:120"`
	Role         string     `gorm:"size:16;not null;default:user"`
	// No column default: gorm skips zero-valued fields when one is set, so a
	// row could never be created inactive. Every create site sets the flag.
	IsActive  bool       `gorm:"not null"`
	CreatedAt time.Time
	LastLogin *time.Time
}

// LoginAttempt is one row of the append-only attempt log. Rows are never
// updated or deleted; the lockout policy reads them through a time window.
// The email is stored as submitted and need not resolve to a user.
type LoginAttempt struct {
	ID          uint      `gorm:"primaryKey"`
	Email       string    `gorm:"index;size:320;not null"`
	UserID      *uint
	Success     bool      `gorm:"not null"`
	IPAddress   string    `gorm:"size:45"`
	UserAgent   string    `gorm:"size:255"`
	AttemptedAt time.Time `gorm:"index;not null"`
}

// AuthToken is an opaque bearer session token with a fixed lifetime.
// Deleted on logout; expired rows are simply never accepted.
type AuthToken struct {
	ID        uint      `gorm:"primaryKey"`
	Token     string    `gorm:"uniqueIndex;size:64;not null"`
	UserID    uint      `gorm:"index;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	IPAddress string    `gorm:"size:45"`
	UserAgent string    `gorm:"size:255"`
	CreatedAt time.Time
}

// PasswordResetToken is single-use: Used flips false->true exactly once.
type PasswordResetToken struct {
	ID        uint      `gorm:"primaryKey"`
	Token     string    `gorm:"uniqueIndex;size:64;not null"`
	UserID    uint      `gorm:"index;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	Used      bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
}
