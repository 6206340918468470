package dbhelper

import (
	"time"

	"github.com/DanielAfitsinski/wad-portfolio/models"
	"github.com/DanielAfitsinski/wad-portfolio/utils"
	"gorm.io/gorm"
)

// AttemptMeta carries optional client metadata onto attempt and token rows.
type AttemptMeta struct {
	UserID    *uint
	IPAddress string
	UserAgent string
}

// AttemptLog appends login attempts. Rows are never mutated; retention is
// somebody else's problem.
type AttemptLog struct {
	db *gorm.DB
}

func NewAttemptLog(db *gorm.DB) *AttemptLog {
	return &AttemptLog{db: db}
}

func (l *AttemptLog) Record(email string, success bool, meta AttemptMeta) error {
	attempt := models.LoginAttempt{
		Email:       email,
		UserID:      meta.UserID,
		Success:     success,
		IPAddress:   meta.IPAddress,
		UserAgent:   meta.UserAgent,
		AttemptedAt: time.Now(),
	}
	return l.db.Create(&attempt).Error
}

// LockoutStatus reports whether an email is locked out and for how long.
// RetryAfter is rounded up to whole minutes.
type LockoutStatus struct {
	Locked     bool
	RetryAfter time.Duration
}

// LockoutPolicy computes lockout over a sliding window of recent failures.
// The window is keyed off the oldest qualifying failure, so the lockout
// expires attempt-by-attempt with no separate unlock step.
type LockoutPolicy struct {
	db        *gorm.DB
	Threshold int
	Window    time.Duration
}

func NewLockoutPolicy(db *gorm.DB) *LockoutPolicy {
	return &LockoutPolicy{
		db:        db,
		Threshold: utils.MAX_LOGIN_ATTEMPTS,
		Window:    utils.LOCKOUT_WINDOW,
	}
}

func (p *LockoutPolicy) IsLockedOut(email string, now time.Time) (LockoutStatus, error) {
	since := now.Add(-p.Window)

	var failed int64
	err := p.db.Model(&models.LoginAttempt{}).
		Where("email = ? AND success = ? AND attempted_at >= ?", email, false, since).
		Count(&failed).Error
	if err != nil {
		return LockoutStatus{}, err
	}
	if failed < int64(p.Threshold) {
		return LockoutStatus{}, nil
	}

	// Fetch the oldest qualifying row rather than scanning MIN(attempted_at);
	// the sqlite driver hands aggregates back as strings.
	var oldest models.LoginAttempt
	err = p.db.
		Where("email = ? AND success = ? AND attempted_at >= ?", email, false, since).
		Order("attempted_at ASC").
		First(&oldest).Error
	if err != nil {
		return LockoutStatus{}, err
	}

	remaining := oldest.AttemptedAt.Add(p.Window).Sub(now)
	retry := time.Duration(utils.RetryAfterMinutes(remaining)) * time.Minute
	return LockoutStatus{Locked: true, RetryAfter: retry}, nil
}
