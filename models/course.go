package models

import "time"

// Course capacity is owned by admin mutation. The enrolled count is never
// stored on the row; it is always counted against live Enrollment rows.
type Course struct {
	ID          uint      `gorm:"primaryKey"`
	Title       string    `gorm:"size:200;not null"`
	Description string    `gorm:"size:2000"`
	Instructor  string    `gorm:"size:120"`
	Duration    string    `gorm:"size:64"`
	Capacity    int       `gorm:"not null"`
	CreatedAt   time.Time
}

// Enrollment links a user to a course. The composite unique index makes
// duplicate-enrollment detection race-free regardless of the capacity check.
type Enrollment struct {
	ID         uint      `gorm:"primaryKey"`
	UserID     uint      `gorm:"uniqueIndex:idx_user_course;not null"`
	CourseID   uint      `gorm:"uniqueIndex:idx_user_course;not null"`
	EnrolledAt time.Time `gorm:"not null"`
}
