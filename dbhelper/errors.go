package dbhelper

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password;
	// callers must not be able to tell the two apart.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrAccountInactive is returned for valid credentials on a deactivated account.
	ErrAccountInactive = errors.New("account is inactive")
	// ErrTokenInvalid is returned for a missing, expired, or orphaned auth token.
	ErrTokenInvalid = errors.New("invalid or expired token")
	// ErrExternalTokenInvalid is returned when the external identity provider
	// rejects a token or yields no email.
	ErrExternalTokenInvalid = errors.New("invalid external token")
	// ErrResetTokenInvalid is returned for an unknown, expired, or already-used reset token.
	ErrResetTokenInvalid = errors.New("invalid or expired reset token")
	// ErrEmailTaken is returned when registration hits the unique email constraint.
	ErrEmailTaken = errors.New("email already registered")
	// ErrUserNotFound is returned when a user id does not resolve.
	ErrUserNotFound = errors.New("user not found")
	// ErrCourseNotFound is returned when a course id does not resolve.
	ErrCourseNotFound = errors.New("course not found")
	// ErrEnrollmentNotFound is returned when an unenroll matches no row.
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	// ErrAlreadyEnrolled is returned when the (user, course) pair already exists.
	ErrAlreadyEnrolled = errors.New("user already enrolled in this course")
	// ErrCourseFull is returned when the storage layer rejects an insert beyond capacity.
	ErrCourseFull = errors.New("course is full")
	// ErrCapacityBelowEnrollment rejects lowering capacity under the live enrolled count.
	ErrCapacityBelowEnrollment = errors.New("capacity below current enrollment")
	// ErrCourseHasEnrollments rejects deleting a course that still has enrollments.
	ErrCourseHasEnrollments = errors.New("course has enrolled students")
)

// LockoutError reports an active login lockout along with the remaining
// duration computed from the oldest failed attempt still inside the window.
type LockoutError struct {
	RetryAfter time.Duration
}

func (e *LockoutError) Error() string {
	return fmt.Sprintf("account locked, retry after %s", e.RetryAfter)
}

// isDuplicateKey recognises unique-constraint violations from the drivers in
// play (MySQL reports "Error 1062", SQLite "UNIQUE constraint failed").
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Error 1062") || strings.Contains(msg, "UNIQUE constraint")
}

// isDeadlock recognises an InnoDB deadlock victim (MySQL "Error 1213"). The
// rolled-back transaction is clean to retry.
func isDeadlock(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Error 1213")
}
