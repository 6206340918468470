package dbhelper

import (
	"errors"
	"log"
	"time"

	"github.com/DanielAfitsinski/wad-portfolio/models"
	"gorm.io/gorm"
)

// EnrollmentGuard owns the NotEnrolled -> Enrolled -> NotEnrolled transition.
// The capacity check and the insert commit as one unit: the insert itself is
// conditional on the live enrolled count, so the storage layer rejects the
// insert beyond capacity rather than application code racing a count.
type EnrollmentGuard struct {
	db       *gorm.DB
	notifier Notifier
}

func NewEnrollmentGuard(db *gorm.DB, notifier Notifier) *EnrollmentGuard {
	return &EnrollmentGuard{db: db, notifier: notifier}
}

// Two racing conditional inserts can shared-lock the same counted range under
// InnoDB and deadlock each other; the victim retries up to this many times.
const enrollDeadlockRetries = 3

func (g *EnrollmentGuard) Enroll(userID, courseID uint) (models.Enrollment, error) {
	var (
		enrollment models.Enrollment
		user       models.User
		course     models.Course
		err        error
	)

	for tries := 0; ; tries++ {
		enrollment, user, course, err = g.enrollTx(userID, courseID)
		if !isDeadlock(err) || tries == enrollDeadlockRetries {
			break
		}
	}
	if err != nil {
		return models.Enrollment{}, err
	}

	// Best-effort; a failed confirmation never rolls back the enrollment.
	if err := g.notifier.EnrollmentConfirmation(user.Email, user.Name, course.Title, enrollment.EnrolledAt); err != nil {
		log.Println("[enroll] notifier failed:", err)
	}
	return enrollment, nil
}

func (g *EnrollmentGuard) enrollTx(userID, courseID uint) (models.Enrollment, models.User, models.Course, error) {
	var (
		enrollment models.Enrollment
		user       models.User
		course     models.Course
	)
	err := g.db.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.Enrollment{}).
			Where("user_id = ? AND course_id = ?", userID, courseID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrAlreadyEnrolled
		}

		if err := tx.First(&course, courseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCourseNotFound
			}
			return err
		}
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		// Conditional insert: only lands while the live count is under
		// capacity. InnoDB shared-locks the counted rows for the duration of
		// the statement, so two racing enrolls cannot both pass the count.
		now := time.Now()
		result := tx.Exec(`
			INSERT INTO enrollments (user_id, course_id, enrolled_at)
			SELECT u.id, c.id, ?
			FROM users u JOIN courses c ON c.id = ?
			WHERE u.id = ?
			AND (SELECT COUNT(*) FROM enrollments e WHERE e.course_id = c.id) < c.capacity`,
			now, courseID, userID,
		)
		if result.Error != nil {
			if isDuplicateKey(result.Error) {
				return ErrAlreadyEnrolled
			}
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrCourseFull
		}

		return tx.Where("user_id = ? AND course_id = ?", userID, courseID).
			First(&enrollment).Error
	})
	return enrollment, user, course, err
}

func (g *EnrollmentGuard) Get(enrollmentID uint) (models.Enrollment, error) {
	var enrollment models.Enrollment
	err := g.db.First(&enrollment, enrollmentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Enrollment{}, ErrEnrollmentNotFound
	}
	return enrollment, err
}

func (g *EnrollmentGuard) FindPair(userID, courseID uint) (models.Enrollment, error) {
	var enrollment models.Enrollment
	err := g.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Enrollment{}, ErrEnrollmentNotFound
	}
	return enrollment, err
}

// Unenroll deletes exactly one enrollment row; matching nothing is
// ErrEnrollmentNotFound, not a failure needing rollback.
func (g *EnrollmentGuard) Unenroll(enrollmentID uint) error {
	result := g.db.Delete(&models.Enrollment{}, enrollmentID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEnrollmentNotFound
	}
	return nil
}
