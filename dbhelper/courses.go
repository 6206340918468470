package dbhelper

import (
	"errors"
	"time"

	"github.com/DanielAfitsinski/wad-portfolio/models"
	"gorm.io/gorm"
)

// CourseStore holds the admin-side course mutations. Capacity changes are
// guarded against the live enrolled count inside the same transaction.
type CourseStore struct {
	db *gorm.DB
}

func NewCourseStore(db *gorm.DB) *CourseStore {
	return &CourseStore{db: db}
}

// CourseSummary is a course row plus its derived enrolled count.
type CourseSummary struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Instructor  string    `json:"instructor"`
	Duration    string    `json:"duration"`
	Capacity    int       `json:"capacity"`
	Enrolled    int64     `json:"enrolled"`
	CreatedAt   time.Time `json:"createdAt"`
}

// EnrollmentDetail is one of a user's enrollments joined with its course.
type EnrollmentDetail struct {
	EnrollmentID uint      `json:"enrollmentId"`
	CourseID     uint      `json:"courseId"`
	Title        string    `json:"title"`
	Instructor   string    `json:"instructor"`
	Duration     string    `json:"duration"`
	Capacity     int       `json:"capacity"`
	EnrolledAt   time.Time `json:"enrollmentDate"`
}

func (s *CourseStore) Create(course models.Course) (models.Course, error) {
	if err := s.db.Create(&course).Error; err != nil {
		return models.Course{}, err
	}
	return course, nil
}

// Update applies course fields; lowering capacity below the current enrolled
// count is rejected.
func (s *CourseStore) Update(courseID uint, updated models.Course) (models.Course, error) {
	var course models.Course
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&course, courseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCourseNotFound
			}
			return err
		}

		var enrolled int64
		if err := tx.Model(&models.Enrollment{}).
			Where("course_id = ?", courseID).Count(&enrolled).Error; err != nil {
			return err
		}
		if int64(updated.Capacity) < enrolled {
			return ErrCapacityBelowEnrollment
		}

		course.Title = updated.Title
		course.Description = updated.Description
		course.Instructor = updated.Instructor
		course.Duration = updated.Duration
		course.Capacity = updated.Capacity
		return tx.Save(&course).Error
	})
	if err != nil {
		return models.Course{}, err
	}
	return course, nil
}

// Delete removes a course; a course with any enrollments is rejected.
func (s *CourseStore) Delete(courseID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var enrolled int64
		if err := tx.Model(&models.Enrollment{}).
			Where("course_id = ?", courseID).Count(&enrolled).Error; err != nil {
			return err
		}
		if enrolled > 0 {
			return ErrCourseHasEnrollments
		}
		result := tx.Delete(&models.Course{}, courseID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrCourseNotFound
		}
		return nil
	})
}

func (s *CourseStore) List() ([]CourseSummary, error) {
	var courses []CourseSummary
	err := s.db.Raw(`
		SELECT c.id, c.title, c.description, c.instructor, c.duration,
		       c.capacity, c.created_at, COUNT(e.id) AS enrolled
		FROM courses c
		LEFT JOIN enrollments e ON e.course_id = c.id
		GROUP BY c.id, c.title, c.description, c.instructor, c.duration,
		         c.capacity, c.created_at
		ORDER BY c.id`).Scan(&courses).Error
	return courses, err
}

func (s *CourseStore) ListUserEnrollments(userID uint) ([]EnrollmentDetail, error) {
	var rows []EnrollmentDetail
	err := s.db.Raw(`
		SELECT e.id AS enrollment_id, c.id AS course_id, c.title, c.instructor,
		       c.duration, c.capacity, e.enrolled_at
		FROM enrollments e
		JOIN courses c ON c.id = e.course_id
		WHERE e.user_id = ?
		ORDER BY e.enrolled_at DESC`, userID).Scan(&rows).Error
	return rows, err
}
