package dbhelper

import (
	"sync"
	"testing"
	"time"

	"github.com/DanielAfitsinski/wad-portfolio/models"
	"github.com/DanielAfitsinski/wad-portfolio/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatal(err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	// One connection keeps the in-memory database alive and serializes
	// writers, which sqlite wants anyway.
	sqlDB.SetMaxOpenConns(1)
	if err := Migrate(db); err != nil {
		t.Fatal(err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email, password, role string, active bool) models.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	if err != nil {
		t.Fatal(err)
	}
	user := models.User{
		Email:        email,
		PasswordHash: hash,
		Name:         "Test User",
		Role:         role,
		IsActive:     active,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatal(err)
	}
	return user
}

func createTestCourse(t *testing.T, db *gorm.DB, title string, capacity int) models.Course {
	t.Helper()
	course := models.Course{Title: title, Instructor: "Dr. Example", Duration: "6 weeks", Capacity: capacity}
	if err := db.Create(&course).Error; err != nil {
		t.Fatal(err)
	}
	return course
}

func backdateFailedAttempts(t *testing.T, db *gorm.DB, email string, n int, at time.Time) {
	t.Helper()
	for i := 0; i < n; i++ {
		attempt := models.LoginAttempt{Email: email, Success: false, AttemptedAt: at}
		if err := db.Create(&attempt).Error; err != nil {
			t.Fatal(err)
		}
	}
}

// captureNotifier records notifications for assertions.
type captureNotifier struct {
	mu          sync.Mutex
	enrollments []string
	resetTokens []string
	fail        bool
}

func (n *captureNotifier) EnrollmentConfirmation(email, name, courseTitle string, enrolledAt time.Time) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.enrollments = append(n.enrollments, email+":"+courseTitle)
	if n.fail {
		return errNotifierDown
	}
	return nil
}

func (n *captureNotifier) PasswordReset(email, name, token string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.resetTokens = append(n.resetTokens, token)
	if n.fail {
		return errNotifierDown
	}
	return nil
}

func (n *captureNotifier) lastResetToken() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.resetTokens) == 0 {
		return ""
	}
	return n.resetTokens[len(n.resetTokens)-1]
}

var errNotifierDown = errTest("notifier down")

type errTest string

func (e errTest) Error() string { return string(e) }
