package dbhelper

import (
	"fmt"
	"log"
	"os"

	"github.com/DanielAfitsinski/wad-portfolio/models"
	"github.com/DanielAfitsinski/wad-portfolio/utils"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Open connects to MySQL using the DB* environment variables and returns the
// handle. Callers pass it into each component constructor; there is no
// package-level connection.
func Open() (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		os.Getenv(utils.ENV_DBUSER),
		os.Getenv(utils.ENV_DBPASS),
		utils.EnvOr(utils.ENV_DBHOST, "127.0.0.1"),
		utils.EnvOr(utils.ENV_DBPORT, "3306"),
		os.Getenv(utils.ENV_DBNAME),
	)
	return gorm.Open(mysql.Open(dsn), &gorm.Config{})
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.LoginAttempt{},
		&models.AuthToken{},
		&models.PasswordResetToken{},
		&models.Course{},
		&models.Enrollment{},
	)
}

// SeedAdmin creates the admin account from ADMIN_EMAIL/ADMIN_PASSWORD if it
// does not exist yet. A missing configuration is logged, not fatal.
func SeedAdmin(db *gorm.DB) error {
	email := os.Getenv(utils.ENV_ADMIN_EMAIL)
	pass := os.Getenv(utils.ENV_ADMIN_PASS)
	if email == "" || pass == "" {
		log.Println("[seed] ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}
	hash, err := utils.HashPassword(pass)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	admin := models.User{
		Email:        email,
		PasswordHash: hash,
		Name:         "Administrator",
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	result := db.Where("email = ?", email).FirstOrCreate(&admin)
	if result.Error != nil {
		return fmt.Errorf("seed admin: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		log.Println("[seed] admin user created:", email)
	}
	return nil
}
