package dbhelper

import (
	"errors"
	"time"

	"github.com/DanielAfitsinski/wad-portfolio/models"
	"github.com/DanielAfitsinski/wad-portfolio/utils"
	"gorm.io/gorm"
)

// UserDirectory looks up, creates, and updates user records.
type UserDirectory struct {
	db *gorm.DB
}

func NewUserDirectory(db *gorm.DB) *UserDirectory {
	return &UserDirectory{db: db}
}

func (d *UserDirectory) GetByID(id uint) (models.User, error) {
	var user models.User
	err := d.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}

func (d *UserDirectory) GetByEmail(email string) (models.User, error) {
	var user models.User
	err := d.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}

// Create registers a new account with the user role.
func (d *UserDirectory) Create(email, name, passwordHash string) (models.User, error) {
	user := models.User{
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		Role:         models.RoleUser,
		IsActive:     true,
	}
	if err := d.db.Create(&user).Error; err != nil {
		if isDuplicateKey(err) {
			return models.User{}, ErrEmailTaken
		}
		return models.User{}, err
	}
	return user, nil
}

// EnsureExternal returns the user for an externally verified identity,
// creating the account on first sight. OAuth accounts get a random password
// they will never use.
func (d *UserDirectory) EnsureExternal(email, name string) (models.User, error) {
	user, err := d.GetByEmail(email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return models.User{}, err
	}

	random, err := utils.NewOpaqueToken()
	if err != nil {
		return models.User{}, err
	}
	hash, err := utils.HashPassword(random)
	if err != nil {
		return models.User{}, err
	}
	if name == "" {
		name = email
	}
	user, err = d.Create(email, name, hash)
	if errors.Is(err, ErrEmailTaken) {
		// Lost a creation race; the row exists now.
		return d.GetByEmail(email)
	}
	return user, err
}

func (d *UserDirectory) TouchLastLogin(userID uint) error {
	now := time.Now()
	return d.db.Model(&models.User{}).Where("id = ?", userID).
		Update("last_login", &now).Error
}
