package dbhelper

import (
	"errors"

	"github.com/DanielAfitsinski/wad-portfolio/models"
	"github.com/DanielAfitsinski/wad-portfolio/utils"
	"gorm.io/gorm"
)

// dummyHash is compared against when the email is unknown so that the
// unknown-email and wrong-password paths cost the same.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// CredentialStore verifies email/password pairs. It is read-only; recording
// the attempt is the caller's responsibility.
type CredentialStore struct {
	db *gorm.DB
}

func NewCredentialStore(db *gorm.DB) *CredentialStore {
	return &CredentialStore{db: db}
}

// Verify returns the user on a match and ErrInvalidCredentials otherwise,
// uniformly for unknown emails and wrong passwords.
func (s *CredentialStore) Verify(email, password string) (models.User, error) {
	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		_ = utils.ComparePasswords(dummyHash, password)
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, err
	}
	if utils.ComparePasswords(user.PasswordHash, password) != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}
