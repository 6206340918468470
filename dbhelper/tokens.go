package dbhelper

import (
	"time"

	"github.com/DanielAfitsinski/wad-portfolio/models"
	"github.com/DanielAfitsinski/wad-portfolio/utils"
	"gorm.io/gorm"
)

// TokenIssuer mints, validates, and revokes opaque bearer tokens. Every token
// has a fixed lifetime; there is no sliding renewal.
type TokenIssuer struct {
	db  *gorm.DB
	TTL time.Duration
}

func NewTokenIssuer(db *gorm.DB) *TokenIssuer {
	return &TokenIssuer{db: db, TTL: utils.AUTH_TOKEN_DURATION}
}

func (i *TokenIssuer) Issue(userID uint, meta AttemptMeta) (models.AuthToken, error) {
	value, err := utils.NewOpaqueToken()
	if err != nil {
		return models.AuthToken{}, err
	}
	token := models.AuthToken{
		Token:     value,
		UserID:    userID,
		ExpiresAt: time.Now().Add(i.TTL),
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	}
	if err := i.db.Create(&token).Error; err != nil {
		return models.AuthToken{}, err
	}
	return token, nil
}

// Validate resolves a token to its owning user. It fails on an unknown token,
// a past expiry (expired rows are not physically deleted), and on an owner
// that has since been deactivated.
func (i *TokenIssuer) Validate(token string, now time.Time) (models.User, error) {
	var user models.User
	result := i.db.Raw(`
		SELECT u.* FROM auth_tokens at
		JOIN users u ON u.id = at.user_id
		WHERE at.token = ? AND at.expires_at > ? AND u.is_active = ?`,
		token, now, true,
	).Scan(&user)
	if result.Error != nil {
		return models.User{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.User{}, ErrTokenInvalid
	}
	return user, nil
}

// Revoke deletes the token row. Revoking an unknown or already-revoked token
// is not an error.
func (i *TokenIssuer) Revoke(token string) error {
	return i.db.Where("token = ?", token).Delete(&models.AuthToken{}).Error
}
