package dbhelper

import (
	"errors"
	"log"
	"time"

	"github.com/DanielAfitsinski/wad-portfolio/models"
	"github.com/DanielAfitsinski/wad-portfolio/utils"
	"gorm.io/gorm"
)

// ResetFlow issues single-use, time-limited password-reset tokens and
// consumes each exactly once.
type ResetFlow struct {
	db       *gorm.DB
	notifier Notifier
	TTL      time.Duration
}

func NewResetFlow(db *gorm.DB, notifier Notifier) *ResetFlow {
	return &ResetFlow{db: db, notifier: notifier, TTL: utils.RESET_TOKEN_DURATION}
}

// RequestReset always reports success to the caller. When the email resolves
// to a user a token is minted and handed to the notifier; an unknown email
// does nothing, indistinguishably.
func (f *ResetFlow) RequestReset(email string) error {
	var user models.User
	err := f.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	value, err := utils.NewOpaqueToken()
	if err != nil {
		return err
	}
	token := models.PasswordResetToken{
		Token:     value,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(f.TTL),
	}
	if err := f.db.Create(&token).Error; err != nil {
		return err
	}

	if err := f.notifier.PasswordReset(user.Email, user.Name, value); err != nil {
		log.Println("[reset] notifier failed:", err)
	}
	return nil
}

// ConsumeReset sets the new password and marks the token used in one
// transaction. The used flag is flipped with a guarded UPDATE, so of two
// racing submissions with the same token exactly one wins.
func (f *ResetFlow) ConsumeReset(token, newPassword string, now time.Time) error {
	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return f.db.Transaction(func(tx *gorm.DB) error {
		claim := tx.Model(&models.PasswordResetToken{}).
			Where("token = ? AND used = ? AND expires_at > ?", token, false, now).
			Update("used", true)
		if claim.Error != nil {
			return claim.Error
		}
		if claim.RowsAffected == 0 {
			return ErrResetTokenInvalid
		}

		var row models.PasswordResetToken
		if err := tx.Where("token = ?", token).First(&row).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).Where("id = ?", row.UserID).
			Update("password_hash", hash).Error; err != nil {
			return err
		}
		// A reset implies the old credential may be compromised; drop any
		// live sessions for the account.
		return tx.Where("user_id = ?", row.UserID).Delete(&models.AuthToken{}).Error
	})
}
