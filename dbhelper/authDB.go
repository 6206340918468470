package dbhelper

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/DanielAfitsinski/wad-portfolio/models"
	"gorm.io/gorm"
)

// AuthSessionService orchestrates the credential store, attempt log, lockout
// policy, and token issuer into the login/logout/verify use cases.
type AuthSessionService struct {
	creds    *CredentialStore
	attempts *AttemptLog
	lockout  *LockoutPolicy
	tokens   *TokenIssuer
	users    *UserDirectory
	verify   VerifyExternalIdentity
}

func NewAuthSessionService(db *gorm.DB, verify VerifyExternalIdentity) *AuthSessionService {
	return &AuthSessionService{
		creds:    NewCredentialStore(db),
		attempts: NewAttemptLog(db),
		lockout:  NewLockoutPolicy(db),
		tokens:   NewTokenIssuer(db),
		users:    NewUserDirectory(db),
		verify:   verify,
	}
}

func (s *AuthSessionService) Tokens() *TokenIssuer { return s.tokens }

// Login records the attempt exactly once, whatever the outcome. A locked-out
// attempt still counts as a failure and extends the window; a correct
// password on an inactive account records a success but is refused.
func (s *AuthSessionService) Login(email, password string, meta AttemptMeta) (models.User, models.AuthToken, error) {
	now := time.Now()

	status, err := s.lockout.IsLockedOut(email, now)
	if err != nil {
		return models.User{}, models.AuthToken{}, err
	}
	if status.Locked {
		s.record(email, false, meta)
		return models.User{}, models.AuthToken{}, &LockoutError{RetryAfter: status.RetryAfter}
	}

	user, err := s.creds.Verify(email, password)
	if errors.Is(err, ErrInvalidCredentials) {
		s.record(email, false, meta)
		return models.User{}, models.AuthToken{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, models.AuthToken{}, err
	}

	meta.UserID = &user.ID
	s.record(email, true, meta)

	if !user.IsActive {
		return models.User{}, models.AuthToken{}, ErrAccountInactive
	}

	token, err := s.tokens.Issue(user.ID, meta)
	if err != nil {
		return models.User{}, models.AuthToken{}, err
	}
	if err := s.users.TouchLastLogin(user.ID); err != nil {
		log.Println("[auth] last-login update failed:", err)
	}
	return user, token, nil
}

// GoogleLogin verifies the external token, creating the account on first
// sight. Lockout does not apply; no password is being guessed.
func (s *AuthSessionService) GoogleLogin(ctx context.Context, externalToken string, meta AttemptMeta) (models.User, models.AuthToken, error) {
	identity, err := s.verify(ctx, externalToken)
	if err != nil {
		return models.User{}, models.AuthToken{}, err
	}

	user, err := s.users.EnsureExternal(identity.Email, identity.Name)
	if err != nil {
		return models.User{}, models.AuthToken{}, err
	}
	if !user.IsActive {
		return models.User{}, models.AuthToken{}, ErrAccountInactive
	}

	token, err := s.tokens.Issue(user.ID, meta)
	if err != nil {
		return models.User{}, models.AuthToken{}, err
	}
	if err := s.users.TouchLastLogin(user.ID); err != nil {
		log.Println("[auth] last-login update failed:", err)
	}
	return user, token, nil
}

// Verify resolves a bearer token to its active owner.
func (s *AuthSessionService) Verify(token string) (models.User, error) {
	return s.tokens.Validate(token, time.Now())
}

// Logout revokes the token; revoking twice is fine.
func (s *AuthSessionService) Logout(token string) error {
	return s.tokens.Revoke(token)
}

func (s *AuthSessionService) record(email string, success bool, meta AttemptMeta) {
	if err := s.attempts.Record(email, success, meta); err != nil {
		log.Println("[auth] attempt log failed:", err)
	}
}
