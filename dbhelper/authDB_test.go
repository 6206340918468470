package dbhelper

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DanielAfitsinski/wad-portfolio/models"
	"github.com/DanielAfitsinski/wad-portfolio/utils"
)

func fakeVerify(identity ExternalIdentity, err error) VerifyExternalIdentity {
	return func(ctx context.Context, token string) (ExternalIdentity, error) {
		return identity, err
	}
}

func TestLoginSuccessIssuesToken(t *testing.T) {
	db := openTestDB(t)
	svc := NewAuthSessionService(db, nil)
	user := createTestUser(t, db, "a@x.com", "correct horse", models.RoleUser, true)

	got, token, err := svc.Login("a@x.com", "correct horse", AttemptMeta{IPAddress: "203.0.113.9"})
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != user.ID || token.Token == "" {
		t.Fatalf("bad login result: user %d token %q", got.ID, token.Token)
	}

	var attempt models.LoginAttempt
	if err := db.Where("email = ?", "a@x.com").First(&attempt).Error; err != nil {
		t.Fatal(err)
	}
	if !attempt.Success || attempt.UserID == nil || *attempt.UserID != user.ID {
		t.Fatalf("attempt not recorded as success: %+v", attempt)
	}

	var fresh models.User
	if err := db.First(&fresh, user.ID).Error; err != nil {
		t.Fatal(err)
	}
	if fresh.LastLogin == nil {
		t.Fatal("last login not stamped")
	}
}

func TestLoginLockoutEvenWithCorrectPassword(t *testing.T) {
	db := openTestDB(t)
	svc := NewAuthSessionService(db, nil)
	createTestUser(t, db, "a@x.com", "correct horse", models.RoleUser, true)

	for i := 0; i < utils.MAX_LOGIN_ATTEMPTS; i++ {
		if _, _, err := svc.Login("a@x.com", "wrong", AttemptMeta{}); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("attempt %d: got %v", i, err)
		}
	}

	_, _, err := svc.Login("a@x.com", "correct horse", AttemptMeta{})
	var locked *LockoutError
	if !errors.As(err, &locked) {
		t.Fatalf("got %v, want LockoutError", err)
	}
	if utils.RetryAfterMinutes(locked.RetryAfter) != 5 {
		t.Fatalf("lockedUntil = %d minutes, want 5", utils.RetryAfterMinutes(locked.RetryAfter))
	}

	// The refused attempt itself must land in the log as a failure.
	var failures int64
	if err := db.Model(&models.LoginAttempt{}).
		Where("email = ? AND success = ?", "a@x.com", false).Count(&failures).Error; err != nil {
		t.Fatal(err)
	}
	if failures != int64(utils.MAX_LOGIN_ATTEMPTS)+1 {
		t.Fatalf("got %d failures recorded, want %d", failures, utils.MAX_LOGIN_ATTEMPTS+1)
	}
}

func TestLoginSucceedsOnceWindowPasses(t *testing.T) {
	db := openTestDB(t)
	svc := NewAuthSessionService(db, nil)
	createTestUser(t, db, "a@x.com", "correct horse", models.RoleUser, true)

	// Failures older than the window must not lock the account.
	backdateFailedAttempts(t, db, "a@x.com", 3, time.Now().Add(-utils.LOCKOUT_WINDOW-time.Minute))

	if _, _, err := svc.Login("a@x.com", "correct horse", AttemptMeta{}); err != nil {
		t.Fatal(err)
	}
}

func TestLoginInactiveAccount(t *testing.T) {
	db := openTestDB(t)
	svc := NewAuthSessionService(db, nil)
	createTestUser(t, db, "a@x.com", "correct horse", models.RoleUser, false)

	_, _, err := svc.Login("a@x.com", "correct horse", AttemptMeta{})
	if !errors.Is(err, ErrAccountInactive) {
		t.Fatalf("got %v, want ErrAccountInactive", err)
	}

	// The credentials were valid, so the single recorded attempt is a
	// success; an inactive account must not inch toward lockout.
	var attempt models.LoginAttempt
	if err := db.Where("email = ?", "a@x.com").First(&attempt).Error; err != nil {
		t.Fatal(err)
	}
	if !attempt.Success {
		t.Fatal("inactive-account attempt recorded as failure")
	}
}

func TestLogoutInvalidatesSession(t *testing.T) {
	db := openTestDB(t)
	svc := NewAuthSessionService(db, nil)
	createTestUser(t, db, "a@x.com", "correct horse", models.RoleUser, true)

	_, token, err := svc.Login("a@x.com", "correct horse", AttemptMeta{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Verify(token.Token); err != nil {
		t.Fatal(err)
	}
	if err := svc.Logout(token.Token); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Verify(token.Token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("got %v after logout, want ErrTokenInvalid", err)
	}
	if err := svc.Logout(token.Token); err != nil {
		t.Fatal("second logout must not be an error:", err)
	}
}

func TestGoogleLoginCreatesUserOnFirstSight(t *testing.T) {
	db := openTestDB(t)
	svc := NewAuthSessionService(db, fakeVerify(ExternalIdentity{Email: "new@x.com", Name: "New Person"}, nil))

	user, token, err := svc.GoogleLogin(context.Background(), "opaque-google-token", AttemptMeta{})
	if err != nil {
		t.Fatal(err)
	}
	if user.Email != "new@x.com" || user.Role != models.RoleUser || token.Token == "" {
		t.Fatalf("bad first-sight login: %+v", user)
	}

	// Second login resolves the same account instead of creating another.
	again, _, err := svc.GoogleLogin(context.Background(), "opaque-google-token", AttemptMeta{})
	if err != nil {
		t.Fatal(err)
	}
	if again.ID != user.ID {
		t.Fatalf("second login got user %d, want %d", again.ID, user.ID)
	}
}

func TestGoogleLoginBadExternalToken(t *testing.T) {
	db := openTestDB(t)
	svc := NewAuthSessionService(db, fakeVerify(ExternalIdentity{}, ErrExternalTokenInvalid))

	_, _, err := svc.GoogleLogin(context.Background(), "garbage", AttemptMeta{})
	if !errors.Is(err, ErrExternalTokenInvalid) {
		t.Fatalf("got %v, want ErrExternalTokenInvalid", err)
	}
}

func TestGoogleLoginInactiveAccount(t *testing.T) {
	db := openTestDB(t)
	svc := NewAuthSessionService(db, fakeVerify(ExternalIdentity{Email: "a@x.com", Name: "A"}, nil))
	createTestUser(t, db, "a@x.com", "pw", models.RoleUser, false)

	_, _, err := svc.GoogleLogin(context.Background(), "opaque-google-token", AttemptMeta{})
	if !errors.Is(err, ErrAccountInactive) {
		t.Fatalf("got %v, want ErrAccountInactive", err)
	}
}
