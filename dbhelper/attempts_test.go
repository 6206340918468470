package dbhelper

import (
	"testing"
	"time"
)

func TestLockoutBelowThreshold(t *testing.T) {
	db := openTestDB(t)
	policy := NewLockoutPolicy(db)
	now := time.Now()

	backdateFailedAttempts(t, db, "a@x.com", 2, now.Add(-time.Minute))

	status, err := policy.IsLockedOut("a@x.com", now)
	if err != nil {
		t.Fatal(err)
	}
	if status.Locked {
		t.Fatal("locked below threshold")
	}
}

func TestLockoutAtThreshold(t *testing.T) {
	db := openTestDB(t)
	policy := NewLockoutPolicy(db)
	now := time.Now()

	backdateFailedAttempts(t, db, "a@x.com", 3, now.Add(-time.Minute))

	status, err := policy.IsLockedOut("a@x.com", now)
	if err != nil {
		t.Fatal(err)
	}
	if !status.Locked {
		t.Fatal("expected lockout at threshold")
	}
	// Oldest failure one minute ago, five-minute window: four minutes left.
	if status.RetryAfter != 4*time.Minute {
		t.Fatalf("RetryAfter = %s, want 4m", status.RetryAfter)
	}
}

func TestLockoutRetryAfterRoundsUp(t *testing.T) {
	db := openTestDB(t)
	policy := NewLockoutPolicy(db)
	now := time.Now()

	backdateFailedAttempts(t, db, "a@x.com", 3, now.Add(-90*time.Second))

	status, err := policy.IsLockedOut("a@x.com", now)
	if err != nil {
		t.Fatal(err)
	}
	// 3m30s remaining rounds up to 4 whole minutes.
	if !status.Locked || status.RetryAfter != 4*time.Minute {
		t.Fatalf("got %+v, want locked with 4m retry", status)
	}
}

func TestLockoutWindowIncludesBoundary(t *testing.T) {
	db := openTestDB(t)
	policy := NewLockoutPolicy(db)
	now := time.Now()

	// Failures exactly at the window edge still count; the window is closed
	// on both ends.
	backdateFailedAttempts(t, db, "a@x.com", 3, now.Add(-policy.Window))

	status, err := policy.IsLockedOut("a@x.com", now)
	if err != nil {
		t.Fatal(err)
	}
	if !status.Locked {
		t.Fatal("failures on the window boundary must count")
	}
	// Zero time remaining still reports a minimum one-minute retry.
	if status.RetryAfter != time.Minute {
		t.Fatalf("RetryAfter = %s, want 1m", status.RetryAfter)
	}
}

func TestLockoutSlidesOpenAsAttemptsAge(t *testing.T) {
	db := openTestDB(t)
	policy := NewLockoutPolicy(db)
	now := time.Now()

	// Two failures have already fallen out of the window; one remains.
	backdateFailedAttempts(t, db, "a@x.com", 2, now.Add(-6*time.Minute))
	backdateFailedAttempts(t, db, "a@x.com", 1, now.Add(-time.Minute))

	status, err := policy.IsLockedOut("a@x.com", now)
	if err != nil {
		t.Fatal(err)
	}
	if status.Locked {
		t.Fatal("attempts outside the window must not count")
	}
}

func TestLockoutIgnoresSuccessesAndOtherEmails(t *testing.T) {
	db := openTestDB(t)
	logAttempts := NewAttemptLog(db)
	policy := NewLockoutPolicy(db)
	now := time.Now()

	for i := 0; i < 5; i++ {
		if err := logAttempts.Record("a@x.com", true, AttemptMeta{}); err != nil {
			t.Fatal(err)
		}
	}
	backdateFailedAttempts(t, db, "b@x.com", 3, now.Add(-time.Minute))

	status, err := policy.IsLockedOut("a@x.com", now)
	if err != nil {
		t.Fatal(err)
	}
	if status.Locked {
		t.Fatal("successful attempts and other emails must not lock the account")
	}
}
