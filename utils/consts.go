package utils

import "time"

// environment variables
const (
	ENV_DBUSER        = "DBUSER"
	ENV_DBPASS        = "DBPASS"
	ENV_DBHOST        = "DBHOST"
	ENV_DBPORT        = "DBPORT"
	ENV_DBNAME        = "DBNAME"
	ENV_PORT          = "PORT"
	ENV_LOG_FILE      = "LOG_FILE"
	ENV_COOKIE_SECURE = "COOKIE_SECURE"
	ENV_ADMIN_EMAIL   = "ADMIN_EMAIL"
	ENV_ADMIN_PASS    = "ADMIN_PASSWORD"
)

// lockout policy: three failures inside a sliding five-minute window
const (
	MAX_LOGIN_ATTEMPTS = 3
	LOCKOUT_WINDOW     = 5 * time.Minute
)

// token lifetimes
const (
	AUTH_TOKEN_DURATION  = time.Hour
	RESET_TOKEN_DURATION = time.Hour
)

// course capacity bounds
const (
	MIN_COURSE_CAPACITY = 1
	MAX_COURSE_CAPACITY = 1000
)

const AUTH_COOKIE_NAME = "authToken"

// error messages
const (
	MISSING_REQUEST_DATA   = "Bad Request: Missing or invalid request data"
	INVALID_CREDENTIALS    = "Unauthorised: Invalid email or password"
	ACCOUNT_INACTIVE       = "Forbidden: Account is inactive"
	ACCOUNT_LOCKED         = "Account locked due to too many failed login attempts"
	NO_TOKEN               = "Unauthorised: Please login"
	INVALID_TOKEN          = "Unauthorised: Invalid or expired token"
	ADMIN_REQUIRED         = "Forbidden: Admin access required"
	INVALID_RESET_TOKEN    = "Invalid or expired reset token"
	INTERNAL_SERVER_ERROR  = "Internal server error"
	RESET_REQUEST_ACCEPTED = "If email exists, reset link will be sent"
)
