package routes

import (
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"
	"os"

	"github.com/DanielAfitsinski/wad-portfolio/dbhelper"
	"github.com/DanielAfitsinski/wad-portfolio/models"
	"github.com/DanielAfitsinski/wad-portfolio/utils"
)

type userDTO struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func toDTO(u models.User) userDTO {
	return userDTO{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func errorJSON(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeError maps the dbhelper error taxonomy onto HTTP statuses. Anything
// unrecognised is logged server-side and reported as a bare 500.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, dbhelper.ErrInvalidCredentials):
		errorJSON(w, http.StatusUnauthorized, utils.INVALID_CREDENTIALS)
	case errors.Is(err, dbhelper.ErrTokenInvalid):
		errorJSON(w, http.StatusUnauthorized, utils.INVALID_TOKEN)
	case errors.Is(err, dbhelper.ErrAccountInactive):
		errorJSON(w, http.StatusForbidden, utils.ACCOUNT_INACTIVE)
	case errors.Is(err, dbhelper.ErrExternalTokenInvalid):
		errorJSON(w, http.StatusBadRequest, "Bad Request: Could not verify external token")
	case errors.Is(err, dbhelper.ErrResetTokenInvalid):
		errorJSON(w, http.StatusBadRequest, utils.INVALID_RESET_TOKEN)
	case errors.Is(err, dbhelper.ErrEmailTaken):
		errorJSON(w, http.StatusConflict, "Email is already registered")
	case errors.Is(err, dbhelper.ErrUserNotFound):
		errorJSON(w, http.StatusNotFound, "User not found")
	case errors.Is(err, dbhelper.ErrCourseNotFound):
		errorJSON(w, http.StatusNotFound, "Course not found")
	case errors.Is(err, dbhelper.ErrEnrollmentNotFound):
		errorJSON(w, http.StatusNotFound, "Enrollment not found")
	case errors.Is(err, dbhelper.ErrAlreadyEnrolled):
		errorJSON(w, http.StatusConflict, "User already enrolled in this course")
	case errors.Is(err, dbhelper.ErrCourseFull):
		errorJSON(w, http.StatusConflict, "Course is full")
	case errors.Is(err, dbhelper.ErrCapacityBelowEnrollment):
		errorJSON(w, http.StatusConflict, "Cannot set capacity lower than current enrollment")
	case errors.Is(err, dbhelper.ErrCourseHasEnrollments):
		errorJSON(w, http.StatusConflict, "Cannot delete course with enrolled students")
	default:
		log.Println("[http] internal error:", err)
		errorJSON(w, http.StatusInternalServerError, utils.INTERNAL_SERVER_ERROR)
	}
}

func requestMeta(r *http.Request) dbhelper.AttemptMeta {
	ip := r.RemoteAddr
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		ip = host
	}
	return dbhelper.AttemptMeta{IPAddress: ip, UserAgent: r.UserAgent()}
}

func setAuthCookie(w http.ResponseWriter, token models.AuthToken) {
	http.SetCookie(w, &http.Cookie{
		Name:     utils.AUTH_COOKIE_NAME,
		Value:    token.Token,
		Path:     "/",
		Expires:  token.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   os.Getenv(utils.ENV_COOKIE_SECURE) == "true",
	})
}

func clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     utils.AUTH_COOKIE_NAME,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   os.Getenv(utils.ENV_COOKIE_SECURE) == "true",
	})
}
