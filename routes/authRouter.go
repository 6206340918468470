package routes

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/DanielAfitsinski/wad-portfolio/dbhelper"
	"github.com/DanielAfitsinski/wad-portfolio/middlewares"
	"github.com/DanielAfitsinski/wad-portfolio/utils"
	"github.com/go-playground/validator/v10"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type GoogleLoginRequest struct {
	Token string `json:"token" validate:"required"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,min=2,max=120"`
	Password string `json:"password" validate:"required,min=8,max=64"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8,max=64"`
}

type EnrollRequest struct {
	UserID   uint `json:"user_id" validate:"required"`
	CourseID uint `json:"course_id" validate:"required"`
}

type CourseRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Instructor  string `json:"instructor" validate:"max=120"`
	Duration    string `json:"duration" validate:"max=64"`
	Capacity    int    `json:"capacity" validate:"required,min=1,max=1000"`
}

type RequestBody interface {
	LoginRequest | GoogleLoginRequest | RegisterRequest | ForgotPasswordRequest |
		ResetPasswordRequest | EnrollRequest | CourseRequest
}

func decodeValidBody[B RequestBody](v *validator.Validate, r *http.Request) (B, error) {
	var body B
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return body, err
	}
	if err := v.Struct(body); err != nil {
		return body, err
	}
	return body, nil
}

func (api *API) Login(w http.ResponseWriter, r *http.Request) {
	body, err := decodeValidBody[LoginRequest](api.validate, r)
	if err != nil {
		errorJSON(w, http.StatusBadRequest, utils.MISSING_REQUEST_DATA)
		return
	}

	user, token, err := api.Auth.Login(body.Email, body.Password, requestMeta(r))
	var locked *dbhelper.LockoutError
	if errors.As(err, &locked) {
		writeJSON(w, http.StatusTooManyRequests, map[string]any{
			"error":       utils.ACCOUNT_LOCKED,
			"lockedUntil": utils.RetryAfterMinutes(locked.RetryAfter),
			"message":     utils.GenerateLockoutMessage(locked.RetryAfter),
		})
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}

	setAuthCookie(w, token)
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"user":    toDTO(user),
	})
}

func (api *API) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	body, err := decodeValidBody[GoogleLoginRequest](api.validate, r)
	if err != nil {
		errorJSON(w, http.StatusBadRequest, utils.MISSING_REQUEST_DATA)
		return
	}

	user, token, err := api.Auth.GoogleLogin(r.Context(), body.Token, requestMeta(r))
	if err != nil {
		writeError(w, err)
		return
	}

	setAuthCookie(w, token)
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Google login successful",
		"user":    toDTO(user),
	})
}

func (api *API) Register(w http.ResponseWriter, r *http.Request) {
	body, err := decodeValidBody[RegisterRequest](api.validate, r)
	if err != nil {
		errorJSON(w, http.StatusBadRequest, utils.MISSING_REQUEST_DATA)
		return
	}

	hash, err := utils.HashPassword(body.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	user, err := api.Users.Create(body.Email, body.Name, hash)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Registration successful",
		"user":    toDTO(user),
	})
}

func (api *API) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(utils.AUTH_COOKIE_NAME)
	if err != nil || cookie.Value == "" {
		errorJSON(w, http.StatusUnauthorized, utils.NO_TOKEN)
		return
	}
	if err := api.Auth.Logout(cookie.Value); err != nil {
		writeError(w, err)
		return
	}
	clearAuthCookie(w)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Logged out successfully",
	})
}

func (api *API) VerifySession(w http.ResponseWriter, r *http.Request) {
	user, _ := middlewares.CurrentUser(r)
	writeJSON(w, http.StatusOK, map[string]any{"user": toDTO(user)})
}

func (api *API) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	body, err := decodeValidBody[ForgotPasswordRequest](api.validate, r)
	if err != nil {
		errorJSON(w, http.StatusBadRequest, utils.MISSING_REQUEST_DATA)
		return
	}

	// An unknown email reports success too; the response must not leak
	// whether the account exists.
	if err := api.Reset.RequestReset(body.Email); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": utils.RESET_REQUEST_ACCEPTED,
	})
}

func (api *API) ResetPassword(w http.ResponseWriter, r *http.Request) {
	body, err := decodeValidBody[ResetPasswordRequest](api.validate, r)
	if err != nil {
		errorJSON(w, http.StatusBadRequest, utils.MISSING_REQUEST_DATA)
		return
	}
	if err := api.Reset.ConsumeReset(body.Token, body.Password, time.Now()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Password reset successfully",
	})
}
