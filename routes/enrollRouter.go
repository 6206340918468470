package routes

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/DanielAfitsinski/wad-portfolio/middlewares"
	"github.com/DanielAfitsinski/wad-portfolio/models"
	"github.com/DanielAfitsinski/wad-portfolio/utils"
)

// UnenrollRequest identifies the row either directly or by pair; validated by
// hand because the either-or shape does not fit struct tags.
type UnenrollRequest struct {
	EnrollmentID *uint `json:"enrollment_id"`
	UserID       *uint `json:"user_id"`
	CourseID     *uint `json:"course_id"`
}

func (api *API) Enroll(w http.ResponseWriter, r *http.Request) {
	body, err := decodeValidBody[EnrollRequest](api.validate, r)
	if err != nil {
		errorJSON(w, http.StatusBadRequest, utils.MISSING_REQUEST_DATA)
		return
	}

	actor, _ := middlewares.CurrentUser(r)
	if actor.Role != models.RoleAdmin && actor.ID != body.UserID {
		errorJSON(w, http.StatusForbidden, utils.ADMIN_REQUIRED)
		return
	}

	enrollment, err := api.Guard.Enroll(body.UserID, body.CourseID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"success":      true,
		"message":      "Successfully enrolled in course",
		"enrollmentId": enrollment.ID,
	})
}

func (api *API) Unenroll(w http.ResponseWriter, r *http.Request) {
	var body UnenrollRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		errorJSON(w, http.StatusBadRequest, utils.MISSING_REQUEST_DATA)
		return
	}

	var (
		enrollment models.Enrollment
		err        error
	)
	switch {
	case body.EnrollmentID != nil:
		enrollment, err = api.Guard.Get(*body.EnrollmentID)
	case body.UserID != nil && body.CourseID != nil:
		enrollment, err = api.Guard.FindPair(*body.UserID, *body.CourseID)
	default:
		errorJSON(w, http.StatusBadRequest, "Bad Request: enrollment_id OR (user_id + course_id) required")
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}

	actor, _ := middlewares.CurrentUser(r)
	if actor.Role != models.RoleAdmin && actor.ID != enrollment.UserID {
		errorJSON(w, http.StatusForbidden, utils.ADMIN_REQUIRED)
		return
	}

	if err := api.Guard.Unenroll(enrollment.ID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Successfully unenrolled from course",
	})
}

func (api *API) ListUserEnrollments(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("user_id")
	userID, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "Bad Request: user_id is required")
		return
	}

	actor, _ := middlewares.CurrentUser(r)
	if actor.Role != models.RoleAdmin && actor.ID != uint(userID) {
		errorJSON(w, http.StatusForbidden, utils.ADMIN_REQUIRED)
		return
	}

	rows, err := api.Courses.ListUserEnrollments(uint(userID))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": rows})
}
