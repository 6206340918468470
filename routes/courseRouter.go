package routes

import (
	"net/http"
	"strconv"

	"github.com/DanielAfitsinski/wad-portfolio/models"
	"github.com/DanielAfitsinski/wad-portfolio/utils"
	"github.com/gorilla/mux"
)

func (api *API) ListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := api.Courses.List()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": courses})
}

func (api *API) CreateCourse(w http.ResponseWriter, r *http.Request) {
	body, err := decodeValidBody[CourseRequest](api.validate, r)
	if err != nil {
		errorJSON(w, http.StatusBadRequest, utils.MISSING_REQUEST_DATA)
		return
	}

	course, err := api.Courses.Create(models.Course{
		Title:       body.Title,
		Description: body.Description,
		Instructor:  body.Instructor,
		Duration:    body.Duration,
		Capacity:    body.Capacity,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"success":  true,
		"message":  "Course created",
		"courseId": course.ID,
	})
}

func (api *API) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	courseID, ok := pathID(w, r)
	if !ok {
		return
	}
	body, err := decodeValidBody[CourseRequest](api.validate, r)
	if err != nil {
		errorJSON(w, http.StatusBadRequest, utils.MISSING_REQUEST_DATA)
		return
	}

	course, err := api.Courses.Update(courseID, models.Course{
		Title:       body.Title,
		Description: body.Description,
		Instructor:  body.Instructor,
		Duration:    body.Duration,
		Capacity:    body.Capacity,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"message":  "Course updated",
		"courseId": course.ID,
	})
}

func (api *API) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	courseID, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := api.Courses.Delete(courseID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Course deleted",
	})
}

func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		errorJSON(w, http.StatusBadRequest, utils.MISSING_REQUEST_DATA)
		return 0, false
	}
	return uint(id), true
}
