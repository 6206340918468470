package routes

import (
	"github.com/DanielAfitsinski/wad-portfolio/dbhelper"
	"github.com/DanielAfitsinski/wad-portfolio/middlewares"
	"github.com/didip/tollbooth/v6"
	"github.com/didip/tollbooth/v6/limiter"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// API bundles the core services behind the HTTP handlers. Everything is
// constructed from the injected DB handle; no hidden globals.
type API struct {
	Auth    *dbhelper.AuthSessionService
	Reset   *dbhelper.ResetFlow
	Guard   *dbhelper.EnrollmentGuard
	Courses *dbhelper.CourseStore
	Users   *dbhelper.UserDirectory

	validate *validator.Validate
}

func NewAPI(db *gorm.DB, notifier dbhelper.Notifier, verify dbhelper.VerifyExternalIdentity) *API {
	return &API{
		Auth:     dbhelper.NewAuthSessionService(db, verify),
		Reset:    dbhelper.NewResetFlow(db, notifier),
		Guard:    dbhelper.NewEnrollmentGuard(db, notifier),
		Courses:  dbhelper.NewCourseStore(db),
		Users:    dbhelper.NewUserDirectory(db),
		validate: validator.New(),
	}
}

func CreateRoutes(r *mux.Router, api *API) {
	// Per-IP throttle on the credential-bearing endpoints, on top of the
	// per-account lockout.
	lmt := tollbooth.NewLimiter(5, &limiter.ExpirableOptions{})
	lmt.SetMessageContentType("application/json")
	lmt.SetMessage(`{"error":"Too Many Requests"}`)

	s := r.PathPrefix("/api/auth").Subrouter()
	s.Handle("/login", tollbooth.LimitFuncHandler(lmt, api.Login)).Methods("POST")
	s.Handle("/google", tollbooth.LimitFuncHandler(lmt, api.GoogleLogin)).Methods("POST")
	s.Handle("/register", tollbooth.LimitFuncHandler(lmt, api.Register)).Methods("POST")
	s.Handle("/forgot-password", tollbooth.LimitFuncHandler(lmt, api.ForgotPassword)).Methods("POST")
	s.Handle("/reset-password", tollbooth.LimitFuncHandler(lmt, api.ResetPassword)).Methods("POST")
	s.HandleFunc("/logout", api.Logout).Methods("POST")
	s.HandleFunc("/verify", middlewares.RequireAuth(api.Auth, api.VerifySession)).Methods("GET")

	e := r.PathPrefix("/api/enrollments").Subrouter()
	e.HandleFunc("", middlewares.RequireAuth(api.Auth, api.Enroll)).Methods("POST")
	e.HandleFunc("", middlewares.RequireAuth(api.Auth, api.Unenroll)).Methods("DELETE")
	e.HandleFunc("/remove", middlewares.RequireAuth(api.Auth, api.Unenroll)).Methods("POST")
	e.HandleFunc("", middlewares.RequireAuth(api.Auth, api.ListUserEnrollments)).Methods("GET")

	c := r.PathPrefix("/api/courses").Subrouter()
	c.HandleFunc("", middlewares.RequireAuth(api.Auth, api.ListCourses)).Methods("GET")
	c.HandleFunc("", middlewares.RequireAdmin(api.Auth, api.CreateCourse)).Methods("POST")
	c.HandleFunc("/{id:[0-9]+}", middlewares.RequireAdmin(api.Auth, api.UpdateCourse)).Methods("PUT")
	c.HandleFunc("/{id:[0-9]+}", middlewares.RequireAdmin(api.Auth, api.DeleteCourse)).Methods("DELETE")
}
