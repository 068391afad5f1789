package v1

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/madhava-poojari/mentorship-api/internal/auth"
	"github.com/madhava-poojari/mentorship-api/internal/config"
	"github.com/madhava-poojari/mentorship-api/internal/models"
)

// Deps is everything the v1 routes need.
type Deps struct {
	Config      *config.Config
	Log         *slog.Logger
	Programs    ProgramAPI
	Forms       FormAPI
	Uploads     UploadAPI
	Enrollments EnrollmentAPI
	Users       UserAPI
	Superadmin  SuperadminAPI
	Tokens      TokenStore
	Google      auth.GoogleVerifier
	DB          Pinger
}

type API struct {
	deps   Deps
	router *chi.Mux
}

func NewAPI(deps Deps) *API {
	api := &API{deps: deps, router: chi.NewRouter()}
	api.routes()
	return api
}

func (a *API) Routes() *chi.Mux {
	return a.router
}

func preflight(w http.ResponseWriter, r *http.Request) {}

func (a *API) routes() {
	d := a.deps
	authn := auth.AuthMiddleware(d.Config, d.Tokens)
	staff := auth.RoleMiddleware(models.RoleAdmin, models.RoleSuperadmin)

	authH := NewAuthHandler(d.Config, d.Google, d.Users, d.Tokens, d.Log)
	programH := NewProgramHandler(d.Programs, d.Log)
	formH := NewFormHandler(d.Forms, d.Uploads, d.Log)
	enrollH := NewEnrollmentHandler(d.Enrollments, d.Log)
	userH := NewUserHandler(d.Users, d.Log)
	superH := NewSuperadminHandler(d.Superadmin, d.Enrollments, d.Log)

	r := a.router
	r.Route("/auth", func(r chi.Router) {
		r.Options("/*", preflight)
		r.Post("/google", authH.GoogleSignIn)
		r.Post("/refresh", authH.Refresh)
		r.Post("/logout", authH.Logout)
	})

	r.Route("/programs", func(r chi.Router) {
		r.Options("/*", preflight)
		r.Group(func(r chi.Router) {
			r.Use(authn)
			r.Get("/", programH.ListPrograms)
			r.Get("/{id}", programH.GetProgram)
			r.With(staff).Post("/", programH.CreateProgram)
			r.With(staff).Put("/{id}", programH.UpdateProgram)
			r.With(staff).Delete("/{id}", programH.DeleteProgram)
		})
	})

	r.Route("/forms", func(r chi.Router) {
		r.Options("/*", preflight)
		r.Group(func(r chi.Router) {
			r.Use(authn)
			r.Post("/upload", formH.Upload)
			r.Get("/program/{programId}", formH.ListFields)
			r.With(staff).Post("/program/{programId}", formH.AddFields)
			r.With(staff).Put("/{id}", formH.UpdateField)
			r.With(staff).Delete("/{id}", formH.DeleteField)
		})
	})

	r.Route("/enrollments", func(r chi.Router) {
		r.Options("/*", preflight)
		r.Group(func(r chi.Router) {
			r.Use(authn)
			r.Get("/", enrollH.ListEnrollments)
			r.Post("/", enrollH.CreateEnrollment)
			r.With(staff).Get("/program/{programId}", enrollH.ListProgramEnrollments)
			r.Get("/{id}", enrollH.GetEnrollment)
			r.Delete("/{id}", enrollH.WithdrawEnrollment)
			r.With(staff).Put("/{id}/accept", enrollH.AcceptEnrollment)
			r.With(staff).Put("/{id}/reject", enrollH.RejectEnrollment)
		})
	})

	r.Route("/users", func(r chi.Router) {
		r.Options("/*", preflight)
		r.Group(func(r chi.Router) {
			r.Use(authn)
			r.Get("/me", userH.GetSelfProfile)
			r.Get("/me/enrollments", userH.GetSelfEnrollments)
			r.With(staff).Get("/{id}", userH.GetUser)
			r.With(staff).Get("/{id}/enrollments", userH.GetUserEnrollments)
		})
	})

	r.Route("/superadmin", func(r chi.Router) {
		r.Options("/*", preflight)
		r.Group(func(r chi.Router) {
			r.Use(authn)
			r.Use(auth.RoleMiddleware(models.RoleSuperadmin))

			r.Get("/stats", superH.GetStats)

			r.Get("/users", superH.ListUsers)
			r.Get("/users/{id}", superH.GetUser)
			r.Patch("/users/{id}/role", superH.ChangeUserRole)
			r.Delete("/users/{id}", superH.DeleteUser)
			r.Get("/admins", superH.ListAdmins)

			r.Get("/programs", superH.ListPrograms)
			r.Patch("/programs/{id}/close", superH.CloseProgram)
			r.Delete("/programs/{id}", superH.DeleteProgram)

			r.Get("/enrollments", superH.ListEnrollments)
			r.Post("/enrollments/status", superH.BulkUpdateEnrollmentStatus)

			r.Get("/audit", superH.ListAudit)
		})
	})

	r.Get("/health", HealthHandler(d.DB))
}
