package admin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/2beens/workouttracker/internal/auth"
	"github.com/2beens/workouttracker/internal/telemetry/tracing"
	"github.com/2beens/workouttracker/internal/users"
	"github.com/2beens/workouttracker/internal/web"
	"github.com/2beens/workouttracker/internal/workouts"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=admin_test

const (
	adminPath       = "/admin"
	msgUserNotFound = "User not found"
)

type reportsService interface {
	GlobalProfile(ctx context.Context) (*workouts.Profile, error)
	Profile(ctx context.Context, userID int) (*workouts.Profile, error)
	RecentWorkouts(ctx context.Context, userID int, limit int) ([]workouts.Workout, error)
}

type accountsService interface {
	Get(ctx context.Context, id int) (*users.User, error)
	List(ctx context.Context) ([]users.Summary, error)
	Delete(ctx context.Context, requesterID, id int) error
}

type OverviewData struct {
	Global         *workouts.Profile
	Users          []users.Summary
	RecentWorkouts []workouts.Workout
	// Usernames maps user ids of RecentWorkouts to their usernames.
	Usernames map[int]string
}

type UserData struct {
	Subject        *users.User
	Profile        *workouts.Profile
	RecentWorkouts []workouts.Workout
}

type Handler struct {
	reports     reportsService
	accounts    accountsService
	renderer    *web.Renderer
	recentLimit int
}

func NewHandler(
	reports reportsService,
	accounts accountsService,
	renderer *web.Renderer,
	recentLimit int,
) *Handler {
	if recentLimit <= 0 {
		recentLimit = 20
	}
	return &Handler{
		reports:     reports,
		accounts:    accounts,
		renderer:    renderer,
		recentLimit: recentLimit,
	}
}

func (h *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("", h.HandleOverview).Methods(http.MethodGet).Name("admin")
	router.HandleFunc("/user/{id:[0-9]+}", h.HandleUser).Methods(http.MethodGet).Name("admin-user")
	router.HandleFunc("/delete_user/{id:[0-9]+}", h.HandleDeleteUser).Methods(http.MethodPost).Name("admin-delete-user")
}

func (h *Handler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.admin.overview")
	defer span.End()

	admin, _ := auth.UserFromContext(ctx)

	global, err := h.reports.GlobalProfile(ctx)
	if err != nil {
		log.Errorf("admin overview, global profile: %s", err)
		h.renderer.Error(w, r, admin, "Failed to load the admin overview.", http.StatusInternalServerError)
		return
	}

	accounts, err := h.accounts.List(ctx)
	if err != nil {
		log.Errorf("admin overview, list users: %s", err)
		h.renderer.Error(w, r, admin, "Failed to load the admin overview.", http.StatusInternalServerError)
		return
	}

	recent, err := h.reports.RecentWorkouts(ctx, 0, h.recentLimit)
	if err != nil {
		log.Errorf("admin overview, recent workouts: %s", err)
		h.renderer.Error(w, r, admin, "Failed to load the admin overview.", http.StatusInternalServerError)
		return
	}

	usernames := make(map[int]string, len(accounts))
	for _, a := range accounts {
		usernames[a.ID] = a.Username
	}

	h.renderer.Render(w, r, "admin", web.Page{
		Title: "Admin",
		User:  admin,
		Data: OverviewData{
			Global:         global,
			Users:          accounts,
			RecentWorkouts: recent,
			Usernames:      usernames,
		},
	}, http.StatusOK)
}

func (h *Handler) HandleUser(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.admin.user")
	defer span.End()

	admin, _ := auth.UserFromContext(ctx)

	userID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		h.renderer.Redirect(w, r, adminPath, msgUserNotFound)
		return
	}
	span.SetAttributes(attribute.Int("user.id", userID))

	subject, err := h.accounts.Get(ctx, userID)
	if errors.Is(err, users.ErrUserNotFound) {
		h.renderer.Redirect(w, r, adminPath, msgUserNotFound)
		return
	}
	if err != nil {
		log.Errorf("admin user %d: %s", userID, err)
		h.renderer.Error(w, r, admin, "Failed to load the user.", http.StatusInternalServerError)
		return
	}

	profile, err := h.reports.Profile(ctx, userID)
	if err != nil {
		log.Errorf("admin user %d, profile: %s", userID, err)
		h.renderer.Error(w, r, admin, "Failed to load the user.", http.StatusInternalServerError)
		return
	}

	recent, err := h.reports.RecentWorkouts(ctx, userID, h.recentLimit)
	if err != nil {
		log.Errorf("admin user %d, recent workouts: %s", userID, err)
		h.renderer.Error(w, r, admin, "Failed to load the user.", http.StatusInternalServerError)
		return
	}

	h.renderer.Render(w, r, "admin_user", web.Page{
		Title: fmt.Sprintf("User %s", subject.Username),
		User:  admin,
		Data: UserData{
			Subject:        subject,
			Profile:        profile,
			RecentWorkouts: recent,
		},
	}, http.StatusOK)
}

func (h *Handler) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.admin.user.delete")
	defer span.End()

	admin, ok := auth.UserFromContext(ctx)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	userID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		h.renderer.Redirect(w, r, adminPath, msgUserNotFound)
		return
	}
	span.SetAttributes(attribute.Int("user.id", userID))

	err = h.accounts.Delete(ctx, admin.ID, userID)
	switch {
	case errors.Is(err, users.ErrCannotDeleteSelf):
		h.renderer.Redirect(w, r, adminPath, "You cannot delete your own account.")
	case errors.Is(err, users.ErrUserNotFound):
		h.renderer.Redirect(w, r, adminPath, msgUserNotFound)
	case err != nil:
		log.Errorf("admin %d delete user %d: %s", admin.ID, userID, err)
		h.renderer.Redirect(w, r, adminPath, "Failed to delete the user.")
	default:
		log.Infof("admin %d deleted user %d", admin.ID, userID)
		h.renderer.Redirect(w, r, adminPath, "User deleted.")
	}
}
