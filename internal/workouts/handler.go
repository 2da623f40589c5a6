package workouts

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/2beens/workouttracker/internal/auth"
	"github.com/2beens/workouttracker/internal/telemetry/tracing"
	"github.com/2beens/workouttracker/internal/web"
	"github.com/2beens/workouttracker/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type DashboardData struct {
	ActiveSession       *Session
	LastSession         *Session
	LastSessionWorkouts []Workout
	RecentWorkouts      []Workout
	MuscleGroups        []string
	Submitted           bool
}

type ExercisesResponse struct {
	Exercises []string `json:"exercises"`
}

type Handler struct {
	service  *Service
	renderer *web.Renderer
}

func NewHandler(service *Service, renderer *web.Renderer) *Handler {
	return &Handler{
		service:  service,
		renderer: renderer,
	}
}

func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.dashboard")
	defer span.End()

	user, ok := auth.UserFromContext(ctx)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	dashboard, err := h.service.Dashboard(ctx, user.ID)
	if err != nil {
		log.Errorf("dashboard for user %d: %s", user.ID, err)
		h.renderer.Error(w, r, user, "Failed to load the dashboard.", http.StatusInternalServerError)
		return
	}

	h.renderer.Render(w, r, "dashboard", web.Page{
		Title: "Dashboard",
		User:  user,
		Data: DashboardData{
			ActiveSession:       dashboard.ActiveSession,
			LastSession:         dashboard.LastSession,
			LastSessionWorkouts: dashboard.LastSessionWorkouts,
			RecentWorkouts:      dashboard.RecentWorkouts,
			MuscleGroups:        MuscleGroups,
			Submitted:           r.URL.Query().Get("submitted") == "1",
		},
	}, http.StatusOK)
}

func (h *Handler) HandleStartSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.sessions.start")
	defer span.End()

	user, ok := auth.UserFromContext(ctx)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	_, started, err := h.service.StartSession(ctx, user.ID)
	if err != nil {
		log.Errorf("start session for user %d: %s", user.ID, err)
		h.renderer.Redirect(w, r, "/", "Failed to start the session, please try again.")
		return
	}

	message := "Session started."
	if !started {
		message = "A session is already in progress."
	}
	h.renderer.Redirect(w, r, "/", message)
}

func (h *Handler) HandleEndSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.sessions.end")
	defer span.End()

	user, ok := auth.UserFromContext(ctx)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	session, err := h.service.EndSession(ctx, user.ID)
	if err != nil {
		log.Errorf("end session for user %d: %s", user.ID, err)
		h.renderer.Redirect(w, r, "/", "Failed to end the session, please try again.")
		return
	}

	if session == nil || session.DurationMinutes == nil {
		h.renderer.Redirect(w, r, "/", "")
		return
	}
	h.renderer.Redirect(w, r, "/", fmt.Sprintf("Session ended after %.1f minutes.", *session.DurationMinutes))
}

func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.submit")
	defer span.End()

	user, ok := auth.UserFromContext(ctx)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	candidates, err := ParseSetCandidates(r.PostForm)
	if err != nil {
		log.Debugf("submit workout, user %d: %s", user.ID, err)
		h.renderer.Redirect(w, r, "/", "Invalid set values: reps and weight must be non-negative numbers.")
		return
	}

	_, err = h.service.SubmitWorkout(ctx, user.ID, r.PostForm.Get("muscle_group"), r.PostForm.Get("exercise"), candidates)
	switch {
	case errors.Is(err, ErrNoActiveSession):
		h.renderer.Redirect(w, r, "/", "Please start a session first.")
		return
	case errors.Is(err, ErrInvalidWorkout):
		h.renderer.Redirect(w, r, "/", "Please choose a muscle group and an exercise.")
		return
	case err != nil:
		log.Errorf("submit workout, user %d: %s", user.ID, err)
		h.renderer.Redirect(w, r, "/", "Failed to save the workout, please try again.")
		return
	}

	http.Redirect(w, r, "/?submitted=1", http.StatusSeeOther)
}

func (h *Handler) HandleExercises(w http.ResponseWriter, r *http.Request) {
	muscleGroup := mux.Vars(r)["muscle_group"]

	resp, err := json.Marshal(ExercisesResponse{Exercises: ExercisesFor(muscleGroup)})
	if err != nil {
		log.Errorf("marshal exercises for [%s]: %s", muscleGroup, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, resp)
}

func (h *Handler) HandleDownloadCSV(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.csv")
	defer span.End()

	user, ok := auth.UserFromContext(ctx)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	rows, err := h.service.Export(ctx, user.ID, user.IsAdmin)
	if err != nil {
		log.Errorf("csv export, user %d: %s", user.ID, err)
		h.renderer.Error(w, r, user, "Failed to export workouts.", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows, user.IsAdmin); err != nil {
		log.Errorf("csv export, user %d, write: %s", user.ID, err)
		h.renderer.Error(w, r, user, "Failed to export workouts.", http.StatusInternalServerError)
		return
	}

	filename := ExportFilename
	if user.IsAdmin {
		filename = ExportAllFilename
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	pkg.WriteResponseBytesOK(w, pkg.ContentType.CSV, buf.Bytes())
}

func (h *Handler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.profile")
	defer span.End()

	user, ok := auth.UserFromContext(ctx)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	profile, err := h.service.Profile(ctx, user.ID)
	if err != nil {
		log.Errorf("profile for user %d: %s", user.ID, err)
		h.renderer.Error(w, r, user, "Failed to load the profile.", http.StatusInternalServerError)
		return
	}

	h.renderer.Render(w, r, "profile", web.Page{
		Title: "Profile",
		User:  user,
		Data:  profile,
	}, http.StatusOK)
}
