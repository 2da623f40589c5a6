package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/2beens/workouttracker/internal/telemetry/metrics"
	"github.com/2beens/workouttracker/internal/telemetry/tracing"
	"github.com/2beens/workouttracker/internal/users"
	"github.com/2beens/workouttracker/internal/web"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=auth_test

type accountsService interface {
	Register(ctx context.Context, username, email, password string) (*users.User, error)
	Authenticate(ctx context.Context, username, password string) (*users.User, error)
}

type loginSessions interface {
	Login(ctx context.Context, userID int, createdAt time.Time) (string, error)
	Logout(ctx context.Context, token string) error
}

type loginForm struct {
	Username string
	Error    string
}

type registerForm struct {
	Username string
	Email    string
	Error    string
}

type Handler struct {
	accounts       accountsService
	sessions       loginSessions
	renderer       *web.Renderer
	metricsManager *metrics.Manager
}

func NewHandler(
	accounts accountsService,
	sessions loginSessions,
	renderer *web.Renderer,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		accounts:       accounts,
		sessions:       sessions,
		renderer:       renderer,
		metricsManager: metricsManager,
	}
}

func (h *Handler) startLoginSession(w http.ResponseWriter, r *http.Request, user *users.User) error {
	token, err := h.sessions.Login(r.Context(), user.ID, time.Now())
	if err != nil {
		return err
	}
	return h.renderer.Cookies().SetLoginToken(w, r, token)
}

func (h *Handler) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := UserFromContext(r.Context()); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.renderer.Render(w, r, "login", web.Page{Title: "Login", Data: loginForm{}}, http.StatusOK)
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.login")
	defer span.End()

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	username := r.PostForm.Get("username")
	password := r.PostForm.Get("password")

	user, err := h.accounts.Authenticate(ctx, username, password)
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			h.metricsManager.CounterLogins.WithLabelValues("failure").Inc()
			log.Debugf("failed login attempt for [%s]", username)
			h.renderer.Render(w, r, "login", web.Page{
				Title: "Login",
				Data:  loginForm{Username: username, Error: "Invalid username or password"},
			}, http.StatusUnauthorized)
			return
		}
		h.metricsManager.CounterLogins.WithLabelValues("error").Inc()
		log.Errorf("login [%s]: %s", username, err)
		h.renderer.Error(w, r, nil, "Login failed, please try again later.", http.StatusInternalServerError)
		return
	}

	if err := h.startLoginSession(w, r, user); err != nil {
		h.metricsManager.CounterLogins.WithLabelValues("error").Inc()
		log.Errorf("login [%s], start login session: %s", username, err)
		h.renderer.Error(w, r, nil, "Login failed, please try again later.", http.StatusInternalServerError)
		return
	}

	h.metricsManager.CounterLogins.WithLabelValues("success").Inc()
	log.Debugf("user %d [%s] logged in", user.ID, user.Username)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) HandleRegisterPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := UserFromContext(r.Context()); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.renderer.Render(w, r, "register", web.Page{Title: "Register", Data: registerForm{}}, http.StatusOK)
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.register")
	defer span.End()

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	form := registerForm{
		Username: r.PostForm.Get("username"),
		Email:    r.PostForm.Get("email"),
	}
	password := r.PostForm.Get("password")

	renderFormError := func(msg string, status int) {
		form.Error = msg
		h.renderer.Render(w, r, "register", web.Page{Title: "Register", Data: form}, status)
	}

	if confirm, ok := r.PostForm["confirm_password"]; ok && confirm[0] != password {
		renderFormError("Passwords do not match", http.StatusBadRequest)
		return
	}

	user, err := h.accounts.Register(ctx, form.Username, form.Email, password)
	switch {
	case errors.Is(err, users.ErrInvalidRegistration):
		renderFormError(err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, users.ErrDuplicateIdentity):
		renderFormError("Username or email already registered", http.StatusConflict)
		return
	case err != nil:
		log.Errorf("register [%s]: %s", form.Username, err)
		renderFormError("Registration failed, please try again later.", http.StatusInternalServerError)
		return
	}

	if err := h.startLoginSession(w, r, user); err != nil {
		// the account exists, only the automatic login failed
		log.Errorf("register [%s], start login session: %s", form.Username, err)
		h.renderer.Redirect(w, r, "/login", "Account created, please log in.")
		return
	}

	h.renderer.Redirect(w, r, "/", "Welcome, "+user.Username+"!")
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.logout")
	defer span.End()

	cookies := h.renderer.Cookies()
	if err := h.sessions.Logout(ctx, cookies.LoginToken(r)); err != nil {
		log.Errorf("logout: %s", err)
	}
	if err := cookies.ClearLoginToken(w, r); err != nil {
		log.Errorf("logout, clear cookie: %s", err)
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
