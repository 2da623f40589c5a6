//go:generate mockgen -source=$GOFILE -destination=auth_mocks_test.go -package=middleware_test

package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/2beens/workouttracker/internal/auth"
	"github.com/2beens/workouttracker/internal/telemetry/tracing"
	"github.com/2beens/workouttracker/internal/users"
	"github.com/2beens/workouttracker/internal/web"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

const loginPath = "/login"

type userGetter interface {
	Get(ctx context.Context, id int) (*users.User, error)
}

type AuthMiddlewareHandler struct {
	loginChecker auth.Checker
	users        userGetter
	cookies      *web.CookieStore
	allowedPaths map[string]bool
}

func NewAuthMiddlewareHandler(
	loginChecker auth.Checker,
	users userGetter,
	cookies *web.CookieStore,
) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		loginChecker: loginChecker,
		users:        users,
		cookies:      cookies,
		allowedPaths: map[string]bool{
			loginPath:   true,
			"/register": true,
			"/logout":   true,
			"/healthz":  true,
		},
	}
}

// resolveUser maps the login cookie to a user, nil when the request is anonymous.
func (h *AuthMiddlewareHandler) resolveUser(ctx context.Context, w http.ResponseWriter, r *http.Request) (*users.User, error) {
	token := h.cookies.LoginToken(r)
	if token == "" {
		return nil, nil
	}

	userID, err := h.loginChecker.UserID(ctx, token)
	if errors.Is(err, auth.ErrNotLogged) {
		log.Tracef("[auth middleware] stale login token => %s", r.URL.Path)
		if err := h.cookies.ClearLoginToken(w, r); err != nil {
			log.Errorf("[auth middleware] clear login token: %s", err)
		}
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	user, err := h.users.Get(ctx, userID)
	if errors.Is(err, users.ErrUserNotFound) {
		// account deleted while the login session was still alive
		if err := h.cookies.ClearLoginToken(w, r); err != nil {
			log.Errorf("[auth middleware] clear login token: %s", err)
		}
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			user, err := h.resolveUser(ctx, w, r)
			if err != nil {
				log.Errorf("[failed login check] => %s: %s", r.URL.Path, err)
				span.SetStatus(codes.Error, "check-logged-err")
				span.RecordError(err)
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}

			if user != nil {
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), user)))
				return
			}

			if h.allowedPaths[r.URL.Path] {
				span.SetStatus(codes.Ok, "anonymous-ok")
				next.ServeHTTP(w, r)
				return
			}

			log.Tracef("[auth middleware] unauthorized => %s", r.URL.Path)
			span.SetStatus(codes.Error, "not-logged")
			http.Redirect(w, r, loginPath, http.StatusSeeOther)
		})
	}
}

// RequireAdmin lets through only admins, everyone else goes back to the dashboard.
func RequireAdmin(renderer *web.Renderer) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := auth.UserFromContext(r.Context())
			if !ok {
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}
			if !user.IsAdmin {
				log.Warnf("[admin middleware] user %d denied => %s", user.ID, r.URL.Path)
				renderer.Redirect(w, r, "/", "Access denied")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
