package auth

import (
	"context"

	"github.com/2beens/workouttracker/internal/users"
)

type userCtxKey struct{}

func WithUser(ctx context.Context, user *users.User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, user)
}

// UserFromContext returns the user resolved by the auth middleware.
func UserFromContext(ctx context.Context) (*users.User, bool) {
	user, ok := ctx.Value(userCtxKey{}).(*users.User)
	return user, ok && user != nil
}
