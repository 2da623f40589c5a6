package auth

import "context"

var _ Checker = (*LoginChecker)(nil)
var _ Checker = (*LoginTestChecker)(nil)

type Checker interface {
	// UserID resolves a login token, ErrNotLogged for unknown or expired tokens.
	UserID(ctx context.Context, token string) (int, error)
}
