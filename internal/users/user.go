package users

import "errors"

const CreatedAtLayout = "2006-01-02 15:04:05"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrDuplicateIdentity   = errors.New("username or email already registered")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrInvalidRegistration = errors.New("invalid registration")
	ErrCannotDeleteSelf    = errors.New("cannot delete own account")
)

type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	IsAdmin      bool   `json:"isAdmin"`
	CreatedAt    string `json:"createdAt"`
}

// Summary is a user with activity counts, as listed on the admin page.
type Summary struct {
	User
	WorkoutCount      int `json:"workoutCount"`
	CompletedSessions int `json:"completedSessions"`
}
