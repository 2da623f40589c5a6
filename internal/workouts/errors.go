package workouts

import "errors"

var (
	ErrNoActiveSession = errors.New("no active session")
	ErrInvalidSet      = errors.New("invalid set")
	ErrInvalidWorkout  = errors.New("invalid workout")
)
