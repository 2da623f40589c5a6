package workouts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/workouttracker/internal/telemetry/metrics"
	"github.com/2beens/workouttracker/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=workouts_test

type workoutsRepo interface {
	OpenSession(ctx context.Context, userID int) (*Session, error)
	StartSession(ctx context.Context, userID int, start time.Time) (*Session, bool, error)
	EndSession(ctx context.Context, userID int, end time.Time) (*Session, error)
	LastCompletedSession(ctx context.Context, userID int) (*Session, error)
	RecentSessions(ctx context.Context, userID int, limit int) ([]Session, error)
	AddWorkout(ctx context.Context, w Workout) (*Workout, error)
	WorkoutsForSession(ctx context.Context, sessionID int) ([]Workout, error)
	RecentWorkouts(ctx context.Context, userID int, limit int) ([]Workout, error)
	SetsForWorkouts(ctx context.Context, workoutIDs []int) (map[int][]WorkoutSet, error)
	MuscleGroupCounts(ctx context.Context, userID int) ([]MuscleGroupCount, error)
	Stats(ctx context.Context, userID int) (*Stats, error)
	ExportRows(ctx context.Context, userID int) ([]ExportRow, error)
}

const profileRecentSessions = 10

type Dashboard struct {
	ActiveSession       *Session
	LastSession         *Session
	LastSessionWorkouts []Workout
	RecentWorkouts      []Workout
}

type Profile struct {
	Stats          *Stats
	MuscleGroups   []MuscleGroupCount
	RecentSessions []Session
}

type Service struct {
	repo           workoutsRepo
	metricsManager *metrics.Manager
	recentLimit    int

	// Now is the clock used for session and workout timestamps.
	Now func() time.Time
}

func NewService(repo workoutsRepo, metricsManager *metrics.Manager, recentLimit int) *Service {
	if recentLimit <= 0 {
		recentLimit = 10
	}
	return &Service{
		repo:           repo,
		metricsManager: metricsManager,
		recentLimit:    recentLimit,
		Now:            time.Now,
	}
}

func (s *Service) ActiveSession(ctx context.Context, userID int) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.sessions.active")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	session, err := s.repo.OpenSession(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get open session: %w", err)
	}
	return session, nil
}

// StartSession opens a session for the user. If one is already open it is
// returned unchanged and started is false.
func (s *Service) StartSession(ctx context.Context, userID int) (_ *Session, started bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.sessions.start")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user-id", userID))

	session, started, err := s.repo.StartSession(ctx, userID, s.Now())
	if err != nil {
		return nil, false, fmt.Errorf("start session: %w", err)
	}

	if started {
		s.metricsManager.CounterSessionsStarted.Inc()
		log.Debugf("user %d started %s", userID, session)
	}
	return session, started, nil
}

// EndSession closes the user's open session. Ending with no open session is a
// no-op and returns nil, nil.
func (s *Service) EndSession(ctx context.Context, userID int) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.sessions.end")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user-id", userID))

	session, err := s.repo.EndSession(ctx, userID, s.Now())
	if err != nil {
		return nil, fmt.Errorf("end session: %w", err)
	}
	if session == nil {
		log.Debugf("user %d ended a session, but none was open", userID)
		return nil, nil
	}

	s.metricsManager.CounterSessionsEnded.Inc()
	if session.DurationMinutes != nil {
		s.metricsManager.HistogramSessionDurations.Observe(*session.DurationMinutes)
	}
	return session, nil
}

// SubmitWorkout records one exercise with its sets in the user's open session.
func (s *Service) SubmitWorkout(
	ctx context.Context,
	userID int,
	muscleGroup, exercise string,
	candidates []SetCandidate,
) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.submit")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user-id", userID))

	session, err := s.repo.OpenSession(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get open session: %w", err)
	}
	if session == nil {
		return nil, ErrNoActiveSession
	}

	muscleGroup = strings.TrimSpace(muscleGroup)
	exercise = strings.TrimSpace(exercise)
	if muscleGroup == "" || exercise == "" {
		return nil, fmt.Errorf("%w: muscle group and exercise must be set", ErrInvalidWorkout)
	}

	date, clock := formatStamp(s.Now())
	added, err := s.repo.AddWorkout(ctx, Workout{
		UserID:      userID,
		SessionID:   session.ID,
		Date:        date,
		Time:        clock,
		MuscleGroup: muscleGroup,
		Exercise:    exercise,
		Sets:        BuildSets(candidates),
	})
	if err != nil {
		return nil, fmt.Errorf("add workout: %w", err)
	}

	s.metricsManager.CounterWorkouts.Inc()
	s.metricsManager.CounterWorkoutSets.Add(float64(len(added.Sets)))
	return added, nil
}

func (s *Service) attachSets(ctx context.Context, workouts []Workout) error {
	if len(workouts) == 0 {
		return nil
	}

	ids := make([]int, 0, len(workouts))
	for _, w := range workouts {
		ids = append(ids, w.ID)
	}
	sets, err := s.repo.SetsForWorkouts(ctx, ids)
	if err != nil {
		return fmt.Errorf("get sets: %w", err)
	}

	for i := range workouts {
		workouts[i].Sets = sets[workouts[i].ID]
		if workouts[i].Sets == nil {
			workouts[i].Sets = []WorkoutSet{}
		}
	}
	return nil
}

// RecentWorkouts returns the newest workouts with their sets. userID 0 means all users.
func (s *Service) RecentWorkouts(ctx context.Context, userID int, limit int) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.recent")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	workouts, err := s.repo.RecentWorkouts(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("get recent workouts: %w", err)
	}
	if err := s.attachSets(ctx, workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

func (s *Service) Dashboard(ctx context.Context, userID int) (_ *Dashboard, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.dashboard")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	d := &Dashboard{}
	if d.ActiveSession, err = s.repo.OpenSession(ctx, userID); err != nil {
		return nil, fmt.Errorf("get open session: %w", err)
	}
	if d.LastSession, err = s.repo.LastCompletedSession(ctx, userID); err != nil {
		return nil, fmt.Errorf("get last session: %w", err)
	}

	if d.LastSession != nil {
		if d.LastSessionWorkouts, err = s.repo.WorkoutsForSession(ctx, d.LastSession.ID); err != nil {
			return nil, fmt.Errorf("get workouts of session %d: %w", d.LastSession.ID, err)
		}
		if err := s.attachSets(ctx, d.LastSessionWorkouts); err != nil {
			return nil, err
		}
	}

	if d.RecentWorkouts, err = s.RecentWorkouts(ctx, userID, s.recentLimit); err != nil {
		return nil, err
	}

	return d, nil
}

func (s *Service) Profile(ctx context.Context, userID int) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.profile")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	p := &Profile{}
	if p.Stats, err = s.repo.Stats(ctx, userID); err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}
	if p.MuscleGroups, err = s.repo.MuscleGroupCounts(ctx, userID); err != nil {
		return nil, fmt.Errorf("get muscle group counts: %w", err)
	}
	if p.RecentSessions, err = s.repo.RecentSessions(ctx, userID, profileRecentSessions); err != nil {
		return nil, fmt.Errorf("get recent sessions: %w", err)
	}
	return p, nil
}

// GlobalProfile aggregates over all users.
func (s *Service) GlobalProfile(ctx context.Context) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.profile.global")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	p := &Profile{RecentSessions: []Session{}}
	if p.Stats, err = s.repo.Stats(ctx, 0); err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}
	if p.MuscleGroups, err = s.repo.MuscleGroupCounts(ctx, 0); err != nil {
		return nil, fmt.Errorf("get muscle group counts: %w", err)
	}
	return p, nil
}

// Export returns the CSV rows for the user, or for all users when allUsers is set.
func (s *Service) Export(ctx context.Context, userID int, allUsers bool) (_ []ExportRow, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.export")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Bool("all-users", allUsers))

	scope := userID
	if allUsers {
		scope = 0
	}
	rows, err := s.repo.ExportRows(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("get export rows: %w", err)
	}
	return rows, nil
}
