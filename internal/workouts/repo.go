package workouts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/workouttracker/internal/telemetry/tracing"
	"github.com/2beens/workouttracker/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const sessionColumns = `id, COALESCE(user_id, 0), start_date, start_time, end_date, end_time, duration_minutes`

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func scanSession(row pgx.Row) (*Session, error) {
	s := &Session{}
	if err := row.Scan(
		&s.ID, &s.UserID,
		&s.StartDate, &s.StartTime,
		&s.EndDate, &s.EndTime,
		&s.DurationMinutes,
	); err != nil {
		return nil, err
	}
	return s, nil
}

func openSession(ctx context.Context, q querier, userID int, forUpdate bool) (*Session, error) {
	query := `SELECT ` + sessionColumns + `
		FROM sessions
		WHERE user_id = $1 AND end_date IS NULL
		ORDER BY id DESC
		LIMIT 1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	s, err := scanSession(q.QueryRow(ctx, query, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// OpenSession returns the user's open session, or nil if there is none.
func (r *Repo) OpenSession(ctx context.Context, userID int) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.sessions.open")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user-id", userID))

	return openSession(ctx, r.db, userID, false)
}

// StartSession opens a session for the user unless one is already open, in which
// case the existing one is returned with started == false.
func (r *Repo) StartSession(ctx context.Context, userID int, start time.Time) (_ *Session, started bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.sessions.start")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user-id", userID))

	session, started, err := r.startSession(ctx, userID, start)
	if pkg.IsUniqueViolationError(err) {
		// lost the race against a concurrent start, the winner is the open session
		log.Debugf("concurrent session start for user %d, reading the open one", userID)
		session, err = openSession(ctx, r.db, userID, false)
		if err != nil {
			return nil, false, err
		}
		if session == nil {
			return nil, false, errors.New("open session missing after concurrent start")
		}
		return session, false, nil
	}

	return session, started, err
}

func (r *Repo) startSession(ctx context.Context, userID int, start time.Time) (_ *Session, _ bool, err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, false, err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	open, err := openSession(ctx, tx, userID, true)
	if err != nil {
		return nil, false, err
	}
	if open != nil {
		return open, false, nil
	}

	startDate, startTime := formatStamp(start)
	session, err := scanSession(tx.QueryRow(ctx, `
		INSERT INTO sessions (start_date, start_time, user_id)
		VALUES ($1, $2, $3)
		RETURNING `+sessionColumns,
		startDate, startTime, userID,
	))
	if err != nil {
		return nil, false, err
	}

	return session, true, nil
}

// EndSession closes the user's open session at end and stores its duration.
// Returns nil, nil when no session is open.
func (r *Repo) EndSession(ctx context.Context, userID int, end time.Time) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.sessions.end")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user-id", userID))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	session, err := openSession(ctx, tx, userID, true)
	if err != nil || session == nil {
		return nil, err
	}

	startedAt, err := session.StartedAt(end.Location())
	if err != nil {
		return nil, fmt.Errorf("parse start of session %d: %w", session.ID, err)
	}
	duration := DurationMinutes(startedAt, end)
	endDate, endTime := formatStamp(end)

	if _, err := tx.Exec(ctx, `
		UPDATE sessions
		SET end_date = $1, end_time = $2, duration_minutes = $3
		WHERE id = $4 AND user_id = $5`,
		endDate, endTime, duration, session.ID, userID,
	); err != nil {
		return nil, err
	}

	session.EndDate = &endDate
	session.EndTime = &endTime
	session.DurationMinutes = &duration
	return session, nil
}

// LastCompletedSession returns the most recently ended session, or nil.
func (r *Repo) LastCompletedSession(ctx context.Context, userID int) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.sessions.lastcompleted")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	s, err := scanSession(r.db.QueryRow(ctx, `
		SELECT `+sessionColumns+`
		FROM sessions
		WHERE user_id = $1 AND end_date IS NOT NULL
		ORDER BY end_date DESC, end_time DESC, id DESC
		LIMIT 1`,
		userID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *Repo) RecentSessions(ctx context.Context, userID int, limit int) (_ []Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.sessions.recent")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT `+sessionColumns+`
		FROM sessions
		WHERE user_id = $1 AND end_date IS NOT NULL
		ORDER BY end_date DESC, end_time DESC, id DESC
		LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]Session, 0)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// AddWorkout stores the workout and its sets in one transaction. The workout's
// session must still be open for the user, else ErrNoActiveSession.
func (r *Repo) AddWorkout(ctx context.Context, w Workout) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user-id", w.UserID))
	span.SetAttributes(attribute.Int("sets", len(w.Sets)))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	// holds off a concurrent end of the session until the workout is in
	var sessionID int
	err = tx.QueryRow(ctx, `
		SELECT id FROM sessions
		WHERE id = $1 AND user_id = $2 AND end_date IS NULL
		FOR SHARE`,
		w.SessionID, w.UserID,
	).Scan(&sessionID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoActiveSession
	}
	if err != nil {
		return nil, err
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO workouts (date, time, muscle_group, exercise, user_id, session_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		w.Date, w.Time, w.MuscleGroup, w.Exercise, w.UserID, sessionID,
	).Scan(&w.ID)
	if err != nil {
		return nil, fmt.Errorf("insert workout: %w", err)
	}

	sets := make([]WorkoutSet, 0, len(w.Sets))
	for _, set := range w.Sets {
		set.WorkoutID = w.ID
		if err := tx.QueryRow(ctx, `
			INSERT INTO workout_sets (workout_id, set_number, reps, weight_kg)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
			set.WorkoutID, set.SetNumber, set.Reps, set.WeightKg,
		).Scan(&set.ID); err != nil {
			return nil, fmt.Errorf("insert set %d: %w", set.SetNumber, err)
		}
		sets = append(sets, set)
	}
	w.Sets = sets

	return &w, nil
}

func scanWorkouts(rows pgx.Rows) ([]Workout, error) {
	defer rows.Close()

	workouts := make([]Workout, 0)
	for rows.Next() {
		var w Workout
		if err := rows.Scan(
			&w.ID, &w.UserID, &w.SessionID,
			&w.Date, &w.Time,
			&w.MuscleGroup, &w.Exercise,
		); err != nil {
			return nil, err
		}
		workouts = append(workouts, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return workouts, nil
}

func (r *Repo) WorkoutsForSession(ctx context.Context, sessionID int) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.forsession")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("session-id", sessionID))

	rows, err := r.db.Query(ctx, `
		SELECT id, COALESCE(user_id, 0), COALESCE(session_id, 0), date, time, muscle_group, exercise
		FROM workouts
		WHERE session_id = $1
		ORDER BY date, time, id`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	return scanWorkouts(rows)
}

// RecentWorkouts lists the newest workouts first. userID 0 lists all users.
func (r *Repo) RecentWorkouts(ctx context.Context, userID int, limit int) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.recent")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user-id", userID))
	span.SetAttributes(attribute.Int("limit", limit))

	rows, err := r.db.Query(ctx, `
		SELECT id, COALESCE(user_id, 0), COALESCE(session_id, 0), date, time, muscle_group, exercise
		FROM workouts
		WHERE ($1::int = 0 OR user_id = $1)
		ORDER BY date DESC, time DESC, id DESC
		LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	return scanWorkouts(rows)
}

// SetsForWorkouts returns the sets of the given workouts keyed by workout id,
// each slice ordered by set number.
func (r *Repo) SetsForWorkouts(ctx context.Context, workoutIDs []int) (_ map[int][]WorkoutSet, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.sets")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	sets := make(map[int][]WorkoutSet, len(workoutIDs))
	if len(workoutIDs) == 0 {
		return sets, nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, workout_id, set_number, reps, weight_kg
		FROM workout_sets
		WHERE workout_id = ANY($1)
		ORDER BY workout_id, set_number ASC`,
		workoutIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var s WorkoutSet
		if err := rows.Scan(&s.ID, &s.WorkoutID, &s.SetNumber, &s.Reps, &s.WeightKg); err != nil {
			return nil, err
		}
		sets[s.WorkoutID] = append(sets[s.WorkoutID], s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sets, nil
}

// MuscleGroupCounts counts workouts per muscle group, most trained first. userID 0 counts all users.
func (r *Repo) MuscleGroupCounts(ctx context.Context, userID int) (_ []MuscleGroupCount, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.musclegroupcounts")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT muscle_group, COUNT(*)
		FROM workouts
		WHERE ($1::int = 0 OR user_id = $1)
		GROUP BY muscle_group
		ORDER BY COUNT(*) DESC, muscle_group`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make([]MuscleGroupCount, 0)
	for rows.Next() {
		var c MuscleGroupCount
		if err := rows.Scan(&c.MuscleGroup, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

// Stats aggregates totals for one user, or for everyone when userID is 0.
func (r *Repo) Stats(ctx context.Context, userID int) (_ *Stats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.stats")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	stats := &Stats{}
	err = r.db.QueryRow(ctx, `
		WITH w AS (
			SELECT id FROM workouts WHERE ($1::int = 0 OR user_id = $1)
		), s AS (
			SELECT ws.reps, ws.weight_kg FROM workout_sets ws JOIN w ON w.id = ws.workout_id
		), c AS (
			SELECT duration_minutes FROM sessions
			WHERE end_date IS NOT NULL AND ($1::int = 0 OR user_id = $1)
		)
		SELECT
			(SELECT COUNT(*) FROM w),
			(SELECT COUNT(*) FROM s),
			(SELECT COALESCE(SUM(reps * weight_kg), 0) FROM s),
			(SELECT COUNT(*) FROM c),
			(SELECT COALESCE(SUM(duration_minutes), 0) FROM c),
			(SELECT COALESCE(AVG(duration_minutes), 0) FROM c)`,
		userID,
	).Scan(
		&stats.TotalWorkouts,
		&stats.TotalSets,
		&stats.TotalVolumeKg,
		&stats.CompletedSessions,
		&stats.TotalSessionMinutes,
		&stats.AverageSessionMinutes,
	)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// ExportRows returns one row per set (or per set-less workout), newest workout first.
// userID 0 exports all users.
func (r *Repo) ExportRows(ctx context.Context, userID int) (_ []ExportRow, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.export")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user-id", userID))

	rows, err := r.db.Query(ctx, `
		SELECT COALESCE(u.username, ''), w.date, w.time, w.muscle_group, w.exercise,
			ws.set_number, ws.reps, ws.weight_kg
		FROM workouts w
		LEFT JOIN workout_sets ws ON ws.workout_id = w.id
		LEFT JOIN users u ON u.id = w.user_id
		WHERE ($1::int = 0 OR w.user_id = $1)
		ORDER BY w.date DESC, w.time DESC, w.id DESC, ws.set_number ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exportRows := make([]ExportRow, 0)
	for rows.Next() {
		var er ExportRow
		if err := rows.Scan(
			&er.Username, &er.Date, &er.Time, &er.MuscleGroup, &er.Exercise,
			&er.SetNumber, &er.Reps, &er.WeightKg,
		); err != nil {
			return nil, err
		}
		exportRows = append(exportRows, er)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return exportRows, nil
}
