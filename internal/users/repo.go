package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/workouttracker/internal/telemetry/tracing"
	"github.com/2beens/workouttracker/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

const userColumns = `id, username, email, password_hash, is_admin, created_at`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func scanUser(row pgx.Row) (*User, error) {
	u := &User{}
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *Repo) Create(ctx context.Context, user User) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	created, err := scanUser(r.db.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash, is_admin, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns,
		user.Username, user.Email, user.PasswordHash, user.IsAdmin, user.CreatedAt,
	))
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrDuplicateIdentity
		}
		return nil, err
	}
	return created, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *Repo) GetByUsername(ctx context.Context, username string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.getbyusername")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

func (r *Repo) List(ctx context.Context) (_ []Summary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT u.id, u.username, u.email, u.password_hash, u.is_admin, u.created_at,
			(SELECT COUNT(*) FROM workouts w WHERE w.user_id = u.id),
			(SELECT COUNT(*) FROM sessions s WHERE s.user_id = u.id AND s.end_date IS NOT NULL)
		FROM users u
		ORDER BY u.id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]Summary, 0)
	for rows.Next() {
		var s Summary
		if err := rows.Scan(
			&s.ID, &s.Username, &s.Email, &s.PasswordHash, &s.IsAdmin, &s.CreatedAt,
			&s.WorkoutCount, &s.CompletedSessions,
		); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return summaries, nil
}

// Delete removes the user together with their sessions, workouts and sets.
func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
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

	for _, stmt := range []string{
		`DELETE FROM workout_sets WHERE workout_id IN (SELECT id FROM workouts WHERE user_id = $1)`,
		`DELETE FROM workouts WHERE user_id = $1`,
		`DELETE FROM sessions WHERE user_id = $1`,
	} {
		if _, err := tx.Exec(ctx, stmt, id); err != nil {
			return err
		}
	}

	tag, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *Repo) UpdatePassword(ctx context.Context, id int, passwordHash string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.updatepassword")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx, `UPDATE users SET password_hash = $1 WHERE id = $2`, passwordHash, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// AdoptOrphans assigns all workouts and sessions without an owner to userID.
func (r *Repo) AdoptOrphans(ctx context.Context, userID int) (workouts, sessions int64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.adoptorphans")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, 0, err
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

	tag, err := tx.Exec(ctx, `UPDATE workouts SET user_id = $1 WHERE user_id IS NULL`, userID)
	if err != nil {
		return 0, 0, err
	}
	workouts = tag.RowsAffected()

	// only one open session may survive the adoption
	if _, err := tx.Exec(ctx, `
		UPDATE sessions s
		SET end_date = s.start_date, end_time = s.start_time, duration_minutes = 0
		WHERE s.user_id IS NULL
		  AND s.end_date IS NULL
		  AND (
			EXISTS (SELECT 1 FROM sessions o WHERE o.user_id = $1 AND o.end_date IS NULL)
			OR EXISTS (SELECT 1 FROM sessions n WHERE n.user_id IS NULL AND n.end_date IS NULL AND n.id > s.id)
		  )`,
		userID,
	); err != nil {
		return 0, 0, err
	}

	tag, err = tx.Exec(ctx, `UPDATE sessions SET user_id = $1 WHERE user_id IS NULL`, userID)
	if err != nil {
		return 0, 0, err
	}
	sessions = tag.RowsAffected()

	return workouts, sessions, nil
}
