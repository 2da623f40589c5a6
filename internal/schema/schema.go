package schema

import (
	"context"
	"fmt"
	"slices"

	"github.com/2beens/workouttracker/internal/telemetry/tracing"
	"github.com/2beens/workouttracker/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// legacyWorkoutColumns mark the flat, pre-normalization workouts layout,
// where reps and weight lived on the workout row itself.
var legacyWorkoutColumns = []string{"sets", "reps", "weight_kg"}

// DB is satisfied by *pgxpool.Pool and *pgx.Conn.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type step struct {
	name string
	run  func(ctx context.Context) error
}

// Manager brings the database schema to the current shape. Safe to run on every boot.
type Manager struct {
	db DB
}

func NewManager(db DB) *Manager {
	return &Manager{
		db: db,
	}
}

func (m *Manager) steps() []step {
	return []step{
		{name: "rebuild legacy workouts table", run: m.rebuildLegacyWorkouts},
		{name: "base tables", run: m.createBaseTables},
		{name: "v2: workouts.user_id", run: func(ctx context.Context) error {
			return m.addColumn(ctx, "workouts", "user_id", "INTEGER REFERENCES users (id) ON DELETE CASCADE")
		}},
		{name: "v3: sessions table", run: m.createSessionsTable},
		{name: "v4: workouts.session_id", run: func(ctx context.Context) error {
			return m.addColumn(ctx, "workouts", "session_id", "INTEGER REFERENCES sessions (id) ON DELETE CASCADE")
		}},
		{name: "v5: sessions.user_id", run: func(ctx context.Context) error {
			return m.addColumn(ctx, "sessions", "user_id", "INTEGER REFERENCES users (id) ON DELETE CASCADE")
		}},
		{name: "indexes", run: m.createIndexes},
	}
}

// Migrate runs all migration steps in order. Any error is meant to abort startup.
func (m *Manager) Migrate(ctx context.Context) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "schema.migrate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	for _, s := range m.steps() {
		log.Tracef("schema: running step [%s]", s.name)
		if err := s.run(ctx); err != nil {
			return fmt.Errorf("schema step [%s]: %w", s.name, err)
		}
	}

	log.Debugln("schema: up to date")
	return nil
}

func (m *Manager) rebuildLegacyWorkouts(ctx context.Context) (err error) {
	columns, err := Columns(ctx, m.db, "workouts")
	if err != nil {
		return err
	}
	if !IsLegacyWorkoutsLayout(columns) {
		return nil
	}

	log.Warnf("schema: legacy workouts layout detected %v, rebuilding (flat set columns are dropped)", columns)

	tx, err := m.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
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

	statements := []string{
		`CREATE TABLE workouts_new (
			id           SERIAL PRIMARY KEY,
			date         TEXT NOT NULL,
			time         TEXT NOT NULL,
			muscle_group TEXT NOT NULL,
			exercise     TEXT NOT NULL
		)`,
		`INSERT INTO workouts_new (id, date, time, muscle_group, exercise)
			SELECT id, date, time, muscle_group, exercise FROM workouts`,
		`SELECT setval(
			pg_get_serial_sequence('workouts_new', 'id'),
			COALESCE((SELECT MAX(id) FROM workouts_new), 0) + 1,
			false
		)`,
		`DROP TABLE workouts`,
		`ALTER TABLE workouts_new RENAME TO workouts`,
		`ALTER SEQUENCE IF EXISTS workouts_new_id_seq RENAME TO workouts_id_seq`,
	}
	for _, stmt := range statements {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	log.Infoln("schema: legacy workouts table rebuilt")
	return nil
}

func (m *Manager) createBaseTables(ctx context.Context) error {
	_, err := m.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id            SERIAL PRIMARY KEY,
			username      TEXT    NOT NULL UNIQUE,
			email         TEXT    NOT NULL UNIQUE,
			password_hash TEXT    NOT NULL,
			is_admin      BOOLEAN NOT NULL DEFAULT FALSE,
			created_at    TEXT    NOT NULL
		);

		CREATE TABLE IF NOT EXISTS workouts (
			id           SERIAL PRIMARY KEY,
			date         TEXT NOT NULL,
			time         TEXT NOT NULL,
			muscle_group TEXT NOT NULL,
			exercise     TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS workout_sets (
			id         SERIAL PRIMARY KEY,
			workout_id INTEGER          NOT NULL REFERENCES workouts (id) ON DELETE CASCADE,
			set_number INTEGER          NOT NULL,
			reps       INTEGER          NOT NULL,
			weight_kg  DOUBLE PRECISION NOT NULL
		);
	`)
	return err
}

func (m *Manager) createSessionsTable(ctx context.Context) error {
	_, err := m.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS sessions (
			id               SERIAL PRIMARY KEY,
			start_date       TEXT NOT NULL,
			start_time       TEXT NOT NULL,
			end_date         TEXT,
			end_time         TEXT,
			duration_minutes DOUBLE PRECISION
		);
	`)
	return err
}

// addColumn adds the column if the table does not have it yet. A concurrent
// or repeated add that hits "duplicate column" counts as success.
func (m *Manager) addColumn(ctx context.Context, table, column, definition string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "schema.addcolumn")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("table", table))
	span.SetAttributes(attribute.String("column", column))

	columns, err := Columns(ctx, m.db, table)
	if err != nil {
		return err
	}
	if slices.Contains(columns, column) {
		return nil
	}

	stmt := fmt.Sprintf(
		"ALTER TABLE %s ADD COLUMN %s %s",
		pgx.Identifier{table}.Sanitize(), pgx.Identifier{column}.Sanitize(), definition,
	)
	if _, err := m.db.Exec(ctx, stmt); err != nil {
		if pkg.IsDuplicateColumnError(err) {
			log.Debugf("schema: column %s.%s already exists", table, column)
			return nil
		}
		return fmt.Errorf("add column %s.%s: %w", table, column, err)
	}

	log.Infof("schema: added column %s.%s", table, column)
	return nil
}

func (m *Manager) createIndexes(ctx context.Context) error {
	// sessions left open by the old start race would violate the unique index below,
	// keep the newest open one per user and close the rest with zero duration
	tag, err := m.db.Exec(ctx, `
		UPDATE sessions s
		SET end_date = s.start_date, end_time = s.start_time, duration_minutes = 0
		WHERE s.end_date IS NULL
		  AND s.user_id IS NOT NULL
		  AND EXISTS (
			SELECT 1 FROM sessions newer
			WHERE newer.user_id = s.user_id
			  AND newer.end_date IS NULL
			  AND newer.id > s.id
		  )
	`)
	if err != nil {
		return fmt.Errorf("close duplicate open sessions: %w", err)
	}
	if tag.RowsAffected() > 0 {
		log.Warnf("schema: closed %d duplicate open sessions", tag.RowsAffected())
	}

	_, err = m.db.Exec(ctx, `
		CREATE UNIQUE INDEX IF NOT EXISTS ux_sessions_one_open_per_user
			ON sessions (user_id) WHERE end_date IS NULL;
		CREATE INDEX IF NOT EXISTS ix_sessions_user_start
			ON sessions (user_id, start_date, start_time);
		CREATE INDEX IF NOT EXISTS ix_workouts_user_date_time
			ON workouts (user_id, date, time);
		CREATE INDEX IF NOT EXISTS ix_workouts_session
			ON workouts (session_id);
		CREATE INDEX IF NOT EXISTS ix_workout_sets_workout
			ON workout_sets (workout_id, set_number);
	`)
	return err
}

// Columns returns the column names of table in the current schema, in table order.
// A missing table yields no columns.
func Columns(ctx context.Context, q querier, table string) ([]string, error) {
	rows, err := q.Query(ctx, `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_schema = current_schema()
		  AND table_name = $1
		ORDER BY ordinal_position`,
		table,
	)
	if err != nil {
		return nil, fmt.Errorf("query columns of %s: %w", table, err)
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan column of %s: %w", table, err)
		}
		columns = append(columns, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating columns of %s: %w", table, err)
	}

	return columns, nil
}

// IsLegacyWorkoutsLayout reports whether the workouts columns still carry the flat set columns.
func IsLegacyWorkoutsLayout(columns []string) bool {
	for _, c := range legacyWorkoutColumns {
		if slices.Contains(columns, c) {
			return true
		}
	}
	return false
}
