package workouts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fitfolio/backend/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrWorkoutNotFound = errors.New("workout not found")

type WorkoutParams struct {
	UserID int
	Status string
	From   *time.Time
	To     *time.Time
}

type PageParams struct {
	WorkoutParams
	// Cursor is the id of the last workout of the previous page.
	Cursor *int
	Limit  int
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// ListPage returns up to params.Limit workouts, most recent first, using
// keyset semantics: with a cursor present only rows strictly after the
// cursor row in (started_at, id) descending order are eligible. A cursor
// pointing at a deleted workout yields an empty page, not an error.
func (r *Repo) ListPage(ctx context.Context, params PageParams) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.listPage")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", params.UserID))
	span.SetAttributes(attribute.Int("limit", params.Limit))
	if params.Cursor != nil {
		span.SetAttributes(attribute.Int("cursor", *params.Cursor))
	}

	rows, err := r.db.Query(
		ctx,
		`
			SELECT id, user_id, status, started_at, active_duration
			FROM workout
				WHERE user_id = $1
				AND status = $2
				AND ($3::timestamptz IS NULL OR started_at >= $3)
				AND ($4::timestamptz IS NULL OR started_at <= $4)
				AND ($5::int IS NULL OR (started_at, id) < (
					SELECT started_at, id FROM workout WHERE id = $5
				))
			ORDER BY started_at DESC, id DESC
			LIMIT $6;`,
		params.UserID, params.Status,
		params.From, params.To,
		params.Cursor, params.Limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	workouts, err := r.rows2workouts(rows)
	if err != nil {
		return nil, fmt.Errorf("rows2workouts: %w", err)
	}

	if err := r.loadExerciseTrees(ctx, workouts); err != nil {
		return nil, fmt.Errorf("load exercise trees: %w", err)
	}
	return workouts, nil
}

// ListAll returns all matching workouts with their exercise trees,
// ordered by start time ascending.
func (r *Repo) ListAll(ctx context.Context, params WorkoutParams) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.listAll")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", params.UserID))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT id, user_id, status, started_at, active_duration
			FROM workout
				WHERE user_id = $1
				AND status = $2
				AND ($3::timestamptz IS NULL OR started_at >= $3)
				AND ($4::timestamptz IS NULL OR started_at <= $4)
			ORDER BY started_at ASC, id ASC;`,
		params.UserID, params.Status,
		params.From, params.To,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	workouts, err := r.rows2workouts(rows)
	if err != nil {
		return nil, fmt.Errorf("rows2workouts: %w", err)
	}

	if err := r.loadExerciseTrees(ctx, workouts); err != nil {
		return nil, fmt.Errorf("load exercise trees: %w", err)
	}
	return workouts, nil
}

func (r *Repo) Get(ctx context.Context, userID, id int) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	var w Workout
	err = r.db.
		QueryRow(ctx, `
			SELECT id, user_id, status, started_at, active_duration
			FROM workout
			WHERE id = $1 AND user_id = $2
		`, id, userID).
		Scan(&w.ID, &w.UserID, &w.Status, &w.StartedAt, &w.ActiveDuration)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}

	workouts := []Workout{w}
	if err := r.loadExerciseTrees(ctx, workouts); err != nil {
		return nil, fmt.Errorf("load exercise trees: %w", err)
	}
	return &workouts[0], nil
}

func (r *Repo) Count(ctx context.Context, params WorkoutParams) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.count")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var count int
	err = r.db.
		QueryRow(ctx, `
			SELECT COUNT(*)
			FROM workout
				WHERE user_id = $1
				AND status = $2
				AND ($3::timestamptz IS NULL OR started_at >= $3)
				AND ($4::timestamptz IS NULL OR started_at <= $4)
		`, params.UserID, params.Status, params.From, params.To).
		Scan(&count)
	if err != nil {
		return -1, err
	}
	return count, nil
}

// SumActiveHours returns the total active duration of matching workouts
// in hours, aggregated in the database.
func (r *Repo) SumActiveHours(ctx context.Context, params WorkoutParams) (_ float64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.sumActiveHours")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var hours float64
	err = r.db.
		QueryRow(ctx, `
			SELECT COALESCE(SUM(active_duration), 0)::float8 / 3600
			FROM workout
				WHERE user_id = $1
				AND status = $2
				AND ($3::timestamptz IS NULL OR started_at >= $3)
				AND ($4::timestamptz IS NULL OR started_at <= $4)
		`, params.UserID, params.Status, params.From, params.To).
		Scan(&hours)
	if err != nil {
		return 0, err
	}
	return hours, nil
}

// SumCompletedVolume returns the total weight*reps over completed sets
// with known weight and reps, aggregated in the database.
func (r *Repo) SumCompletedVolume(ctx context.Context, params WorkoutParams) (_ float64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.sumCompletedVolume")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var volume float64
	err = r.db.
		QueryRow(ctx, `
			SELECT COALESCE(SUM(ws.weight * ws.reps), 0)::float8
			FROM workout_set ws
			JOIN workout_exercise we ON ws.workout_exercise_id = we.id
			JOIN workout w ON we.workout_id = w.id
				WHERE w.user_id = $1
				AND w.status = $2
				AND ($3::timestamptz IS NULL OR w.started_at >= $3)
				AND ($4::timestamptz IS NULL OR w.started_at <= $4)
				AND ws.completed
				AND ws.weight IS NOT NULL
				AND ws.reps IS NOT NULL
		`, params.UserID, params.Status, params.From, params.To).
		Scan(&volume)
	if err != nil {
		return 0, err
	}
	return volume, nil
}

// ListWorkoutDates returns the ascending list of start timestamps of
// matching workouts. One entry per workout, no day deduplication.
func (r *Repo) ListWorkoutDates(ctx context.Context, params WorkoutParams) (_ []time.Time, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.listWorkoutDates")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT started_at
			FROM workout
				WHERE user_id = $1
				AND status = $2
				AND ($3::timestamptz IS NULL OR started_at >= $3)
				AND ($4::timestamptz IS NULL OR started_at <= $4)
			ORDER BY started_at ASC;`,
		params.UserID, params.Status,
		params.From, params.To,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dates := make([]time.Time, 0)
	for rows.Next() {
		var startedAt time.Time
		if err := rows.Scan(&startedAt); err != nil {
			return nil, err
		}
		dates = append(dates, startedAt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return dates, nil
}

func (r *Repo) rows2workouts(rows pgx.Rows) ([]Workout, error) {
	workouts := make([]Workout, 0)
	for rows.Next() {
		var w Workout
		if err := rows.Scan(&w.ID, &w.UserID, &w.Status, &w.StartedAt, &w.ActiveDuration); err != nil {
			return nil, err
		}
		workouts = append(workouts, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return workouts, nil
}

// loadExerciseTrees attaches exercises and sets to the given workouts,
// exercises ordered by display order, sets by set number then creation time.
func (r *Repo) loadExerciseTrees(ctx context.Context, workouts []Workout) error {
	if len(workouts) == 0 {
		return nil
	}

	workoutIDs := make([]int, 0, len(workouts))
	workoutIndex := make(map[int]int, len(workouts))
	for i := range workouts {
		workouts[i].Exercises = make([]WorkoutExercise, 0)
		workoutIDs = append(workoutIDs, workouts[i].ID)
		workoutIndex[workouts[i].ID] = i
	}

	exRows, err := r.db.Query(
		ctx,
		`
			SELECT we.id, we.workout_id, we.display_order, e.id, e.name, e.category
			FROM workout_exercise we
			JOIN exercise e ON we.exercise_id = e.id
			WHERE we.workout_id = ANY($1)
			ORDER BY we.workout_id, we.display_order ASC;`,
		workoutIDs,
	)
	if err != nil {
		return fmt.Errorf("query exercises: %w", err)
	}
	defer exRows.Close()

	exerciseIDs := make([]int, 0)
	// workout exercise id -> (workout index, exercise index)
	type treePos struct{ workout, exercise int }
	exercisePos := make(map[int]treePos)
	for exRows.Next() {
		var we WorkoutExercise
		var workoutID int
		if err := exRows.Scan(
			&we.ID, &workoutID, &we.Order,
			&we.Exercise.ID, &we.Exercise.Name, &we.Exercise.Category,
		); err != nil {
			return fmt.Errorf("scan exercise: %w", err)
		}
		we.Sets = make([]WorkoutSet, 0)

		wi := workoutIndex[workoutID]
		workouts[wi].Exercises = append(workouts[wi].Exercises, we)
		exercisePos[we.ID] = treePos{workout: wi, exercise: len(workouts[wi].Exercises) - 1}
		exerciseIDs = append(exerciseIDs, we.ID)
	}
	if err := exRows.Err(); err != nil {
		return fmt.Errorf("exercise rows: %w", err)
	}

	if len(exerciseIDs) == 0 {
		return nil
	}

	setRows, err := r.db.Query(
		ctx,
		`
			SELECT id, workout_exercise_id, type, weight, reps, duration, completed, set_number, created_at
			FROM workout_set
			WHERE workout_exercise_id = ANY($1)
			ORDER BY set_number ASC, created_at ASC;`,
		exerciseIDs,
	)
	if err != nil {
		return fmt.Errorf("query sets: %w", err)
	}
	defer setRows.Close()

	for setRows.Next() {
		var set WorkoutSet
		var workoutExerciseID int
		if err := setRows.Scan(
			&set.ID, &workoutExerciseID, &set.Type,
			&set.Weight, &set.Reps, &set.Duration,
			&set.Completed, &set.SetNumber, &set.CreatedAt,
		); err != nil {
			return fmt.Errorf("scan set: %w", err)
		}
		pos := exercisePos[workoutExerciseID]
		ex := &workouts[pos.workout].Exercises[pos.exercise]
		ex.Sets = append(ex.Sets, set)
	}
	if err := setRows.Err(); err != nil {
		return fmt.Errorf("set rows: %w", err)
	}

	return nil
}
