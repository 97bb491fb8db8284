package measurements

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fitfolio/backend/internal/telemetry/tracing"
	"github.com/fitfolio/backend/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrMeasurementNotFound = errors.New("measurement not found")
	ErrUnknownUser         = errors.New("unknown user")
)

type ListParams struct {
	UserID int
	From   *time.Time
	To     *time.Time
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, m Measurement) (_ *Measurement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.measurements.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.
		QueryRow(
			ctx,
			`INSERT INTO body_measurement
					(user_id, weight, body_fat, chest, waist, hips, biceps, notes, measured_at)
					VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
				RETURNING id;`,
			m.UserID, m.Weight, m.BodyFat, m.Chest, m.Waist, m.Hips, m.Biceps, m.Notes, m.MeasuredAt,
		).
		Scan(&m.ID)
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return nil, ErrUnknownUser
		}
		return nil, err
	}

	span.SetAttributes(attribute.Int("measurement.id", m.ID))
	return &m, nil
}

func (r *Repo) Get(ctx context.Context, userID, id int) (_ *Measurement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.measurements.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	var m Measurement
	err = r.db.
		QueryRow(ctx, `
			SELECT id, user_id, weight, body_fat, chest, waist, hips, biceps, notes, measured_at
			FROM body_measurement
			WHERE id = $1 AND user_id = $2
		`, id, userID).
		Scan(&m.ID, &m.UserID, &m.Weight, &m.BodyFat, &m.Chest, &m.Waist, &m.Hips, &m.Biceps, &m.Notes, &m.MeasuredAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMeasurementNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *Repo) List(ctx context.Context, params ListParams) (_ []Measurement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.measurements.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", params.UserID))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT id, user_id, weight, body_fat, chest, waist, hips, biceps, notes, measured_at
			FROM body_measurement
				WHERE user_id = $1
				AND ($2::timestamptz IS NULL OR measured_at >= $2)
				AND ($3::timestamptz IS NULL OR measured_at <= $3)
			ORDER BY measured_at DESC;`,
		params.UserID, params.From, params.To,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	measurements := make([]Measurement, 0)
	for rows.Next() {
		var m Measurement
		if err := rows.Scan(
			&m.ID, &m.UserID, &m.Weight, &m.BodyFat,
			&m.Chest, &m.Waist, &m.Hips, &m.Biceps,
			&m.Notes, &m.MeasuredAt,
		); err != nil {
			return nil, err
		}
		measurements = append(measurements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return measurements, nil
}

func (r *Repo) Update(ctx context.Context, m *Measurement) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.measurements.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", m.ID))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE body_measurement
			SET weight = $1, body_fat = $2, chest = $3, waist = $4, hips = $5, biceps = $6, notes = $7, measured_at = $8
			WHERE id = $9 AND user_id = $10;`,
		m.Weight, m.BodyFat, m.Chest, m.Waist, m.Hips, m.Biceps, m.Notes, m.MeasuredAt,
		m.ID, m.UserID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrMeasurementNotFound
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, userID, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.measurements.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM body_measurement WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrMeasurementNotFound
	}
	return nil
}
