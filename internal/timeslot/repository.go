package timeslot

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nekogravitycat/lab-reservation-backend/internal/pkg/clock"
)

type Repository interface {
	Create(ctx context.Context, slot *TimeSlot) error
	GetByID(ctx context.Context, id string) (*TimeSlot, error)
	ListByLaboratory(ctx context.Context, laboratoryID string, availableOnly bool) ([]*TimeSlot, error)
	Update(ctx context.Context, slot *TimeSlot) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, slot *TimeSlot) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.time_slots").
		Columns("laboratory_id", "weekday", "start_time", "end_time", "is_available").
		Values(slot.LaboratoryID, slot.Weekday, slot.StartTime.SQL(), slot.EndTime.SQL(), slot.IsAvailable).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create time slot query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&slot.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrDuplicateSlot
		}
		return fmt.Errorf("create time slot failed: %w", err)
	}
	return nil
}

func scanSlot(row pgx.Row) (*TimeSlot, error) {
	var s TimeSlot
	var start, end string
	if err := row.Scan(&s.ID, &s.LaboratoryID, &s.Weekday, &start, &end, &s.IsAvailable); err != nil {
		return nil, err
	}

	var err error
	if s.StartTime, err = clock.ParseTimeOfDay(start); err != nil {
		return nil, fmt.Errorf("parse slot start time %q: %w", start, err)
	}
	if s.EndTime, err = clock.ParseTimeOfDay(end); err != nil {
		return nil, fmt.Errorf("parse slot end time %q: %w", end, err)
	}
	return &s, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*TimeSlot, error) {
	const query = `
		SELECT id, laboratory_id, weekday, start_time::text, end_time::text, is_available
		FROM public.time_slots
		WHERE id = $1
	`

	slot, err := scanSlot(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get time slot failed: %w", err)
	}
	return slot, nil
}

func (r *pgxRepository) ListByLaboratory(ctx context.Context, laboratoryID string, availableOnly bool) ([]*TimeSlot, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select("id", "laboratory_id", "weekday", "start_time::text", "end_time::text", "is_available").
		From("public.time_slots").
		Where(squirrel.Eq{"laboratory_id": laboratoryID}).
		OrderBy("weekday", "start_time")

	if availableOnly {
		query = query.Where(squirrel.Eq{"is_available": true})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list time slots query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list time slots failed: %w", err)
	}
	defer rows.Close()

	var slots []*TimeSlot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan time slot failed: %w", err)
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

func (r *pgxRepository) Update(ctx context.Context, slot *TimeSlot) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.time_slots").
		Set("weekday", slot.Weekday).
		Set("start_time", slot.StartTime.SQL()).
		Set("end_time", slot.EndTime.SQL()).
		Set("is_available", slot.IsAvailable).
		Where(squirrel.Eq{"id": slot.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update time slot query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrDuplicateSlot
		}
		return fmt.Errorf("update time slot failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, "DELETE FROM public.time_slots WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete time slot failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
