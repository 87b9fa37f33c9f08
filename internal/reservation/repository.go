package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nekogravitycat/lab-reservation-backend/internal/pkg/clock"
)

type Repository interface {
	// CreateIfFree inserts the reservation unless an active reservation
	// overlaps it. The conflict check and the insert run in one
	// serializable transaction so two racing requests cannot both pass.
	CreateIfFree(ctx context.Context, r *Reservation) error
	GetByID(ctx context.Context, id string) (*Reservation, error)
	List(ctx context.Context, filter Filter) ([]*Reservation, int, error)
	UpdateStatus(ctx context.Context, r *Reservation) error
	CountByStatus(ctx context.Context, status Status) (int, error)

	// HasConflict reports whether an active (pending or approved)
	// reservation on the laboratory and date overlaps [start, end) under
	// half-open semantics. excludeID is ignored when empty.
	HasConflict(ctx context.Context, laboratoryID string, date time.Time, start, end clock.TimeOfDay, excludeID string) (bool, error)

	// ListActiveForRange returns active reservations for a laboratory with
	// dates in [from, to], ordered by date and start time.
	ListActiveForRange(ctx context.Context, laboratoryID string, from, to time.Time) ([]*Reservation, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

// activeStatuses are the statuses that block other bookings.
var activeStatuses = []string{string(StatusPending), string(StatusApproved)}

// conflictQuery builds the shared overlap predicate. Half-open semantics:
// intervals touching at a boundary do not conflict.
func conflictQuery(laboratoryID string, date time.Time, start, end clock.TimeOfDay, excludeID string) squirrel.SelectBuilder {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	q := psql.Select("1").
		From("public.reservations").
		Where(squirrel.Eq{"laboratory_id": laboratoryID}).
		Where(squirrel.Eq{"date": date}).
		Where(squirrel.Eq{"status": activeStatuses}).
		Where(squirrel.Lt{"start_time": end.SQL()}).
		Where(squirrel.Gt{"end_time": start.SQL()})

	if excludeID != "" {
		q = q.Where(squirrel.NotEq{"id": excludeID})
	}
	return q
}

func (r *pgxRepository) HasConflict(ctx context.Context, laboratoryID string, date time.Time, start, end clock.TimeOfDay, excludeID string) (bool, error) {
	sql, args, err := conflictQuery(laboratoryID, date, start, end, excludeID).ToSql()
	if err != nil {
		return false, fmt.Errorf("build conflict query failed: %w", err)
	}

	var exists bool
	err = r.pool.QueryRow(ctx, "SELECT EXISTS ("+sql+")", args...).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check conflict failed: %w", err)
	}
	return exists, nil
}

// createRetries bounds the serialization-failure retry loop.
const createRetries = 3

func (r *pgxRepository) CreateIfFree(ctx context.Context, res *Reservation) error {
	var lastErr error
	for attempt := 0; attempt < createRetries; attempt++ {
		err := r.tryCreate(ctx, res)
		if err == nil || !isSerializationFailure(err) {
			return err
		}
		lastErr = err
	}
	return fmt.Errorf("create reservation kept failing serialization: %w", lastErr)
}

func (r *pgxRepository) tryCreate(ctx context.Context, res *Reservation) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("begin create reservation tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	sql, args, err := conflictQuery(res.LaboratoryID, res.Date, res.StartTime, res.EndTime, "").ToSql()
	if err != nil {
		return fmt.Errorf("build conflict query failed: %w", err)
	}

	var exists bool
	if err := tx.QueryRow(ctx, "SELECT EXISTS ("+sql+")", args...).Scan(&exists); err != nil {
		return fmt.Errorf("check conflict failed: %w", err)
	}
	if exists {
		return ErrTimeConflict
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	insert, insertArgs, err := psql.Insert("public.reservations").
		Columns("user_id", "laboratory_id", "date", "start_time", "end_time", "purpose", "status", "admin_comment").
		Values(res.UserID, res.LaboratoryID, res.Date, res.StartTime.SQL(), res.EndTime.SQL(), res.Purpose, res.Status, res.AdminComment).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create reservation query failed: %w", err)
	}

	if err := tx.QueryRow(ctx, insert, insertArgs...).
		Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt); err != nil {
		return fmt.Errorf("create reservation failed: %w", err)
	}

	return tx.Commit(ctx)
}

func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.SerializationFailure
}

const reservationColumns = `
	r.id, r.user_id, u.display_name, r.laboratory_id, l.name,
	r.date, r.start_time::text, r.end_time::text,
	r.purpose, r.status, r.admin_comment, r.created_at, r.updated_at`

func scanReservation(row pgx.Row, extra ...any) (*Reservation, error) {
	var res Reservation
	var displayName *string
	var start, end string

	dest := []any{
		&res.ID, &res.UserID, &displayName, &res.LaboratoryID, &res.LaboratoryName,
		&res.Date, &start, &end,
		&res.Purpose, &res.Status, &res.AdminComment, &res.CreatedAt, &res.UpdatedAt,
	}
	dest = append(dest, extra...)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	if displayName != nil {
		res.UserName = *displayName
	}

	var err error
	if res.StartTime, err = clock.ParseTimeOfDay(start); err != nil {
		return nil, fmt.Errorf("parse reservation start time %q: %w", start, err)
	}
	if res.EndTime, err = clock.ParseTimeOfDay(end); err != nil {
		return nil, fmt.Errorf("parse reservation end time %q: %w", end, err)
	}
	res.Date = clock.DateOf(res.Date)
	return &res, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Reservation, error) {
	query := `
		SELECT` + reservationColumns + `
		FROM public.reservations r
		JOIN public.users u ON r.user_id = u.id
		JOIN public.laboratories l ON r.laboratory_id = l.id
		WHERE r.id = $1
	`

	res, err := scanReservation(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get reservation failed: %w", err)
	}
	return res, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Reservation, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(reservationColumns, "count(*) OVER() as total_count").
		From("public.reservations r").
		Join("public.users u ON r.user_id = u.id").
		Join("public.laboratories l ON r.laboratory_id = l.id")

	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"r.user_id": filter.UserID})
	}
	if filter.LaboratoryID != "" {
		query = query.Where(squirrel.Eq{"r.laboratory_id": filter.LaboratoryID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"r.status": filter.Status})
	}
	if filter.DateFrom != nil {
		query = query.Where(squirrel.GtOrEq{"r.date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		query = query.Where(squirrel.LtOrEq{"r.date": *filter.DateTo})
	}

	orderBy := "r.created_at"
	if filter.SortBy != "" {
		orderBy = "r." + filter.SortBy
	}
	orderDir := "DESC"
	if filter.SortOrder != "" {
		orderDir = filter.SortOrder
	}
	query = query.OrderBy(orderBy + " " + orderDir)

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list reservations query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list reservations failed: %w", err)
	}
	defer rows.Close()

	var reservations []*Reservation
	var total int

	for rows.Next() {
		res, err := scanReservation(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan reservation failed: %w", err)
		}
		reservations = append(reservations, res)
	}

	return reservations, total, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, res *Reservation) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.reservations").
		Set("status", res.Status).
		Set("admin_comment", res.AdminComment).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": res.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update reservation query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&res.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update reservation failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) CountByStatus(ctx context.Context, status Status) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		"SELECT count(*) FROM public.reservations WHERE status = $1", string(status)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count reservations failed: %w", err)
	}
	return n, nil
}

func (r *pgxRepository) ListActiveForRange(ctx context.Context, laboratoryID string, from, to time.Time) ([]*Reservation, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Select(reservationColumns).
		From("public.reservations r").
		Join("public.users u ON r.user_id = u.id").
		Join("public.laboratories l ON r.laboratory_id = l.id").
		Where(squirrel.Eq{"r.laboratory_id": laboratoryID}).
		Where(squirrel.Eq{"r.status": activeStatuses}).
		Where(squirrel.GtOrEq{"r.date": from}).
		Where(squirrel.LtOrEq{"r.date": to}).
		OrderBy("r.date", "r.start_time").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build schedule query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list schedule reservations failed: %w", err)
	}
	defer rows.Close()

	var reservations []*Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reservation failed: %w", err)
		}
		reservations = append(reservations, res)
	}
	return reservations, nil
}
