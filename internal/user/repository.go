package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines methods for accessing user data from storage.
type Repository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	// Create inserts the user and their profile in one transaction.
	Create(ctx context.Context, u *User) error
	UpdateLastLogin(ctx context.Context, id string, t time.Time) error
	UpdateProfile(ctx context.Context, id string, p Profile) error
	List(ctx context.Context, filter Filter) ([]*User, int, error)
	Update(ctx context.Context, u *User) error
	Deactivate(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type pgxUserRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new Repository implementation using pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxUserRepository{pool: pool}
}

const userSelect = `
	SELECT
		u.id, u.email, u.password_hash, u.display_name,
		u.is_active, u.is_staff, u.created_at, u.last_login_at,
		p.student_id, p.phone, p.department
	FROM public.users u
	JOIN public.user_profiles p ON p.user_id = u.id
`

func scanUser(row pgx.Row, extra ...any) (*User, error) {
	var u User
	dest := []any{
		&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName,
		&u.IsActive, &u.IsStaff, &u.CreatedAt, &u.LastLoginAt,
		&u.Profile.StudentID, &u.Profile.Phone, &u.Profile.Department,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *pgxUserRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, userSelect+" WHERE u.email = $1", email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("GetByEmail query failed: %w", err)
	}
	return u, nil
}

func (r *pgxUserRepository) GetByID(ctx context.Context, id string) (*User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, userSelect+" WHERE u.id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("GetByID query failed: %w", err)
	}
	return u, nil
}

func (r *pgxUserRepository) Create(ctx context.Context, u *User) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create user tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	const insertUser = `
		INSERT INTO public.users (email, password_hash, display_name, is_active, is_staff)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	if err := tx.QueryRow(ctx, insertUser,
		u.Email, u.PasswordHash, u.DisplayName, u.IsActive, u.IsStaff,
	).Scan(&u.ID, &u.CreatedAt); err != nil {
		return classifyUniqueViolation(err, "create user failed")
	}

	const insertProfile = `
		INSERT INTO public.user_profiles (user_id, student_id, phone, department)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := tx.Exec(ctx, insertProfile,
		u.ID, u.Profile.StudentID, u.Profile.Phone, u.Profile.Department,
	); err != nil {
		return classifyUniqueViolation(err, "create user profile failed")
	}

	return tx.Commit(ctx)
}

// classifyUniqueViolation maps unique-constraint errors onto domain errors by
// constraint name, falling back to a wrapped error.
func classifyUniqueViolation(err error, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		if strings.Contains(pgErr.ConstraintName, "student_id") {
			return ErrStudentIDTaken
		}
		return ErrEmailAlreadyUsed
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func (r *pgxUserRepository) UpdateLastLogin(ctx context.Context, id string, t time.Time) error {
	ct, err := r.pool.Exec(ctx, "UPDATE public.users SET last_login_at = $1 WHERE id = $2", t, id)
	if err != nil {
		return fmt.Errorf("UpdateLastLogin failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxUserRepository) UpdateProfile(ctx context.Context, id string, p Profile) error {
	const query = `
		UPDATE public.user_profiles
		SET student_id = $1, phone = $2, department = $3
		WHERE user_id = $4
	`
	ct, err := r.pool.Exec(ctx, query, p.StudentID, p.Phone, p.Department, id)
	if err != nil {
		return classifyUniqueViolation(err, "update profile failed")
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxUserRepository) List(ctx context.Context, filter Filter) ([]*User, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"u.id", "u.email", "u.password_hash", "u.display_name",
		"u.is_active", "u.is_staff", "u.created_at", "u.last_login_at",
		"p.student_id", "p.phone", "p.department",
		"count(*) OVER() as total_count",
	).
		From("public.users u").
		Join("public.user_profiles p ON p.user_id = u.id")

	if filter.Email != "" {
		query = query.Where(squirrel.ILike{"u.email": "%" + filter.Email + "%"})
	}
	if filter.DisplayName != "" {
		query = query.Where(squirrel.ILike{"u.display_name": "%" + filter.DisplayName + "%"})
	}
	if filter.StudentID != "" {
		query = query.Where(squirrel.Eq{"p.student_id": filter.StudentID})
	}
	if filter.IsActive != nil {
		query = query.Where(squirrel.Eq{"u.is_active": *filter.IsActive})
	}

	orderBy := "u.created_at"
	if filter.SortBy != "" {
		orderBy = "u." + filter.SortBy
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
		return nil, 0, fmt.Errorf("build list users query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list users failed: %w", err)
	}
	defer rows.Close()

	var users []*User
	var total int

	for rows.Next() {
		u, err := scanUser(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan user failed: %w", err)
		}
		users = append(users, u)
	}

	return users, total, nil
}

func (r *pgxUserRepository) Update(ctx context.Context, u *User) error {
	const query = `
		UPDATE public.users
		SET display_name = $1, is_active = $2, is_staff = $3
		WHERE id = $4
	`
	ct, err := r.pool.Exec(ctx, query, u.DisplayName, u.IsActive, u.IsStaff, u.ID)
	if err != nil {
		return fmt.Errorf("update user failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxUserRepository) Deactivate(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, "UPDATE public.users SET is_active = false WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deactivate user failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxUserRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, "SELECT count(*) FROM public.users").Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count users failed: %w", err)
	}
	return n, nil
}
