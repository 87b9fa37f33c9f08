package laboratory

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, lab *Laboratory) error
	GetByID(ctx context.Context, id string) (*Laboratory, error)
	List(ctx context.Context, filter Filter) ([]*Laboratory, int, error)
	CountByCategory(ctx context.Context, keyword string) (map[Category]int, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, lab *Laboratory) error
	Deactivate(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const labColumns = "id, name, category, location, capacity, equipment, description, is_active, photo_id, created_at"

func (r *pgxRepository) Create(ctx context.Context, lab *Laboratory) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.laboratories").
		Columns("name", "category", "location", "capacity", "equipment", "description", "is_active", "photo_id").
		Values(lab.Name, lab.Category, lab.Location, lab.Capacity, lab.Equipment, lab.Description, lab.IsActive, lab.PhotoID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create laboratory query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).Scan(&lab.ID, &lab.CreatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Laboratory, error) {
	query := "SELECT " + labColumns + " FROM public.laboratories WHERE id = $1"

	row := r.pool.QueryRow(ctx, query, id)

	var lab Laboratory
	if err := row.Scan(
		&lab.ID, &lab.Name, &lab.Category, &lab.Location, &lab.Capacity,
		&lab.Equipment, &lab.Description, &lab.IsActive, &lab.PhotoID, &lab.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get laboratory failed: %w", err)
	}
	return &lab, nil
}

// applyKeyword adds the free-text search condition shared by List and
// CountByCategory so that both see the same result set.
func applyKeyword(q squirrel.SelectBuilder, keyword string) squirrel.SelectBuilder {
	if keyword == "" {
		return q
	}
	pattern := "%" + keyword + "%"
	return q.Where(squirrel.Or{
		squirrel.ILike{"name": pattern},
		squirrel.ILike{"location": pattern},
		squirrel.ILike{"description": pattern},
		squirrel.ILike{"equipment": pattern},
	})
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Laboratory, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(labColumns, "count(*) OVER() as total_count").
		From("public.laboratories")

	if !filter.IncludeInactive {
		query = query.Where(squirrel.Eq{"is_active": true})
	}
	if filter.Category != "" {
		query = query.Where(squirrel.Eq{"category": filter.Category})
	}
	query = applyKeyword(query, filter.Keyword)

	query = query.OrderBy("category", "name")

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
		return nil, 0, fmt.Errorf("build list laboratories query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list laboratories failed: %w", err)
	}
	defer rows.Close()

	var labs []*Laboratory
	var total int

	for rows.Next() {
		var lab Laboratory
		if err := rows.Scan(
			&lab.ID, &lab.Name, &lab.Category, &lab.Location, &lab.Capacity,
			&lab.Equipment, &lab.Description, &lab.IsActive, &lab.PhotoID, &lab.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan laboratory failed: %w", err)
		}
		labs = append(labs, &lab)
	}

	return labs, total, nil
}

func (r *pgxRepository) CountByCategory(ctx context.Context, keyword string) (map[Category]int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select("category", "count(*)").
		From("public.laboratories").
		Where(squirrel.Eq{"is_active": true})
	query = applyKeyword(query, keyword)
	query = query.GroupBy("category")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build category count query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("count laboratories by category failed: %w", err)
	}
	defer rows.Close()

	counts := make(map[Category]int)
	for rows.Next() {
		var cat Category
		var n int
		if err := rows.Scan(&cat, &n); err != nil {
			return nil, fmt.Errorf("scan category count failed: %w", err)
		}
		counts[cat] = n
	}
	return counts, nil
}

func (r *pgxRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, "SELECT count(*) FROM public.laboratories").Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count laboratories failed: %w", err)
	}
	return n, nil
}

func (r *pgxRepository) Update(ctx context.Context, lab *Laboratory) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.laboratories").
		Set("name", lab.Name).
		Set("category", lab.Category).
		Set("location", lab.Location).
		Set("capacity", lab.Capacity).
		Set("equipment", lab.Equipment).
		Set("description", lab.Description).
		Set("is_active", lab.IsActive).
		Set("photo_id", lab.PhotoID).
		Where(squirrel.Eq{"id": lab.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update laboratory query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update laboratory failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Deactivate(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, "UPDATE public.laboratories SET is_active = false WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deactivate laboratory failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
