package refdata

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// lookupRepoPG serves both reference tables; the table name is fixed by the
// constructor, never caller input.
type lookupRepoPG struct {
	pool  *pgxpool.Pool
	table string
}

func NewActivityTypeRepo(pool *pgxpool.Pool) Repository {
	return &lookupRepoPG{pool: pool, table: "activity_types"}
}

func NewBloodTestUnitRepo(pool *pgxpool.Pool) Repository {
	return &lookupRepoPG{pool: pool, table: "blood_test_units"}
}

func (r *lookupRepoPG) Create(ctx context.Context, row *Lookup) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO `+r.table+` (name) VALUES ($1) RETURNING id`,
		row.Name,
	).Scan(&row.ID)
}

func (r *lookupRepoPG) GetByID(ctx context.Context, id int64) (*Lookup, error) {
	return scanLookup(r.pool.QueryRow(ctx,
		`SELECT id, name FROM `+r.table+` WHERE id = $1`, id))
}

func (r *lookupRepoPG) GetByName(ctx context.Context, name string) (*Lookup, error) {
	return scanLookup(r.pool.QueryRow(ctx,
		`SELECT id, name FROM `+r.table+` WHERE name = $1`, name))
}

func (r *lookupRepoPG) List(ctx context.Context, limit, skip int) ([]*Lookup, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name FROM `+r.table+` ORDER BY id LIMIT $1 OFFSET $2`, limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*Lookup{}
	for rows.Next() {
		row := &Lookup{}
		if err := rows.Scan(&row.ID, &row.Name); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *lookupRepoPG) Update(ctx context.Context, row *Lookup) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE `+r.table+` SET name = $2 WHERE id = $1`, row.ID, row.Name)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *lookupRepoPG) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM `+r.table+` WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanLookup(row pgx.Row) (*Lookup, error) {
	l := &Lookup{}
	err := row.Scan(&l.ID, &l.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}
