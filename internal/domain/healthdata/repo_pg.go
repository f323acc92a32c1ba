package healthdata

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

// -- Physical activities --

const activityCols = `id, user_id, activity_type_id, duration, calories, date, timestamp`

func (r *repoPG) CreateActivity(ctx context.Context, a *PhysicalActivity) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO physical_activities (user_id, activity_type_id, duration, calories, date, timestamp)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, timestamp`,
		a.UserID, a.ActivityTypeID, a.Duration, a.Calories, a.Date,
	).Scan(&a.ID, &a.Timestamp)
}

func (r *repoPG) GetActivity(ctx context.Context, id int64) (*PhysicalActivity, error) {
	return scanActivity(r.pool.QueryRow(ctx,
		`SELECT `+activityCols+` FROM physical_activities WHERE id = $1`, id))
}

func (r *repoPG) ListActivities(ctx context.Context, limit, skip int) ([]*PhysicalActivity, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+activityCols+` FROM physical_activities ORDER BY id LIMIT $1 OFFSET $2`,
		limit, skip)
	if err != nil {
		return nil, err
	}
	return collectActivities(rows)
}

func (r *repoPG) ListActivitiesByUser(ctx context.Context, userID int64, limit, skip int) ([]*PhysicalActivity, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+activityCols+` FROM physical_activities WHERE user_id = $1 ORDER BY id LIMIT $2 OFFSET $3`,
		userID, limit, skip)
	if err != nil {
		return nil, err
	}
	return collectActivities(rows)
}

func (r *repoPG) UpdateActivity(ctx context.Context, a *PhysicalActivity) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE physical_activities
		SET user_id = $2, activity_type_id = $3, duration = $4, calories = $5, date = $6
		WHERE id = $1`,
		a.ID, a.UserID, a.ActivityTypeID, a.Duration, a.Calories, a.Date,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) DeleteActivity(ctx context.Context, id int64) error {
	return deleteRow(ctx, r.pool, `DELETE FROM physical_activities WHERE id = $1`, id)
}

func scanActivity(row pgx.Row) (*PhysicalActivity, error) {
	a := &PhysicalActivity{}
	err := row.Scan(&a.ID, &a.UserID, &a.ActivityTypeID, &a.Duration, &a.Calories, &a.Date, &a.Timestamp)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func collectActivities(rows pgx.Rows) ([]*PhysicalActivity, error) {
	defer rows.Close()
	out := []*PhysicalActivity{}
	for rows.Next() {
		a := &PhysicalActivity{}
		if err := rows.Scan(&a.ID, &a.UserID, &a.ActivityTypeID, &a.Duration, &a.Calories, &a.Date, &a.Timestamp); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// -- Sleep activities --

const sleepCols = `id, user_id, hours, quality, date`

func (r *repoPG) CreateSleep(ctx context.Context, s *SleepActivity) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO sleep_activities (user_id, hours, quality, date)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		s.UserID, s.Hours, s.Quality, s.Date,
	).Scan(&s.ID)
}

func (r *repoPG) GetSleep(ctx context.Context, id int64) (*SleepActivity, error) {
	return scanSleep(r.pool.QueryRow(ctx,
		`SELECT `+sleepCols+` FROM sleep_activities WHERE id = $1`, id))
}

func (r *repoPG) ListSleep(ctx context.Context, limit, skip int) ([]*SleepActivity, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+sleepCols+` FROM sleep_activities ORDER BY id LIMIT $1 OFFSET $2`,
		limit, skip)
	if err != nil {
		return nil, err
	}
	return collectSleep(rows)
}

func (r *repoPG) ListSleepByUser(ctx context.Context, userID int64, limit, skip int) ([]*SleepActivity, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+sleepCols+` FROM sleep_activities WHERE user_id = $1 ORDER BY id LIMIT $2 OFFSET $3`,
		userID, limit, skip)
	if err != nil {
		return nil, err
	}
	return collectSleep(rows)
}

func (r *repoPG) UpdateSleep(ctx context.Context, s *SleepActivity) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE sleep_activities
		SET user_id = $2, hours = $3, quality = $4, date = $5
		WHERE id = $1`,
		s.ID, s.UserID, s.Hours, s.Quality, s.Date,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) DeleteSleep(ctx context.Context, id int64) error {
	return deleteRow(ctx, r.pool, `DELETE FROM sleep_activities WHERE id = $1`, id)
}

func scanSleep(row pgx.Row) (*SleepActivity, error) {
	s := &SleepActivity{}
	err := row.Scan(&s.ID, &s.UserID, &s.Hours, &s.Quality, &s.Date)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func collectSleep(rows pgx.Rows) ([]*SleepActivity, error) {
	defer rows.Close()
	out := []*SleepActivity{}
	for rows.Next() {
		s := &SleepActivity{}
		if err := rows.Scan(&s.ID, &s.UserID, &s.Hours, &s.Quality, &s.Date); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// -- Blood tests --

const bloodTestCols = `id, user_id, test_name, value, units_id, date`

func (r *repoPG) CreateBloodTest(ctx context.Context, b *BloodTest) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO blood_tests (user_id, test_name, value, units_id, date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		b.UserID, b.TestName, b.Value, b.UnitsID, b.Date,
	).Scan(&b.ID)
}

func (r *repoPG) GetBloodTest(ctx context.Context, id int64) (*BloodTest, error) {
	return scanBloodTest(r.pool.QueryRow(ctx,
		`SELECT `+bloodTestCols+` FROM blood_tests WHERE id = $1`, id))
}

func (r *repoPG) ListBloodTests(ctx context.Context, limit, skip int) ([]*BloodTest, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+bloodTestCols+` FROM blood_tests ORDER BY id LIMIT $1 OFFSET $2`,
		limit, skip)
	if err != nil {
		return nil, err
	}
	return collectBloodTests(rows)
}

func (r *repoPG) ListBloodTestsByUser(ctx context.Context, userID int64, limit, skip int) ([]*BloodTest, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+bloodTestCols+` FROM blood_tests WHERE user_id = $1 ORDER BY id LIMIT $2 OFFSET $3`,
		userID, limit, skip)
	if err != nil {
		return nil, err
	}
	return collectBloodTests(rows)
}

func (r *repoPG) UpdateBloodTest(ctx context.Context, b *BloodTest) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE blood_tests
		SET user_id = $2, test_name = $3, value = $4, units_id = $5, date = $6
		WHERE id = $1`,
		b.ID, b.UserID, b.TestName, b.Value, b.UnitsID, b.Date,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) DeleteBloodTest(ctx context.Context, id int64) error {
	return deleteRow(ctx, r.pool, `DELETE FROM blood_tests WHERE id = $1`, id)
}

func scanBloodTest(row pgx.Row) (*BloodTest, error) {
	b := &BloodTest{}
	err := row.Scan(&b.ID, &b.UserID, &b.TestName, &b.Value, &b.UnitsID, &b.Date)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func collectBloodTests(rows pgx.Rows) ([]*BloodTest, error) {
	defer rows.Close()
	out := []*BloodTest{}
	for rows.Next() {
		b := &BloodTest{}
		if err := rows.Scan(&b.ID, &b.UserID, &b.TestName, &b.Value, &b.UnitsID, &b.Date); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func deleteRow(ctx context.Context, pool *pgxpool.Pool, sql string, id int64) error {
	tag, err := pool.Exec(ctx, sql, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
