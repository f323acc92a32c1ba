package healthdata

import (
	"context"
	"errors"
)

// ErrNotFound is returned by repository lookups for missing rows.
var ErrNotFound = errors.New("record not found")

type Repository interface {
	CreateActivity(ctx context.Context, a *PhysicalActivity) error
	GetActivity(ctx context.Context, id int64) (*PhysicalActivity, error)
	ListActivities(ctx context.Context, limit, skip int) ([]*PhysicalActivity, error)
	ListActivitiesByUser(ctx context.Context, userID int64, limit, skip int) ([]*PhysicalActivity, error)
	UpdateActivity(ctx context.Context, a *PhysicalActivity) error
	DeleteActivity(ctx context.Context, id int64) error

	CreateSleep(ctx context.Context, s *SleepActivity) error
	GetSleep(ctx context.Context, id int64) (*SleepActivity, error)
	ListSleep(ctx context.Context, limit, skip int) ([]*SleepActivity, error)
	ListSleepByUser(ctx context.Context, userID int64, limit, skip int) ([]*SleepActivity, error)
	UpdateSleep(ctx context.Context, s *SleepActivity) error
	DeleteSleep(ctx context.Context, id int64) error

	CreateBloodTest(ctx context.Context, b *BloodTest) error
	GetBloodTest(ctx context.Context, id int64) (*BloodTest, error)
	ListBloodTests(ctx context.Context, limit, skip int) ([]*BloodTest, error)
	ListBloodTestsByUser(ctx context.Context, userID int64, limit, skip int) ([]*BloodTest, error)
	UpdateBloodTest(ctx context.Context, b *BloodTest) error
	DeleteBloodTest(ctx context.Context, id int64) error
}
