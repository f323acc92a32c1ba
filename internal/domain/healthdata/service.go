package healthdata

import (
	"context"
	"fmt"
)

type Service struct {
	repo  Repository
	check ReferenceChecker
}

func NewService(repo Repository, check ReferenceChecker) *Service {
	return &Service{repo: repo, check: check}
}

// -- Physical activities --

// CreateActivity validates the referenced user and activity type before
// inserting. The check and the insert are separate round trips, so a row
// deleted in between can leave a dangling reference; the owning stores live
// in other services, which rules out a local FK constraint.
func (s *Service) CreateActivity(ctx context.Context, in PhysicalActivityInput) (*PhysicalActivity, error) {
	if err := s.check.CheckUser(ctx, in.UserID); err != nil {
		return nil, err
	}
	if err := s.check.CheckActivityType(ctx, in.ActivityTypeID); err != nil {
		return nil, err
	}

	a := &PhysicalActivity{
		UserID:         in.UserID,
		ActivityTypeID: in.ActivityTypeID,
		Duration:       in.Duration,
		Calories:       in.Calories,
		Date:           in.Date,
	}
	if err := s.repo.CreateActivity(ctx, a); err != nil {
		return nil, fmt.Errorf("create physical activity: %w", err)
	}
	return a, nil
}

func (s *Service) GetActivity(ctx context.Context, id int64) (*PhysicalActivity, error) {
	return s.repo.GetActivity(ctx, id)
}

func (s *Service) ListActivities(ctx context.Context, limit, skip int) ([]*PhysicalActivity, error) {
	return s.repo.ListActivities(ctx, limit, skip)
}

func (s *Service) ListActivitiesByUser(ctx context.Context, userID int64, limit, skip int) ([]*PhysicalActivity, error) {
	return s.repo.ListActivitiesByUser(ctx, userID, limit, skip)
}

// UpdateActivity replaces the full record, re-validating references.
func (s *Service) UpdateActivity(ctx context.Context, id int64, in PhysicalActivityInput) (*PhysicalActivity, error) {
	a, err := s.repo.GetActivity(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.check.CheckUser(ctx, in.UserID); err != nil {
		return nil, err
	}
	if err := s.check.CheckActivityType(ctx, in.ActivityTypeID); err != nil {
		return nil, err
	}
	a.UserID = in.UserID
	a.ActivityTypeID = in.ActivityTypeID
	a.Duration = in.Duration
	a.Calories = in.Calories
	a.Date = in.Date
	if err := s.repo.UpdateActivity(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) DeleteActivity(ctx context.Context, id int64) (*PhysicalActivity, error) {
	a, err := s.repo.GetActivity(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.DeleteActivity(ctx, id); err != nil {
		return nil, err
	}
	return a, nil
}

// -- Sleep activities --

func (s *Service) CreateSleep(ctx context.Context, in SleepActivityInput) (*SleepActivity, error) {
	if err := s.check.CheckUser(ctx, in.UserID); err != nil {
		return nil, err
	}

	sa := &SleepActivity{
		UserID:  in.UserID,
		Hours:   in.Hours,
		Quality: in.Quality,
		Date:    in.Date,
	}
	if err := s.repo.CreateSleep(ctx, sa); err != nil {
		return nil, fmt.Errorf("create sleep activity: %w", err)
	}
	return sa, nil
}

func (s *Service) GetSleep(ctx context.Context, id int64) (*SleepActivity, error) {
	return s.repo.GetSleep(ctx, id)
}

func (s *Service) ListSleep(ctx context.Context, limit, skip int) ([]*SleepActivity, error) {
	return s.repo.ListSleep(ctx, limit, skip)
}

func (s *Service) ListSleepByUser(ctx context.Context, userID int64, limit, skip int) ([]*SleepActivity, error) {
	return s.repo.ListSleepByUser(ctx, userID, limit, skip)
}

func (s *Service) UpdateSleep(ctx context.Context, id int64, in SleepActivityInput) (*SleepActivity, error) {
	sa, err := s.repo.GetSleep(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.check.CheckUser(ctx, in.UserID); err != nil {
		return nil, err
	}
	sa.UserID = in.UserID
	sa.Hours = in.Hours
	sa.Quality = in.Quality
	sa.Date = in.Date
	if err := s.repo.UpdateSleep(ctx, sa); err != nil {
		return nil, err
	}
	return sa, nil
}

func (s *Service) DeleteSleep(ctx context.Context, id int64) (*SleepActivity, error) {
	sa, err := s.repo.GetSleep(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.DeleteSleep(ctx, id); err != nil {
		return nil, err
	}
	return sa, nil
}

// -- Blood tests --

func (s *Service) CreateBloodTest(ctx context.Context, in BloodTestInput) (*BloodTest, error) {
	if err := s.check.CheckUser(ctx, in.UserID); err != nil {
		return nil, err
	}
	if err := s.check.CheckBloodTestUnit(ctx, in.UnitsID); err != nil {
		return nil, err
	}

	b := &BloodTest{
		UserID:   in.UserID,
		TestName: in.TestName,
		Value:    in.Value,
		UnitsID:  in.UnitsID,
		Date:     in.Date,
	}
	if err := s.repo.CreateBloodTest(ctx, b); err != nil {
		return nil, fmt.Errorf("create blood test: %w", err)
	}
	return b, nil
}

func (s *Service) GetBloodTest(ctx context.Context, id int64) (*BloodTest, error) {
	return s.repo.GetBloodTest(ctx, id)
}

func (s *Service) ListBloodTests(ctx context.Context, limit, skip int) ([]*BloodTest, error) {
	return s.repo.ListBloodTests(ctx, limit, skip)
}

func (s *Service) ListBloodTestsByUser(ctx context.Context, userID int64, limit, skip int) ([]*BloodTest, error) {
	return s.repo.ListBloodTestsByUser(ctx, userID, limit, skip)
}

func (s *Service) UpdateBloodTest(ctx context.Context, id int64, in BloodTestInput) (*BloodTest, error) {
	b, err := s.repo.GetBloodTest(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.check.CheckUser(ctx, in.UserID); err != nil {
		return nil, err
	}
	if err := s.check.CheckBloodTestUnit(ctx, in.UnitsID); err != nil {
		return nil, err
	}
	b.UserID = in.UserID
	b.TestName = in.TestName
	b.Value = in.Value
	b.UnitsID = in.UnitsID
	b.Date = in.Date
	if err := s.repo.UpdateBloodTest(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) DeleteBloodTest(ctx context.Context, id int64) (*BloodTest, error) {
	b, err := s.repo.GetBloodTest(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.DeleteBloodTest(ctx, id); err != nil {
		return nil, err
	}
	return b, nil
}
