package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/healthtrack/healthtrack/internal/domain/healthdata"
)

// DefaultLookbackDays is the health-score window when the caller does not
// pass ?days=N.
const DefaultLookbackDays = 30

// Fixed activity-stats windows.
const (
	PeriodLastDay   = "last_day"
	PeriodLastWeek  = "last_week"
	PeriodLastMonth = "last_month"
)

var periodDays = map[string]int{
	PeriodLastDay:   1,
	PeriodLastWeek:  7,
	PeriodLastMonth: 30,
}

// ErrUnknownPeriod is returned for a stats period outside the fixed set.
var ErrUnknownPeriod = fmt.Errorf("unknown stats period")

type Service struct {
	records RecordsClient
	now     func() time.Time
}

func NewService(records RecordsClient) *Service {
	return &Service{records: records, now: time.Now}
}

// HealthScore fetches the user's records, computes the three sub-scores
// over the lookback window, and generates recommendations. Upstream
// failures have already been degraded to empty lists by the client.
func (s *Service) HealthScore(ctx context.Context, userID int64, days int) *HealthScore {
	if days <= 0 {
		days = DefaultLookbackDays
	}
	now := s.now()

	activities := s.records.UserActivities(ctx, userID)
	sleep := s.records.UserSleep(ctx, userID)
	tests := s.records.UserBloodTests(ctx, userID)

	physical := PhysicalActivityScore(activities, days, now)
	sleepScore := SleepScore(sleep, days, now)
	blood := BloodTestScore(tests, days, now)

	return &HealthScore{
		UserID:                userID,
		HealthScore:           (physical + sleepScore + blood) / 3,
		PhysicalActivityScore: physical,
		SleepScore:            sleepScore,
		BloodTestScore:        blood,
		Recommendations:       Recommendations(physical, sleepScore, blood),
	}
}

// ActivityStats filters the user's physical activities to the named fixed
// window and reports count, totals, and means.
func (s *Service) ActivityStats(ctx context.Context, userID int64, period string) (*ActivityStats, error) {
	days, ok := periodDays[period]
	if !ok {
		return nil, ErrUnknownPeriod
	}
	cutoff := s.now().AddDate(0, 0, -days)

	recent := []*healthdata.PhysicalActivity{}
	for _, a := range s.records.UserActivities(ctx, userID) {
		if !a.Date.Before(cutoff) {
			recent = append(recent, a)
		}
	}

	stats := &ActivityStats{
		UserID:     userID,
		Period:     period,
		Activities: recent,
	}
	if len(recent) == 0 {
		return stats, nil
	}

	for _, a := range recent {
		stats.TotalDuration += a.Duration
		stats.TotalCalories += a.Calories
	}
	stats.TotalActivities = len(recent)
	stats.AverageDuration = stats.TotalDuration / float64(len(recent))
	stats.AverageCalories = stats.TotalCalories / float64(len(recent))
	return stats, nil
}
