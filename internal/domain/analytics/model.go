package analytics

import "github.com/healthtrack/healthtrack/internal/domain/healthdata"

// HealthScore is the response of the health-score endpoint. All scores are
// in [0,100]; the overall score is the unweighted mean of the three.
type HealthScore struct {
	UserID                int64    `json:"user_id"`
	HealthScore           float64  `json:"health_score"`
	PhysicalActivityScore float64  `json:"physical_activity_score"`
	SleepScore            float64  `json:"sleep_score"`
	BloodTestScore        float64  `json:"blood_test_score"`
	Recommendations       []string `json:"recommendations"`
}

// ActivityStats reports one fixed activity window. An empty window yields
// zero-valued fields, never an error.
type ActivityStats struct {
	UserID          int64                          `json:"user_id"`
	Period          string                         `json:"period"`
	TotalActivities int                            `json:"total_activities"`
	TotalDuration   float64                        `json:"total_duration"`
	TotalCalories   float64                        `json:"total_calories"`
	AverageDuration float64                        `json:"average_duration"`
	AverageCalories float64                        `json:"average_calories"`
	Activities      []*healthdata.PhysicalActivity `json:"activities"`
}
