package analytics

import (
	"time"

	"github.com/healthtrack/healthtrack/internal/domain/healthdata"
)

// Daily targets for the physical-activity sub-score.
const (
	targetDailyMinutes  = 30.0
	targetDailyCalories = 200.0
)

// bloodTestScorePresent is the placeholder score assigned when any blood
// test exists in the window. No reference-range evaluation is performed.
const bloodTestScorePresent = 85.0

// recommendationThreshold is the sub-score below which a recommendation
// fires.
const recommendationThreshold = 70.0

const (
	recPhysical = "Increase physical activity to at least 30 minutes per day"
	recSleep    = "Aim for 7-9 hours of sleep per night"
	recBlood    = "Consider consulting with a healthcare provider about your blood test results"
	recAllGood  = "Keep up the great work! Your health metrics look good."
)

// PhysicalActivityScore averages two capped ratios, total duration against
// days x 30 minutes and total calories against days x 200 kcal, scaled to
// [0,100]. Records outside [now - days, now] are ignored; no in-window
// records scores 0.
func PhysicalActivityScore(activities []*healthdata.PhysicalActivity, days int, now time.Time) float64 {
	cutoff := now.AddDate(0, 0, -days)

	var totalDuration, totalCalories float64
	n := 0
	for _, a := range activities {
		if a.Date.Before(cutoff) {
			continue
		}
		totalDuration += a.Duration
		totalCalories += a.Calories
		n++
	}
	if n == 0 {
		return 0
	}

	durationScore := clamp01(totalDuration / (float64(days) * targetDailyMinutes))
	caloriesScore := clamp01(totalCalories / (float64(days) * targetDailyCalories))

	return (durationScore + caloriesScore) / 2 * 100
}

// SleepScore maps the mean nightly hours of in-window entries onto a step
// function: [7,9] is optimal, each band outward drops 20 points, bottoming
// out at 40. No in-window entries scores 0.
func SleepScore(activities []*healthdata.SleepActivity, days int, now time.Time) float64 {
	cutoff := now.AddDate(0, 0, -days)

	var totalHours float64
	n := 0
	for _, s := range activities {
		if s.Date.Before(cutoff) {
			continue
		}
		totalHours += s.Hours
		n++
	}
	if n == 0 {
		return 0
	}

	avg := totalHours / float64(n)
	switch {
	case avg >= 7 && avg <= 9:
		return 100
	case (avg >= 6 && avg < 7) || (avg > 9 && avg <= 10):
		return 80
	case (avg >= 5 && avg < 6) || (avg > 10 && avg <= 11):
		return 60
	default:
		return 40
	}
}

// BloodTestScore returns the placeholder score when any in-window test
// exists, else 0.
func BloodTestScore(tests []*healthdata.BloodTest, days int, now time.Time) float64 {
	cutoff := now.AddDate(0, 0, -days)
	for _, t := range tests {
		if !t.Date.Before(cutoff) {
			return bloodTestScorePresent
		}
	}
	return 0
}

// Recommendations emits one fixed message per sub-score below 70, in
// physical/sleep/blood order, with a single catch-all when none fire.
func Recommendations(physical, sleep, blood float64) []string {
	var recs []string
	if physical < recommendationThreshold {
		recs = append(recs, recPhysical)
	}
	if sleep < recommendationThreshold {
		recs = append(recs, recSleep)
	}
	if blood < recommendationThreshold {
		recs = append(recs, recBlood)
	}
	if len(recs) == 0 {
		recs = append(recs, recAllGood)
	}
	return recs
}

func clamp01(v float64) float64 {
	if v > 1 {
		return 1
	}
	return v
}
