package healthdata

import "time"

// PhysicalActivity maps to the physical_activities table. Date is the
// client-supplied occurrence time; Timestamp is set server-side at insert.
type PhysicalActivity struct {
	ID             int64     `db:"id" json:"id"`
	UserID         int64     `db:"user_id" json:"user_id"`
	ActivityTypeID int64     `db:"activity_type_id" json:"activity_type_id"`
	Duration       float64   `db:"duration" json:"duration"`
	Calories       float64   `db:"calories" json:"calories"`
	Date           time.Time `db:"date" json:"date"`
	Timestamp      time.Time `db:"timestamp" json:"timestamp"`
}

// SleepActivity maps to the sleep_activities table. Quality is free text
// (e.g. "good", "restless").
type SleepActivity struct {
	ID      int64     `db:"id" json:"id"`
	UserID  int64     `db:"user_id" json:"user_id"`
	Hours   float64   `db:"hours" json:"hours"`
	Quality string    `db:"quality" json:"quality"`
	Date    time.Time `db:"date" json:"date"`
}

// BloodTest maps to the blood_tests table.
type BloodTest struct {
	ID       int64     `db:"id" json:"id"`
	UserID   int64     `db:"user_id" json:"user_id"`
	TestName string    `db:"test_name" json:"test_name"`
	Value    float64   `db:"value" json:"value"`
	UnitsID  int64     `db:"units_id" json:"units_id"`
	Date     time.Time `db:"date" json:"date"`
}

type PhysicalActivityInput struct {
	UserID         int64     `json:"user_id"`
	ActivityTypeID int64     `json:"activity_type_id"`
	Duration       float64   `json:"duration"`
	Calories       float64   `json:"calories"`
	Date           time.Time `json:"date"`
}

type SleepActivityInput struct {
	UserID  int64     `json:"user_id"`
	Hours   float64   `json:"hours"`
	Quality string    `json:"quality"`
	Date    time.Time `json:"date"`
}

type BloodTestInput struct {
	UserID   int64     `json:"user_id"`
	TestName string    `json:"test_name"`
	Value    float64   `json:"value"`
	UnitsID  int64     `json:"units_id"`
	Date     time.Time `json:"date"`
}
