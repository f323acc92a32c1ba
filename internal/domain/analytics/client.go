package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/healthtrack/healthtrack/internal/domain/healthdata"
	"github.com/healthtrack/healthtrack/internal/platform/httpx"
)

// RecordsClient fetches a user's health records from the health-data
// service.
type RecordsClient interface {
	UserActivities(ctx context.Context, userID int64) []*healthdata.PhysicalActivity
	UserSleep(ctx context.Context, userID int64) []*healthdata.SleepActivity
	UserBloodTests(ctx context.Context, userID int64) []*healthdata.BloodTest
}

// httpRecordsClient degrades silently: any transport failure or non-2xx
// response yields an empty list, never an error. The source system's 404
// path for a failed physical-activities fetch was swallowed by its own
// catch-all, so silent degradation is the effective behavior everywhere.
type httpRecordsClient struct {
	client  *httpx.Client
	baseURL string
}

func NewRecordsClient(healthDataURL string) RecordsClient {
	return &httpRecordsClient{
		client:  httpx.NewClient(10 * time.Second),
		baseURL: healthDataURL,
	}
}

func (c *httpRecordsClient) UserActivities(ctx context.Context, userID int64) []*healthdata.PhysicalActivity {
	var out []*healthdata.PhysicalActivity
	url := fmt.Sprintf("%s/users/%d/physical_activities", c.baseURL, userID)
	if err := c.client.GetJSON(ctx, url, &out); err != nil {
		return []*healthdata.PhysicalActivity{}
	}
	return out
}

func (c *httpRecordsClient) UserSleep(ctx context.Context, userID int64) []*healthdata.SleepActivity {
	var out []*healthdata.SleepActivity
	url := fmt.Sprintf("%s/users/%d/sleep_activities", c.baseURL, userID)
	if err := c.client.GetJSON(ctx, url, &out); err != nil {
		return []*healthdata.SleepActivity{}
	}
	return out
}

func (c *httpRecordsClient) UserBloodTests(ctx context.Context, userID int64) []*healthdata.BloodTest {
	var out []*healthdata.BloodTest
	url := fmt.Sprintf("%s/users/%d/blood_tests", c.baseURL, userID)
	if err := c.client.GetJSON(ctx, url, &out); err != nil {
		return []*healthdata.BloodTest{}
	}
	return out
}
