package healthdata

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/healthtrack/healthtrack/internal/platform/httpx"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrActivityTypeNotFound = errors.New("activity type not found")
	ErrUnitNotFound         = errors.New("blood test unit not found")
)

// ReferenceChecker verifies that rows referenced by health-data records exist
// in the services that own them.
type ReferenceChecker interface {
	CheckUser(ctx context.Context, id int64) error
	CheckActivityType(ctx context.Context, id int64) error
	CheckBloodTestUnit(ctx context.Context, id int64) error
}

// httpChecker performs the checks with synchronous GETs against the user and
// reference-data services. Any failure, transport included, reports the
// reference as missing; this mirrors the source system, which collapsed every
// check failure into its not-found path.
type httpChecker struct {
	client     *httpx.Client
	userURL    string
	refDataURL string
}

func NewHTTPChecker(userURL, refDataURL string) ReferenceChecker {
	return &httpChecker{
		client:     httpx.NewClient(5 * time.Second),
		userURL:    userURL,
		refDataURL: refDataURL,
	}
}

func (c *httpChecker) CheckUser(ctx context.Context, id int64) error {
	if err := c.client.GetJSON(ctx, fmt.Sprintf("%s/users/%d", c.userURL, id), nil); err != nil {
		return ErrUserNotFound
	}
	return nil
}

func (c *httpChecker) CheckActivityType(ctx context.Context, id int64) error {
	if err := c.client.GetJSON(ctx, fmt.Sprintf("%s/activity_types/%d", c.refDataURL, id), nil); err != nil {
		return ErrActivityTypeNotFound
	}
	return nil
}

func (c *httpChecker) CheckBloodTestUnit(ctx context.Context, id int64) error {
	if err := c.client.GetJSON(ctx, fmt.Sprintf("%s/blood_test_units/%d", c.refDataURL, id), nil); err != nil {
		return ErrUnitNotFound
	}
	return nil
}
