package datasource

import (
	"context"
	"errors"
	"fmt"

	"weatherboy/models"

	"golang.org/x/time/rate"
)

// ErrRateLimited is returned when a call could not get a rate limiter token
// before its context ended
var ErrRateLimited = errors.New("rate limited")

// RateLimitedForecastSource wraps a ForecastSource with rate limiting
type RateLimitedForecastSource struct {
	source  ForecastSource
	limiter *rate.Limiter
	name    string
}

// NewRateLimitedForecastSource allows rps fetches per second (fractional for
// slower rates) with bursts of up to burst
func NewRateLimitedForecastSource(source ForecastSource, rps float64, burst int) *RateLimitedForecastSource {
	return &RateLimitedForecastSource{
		source:  source,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		name:    fmt.Sprintf("%s [Rate Limited]", source.Name()),
	}
}

// FetchForecast fetches forecast samples, respecting rate limits
func (r *RateLimitedForecastSource) FetchForecast(ctx context.Context, loc models.Location) ([]models.Sample, error) {
	if err := wait(ctx, r.limiter); err != nil {
		return nil, err
	}
	return r.source.FetchForecast(ctx, loc)
}

// Name returns the source name
func (r *RateLimitedForecastSource) Name() string {
	return r.name
}

// RateLimitedConditionSource wraps a ConditionSource with rate limiting
type RateLimitedConditionSource struct {
	source  ConditionSource
	limiter *rate.Limiter
	name    string
}

// NewRateLimitedConditionSource is NewRateLimitedForecastSource for current readings
func NewRateLimitedConditionSource(source ConditionSource, rps float64, burst int) *RateLimitedConditionSource {
	return &RateLimitedConditionSource{
		source:  source,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		name:    fmt.Sprintf("%s [Rate Limited]", source.Name()),
	}
}

// CurrentCondition fetches the current reading, respecting rate limits
func (r *RateLimitedConditionSource) CurrentCondition(ctx context.Context, loc models.Location) (models.Condition, error) {
	if err := wait(ctx, r.limiter); err != nil {
		return models.Condition{}, err
	}
	return r.source.CurrentCondition(ctx, loc)
}

// Name returns the source name
func (r *RateLimitedConditionSource) Name() string {
	return r.name
}

// wait blocks for a token. The limiter refuses up front when the token would
// not arrive before ctx's deadline, which the API turns into a 429.
func wait(ctx context.Context, l *rate.Limiter) error {
	if err := l.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	}
	return nil
}

// Verify that our rate limited types implement the required interfaces
var (
	_ ForecastSource  = (*RateLimitedForecastSource)(nil)
	_ ConditionSource = (*RateLimitedConditionSource)(nil)
)
