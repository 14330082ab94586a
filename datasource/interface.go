package datasource

import (
	"context"

	"weatherboy/models"
)

// ForecastSource is an interface for services that can fetch hourly or
// 3-hourly forecast samples
type ForecastSource interface {
	// FetchForecast fetches the forecast samples for a location
	FetchForecast(ctx context.Context, loc models.Location) ([]models.Sample, error)

	// Name returns the source's name
	Name() string
}

// ConditionSource is an interface for services that report the current
// weather condition
type ConditionSource interface {
	// CurrentCondition fetches the current reading for a location
	CurrentCondition(ctx context.Context, loc models.Location) (models.Condition, error)

	// Name returns the source's name
	Name() string
}
