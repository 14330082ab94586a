package datasource

import (
	"context"
	"net/http"
	"strconv"
	"time"

	owm "github.com/briandowns/openweathermap"

	"weatherboy/models"
)

// OWMCurrentProvider reads the current condition from OpenWeatherMap
// through the openweathermap client library
type OWMCurrentProvider struct {
	apiKey     string
	units      string
	httpClient *http.Client
}

// NewOWMCurrentProvider creates an OpenWeatherMap condition source
func NewOWMCurrentProvider(apiKey, units string, timeout time.Duration) *OWMCurrentProvider {
	return &OWMCurrentProvider{
		apiKey:     apiKey,
		units:      units,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Name returns the provider name
func (p *OWMCurrentProvider) Name() string {
	return "OpenWeatherMap"
}

// CurrentCondition fetches the current reading for the location's coordinates.
// The library has no context support, so ctx is only checked up front; the
// HTTP client timeout bounds the call.
func (p *OWMCurrentProvider) CurrentCondition(ctx context.Context, loc models.Location) (models.Condition, error) {
	if err := ctx.Err(); err != nil {
		return models.Condition{}, &NetworkError{Provider: p.Name(), Err: err}
	}

	unit, _ := owmUnit(p.units)
	data, err := owm.NewCurrent(unit, "en", p.apiKey, owm.WithHttpClient(p.httpClient))
	if err != nil {
		return models.Condition{}, &NetworkError{Provider: p.Name(), Err: err}
	}

	if err := data.CurrentByCoordinates(&owm.Coordinates{
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
	}); err != nil {
		return models.Condition{}, &NetworkError{Provider: p.Name(), Err: err}
	}

	return conditionFromOWM(p.Name(), data, p.units), nil
}

// conditionFromOWM converts the library's response into a Condition
func conditionFromOWM(provider string, data *owm.CurrentWeatherData, units string) models.Condition {
	_, label := owmUnit(units)
	cond := models.Condition{
		Provider:    provider,
		Temperature: strconv.FormatFloat(data.Main.Temp, 'f', 0, 64),
		Unit:        label,
	}
	if len(data.Weather) > 0 {
		cond.Description = capitalizeFirst(data.Weather[0].Description)
	}
	return cond
}

// owmUnit maps a unit system to the library's unit letter and a display label
func owmUnit(units string) (letter, label string) {
	switch units {
	case "metric":
		return "C", "°C"
	case "standard":
		return "K", "K"
	default:
		return "F", "°F"
	}
}

// capitalizeFirst upper-cases the first byte of an ASCII description so it
// reads like wttr.in's ("few clouds" -> "Few clouds")
func capitalizeFirst(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}

var _ ConditionSource = (*OWMCurrentProvider)(nil)
