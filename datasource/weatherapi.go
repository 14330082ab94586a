package datasource

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"weatherboy/models"
)

const kelvinOffset = 273.15

// WeatherAPIProvider fetches hourly forecasts from weatherapi.com
type WeatherAPIProvider struct {
	apiKey     string
	units      string
	days       int
	baseURL    string
	httpClient *http.Client
}

// NewWeatherAPIProvider creates a new WeatherAPI forecast source
func NewWeatherAPIProvider(apiKey, units string, days int, timeout time.Duration) *WeatherAPIProvider {
	return &WeatherAPIProvider{
		apiKey:  apiKey,
		units:   units,
		days:    days,
		baseURL: "https://api.weatherapi.com/v1",
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// WithBaseURL points the provider at a different API root
func (p *WeatherAPIProvider) WithBaseURL(u string) *WeatherAPIProvider {
	p.baseURL = u
	return p
}

// Name returns the provider name
func (p *WeatherAPIProvider) Name() string {
	return "WeatherAPI"
}

type weatherAPIForecastResponse struct {
	Location struct {
		Name string `json:"name"`
		TzID string `json:"tz_id"`
	} `json:"location"`
	Forecast struct {
		ForecastDay []struct {
			Date string `json:"date"`
			Hour []struct {
				TimeEpoch    int64   `json:"time_epoch"`
				TempC        float64 `json:"temp_c"`
				TempF        float64 `json:"temp_f"`
				Humidity     float64 `json:"humidity"`
				WindKph      float64 `json:"wind_kph"`
				WindMph      float64 `json:"wind_mph"`
				Cloud        float64 `json:"cloud"`
				ChanceOfRain float64 `json:"chance_of_rain"`
				ChanceOfSnow float64 `json:"chance_of_snow"`
				Condition    struct {
					Text string `json:"text"`
				} `json:"condition"`
			} `json:"hour"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

// FetchForecast fetches hourly samples. Sample times are in the location's
// own time zone so days split at local midnight.
func (p *WeatherAPIProvider) FetchForecast(ctx context.Context, loc models.Location) ([]models.Sample, error) {
	params := url.Values{}
	params.Add("q", query(loc))
	params.Add("days", strconv.Itoa(p.days))
	params.Add("key", p.apiKey)
	endpoint := fmt.Sprintf("%s/forecast.json?%s", p.baseURL, params.Encode())

	var response weatherAPIForecastResponse
	if err := getJSON(ctx, p.httpClient, p.Name(), endpoint, &response); err != nil {
		return nil, err
	}

	tz := time.UTC
	if response.Location.TzID != "" {
		if l, err := time.LoadLocation(response.Location.TzID); err == nil {
			tz = l
		}
	}

	var samples []models.Sample
	for _, day := range response.Forecast.ForecastDay {
		for _, hour := range day.Hour {
			samples = append(samples, models.Sample{
				Time:        time.Unix(hour.TimeEpoch, 0).In(tz),
				Temperature: p.temperature(hour.TempC, hour.TempF),
				PrecipProb:  max(hour.ChanceOfRain, hour.ChanceOfSnow),
				Humidity:    hour.Humidity,
				WindSpeed:   p.wind(hour.WindKph, hour.WindMph),
				Cloudiness:  hour.Cloud,
				Description: hour.Condition.Text,
			})
		}
	}

	return samples, nil
}

func (p *WeatherAPIProvider) temperature(c, f float64) float64 {
	switch p.units {
	case "metric":
		return c
	case "standard":
		return c + kelvinOffset
	default:
		return f
	}
}

func (p *WeatherAPIProvider) wind(kph, mph float64) float64 {
	if p.units == "metric" || p.units == "standard" {
		return kph / 3.6 // Convert to m/s
	}
	return mph
}

// query prefers coordinates and falls back to the location name
func query(loc models.Location) string {
	if loc.Latitude == 0 && loc.Longitude == 0 && loc.Name != "" {
		return loc.Name
	}
	return fmt.Sprintf("%s,%s",
		strconv.FormatFloat(loc.Latitude, 'f', -1, 64),
		strconv.FormatFloat(loc.Longitude, 'f', -1, 64))
}

var _ ForecastSource = (*WeatherAPIProvider)(nil)
