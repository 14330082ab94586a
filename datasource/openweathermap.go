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

// OpenWeatherMapProvider fetches the 5 day / 3 hour forecast from OpenWeatherMap
type OpenWeatherMapProvider struct {
	apiKey     string
	units      string
	baseURL    string
	httpClient *http.Client
}

// NewOpenWeatherMapProvider creates a new OpenWeatherMap forecast source.
// units is one of "imperial", "metric" or "standard".
func NewOpenWeatherMapProvider(apiKey, units string, timeout time.Duration) *OpenWeatherMapProvider {
	return &OpenWeatherMapProvider{
		apiKey:  apiKey,
		units:   units,
		baseURL: "https://api.openweathermap.org/data/2.5",
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// WithBaseURL points the provider at a different API root
func (p *OpenWeatherMapProvider) WithBaseURL(u string) *OpenWeatherMapProvider {
	p.baseURL = u
	return p
}

// Name returns the provider name
func (p *OpenWeatherMapProvider) Name() string {
	return "OpenWeatherMap"
}

// owmForecastResponse is the subset of /forecast we read
type owmForecastResponse struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity float64 `json:"humidity"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Clouds struct {
			All float64 `json:"all"` // Cloudiness percentage
		} `json:"clouds"`
		Pop float64 `json:"pop"` // Probability of precipitation, 0-1
	} `json:"list"`
}

// FetchForecast fetches the forecast for the location's coordinates.
// Sample times are UTC, matching the API's dt_txt dates.
func (p *OpenWeatherMapProvider) FetchForecast(ctx context.Context, loc models.Location) ([]models.Sample, error) {
	params := url.Values{}
	params.Add("lat", strconv.FormatFloat(loc.Latitude, 'f', -1, 64))
	params.Add("lon", strconv.FormatFloat(loc.Longitude, 'f', -1, 64))
	params.Add("units", p.units)
	params.Add("appid", p.apiKey)
	endpoint := fmt.Sprintf("%s/forecast?%s", p.baseURL, params.Encode())

	var response owmForecastResponse
	if err := getJSON(ctx, p.httpClient, p.Name(), endpoint, &response); err != nil {
		return nil, err
	}

	samples := make([]models.Sample, 0, len(response.List))
	for _, item := range response.List {
		description := ""
		if len(item.Weather) > 0 {
			description = item.Weather[0].Description
		}

		samples = append(samples, models.Sample{
			Time:        time.Unix(item.Dt, 0).UTC(),
			Temperature: item.Main.Temp,
			PrecipProb:  item.Pop * 100,
			Humidity:    item.Main.Humidity,
			WindSpeed:   item.Wind.Speed,
			Cloudiness:  item.Clouds.All,
			Description: description,
		})
	}

	return samples, nil
}

var _ ForecastSource = (*OpenWeatherMapProvider)(nil)
