package datasource

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"weatherboy/models"
)

// WttrProvider reads the current condition from wttr.in
type WttrProvider struct {
	units      string
	baseURL    string
	httpClient *http.Client
}

// NewWttrProvider creates a wttr.in condition source
func NewWttrProvider(units string, timeout time.Duration) *WttrProvider {
	return &WttrProvider{
		units:   units,
		baseURL: "https://wttr.in",
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// WithBaseURL points the provider at a different host
func (p *WttrProvider) WithBaseURL(u string) *WttrProvider {
	p.baseURL = u
	return p
}

// Name returns the provider name
func (p *WttrProvider) Name() string {
	return "wttr.in"
}

type wttrResponse struct {
	CurrentCondition []struct {
		TempC       string `json:"temp_C"`
		TempF       string `json:"temp_F"`
		WeatherDesc []struct {
			Value string `json:"value"`
		} `json:"weatherDesc"`
	} `json:"current_condition"`
}

// CurrentCondition fetches the current reading for the location name
func (p *WttrProvider) CurrentCondition(ctx context.Context, loc models.Location) (models.Condition, error) {
	endpoint := fmt.Sprintf("%s/%s?format=j1", p.baseURL, url.PathEscape(loc.Name))

	var response wttrResponse
	if err := getJSON(ctx, p.httpClient, p.Name(), endpoint, &response); err != nil {
		return models.Condition{}, err
	}

	if len(response.CurrentCondition) == 0 {
		return models.Condition{}, &ParseError{Provider: p.Name(), Err: errors.New("no current_condition in response")}
	}
	cur := response.CurrentCondition[0]

	cond := models.Condition{Provider: p.Name(), Temperature: cur.TempF, Unit: "°F"}
	if p.units == "metric" || p.units == "standard" {
		cond.Temperature, cond.Unit = cur.TempC, "°C"
	}
	if len(cur.WeatherDesc) > 0 {
		cond.Description = cur.WeatherDesc[0].Value
	}
	if cond.Temperature == "" {
		return models.Condition{}, &ParseError{Provider: p.Name(), Err: errors.New("missing temperature")}
	}
	return cond, nil
}

var _ ConditionSource = (*WttrProvider)(nil)
