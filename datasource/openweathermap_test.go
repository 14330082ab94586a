package datasource

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"weatherboy/models"
)

const owmForecastBody = `{
  "cod": "200",
  "list": [
    {"dt": 1717200000, "main": {"temp": 71.6, "humidity": 60}, "weather": [{"description": "light rain"}],
     "clouds": {"all": 75}, "wind": {"speed": 8.2}, "pop": 0.8, "dt_txt": "2024-06-01 00:00:00"},
    {"dt": 1717210800, "main": {"temp": 68.1, "humidity": 72}, "weather": [],
     "clouds": {"all": 40}, "wind": {"speed": 4.5}, "dt_txt": "2024-06-01 03:00:00"}
  ],
  "city": {"name": "Raleigh", "country": "US"}
}`

var raleigh = models.Location{Name: "Raleigh", Latitude: 35.7796, Longitude: -78.6382}

func TestOpenWeatherMap_FetchForecast(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/forecast" {
			t.Errorf("path = %s", r.URL.Path)
		}
		q := r.URL.Query()
		gotQuery = map[string]string{"lat": q.Get("lat"), "lon": q.Get("lon"), "units": q.Get("units"), "appid": q.Get("appid")}
		w.Write([]byte(owmForecastBody))
	}))
	defer srv.Close()

	p := NewOpenWeatherMapProvider("k3y", "imperial", time.Second).WithBaseURL(srv.URL)
	samples, err := p.FetchForecast(context.Background(), raleigh)
	if err != nil {
		t.Fatalf("FetchForecast failed: %v", err)
	}

	want := map[string]string{"lat": "35.7796", "lon": "-78.6382", "units": "imperial", "appid": "k3y"}
	for k, v := range want {
		if gotQuery[k] != v {
			t.Errorf("query %s = %q, want %q", k, gotQuery[k], v)
		}
	}

	if len(samples) != 2 {
		t.Fatalf("got %d samples", len(samples))
	}
	first := samples[0]
	if first.PrecipProb != 80 || first.Humidity != 60 || first.Cloudiness != 75 || first.WindSpeed != 8.2 {
		t.Errorf("first sample = %+v", first)
	}
	if first.Description != "light rain" {
		t.Errorf("description = %q", first.Description)
	}
	if got := first.Time.Format(time.DateTime); got != "2024-06-01 00:00:00" {
		t.Errorf("time = %s, want UTC dt_txt", got)
	}
	if samples[1].Description != "" || samples[1].PrecipProb != 0 {
		t.Errorf("second sample = %+v", samples[1])
	}
}

func TestOpenWeatherMap_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		network bool
	}{
		{"unauthorized", http.StatusUnauthorized, `{"cod":401,"message":"Invalid API key"}`, true},
		{"bad json", http.StatusOK, `{"list": [`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			p := NewOpenWeatherMapProvider("k", "imperial", time.Second).WithBaseURL(srv.URL)
			_, err := p.FetchForecast(context.Background(), raleigh)

			var netErr *NetworkError
			var parseErr *ParseError
			switch {
			case tt.network && !errors.As(err, &netErr):
				t.Fatalf("error = %v, want NetworkError", err)
			case tt.network && netErr.StatusCode != tt.status:
				t.Errorf("status = %d", netErr.StatusCode)
			case !tt.network && !errors.As(err, &parseErr):
				t.Fatalf("error = %v, want ParseError", err)
			}
		})
	}
}

func TestOpenWeatherMap_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	p := NewOpenWeatherMapProvider("k", "imperial", 20*time.Millisecond).WithBaseURL(srv.URL)
	_, err := p.FetchForecast(context.Background(), raleigh)

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("error = %v, want NetworkError", err)
	}
}
