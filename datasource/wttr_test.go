package datasource

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	owm "github.com/briandowns/openweathermap"
)

func TestWttr_CurrentCondition(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/Raleigh" || r.URL.Query().Get("format") != "j1" {
			t.Errorf("unexpected request %s", r.URL)
		}
		w.Write([]byte(`{"current_condition":[{"temp_C":"22","temp_F":"72","weatherDesc":[{"value":"Partly cloudy"}]}]}`))
	}))
	defer srv.Close()

	tests := []struct {
		units, temp, unit string
	}{
		{"imperial", "72", "°F"},
		{"metric", "22", "°C"},
	}
	for _, tt := range tests {
		p := NewWttrProvider(tt.units, time.Second).WithBaseURL(srv.URL)
		cond, err := p.CurrentCondition(context.Background(), raleigh)
		if err != nil {
			t.Fatalf("%s: %v", tt.units, err)
		}
		if cond.Temperature != tt.temp || cond.Unit != tt.unit || cond.Description != "Partly cloudy" {
			t.Errorf("%s: condition = %+v", tt.units, cond)
		}
	}
}

func TestWttr_EmptyCondition(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"current_condition":[]}`))
	}))
	defer srv.Close()

	_, err := NewWttrProvider("imperial", time.Second).WithBaseURL(srv.URL).CurrentCondition(context.Background(), raleigh)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("error = %v, want ParseError", err)
	}
}

func TestWttr_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unknown location", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewWttrProvider("imperial", time.Second).WithBaseURL(srv.URL).CurrentCondition(context.Background(), raleigh)
	var netErr *NetworkError
	if !errors.As(err, &netErr) || netErr.StatusCode != http.StatusNotFound {
		t.Fatalf("error = %v, want 404 NetworkError", err)
	}
}

func TestConditionFromOWM(t *testing.T) {
	data := &owm.CurrentWeatherData{}
	data.Main.Temp = 71.6
	data.Weather = []owm.Weather{{Description: "few clouds"}}

	cond := conditionFromOWM("OpenWeatherMap", data, "imperial")
	if cond.Temperature != "72" || cond.Unit != "°F" || cond.Description != "Few clouds" {
		t.Errorf("condition = %+v", cond)
	}

	cond = conditionFromOWM("OpenWeatherMap", &owm.CurrentWeatherData{}, "metric")
	if cond.Unit != "°C" || cond.Description != "" {
		t.Errorf("condition = %+v", cond)
	}
}

func TestOWMCurrent_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewOWMCurrentProvider("k", "imperial", time.Second).CurrentCondition(ctx, raleigh)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}
