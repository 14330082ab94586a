package models

import (
	"strings"
	"time"
)

// Sample is a single forecast point as reported by a provider
type Sample struct {
	Time        time.Time `json:"time"`        // time this sample is for
	Temperature float64   `json:"temperature"` // in the configured units
	PrecipProb  float64   `json:"precipProb"`  // percentage, 0-100
	Humidity    float64   `json:"humidity"`    // percentage
	WindSpeed   float64   `json:"windSpeed"`   // mph for imperial, m/s otherwise
	Cloudiness  float64   `json:"cloudiness"`  // percentage
	Description string    `json:"description"` // short text description
}

// DaySummary is the aggregate of every sample that falls on one calendar date.
// The JSON keys match the files the status bar widgets read.
type DaySummary struct {
	Date          string  `json:"date"`    // YYYY-MM-DD
	Weekday       string  `json:"weekday"` // Mon, Tue, ...
	TempMin       float64 `json:"temp_min"`
	TempMax       float64 `json:"temp_max"`
	Weather       string  `json:"weather"` // dominant description
	AvgPrecipProb float64 `json:"avg_precip_prob_%"`
	AvgHumidity   float64 `json:"avg_humidity_%"`
	AvgWind       float64 `json:"avg_wind_mph"`
	AvgCloudiness float64 `json:"avg_cloudiness_%"`
	Icon          string  `json:"icon"`    // base glyph followed by modifier glyphs
	Summary       string  `json:"summary"` // human readable description
}

// Line returns the icon glyphs followed by the summary text
func (d DaySummary) Line() string {
	if d.Icon == "" {
		return d.Summary
	}
	return strings.TrimSpace(d.Icon + " " + d.Summary)
}
