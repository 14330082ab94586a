// Package render formats day summaries as JSON, Markdown, HTML and plain
// console text.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"weatherboy/models"
)

// Title heads the Markdown and HTML documents
const Title = "5-Day Weather Forecast"

// Units are the labels printed next to temperatures and wind speeds
type Units struct {
	Temp string
	Wind string
}

// UnitsFor returns the labels for an OpenWeatherMap style unit system:
// "imperial", "metric" or "standard". Anything else is treated as imperial.
func UnitsFor(system string) Units {
	switch system {
	case "metric":
		return Units{Temp: "°C", Wind: "m/s"}
	case "standard":
		return Units{Temp: "K", Wind: "m/s"}
	default:
		return Units{Temp: "°F", Wind: "mph"}
	}
}

// JSON writes days as an indented JSON array
func JSON(w io.Writer, days []models.DaySummary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if days == nil {
		days = []models.DaySummary{}
	}
	return enc.Encode(days)
}

// Console writes the plain listing printed after a forecast run
func Console(w io.Writer, days []models.DaySummary, u Units) error {
	if _, err := fmt.Fprintf(w, "\n%s:\n", Title); err != nil {
		return err
	}
	for _, d := range days {
		_, err := fmt.Fprintf(w, "%s %s - %s%s / %s%s\n   %s. Precip: %s%%, Humidity: %s%%, Wind: %s %s, Clouds: %s%%\n\n",
			d.Weekday, d.Date, Number(d.TempMin), u.Temp, Number(d.TempMax), u.Temp,
			d.Line(), Number(d.AvgPrecipProb), Number(d.AvgHumidity), Number(d.AvgWind), u.Wind, Number(d.AvgCloudiness))
		if err != nil {
			return err
		}
	}
	return nil
}

// Number prints a value with the fewest digits that round-trip, always keeping
// one decimal place so 40 shows as 40.0.
func Number(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if strings.ContainsRune(s, '.') {
		return s
	}
	return s + ".0"
}
