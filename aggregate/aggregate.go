// Package aggregate turns hourly or 3-hourly forecast samples into one
// summary per calendar date.
package aggregate

import (
	"math"
	"time"

	"weatherboy/models"
)

// bucket accumulates every sample that shares a calendar date
type bucket struct {
	date   time.Time
	temps  []float64
	precip []float64
	humid  []float64
	wind   []float64
	clouds []float64

	// descriptions in the order they were first seen, with their counts
	descs  []string
	counts map[string]int
}

func newBucket(t time.Time) *bucket {
	y, m, d := t.Date()
	return &bucket{
		date:   time.Date(y, m, d, 0, 0, 0, 0, t.Location()),
		counts: make(map[string]int),
	}
}

func (b *bucket) add(s models.Sample) {
	b.temps = append(b.temps, s.Temperature)
	b.precip = append(b.precip, s.PrecipProb)
	b.humid = append(b.humid, s.Humidity)
	b.wind = append(b.wind, s.WindSpeed)
	b.clouds = append(b.clouds, s.Cloudiness)

	if _, seen := b.counts[s.Description]; !seen {
		b.descs = append(b.descs, s.Description)
	}
	b.counts[s.Description]++
}

// dominant returns the most frequent description. Ties go to the
// description that was seen first.
func (b *bucket) dominant() string {
	best, bestCount := "", 0
	for _, d := range b.descs {
		if c := b.counts[d]; c > bestCount {
			best, bestCount = d, c
		}
	}
	return best
}

func (b *bucket) summarize() models.DaySummary {
	lo, hi := b.temps[0], b.temps[0]
	for _, t := range b.temps[1:] {
		lo = math.Min(lo, t)
		hi = math.Max(hi, t)
	}

	weather := b.dominant()
	precip := round1(mean(b.precip))
	humid := round1(mean(b.humid))
	wind := round1(mean(b.wind))
	clouds := round1(mean(b.clouds))

	return models.DaySummary{
		Date:          b.date.Format(time.DateOnly),
		Weekday:       b.date.Weekday().String()[:3],
		TempMin:       lo,
		TempMax:       hi,
		Weather:       weather,
		AvgPrecipProb: precip,
		AvgHumidity:   humid,
		AvgWind:       wind,
		AvgCloudiness: clouds,
		Icon:          IconLine(weather, precip, humid, wind, clouds),
		Summary:       Describe(weather, precip, humid, wind, clouds),
	}
}

// Days groups samples by the calendar date of their timestamp, in the
// timestamp's own location, and summarizes each date. Summaries come back in
// the order their dates first appear in samples.
func Days(samples []models.Sample) []models.DaySummary {
	buckets := make(map[string]*bucket)
	var order []string

	for _, s := range samples {
		key := s.Time.Format(time.DateOnly)
		b, ok := buckets[key]
		if !ok {
			b = newBucket(s.Time)
			buckets[key] = b
			order = append(order, key)
		}
		b.add(s)
	}

	days := make([]models.DaySummary, 0, len(order))
	for _, key := range order {
		days = append(days, buckets[key].summarize())
	}
	return days
}

func mean(vals []float64) float64 {
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// round1 rounds to one decimal place, halves away from zero.
func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
