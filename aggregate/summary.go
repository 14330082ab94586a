package aggregate

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const segmentSep = " • "

// Describe builds the summary text for a day: the capitalized description
// followed by whichever precipitation, humidity, wind and cloud phrases apply.
func Describe(desc string, precip, humidity, wind, clouds float64) string {
	segments := []string{capitalize(desc)}

	switch {
	case precip >= 70:
		segments = append(segments, "likely rain")
	case precip > 30 && precip < 70:
		segments = append(segments, "chance of showers")
	case precip > 10 && precip <= 30:
		segments = append(segments, "slight chance")
	}

	switch {
	case humidity >= 80:
		segments = append(segments, "humid")
	case humidity <= 30:
		segments = append(segments, "dry")
	}

	switch {
	case wind >= 15:
		segments = append(segments, "windy")
	case wind <= 5:
		segments = append(segments, "calm")
	}

	switch {
	case clouds >= 80:
		segments = append(segments, "overcast")
	case clouds <= 20:
		segments = append(segments, "mostly clear")
	}

	return strings.Join(segments, segmentSep)
}

// Segments splits a summary produced by Describe back into its parts.
func Segments(summary string) []string {
	return strings.Split(summary, segmentSep)
}

// capitalize upper-cases the first letter and lower-cases the rest. A Caser
// is stateful, so one is made per call.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return strings.ToUpper(string(r)) + cases.Lower(language.English).String(s[size:])
}
