// Package waybar builds the JSON payloads printed for status bar modules.
package waybar

import (
	"encoding/json"
	"io"
	"strings"

	"weatherboy/models"
	"weatherboy/render"
)

// Payload is a waybar custom module object
type Payload struct {
	Text    string `json:"text"`
	Tooltip string `json:"tooltip,omitempty"`
	Class   string `json:"class,omitempty"`
}

// Fallback is printed instead of a Payload when the current condition could
// not be fetched, so the bar never shows malformed output
type Fallback struct {
	Temp      string `json:"temp"`
	Condition string `json:"condition"`
	Icon      string `json:"icon"`
}

// Unavailable is the fixed fallback payload
var Unavailable = Fallback{Temp: "N/A", Condition: "Unavailable", Icon: string(defaultGlyph)}

// Glyph is a Nerd Font weather icon
type Glyph string

const (
	glyphSunny        Glyph = "\ue30d"
	glyphPartlyCloudy Glyph = "\ue302"
	glyphCloudy       Glyph = "\uf0c2"
	glyphRainPossible Glyph = "\ue316"
	glyphRain         Glyph = "\ue317"
	glyphHeavyRain    Glyph = "\ue318"
	glyphFog          Glyph = "\ue313"
	glyphLightSnow    Glyph = "\ue360"
	glyphHeavySnow    Glyph = "\ue35e"
	glyphThunder      Glyph = "\ue31d"
	glyphDrizzle      Glyph = "\ue31b"

	// defaultGlyph is used for conditions missing from conditionGlyphs
	defaultGlyph = glyphCloudy
)

// conditionGlyphs lists the wttr.in condition texts we have icons for
var conditionGlyphs = []struct {
	condition string
	glyph     Glyph
}{
	{"Clear", glyphSunny},
	{"Sunny", glyphSunny},
	{"Partly cloudy", glyphPartlyCloudy},
	{"Cloudy", glyphCloudy},
	{"Overcast", glyphCloudy},
	{"Patchy rain possible", glyphRainPossible},
	{"Light rain", glyphRain},
	{"Showers", glyphRain},
	{"Moderate rain", glyphRain},
	{"Heavy rain", glyphHeavyRain},
	{"Torrential rain", glyphHeavyRain},
	{"Mist", glyphFog},
	{"Fog", glyphFog},
	{"Patchy snow possible", glyphLightSnow},
	{"Light snow", glyphLightSnow},
	{"Moderate snow", glyphHeavySnow},
	{"Heavy snow", glyphHeavySnow},
	{"Thunderstorm", glyphThunder},
	{"Drizzle", glyphDrizzle},
}

// GlyphFor returns the icon for a condition text. Matching ignores case and
// surrounding whitespace; unknown conditions get the cloud icon.
func GlyphFor(condition string) Glyph {
	condition = strings.TrimSpace(condition)
	for _, cg := range conditionGlyphs {
		if strings.EqualFold(cg.condition, condition) {
			return cg.glyph
		}
	}
	return defaultGlyph
}

// Current builds the payload for the current condition
func Current(c models.Condition) Payload {
	return Payload{
		Text:    string(GlyphFor(c.Description)) + " " + c.Temperature + c.Unit,
		Tooltip: c.Description,
		Class:   strings.ReplaceAll(strings.ToLower(c.Description), " ", "-"),
	}
}

// Day builds the payload for one stored forecast day
func Day(d models.DaySummary, u render.Units) Payload {
	return Payload{
		Text: d.Weekday + "  Lo: " + render.Number(d.TempMin) + u.Temp +
			" Hi: " + render.Number(d.TempMax) + u.Temp + " " + d.Line(),
	}
}

// Write prints v as a single line of JSON
func Write(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
