package aggregate

import "strings"

// Icon is a Nerd Font weather glyph
type Icon string

// Base icons, one per weather category
const (
	IconThunderstorm Icon = "\ue31d"
	IconSnow         Icon = "\ue31a"
	IconRain         Icon = "\ue318"
	IconOvercast     Icon = "\ue312"
	IconCloud        Icon = "\uf0c2"
	IconClear        Icon = "\ue30d"
)

// Modifier icons appended after the base icon
const (
	ModRainLikely Icon = "\ue371"
	ModHumid      Icon = "\ue373"
	ModWindy      Icon = "\ue34b"
	ModOvercast   Icon = "\ue312"
)

// iconRule maps a description keyword to a base icon. Rules are checked in
// order and the first match wins.
type iconRule struct {
	keyword string
	icon    func(desc string) Icon
}

func fixed(i Icon) func(string) Icon {
	return func(string) Icon { return i }
}

var iconRules = []iconRule{
	{"thunder", fixed(IconThunderstorm)},
	{"snow", fixed(IconSnow)},
	{"rain", fixed(IconRain)},
	{"cloud", func(desc string) Icon {
		if strings.Contains(desc, "overcast") {
			return IconOvercast
		}
		return IconCloud
	}},
	{"clear", fixed(IconClear)},
}

// fallbackIcon is used when no rule matches the description
const fallbackIcon = IconCloud

// BaseIcon picks the category icon for a weather description.
func BaseIcon(desc string) Icon {
	desc = strings.ToLower(desc)
	for _, r := range iconRules {
		if strings.Contains(desc, r.keyword) {
			return r.icon(desc)
		}
	}
	return fallbackIcon
}

// Modifiers returns the modifier icons for the averaged metrics, in the
// order precipitation, humidity, wind, cloudiness.
func Modifiers(precip, humidity, wind, clouds float64) []Icon {
	var mods []Icon
	if precip >= 70 {
		mods = append(mods, ModRainLikely)
	}
	if humidity >= 80 {
		mods = append(mods, ModHumid)
	}
	if wind >= 15 {
		mods = append(mods, ModWindy)
	}
	if clouds >= 80 {
		mods = append(mods, ModOvercast)
	}
	return mods
}

// IconLine joins the base icon and its modifiers with single spaces.
func IconLine(desc string, precip, humidity, wind, clouds float64) string {
	parts := []string{string(BaseIcon(desc))}
	for _, m := range Modifiers(precip, humidity, wind, clouds) {
		parts = append(parts, string(m))
	}
	return strings.Join(parts, " ")
}
