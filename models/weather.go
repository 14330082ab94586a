package models

// Location identifies the place a forecast or reading is requested for
type Location struct {
	Name      string  `json:"name"` // city name, used by providers that query by name
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Condition is a single current-weather reading
type Condition struct {
	Provider    string `json:"provider"`
	Temperature string `json:"temperature"` // as reported, e.g. "72"
	Unit        string `json:"unit"`        // e.g. "°F"
	Description string `json:"description"` // e.g. "Partly cloudy"
}
