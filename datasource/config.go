package datasource

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"weatherboy/models"
)

// Provider names accepted in the configuration
const (
	ProviderOpenWeatherMap = "openweathermap"
	ProviderWeatherAPI     = "weatherapi"
	ProviderWttr           = "wttr"
)

// ErrMissingAPIKey is returned when the selected provider needs a key that
// is not configured
var ErrMissingAPIKey = errors.New("missing API key")

// Duration is a time.Duration read from a JSON string such as "10s"
type Duration struct {
	time.Duration
}

// UnmarshalJSON accepts a duration string or a number of seconds
func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch val := v.(type) {
	case string:
		parsed, err := time.ParseDuration(val)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", val, err)
		}
		d.Duration = parsed
	case float64:
		d.Duration = time.Duration(val * float64(time.Second))
	default:
		return fmt.Errorf("invalid duration %s", b)
	}
	return nil
}

// MarshalJSON writes the duration as a string
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// Config represents the application configuration
type Config struct {
	// Where to fetch the forecast for
	Location models.Location `json:"location"`

	// Unit system passed to the providers: imperial, metric or standard
	Units string `json:"units"`

	// Forecast provider: openweathermap or weatherapi
	ForecastProvider string `json:"forecastProvider"`

	// Current condition provider for the status bar: wttr or openweathermap
	ConditionProvider string `json:"conditionProvider"`

	// API provider configurations
	OpenWeatherMap struct {
		APIKey string `json:"apiKey"`
	} `json:"openWeatherMap"`

	WeatherAPI struct {
		APIKey string `json:"apiKey"`
		Days   int    `json:"days"`
	} `json:"weatherAPI"`

	// Output locations
	DataDir        string `json:"dataDir"`
	CycleIndexFile string `json:"cycleIndexFile"`

	// SQLite history archive, disabled when empty
	ArchivePath string `json:"archivePath"`

	HTTPTimeout Duration `json:"httpTimeout"`
	LogLevel    string   `json:"logLevel"`

	Server struct {
		Port         int     `json:"port"`
		RefreshRPS   float64 `json:"refreshRPS"`
		RefreshBurst int     `json:"refreshBurst"`
	} `json:"server"`
}

// DefaultConfig creates a default configuration
func DefaultConfig() *Config {
	config := &Config{}
	config.Location = models.Location{Name: "Raleigh", Latitude: 35.7796, Longitude: -78.6382}
	config.Units = "imperial"
	config.ForecastProvider = ProviderOpenWeatherMap
	config.ConditionProvider = ProviderWttr
	config.WeatherAPI.Days = 5
	config.DataDir = "weather_data"
	config.HTTPTimeout = Duration{10 * time.Second}
	config.LogLevel = "info"
	config.Server.Port = 8080
	config.Server.RefreshRPS = 1.0 / 60 // one on-demand refresh per minute
	config.Server.RefreshBurst = 1
	return config
}

// LoadConfig loads configuration from a JSON file on top of the defaults
func LoadConfig(filename string) (*Config, error) {
	config := DefaultConfig()

	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	return config, nil
}

// Load builds the configuration for a binary: defaults, then the JSON file
// when filename is not empty, then environment overrides.
func Load(filename string) (*Config, error) {
	config := DefaultConfig()
	if filename != "" {
		var err error
		if config, err = LoadConfig(filename); err != nil {
			return nil, err
		}
	}
	config.ApplyEnv()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadEnv loads .env files into the environment. Missing files are not an error.
func LoadEnv(files ...string) error {
	err := godotenv.Load(files...)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// ApplyEnv overrides configuration values from environment variables
func (c *Config) ApplyEnv() {
	if v := os.Getenv("OPENWEATHERMAP_API_KEY"); v != "" {
		c.OpenWeatherMap.APIKey = v
	}
	if v := os.Getenv("WEATHERAPI_KEY"); v != "" {
		c.WeatherAPI.APIKey = v
	}
	if v := os.Getenv("WEATHERBOY_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("WEATHERBOY_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// Validate checks the values that have a fixed set of choices
func (c *Config) Validate() error {
	switch c.Units {
	case "imperial", "metric", "standard":
	default:
		return fmt.Errorf("invalid units %q: want imperial, metric or standard", c.Units)
	}
	switch c.ForecastProvider {
	case ProviderOpenWeatherMap, ProviderWeatherAPI:
	default:
		return fmt.Errorf("invalid forecastProvider %q", c.ForecastProvider)
	}
	switch c.ConditionProvider {
	case ProviderWttr, ProviderOpenWeatherMap:
	default:
		return fmt.Errorf("invalid conditionProvider %q", c.ConditionProvider)
	}
	if c.HTTPTimeout.Duration <= 0 {
		return fmt.Errorf("httpTimeout must be positive")
	}
	return nil
}

// IndexPath returns the rotating index file, by default next to the data files
func (c *Config) IndexPath() string {
	if c.CycleIndexFile != "" {
		return c.CycleIndexFile
	}
	return filepath.Join(c.DataDir, ".weather_cycle_index")
}

// ForecastSource creates the configured forecast provider
func (c *Config) ForecastSource() (ForecastSource, error) {
	switch c.ForecastProvider {
	case ProviderWeatherAPI:
		if c.WeatherAPI.APIKey == "" {
			return nil, fmt.Errorf("%w: set WEATHERAPI_KEY", ErrMissingAPIKey)
		}
		return NewWeatherAPIProvider(c.WeatherAPI.APIKey, c.Units, c.WeatherAPI.Days, c.HTTPTimeout.Duration), nil
	default:
		if c.OpenWeatherMap.APIKey == "" {
			return nil, fmt.Errorf("%w: set OPENWEATHERMAP_API_KEY", ErrMissingAPIKey)
		}
		return NewOpenWeatherMapProvider(c.OpenWeatherMap.APIKey, c.Units, c.HTTPTimeout.Duration), nil
	}
}

// ConditionSource creates the configured current-condition provider.
// wttr.in needs no key, so it is also the fallback when no OpenWeatherMap key is set.
func (c *Config) ConditionSource() ConditionSource {
	if c.ConditionProvider == ProviderOpenWeatherMap && c.OpenWeatherMap.APIKey != "" {
		return NewOWMCurrentProvider(c.OpenWeatherMap.APIKey, c.Units, c.HTTPTimeout.Duration)
	}
	return NewWttrProvider(c.Units, c.HTTPTimeout.Duration)
}

// Logger creates a text logger at the configured level. Status bar binaries
// pass stderr so stdout only carries their JSON.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
