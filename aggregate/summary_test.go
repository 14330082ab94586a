package aggregate

import (
	"reflect"
	"testing"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name                           string
		desc                           string
		precip, humidity, wind, clouds float64
		want                           []string
	}{
		{"neutral", "scattered clouds", 0, 50, 10, 50, []string{"Scattered clouds"}},
		{"likely rain", "light rain", 70, 50, 10, 50, []string{"Light rain", "likely rain"}},
		{"chance of showers", "light rain", 30.1, 50, 10, 50, []string{"Light rain", "chance of showers"}},
		{"slight chance upper bound", "light rain", 30, 50, 10, 50, []string{"Light rain", "slight chance"}},
		{"slight chance lower bound", "light rain", 10, 50, 10, 50, []string{"Light rain"}},
		{"dry calm clear", "clear sky", 0, 30, 5, 20, []string{"Clear sky", "dry", "calm", "mostly clear"}},
		{"humid windy overcast", "OVERCAST CLOUDS", 0, 80, 15, 80, []string{"Overcast clouds", "humid", "windy", "overcast"}},
		{"everything", "thunderstorm", 75, 85, 20, 90, []string{"Thunderstorm", "likely rain", "humid", "windy", "overcast"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Segments(Describe(tt.desc, tt.precip, tt.humidity, tt.wind, tt.clouds))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("segments = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCapitalize(t *testing.T) {
	tests := map[string]string{
		"":           "",
		"light rain": "Light rain",
		"HEAVY SNOW": "Heavy snow",
		"élan vital": "Élan vital",
		"x":          "X",
	}
	for in, want := range tests {
		if got := capitalize(in); got != want {
			t.Errorf("capitalize(%q) = %q, want %q", in, got, want)
		}
	}
}
