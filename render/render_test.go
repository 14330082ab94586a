package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"weatherboy/models"
)

func testDays() []models.DaySummary {
	return []models.DaySummary{
		{
			Date: "2025-06-02", Weekday: "Mon", TempMin: 61.2, TempMax: 80,
			Weather: "light rain", AvgPrecipProb: 40, AvgHumidity: 71.5, AvgWind: 8.3, AvgCloudiness: 55,
			Icon: "\ue318", Summary: "Light rain • chance of showers",
		},
		{
			Date: "2025-06-03", Weekday: "Tue", TempMin: 58, TempMax: 77.45,
			Weather: "clear sky <b>", AvgPrecipProb: 0, AvgHumidity: 25, AvgWind: 3, AvgCloudiness: 10,
			Icon: "\ue30d", Summary: "Clear sky <b> • dry • calm • mostly clear",
		},
	}
}

func TestJSON_RoundTrips(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, testDays()); err != nil {
		t.Fatal(err)
	}

	var got []models.DaySummary
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if len(got) != 2 || got[1] != testDays()[1] {
		t.Errorf("decoded %+v", got)
	}
	if !strings.Contains(buf.String(), `"avg_precip_prob_%": 40`) {
		t.Errorf("missing original key names:\n%s", buf.String())
	}
}

func TestJSON_EmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("got %q, want []", buf.String())
	}
}

func TestMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := Markdown(&buf, testDays(), UnitsFor("imperial")); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "# "+Title+"\n") {
		t.Errorf("missing heading:\n%s", out)
	}
	for _, want := range []string{
		"**Mon 2025-06-02**  \n",
		"61.2°F / 80.0°F  \n",
		"\ue318 Light rain • chance of showers  \n",
		"Precip: 40.0%  \n",
		"Wind: 8.3 mph  \n",
		"**Tue 2025-06-03**  \n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q:\n%s", want, out)
		}
	}
	if n := strings.Count(out, "**"); n != 4 {
		t.Errorf("expected 2 day headings, found %d markers", n)
	}
}

func TestHTML_OneDivPerDay(t *testing.T) {
	var buf bytes.Buffer
	if err := HTML(&buf, testDays(), UnitsFor("metric")); err != nil {
		t.Fatal(err)
	}

	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		t.Fatal(err)
	}

	if got := doc.Find("h1").Text(); got != Title {
		t.Errorf("h1 = %q", got)
	}

	days := doc.Find("div.day")
	if days.Length() != 2 {
		t.Fatalf("found %d day divs, want 2", days.Length())
	}

	first := days.First()
	if date, _ := first.Attr("data-date"); date != "2025-06-02" {
		t.Errorf("data-date = %q", date)
	}
	if got := first.Find("h2").Text(); got != "Mon 2025-06-02" {
		t.Errorf("h2 = %q", got)
	}
	if got := first.Find("strong").Text(); got != "61.2°C / 80.0°C" {
		t.Errorf("temps = %q", got)
	}
	if got := first.Find("li").Length(); got != 4 {
		t.Errorf("found %d list items, want 4", got)
	}
	if got := first.Find("li").Eq(2).Text(); got != "Wind: 8.3 m/s" {
		t.Errorf("wind = %q", got)
	}

	// the description is escaped, so no stray <b> element shows up
	if doc.Find("div.day b").Length() != 0 {
		t.Error("description was not escaped")
	}
	if got := days.Last().Find("p.summary").Text(); !strings.Contains(got, "Clear sky <b>") {
		t.Errorf("summary = %q", got)
	}
}

func TestConsole(t *testing.T) {
	var buf bytes.Buffer
	if err := Console(&buf, testDays()[:1], UnitsFor("imperial")); err != nil {
		t.Fatal(err)
	}
	want := "Mon 2025-06-02 - 61.2°F / 80.0°F\n   \ue318 Light rain • chance of showers. Precip: 40.0%, Humidity: 71.5%, Wind: 8.3 mph, Clouds: 55.0%\n"
	if !strings.Contains(buf.String(), want) {
		t.Errorf("console output:\n%q\nwant to contain:\n%q", buf.String(), want)
	}
}

func TestNum(t *testing.T) {
	tests := map[float64]string{40: "40.0", 12.3: "12.3", 0: "0.0", -2.5: "-2.5", 77.45: "77.45"}
	for in, want := range tests {
		if got := Number(in); got != want {
			t.Errorf("Number(%v) = %q, want %q", in, got, want)
		}
	}
}
