package render

import (
	"html/template"
	"io"

	"weatherboy/models"
)

var htmlTmpl = template.Must(template.New("html").Funcs(template.FuncMap{"num": Number}).Parse(
	`<html><body><h1>{{.Title}}</h1>
{{range .Days}}<div class="day" data-date="{{.Date}}">
  <h2>{{.Weekday}} {{.Date}}</h2>
  <p><strong>{{num .TempMin}}{{$.Units.Temp}} / {{num .TempMax}}{{$.Units.Temp}}</strong></p>
  <p class="summary">{{.Line}}</p>
  <ul>
    <li>Precip: {{num .AvgPrecipProb}}%</li>
    <li>Humidity: {{num .AvgHumidity}}%</li>
    <li>Wind: {{num .AvgWind}} {{$.Units.Wind}}</li>
    <li>Clouds: {{num .AvgCloudiness}}%</li>
  </ul>
</div>
{{end}}</body></html>
`))

// HTML writes a standalone document with one div per day. Descriptions are
// escaped.
func HTML(w io.Writer, days []models.DaySummary, u Units) error {
	return htmlTmpl.Execute(w, document{Title: Title, Units: u, Days: days})
}
