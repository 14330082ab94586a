package render

import (
	"io"
	"text/template"

	"weatherboy/models"
)

var funcs = template.FuncMap{"num": Number}

var markdownTmpl = template.Must(template.New("markdown").Funcs(funcs).Parse(
	`# {{.Title}}
{{range .Days}}
**{{.Weekday}} {{.Date}}**  
{{num .TempMin}}{{$.Units.Temp}} / {{num .TempMax}}{{$.Units.Temp}}  
{{.Line}}  
Precip: {{num .AvgPrecipProb}}%  
Humidity: {{num .AvgHumidity}}%  
Wind: {{num .AvgWind}} {{$.Units.Wind}}  
Clouds: {{num .AvgCloudiness}}%  
{{end}}`))

type document struct {
	Title string
	Units Units
	Days  []models.DaySummary
}

// Markdown writes one section per day
func Markdown(w io.Writer, days []models.DaySummary, u Units) error {
	return markdownTmpl.Execute(w, document{Title: Title, Units: u, Days: days})
}
