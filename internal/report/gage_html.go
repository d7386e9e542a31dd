package report

import "html/template"

// GageHTMLData alimenta o relatório HTML do estudo Gage R&R
type GageHTMLData struct {
	Summary       string
	VarianceChart string
	StdDevChart   string
}

// GageHTMLTemplate é o esqueleto do relatório HTML do estudo Gage R&R,
// com o sumário em texto pré-formatado e os dois gráficos embutidos
var GageHTMLTemplate = template.Must(template.New("gage_rnr_report").Parse(
	`<html><head><title>Gage R&R Report</title></head><body>` +
		`<h1>Gage R&R Report</h1>` +
		`<pre>{{.Summary}}</pre>` +
		`<h2>Variance Chart</h2>` +
		`<img src="{{.VarianceChart}}" alt="Variance Chart">` +
		`<h2>Standard Deviation Chart</h2>` +
		`<img src="{{.StdDevChart}}" alt="Standard Deviation Chart">` +
		`</body></html>`))
