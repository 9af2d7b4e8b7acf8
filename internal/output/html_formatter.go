package output

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/goccy/go-json"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/stockmatrix/sipcalc/internal/domain"
)

// HTMLFormatter produces a standalone HTML page: the markdown report converted with goldmark plus
// the growth series embedded as JSON for a charting layer.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string      { return "html" }
func (h HTMLFormatter) Extension() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"json": func(v any) (template.JS, error) {
		b, err := json.Marshal(v)
		return template.JS(b), err
	},
}).Parse(htmlTemplateSource))

var markdownConverter = goldmark.New(goldmark.WithExtensions(extension.GFM))

// chartSeries is the per-plan payload consumed by chart code
type chartSeries struct {
	Name        string               `json:"name"`
	Currency    string               `json:"currency"`
	Granularity domain.Granularity   `json:"granularity"`
	Series      []domain.GrowthPoint `json:"series"`
}

func (h HTMLFormatter) Format(reports []domain.Report) ([]byte, error) {
	var body bytes.Buffer
	if err := markdownConverter.Convert(renderMarkdown(reports), &body); err != nil {
		return nil, fmt.Errorf("convert markdown: %w", err)
	}

	charts := make([]chartSeries, 0, len(reports))
	for _, r := range reports {
		if r.Projection == nil {
			continue
		}
		charts = append(charts, chartSeries{
			Name:        r.Name,
			Currency:    currencyOf(r),
			Granularity: r.Projection.Granularity,
			Series:      r.Projection.Series,
		})
	}

	title := "SIP Growth Projection"
	if len(reports) == 1 {
		title = reportTitle(reports[0])
	}

	data := struct {
		Title  string
		Body   template.HTML
		Charts []chartSeries
	}{title, template.HTML(body.String()), charts}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
