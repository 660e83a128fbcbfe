package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/vessel-atlas/pkg/models/domain"
	"github.com/de-tools/vessel-atlas/pkg/services/analytics"
)

type TableConfig struct {
	NameWidth   int
	RatingWidth int
	ValueWidth  int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		NameWidth:   28,
		RatingWidth: 10,
		ValueWidth:  12,
	}
}

// Reporter outputs report sets to the console in a formatted text form
type Reporter struct {
	writer io.Writer
	config TableConfig
}

// NewReporter creates a new console reporter
func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (c *Reporter) Handle(set *domain.ReportSet) error {
	bandNames := map[domain.RatingBand]string{
		domain.BandGood:      "Good",
		domain.BandAverage:   "Average",
		domain.BandPoor:      "Poor",
		domain.BandAnomalous: "Anomalous",
		domain.BandNoData:    "no data",
	}

	funcMap := template.FuncMap{
		"formatRow": func(name, hull, engine, cii string) string {
			return fmt.Sprintf("| %-*s | %-*s | %-*s | %-*s |",
				c.config.NameWidth, name,
				c.config.RatingWidth, hull,
				c.config.RatingWidth, engine,
				c.config.ValueWidth, cii)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+",
				strings.Repeat("-", c.config.NameWidth+2),
				strings.Repeat("-", c.config.RatingWidth+2),
				strings.Repeat("-", c.config.RatingWidth+2),
				strings.Repeat("-", c.config.ValueWidth+2))
		},
		"band": func(present bool, band domain.RatingBand) string {
			if !present {
				return "no data"
			}
			return bandNames[band]
		},
		"grade": func(m domain.CIIMetrics) string {
			if !m.Present {
				return "no data"
			}
			return m.Grade
		},
		"count": func(dist domain.GroupDistribution, band string) int {
			return dist[domain.RatingBand(band)]
		},
	}

	tmpl := `
Vessel Performance Report
Period: {{.Set.Period.Start.Format "2006-01-02"}} to {{.Set.Period.End.Format "2006-01-02"}} ({{.Set.Period.Months}} month(s))
Vessels: {{.Summary.VesselCount}}

{{separator}}
{{formatRow "Vessel" "Hull" "Engine" "CII Grade"}}
{{separator}}
{{range .Set.Reports}}{{formatRow .Identity.Name (band .Hull.Present .Hull.Band) (band .Engine.Present .Engine.Band) (grade .CII)}}
{{end}}{{separator}}

Hull: {{count .Summary.Hull "good"}} good / {{count .Summary.Hull "average"}} average / {{count .Summary.Hull "poor"}} poor
Engine: {{count .Summary.Engine "good"}} good / {{count .Summary.Engine "average"}} average / {{count .Summary.Engine "poor"}} poor / {{count .Summary.Engine "anomalous"}} anomalous
`

	t, err := template.New("report").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	data := struct {
		Set     *domain.ReportSet
		Summary domain.DistributionSummary
	}{
		Set:     set,
		Summary: analytics.Summarize(set),
	}

	return t.Execute(c.writer, data)
}
