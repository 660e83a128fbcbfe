package export

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/template"

	docx "github.com/lukasjarosch/go-docx"

	"github.com/de-tools/vessel-atlas/pkg/models/domain"
	"github.com/de-tools/vessel-atlas/pkg/services/analytics"
)

var (
	// ErrTemplateMissing means the document template could not be
	// located. Other renderers are unaffected.
	ErrTemplateMissing = errors.New("document template missing")
	// ErrTemplateMalformed means the template was found but does not
	// carry the expected placeholder marker.
	ErrTemplateMalformed = errors.New("document template malformed")
)

// placeholderKey is the single marker the template must contain,
// delimited as {report_content} in the document text.
const placeholderKey = "report_content"

// DocumentRenderer substitutes a generated narrative block into a
// fixed external word-processor template.
type DocumentRenderer struct {
	templatePath string
}

func NewDocumentRenderer(templatePath string) *DocumentRenderer {
	return &DocumentRenderer{templatePath: templatePath}
}

func (r *DocumentRenderer) Render(set *domain.ReportSet) (*domain.ExportArtifact, error) {
	raw, err := os.ReadFile(r.templatePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateMissing, r.templatePath)
	}

	doc, err := docx.OpenBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateMalformed, err)
	}

	body, err := buildDocumentBody(set)
	if err != nil {
		return nil, err
	}

	if err := doc.ReplaceAll(docx.PlaceholderMap{placeholderKey: body}); err != nil {
		return nil, fmt.Errorf("%w: placeholder {%s}: %v", ErrTemplateMalformed, placeholderKey, err)
	}

	var buf bytes.Buffer
	if err := doc.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize document: %w", err)
	}

	return &domain.ExportArtifact{
		Format:   domain.FormatDocument,
		MIME:     MIMEDocument,
		Filename: artifactFilename(set, "docx"),
		Content:  buf.Bytes(),
	}, nil
}

const documentBodyTemplate = `Vessel Performance Report
Analysis window: {{.Period.Start.Format "2006-01-02"}} to {{.Period.End.Format "2006-01-02"}} ({{.Period.Months}} month(s))
Vessels covered: {{.Summary.VesselCount}}

Fleet overview
Hull condition: {{bandCount .Summary.Hull "good"}} good, {{bandCount .Summary.Hull "average"}} average, {{bandCount .Summary.Hull "poor"}} poor, {{bandCount .Summary.Hull "no_data"}} without data.
Engine efficiency: {{bandCount .Summary.Engine "good"}} good, {{bandCount .Summary.Engine "average"}} average, {{bandCount .Summary.Engine "poor"}} poor, {{bandCount .Summary.Engine "anomalous"}} anomalous, {{bandCount .Summary.Engine "no_data"}} without data.
{{if gt .Summary.HullSampleSize 0}}Mean excess power across reporting vessels: {{printf "%.2f" .Summary.MeanExcessPowerPct}}%.
{{end}}{{if gt .Summary.EngineSampleSize 0}}Mean SFOC across reporting vessels: {{printf "%.2f" .Summary.MeanSFOC}} g/kWh.
{{end}}
Per-vessel results
{{range .Reports}}{{.Identity.Name}}: hull {{hull .}}, engine {{engine .}}, CII {{cii .}}{{if .Notes}} [{{join .Notes "; "}}]{{end}}
{{end}}
Methodology
Hull condition is derived from the mean excess power over the analysis window: below 15% is rated Good, 15-25% Average, above 25% Poor. Engine efficiency is derived from the mean SFOC: below 180 g/kWh is rated Good, 180-190 Average, above 190 Poor; readings below 160 g/kWh are flagged Anomalous as a data-quality concern. The CII grade is the regulatory year-to-date A-E rating as reported. Vessels lacking records for a metric group are marked "NO DATA" and excluded from fleet statistics.`

type documentContext struct {
	Period  domain.TimePeriod
	Summary domain.DistributionSummary
	Reports []domain.VesselReport
}

func buildDocumentBody(set *domain.ReportSet) (string, error) {
	funcMap := template.FuncMap{
		"bandCount": func(dist domain.GroupDistribution, band string) int {
			return dist[domain.RatingBand(band)]
		},
		"hull": func(r domain.VesselReport) string {
			if !r.Hull.Present {
				return noDataText
			}
			return fmt.Sprintf("%s (%.2f%% excess power)", bandLabel(r.Hull.Band), r.Hull.ExcessPowerPct)
		},
		"engine": func(r domain.VesselReport) string {
			if !r.Engine.Present {
				return noDataText
			}
			return fmt.Sprintf("%s (SFOC %.2f g/kWh, saving potential %.2f MT/day)",
				bandLabel(r.Engine.Band), r.Engine.SFOC, r.Engine.FuelSavingMTDay)
		},
		"cii": func(r domain.VesselReport) string {
			if !r.CII.Present {
				return noDataText
			}
			return fmt.Sprintf("grade %s (%.2f)", r.CII.Grade, r.CII.Value)
		},
		"join": strings.Join,
	}

	t, err := template.New("document").Funcs(funcMap).Parse(documentBodyTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse document body template: %w", err)
	}

	var buf bytes.Buffer
	err = t.Execute(&buf, documentContext{
		Period:  set.Period,
		Summary: analytics.Summarize(set),
		Reports: set.Reports,
	})
	if err != nil {
		return "", fmt.Errorf("failed to build document body: %w", err)
	}
	return buf.String(), nil
}
