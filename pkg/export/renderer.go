// Package export renders a report set into downloadable artifacts.
// Three independent renderers share one contract; classification is
// read from the already-computed bands, never recomputed here, so no
// format can diverge from another.
package export

import (
	"fmt"
	"strconv"

	"github.com/de-tools/vessel-atlas/pkg/models/domain"
)

// Renderer turns a report set into one artifact. Implementations never
// mutate the report set and are deterministic for a given input,
// modulo generation-timestamp metadata.
type Renderer interface {
	Render(set *domain.ReportSet) (*domain.ExportArtifact, error)
}

const (
	MIMESpreadsheet = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MIMEDocument    = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMEFlatFile    = "text/csv"
)

// noDataText is the explicit placeholder for absent groups; absent is
// rendered as text, never as a blank cell.
const noDataText = "NO DATA"

var bandLabels = map[domain.RatingBand]string{
	domain.BandGood:      "Good",
	domain.BandAverage:   "Average",
	domain.BandPoor:      "Poor",
	domain.BandAnomalous: "Anomalous",
	domain.BandNoData:    noDataText,
}

func bandLabel(band domain.RatingBand) string {
	if label, ok := bandLabels[band]; ok {
		return label
	}
	return noDataText
}

func artifactFilename(set *domain.ReportSet, ext string) string {
	return fmt.Sprintf("vessel_performance_report_%s.%s", set.GeneratedAt.Format("20060102_150405"), ext)
}

func exactValue(present bool, v float64) string {
	if !present {
		return noDataText
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
