package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/de-tools/vessel-atlas/pkg/models/domain"
)

// FlatFileRenderer writes one CSV row per vessel with both the raw
// measurements and the classified bands. Lowest fidelity, most
// portable; it carries the exact numeric values the styled formats
// round for display.
type FlatFileRenderer struct{}

func NewFlatFileRenderer() *FlatFileRenderer {
	return &FlatFileRenderer{}
}

var flatFileHeader = []string{
	"vessel_name", "imo", "vessel_type", "dwt_class",
	"excess_power_pct", "hull_rating",
	"sfoc_gkwh", "engine_rating", "fuel_saving_mt_day",
	"cii_value", "cii_grade",
	"period_months", "notes",
}

func (r *FlatFileRenderer) Render(set *domain.ReportSet) (*domain.ExportArtifact, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(flatFileHeader); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for _, rep := range set.Reports {
		row := []string{
			rep.Identity.Name,
			rep.Identity.IMO,
			rep.Identity.Type,
			rep.Identity.DWTClass,
			exactValue(rep.Hull.Present, rep.Hull.ExcessPowerPct),
			bandLabel(rep.Hull.Band),
			exactValue(rep.Engine.Present, rep.Engine.SFOC),
			bandLabel(rep.Engine.Band),
			exactValue(rep.Engine.Present, rep.Engine.FuelSavingMTDay),
			exactValue(rep.CII.Present, rep.CII.Value),
			ciiGradeText(rep.CII),
			fmt.Sprintf("%d", set.Period.Months),
			strings.Join(rep.Notes, "; "),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write row for %s: %w", rep.Identity.Name, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush flat file: %w", err)
	}

	return &domain.ExportArtifact{
		Format:   domain.FormatFlatFile,
		MIME:     MIMEFlatFile,
		Filename: artifactFilename(set, "csv"),
		Content:  buf.Bytes(),
	}, nil
}

func ciiGradeText(m domain.CIIMetrics) string {
	if !m.Present {
		return noDataText
	}
	return m.Grade
}
