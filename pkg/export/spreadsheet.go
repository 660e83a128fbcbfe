package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/de-tools/vessel-atlas/pkg/models/domain"
)

const sheetName = "Vessel Performance"

// Fixed band-to-fill mapping. The renderer only looks at the computed
// band; thresholds are never re-evaluated here.
var bandFills = map[domain.RatingBand]string{
	domain.BandGood:      "C6EFCE", // green
	domain.BandAverage:   "FFEB9C", // amber
	domain.BandPoor:      "FFC7CE", // red
	domain.BandAnomalous: "D9D9D9", // neutral gray
	domain.BandNoData:    "D9D9D9",
}

var bandOrder = []domain.RatingBand{
	domain.BandGood,
	domain.BandAverage,
	domain.BandPoor,
	domain.BandAnomalous,
	domain.BandNoData,
}

var spreadsheetHeader = []string{
	"Vessel Name", "IMO", "Type", "DWT Class",
	"Excess Power (%)", "Hull Rating",
	"SFOC (g/kWh)", "Engine Rating", "Fuel Saving (MT/day)",
	"CII Value", "CII Grade", "Notes",
}

// SpreadsheetRenderer produces an xlsx workbook with one row per
// vessel and rating cells filled according to the fixed band colors.
type SpreadsheetRenderer struct{}

func NewSpreadsheetRenderer() *SpreadsheetRenderer {
	return &SpreadsheetRenderer{}
}

func (r *SpreadsheetRenderer) Render(set *domain.ReportSet) (*domain.ExportArtifact, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	// Styles are registered in a fixed band order so the same report
	// set always serializes to the same bytes.
	bandStyles := make(map[domain.RatingBand]int, len(bandFills))
	for _, band := range bandOrder {
		styleID, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{bandFills[band]}},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create style for band %s: %w", band, err)
		}
		bandStyles[band] = styleID
	}

	for col, title := range spreadsheetHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, title); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("failed to style header: %w", err)
		}
	}

	for i, rep := range set.Reports {
		row := i + 2
		values := []any{
			rep.Identity.Name,
			rep.Identity.IMO,
			rep.Identity.Type,
			rep.Identity.DWTClass,
			numericCell(rep.Hull.Present, rep.Hull.ExcessPowerPct),
			bandLabel(rep.Hull.Band),
			numericCell(rep.Engine.Present, rep.Engine.SFOC),
			bandLabel(rep.Engine.Band),
			numericCell(rep.Engine.Present, rep.Engine.FuelSavingMTDay),
			numericCell(rep.CII.Present, rep.CII.Value),
			ciiGradeText(rep.CII),
			strings.Join(rep.Notes, "; "),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write row for %s: %w", rep.Identity.Name, err)
			}
		}

		// Rating cells are visually tagged by band.
		for col, band := range map[int]domain.RatingBand{6: rep.Hull.Band, 8: rep.Engine.Band} {
			cell, err := excelize.CoordinatesToCellName(col, row)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve rating cell: %w", err)
			}
			if err := f.SetCellStyle(sheetName, cell, cell, bandStyles[band]); err != nil {
				return nil, fmt.Errorf("failed to style rating cell: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	return &domain.ExportArtifact{
		Format:   domain.FormatSpreadsheet,
		MIME:     MIMESpreadsheet,
		Filename: artifactFilename(set, "xlsx"),
		Content:  buf.Bytes(),
	}, nil
}

// numericCell keeps present measurements as numbers so spreadsheet
// consumers can aggregate them; absent groups render as placeholder
// text, never a blank cell.
func numericCell(present bool, v float64) any {
	if !present {
		return noDataText
	}
	return v
}
