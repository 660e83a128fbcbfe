// Package reconcile merges one vessel's raw record sets into a single
// canonical vessel report. Failures are isolated per metric group: a
// malformed or out-of-domain value downgrades its own group to absent
// and leaves the rest of the report intact.
package reconcile

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/de-tools/vessel-atlas/pkg/models/domain"
	"github.com/de-tools/vessel-atlas/pkg/models/store"
	"github.com/de-tools/vessel-atlas/pkg/services/rating"
)

// ErrMalformedRecord marks a source field of the wrong domain, e.g. a
// non-numeric SFOC. The affected group is reported as absent.
var ErrMalformedRecord = errors.New("malformed record")

// Sources holds everything the query layer returned for one vessel.
// Any of the four sets may be empty or nil.
type Sources struct {
	Particulars *store.VesselParticulars
	Hull        []store.HullRecord
	Engine      []store.EngineRecord
	CII         []store.CIIRecord
}

// Reconcile produces exactly one report for the named vessel. It never
// fails: missing groups become explicit absent states and data-quality
// problems are recorded as notes on the report.
func Reconcile(name string, src Sources, period domain.TimePeriod) domain.VesselReport {
	report := domain.VesselReport{
		Identity: domain.VesselIdentity{Name: name},
	}

	if src.Particulars != nil {
		report.Identity.IMO = src.Particulars.IMONumber
		report.Identity.Type = src.Particulars.VesselType
		report.Identity.DWTClass = src.Particulars.DWTClass
	}

	var notes []string
	report.Hull, notes = reconcileHull(src.Hull, period)
	report.Notes = append(report.Notes, notes...)

	report.Engine, notes = reconcileEngine(src.Engine, period)
	report.Notes = append(report.Notes, notes...)

	report.CII, notes = reconcileCII(src.CII)
	report.Notes = append(report.Notes, notes...)

	return report
}

func reconcileHull(records []store.HullRecord, period domain.TimePeriod) (domain.HullMetrics, []string) {
	absent := domain.HullMetrics{Band: domain.BandNoData}

	var values []float64
	for _, rec := range records {
		if !inWindow(rec.RecordDate, period) {
			continue
		}
		v, ok, err := numericField(rec.ExcessPowerPct)
		if err != nil {
			return absent, []string{fmt.Sprintf("hull: excess power %v, group marked absent", err)}
		}
		if ok {
			values = append(values, v)
		}
	}

	if len(values) == 0 {
		return absent, nil
	}

	avg := mean(values)
	band, err := rating.ClassifyHull(avg)
	if err != nil {
		return absent, []string{fmt.Sprintf("hull: %v, group marked absent", err)}
	}
	if band == domain.BandNoData {
		return absent, nil
	}

	return domain.HullMetrics{Present: true, Band: band, ExcessPowerPct: avg}, nil
}

func reconcileEngine(records []store.EngineRecord, period domain.TimePeriod) (domain.EngineMetrics, []string) {
	absent := domain.EngineMetrics{Band: domain.BandNoData}

	var sfocs, savings []float64
	for _, rec := range records {
		if !inWindow(rec.RecordDate, period) {
			continue
		}
		sfoc, ok, err := numericField(rec.SFOC)
		if err != nil {
			return absent, []string{fmt.Sprintf("engine: SFOC %v, group marked absent", err)}
		}
		if ok {
			sfocs = append(sfocs, sfoc)
		}
		saving, ok, err := numericField(rec.FuelSavingMT)
		if err != nil {
			return absent, []string{fmt.Sprintf("engine: fuel saving %v, group marked absent", err)}
		}
		if ok {
			savings = append(savings, saving)
		}
	}

	if len(sfocs) == 0 {
		return absent, nil
	}

	avgSFOC := mean(sfocs)
	band, err := rating.ClassifyEngine(avgSFOC)
	if err != nil {
		return absent, []string{fmt.Sprintf("engine: %v, group marked absent", err)}
	}
	if band == domain.BandNoData {
		return absent, nil
	}

	metrics := domain.EngineMetrics{Present: true, Band: band, SFOC: avgSFOC}
	if len(savings) > 0 {
		metrics.FuelSavingMTDay = mean(savings)
	}
	return metrics, nil
}

func reconcileCII(records []store.CIIRecord) (domain.CIIMetrics, []string) {
	absent := domain.CIIMetrics{}

	if len(records) == 0 {
		return absent, nil
	}

	// Single most recent year-to-date record wins.
	latest := records[0]
	for _, rec := range records[1:] {
		if rec.ReportingYear > latest.ReportingYear {
			latest = rec
		}
	}

	if !rating.ValidCIIGrade(latest.Rating) {
		return absent, []string{fmt.Sprintf(
			"cii: %v: rating %q is not a grade A-E, group marked absent", ErrMalformedRecord, latest.Rating)}
	}

	value, ok, err := numericField(latest.Value)
	if err != nil {
		return absent, []string{fmt.Sprintf("cii: index value %v, group marked absent", err)}
	}

	metrics := domain.CIIMetrics{Present: true, Grade: latest.Rating}
	if ok {
		metrics.Value = value
	}
	return metrics, nil
}

// inWindow treats records without a timestamp as belonging to the
// requested window; period-scoped summary tables return such rows.
func inWindow(d time.Time, period domain.TimePeriod) bool {
	if d.IsZero() {
		return true
	}
	return !d.Before(period.Start) && !d.After(period.End)
}

// numericField coerces a raw row value into a float64. A nil value
// means the field was missing (ok=false); a value of the wrong domain
// yields ErrMalformedRecord.
func numericField(v any) (float64, bool, error) {
	switch val := v.(type) {
	case nil:
		return 0, false, nil
	case float64:
		return val, true, nil
	case int:
		return float64(val), true, nil
	case int64:
		return float64(val), true, nil
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return 0, false, fmt.Errorf("%w: %q is not numeric", ErrMalformedRecord, val.String())
		}
		return f, true, nil
	case string:
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0, false, fmt.Errorf("%w: %q is not numeric", ErrMalformedRecord, val)
		}
		return f, true, nil
	default:
		return 0, false, fmt.Errorf("%w: unexpected value type %T", ErrMalformedRecord, v)
	}
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
