// Package rating maps continuous vessel measurements onto discrete
// quality bands using the fixed thresholds of the documented rating
// definitions. All functions are pure; no I/O, no state.
package rating

import (
	"errors"
	"fmt"
	"math"

	"github.com/de-tools/vessel-atlas/pkg/models/domain"
)

// ErrInvalidMeasurement marks an out-of-domain numeric input. Callers
// downgrade the affected metric group to "no data" instead of failing
// the whole report.
var ErrInvalidMeasurement = errors.New("invalid measurement")

const (
	hullGoodBelow    = 15.0
	hullAverageUpTo  = 25.0
	engineAnomalous  = 160.0
	engineGoodBelow  = 180.0
	engineAverageTop = 190.0
)

// ClassifyHull bands the excess-power percentage used as a
// hull-fouling proxy: below 15% is good, 15-25% inclusive is average,
// above 25% is poor.
func ClassifyHull(excessPowerPct float64) (domain.RatingBand, error) {
	if math.IsNaN(excessPowerPct) {
		return domain.BandNoData, nil
	}
	if excessPowerPct < 0 {
		return domain.BandNoData, fmt.Errorf("%w: excess power %.3f%% is negative", ErrInvalidMeasurement, excessPowerPct)
	}

	switch {
	case excessPowerPct < hullGoodBelow:
		return domain.BandGood, nil
	case excessPowerPct <= hullAverageUpTo:
		return domain.BandAverage, nil
	default:
		return domain.BandPoor, nil
	}
}

// ClassifyEngine bands the specific fuel oil consumption in g/kWh.
// Readings below 160 are physically implausible and flagged anomalous
// before the good band is considered: a value like 155 looks better
// than good but is a data-quality failure, not a rating.
func ClassifyEngine(sfoc float64) (domain.RatingBand, error) {
	if math.IsNaN(sfoc) {
		return domain.BandNoData, nil
	}
	if sfoc < 0 {
		return domain.BandNoData, fmt.Errorf("%w: SFOC %.3f is negative", ErrInvalidMeasurement, sfoc)
	}

	switch {
	case sfoc < engineAnomalous:
		return domain.BandAnomalous, nil
	case sfoc < engineGoodBelow:
		return domain.BandGood, nil
	case sfoc <= engineAverageTop:
		return domain.BandAverage, nil
	default:
		return domain.BandPoor, nil
	}
}

// ValidCIIGrade reports whether the source-supplied carbon-intensity
// letter is one of the regulatory grades A through E. CII is a
// pass-through display value, not a banding.
func ValidCIIGrade(grade string) bool {
	switch grade {
	case "A", "B", "C", "D", "E":
		return true
	default:
		return false
	}
}
