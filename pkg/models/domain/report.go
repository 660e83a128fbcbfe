package domain

import "time"

// RatingBand is the discrete quality classification derived from a
// continuous measurement via fixed thresholds.
type RatingBand string

const (
	BandGood    RatingBand = "good"
	BandAverage RatingBand = "average"
	BandPoor    RatingBand = "poor"
	// BandAnomalous flags engine readings below the plausible SFOC
	// range. A data-quality concern, not a performance rating.
	BandAnomalous RatingBand = "anomalous"
	// BandNoData marks a metric group without a usable measurement.
	BandNoData RatingBand = "no_data"
)

// VesselIdentity is the immutable key of a vessel within one report
// generation. Created once per batch fetch, never mutated.
type VesselIdentity struct {
	Name     string
	IMO      string
	Type     string
	DWTClass string
}

// HullMetrics carries the hull-fouling group of a vessel report.
// Band is always derived from ExcessPowerPct, never stored on its own.
type HullMetrics struct {
	Present        bool
	Band           RatingBand
	ExcessPowerPct float64
}

// EngineMetrics carries the engine-efficiency group: mean SFOC over
// the analysis window plus the potential fuel saving in MT/day.
type EngineMetrics struct {
	Present         bool
	Band            RatingBand
	SFOC            float64
	FuelSavingMTDay float64
}

// CIIMetrics carries the regulatory carbon-intensity group. Grade is
// the year-to-date A-E letter supplied by the source.
type CIIMetrics struct {
	Present bool
	Grade   string
	Value   float64
}

// VesselReport is the canonical per-vessel aggregate. One exists for
// every requested vessel regardless of data completeness; groups
// without data are marked absent, never defaulted to a passing band.
type VesselReport struct {
	Identity VesselIdentity
	Hull     HullMetrics
	Engine   EngineMetrics
	CII      CIIMetrics
	// Notes records per-vessel data-quality diagnostics (malformed
	// fields, failed source queries) surfaced to the end user.
	Notes []string
}

// TimePeriod is the analysis window applied uniformly to a report set.
type TimePeriod struct {
	Start  time.Time
	End    time.Time
	Months int
}

// ReportSet is the ordered collection of vessel reports for one
// generation request. Report order equals selection order.
type ReportSet struct {
	ID          string
	Period      TimePeriod
	GeneratedAt time.Time
	Reports     []VesselReport
}
