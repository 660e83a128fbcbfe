package domain

// GroupDistribution counts vessels per rating band for one metric group.
type GroupDistribution map[RatingBand]int

// DistributionSummary holds fleet-level counts and simple statistics
// derived from a report set for dashboard display. Means are computed
// over vessels with present data only.
type DistributionSummary struct {
	VesselCount int
	Hull        GroupDistribution
	Engine      GroupDistribution
	CIIGrades   map[string]int

	HullSampleSize     int
	EngineSampleSize   int
	MeanExcessPowerPct float64
	MeanSFOC           float64
}
