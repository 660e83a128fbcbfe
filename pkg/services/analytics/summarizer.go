// Package analytics derives fleet-level distribution counts from a
// report set for dashboard display.
package analytics

import "github.com/de-tools/vessel-atlas/pkg/models/domain"

// Summarize counts vessels per rating band per metric group and
// computes mean excess power and mean SFOC over vessels with present
// data. Vessels with an absent group are excluded from that group's
// statistics, never counted as zero.
func Summarize(set *domain.ReportSet) domain.DistributionSummary {
	summary := domain.DistributionSummary{
		VesselCount: len(set.Reports),
		Hull:        domain.GroupDistribution{},
		Engine:      domain.GroupDistribution{},
		CIIGrades:   map[string]int{},
	}

	var excessPowerSum, sfocSum float64
	for _, rep := range set.Reports {
		summary.Hull[rep.Hull.Band]++
		summary.Engine[rep.Engine.Band]++

		if rep.Hull.Present {
			summary.HullSampleSize++
			excessPowerSum += rep.Hull.ExcessPowerPct
		}
		if rep.Engine.Present {
			summary.EngineSampleSize++
			sfocSum += rep.Engine.SFOC
		}
		if rep.CII.Present {
			summary.CIIGrades[rep.CII.Grade]++
		}
	}

	if summary.HullSampleSize > 0 {
		summary.MeanExcessPowerPct = excessPowerSum / float64(summary.HullSampleSize)
	}
	if summary.EngineSampleSize > 0 {
		summary.MeanSFOC = sfocSum / float64(summary.EngineSampleSize)
	}

	return summary
}
