package adapters

import (
	"github.com/de-tools/vessel-atlas/pkg/models/api"
	"github.com/de-tools/vessel-atlas/pkg/models/domain"
)

func MapVesselReportDomainToApi(r domain.VesselReport) api.VesselReport {
	rep := api.VesselReport{
		Identity: api.VesselIdentity{
			Name:     r.Identity.Name,
			IMO:      r.Identity.IMO,
			Type:     r.Identity.Type,
			DWTClass: r.Identity.DWTClass,
		},
		Hull: api.HullMetrics{
			Present: r.Hull.Present,
			Rating:  string(r.Hull.Band),
		},
		Engine: api.EngineMetrics{
			Present: r.Engine.Present,
			Rating:  string(r.Engine.Band),
		},
		CII: api.CIIMetrics{
			Present: r.CII.Present,
			Grade:   r.CII.Grade,
		},
		Notes: r.Notes,
	}

	if r.Hull.Present {
		v := r.Hull.ExcessPowerPct
		rep.Hull.ExcessPowerPct = &v
	}
	if r.Engine.Present {
		sfoc := r.Engine.SFOC
		saving := r.Engine.FuelSavingMTDay
		rep.Engine.SFOC = &sfoc
		rep.Engine.FuelSavingMTDay = &saving
	}
	if r.CII.Present {
		v := r.CII.Value
		rep.CII.Value = &v
	}

	return rep
}

func MapReportSetDomainToApi(set *domain.ReportSet) api.ReportSet {
	res := api.ReportSet{
		ID:          set.ID,
		Period:      MapTimePeriodDomainToApi(set.Period),
		GeneratedAt: set.GeneratedAt,
		Reports:     make([]api.VesselReport, 0, len(set.Reports)),
	}
	for _, r := range set.Reports {
		res.Reports = append(res.Reports, MapVesselReportDomainToApi(r))
	}
	return res
}

func MapTimePeriodDomainToApi(p domain.TimePeriod) api.TimePeriod {
	return api.TimePeriod{
		Start:  p.Start,
		End:    p.End,
		Months: p.Months,
	}
}

func MapSummaryDomainToApi(s domain.DistributionSummary) api.DistributionSummary {
	res := api.DistributionSummary{
		VesselCount:        s.VesselCount,
		Hull:               map[string]int{},
		Engine:             map[string]int{},
		CIIGrades:          map[string]int{},
		HullSampleSize:     s.HullSampleSize,
		EngineSampleSize:   s.EngineSampleSize,
		MeanExcessPowerPct: s.MeanExcessPowerPct,
		MeanSFOC:           s.MeanSFOC,
	}
	for band, n := range s.Hull {
		res.Hull[string(band)] = n
	}
	for band, n := range s.Engine {
		res.Engine[string(band)] = n
	}
	for grade, n := range s.CIIGrades {
		res.CIIGrades[grade] = n
	}
	return res
}
