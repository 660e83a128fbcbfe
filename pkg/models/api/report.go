package api

import "time"

type VesselIdentity struct {
	Name     string `json:"name"`
	IMO      string `json:"imo,omitempty"`
	Type     string `json:"type,omitempty"`
	DWTClass string `json:"dwt_class,omitempty"`
}

type HullMetrics struct {
	Present        bool     `json:"present"`
	Rating         string   `json:"rating"`
	ExcessPowerPct *float64 `json:"excess_power_pct,omitempty"`
}

type EngineMetrics struct {
	Present         bool     `json:"present"`
	Rating          string   `json:"rating"`
	SFOC            *float64 `json:"sfoc,omitempty"`
	FuelSavingMTDay *float64 `json:"fuel_saving_mt_day,omitempty"`
}

type CIIMetrics struct {
	Present bool     `json:"present"`
	Grade   string   `json:"grade,omitempty"`
	Value   *float64 `json:"value,omitempty"`
}

type VesselReport struct {
	Identity VesselIdentity `json:"identity"`
	Hull     HullMetrics    `json:"hull"`
	Engine   EngineMetrics  `json:"engine"`
	CII      CIIMetrics     `json:"cii"`
	Notes    []string       `json:"notes,omitempty"`
}

type TimePeriod struct {
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Months int       `json:"months"`
}

type ReportSet struct {
	ID          string         `json:"id"`
	Period      TimePeriod     `json:"period"`
	GeneratedAt time.Time      `json:"generated_at"`
	Reports     []VesselReport `json:"reports"`
}

type DistributionSummary struct {
	VesselCount        int            `json:"vessel_count"`
	Hull               map[string]int `json:"hull"`
	Engine             map[string]int `json:"engine"`
	CIIGrades          map[string]int `json:"cii_grades"`
	HullSampleSize     int            `json:"hull_sample_size"`
	EngineSampleSize   int            `json:"engine_sample_size"`
	MeanExcessPowerPct float64        `json:"mean_excess_power_pct"`
	MeanSFOC           float64        `json:"mean_sfoc"`
}

type Vessel struct {
	Name string `json:"name"`
}

type GenerateReportRequest struct {
	Vessels      []string `json:"vessels"`
	PeriodMonths int      `json:"period_months"`
}
