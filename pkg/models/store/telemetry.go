package store

import "time"

// Raw rows as returned by the remote query endpoint. Numeric fields
// stay untyped until reconciliation so that a single malformed value
// downgrades its metric group instead of failing the whole fetch.

type VesselParticulars struct {
	VesselName string
	IMONumber  string
	VesselType string
	DWTClass   string
}

type HullRecord struct {
	VesselName     string
	RecordDate     time.Time
	ExcessPowerPct any
}

type EngineRecord struct {
	VesselName   string
	RecordDate   time.Time
	SFOC         any
	FuelSavingMT any
}

type CIIRecord struct {
	VesselName    string
	ReportingYear int
	Rating        string
	Value         any
}
