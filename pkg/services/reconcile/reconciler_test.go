package reconcile

import (
	"testing"
	"time"

	"github.com/de-tools/vessel-atlas/pkg/models/domain"
	"github.com/de-tools/vessel-atlas/pkg/models/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPeriod = domain.TimePeriod{
	Start:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	End:    time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
	Months: 2,
}

func day(d int) time.Time {
	return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC)
}

func TestReconcile_FullVessel(t *testing.T) {
	src := Sources{
		Particulars: &store.VesselParticulars{
			VesselName: "V1",
			IMONumber:  "9700001",
			VesselType: "Bulk Carrier",
			DWTClass:   "Panamax",
		},
		Hull: []store.HullRecord{
			{VesselName: "V1", RecordDate: day(2), ExcessPowerPct: 17.4},
			{VesselName: "V1", RecordDate: day(3), ExcessPowerPct: 19.0},
		},
		Engine: []store.EngineRecord{
			{VesselName: "V1", RecordDate: day(2), SFOC: 171.0, FuelSavingMT: 1.3},
			{VesselName: "V1", RecordDate: day(3), SFOC: 173.0, FuelSavingMT: 1.5},
		},
		CII: []store.CIIRecord{
			{VesselName: "V1", ReportingYear: 2025, Rating: "B", Value: 4.1},
		},
	}

	report := Reconcile("V1", src, testPeriod)

	assert.Equal(t, "Bulk Carrier", report.Identity.Type)
	assert.Equal(t, "Panamax", report.Identity.DWTClass)

	require.True(t, report.Hull.Present)
	assert.Equal(t, domain.BandAverage, report.Hull.Band)
	assert.InDelta(t, 18.2, report.Hull.ExcessPowerPct, 1e-9)

	require.True(t, report.Engine.Present)
	assert.Equal(t, domain.BandGood, report.Engine.Band)
	assert.InDelta(t, 172.0, report.Engine.SFOC, 1e-9)
	assert.InDelta(t, 1.4, report.Engine.FuelSavingMTDay, 1e-9)

	require.True(t, report.CII.Present)
	assert.Equal(t, "B", report.CII.Grade)
	assert.InDelta(t, 4.1, report.CII.Value, 1e-9)

	assert.Empty(t, report.Notes)
}

func TestReconcile_Deterministic(t *testing.T) {
	src := Sources{
		Hull: []store.HullRecord{
			{VesselName: "V1", RecordDate: day(5), ExcessPowerPct: 27.3},
		},
		CII: []store.CIIRecord{
			{VesselName: "V1", ReportingYear: 2024, Rating: "C", Value: 5.0},
			{VesselName: "V1", ReportingYear: 2025, Rating: "D", Value: 6.2},
		},
	}

	first := Reconcile("V1", src, testPeriod)
	second := Reconcile("V1", src, testPeriod)
	assert.Equal(t, first, second)
}

func TestReconcile_EmptySourcesAllAbsent(t *testing.T) {
	report := Reconcile("V2", Sources{}, testPeriod)

	assert.Equal(t, "V2", report.Identity.Name)
	assert.False(t, report.Hull.Present)
	assert.Equal(t, domain.BandNoData, report.Hull.Band)
	assert.False(t, report.Engine.Present)
	assert.Equal(t, domain.BandNoData, report.Engine.Band)
	assert.False(t, report.CII.Present)
	assert.Empty(t, report.Notes)
}

func TestReconcile_MissingHullLeavesOtherGroupsIntact(t *testing.T) {
	src := Sources{
		Engine: []store.EngineRecord{
			{VesselName: "V2", RecordDate: day(4), SFOC: 176.0, FuelSavingMT: 0.9},
		},
		CII: []store.CIIRecord{
			{VesselName: "V2", ReportingYear: 2025, Rating: "A", Value: 2.3},
		},
	}

	report := Reconcile("V2", src, testPeriod)

	assert.False(t, report.Hull.Present)
	assert.True(t, report.Engine.Present)
	assert.Equal(t, domain.BandGood, report.Engine.Band)
	assert.True(t, report.CII.Present)
	assert.Equal(t, "A", report.CII.Grade)
}

func TestReconcile_MalformedSFOCDowngradesEngineOnly(t *testing.T) {
	src := Sources{
		Hull: []store.HullRecord{
			{VesselName: "V1", RecordDate: day(2), ExcessPowerPct: 9.5},
		},
		Engine: []store.EngineRecord{
			{VesselName: "V1", RecordDate: day(2), SFOC: "not-a-number", FuelSavingMT: 1.0},
		},
	}

	report := Reconcile("V1", src, testPeriod)

	assert.True(t, report.Hull.Present)
	assert.Equal(t, domain.BandGood, report.Hull.Band)

	assert.False(t, report.Engine.Present)
	assert.Equal(t, domain.BandNoData, report.Engine.Band)
	require.Len(t, report.Notes, 1)
	assert.Contains(t, report.Notes[0], "engine")
	assert.Contains(t, report.Notes[0], "not-a-number")
}

func TestReconcile_NegativeExcessPowerIsInvalidNotGood(t *testing.T) {
	src := Sources{
		Hull: []store.HullRecord{
			{VesselName: "V1", RecordDate: day(2), ExcessPowerPct: -3.0},
		},
	}

	report := Reconcile("V1", src, testPeriod)

	assert.False(t, report.Hull.Present)
	assert.Equal(t, domain.BandNoData, report.Hull.Band)
	require.Len(t, report.Notes, 1)
	assert.Contains(t, report.Notes[0], "invalid measurement")
}

func TestReconcile_AnomalousEngineStaysVisible(t *testing.T) {
	src := Sources{
		Engine: []store.EngineRecord{
			{VesselName: "V1", RecordDate: day(2), SFOC: 155.0, FuelSavingMT: 2.0},
		},
	}

	report := Reconcile("V1", src, testPeriod)

	require.True(t, report.Engine.Present)
	assert.Equal(t, domain.BandAnomalous, report.Engine.Band)
	assert.InDelta(t, 155.0, report.Engine.SFOC, 1e-9)
}

func TestReconcile_RecordsOutsideWindowIgnored(t *testing.T) {
	src := Sources{
		Hull: []store.HullRecord{
			{VesselName: "V1", RecordDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), ExcessPowerPct: 40.0},
			{VesselName: "V1", RecordDate: day(10), ExcessPowerPct: 10.0},
		},
	}

	report := Reconcile("V1", src, testPeriod)

	require.True(t, report.Hull.Present)
	assert.Equal(t, domain.BandGood, report.Hull.Band)
	assert.InDelta(t, 10.0, report.Hull.ExcessPowerPct, 1e-9)
}

func TestReconcile_LatestCIIRecordWins(t *testing.T) {
	src := Sources{
		CII: []store.CIIRecord{
			{VesselName: "V1", ReportingYear: 2023, Rating: "E", Value: 9.0},
			{VesselName: "V1", ReportingYear: 2025, Rating: "B", Value: 3.9},
			{VesselName: "V1", ReportingYear: 2024, Rating: "C", Value: 5.1},
		},
	}

	report := Reconcile("V1", src, testPeriod)

	require.True(t, report.CII.Present)
	assert.Equal(t, "B", report.CII.Grade)
	assert.InDelta(t, 3.9, report.CII.Value, 1e-9)
}

func TestReconcile_InvalidCIIGradeMarkedAbsent(t *testing.T) {
	src := Sources{
		CII: []store.CIIRecord{
			{VesselName: "V1", ReportingYear: 2025, Rating: "X", Value: 3.9},
		},
	}

	report := Reconcile("V1", src, testPeriod)

	assert.False(t, report.CII.Present)
	require.Len(t, report.Notes, 1)
	assert.Contains(t, report.Notes[0], "cii")
}

func TestNumericField(t *testing.T) {
	v, ok, err := numericField(18.5)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 18.5, v)

	v, ok, err = numericField("172.5")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 172.5, v)

	_, ok, err = numericField(nil)
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = numericField("high")
	assert.ErrorIs(t, err, ErrMalformedRecord)

	_, _, err = numericField(map[string]any{})
	assert.ErrorIs(t, err, ErrMalformedRecord)
}
