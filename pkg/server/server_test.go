package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/vessel-atlas/pkg/export"
	handlers "github.com/de-tools/vessel-atlas/pkg/handlers/report"
	"github.com/de-tools/vessel-atlas/pkg/models/api"
	"github.com/de-tools/vessel-atlas/pkg/models/domain"
)

type mockDirectory struct {
	mock.Mock
}

func (m *mockDirectory) ListVesselNames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) BuildReportSet(ctx context.Context, vessels []string, periodMonths int) (*domain.ReportSet, error) {
	args := m.Called(ctx, vessels, periodMonths)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReportSet), args.Error(1)
}

func TestNewWebAPI_ShutdownTimeout(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(nil))

	configured := NewWebAPI(logger, Config{ShutdownTimeout: 3 * time.Second})
	assert.Equal(t, 3*time.Second, configured.shutdownTimeout)

	defaulted := NewWebAPI(logger, Config{})
	assert.Equal(t, 10*time.Second, defaulted.shutdownTimeout)
}

func TestWebAPI_Endpoints(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(nil))

	directory := new(mockDirectory)
	generator := new(mockGenerator)

	set := &domain.ReportSet{
		ID: "set-1",
		Period: domain.TimePeriod{
			Start:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			End:    time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
			Months: 2,
		},
		GeneratedAt: time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC),
		Reports: []domain.VesselReport{
			{
				Identity: domain.VesselIdentity{Name: "V1"},
				Hull:     domain.HullMetrics{Present: true, Band: domain.BandAverage, ExcessPowerPct: 20.1},
				Engine:   domain.EngineMetrics{Band: domain.BandNoData},
				CII:      domain.CIIMetrics{},
			},
		},
	}

	webAPI := NewWebAPI(logger, Config{
		Addr:            ":8080",
		ShutdownTimeout: 10 * time.Second,
		Dependencies: Dependencies{
			Directory: directory,
			Generator: generator,
			Renderers: handlers.RendererSet{
				domain.FormatFlatFile: export.NewFlatFileRenderer(),
			},
		},
	})
	testServer := httptest.NewServer(webAPI.router)
	defer testServer.Close()

	directory.On("ListVesselNames", mock.Anything).Return([]string{"V1"}, nil)
	generator.On("BuildReportSet", mock.Anything, []string{"V1"}, 2).Return(set, nil)

	t.Run("ListVessels", func(t *testing.T) {
		resp, err := http.Get(testServer.URL + "/api/v1/vessels")
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var vessels []api.Vessel
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&vessels))
		assert.Equal(t, []api.Vessel{{Name: "V1"}}, vessels)
	})

	t.Run("GenerateReport", func(t *testing.T) {
		body, _ := json.Marshal(api.GenerateReportRequest{Vessels: []string{"V1"}, PeriodMonths: 2})
		resp, err := http.Post(testServer.URL+"/api/v1/reports", "application/json", bytes.NewReader(body))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var got api.ReportSet
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, "set-1", got.ID)
		require.Len(t, got.Reports, 1)
		assert.Equal(t, "average", got.Reports[0].Hull.Rating)
	})

	t.Run("SummarizeReport", func(t *testing.T) {
		body, _ := json.Marshal(api.GenerateReportRequest{Vessels: []string{"V1"}, PeriodMonths: 2})
		resp, err := http.Post(testServer.URL+"/api/v1/reports/summary", "application/json", bytes.NewReader(body))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var got api.DistributionSummary
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, 1, got.VesselCount)
		assert.Equal(t, 1, got.Hull["average"])
	})

	t.Run("ExportReport", func(t *testing.T) {
		body, _ := json.Marshal(api.GenerateReportRequest{Vessels: []string{"V1"}, PeriodMonths: 2})
		resp, err := http.Post(testServer.URL+"/api/v1/reports/export/csv", "application/json", bytes.NewReader(body))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
		content, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(content), "vessel_name")
	})

	t.Run("ExportReport_UnknownFormat", func(t *testing.T) {
		body, _ := json.Marshal(api.GenerateReportRequest{Vessels: []string{"V1"}, PeriodMonths: 2})
		resp, err := http.Post(testServer.URL+"/api/v1/reports/export/pdf", "application/json", bytes.NewReader(body))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
