package rating

import (
	"math"
	"testing"

	"github.com/de-tools/vessel-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyHull_Boundaries(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected domain.RatingBand
	}{
		{"well below good threshold", 3.2, domain.BandGood},
		{"just below good threshold", 14.999, domain.BandGood},
		{"lower boundary is average", 15, domain.BandAverage},
		{"mid average", 18.2, domain.BandAverage},
		{"upper boundary is average", 25, domain.BandAverage},
		{"just above upper boundary", 25.001, domain.BandPoor},
		{"well above upper boundary", 41.7, domain.BandPoor},
		{"zero", 0, domain.BandGood},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			band, err := ClassifyHull(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, band)
		})
	}
}

func TestClassifyHull_NaNIsNoData(t *testing.T) {
	band, err := ClassifyHull(math.NaN())
	require.NoError(t, err)
	assert.Equal(t, domain.BandNoData, band)
}

func TestClassifyHull_NegativeIsInvalid(t *testing.T) {
	band, err := ClassifyHull(-0.5)
	assert.ErrorIs(t, err, ErrInvalidMeasurement)
	assert.Equal(t, domain.BandNoData, band)
}

func TestClassifyEngine_AnomalousTakesPrecedence(t *testing.T) {
	// 155 g/kWh is numerically "better than good" but must be flagged
	// as a data-quality concern, never reported as good.
	band, err := ClassifyEngine(155)
	require.NoError(t, err)
	assert.Equal(t, domain.BandAnomalous, band)
}

func TestClassifyEngine_Boundaries(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected domain.RatingBand
	}{
		{"just below anomalous cutoff", 159.999, domain.BandAnomalous},
		{"anomalous cutoff is good", 160, domain.BandGood},
		{"just below good cutoff", 179.999, domain.BandGood},
		{"good cutoff is average", 180, domain.BandAverage},
		{"upper average boundary", 190, domain.BandAverage},
		{"just above average boundary", 190.001, domain.BandPoor},
		{"typical good reading", 172, domain.BandGood},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			band, err := ClassifyEngine(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, band)
		})
	}
}

func TestClassifyEngine_NaNIsNoData(t *testing.T) {
	band, err := ClassifyEngine(math.NaN())
	require.NoError(t, err)
	assert.Equal(t, domain.BandNoData, band)
}

func TestClassifyEngine_NegativeIsInvalid(t *testing.T) {
	band, err := ClassifyEngine(-172)
	assert.ErrorIs(t, err, ErrInvalidMeasurement)
	assert.Equal(t, domain.BandNoData, band)
}

func TestValidCIIGrade(t *testing.T) {
	for _, grade := range []string{"A", "B", "C", "D", "E"} {
		assert.True(t, ValidCIIGrade(grade), grade)
	}
	for _, grade := range []string{"", "F", "a", "AB"} {
		assert.False(t, ValidCIIGrade(grade), grade)
	}
}
