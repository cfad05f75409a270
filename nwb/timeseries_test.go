package nwb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumSamples(t *testing.T) {
	base := NewTimeSeries("base", []float64{1, 2, 3, 4}, "volts")
	assert.Equal(t, 4, base.NumSamples())

	linked := NewTimeSeries("linked", nil, "volts", WithDataLink(base))
	assert.Equal(t, 4, linked.NumSamples())

	chained := NewTimeSeries("chained", nil, "volts", WithDataLink(linked))
	assert.Equal(t, 4, chained.NumSamples())

	scalar := NewTimeSeries("scalar", 3.5, "volts")
	assert.Equal(t, 1, scalar.NumSamples())

	empty := NewTimeSeries("empty", nil, "volts")
	assert.Zero(t, empty.NumSamples())
}

func TestTimestampSourcesExclusive(t *testing.T) {
	base := NewTimeSeries("base", []float64{1, 2}, "volts", WithTimestamps([]float64{0, 1}))

	// Each source replaces whatever was set before.
	s := NewTimeSeries("s", []float64{1, 2}, "volts",
		WithTimestamps([]float64{0, 1}),
		WithStartingTime(0, 1000),
	)
	assert.Nil(t, s.Timestamps())
	start, rate, ok := s.StartingTime()
	require.True(t, ok)
	assert.Zero(t, start)
	assert.Equal(t, 1000.0, rate)

	s = NewTimeSeries("s", []float64{1, 2}, "volts",
		WithStartingTime(0, 1000),
		WithTimestampsLink(base),
	)
	_, _, ok = s.StartingTime()
	assert.False(t, ok)
	assert.Same(t, Series(base), s.TimestampsLink())
}

func TestVariantDefaults(t *testing.T) {
	es := NewElectricalSeries("es", []float64{1}, []int{0, 2})
	assert.Equal(t, TypeElectricalSeries, es.TypeTag())
	assert.Equal(t, "volts", es.Unit())
	assert.Equal(t, []int{0, 2}, es.ElectrodeIdx())

	ss := NewSpatialSeries("ss", []float64{1}, "arena corner")
	assert.Equal(t, "meters", ss.Unit())
	assert.Equal(t, "arena corner", ss.ReferenceFrame())

	as := NewAbstractFeatureSeries("as", []float64{1}, []string{"contrast"}, []string{"percent"})
	assert.Equal(t, []string{"contrast"}, as.Features())
	assert.Equal(t, []string{"percent"}, as.FeatureUnits())

	assert.Equal(t, DefaultConversion, es.Conversion())
	assert.Equal(t, DefaultResolution, es.Resolution())
}

func TestAncestryChains(t *testing.T) {
	chain, err := Ancestry(TypeElectricalSeries)
	require.NoError(t, err)
	assert.Equal(t, []string{TypeContainer, TypeTimeSeries, TypeElectricalSeries}, chain)

	assert.True(t, IsA(TypeElectricalSeries, TypeTimeSeries))
	assert.False(t, IsA(TypeTimeSeries, TypeElectricalSeries))

	_, err = Ancestry("Ghost")
	assert.ErrorIs(t, err, ErrUnknownType)
}
