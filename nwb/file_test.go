package nwb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIdentifier(t *testing.T) {
	start := time.Date(2016, 3, 14, 9, 26, 53, 0, time.UTC)
	f := NewFile("session.nwb", "test session", WithStartTime(start))
	assert.Equal(t, "session.nwb 2016-03-14T09:26:53Z", f.Identifier())

	f = NewFile("session.nwb", "test session", WithIdentifier("custom-id"))
	assert.Equal(t, "custom-id", f.Identifier())
}

func TestSeriesNamespaces(t *testing.T) {
	f := NewFile("a.nwb", "s")

	raw := NewTimeSeries("raw1", []float64{1, 2}, "volts", WithTimestamps([]float64{0, 1}))
	stim := NewTimeSeries("stim1", []float64{3, 4}, "volts", WithTimestamps([]float64{0, 1}))

	require.NoError(t, f.AddRawTimeSeries(raw))
	require.NoError(t, f.AddStimulus(stim))

	assert.True(t, f.IsRawData(raw))
	assert.False(t, f.IsStimulus(raw))
	assert.True(t, f.IsStimulus(stim))

	// Membership is by identity, not name.
	impostor := NewTimeSeries("raw1", nil, "volts")
	assert.False(t, f.IsRawData(impostor))

	got, err := f.TimeSeries("stim1")
	require.NoError(t, err)
	assert.Same(t, Series(stim), got)

	_, err = f.TimeSeries("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSeriesNameUniqueAcrossNamespaces(t *testing.T) {
	f := NewFile("a.nwb", "s")
	require.NoError(t, f.AddRawTimeSeries(NewTimeSeries("dup", nil, "volts")))

	err := f.AddStimulus(NewTimeSeries("dup", nil, "volts"))
	assert.ErrorIs(t, err, ErrDuplicateName)
	err = f.AddStimulusTemplate(NewTimeSeries("dup", nil, "volts"))
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestSeriesOwnershipExclusive(t *testing.T) {
	f1 := NewFile("a.nwb", "s")
	f2 := NewFile("b.nwb", "s")
	s := NewTimeSeries("shared", nil, "volts")

	require.NoError(t, f1.AddRawTimeSeries(s))
	assert.ErrorIs(t, f2.AddRawTimeSeries(s), ErrAlreadyOwned)
}

func TestCreateEpochValidatesInterval(t *testing.T) {
	f := NewFile("a.nwb", "s")

	_, err := f.CreateEpoch("bad", 5, 1, nil, "")
	assert.ErrorIs(t, err, ErrInvalidInterval)

	// A zero-length interval is legal.
	_, err = f.CreateEpoch("point", 5, 5, nil, "")
	assert.NoError(t, err)

	_, err = f.CreateEpoch("point", 1, 2, nil, "")
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestSetEpochTimeSeriesCrossProduct(t *testing.T) {
	f := NewFile("a.nwb", "s")
	require.NoError(t, f.AddRawTimeSeries(NewTimeSeries("s1", nil, "volts")))
	require.NoError(t, f.AddStimulus(NewTimeSeries("s2", nil, "volts")))
	_, err := f.CreateEpoch("e1", 0, 1, nil, "")
	require.NoError(t, err)
	_, err = f.CreateEpoch("e2", 1, 2, nil, "")
	require.NoError(t, err)

	require.NoError(t, f.SetEpochTimeSeries([]interface{}{"e1", "e2"}, []interface{}{"s1", "s2"}))

	for _, name := range []string{"e1", "e2"} {
		ep, err := f.Epoch(name)
		require.NoError(t, err)
		require.Len(t, ep.TimeSeries(), 2)
	}

	assert.ErrorIs(t, f.SetEpochTimeSeries([]interface{}{"ghost"}, []interface{}{"s1"}), ErrNotFound)
	assert.ErrorIs(t, f.SetEpochTimeSeries([]interface{}{"e1"}, []interface{}{"ghost"}), ErrNotFound)
}

func TestSetEpochTimeSeriesAcceptsObjects(t *testing.T) {
	f := NewFile("a.nwb", "s")
	s := NewTimeSeries("s1", nil, "volts")
	require.NoError(t, f.AddRawTimeSeries(s))
	ep, err := f.CreateEpoch("e1", 0, 1, nil, "")
	require.NoError(t, err)

	// Names and objects mix freely.
	require.NoError(t, f.SetEpochTimeSeries([]interface{}{ep}, []interface{}{s}))
	require.NoError(t, f.SetEpochTimeSeries([]interface{}{"e1"}, []interface{}{s}))
	require.Len(t, ep.TimeSeries(), 1)
	assert.Same(t, Series(s), ep.TimeSeries()[0].Series())

	// Objects must belong to this file.
	other := NewFile("b.nwb", "s")
	foreign := NewTimeSeries("s2", nil, "volts")
	require.NoError(t, other.AddRawTimeSeries(foreign))
	assert.ErrorIs(t, f.SetEpochTimeSeries([]interface{}{ep}, []interface{}{foreign}), ErrNotFound)

	foreignEp, err := other.CreateEpoch("e2", 0, 1, nil, "")
	require.NoError(t, err)
	assert.ErrorIs(t, f.SetEpochTimeSeries([]interface{}{foreignEp}, []interface{}{s}), ErrNotFound)

	// Anything else is rejected outright.
	assert.ErrorIs(t, f.SetEpochTimeSeries([]interface{}{42}, []interface{}{s}), ErrNotFound)
	assert.ErrorIs(t, f.SetEpochTimeSeries([]interface{}{ep}, []interface{}{42}), ErrNotFound)
}

func TestEpochAddTimeSeriesDedupes(t *testing.T) {
	f := NewFile("a.nwb", "s")
	s := NewTimeSeries("s1", nil, "volts")
	require.NoError(t, f.AddRawTimeSeries(s))
	ep, err := f.CreateEpoch("e1", 0, 1, nil, "")
	require.NoError(t, err)

	first := ep.AddTimeSeries(s)
	first.SetRange(3, 7)
	second := ep.AddTimeSeries(s)
	assert.Same(t, first, second)

	start, count, ok := second.Range()
	require.True(t, ok)
	assert.Equal(t, 3, start)
	assert.Equal(t, 7, count)
}

func TestElectrodeGroupIndexing(t *testing.T) {
	f := NewFile("a.nwb", "s")

	names := []string{"shank0", "shank1", "shank2"}
	groups := make([]*ElectrodeGroup, len(names))
	for i, name := range names {
		g, err := f.CreateElectrodeGroup(name, [3]float64{float64(i), 0, 0}, "d", "dev", "loc", Impedance{Low: 1e6, High: 1e6})
		require.NoError(t, err)
		groups[i] = g
	}

	// Index reflects registration order and is stable by name or object.
	idx, err := f.ElectrodeGroupIndex("shank2")
	require.NoError(t, err)
	assert.Equal(t, 2, idx)

	idx, err = f.ElectrodeGroupIndex(groups[2])
	require.NoError(t, err)
	assert.Equal(t, 2, idx)

	_, err = f.ElectrodeGroupIndex("ghost")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.ElectrodeGroupIndex(42)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.CreateElectrodeGroup("shank0", [3]float64{}, "", "", "", Impedance{})
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestProcessingModules(t *testing.T) {
	f := NewFile("a.nwb", "s")
	m, err := f.CreateProcessingModule("spikes", "spike sorting output")
	require.NoError(t, err)

	_, err = m.CreateClustering("electrode 0", map[int]float64{0: 3.2}, []int{0, 0}, []float64{0.1, 0.2})
	require.NoError(t, err)

	// Clustering has a fixed name, so a second one collides.
	_, err = m.CreateClustering("electrode 1", nil, nil, nil)
	assert.ErrorIs(t, err, ErrDuplicateName)

	err = f.AddProcessingModule(NewModule("spikes", "again"))
	assert.ErrorIs(t, err, ErrDuplicateName)

	require.Len(t, f.Modules(), 1)
	assert.Same(t, m, f.Modules()[0])
	assert.Same(t, Container(f), m.Parent())
}
