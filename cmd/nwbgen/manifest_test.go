package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleManifest = `
session_description = "probe insertion test"
experimenter = "j. doe"
lab = "systems neuro lab"
start_time = "2016-03-14T09:26:53Z"

[[electrode_groups]]
name = "shank0"
coord = [1.0, 2.0, 3.0]
description = "tetrode"
device = "probe-a"
location = "CA1"
impedance = [1e6]

[[acquisition]]
name = "lfp"
samples = 100
rate = 1000.0
electrodes = [0]

[[stimulus]]
name = "pulses"
unit = "volts"
timestamps = [0.0, 0.5, 1.0]

[[epochs]]
name = "trial1"
start = 0.0
stop = 0.75
tags = ["baseline"]
series = ["pulses"]
`

func writeSample(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "session.toml")
	require.NoError(t, os.WriteFile(p, []byte(sampleManifest), 0o644))
	return p
}

func TestLoadManifest(t *testing.T) {
	m, err := loadManifest(writeSample(t))
	require.NoError(t, err)

	assert.Equal(t, "probe insertion test", m.SessionDescription)
	require.Len(t, m.Acquisition, 1)
	assert.Equal(t, 100, m.Acquisition[0].Samples)
	require.Len(t, m.Stimulus, 1)
	assert.Equal(t, []float64{0, 0.5, 1}, m.Stimulus[0].Timestamps)
	require.Len(t, m.Epochs, 1)
	assert.Equal(t, []string{"pulses"}, m.Epochs[0].Series)
}

func TestLoadManifestMissing(t *testing.T) {
	_, err := loadManifest(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestBuildFile(t *testing.T) {
	m, err := loadManifest(writeSample(t))
	require.NoError(t, err)

	f, err := buildFile(m, "session.nwb")
	require.NoError(t, err)

	assert.Equal(t, "session.nwb 2016-03-14T09:26:53Z", f.Identifier())
	assert.NotEmpty(t, f.SessionID(), "session id defaults to a generated one")
	require.Len(t, f.RawData(), 1)
	assert.Equal(t, "lfp", f.RawData()[0].Name())
	require.Len(t, f.Stimulus(), 1)
	require.Len(t, f.Epochs(), 1)
	require.Len(t, f.Epochs()[0].TimeSeries(), 1)
	require.Len(t, f.ElectrodeGroups(), 1)
}

func TestBuildSeriesDefaults(t *testing.T) {
	s, err := buildSeries(SeriesManifest{Name: "a", Timestamps: []float64{0, 1, 2}})
	require.NoError(t, err)
	assert.Equal(t, 3, s.Base().NumSamples())
	assert.Equal(t, []float64{0, 1, 2}, s.Base().Timestamps())

	_, err = buildSeries(SeriesManifest{Name: "empty"})
	assert.Error(t, err)
}
