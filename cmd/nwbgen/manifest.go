package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"

	"github.com/robert-malhotra/go-nwb/nwb"
)

// Manifest describes one session to synthesize.
type Manifest struct {
	SessionDescription string `toml:"session_description"`
	SessionID          string `toml:"session_id"`
	Experimenter       string `toml:"experimenter"`
	Lab                string `toml:"lab"`
	Institution        string `toml:"institution"`
	StartTime          string `toml:"start_time"` // RFC 3339, optional

	Acquisition      []SeriesManifest `toml:"acquisition"`
	Stimulus         []SeriesManifest `toml:"stimulus"`
	StimulusTemplate []SeriesManifest `toml:"stimulus_template"`

	Epochs          []EpochManifest          `toml:"epochs"`
	ElectrodeGroups []ElectrodeGroupManifest `toml:"electrode_groups"`
}

// SeriesManifest describes one synthesized time series. Data is a
// ramp of the given sample count; timestamps come either from an
// explicit list or from a starting time and rate.
type SeriesManifest struct {
	Name         string    `toml:"name"`
	Unit         string    `toml:"unit"`
	Samples      int       `toml:"samples"`
	StartingTime float64   `toml:"starting_time"`
	Rate         float64   `toml:"rate"`
	Timestamps   []float64 `toml:"timestamps"`
	Electrodes   []int     `toml:"electrodes"`
	Description  string    `toml:"description"`
}

type EpochManifest struct {
	Name        string   `toml:"name"`
	Start       float64  `toml:"start"`
	Stop        float64  `toml:"stop"`
	Tags        []string `toml:"tags"`
	Description string   `toml:"description"`
	Series      []string `toml:"series"`
}

type ElectrodeGroupManifest struct {
	Name        string     `toml:"name"`
	Coord       [3]float64 `toml:"coord"`
	Description string     `toml:"description"`
	Device      string     `toml:"device"`
	Location    string     `toml:"location"`
	Impedance   []float64  `toml:"impedance"` // one value or [low, high]
}

func loadManifest(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := toml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %q: %w", path, err)
	}
	return &m, nil
}

// buildFile assembles the container graph the manifest describes.
func buildFile(m *Manifest, filename string) (*nwb.NWBFile, error) {
	opts := []nwb.FileOption{
		nwb.WithExperimenter(m.Experimenter),
		nwb.WithLab(m.Lab),
		nwb.WithInstitution(m.Institution),
	}
	sessionID := m.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	opts = append(opts, nwb.WithSessionID(sessionID))
	if m.StartTime != "" {
		t, err := time.Parse(time.RFC3339, m.StartTime)
		if err != nil {
			return nil, fmt.Errorf("parsing start_time: %w", err)
		}
		opts = append(opts, nwb.WithStartTime(t))
	}

	f := nwb.NewFile(filename, m.SessionDescription, opts...)

	for _, eg := range m.ElectrodeGroups {
		imp := nwb.Impedance{}
		switch len(eg.Impedance) {
		case 0:
		case 1:
			imp = nwb.Impedance{Low: eg.Impedance[0], High: eg.Impedance[0]}
		default:
			imp = nwb.Impedance{Low: eg.Impedance[0], High: eg.Impedance[1]}
		}
		if _, err := f.CreateElectrodeGroup(eg.Name, eg.Coord, eg.Description, eg.Device, eg.Location, imp); err != nil {
			return nil, err
		}
	}

	add := func(sm SeriesManifest, attach func(nwb.Series) error) error {
		s, err := buildSeries(sm)
		if err != nil {
			return err
		}
		return attach(s)
	}
	for _, sm := range m.Acquisition {
		if err := add(sm, f.AddRawTimeSeries); err != nil {
			return nil, err
		}
	}
	for _, sm := range m.Stimulus {
		if err := add(sm, f.AddStimulus); err != nil {
			return nil, err
		}
	}
	for _, sm := range m.StimulusTemplate {
		if err := add(sm, f.AddStimulusTemplate); err != nil {
			return nil, err
		}
	}

	for _, em := range m.Epochs {
		if _, err := f.CreateEpoch(em.Name, em.Start, em.Stop, em.Tags, em.Description); err != nil {
			return nil, err
		}
		if len(em.Series) > 0 {
			refs := make([]interface{}, len(em.Series))
			for i, name := range em.Series {
				refs[i] = name
			}
			if err := f.SetEpochTimeSeries([]interface{}{em.Name}, refs); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}

func buildSeries(sm SeriesManifest) (nwb.Series, error) {
	if sm.Samples <= 0 && len(sm.Timestamps) > 0 {
		sm.Samples = len(sm.Timestamps)
	}
	if sm.Samples <= 0 {
		return nil, fmt.Errorf("series %q: no sample count", sm.Name)
	}
	data := make([]float64, sm.Samples)
	for i := range data {
		data[i] = float64(i)
	}

	var opts []nwb.TimeSeriesOption
	if len(sm.Timestamps) > 0 {
		opts = append(opts, nwb.WithTimestamps(sm.Timestamps))
	} else {
		rate := sm.Rate
		if rate == 0 {
			rate = 1.0
		}
		opts = append(opts, nwb.WithStartingTime(sm.StartingTime, rate))
	}
	if sm.Description != "" {
		opts = append(opts, nwb.WithDescription(sm.Description))
	}

	if len(sm.Electrodes) > 0 {
		return nwb.NewElectricalSeries(sm.Name, data, sm.Electrodes, opts...), nil
	}
	unit := sm.Unit
	if unit == "" {
		unit = "unknown"
	}
	return nwb.NewTimeSeries(sm.Name, data, unit, opts...), nil
}
