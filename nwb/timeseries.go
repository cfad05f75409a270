package nwb

import "reflect"

// Defaults applied to data attributes when not set explicitly.
const (
	DefaultConversion = 1.0
	DefaultResolution = 0.0
)

// Series is implemented by TimeSeries and all of its variants.
type Series interface {
	Container
	// Base returns the embedded TimeSeries carrying the shared fields.
	Base() *TimeSeries
}

// TimeSeries holds sampled data over the session timeline. The data
// payload is either raw values or a reference to another series's data
// (shared on write, never copied). Timestamps come from an explicit
// array, a starting time plus sampling rate, or a reference to another
// series's timestamps.
type TimeSeries struct {
	container

	data     interface{} // raw payload; nil when dataLink is set
	dataLink Series

	timestamps     []float64
	timestampsLink Series
	startingTime   *float64
	rate           *float64

	unit        string
	conversion  float64
	resolution  float64
	description string
	comments    string
	source      string
	help        string
}

// NewTimeSeries creates a stand-alone TimeSeries. The series is not
// part of any file until attached through one of the NWBFile namespaces
// or an Interface.
func NewTimeSeries(name string, data interface{}, unit string, opts ...TimeSeriesOption) *TimeSeries {
	ts := &TimeSeries{
		container:  container{name: name, typeTag: TypeTimeSeries},
		data:       data,
		unit:       unit,
		conversion: DefaultConversion,
		resolution: DefaultResolution,
		help:       "General time series object",
	}
	for _, opt := range opts {
		opt(ts)
	}
	return ts
}

func (t *TimeSeries) Base() *TimeSeries { return t }

// Data returns the raw payload, nil when the series links to another
// series's data.
func (t *TimeSeries) Data() interface{} { return t.data }

// DataLink returns the series whose data this series shares, or nil.
func (t *TimeSeries) DataLink() Series { return t.dataLink }

// Timestamps returns the explicit timestamp array, or nil.
func (t *TimeSeries) Timestamps() []float64 { return t.timestamps }

// TimestampsLink returns the series whose timestamps this series
// shares, or nil.
func (t *TimeSeries) TimestampsLink() Series { return t.timestampsLink }

// StartingTime returns the regular-sampling description when the series
// uses a fixed start time and rate instead of explicit timestamps.
func (t *TimeSeries) StartingTime() (start, rate float64, ok bool) {
	if t.startingTime == nil || t.rate == nil {
		return 0, 0, false
	}
	return *t.startingTime, *t.rate, true
}

func (t *TimeSeries) Unit() string        { return t.unit }
func (t *TimeSeries) Conversion() float64 { return t.conversion }
func (t *TimeSeries) Resolution() float64 { return t.resolution }
func (t *TimeSeries) Description() string { return t.description }
func (t *TimeSeries) Comments() string    { return t.comments }
func (t *TimeSeries) Source() string      { return t.source }
func (t *TimeSeries) Help() string        { return t.help }

// NumSamples returns the sample count of the series's data, following
// data-sharing references. Returns 0 when the payload is not sized.
func (t *TimeSeries) NumSamples() int {
	cur := t
	seen := map[*TimeSeries]bool{}
	for cur.dataLink != nil {
		if seen[cur] {
			return 0
		}
		seen[cur] = true
		cur = cur.dataLink.Base()
	}
	if cur.data == nil {
		return 0
	}
	v := reflect.ValueOf(cur.data)
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		return v.Len()
	default:
		return 1
	}
}

// ElectricalSeries records voltage data acquired from a set of
// electrodes, identified by their registration indices on the file.
type ElectricalSeries struct {
	TimeSeries
	electrodeIdx []int
}

func NewElectricalSeries(name string, data interface{}, electrodeIdx []int, opts ...TimeSeriesOption) *ElectricalSeries {
	es := &ElectricalSeries{
		TimeSeries: TimeSeries{
			container:  container{name: name, typeTag: TypeElectricalSeries},
			data:       data,
			unit:       "volts",
			conversion: DefaultConversion,
			resolution: DefaultResolution,
			help:       "Stores acquired voltage data from extracellular recordings",
		},
		electrodeIdx: electrodeIdx,
	}
	for _, opt := range opts {
		opt(&es.TimeSeries)
	}
	return es
}

// ElectrodeIdx returns the indices of the electrode groups this series
// was recorded from.
func (e *ElectricalSeries) ElectrodeIdx() []int { return e.electrodeIdx }

// SpatialSeries records positional data relative to a reference frame.
type SpatialSeries struct {
	TimeSeries
	referenceFrame string
}

func NewSpatialSeries(name string, data interface{}, referenceFrame string, opts ...TimeSeriesOption) *SpatialSeries {
	ss := &SpatialSeries{
		TimeSeries: TimeSeries{
			container:  container{name: name, typeTag: TypeSpatialSeries},
			data:       data,
			unit:       "meters",
			conversion: DefaultConversion,
			resolution: DefaultResolution,
			help:       "Stores points in space over time",
		},
		referenceFrame: referenceFrame,
	}
	for _, opt := range opts {
		opt(&ss.TimeSeries)
	}
	return ss
}

// ReferenceFrame describes the zero-position of the spatial data.
func (s *SpatialSeries) ReferenceFrame() string { return s.referenceFrame }

// AbstractFeatureSeries records the values of features derived from the
// raw data, one vector per sample.
type AbstractFeatureSeries struct {
	TimeSeries
	features     []string
	featureUnits []string
}

func NewAbstractFeatureSeries(name string, data interface{}, features, featureUnits []string, opts ...TimeSeriesOption) *AbstractFeatureSeries {
	as := &AbstractFeatureSeries{
		TimeSeries: TimeSeries{
			container:  container{name: name, typeTag: TypeAbstractFeatureSeries},
			data:       data,
			unit:       "see feature_units",
			conversion: DefaultConversion,
			resolution: DefaultResolution,
			help:       "Features of an applied stimulus",
		},
		features:     features,
		featureUnits: featureUnits,
	}
	for _, opt := range opts {
		opt(&as.TimeSeries)
	}
	return as
}

// Features returns the names of the recorded features.
func (a *AbstractFeatureSeries) Features() []string { return a.features }

// FeatureUnits returns the unit of measure per feature.
func (a *AbstractFeatureSeries) FeatureUnits() []string { return a.featureUnits }
