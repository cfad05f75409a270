package nwb

// Epoch is a named interval over the experiment timeline. Epochs track
// which time series overlap the interval; for each referenced series
// the membership record holds the sample range falling inside the
// window, computed during write if not set explicitly.
type Epoch struct {
	container

	start       float64
	stop        float64
	description string
	tags        []string

	series map[string]*EpochSeries
	order  []string
}

func newEpoch(name string, start, stop float64, tags []string, description string) *Epoch {
	return &Epoch{
		container:   container{name: name, typeTag: TypeEpoch},
		start:       start,
		stop:        stop,
		description: description,
		tags:        append([]string(nil), tags...),
		series:      make(map[string]*EpochSeries),
	}
}

func (e *Epoch) Start() float64      { return e.start }
func (e *Epoch) Stop() float64       { return e.stop }
func (e *Epoch) Description() string { return e.description }

// Tags returns the epoch's tags in declaration order.
func (e *Epoch) Tags() []string { return append([]string(nil), e.tags...) }

// AddTimeSeries records that the epoch overlaps s. Adding the same
// series twice returns the existing membership record.
func (e *Epoch) AddTimeSeries(s Series) *EpochSeries {
	if es, ok := e.series[s.Name()]; ok {
		return es
	}
	es := &EpochSeries{series: s}
	e.series[s.Name()] = es
	e.order = append(e.order, s.Name())
	return es
}

// TimeSeries returns the membership records in insertion order.
func (e *Epoch) TimeSeries() []*EpochSeries {
	out := make([]*EpochSeries, 0, len(e.order))
	for _, name := range e.order {
		out = append(out, e.series[name])
	}
	return out
}

// EpochSeries ties an epoch to one referenced time series. The sample
// range is nil until computed by the interval indexer or set by the
// caller from a precomputed source.
type EpochSeries struct {
	series   Series
	startIdx *int
	count    *int
}

// Series returns the referenced time series.
func (es *EpochSeries) Series() Series { return es.series }

// SetRange records a precomputed sample range; the interval indexer
// leaves such records untouched.
func (es *EpochSeries) SetRange(startIdx, count int) {
	es.startIdx = &startIdx
	es.count = &count
}

// Range returns the sample range, ok=false when not yet computed.
func (es *EpochSeries) Range() (startIdx, count int, ok bool) {
	if es.startIdx == nil || es.count == nil {
		return 0, 0, false
	}
	return *es.startIdx, *es.count, true
}
