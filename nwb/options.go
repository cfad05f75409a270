package nwb

// TimeSeriesOption configures a TimeSeries at construction.
type TimeSeriesOption func(*TimeSeries)

// WithTimestamps sets an explicit timestamp array, one per sample.
func WithTimestamps(ts []float64) TimeSeriesOption {
	return func(t *TimeSeries) {
		t.timestamps = ts
		t.startingTime = nil
		t.rate = nil
		t.timestampsLink = nil
	}
}

// WithStartingTime describes regular sampling from start at the given
// rate (samples per second), replacing explicit timestamps.
func WithStartingTime(start, rate float64) TimeSeriesOption {
	return func(t *TimeSeries) {
		t.startingTime = &start
		t.rate = &rate
		t.timestamps = nil
		t.timestampsLink = nil
	}
}

// WithDataLink makes the series share another series's data. The data
// is written once and referenced by link, never copied.
func WithDataLink(ref Series) TimeSeriesOption {
	return func(t *TimeSeries) {
		t.dataLink = ref
		t.data = nil
	}
}

// WithTimestampsLink makes the series share another series's
// timestamps.
func WithTimestampsLink(ref Series) TimeSeriesOption {
	return func(t *TimeSeries) {
		t.timestampsLink = ref
		t.timestamps = nil
		t.startingTime = nil
		t.rate = nil
	}
}

// WithUnit overrides the unit of measure for the data payload.
func WithUnit(unit string) TimeSeriesOption {
	return func(t *TimeSeries) { t.unit = unit }
}

// WithConversion sets the multiplier converting stored values to the
// declared unit.
func WithConversion(conversion float64) TimeSeriesOption {
	return func(t *TimeSeries) { t.conversion = conversion }
}

// WithResolution sets the smallest meaningful difference between
// stored values.
func WithResolution(resolution float64) TimeSeriesOption {
	return func(t *TimeSeries) { t.resolution = resolution }
}

// WithDescription sets the free-text description.
func WithDescription(description string) TimeSeriesOption {
	return func(t *TimeSeries) { t.description = description }
}

// WithComments sets free-text comments about the series.
func WithComments(comments string) TimeSeriesOption {
	return func(t *TimeSeries) { t.comments = comments }
}

// WithSource names where the data came from (device, presentation
// software, ...).
func WithSource(source string) TimeSeriesOption {
	return func(t *TimeSeries) { t.source = source }
}
