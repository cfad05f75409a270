package nwb

import (
	"fmt"
	"time"
)

// Version is the file format version string written to every file.
const Version = "NWB-1.0.6"

// NWBFile is the root container: one recording session and everything
// persisted with it. Time series live in three disjoint name-keyed
// namespaces (raw acquisition, stimulus, stimulus template).
type NWBFile struct {
	container

	filename           string
	sessionDescription string
	startTime          time.Time
	createDate         time.Time
	identifier         string

	// Recommended session metadata, rendered under general/ when set.
	experimenter          string
	experimentDescription string
	sessionID             string
	lab                   string
	institution           string

	rawData          map[string]Series
	rawOrder         []string
	stimulus         map[string]Series
	stimulusOrder    []string
	stimulusTemplate map[string]Series
	templateOrder    []string

	epochs     map[string]*Epoch
	epochOrder []string

	modules     map[string]*Module
	moduleOrder []string

	electrodeGroups map[string]*ElectrodeGroup
	electrodeOrder  []string
	electrodeIdx    map[string]int
}

// FileOption configures an NWBFile at construction.
type FileOption func(*NWBFile)

// WithStartTime overrides the session start time (default: now, UTC).
func WithStartTime(t time.Time) FileOption {
	return func(f *NWBFile) { f.startTime = t }
}

// WithIdentifier overrides the derived file identifier.
func WithIdentifier(id string) FileOption {
	return func(f *NWBFile) { f.identifier = id }
}

// WithExperimenter names the person who performed the experiment.
func WithExperimenter(s string) FileOption {
	return func(f *NWBFile) { f.experimenter = s }
}

// WithExperimentDescription sets the general experiment description.
func WithExperimentDescription(s string) FileOption {
	return func(f *NWBFile) { f.experimentDescription = s }
}

// WithSessionID sets the lab-specific session identifier.
func WithSessionID(s string) FileOption {
	return func(f *NWBFile) { f.sessionID = s }
}

// WithLab names the lab where the experiment was performed.
func WithLab(s string) FileOption {
	return func(f *NWBFile) { f.lab = s }
}

// WithInstitution names the institution where the experiment was
// performed.
func WithInstitution(s string) FileOption {
	return func(f *NWBFile) { f.institution = s }
}

// NewFile creates the root container for one session. The identifier
// defaults to the filename joined with the ISO-8601 start time.
func NewFile(filename, sessionDescription string, opts ...FileOption) *NWBFile {
	f := &NWBFile{
		container:          container{name: filename, typeTag: TypeFile},
		filename:           filename,
		sessionDescription: sessionDescription,
		startTime:          time.Now().UTC(),
		createDate:         time.Now().UTC(),
		rawData:            make(map[string]Series),
		stimulus:           make(map[string]Series),
		stimulusTemplate:   make(map[string]Series),
		epochs:             make(map[string]*Epoch),
		modules:            make(map[string]*Module),
		electrodeGroups:    make(map[string]*ElectrodeGroup),
		electrodeIdx:       make(map[string]int),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.identifier == "" {
		f.identifier = fmt.Sprintf("%s %s", f.filename, f.startTime.UTC().Format("2006-01-02T15:04:05Z"))
	}
	return f
}

func (f *NWBFile) Filename() string           { return f.filename }
func (f *NWBFile) SessionDescription() string { return f.sessionDescription }
func (f *NWBFile) StartTime() time.Time       { return f.startTime }
func (f *NWBFile) CreateDate() time.Time      { return f.createDate }
func (f *NWBFile) Identifier() string         { return f.identifier }

func (f *NWBFile) Experimenter() string          { return f.experimenter }
func (f *NWBFile) ExperimentDescription() string { return f.experimentDescription }
func (f *NWBFile) SessionID() string             { return f.sessionID }
func (f *NWBFile) Lab() string                   { return f.lab }
func (f *NWBFile) Institution() string           { return f.institution }

// AddRawTimeSeries attaches a series to the raw acquisition namespace.
func (f *NWBFile) AddRawTimeSeries(s Series) error {
	return f.setTimeSeries(f.rawData, &f.rawOrder, s)
}

// AddStimulus attaches a series to the stimulus namespace.
func (f *NWBFile) AddStimulus(s Series) error {
	return f.setTimeSeries(f.stimulus, &f.stimulusOrder, s)
}

// AddStimulusTemplate attaches a series to the stimulus template
// namespace.
func (f *NWBFile) AddStimulusTemplate(s Series) error {
	return f.setTimeSeries(f.stimulusTemplate, &f.templateOrder, s)
}

func (f *NWBFile) setTimeSeries(ns map[string]Series, order *[]string, s Series) error {
	name := s.Name()
	if _, ok := f.rawData[name]; ok {
		return fmtDuplicate("file", f.filename, name)
	}
	if _, ok := f.stimulus[name]; ok {
		return fmtDuplicate("file", f.filename, name)
	}
	if _, ok := f.stimulusTemplate[name]; ok {
		return fmtDuplicate("file", f.filename, name)
	}
	if err := adopt(f, s); err != nil {
		return fmt.Errorf("attaching series %q: %w", name, err)
	}
	ns[name] = s
	*order = append(*order, name)
	return nil
}

// IsRawData reports whether s lives in the raw acquisition namespace.
func (f *NWBFile) IsRawData(s Series) bool { return f.inNamespace(f.rawData, s) }

// IsStimulus reports whether s lives in the stimulus namespace.
func (f *NWBFile) IsStimulus(s Series) bool { return f.inNamespace(f.stimulus, s) }

// IsStimulusTemplate reports whether s lives in the stimulus template
// namespace.
func (f *NWBFile) IsStimulusTemplate(s Series) bool { return f.inNamespace(f.stimulusTemplate, s) }

func (f *NWBFile) inNamespace(ns map[string]Series, s Series) bool {
	got, ok := ns[s.Name()]
	return ok && got == s
}

// RawData returns the raw acquisition series in insertion order.
func (f *NWBFile) RawData() []Series { return seriesInOrder(f.rawData, f.rawOrder) }

// Stimulus returns the stimulus series in insertion order.
func (f *NWBFile) Stimulus() []Series { return seriesInOrder(f.stimulus, f.stimulusOrder) }

// StimulusTemplate returns the stimulus template series in insertion
// order.
func (f *NWBFile) StimulusTemplate() []Series {
	return seriesInOrder(f.stimulusTemplate, f.templateOrder)
}

func seriesInOrder(ns map[string]Series, order []string) []Series {
	out := make([]Series, 0, len(order))
	for _, name := range order {
		out = append(out, ns[name])
	}
	return out
}

// TimeSeries looks a series up by name across the three namespaces.
func (f *NWBFile) TimeSeries(name string) (Series, error) {
	for _, ns := range []map[string]Series{f.rawData, f.stimulus, f.stimulusTemplate} {
		if s, ok := ns[name]; ok {
			return s, nil
		}
	}
	return nil, fmt.Errorf("time series %q: %w", name, ErrNotFound)
}

// CreateEpoch creates a named epoch spanning [start, stop] and attaches
// it to the file.
func (f *NWBFile) CreateEpoch(name string, start, stop float64, tags []string, description string) (*Epoch, error) {
	if stop < start {
		return nil, fmt.Errorf("epoch %q [%g, %g]: %w", name, start, stop, ErrInvalidInterval)
	}
	if _, ok := f.epochs[name]; ok {
		return nil, fmtDuplicate("file", f.filename, name)
	}
	ep := newEpoch(name, start, stop, tags, description)
	if err := adopt(f, ep); err != nil {
		return nil, err
	}
	f.epochs[name] = ep
	f.epochOrder = append(f.epochOrder, name)
	return ep, nil
}

// Epoch returns the named epoch.
func (f *NWBFile) Epoch(name string) (*Epoch, error) {
	ep, ok := f.epochs[name]
	if !ok {
		return nil, fmt.Errorf("epoch %q: %w", name, ErrNotFound)
	}
	return ep, nil
}

// Epochs returns the file's epochs in insertion order.
func (f *NWBFile) Epochs() []*Epoch {
	out := make([]*Epoch, 0, len(f.epochOrder))
	for _, name := range f.epochOrder {
		out = append(out, f.epochs[name])
	}
	return out
}

// SetEpochTimeSeries adds every given series to every given epoch's
// membership set. Epochs are given by name or *Epoch, series by name or
// Series; all must already belong to the file.
func (f *NWBFile) SetEpochTimeSeries(epochs, series []interface{}) error {
	eps := make([]*Epoch, 0, len(epochs))
	for _, e := range epochs {
		switch v := e.(type) {
		case string:
			ep, err := f.Epoch(v)
			if err != nil {
				return err
			}
			eps = append(eps, ep)
		case *Epoch:
			if f.epochs[v.Name()] != v {
				return fmt.Errorf("epoch %q: %w", v.Name(), ErrNotFound)
			}
			eps = append(eps, v)
		default:
			return fmt.Errorf("epoch given as %T: %w", e, ErrNotFound)
		}
	}
	tss := make([]Series, 0, len(series))
	for _, s := range series {
		switch v := s.(type) {
		case string:
			ts, err := f.TimeSeries(v)
			if err != nil {
				return err
			}
			tss = append(tss, ts)
		case Series:
			got, err := f.TimeSeries(v.Name())
			if err != nil || got != v {
				return fmt.Errorf("time series %q: %w", v.Name(), ErrNotFound)
			}
			tss = append(tss, v)
		default:
			return fmt.Errorf("time series given as %T: %w", s, ErrNotFound)
		}
	}
	for _, ep := range eps {
		for _, ts := range tss {
			ep.AddTimeSeries(ts)
		}
	}
	return nil
}

// CreateElectrodeGroup creates and registers an electrode group,
// returning it with its assigned index.
func (f *NWBFile) CreateElectrodeGroup(name string, coord [3]float64, description, device, location string, impedance Impedance) (*ElectrodeGroup, error) {
	g := NewElectrodeGroup(name, coord, description, device, location, impedance)
	if _, err := f.SetElectrodeGroup(g); err != nil {
		return nil, err
	}
	return g, nil
}

// SetElectrodeGroup registers an electrode group and assigns it the
// next insertion-order index, which is returned.
func (f *NWBFile) SetElectrodeGroup(g *ElectrodeGroup) (int, error) {
	if _, ok := f.electrodeGroups[g.Name()]; ok {
		return 0, fmtDuplicate("file", f.filename, g.Name())
	}
	if err := adopt(f, g); err != nil {
		return 0, err
	}
	idx := len(f.electrodeOrder)
	f.electrodeGroups[g.Name()] = g
	f.electrodeIdx[g.Name()] = idx
	f.electrodeOrder = append(f.electrodeOrder, g.Name())
	return idx, nil
}

// ElectrodeGroupIndex returns the registration index of an electrode
// group, given either its name or the group itself.
func (f *NWBFile) ElectrodeGroupIndex(group interface{}) (int, error) {
	var name string
	switch g := group.(type) {
	case string:
		name = g
	case *ElectrodeGroup:
		name = g.Name()
	default:
		return 0, fmt.Errorf("electrode group lookup by %T: %w", group, ErrNotFound)
	}
	idx, ok := f.electrodeIdx[name]
	if !ok {
		return 0, fmt.Errorf("electrode group %q: %w", name, ErrNotFound)
	}
	return idx, nil
}

// ElectrodeGroup returns the named electrode group.
func (f *NWBFile) ElectrodeGroup(name string) (*ElectrodeGroup, error) {
	g, ok := f.electrodeGroups[name]
	if !ok {
		return nil, fmt.Errorf("electrode group %q: %w", name, ErrNotFound)
	}
	return g, nil
}

// ElectrodeGroups returns the registered groups in insertion order.
func (f *NWBFile) ElectrodeGroups() []*ElectrodeGroup {
	out := make([]*ElectrodeGroup, 0, len(f.electrodeOrder))
	for _, name := range f.electrodeOrder {
		out = append(out, f.electrodeGroups[name])
	}
	return out
}

// CreateProcessingModule creates a named processing module and attaches
// it to the file.
func (f *NWBFile) CreateProcessingModule(name, description string) (*Module, error) {
	m := NewModule(name, description)
	if err := f.AddProcessingModule(m); err != nil {
		return nil, err
	}
	return m, nil
}

// AddProcessingModule attaches an existing module to the file.
func (f *NWBFile) AddProcessingModule(m *Module) error {
	if _, ok := f.modules[m.Name()]; ok {
		return fmtDuplicate("file", f.filename, m.Name())
	}
	if err := adopt(f, m); err != nil {
		return err
	}
	f.modules[m.Name()] = m
	f.moduleOrder = append(f.moduleOrder, m.Name())
	return nil
}

// Modules returns the processing modules in insertion order.
func (f *NWBFile) Modules() []*Module {
	out := make([]*Module, 0, len(f.moduleOrder))
	for _, name := range f.moduleOrder {
		out = append(out, f.modules[name])
	}
	return out
}

func fmtDuplicate(kind, owner, name string) error {
	return fmt.Errorf("%s %q: name %q: %w", kind, owner, name, ErrDuplicateName)
}
