package nwb

// Impedance is an electrode impedance, either a scalar (Low == High)
// or a range. The zero value means unmeasured.
type Impedance struct {
	Low  float64
	High float64
}

// Scalar reports whether the impedance is a single value.
func (i Impedance) Scalar() bool { return i.Low == i.High }

// ElectrodeGroup describes a physical recording probe, shank or
// tetrode. Groups are registered on the file in insertion order; the
// resulting index is what ElectricalSeries electrode lists refer to.
type ElectrodeGroup struct {
	container

	coord       [3]float64
	description string
	device      string
	location    string
	impedance   Impedance
}

// NewElectrodeGroup creates a stand-alone electrode group; register it
// with NWBFile.SetElectrodeGroup to assign its index.
func NewElectrodeGroup(name string, coord [3]float64, description, device, location string, impedance Impedance) *ElectrodeGroup {
	return &ElectrodeGroup{
		container:   container{name: name, typeTag: TypeElectrodeGroup},
		coord:       coord,
		description: description,
		device:      device,
		location:    location,
		impedance:   impedance,
	}
}

func (g *ElectrodeGroup) Coord() [3]float64    { return g.coord }
func (g *ElectrodeGroup) Description() string  { return g.description }
func (g *ElectrodeGroup) Device() string       { return g.device }
func (g *ElectrodeGroup) Location() string     { return g.location }
func (g *ElectrodeGroup) Impedance() Impedance { return g.impedance }
