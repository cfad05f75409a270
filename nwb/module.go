package nwb

// IfaceContainer is implemented by Interface and its variants.
type IfaceContainer interface {
	Container
	// Iface returns the embedded Interface carrying the shared fields.
	Iface() *Interface
}

// Module is a named processing module grouping the interfaces produced
// by one analysis stage.
type Module struct {
	container

	description string
	interfaces  map[string]IfaceContainer
	order       []string
}

// NewModule creates a stand-alone processing module; attach it with
// NWBFile.AddProcessingModule.
func NewModule(name, description string) *Module {
	return &Module{
		container:   container{name: name, typeTag: TypeModule},
		description: description,
		interfaces:  make(map[string]IfaceContainer),
	}
}

func (m *Module) Description() string { return m.description }

// AddInterface attaches an interface to the module.
func (m *Module) AddInterface(ic IfaceContainer) error {
	if _, ok := m.interfaces[ic.Name()]; ok {
		return fmtDuplicate("module", m.name, ic.Name())
	}
	if err := adopt(m, ic); err != nil {
		return err
	}
	m.interfaces[ic.Name()] = ic
	m.order = append(m.order, ic.Name())
	return nil
}

// CreateClustering creates a Clustering interface owned by the module.
func (m *Module) CreateClustering(source string, peakOverRMS map[int]float64, num []int, times []float64) (*Clustering, error) {
	c := NewClustering(source, peakOverRMS, num, times)
	if err := m.AddInterface(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Interfaces returns the module's interfaces in insertion order.
func (m *Module) Interfaces() []IfaceContainer {
	out := make([]IfaceContainer, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.interfaces[name])
	}
	return out
}

// Interface is the base of all processing-result containers owned by a
// module. Its name doubles as the group name under the module.
type Interface struct {
	container

	source string
	help   string
}

// NewInterface creates a generic interface with the given type name.
func NewInterface(name, source string) *Interface {
	return &Interface{
		container: container{name: name, typeTag: TypeInterface},
		source:    source,
		help:      "Generic processing interface",
	}
}

func (i *Interface) Iface() *Interface { return i }
func (i *Interface) Source() string    { return i.source }
func (i *Interface) Help() string      { return i.help }

// Clustering describes clustered spike data: per-cluster peak-over-RMS
// ratios, cluster number per event, and event times.
type Clustering struct {
	Interface

	peakOverRMS map[int]float64
	num         []int
	times       []float64
}

func NewClustering(source string, peakOverRMS map[int]float64, num []int, times []float64) *Clustering {
	c := &Clustering{
		Interface: Interface{
			container: container{name: "Clustering", typeTag: TypeClustering},
			source:    source,
			help:      "Clustered spike data, whether from automatic clustering tools or manual sorting",
		},
		peakOverRMS: make(map[int]float64, len(peakOverRMS)),
		num:         append([]int(nil), num...),
		times:       append([]float64(nil), times...),
	}
	for k, v := range peakOverRMS {
		c.peakOverRMS[k] = v
	}
	return c
}

// PeakOverRMS returns the cluster number to peak-over-RMS mapping.
func (c *Clustering) PeakOverRMS() map[int]float64 { return c.peakOverRMS }

// Num returns the cluster number of each spike event.
func (c *Clustering) Num() []int { return c.num }

// Times returns the time of each spike event.
func (c *Clustering) Times() []float64 { return c.times }
