package nwb

// Type tags identify every container kind. Dispatch in the renderer and
// the path resolver is keyed by tag rather than by runtime reflection;
// each tag's ancestor chain is declared explicitly below.
const (
	TypeContainer             = "NWBContainer"
	TypeFile                  = "NWBFile"
	TypeTimeSeries            = "TimeSeries"
	TypeElectricalSeries      = "ElectricalSeries"
	TypeSpatialSeries         = "SpatialSeries"
	TypeAbstractFeatureSeries = "AbstractFeatureSeries"
	TypeEpoch                 = "Epoch"
	TypeElectrodeGroup        = "ElectrodeGroup"
	TypeModule                = "Module"
	TypeInterface             = "Interface"
	TypeClustering            = "Clustering"
)

// ancestry declares, per type tag, the chain from most base to most
// derived. The table is read-only after package initialization.
var ancestry = map[string][]string{
	TypeContainer:             {TypeContainer},
	TypeFile:                  {TypeContainer, TypeFile},
	TypeTimeSeries:            {TypeContainer, TypeTimeSeries},
	TypeElectricalSeries:      {TypeContainer, TypeTimeSeries, TypeElectricalSeries},
	TypeSpatialSeries:         {TypeContainer, TypeTimeSeries, TypeSpatialSeries},
	TypeAbstractFeatureSeries: {TypeContainer, TypeTimeSeries, TypeAbstractFeatureSeries},
	TypeEpoch:                 {TypeContainer, TypeEpoch},
	TypeElectrodeGroup:        {TypeContainer, TypeElectrodeGroup},
	TypeModule:                {TypeContainer, TypeModule},
	TypeInterface:             {TypeContainer, TypeInterface},
	TypeClustering:            {TypeContainer, TypeInterface, TypeClustering},
}

// AncestryTable returns a copy of the full tag-to-chain table, for
// building type maps keyed by the same tags.
func AncestryTable() map[string][]string {
	out := make(map[string][]string, len(ancestry))
	for tag, chain := range ancestry {
		out[tag] = append([]string(nil), chain...)
	}
	return out
}

// Ancestry returns the ancestor chain for a type tag, ordered base to
// derived and including the tag itself. The returned slice is a copy.
func Ancestry(tag string) ([]string, error) {
	chain, ok := ancestry[tag]
	if !ok {
		return nil, ErrUnknownType
	}
	out := make([]string, len(chain))
	copy(out, chain)
	return out, nil
}

// IsA reports whether the type tagged by tag has ancestor in its chain.
func IsA(tag, ancestor string) bool {
	for _, a := range ancestry[tag] {
		if a == ancestor {
			return true
		}
	}
	return false
}

// Container is a domain object participating in the ownership tree.
type Container interface {
	// Name is unique within the immediate parent's namespace.
	Name() string
	// TypeTag identifies the concrete kind for dispatch.
	TypeTag() string
	// Parent is the weak back-reference to the owner, nil for a root.
	Parent() Container

	setParent(p Container) error
}

// container is the embedded base for every concrete kind.
type container struct {
	name    string
	typeTag string
	parent  Container
}

func (c *container) Name() string      { return c.name }
func (c *container) TypeTag() string   { return c.typeTag }
func (c *container) Parent() Container { return c.parent }

// setParent establishes ownership. Ownership is exclusive: attaching a
// container that already has a parent fails.
func (c *container) setParent(p Container) error {
	if c.parent != nil && p != nil {
		return ErrAlreadyOwned
	}
	c.parent = p
	return nil
}

// adopt attaches child under parent, establishing the back-reference.
func adopt(parent, child Container) error {
	return child.setParent(parent)
}
