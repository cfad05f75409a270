package nwbio

import (
	"fmt"
	"sort"

	"github.com/robert-malhotra/go-nwb/internal/builder"
	"github.com/robert-malhotra/go-nwb/internal/spec"
	"github.com/robert-malhotra/go-nwb/nwb"
)

// Procedure produces a partial builder subtree for one container. A
// container's full subtree is the deep merge of every procedure
// registered for any type in its ancestor chain, base to derived.
type Procedure func(r *Renderer, c nwb.Container) (*builder.Group, error)

// Renderer dispatches render procedures by type tag.
type Renderer struct {
	tm    *spec.TypeMap
	procs map[string][]Procedure
}

// defaultRenderer is built once at init and read-only afterwards.
var defaultRenderer = buildDefaultRenderer()

// DefaultRenderer returns the process-wide renderer for the NWB
// container types.
func DefaultRenderer() *Renderer { return defaultRenderer }

// NewRenderer creates an empty renderer over the given type map.
func NewRenderer(tm *spec.TypeMap) *Renderer {
	return &Renderer{
		tm:    tm,
		procs: make(map[string][]Procedure),
	}
}

// TypeMap returns the renderer's spec registry.
func (r *Renderer) TypeMap() *spec.TypeMap { return r.tm }

// Register adds a procedure for a type tag. Registration happens at
// setup time only; the registry is never mutated during a write.
func (r *Renderer) Register(tag string, p Procedure) {
	r.procs[tag] = append(r.procs[tag], p)
}

func buildDefaultRenderer() *Renderer {
	r := NewRenderer(defaultTypeMap)
	r.Register(nwb.TypeFile, renderFile)
	r.Register(nwb.TypeTimeSeries, renderTimeSeries)
	r.Register(nwb.TypeElectricalSeries, renderElectricalSeries)
	r.Register(nwb.TypeSpatialSeries, renderSpatialSeries)
	r.Register(nwb.TypeAbstractFeatureSeries, renderAbstractFeatureSeries)
	r.Register(nwb.TypeEpoch, renderEpoch)
	r.Register(nwb.TypeModule, renderModule)
	r.Register(nwb.TypeInterface, renderInterface)
	r.Register(nwb.TypeClustering, renderClustering)
	return r
}

// Render produces the builder subtree for one container by running
// every applicable procedure base-to-derived and deep-merging the
// partial results, so specializations extend generalizations.
func (r *Renderer) Render(c nwb.Container) (*builder.Group, error) {
	chain, err := r.tm.Ancestors(c.TypeTag())
	if err != nil {
		return nil, err
	}

	var out *builder.Group
	for _, tag := range chain {
		for _, proc := range r.procs[tag] {
			part, err := proc(r, c)
			if err != nil {
				return nil, err
			}
			if out == nil {
				out = part
				continue
			}
			if err := builder.DeepMerge(out, part); err != nil {
				return nil, fmt.Errorf("rendering %s %q: %w", c.TypeTag(), c.Name(), err)
			}
		}
	}
	if out == nil {
		return nil, fmt.Errorf("type %s: %w", c.TypeTag(), ErrNoProcedure)
	}
	return out, nil
}

// applySpecs attaches the values declared by one type in c's chain.
//
// Pass one attaches every entry whose declared parent is the group
// being rendered. Pass two resolves entries whose spec names a sibling
// parent, attaching them to the already-created target; a target that
// was never created is a schema-authoring error.
//
// A declared field with no entry in values is ErrMissingField. A nil
// value marks an optional field that is absent on this container and
// is skipped.
func (r *Renderer) applySpecs(c nwb.Container, declaredBy string, g *builder.Group, values map[string]interface{}) error {
	specs, err := r.tm.ChildrenSpecs(c.TypeTag())
	if err != nil {
		return err
	}

	var deferred []spec.Spec
	for _, s := range specs {
		if s.DeclaredBy != declaredBy {
			continue
		}
		if s.Parent != "" {
			deferred = append(deferred, s)
			continue
		}
		if err := r.attachSpec(c, g, s, values); err != nil {
			return err
		}
	}

	for _, s := range deferred {
		v, skip, err := specValue(c, s, values)
		if err != nil {
			return err
		}
		if skip {
			continue
		}
		target := g.Child(s.Parent)
		if target == nil {
			return fmt.Errorf("type %s field %q: parent %q: %w",
				c.TypeTag(), s.Name, s.Parent, spec.ErrSpecParentMissing)
		}
		switch t := target.(type) {
		case *builder.Group:
			if err := attachValue(t, s, v); err != nil {
				return err
			}
		case *builder.Dataset:
			if s.Kind != spec.KindAttribute {
				return fmt.Errorf("type %s field %q: %s under dataset %q: %w",
					c.TypeTag(), s.Name, s.Kind, s.Parent, spec.ErrSpecParentMissing)
			}
			if err := t.SetAttribute(s.Name, v); err != nil {
				return err
			}
		default:
			return fmt.Errorf("type %s field %q: parent %q is a link: %w",
				c.TypeTag(), s.Name, s.Parent, spec.ErrSpecParentMissing)
		}
	}
	return nil
}

func (r *Renderer) attachSpec(c nwb.Container, g *builder.Group, s spec.Spec, values map[string]interface{}) error {
	v, skip, err := specValue(c, s, values)
	if err != nil {
		return err
	}
	if skip {
		return nil
	}
	if s.Kind == spec.KindGroup {
		return r.attachContainers(g, s, v)
	}
	return attachValue(g, s, v)
}

func specValue(c nwb.Container, s spec.Spec, values map[string]interface{}) (interface{}, bool, error) {
	v, ok := values[s.Name]
	if !ok {
		return nil, false, fmt.Errorf("type %s: field %q: %w", c.TypeTag(), s.Name, ErrMissingField)
	}
	if v == nil {
		return nil, true, nil
	}
	return v, false, nil
}

func attachValue(g *builder.Group, s spec.Spec, v interface{}) error {
	switch s.Kind {
	case spec.KindAttribute:
		return g.SetAttribute(s.Name, v)
	case spec.KindDataset:
		_, err := g.AddDataset(s.Name, v)
		return err
	default:
		return fmt.Errorf("cannot attach %s spec %q as a value", s.Kind, s.Name)
	}
}

// attachContainers renders a group-valued field: a single container, a
// slice, or a name-keyed map of containers, each rendered recursively
// and attached under the group named by the spec (or inline).
func (r *Renderer) attachContainers(g *builder.Group, s spec.Spec, v interface{}) error {
	target := g
	if !s.Inline {
		sub, err := g.Group(s.Name)
		if err != nil {
			if sub, err = g.AddGroup(s.Name); err != nil {
				return err
			}
		}
		target = sub
	}

	kids, err := containerList(v)
	if err != nil {
		return fmt.Errorf("group spec %q: %w", s.Name, err)
	}
	for _, kid := range kids {
		rendered, err := r.Render(kid)
		if err != nil {
			return err
		}
		if err := target.AttachGroup(rendered); err != nil {
			return err
		}
	}
	return nil
}

func containerList(v interface{}) ([]nwb.Container, error) {
	switch val := v.(type) {
	case nwb.Container:
		return []nwb.Container{val}, nil
	case []nwb.Container:
		return val, nil
	case map[string]nwb.Container:
		names := make([]string, 0, len(val))
		for name := range val {
			names = append(names, name)
		}
		sort.Strings(names)
		out := make([]nwb.Container, 0, len(val))
		for _, name := range names {
			out = append(out, val[name])
		}
		return out, nil
	default:
		return nil, fmt.Errorf("value %T is not a container collection", v)
	}
}
