// Package builder is the backend-independent intermediate
// representation of the target hierarchical file: groups, datasets,
// attributes and the three link kinds, assembled in memory before any
// persistence happens.
package builder

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrDuplicateName = errors.New("duplicate name")
	ErrMergeConflict = errors.New("merge conflict")
	ErrNotFound      = errors.New("child not found")
)

// Node is any named child of a group: *Group, *Dataset, *SoftLink,
// *HardLink or *ExternalLink.
type Node interface {
	NodeName() string
}

// Group is a mutable builder for one group in the hierarchy. Children
// and attributes keep insertion order so repeated renders produce
// structurally identical trees.
type Group struct {
	name     string
	children map[string]Node
	order    []string

	attrs     map[string]interface{}
	attrOrder []string
}

// NewGroup creates an empty group builder.
func NewGroup(name string) *Group {
	return &Group{
		name:     name,
		children: make(map[string]Node),
		attrs:    make(map[string]interface{}),
	}
}

func (g *Group) NodeName() string { return g.name }

// Child returns the named child, or nil.
func (g *Group) Child(name string) Node { return g.children[name] }

// Group returns the named child group, or an error when absent or not
// a group.
func (g *Group) Group(name string) (*Group, error) {
	child, ok := g.children[name]
	if !ok {
		return nil, fmt.Errorf("group %q: %q: %w", g.name, name, ErrNotFound)
	}
	sub, ok := child.(*Group)
	if !ok {
		return nil, fmt.Errorf("group %q: %q is a %T, not a group", g.name, name, child)
	}
	return sub, nil
}

// Dataset returns the named child dataset, or an error when absent or
// not a dataset.
func (g *Group) Dataset(name string) (*Dataset, error) {
	child, ok := g.children[name]
	if !ok {
		return nil, fmt.Errorf("group %q: %q: %w", g.name, name, ErrNotFound)
	}
	ds, ok := child.(*Dataset)
	if !ok {
		return nil, fmt.Errorf("group %q: %q is a %T, not a dataset", g.name, name, child)
	}
	return ds, nil
}

// Children returns the group's children in insertion order.
func (g *Group) Children() []Node {
	out := make([]Node, 0, len(g.order))
	for _, name := range g.order {
		out = append(out, g.children[name])
	}
	return out
}

// Attributes returns the attribute names in insertion order.
func (g *Group) Attributes() []string {
	return append([]string(nil), g.attrOrder...)
}

// Attribute returns an attribute value.
func (g *Group) Attribute(name string) (interface{}, bool) {
	v, ok := g.attrs[name]
	return v, ok
}

func (g *Group) add(n Node) error {
	name := n.NodeName()
	if _, ok := g.children[name]; ok {
		return fmt.Errorf("group %q: child %q: %w", g.name, name, ErrDuplicateName)
	}
	g.children[name] = n
	g.order = append(g.order, name)
	return nil
}

// AddGroup creates and attaches an empty subgroup.
func (g *Group) AddGroup(name string) (*Group, error) {
	sub := NewGroup(name)
	if err := g.add(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// AttachGroup attaches an already-built subgroup.
func (g *Group) AttachGroup(sub *Group) error { return g.add(sub) }

// AddDataset creates and attaches a dataset with the given payload.
func (g *Group) AddDataset(name string, payload interface{}) (*Dataset, error) {
	ds := &Dataset{
		name:    name,
		payload: payload,
		attrs:   make(map[string]interface{}),
	}
	if err := g.add(ds); err != nil {
		return nil, err
	}
	return ds, nil
}

// SetAttribute sets a scalar or array attribute on the group. Setting
// an existing name to an equal value is a no-op; to a different value,
// an error.
func (g *Group) SetAttribute(name string, value interface{}) error {
	if old, ok := g.attrs[name]; ok {
		if equalValue(old, value) {
			return nil
		}
		return fmt.Errorf("group %q: attribute %q: %w", g.name, name, ErrDuplicateName)
	}
	g.attrs[name] = value
	g.attrOrder = append(g.attrOrder, name)
	return nil
}

// AddSoftLink attaches an in-file path reference.
func (g *Group) AddSoftLink(name, targetPath string) error {
	return g.add(&SoftLink{name: name, Path: targetPath})
}

// AddHardLink attaches an in-file strong alias to the object at
// targetPath.
func (g *Group) AddHardLink(name, targetPath string) error {
	return g.add(&HardLink{name: name, Path: targetPath})
}

// AddExternalLink attaches a reference into another file.
func (g *Group) AddExternalLink(name, file, targetPath string) error {
	return g.add(&ExternalLink{name: name, File: file, Path: targetPath})
}

// Dataset is a builder for one dataset: a payload plus attributes.
type Dataset struct {
	name    string
	payload interface{}

	attrs     map[string]interface{}
	attrOrder []string
}

func (d *Dataset) NodeName() string     { return d.name }
func (d *Dataset) Payload() interface{} { return d.payload }

// Attributes returns the attribute names in insertion order.
func (d *Dataset) Attributes() []string {
	return append([]string(nil), d.attrOrder...)
}

// Attribute returns an attribute value.
func (d *Dataset) Attribute(name string) (interface{}, bool) {
	v, ok := d.attrs[name]
	return v, ok
}

// AttributeMap returns the attributes as a map (for backend calls).
func (d *Dataset) AttributeMap() map[string]interface{} {
	out := make(map[string]interface{}, len(d.attrs))
	for k, v := range d.attrs {
		out[k] = v
	}
	return out
}

// SetAttribute sets a dataset attribute with the same semantics as
// Group.SetAttribute.
func (d *Dataset) SetAttribute(name string, value interface{}) error {
	if old, ok := d.attrs[name]; ok {
		if equalValue(old, value) {
			return nil
		}
		return fmt.Errorf("dataset %q: attribute %q: %w", d.name, name, ErrDuplicateName)
	}
	d.attrs[name] = value
	d.attrOrder = append(d.attrOrder, name)
	return nil
}

// SoftLink is a path reference within the same logical file, resolved
// lazily by the backend at read time.
type SoftLink struct {
	name string
	Path string
}

func (l *SoftLink) NodeName() string { return l.name }

// HardLink is a strong alias within the same file; the writer binds it
// to the live object at Path after the structural pass.
type HardLink struct {
	name string
	Path string
}

func (l *HardLink) NodeName() string { return l.name }

// ExternalLink is a reference to a path inside another file.
type ExternalLink struct {
	name string
	File string
	Path string
}

func (l *ExternalLink) NodeName() string { return l.name }
