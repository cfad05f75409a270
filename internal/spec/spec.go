// Package spec holds the declarative description of the expected
// sub-structure per container type, and the TypeMap that resolves spec
// entries across a type's ancestor chain.
package spec

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrSpecNotFound      = errors.New("spec not found")
	ErrUnknownType       = errors.New("unknown container type")
	ErrSpecParentMissing = errors.New("spec parent group never materialized")
)

// Kind classifies what a spec entry describes on disk.
type Kind int

const (
	// KindAttribute is scalar or string metadata on a group or dataset.
	KindAttribute Kind = iota
	// KindDataset is array-valued data, possibly with attributes.
	KindDataset
	// KindGroup is a nested sub-container, possibly collection-valued.
	KindGroup
)

func (k Kind) String() string {
	switch k {
	case KindAttribute:
		return "attribute"
	case KindDataset:
		return "dataset"
	case KindGroup:
		return "group"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Spec declares one expected child under a container type.
//
// Parent, when non-empty, names a sibling group or dataset the value
// logically nests inside; such entries are attached only after the
// sibling exists. DeclaredBy records which type in the ancestor chain
// declared the entry, so a render procedure can pick out its own
// contributions.
type Spec struct {
	Name       string
	Kind       Kind
	DeclaredBy string
	Parent     string
	// Inline applies to KindGroup: contained containers attach at the
	// current level under their own names instead of under a subgroup
	// named by the spec.
	Inline bool
}

// TypeMap resolves specs across a type's declared ancestor chain. It is
// built once and read-only afterwards.
type TypeMap struct {
	// ancestors maps tag to chain, base to derived, including tag.
	ancestors map[string][]string
	// declared maps tag to the specs that tag itself declares, in
	// declaration order.
	declared map[string][]Spec
}

// NewTypeMap creates an empty TypeMap over the given ancestry table.
// The table maps each tag to its chain from base to derived.
func NewTypeMap(ancestors map[string][]string) *TypeMap {
	cp := make(map[string][]string, len(ancestors))
	for tag, chain := range ancestors {
		cp[tag] = append([]string(nil), chain...)
	}
	return &TypeMap{
		ancestors: cp,
		declared:  make(map[string][]Spec),
	}
}

// Declare registers specs as declared by the given type tag. The
// DeclaredBy field is filled in by the map.
func (tm *TypeMap) Declare(tag string, specs ...Spec) error {
	if _, ok := tm.ancestors[tag]; !ok {
		return fmt.Errorf("declaring specs for %q: %w", tag, ErrUnknownType)
	}
	for _, s := range specs {
		s.DeclaredBy = tag
		tm.declared[tag] = append(tm.declared[tag], s)
	}
	return nil
}

// Ancestors returns the chain for tag, base to derived. The returned
// slice is a copy.
func (tm *TypeMap) Ancestors(tag string) ([]string, error) {
	chain, ok := tm.ancestors[tag]
	if !ok {
		return nil, fmt.Errorf("type %q: %w", tag, ErrUnknownType)
	}
	out := make([]string, len(chain))
	copy(out, chain)
	return out, nil
}

// GetSpec resolves a field for a container type by walking the ancestor
// chain from most specific to least and returning the first declared
// match.
func (tm *TypeMap) GetSpec(tag, field string) (Spec, error) {
	chain, ok := tm.ancestors[tag]
	if !ok {
		return Spec{}, fmt.Errorf("type %q: %w", tag, ErrUnknownType)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		for _, s := range tm.declared[chain[i]] {
			if s.Name == field {
				return s, nil
			}
		}
	}
	return Spec{}, fmt.Errorf("type %q field %q: %w", tag, field, ErrSpecNotFound)
}

// ChildrenSpecs returns all declared children across the chain in
// base-to-derived order. A field re-declared by a more derived type
// replaces the base declaration in place (derived wins).
func (tm *TypeMap) ChildrenSpecs(tag string) ([]Spec, error) {
	chain, ok := tm.ancestors[tag]
	if !ok {
		return nil, fmt.Errorf("type %q: %w", tag, ErrUnknownType)
	}
	var out []Spec
	index := make(map[string]int)
	for _, ancestor := range chain {
		for _, s := range tm.declared[ancestor] {
			if i, ok := index[s.Name]; ok {
				out[i] = s
				continue
			}
			index[s.Name] = len(out)
			out = append(out, s)
		}
	}
	return out, nil
}
