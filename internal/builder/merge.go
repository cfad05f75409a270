package builder

import (
	"fmt"
	"reflect"
)

// DeepMerge merges src into dst, recursively unioning non-conflicting
// children and attributes. Two contributions that redefine the same
// attribute or dataset with different values disagree about output
// shape; that is fatal, not resolvable.
func DeepMerge(dst, src *Group) error {
	for _, name := range src.attrOrder {
		v := src.attrs[name]
		if old, ok := dst.attrs[name]; ok {
			if !equalValue(old, v) {
				return fmt.Errorf("group %q: attribute %q: %w", dst.name, name, ErrMergeConflict)
			}
			continue
		}
		dst.attrs[name] = v
		dst.attrOrder = append(dst.attrOrder, name)
	}

	for _, name := range src.order {
		child := src.children[name]
		existing, ok := dst.children[name]
		if !ok {
			dst.children[name] = child
			dst.order = append(dst.order, name)
			continue
		}
		if err := mergeNodes(dst, existing, child); err != nil {
			return err
		}
	}
	return nil
}

func mergeNodes(parent *Group, dst, src Node) error {
	name := dst.NodeName()
	switch d := dst.(type) {
	case *Group:
		s, ok := src.(*Group)
		if !ok {
			return kindConflict(parent, name)
		}
		return DeepMerge(d, s)
	case *Dataset:
		s, ok := src.(*Dataset)
		if !ok {
			return kindConflict(parent, name)
		}
		if !equalValue(d.payload, s.payload) {
			return fmt.Errorf("group %q: dataset %q payload: %w", parent.name, name, ErrMergeConflict)
		}
		for _, attrName := range s.attrOrder {
			v := s.attrs[attrName]
			if old, ok := d.attrs[attrName]; ok {
				if !equalValue(old, v) {
					return fmt.Errorf("dataset %q: attribute %q: %w", name, attrName, ErrMergeConflict)
				}
				continue
			}
			d.attrs[attrName] = v
			d.attrOrder = append(d.attrOrder, attrName)
		}
		return nil
	case *SoftLink:
		s, ok := src.(*SoftLink)
		if !ok || s.Path != d.Path {
			return kindConflict(parent, name)
		}
		return nil
	case *HardLink:
		s, ok := src.(*HardLink)
		if !ok || s.Path != d.Path {
			return kindConflict(parent, name)
		}
		return nil
	case *ExternalLink:
		s, ok := src.(*ExternalLink)
		if !ok || s.File != d.File || s.Path != d.Path {
			return kindConflict(parent, name)
		}
		return nil
	default:
		return kindConflict(parent, name)
	}
}

func kindConflict(parent *Group, name string) error {
	return fmt.Errorf("group %q: child %q: %w", parent.name, name, ErrMergeConflict)
}

func equalValue(a, b interface{}) bool {
	return reflect.DeepEqual(a, b)
}
