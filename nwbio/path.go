package nwbio

import (
	"fmt"
	"path"
	"strings"

	"github.com/robert-malhotra/go-nwb/nwb"
)

// Fixed placement prefixes for the root file's three time-series
// namespaces.
const (
	rawDataPrefix          = "acquisition/timeseries"
	stimulusPrefix         = "stimulus/presentation"
	stimulusTemplatePrefix = "stimulus/template"
)

// ResolveLocation computes the canonical storage location of a
// container: the source (filename) of the file at the root of its
// ownership chain and its '/'-joined path relative to that file's
// root.
//
// The walk applies a type-pair rule table at each parent/child step;
// an unmatched pair fails with ErrUnknownPlacement, and a chain that
// does not terminate at an NWBFile fails with ErrOrphanContainer.
func ResolveLocation(c nwb.Container) (source, location string, err error) {
	var segments []string
	cur := c
	for cur.Parent() != nil {
		seg, err := relativeLocation(cur.Parent(), cur)
		if err != nil {
			return "", "", err
		}
		segments = append(segments, seg)
		cur = cur.Parent()
	}

	root, ok := cur.(*nwb.NWBFile)
	if !ok {
		return "", "", fmt.Errorf("container %q: highest container is a %s, not a file: %w",
			c.Name(), cur.TypeTag(), ErrOrphanContainer)
	}

	// Segments were collected leaf to root; join in traversal order.
	p := "/"
	for i := len(segments) - 1; i >= 0; i-- {
		p = path.Join(p, segments[i])
	}
	return root.Filename(), CleanPath(p), nil
}

// relativeLocation returns the placement segment of child directly
// under parent.
func relativeLocation(parent, child nwb.Container) (string, error) {
	switch p := parent.(type) {
	case *nwb.NWBFile:
		if s, ok := child.(nwb.Series); ok {
			switch {
			case p.IsRawData(s):
				return path.Join(rawDataPrefix, s.Name()), nil
			case p.IsStimulus(s):
				return path.Join(stimulusPrefix, s.Name()), nil
			case p.IsStimulusTemplate(s):
				return path.Join(stimulusTemplatePrefix, s.Name()), nil
			}
			return "", placementError(parent, child)
		}
		switch child.(type) {
		case *nwb.Module:
			return path.Join("processing", child.Name()), nil
		case *nwb.Epoch:
			return path.Join("epochs", child.Name()), nil
		case *nwb.ElectrodeGroup:
			return path.Join("general/extracellular_ephys", child.Name()), nil
		}
	case *nwb.Module:
		if _, ok := child.(nwb.IfaceContainer); ok {
			return child.Name(), nil
		}
	case nwb.IfaceContainer:
		if _, ok := child.(nwb.Series); ok {
			return child.Name(), nil
		}
	}
	return "", placementError(parent, child)
}

func placementError(parent, child nwb.Container) error {
	return fmt.Errorf("no known location for %s %q in %s %q: %w",
		child.TypeTag(), child.Name(), parent.TypeTag(), parent.Name(), ErrUnknownPlacement)
}

// SplitPath splits a path into its components. Leading and trailing
// slashes are handled, empty components are removed.
//
// Examples:
//   - "/" -> []string{}
//   - "/foo" -> []string{"foo"}
//   - "/foo/bar" -> []string{"foo", "bar"}
func SplitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return []string{}
	}
	return strings.Split(p, "/")
}

// CleanPath normalizes a path, ensuring it starts with "/" and has no
// trailing slash.
func CleanPath(p string) string {
	if p == "" || p == "/" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return strings.TrimSuffix(p, "/")
}
