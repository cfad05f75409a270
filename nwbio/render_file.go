package nwbio

import (
	"fmt"
	"time"

	"github.com/robert-malhotra/go-nwb/internal/builder"
	"github.com/robert-malhotra/go-nwb/nwb"
)

// generalGroups are the fixed subgroups created under general/.
var generalGroups = []string{
	"devices",
	"extracellular_ephys",
	"intracellular_ephys",
	"optogenetics",
	"optophysiology",
	"specifications",
	"subject",
}

// renderFile produces the whole file tree: the fixed top-level layout,
// the session datasets, and the subtree of every owned container. It
// finishes with the deferred epoch-indexing pass, which needs every
// series in the file to be discoverable.
func renderFile(r *Renderer, c nwb.Container) (*builder.Group, error) {
	f, ok := c.(*nwb.NWBFile)
	if !ok {
		return nil, fmt.Errorf("type %s: field %q: %w", c.TypeTag(), "session_description", ErrMissingField)
	}

	g := builder.NewGroup(f.Name())
	if err := addFixedLayout(g); err != nil {
		return nil, err
	}

	err := r.applySpecs(c, nwb.TypeFile, g, map[string]interface{}{
		"nwb_version":            nwb.Version,
		"identifier":             f.Identifier(),
		"session_description":    f.SessionDescription(),
		"file_create_date":       []string{f.CreateDate().UTC().Format(time.RFC3339)},
		"session_start_time":     f.StartTime().UTC().Format(time.RFC3339),
		"experimenter":           optional(f.Experimenter()),
		"experiment_description": optional(f.ExperimentDescription()),
		"session_id":             optional(f.SessionID()),
		"lab":                    optional(f.Lab()),
		"institution":            optional(f.Institution()),
	})
	if err != nil {
		return nil, err
	}

	for _, ns := range []struct {
		prefix string
		series []nwb.Series
	}{
		{rawDataPrefix, f.RawData()},
		{stimulusPrefix, f.Stimulus()},
		{stimulusTemplatePrefix, f.StimulusTemplate()},
	} {
		target, err := groupAt(g, ns.prefix)
		if err != nil {
			return nil, err
		}
		for _, s := range ns.series {
			rendered, err := r.Render(s)
			if err != nil {
				return nil, err
			}
			if err := target.AttachGroup(rendered); err != nil {
				return nil, err
			}
		}
	}

	ephys, err := groupAt(g, "general/extracellular_ephys")
	if err != nil {
		return nil, err
	}
	for _, eg := range f.ElectrodeGroups() {
		rendered, err := renderElectrodeGroup(f, eg)
		if err != nil {
			return nil, err
		}
		if err := ephys.AttachGroup(rendered); err != nil {
			return nil, err
		}
	}

	processing, err := g.Group("processing")
	if err != nil {
		return nil, err
	}
	for _, m := range f.Modules() {
		rendered, err := r.Render(m)
		if err != nil {
			return nil, err
		}
		if err := processing.AttachGroup(rendered); err != nil {
			return nil, err
		}
	}

	epochs, err := g.Group("epochs")
	if err != nil {
		return nil, err
	}
	for _, ep := range f.Epochs() {
		rendered, err := r.Render(ep)
		if err != nil {
			return nil, err
		}
		if err := epochs.AttachGroup(rendered); err != nil {
			return nil, err
		}
	}

	// Deferred pass: series paths are resolvable now that the full
	// tree above exists, so the epoch membership ranges can be
	// computed and committed before epochs/* is considered final.
	if err := indexEpochs(f, epochs); err != nil {
		return nil, err
	}

	return g, nil
}

// addFixedLayout creates the fixed top-level structure every file
// reproduces regardless of content.
func addFixedLayout(g *builder.Group) error {
	general, err := g.AddGroup("general")
	if err != nil {
		return err
	}
	for _, name := range generalGroups {
		if _, err := general.AddGroup(name); err != nil {
			return err
		}
	}

	stimulus, err := g.AddGroup("stimulus")
	if err != nil {
		return err
	}
	for _, name := range []string{"template", "presentation"} {
		if _, err := stimulus.AddGroup(name); err != nil {
			return err
		}
	}

	acquisition, err := g.AddGroup("acquisition")
	if err != nil {
		return err
	}
	for _, name := range []string{"timeseries", "images"} {
		if _, err := acquisition.AddGroup(name); err != nil {
			return err
		}
	}

	for _, name := range []string{"epochs", "processing", "analysis"} {
		if _, err := g.AddGroup(name); err != nil {
			return err
		}
	}
	return nil
}

// renderElectrodeGroup emits one electrode group under
// general/extracellular_ephys. Electrode groups carry no variant
// hierarchy, so they render directly rather than through the
// procedure registry.
func renderElectrodeGroup(f *nwb.NWBFile, eg *nwb.ElectrodeGroup) (*builder.Group, error) {
	g := builder.NewGroup(eg.Name())

	coord := eg.Coord()
	if _, err := g.AddDataset("location", eg.Location()); err != nil {
		return nil, err
	}
	if _, err := g.AddDataset("description", eg.Description()); err != nil {
		return nil, err
	}
	if _, err := g.AddDataset("device", eg.Device()); err != nil {
		return nil, err
	}
	if _, err := g.AddDataset("coord", coord[:]); err != nil {
		return nil, err
	}

	imp := eg.Impedance()
	var impValue interface{} = imp.Low
	if !imp.Scalar() {
		impValue = []float64{imp.Low, imp.High}
	}
	if _, err := g.AddDataset("impedance", impValue); err != nil {
		return nil, err
	}

	idx, err := f.ElectrodeGroupIndex(eg)
	if err != nil {
		return nil, err
	}
	if err := g.SetAttribute("electrode_group_idx", idx); err != nil {
		return nil, err
	}
	return g, nil
}

// groupAt walks a '/'-separated path of already-created subgroups.
func groupAt(g *builder.Group, p string) (*builder.Group, error) {
	cur := g
	for _, part := range SplitPath(p) {
		sub, err := cur.Group(part)
		if err != nil {
			return nil, err
		}
		cur = sub
	}
	return cur, nil
}

// optional maps the empty string to nil so applySpecs skips unset
// metadata instead of writing empty datasets.
func optional(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
