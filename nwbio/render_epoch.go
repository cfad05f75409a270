package nwbio

import (
	"fmt"

	"github.com/robert-malhotra/go-nwb/internal/builder"
	"github.com/robert-malhotra/go-nwb/nwb"
)

// renderEpoch emits the epoch's window datasets. The per-series
// membership subgroups are filled in by the deferred indexing pass,
// which can only run once every series in the file is known.
func renderEpoch(r *Renderer, c nwb.Container) (*builder.Group, error) {
	ep, ok := c.(*nwb.Epoch)
	if !ok {
		return nil, fmt.Errorf("type %s: field %q: %w", c.TypeTag(), "start_time", ErrMissingField)
	}

	var description interface{}
	if ep.Description() != "" {
		description = ep.Description()
	}
	var tags interface{}
	if len(ep.Tags()) > 0 {
		tags = ep.Tags()
	}

	g := builder.NewGroup(c.Name())
	err := r.applySpecs(c, nwb.TypeEpoch, g, map[string]interface{}{
		"start_time":  ep.Start(),
		"stop_time":   ep.Stop(),
		"tags":        tags,
		"description": description,
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}
