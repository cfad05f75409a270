package nwbio

import (
	"fmt"
	"sort"

	"github.com/robert-malhotra/go-nwb/internal/builder"
	"github.com/robert-malhotra/go-nwb/nwb"
)

func renderModule(r *Renderer, c nwb.Container) (*builder.Group, error) {
	m, ok := c.(*nwb.Module)
	if !ok {
		return nil, fmt.Errorf("type %s: field %q: %w", c.TypeTag(), "interfaces", ErrMissingField)
	}

	ifaces := m.Interfaces()
	kids := make([]nwb.Container, 0, len(ifaces))
	for _, ic := range ifaces {
		kids = append(kids, ic)
	}

	g := builder.NewGroup(c.Name())
	err := r.applySpecs(c, nwb.TypeModule, g, map[string]interface{}{
		"description": m.Description(),
		"interfaces":  kids,
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

// renderInterface contributes the metadata shared by every interface
// variant.
func renderInterface(r *Renderer, c nwb.Container) (*builder.Group, error) {
	ic, ok := c.(nwb.IfaceContainer)
	if !ok {
		return nil, fmt.Errorf("type %s: field %q: %w", c.TypeTag(), "help", ErrMissingField)
	}
	iface := ic.Iface()

	g := builder.NewGroup(c.Name())
	err := r.applySpecs(c, nwb.TypeInterface, g, map[string]interface{}{
		"neurodata_type": "Interface",
		"help":           iface.Help(),
		"source":         iface.Source(),
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

func renderClustering(r *Renderer, c nwb.Container) (*builder.Group, error) {
	cl, ok := c.(*nwb.Clustering)
	if !ok {
		return nil, fmt.Errorf("type %s: field %q: %w", c.TypeTag(), "peak_over_rms", ErrMissingField)
	}

	// Per-cluster ratios are stored as two aligned datasets ordered by
	// cluster number.
	ratios := cl.PeakOverRMS()
	clusterNums := make([]int, 0, len(ratios))
	for n := range ratios {
		clusterNums = append(clusterNums, n)
	}
	sort.Ints(clusterNums)
	peakOverRMS := make([]float64, 0, len(clusterNums))
	for _, n := range clusterNums {
		peakOverRMS = append(peakOverRMS, ratios[n])
	}

	g := builder.NewGroup(c.Name())
	err := r.applySpecs(c, nwb.TypeClustering, g, map[string]interface{}{
		"cluster_nums":  clusterNums,
		"peak_over_rms": peakOverRMS,
		"num":           cl.Num(),
		"times":         cl.Times(),
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}
