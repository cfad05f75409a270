package nwbio

import (
	"fmt"
	"path"

	"github.com/robert-malhotra/go-nwb/internal/builder"
	"github.com/robert-malhotra/go-nwb/nwb"
)

// renderTimeSeries contributes the fields shared by every series
// variant: the top-level metadata attributes, the data payload (or a
// link to another series's data), and the timestamp source.
func renderTimeSeries(r *Renderer, c nwb.Container) (*builder.Group, error) {
	s, ok := c.(nwb.Series)
	if !ok {
		return nil, fmt.Errorf("type %s: not a time series: %w", c.TypeTag(), ErrMissingField)
	}
	ts := s.Base()

	g := builder.NewGroup(c.Name())
	err := r.applySpecs(c, nwb.TypeTimeSeries, g, map[string]interface{}{
		"neurodata_type": "TimeSeries",
		"ancestry":       seriesAncestry(c.TypeTag()),
		"help":           ts.Help(),
		"description":    ts.Description(),
		"comments":       ts.Comments(),
		"source":         ts.Source(),
		// The data and timestamp datasets depend on the link-vs-copy
		// decision below.
		"data":          nil,
		"timestamps":    nil,
		"starting_time": nil,
	})
	if err != nil {
		return nil, err
	}

	if err := renderSeriesData(g, s, ts); err != nil {
		return nil, err
	}
	if err := renderSeriesTimestamps(g, s, ts); err != nil {
		return nil, err
	}
	return g, nil
}

// renderSeriesData emits either a link to the referenced series's data
// dataset or a literal dataset carrying the computed attributes.
func renderSeriesData(g *builder.Group, s nwb.Series, ts *nwb.TimeSeries) error {
	if ref := ts.DataLink(); ref != nil {
		return renderSharedDataset(g, s, ref, "data")
	}

	ds, err := g.AddDataset("data", ts.Data())
	if err != nil {
		return err
	}
	if err := ds.SetAttribute("unit", ts.Unit()); err != nil {
		return err
	}
	if err := ds.SetAttribute("conversion", ts.Conversion()); err != nil {
		return err
	}
	return ds.SetAttribute("resolution", ts.Resolution())
}

func renderSeriesTimestamps(g *builder.Group, s nwb.Series, ts *nwb.TimeSeries) error {
	if start, rate, ok := ts.StartingTime(); ok {
		ds, err := g.AddDataset("starting_time", start)
		if err != nil {
			return err
		}
		if err := ds.SetAttribute("rate", rate); err != nil {
			return err
		}
		return ds.SetAttribute("unit", "Seconds")
	}

	if ref := ts.TimestampsLink(); ref != nil {
		return renderSharedDataset(g, s, ref, "timestamps")
	}

	if ts.Timestamps() == nil {
		return fmt.Errorf("series %q: no timestamp source: %w", s.Name(), ErrMissingField)
	}
	ds, err := g.AddDataset("timestamps", ts.Timestamps())
	if err != nil {
		return err
	}
	if err := ds.SetAttribute("interval", 1); err != nil {
		return err
	}
	return ds.SetAttribute("unit", "Seconds")
}

// renderSharedDataset emits the link for a data-sharing reference:
// soft when both series resolve to the same root file, external when
// the referenced series lives in another file.
func renderSharedDataset(g *builder.Group, s nwb.Series, ref nwb.Series, dataset string) error {
	source, _, err := ResolveLocation(s)
	if err != nil {
		return err
	}
	refSource, refPath, err := ResolveLocation(ref)
	if err != nil {
		return err
	}
	target := path.Join(refPath, dataset)
	if source != refSource {
		return g.AddExternalLink(dataset, refSource, target)
	}
	return g.AddSoftLink(dataset, target)
}

// seriesAncestry is the type chain recorded in the ancestry attribute,
// excluding the abstract container base.
func seriesAncestry(tag string) []string {
	chain, err := nwb.Ancestry(tag)
	if err != nil {
		return []string{tag}
	}
	out := make([]string, 0, len(chain))
	for _, t := range chain {
		if t == nwb.TypeContainer {
			continue
		}
		out = append(out, t)
	}
	return out
}

func renderElectricalSeries(r *Renderer, c nwb.Container) (*builder.Group, error) {
	es, ok := c.(*nwb.ElectricalSeries)
	if !ok {
		return nil, fmt.Errorf("type %s: field %q: %w", c.TypeTag(), "electrode_idx", ErrMissingField)
	}
	g := builder.NewGroup(c.Name())
	err := r.applySpecs(c, nwb.TypeElectricalSeries, g, map[string]interface{}{
		"electrode_idx": es.ElectrodeIdx(),
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

func renderSpatialSeries(r *Renderer, c nwb.Container) (*builder.Group, error) {
	ss, ok := c.(*nwb.SpatialSeries)
	if !ok {
		return nil, fmt.Errorf("type %s: field %q: %w", c.TypeTag(), "reference_frame", ErrMissingField)
	}
	g := builder.NewGroup(c.Name())
	err := r.applySpecs(c, nwb.TypeSpatialSeries, g, map[string]interface{}{
		"reference_frame": ss.ReferenceFrame(),
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

func renderAbstractFeatureSeries(r *Renderer, c nwb.Container) (*builder.Group, error) {
	as, ok := c.(*nwb.AbstractFeatureSeries)
	if !ok {
		return nil, fmt.Errorf("type %s: field %q: %w", c.TypeTag(), "features", ErrMissingField)
	}
	g := builder.NewGroup(c.Name())
	err := r.applySpecs(c, nwb.TypeAbstractFeatureSeries, g, map[string]interface{}{
		"features":      as.Features(),
		"feature_units": as.FeatureUnits(),
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}
