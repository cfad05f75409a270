package nwbio

import (
	"fmt"

	"github.com/robert-malhotra/go-nwb/internal/builder"
	"github.com/robert-malhotra/go-nwb/internal/interval"
	"github.com/robert-malhotra/go-nwb/nwb"
)

// indexEpochs fills in every epoch's per-series membership: for each
// (epoch, referenced series) pair without a precomputed range, the
// sample range of the epoch's window within that series is computed
// and committed into the epoch's builder subtree, next to a link to
// the series group.
//
// One finder is kept per resolved series path, shared by every epoch
// referencing that series. The container graph itself is never
// mutated.
func indexEpochs(f *nwb.NWBFile, epochs *builder.Group) error {
	finders := make(map[string]*interval.Finder)

	for _, ep := range f.Epochs() {
		epGroup, err := epochs.Group(ep.Name())
		if err != nil {
			return err
		}
		for _, es := range ep.TimeSeries() {
			s := es.Series()
			source, location, err := ResolveLocation(s)
			if err != nil {
				return err
			}

			startIdx, count, ok := es.Range()
			if !ok {
				key := source + ":" + location
				finder := finders[key]
				if finder == nil {
					finder, err = finderForSeries(s)
					if err != nil {
						return err
					}
					finders[key] = finder
				}
				startIdx, count = finder.Window(ep.Start(), ep.Stop())
			}

			sub, err := epGroup.AddGroup(s.Name())
			if err != nil {
				return err
			}
			if _, err := sub.AddDataset("idx_start", startIdx); err != nil {
				return err
			}
			if _, err := sub.AddDataset("count", count); err != nil {
				return err
			}
			if source != f.Filename() {
				if err := sub.AddExternalLink("timeseries", source, location); err != nil {
					return err
				}
				continue
			}
			if err := sub.AddSoftLink("timeseries", location); err != nil {
				return err
			}
		}
	}
	return nil
}

// finderForSeries seeds a finder from the series's timestamp source:
// an explicit array, a regular grid derived from the starting time and
// rate, or the source of a referenced series, followed through the
// sharing chain.
func finderForSeries(s nwb.Series) (*interval.Finder, error) {
	ts := s.Base()
	seen := make(map[*nwb.TimeSeries]bool)
	for {
		if ts.Timestamps() != nil {
			return interval.NewFinder(ts.Timestamps()), nil
		}
		if start, rate, ok := ts.StartingTime(); ok {
			finder, err := interval.FromRate(start, rate, ts.NumSamples())
			if err != nil {
				return nil, fmt.Errorf("series %q: %w", s.Name(), err)
			}
			return finder, nil
		}
		ref := ts.TimestampsLink()
		if ref == nil {
			return nil, fmt.Errorf("series %q: no timestamp source: %w", s.Name(), ErrMissingField)
		}
		if seen[ts] {
			return nil, fmt.Errorf("series %q: circular timestamp reference", s.Name())
		}
		seen[ts] = true
		ts = ref.Base()
	}
}
