package nwbio

import (
	"github.com/robert-malhotra/go-nwb/internal/spec"
	"github.com/robert-malhotra/go-nwb/nwb"
)

// defaultTypeMap is the process-wide registry of declared specs. It is
// built once here and never mutated during a write.
var defaultTypeMap = buildDefaultTypeMap()

// DefaultTypeMap returns the registry of declared specs for the NWB
// container types.
func DefaultTypeMap() *spec.TypeMap { return defaultTypeMap }

func buildDefaultTypeMap() *spec.TypeMap {
	tm := spec.NewTypeMap(nwb.AncestryTable())

	// Root file: version and session datasets at the root, plus the
	// recommended session metadata, which logically nests inside the
	// sibling "general" group and is attached once that group exists.
	mustDeclare(tm, nwb.TypeFile,
		spec.Spec{Name: "nwb_version", Kind: spec.KindDataset},
		spec.Spec{Name: "identifier", Kind: spec.KindDataset},
		spec.Spec{Name: "session_description", Kind: spec.KindDataset},
		spec.Spec{Name: "file_create_date", Kind: spec.KindDataset},
		spec.Spec{Name: "session_start_time", Kind: spec.KindDataset},
		spec.Spec{Name: "experimenter", Kind: spec.KindDataset, Parent: "general"},
		spec.Spec{Name: "experiment_description", Kind: spec.KindDataset, Parent: "general"},
		spec.Spec{Name: "session_id", Kind: spec.KindDataset, Parent: "general"},
		spec.Spec{Name: "lab", Kind: spec.KindDataset, Parent: "general"},
		spec.Spec{Name: "institution", Kind: spec.KindDataset, Parent: "general"},
	)

	mustDeclare(tm, nwb.TypeTimeSeries,
		spec.Spec{Name: "neurodata_type", Kind: spec.KindAttribute},
		spec.Spec{Name: "ancestry", Kind: spec.KindAttribute},
		spec.Spec{Name: "help", Kind: spec.KindAttribute},
		spec.Spec{Name: "description", Kind: spec.KindAttribute},
		spec.Spec{Name: "comments", Kind: spec.KindAttribute},
		spec.Spec{Name: "source", Kind: spec.KindAttribute},
		spec.Spec{Name: "data", Kind: spec.KindDataset},
		spec.Spec{Name: "timestamps", Kind: spec.KindDataset},
		spec.Spec{Name: "starting_time", Kind: spec.KindDataset},
	)

	mustDeclare(tm, nwb.TypeElectricalSeries,
		spec.Spec{Name: "electrode_idx", Kind: spec.KindDataset},
	)
	mustDeclare(tm, nwb.TypeSpatialSeries,
		spec.Spec{Name: "reference_frame", Kind: spec.KindDataset},
	)
	mustDeclare(tm, nwb.TypeAbstractFeatureSeries,
		spec.Spec{Name: "features", Kind: spec.KindDataset},
		spec.Spec{Name: "feature_units", Kind: spec.KindDataset},
	)

	mustDeclare(tm, nwb.TypeEpoch,
		spec.Spec{Name: "start_time", Kind: spec.KindDataset},
		spec.Spec{Name: "stop_time", Kind: spec.KindDataset},
		spec.Spec{Name: "tags", Kind: spec.KindDataset},
		spec.Spec{Name: "description", Kind: spec.KindDataset},
	)

	mustDeclare(tm, nwb.TypeModule,
		spec.Spec{Name: "description", Kind: spec.KindAttribute},
		spec.Spec{Name: "interfaces", Kind: spec.KindGroup, Inline: true},
	)

	mustDeclare(tm, nwb.TypeInterface,
		spec.Spec{Name: "neurodata_type", Kind: spec.KindAttribute},
		spec.Spec{Name: "help", Kind: spec.KindAttribute},
		spec.Spec{Name: "source", Kind: spec.KindAttribute},
	)
	mustDeclare(tm, nwb.TypeClustering,
		spec.Spec{Name: "cluster_nums", Kind: spec.KindDataset},
		spec.Spec{Name: "peak_over_rms", Kind: spec.KindDataset},
		spec.Spec{Name: "num", Kind: spec.KindDataset},
		spec.Spec{Name: "times", Kind: spec.KindDataset},
	)

	return tm
}

func mustDeclare(tm *spec.TypeMap, tag string, specs ...spec.Spec) {
	if err := tm.Declare(tag, specs...); err != nil {
		panic(err)
	}
}
