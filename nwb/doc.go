// Package nwb implements the in-memory container model for a
// Neurodata Without Borders recording session: the root NWBFile and the
// time series, epochs, electrode groups and processing modules it owns.
//
// Containers form an ownership tree. A container is attached to exactly
// one parent by the parent's factory or Add method; the parent keeps a
// weak back-reference used only for path and ancestry queries, never for
// lifetime management. Persisting the tree is the job of package nwbio.
package nwb
