package nwbio

// Mode selects how a backend file is opened.
type Mode int

const (
	// ModeCreate creates the file, truncating any existing content.
	ModeCreate Mode = iota
	// ModeReadWrite opens an existing file for modification.
	ModeReadWrite
)

// Backend is the external storage collaborator: any hierarchical
// container implementation (HDF5 or equivalent) satisfying this
// minimal contract.
type Backend interface {
	Open(path string, mode Mode) (File, error)
}

// File is one open backend file. The handle is acquired once per write
// operation and must be released on every path, including failures.
type File interface {
	Root() Group
	Close() error
}

// Object is an opaque handle to a created group or dataset, used as a
// hard link target.
type Object interface{}

// Group is a live group handle.
type Group interface {
	CreateGroup(name string) (Group, error)
	CreateDataset(name string, payload interface{}, attrs map[string]interface{}) (Dataset, error)
	SetAttribute(name string, value interface{}) error
	// CreateSoftLink stores a path string resolved lazily by the
	// backend at read time; no existence check happens at write time.
	CreateSoftLink(name, targetPath string) error
	// CreateHardLink aliases an existing object within the same file.
	CreateHardLink(name string, target Object) error
	// CreateExternalLink references a path in another file; the target
	// is not checked against this file.
	CreateExternalLink(name, targetFile, targetPath string) error
}

// Dataset is a live dataset handle.
type Dataset interface {
	SetAttribute(name string, value interface{}) error
}
