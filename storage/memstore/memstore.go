// Package memstore is an in-memory hierarchical container backend
// implementing the nwbio storage contract. It backs tests and the
// nwbgen CLI; a real deployment substitutes an HDF5-backed
// implementation of the same interfaces.
package memstore

import (
	"errors"
	"fmt"
	"sync"

	"github.com/robert-malhotra/go-nwb/nwbio"
)

// Common errors
var (
	ErrExists    = errors.New("name already exists")
	ErrNotFound  = errors.New("not found")
	ErrClosed    = errors.New("file is closed")
	ErrDangling  = errors.New("soft link target does not exist")
	ErrLinkDepth = errors.New("maximum link depth exceeded")
)

// MaxLinkDepth bounds soft-link resolution to guard against cycles.
const MaxLinkDepth = 100

// Store holds every file created through it, keyed by path.
type Store struct {
	mu    sync.Mutex
	files map[string]*File
}

// New creates an empty store.
func New() *Store {
	return &Store{files: make(map[string]*File)}
}

// Open implements nwbio.Backend. ModeCreate replaces any existing file
// at the path; ModeReadWrite reopens one.
func (s *Store) Open(path string, mode nwbio.Mode) (nwbio.File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if mode == nwbio.ModeReadWrite {
		f, ok := s.files[path]
		if !ok {
			return nil, fmt.Errorf("open %q: %w", path, ErrNotFound)
		}
		f.closed = false
		return f, nil
	}

	f := &File{
		path: path,
		root: newGroup("/", "/"),
	}
	s.files[path] = f
	return f, nil
}

// File returns a previously created file for inspection.
func (s *Store) File(path string) (*File, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.files[path]
	return f, ok
}

// File is one in-memory hierarchical file.
type File struct {
	path   string
	root   *Group
	closed bool
}

func (f *File) Path() string      { return f.path }
func (f *File) Root() nwbio.Group { return f.root }

func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	return nil
}

// Lookup returns the raw node at an absolute path without following
// links. The node is a *Group, *Dataset, *SoftLink, *ExternalLink, or
// a hard-linked target.
func (f *File) Lookup(path string) (interface{}, bool) {
	cur := f.root
	parts := splitPath(path)
	for i, name := range parts {
		child, ok := cur.children[name]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return child, true
		}
		next, ok := child.(*Group)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return f.root, true
}

// Resolve returns the node at an absolute path, following soft links
// within the file.
func (f *File) Resolve(path string) (interface{}, error) {
	return f.resolve(path, 0)
}

func (f *File) resolve(path string, depth int) (interface{}, error) {
	if depth >= MaxLinkDepth {
		return nil, fmt.Errorf("resolving %q: %w", path, ErrLinkDepth)
	}
	node, ok := f.Lookup(path)
	if !ok {
		return nil, fmt.Errorf("resolving %q: %w", path, ErrNotFound)
	}
	if sl, ok := node.(*SoftLink); ok {
		target, err := f.resolve(sl.Target, depth+1)
		if err != nil {
			return nil, fmt.Errorf("following soft link %q: %w", path, ErrDangling)
		}
		return target, nil
	}
	return node, nil
}

// Dataset returns the dataset at an absolute path, following links.
func (f *File) Dataset(path string) (*Dataset, error) {
	node, err := f.Resolve(path)
	if err != nil {
		return nil, err
	}
	ds, ok := node.(*Dataset)
	if !ok {
		return nil, fmt.Errorf("%q is a %T, not a dataset", path, node)
	}
	return ds, nil
}

// Group is one in-memory group node.
type Group struct {
	name     string
	path     string
	children map[string]interface{}
	order    []string
	attrs    map[string]interface{}
}

func newGroup(name, path string) *Group {
	return &Group{
		name:     name,
		path:     path,
		children: make(map[string]interface{}),
		attrs:    make(map[string]interface{}),
	}
}

func (g *Group) Name() string { return g.name }
func (g *Group) Path() string { return g.path }

// Members returns the child names in creation order.
func (g *Group) Members() []string {
	return append([]string(nil), g.order...)
}

// Attr returns a group attribute.
func (g *Group) Attr(name string) (interface{}, bool) {
	v, ok := g.attrs[name]
	return v, ok
}

func (g *Group) add(name string, node interface{}) error {
	if _, ok := g.children[name]; ok {
		return fmt.Errorf("group %q: child %q: %w", g.path, name, ErrExists)
	}
	g.children[name] = node
	g.order = append(g.order, name)
	return nil
}

func (g *Group) CreateGroup(name string) (nwbio.Group, error) {
	sub := newGroup(name, joinPath(g.path, name))
	if err := g.add(name, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (g *Group) CreateDataset(name string, payload interface{}, attrs map[string]interface{}) (nwbio.Dataset, error) {
	ds := &Dataset{
		name:    name,
		path:    joinPath(g.path, name),
		payload: payload,
		attrs:   make(map[string]interface{}, len(attrs)),
	}
	for k, v := range attrs {
		ds.attrs[k] = v
	}
	if err := g.add(name, ds); err != nil {
		return nil, err
	}
	return ds, nil
}

func (g *Group) SetAttribute(name string, value interface{}) error {
	g.attrs[name] = value
	return nil
}

func (g *Group) CreateSoftLink(name, targetPath string) error {
	return g.add(name, &SoftLink{Target: targetPath})
}

func (g *Group) CreateHardLink(name string, target nwbio.Object) error {
	// A hard link is a second name for the same object; the handle is
	// stored directly.
	return g.add(name, target)
}

func (g *Group) CreateExternalLink(name, targetFile, targetPath string) error {
	return g.add(name, &ExternalLink{File: targetFile, Target: targetPath})
}

// Dataset is one in-memory dataset node.
type Dataset struct {
	name    string
	path    string
	payload interface{}
	attrs   map[string]interface{}
}

func (d *Dataset) Name() string         { return d.name }
func (d *Dataset) Path() string         { return d.path }
func (d *Dataset) Payload() interface{} { return d.payload }

// Attr returns a dataset attribute.
func (d *Dataset) Attr(name string) (interface{}, bool) {
	v, ok := d.attrs[name]
	return v, ok
}

func (d *Dataset) SetAttribute(name string, value interface{}) error {
	d.attrs[name] = value
	return nil
}

// SoftLink stores a same-file target path, resolved lazily at read
// time.
type SoftLink struct {
	Target string
}

// ExternalLink stores a file path plus a path within that file. It is
// never resolved against the owning file.
type ExternalLink struct {
	File   string
	Target string
}

func splitPath(path string) []string {
	var parts []string
	start := -1
	for i := 0; i < len(path); i++ {
		if path[i] == '/' {
			if start >= 0 {
				parts = append(parts, path[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		parts = append(parts, path[start:])
	}
	return parts
}

func joinPath(parent, name string) string {
	if parent == "/" {
		return "/" + name
	}
	return parent + "/" + name
}
