package nwbio

import (
	"fmt"
	"io"
	"log/slog"
	"path"

	"github.com/robert-malhotra/go-nwb/internal/builder"
	"github.com/robert-malhotra/go-nwb/nwb"
)

// Writer materializes a completed builder tree into a backend file.
type Writer struct {
	log *slog.Logger
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithLogger sets the structured logger for write progress events.
func WithLogger(l *slog.Logger) WriterOption {
	return func(w *Writer) { w.log = l }
}

// NewWriter creates a Writer. Without options it logs nowhere.
func NewWriter(opts ...WriterOption) *Writer {
	w := &Writer{log: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// pendingLink is a link deferred until the structural pass completes,
// because its target (possibly a forward reference) may not exist yet.
type pendingLink struct {
	parent   Group
	fullPath string
	node     builder.Node
}

// Commit writes the builder tree into the open backend file: all
// groups depth first, then each group's datasets and attributes, with
// every link deferred; links are created only after the whole non-link
// structure exists, so hard links always bind to live objects. Order
// among sibling links is irrelevant.
func (w *Writer) Commit(root *builder.Group, file File) error {
	handles := map[string]Object{"/": file.Root()}
	var links []pendingLink

	if err := w.commitGroup("/", file.Root(), root, handles, &links); err != nil {
		return err
	}

	for _, pl := range links {
		if err := w.commitLink(pl, handles); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) commitGroup(p string, h Group, g *builder.Group, handles map[string]Object, links *[]pendingLink) error {
	for _, name := range g.Attributes() {
		v, _ := g.Attribute(name)
		if err := h.SetAttribute(name, v); err != nil {
			return fmt.Errorf("setting attribute %q on %q: %w", name, p, err)
		}
	}

	// Child groups first, recursively, so the complete group skeleton
	// exists before any sibling data at this level is revisited.
	for _, child := range g.Children() {
		sub, ok := child.(*builder.Group)
		if !ok {
			continue
		}
		childPath := path.Join(p, sub.NodeName())
		created, err := h.CreateGroup(sub.NodeName())
		if err != nil {
			return fmt.Errorf("creating group %q: %w", childPath, err)
		}
		w.log.Debug("created group", "path", childPath)
		handles[childPath] = created
		if err := w.commitGroup(childPath, created, sub, handles, links); err != nil {
			return err
		}
	}

	for _, child := range g.Children() {
		childPath := path.Join(p, child.NodeName())
		switch n := child.(type) {
		case *builder.Group:
			// Handled above.
		case *builder.Dataset:
			created, err := h.CreateDataset(n.NodeName(), n.Payload(), n.AttributeMap())
			if err != nil {
				return fmt.Errorf("creating dataset %q: %w", childPath, err)
			}
			w.log.Debug("created dataset", "path", childPath)
			handles[childPath] = created
		default:
			*links = append(*links, pendingLink{parent: h, fullPath: childPath, node: child})
		}
	}
	return nil
}

func (w *Writer) commitLink(pl pendingLink, handles map[string]Object) error {
	switch l := pl.node.(type) {
	case *builder.SoftLink:
		if err := pl.parent.CreateSoftLink(l.NodeName(), l.Path); err != nil {
			return fmt.Errorf("creating soft link %q -> %q: %w", pl.fullPath, l.Path, err)
		}
		w.log.Debug("created soft link", "path", pl.fullPath, "target", l.Path)
	case *builder.HardLink:
		target, ok := handles[l.Path]
		if !ok {
			return fmt.Errorf("hard link %q -> %q: %w", pl.fullPath, l.Path, ErrLinkTarget)
		}
		if err := pl.parent.CreateHardLink(l.NodeName(), target); err != nil {
			return fmt.Errorf("creating hard link %q -> %q: %w", pl.fullPath, l.Path, err)
		}
		w.log.Debug("created hard link", "path", pl.fullPath, "target", l.Path)
	case *builder.ExternalLink:
		if err := pl.parent.CreateExternalLink(l.NodeName(), l.File, l.Path); err != nil {
			return fmt.Errorf("creating external link %q -> %s:%q: %w", pl.fullPath, l.File, l.Path, err)
		}
		w.log.Debug("created external link", "path", pl.fullPath, "file", l.File, "target", l.Path)
	default:
		return fmt.Errorf("unexpected deferred node %T at %q", pl.node, pl.fullPath)
	}
	return nil
}

// Write renders the container graph rooted at f and commits it to a
// new backend file at the given path. The backend handle is held
// exclusively for the duration and released on every path, including
// failures; on error, any output the backend already created must be
// treated as corrupt.
func Write(f *nwb.NWBFile, filePath string, backend Backend, opts ...WriterOption) (err error) {
	root, err := DefaultRenderer().Render(f)
	if err != nil {
		return fmt.Errorf("rendering %q: %w", f.Filename(), err)
	}

	fh, err := backend.Open(filePath, ModeCreate)
	if err != nil {
		return fmt.Errorf("opening %q: %w", filePath, err)
	}
	defer func() {
		if cerr := fh.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %q: %w", filePath, cerr)
		}
	}()

	w := NewWriter(opts...)
	if err := w.Commit(root, fh); err != nil {
		return fmt.Errorf("writing %q: %w", filePath, err)
	}
	return nil
}
