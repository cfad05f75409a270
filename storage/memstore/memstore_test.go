package memstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-nwb/nwbio"
)

func openFile(t *testing.T) (*Store, *File) {
	t.Helper()
	store := New()
	fh, err := store.Open("test.nwb", nwbio.ModeCreate)
	require.NoError(t, err)
	return store, fh.(*File)
}

func TestOpenModes(t *testing.T) {
	store := New()

	_, err := store.Open("missing.nwb", nwbio.ModeReadWrite)
	assert.ErrorIs(t, err, ErrNotFound)

	fh, err := store.Open("a.nwb", nwbio.ModeCreate)
	require.NoError(t, err)
	_, err = fh.Root().CreateGroup("kept")
	require.NoError(t, err)
	require.NoError(t, fh.Close())

	// Reopening returns the same contents.
	fh, err = store.Open("a.nwb", nwbio.ModeReadWrite)
	require.NoError(t, err)
	_, ok := fh.(*File).Lookup("/kept")
	assert.True(t, ok)

	// Creating again replaces the file.
	fh, err = store.Open("a.nwb", nwbio.ModeCreate)
	require.NoError(t, err)
	_, ok = fh.(*File).Lookup("/kept")
	assert.False(t, ok)
}

func TestDuplicateChildren(t *testing.T) {
	_, f := openFile(t)
	root := f.Root()

	_, err := root.CreateGroup("g")
	require.NoError(t, err)
	_, err = root.CreateGroup("g")
	assert.ErrorIs(t, err, ErrExists)
	_, err = root.CreateDataset("g", 1, nil)
	assert.ErrorIs(t, err, ErrExists)
	assert.ErrorIs(t, root.CreateSoftLink("g", "/elsewhere"), ErrExists)
}

func TestLookupAndResolve(t *testing.T) {
	_, f := openFile(t)
	root := f.Root().(*Group)

	sub, err := root.CreateGroup("sub")
	require.NoError(t, err)
	_, err = sub.CreateDataset("data", []float64{1, 2}, map[string]interface{}{"unit": "volts"})
	require.NoError(t, err)
	require.NoError(t, root.CreateSoftLink("alias", "/sub/data"))

	ds, err := f.Dataset("/sub/data")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, ds.Payload())
	unit, ok := ds.Attr("unit")
	require.True(t, ok)
	assert.Equal(t, "volts", unit)

	// Lookup leaves the link raw; Resolve follows it.
	raw, ok := f.Lookup("/alias")
	require.True(t, ok)
	assert.IsType(t, &SoftLink{}, raw)

	via, err := f.Dataset("/alias")
	require.NoError(t, err)
	assert.Same(t, ds, via)
}

func TestResolveDangling(t *testing.T) {
	_, f := openFile(t)
	require.NoError(t, f.Root().CreateSoftLink("dangling", "/nowhere"))

	_, err := f.Resolve("/dangling")
	assert.ErrorIs(t, err, ErrDangling)
}

func TestResolveLinkCycle(t *testing.T) {
	_, f := openFile(t)
	root := f.Root()
	require.NoError(t, root.CreateSoftLink("a", "/b"))
	require.NoError(t, root.CreateSoftLink("b", "/a"))

	_, err := f.Resolve("/a")
	assert.Error(t, err)
}

func TestExternalLinkNotResolved(t *testing.T) {
	_, f := openFile(t)
	require.NoError(t, f.Root().CreateExternalLink("ext", "other.nwb", "/data"))

	node, err := f.Resolve("/ext")
	require.NoError(t, err)
	ext, ok := node.(*ExternalLink)
	require.True(t, ok)
	assert.Equal(t, "other.nwb", ext.File)
	assert.Equal(t, "/data", ext.Target)
}

func TestHardLinkSharesObject(t *testing.T) {
	_, f := openFile(t)
	root := f.Root().(*Group)

	target, err := root.CreateDataset("data", 1, nil)
	require.NoError(t, err)
	require.NoError(t, root.CreateHardLink("alias", target))

	// Both names reach the same object; a write through one is visible
	// through the other.
	require.NoError(t, target.SetAttribute("unit", "volts"))
	via, err := f.Dataset("/alias")
	require.NoError(t, err)
	unit, ok := via.Attr("unit")
	require.True(t, ok)
	assert.Equal(t, "volts", unit)
}

func TestDatasetTypeMismatch(t *testing.T) {
	_, f := openFile(t)
	_, err := f.Root().CreateGroup("g")
	require.NoError(t, err)

	_, err = f.Dataset("/g")
	assert.Error(t, err)
	_, err = f.Dataset("/missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMembersInsertionOrder(t *testing.T) {
	_, f := openFile(t)
	root := f.Root().(*Group)

	for _, name := range []string{"z", "a", "m"} {
		_, err := root.CreateGroup(name)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"z", "a", "m"}, root.Members())
}
