package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeepMergeDisjoint(t *testing.T) {
	dst := NewGroup("series")
	require.NoError(t, dst.SetAttribute("neurodata_type", "TimeSeries"))
	_, err := dst.AddDataset("data", []float64{1, 2})
	require.NoError(t, err)

	src := NewGroup("series")
	_, err = src.AddDataset("electrode_idx", []int{0, 1})
	require.NoError(t, err)
	require.NoError(t, src.SetAttribute("help", "stored voltage"))

	require.NoError(t, DeepMerge(dst, src))

	_, err = dst.Dataset("data")
	assert.NoError(t, err)
	_, err = dst.Dataset("electrode_idx")
	assert.NoError(t, err)
	_, ok := dst.Attribute("neurodata_type")
	assert.True(t, ok)
	_, ok = dst.Attribute("help")
	assert.True(t, ok)
}

func TestDeepMergeRecursesIntoGroups(t *testing.T) {
	dst := NewGroup("root")
	dsub, err := dst.AddGroup("general")
	require.NoError(t, err)
	_, err = dsub.AddDataset("lab", "phys")
	require.NoError(t, err)

	src := NewGroup("root")
	ssub, err := src.AddGroup("general")
	require.NoError(t, err)
	_, err = ssub.AddDataset("institution", "uni")
	require.NoError(t, err)

	require.NoError(t, DeepMerge(dst, src))

	general, err := dst.Group("general")
	require.NoError(t, err)
	_, err = general.Dataset("lab")
	assert.NoError(t, err)
	_, err = general.Dataset("institution")
	assert.NoError(t, err)
}

func TestDeepMergeEqualContributionsAgree(t *testing.T) {
	dst := NewGroup("g")
	require.NoError(t, dst.SetAttribute("source", "amp-1"))
	_, err := dst.AddDataset("data", []float64{1, 2})
	require.NoError(t, err)
	require.NoError(t, dst.AddSoftLink("timestamps", "/a/timestamps"))

	src := NewGroup("g")
	require.NoError(t, src.SetAttribute("source", "amp-1"))
	_, err = src.AddDataset("data", []float64{1, 2})
	require.NoError(t, err)
	require.NoError(t, src.AddSoftLink("timestamps", "/a/timestamps"))

	assert.NoError(t, DeepMerge(dst, src))
}

func TestDeepMergeAttributeConflict(t *testing.T) {
	dst := NewGroup("g")
	require.NoError(t, dst.SetAttribute("unit", "volts"))
	src := NewGroup("g")
	require.NoError(t, src.SetAttribute("unit", "amps"))

	assert.ErrorIs(t, DeepMerge(dst, src), ErrMergeConflict)
}

func TestDeepMergePayloadConflict(t *testing.T) {
	dst := NewGroup("g")
	_, err := dst.AddDataset("data", []float64{1})
	require.NoError(t, err)
	src := NewGroup("g")
	_, err = src.AddDataset("data", []float64{2})
	require.NoError(t, err)

	assert.ErrorIs(t, DeepMerge(dst, src), ErrMergeConflict)
}

func TestDeepMergeKindConflict(t *testing.T) {
	dst := NewGroup("g")
	_, err := dst.AddGroup("child")
	require.NoError(t, err)
	src := NewGroup("g")
	_, err = src.AddDataset("child", 1)
	require.NoError(t, err)

	assert.ErrorIs(t, DeepMerge(dst, src), ErrMergeConflict)
}

func TestDeepMergeLinkTargetConflict(t *testing.T) {
	dst := NewGroup("g")
	require.NoError(t, dst.AddSoftLink("data", "/a/data"))
	src := NewGroup("g")
	require.NoError(t, src.AddSoftLink("data", "/b/data"))

	assert.ErrorIs(t, DeepMerge(dst, src), ErrMergeConflict)
}
