package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMap(t *testing.T) *TypeMap {
	t.Helper()
	tm := NewTypeMap(map[string][]string{
		"Base":    {"Base"},
		"Derived": {"Base", "Derived"},
	})
	require.NoError(t, tm.Declare("Base",
		Spec{Name: "help", Kind: KindAttribute},
		Spec{Name: "data", Kind: KindDataset},
	))
	require.NoError(t, tm.Declare("Derived",
		Spec{Name: "data", Kind: KindGroup}, // re-declares the base field
		Spec{Name: "extra", Kind: KindDataset},
	))
	return tm
}

func TestGetSpecDerivedFirst(t *testing.T) {
	tm := testMap(t)

	s, err := tm.GetSpec("Derived", "data")
	require.NoError(t, err)
	assert.Equal(t, KindGroup, s.Kind)
	assert.Equal(t, "Derived", s.DeclaredBy)

	// The base type still resolves its own declaration.
	s, err = tm.GetSpec("Base", "data")
	require.NoError(t, err)
	assert.Equal(t, KindDataset, s.Kind)
	assert.Equal(t, "Base", s.DeclaredBy)
}

func TestGetSpecInheritsBase(t *testing.T) {
	tm := testMap(t)
	s, err := tm.GetSpec("Derived", "help")
	require.NoError(t, err)
	assert.Equal(t, "Base", s.DeclaredBy)
}

func TestGetSpecNotFound(t *testing.T) {
	tm := testMap(t)
	_, err := tm.GetSpec("Derived", "nope")
	assert.ErrorIs(t, err, ErrSpecNotFound)
}

func TestGetSpecUnknownType(t *testing.T) {
	tm := testMap(t)
	_, err := tm.GetSpec("Other", "data")
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestChildrenSpecsDerivedWinsInPlace(t *testing.T) {
	tm := testMap(t)

	specs, err := tm.ChildrenSpecs("Derived")
	require.NoError(t, err)

	names := make([]string, len(specs))
	for i, s := range specs {
		names[i] = s.Name
	}
	// Base order preserved; the re-declared field keeps its slot.
	assert.Equal(t, []string{"help", "data", "extra"}, names)
	assert.Equal(t, KindGroup, specs[1].Kind)
	assert.Equal(t, "Derived", specs[1].DeclaredBy)
}

func TestDeclareUnknownType(t *testing.T) {
	tm := NewTypeMap(map[string][]string{"Base": {"Base"}})
	err := tm.Declare("Ghost", Spec{Name: "x", Kind: KindDataset})
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestAncestorsReturnsCopy(t *testing.T) {
	tm := testMap(t)
	chain, err := tm.Ancestors("Derived")
	require.NoError(t, err)
	require.Equal(t, []string{"Base", "Derived"}, chain)

	chain[0] = "mutated"
	again, err := tm.Ancestors("Derived")
	require.NoError(t, err)
	assert.Equal(t, []string{"Base", "Derived"}, again)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "attribute", KindAttribute.String())
	assert.Equal(t, "dataset", KindDataset.String())
	assert.Equal(t, "group", KindGroup.String())
}
