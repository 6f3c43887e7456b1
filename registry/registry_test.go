package registry

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fingerprint(s string) []byte {
	h, _ := KeccakHashFunc([]byte(s))
	return h
}

func TestRegisterAndProve(t *testing.T) {
	r, err := New(3)
	require.NoError(t, err)
	emptyRoot := append(Hash(nil), r.Root()...)

	a, err := r.Register("mock", fingerprint("a"))
	require.NoError(t, err)
	b, err := r.Register("schnorr", fingerprint("b"))
	require.NoError(t, err)
	assert.Equal(t, uint64(0), a.Index)
	assert.Equal(t, uint64(1), b.Index)
	assert.NotEqual(t, emptyRoot, r.Root())

	for _, fp := range [][]byte{fingerprint("a"), fingerprint("b")} {
		entry, p, err := r.Prove(fp)
		require.NoError(t, err)
		require.Len(t, p.Siblings, 3)
		ok, err := Verify(r.Root(), entry, p)
		require.NoError(t, err)
		assert.True(t, ok)
	}

	// a proof for one entry does not hold for a forged one
	entry, p, err := r.Prove(fingerprint("a"))
	require.NoError(t, err)
	forged := entry
	forged.Fingerprint = fingerprint("c")
	ok, err := Verify(r.Root(), forged, p)
	require.NoError(t, err)
	assert.False(t, ok)

	// nor against a stale root
	ok, err = Verify(emptyRoot, entry, p)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRegisterRules(t *testing.T) {
	r, err := New(1)
	require.NoError(t, err)

	_, err = r.Register("x", []byte{1, 2, 3})
	assert.Error(t, err)

	_, err = r.Register("x", fingerprint("1"))
	require.NoError(t, err)
	_, err = r.Register("y", fingerprint("1"))
	assert.ErrorIs(t, err, ErrDuplicate)

	_, err = r.Register("x", fingerprint("2"))
	require.NoError(t, err)
	latest, ok := r.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, uint64(1), latest.Index)

	_, err = r.Register("z", fingerprint("3"))
	assert.ErrorIs(t, err, ErrFull)

	_, _, err = r.Prove(fingerprint("missing"))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = New(0)
	assert.Error(t, err)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")

	missing, err := LoadOrNew(path, 4)
	require.NoError(t, err)
	assert.Empty(t, missing.Entries)

	r, err := New(4)
	require.NoError(t, err)
	_, err = r.Register("mock", fingerprint("a"))
	require.NoError(t, err)
	_, err = r.Register("groth16-equal", fingerprint("b"))
	require.NoError(t, err)
	require.NoError(t, r.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, r.Root(), loaded.Root())
	assert.Equal(t, r.Entries, loaded.Entries)

	entry, p, err := loaded.Prove(fingerprint("b"))
	require.NoError(t, err)
	ok, err := Verify(r.Root(), entry, p)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestInclusionProofValidation(t *testing.T) {
	_, err := (&InclusionProof{Siblings: make([]Hash, 2), Path: []uint8{0}}).mtProof()
	assert.Error(t, err)
	_, err = (&InclusionProof{Siblings: make([]Hash, 1), Path: []uint8{2}}).mtProof()
	assert.Error(t, err)
	_, err = Verify(nil, Entry{}, nil)
	assert.Error(t, err)
}

func TestInclusionPathBitsComplementIndex(t *testing.T) {
	r, err := New(2)
	require.NoError(t, err)
	for i := 0; i < r.Capacity(); i++ {
		_, err := r.Register("key", fingerprint(fmt.Sprint(i)))
		require.NoError(t, err)
	}
	for i := 0; i < r.Capacity(); i++ {
		entry, p, err := r.Prove(fingerprint(fmt.Sprint(i)))
		require.NoError(t, err)
		require.Equal(t, uint64(i), entry.Index)
		for level, bit := range p.Path {
			assert.Equal(t, uint8(1-(i>>level)&1), bit, "index %d level %d", i, level)
		}
	}
}
