package membership

import (
	"testing"

	"github.com/Electron-Labs/quantum-proof-schemes/registry"
	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend"
	"github.com/consensys/gnark/test"
	"github.com/stretchr/testify/require"
)

const depth = 2

func fingerprint(b byte) []byte {
	fp := make([]byte, 32)
	fp[31] = b
	return fp
}

// fullRegistry fills every slot of a depth 2 registry, fingerprint i+1 at
// index i.
func fullRegistry(t *testing.T) *registry.Registry {
	reg, err := registry.New(depth)
	require.NoError(t, err)
	for i := 0; i < reg.Capacity(); i++ {
		_, err := reg.Register("key", fingerprint(byte(i+1)))
		require.NoError(t, err)
	}
	return reg
}

func TestMembershipEveryIndex(t *testing.T) {
	assert := test.NewAssert(t)
	reg := fullRegistry(t)

	var circuit Circuit
	circuit.Make(depth)

	for i := 0; i < reg.Capacity(); i++ {
		entry, inclusion, err := reg.Prove(fingerprint(byte(i + 1)))
		require.NoError(t, err)
		require.Equal(t, uint64(i), entry.Index)

		assignment, err := Instance{Root: reg.Root()}.Assign(Witness{
			Index:       entry.Index,
			Fingerprint: entry.Fingerprint,
			Siblings:    inclusion.Siblings,
		}, depth)
		require.NoError(t, err)
		assert.ProverSucceeded(&circuit, assignment, test.WithCurves(ecc.BN254), test.WithBackends(backend.GROTH16))
	}
}

func TestMembershipPartialRegistry(t *testing.T) {
	assert := test.NewAssert(t)
	reg, err := registry.New(depth)
	require.NoError(t, err)
	_, err = reg.Register("key", fingerprint(1))
	require.NoError(t, err)

	var circuit Circuit
	circuit.Make(depth)

	inst, w, err := Statement(reg, fingerprint(1))
	require.NoError(t, err)
	assignment, err := inst.Assign(w, depth)
	require.NoError(t, err)
	assert.ProverSucceeded(&circuit, assignment, test.WithCurves(ecc.BN254), test.WithBackends(backend.GROTH16))
}

func TestMembershipRejectsForgeries(t *testing.T) {
	assert := test.NewAssert(t)
	reg := fullRegistry(t)

	var circuit Circuit
	circuit.Make(depth)

	inst, w, err := Statement(reg, fingerprint(2))
	require.NoError(t, err)

	// unregistered fingerprint
	forged := w
	forged.Fingerprint = fingerprint(9)
	assignment, err := inst.Assign(forged, depth)
	require.NoError(t, err)
	assert.ProverFailed(&circuit, assignment, test.WithCurves(ecc.BN254), test.WithBackends(backend.GROTH16))

	// right leaf, wrong index
	moved := w
	moved.Index = 0
	assignment, err = inst.Assign(moved, depth)
	require.NoError(t, err)
	assert.ProverFailed(&circuit, assignment, test.WithCurves(ecc.BN254), test.WithBackends(backend.GROTH16))

	// path bits that disagree with the index
	assignment, err = inst.Assign(w, depth)
	require.NoError(t, err)
	assignment.Path[0] = 1 - w.Index&1
	assert.ProverFailed(&circuit, assignment, test.WithCurves(ecc.BN254), test.WithBackends(backend.GROTH16))
}

func TestNativeAssignment(t *testing.T) {
	reg := fullRegistry(t)
	inst, w, err := Statement(reg, fingerprint(1))
	require.NoError(t, err)
	require.Len(t, w.Siblings, depth)

	_, err = inst.Assign(w, depth+1)
	require.Error(t, err)

	tooFar := w
	tooFar.Index = 1 << depth
	_, err = inst.Assign(tooFar, depth)
	require.Error(t, err)

	public, err := inst.PublicAssignment(depth)
	require.NoError(t, err)
	require.Len(t, public.Siblings, depth)

	_, err = Instance{Root: registry.Hash{1}}.PublicAssignment(depth)
	require.Error(t, err)

	_, _, err = Statement(reg, fingerprint(7))
	require.ErrorIs(t, err, registry.ErrNotFound)
}
