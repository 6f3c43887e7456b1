package preimage

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend"
	"github.com/consensys/gnark/test"
	"github.com/stretchr/testify/require"
)

func TestPreimage(t *testing.T) {
	assert := test.NewAssert(t)
	msg := []byte("quantum proof schemes")

	var circuit Circuit
	circuit.Make(len(msg))

	inst, w := Statement(msg)
	assignment, err := inst.Assign(w, len(msg))
	require.NoError(t, err)
	assert.ProverSucceeded(&circuit, assignment, test.WithCurves(ecc.BN254), test.WithBackends(backend.GROTH16))

	wrongInst, _ := Statement([]byte("quantum proof schemez"))
	wrong, err := wrongInst.Assign(w, len(msg))
	require.NoError(t, err)
	assert.ProverFailed(&circuit, wrong, test.WithCurves(ecc.BN254), test.WithBackends(backend.GROTH16))
}

func TestNativeAssignment(t *testing.T) {
	inst, w := Statement([]byte{1, 2, 3})

	_, err := inst.Assign(w, 4)
	require.Error(t, err)

	public, err := inst.PublicAssignment(3)
	require.NoError(t, err)
	require.Len(t, public.Preimage, 3)
	require.Len(t, public.Digest, 32)

	_, err = Instance{Digest: "abcd"}.PublicAssignment(3)
	require.Error(t, err)
	_, err = inst.Assign(Witness{Preimage: "zz"}, 1)
	require.Error(t, err)
}
