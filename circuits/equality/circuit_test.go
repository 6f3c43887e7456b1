package equality

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend"
	"github.com/consensys/gnark/test"
	"github.com/stretchr/testify/require"
)

func TestEquality(t *testing.T) {
	assert := test.NewAssert(t)

	var circuit Circuit
	assert.ProverSucceeded(&circuit, &Circuit{N: 5, W: 5}, test.WithCurves(ecc.BN254), test.WithBackends(backend.GROTH16))
	assert.ProverFailed(&circuit, &Circuit{N: 5, W: 7}, test.WithCurves(ecc.BN254), test.WithBackends(backend.GROTH16))
}

func TestNativeAssignment(t *testing.T) {
	full, err := Instance{N: "12"}.Assign(Witness{W: "12"})
	require.NoError(t, err)
	require.Equal(t, "12", full.N.(*big.Int).String())

	public, err := Instance{N: "12"}.PublicAssignment()
	require.NoError(t, err)
	require.Equal(t, 0, public.W)

	_, err = Instance{N: "twelve"}.PublicAssignment()
	require.Error(t, err)
	_, err = Instance{N: "1"}.Assign(Witness{W: "0x1"})
	require.Error(t, err)
}
