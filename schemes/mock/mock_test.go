package mock

import (
	"errors"
	"io"
	"testing"

	"github.com/Electron-Labs/quantum-proof-schemes/proof"
	"github.com/Electron-Labs/quantum-proof-schemes/proof/prooftest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keys(t testing.TB, rng io.Reader) (*ProvingKey, *VerifyingKey) {
	pk, vk, err := Setup(rng)
	require.NoError(t, err)
	return pk, vk
}

func TestConformance(t *testing.T) {
	prooftest.Harness[*ProvingKey, *VerifyingKey, Instance, Witness, *Proof]{
		Scheme: Scheme{},
		Keys:   keys,
		Valid: []prooftest.Case[Instance, Witness]{
			{Name: "five", Instance: 5, Witness: 5},
			{Name: "zero", Instance: 0, Witness: 0},
			{Name: "negative", Instance: -42, Witness: -42},
		},
		Invalid: []prooftest.Case[Instance, Witness]{
			{Name: "five-seven", Instance: 5, Witness: 7},
			{Name: "off-by-one", Instance: -1, Witness: 0},
		},
		Equal: func(a, b Instance) bool { return a == b },
	}.Run(t)
}

func TestEqualityScenario(t *testing.T) {
	pk, vk := keys(t, proof.NewSeededReader([]byte("scenario")))
	rng := proof.NewSeededReader([]byte("scenario rng"))

	p, err := Scheme{}.Create(pk, 5, 5, rng)
	require.NoError(t, err)

	assert.NoError(t, Scheme{}.Verify(p, vk, 5))

	err = Scheme{}.Verify(p, vk, 6)
	assert.ErrorIs(t, err, proof.ErrInvalidProof)

	_, err = Scheme{}.Create(pk, 5, 7, rng)
	assert.ErrorIs(t, err, proof.ErrUnsatisfied)

	var schemeErr *proof.Error
	require.True(t, errors.As(err, &schemeErr))
	assert.Equal(t, Name, schemeErr.Scheme)
	assert.Equal(t, proof.OpCreate, schemeErr.Op)
}

func TestVerifyRejectsOtherKey(t *testing.T) {
	pk, _ := keys(t, proof.NewSeededReader([]byte("key a")))
	_, otherVk := keys(t, proof.NewSeededReader([]byte("key b")))

	p, err := Scheme{}.Create(pk, 9, 9, proof.NewSeededReader([]byte("rng")))
	require.NoError(t, err)
	assert.True(t, proof.Rejected(Scheme{}.Verify(p, otherVk, 9)))
}

func TestCreateNeedsRandomness(t *testing.T) {
	pk, _ := keys(t, proof.NewSeededReader([]byte("key")))
	_, err := Scheme{}.Create(pk, 1, 1, nil)
	assert.ErrorIs(t, err, proof.ErrNilRandomness)

	_, _, err = Setup(nil)
	assert.ErrorIs(t, err, proof.ErrNilRandomness)
}

func TestProofEncoding(t *testing.T) {
	pk, vk := keys(t, proof.NewSeededReader([]byte("key")))
	p, err := Scheme{}.Create(pk, 3, 3, proof.NewSeededReader([]byte("rng")))
	require.NoError(t, err)

	raw, err := p.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, raw, ProofSize)

	var decoded Proof
	require.NoError(t, decoded.UnmarshalBinary(raw))
	assert.NoError(t, Scheme{}.Verify(&decoded, vk, 3))

	assert.ErrorIs(t, decoded.UnmarshalBinary(raw[1:]), proof.ErrMalformed)
	var badKey VerifyingKey
	assert.ErrorIs(t, badKey.UnmarshalBinary(make([]byte, KeySize+1)), proof.ErrMalformed)
}
