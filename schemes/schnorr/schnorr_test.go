package schnorr

import (
	"encoding/json"
	"fmt"
	"io"
	"testing"

	"github.com/Electron-Labs/quantum-proof-schemes/proof"
	"github.com/Electron-Labs/quantum-proof-schemes/proof/prooftest"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t testing.TB, seed string) (*ProvingKey, *VerifyingKey) {
	pk, vk, err := Setup(proof.NewSeededReader([]byte(seed)))
	require.NoError(t, err)
	return pk, vk
}

func statement(t testing.TB, params Params, seed string) (*Instance, *Witness) {
	inst, w, err := KeyPair(params, proof.NewSeededReader([]byte(seed)))
	require.NoError(t, err)
	return inst, w
}

func TestConformance(t *testing.T) {
	// the harness derives its keys from a fixed seed, so statements are built
	// against the same parameters
	keys := func(t testing.TB, rng io.Reader) (*ProvingKey, *VerifyingKey) {
		pk, vk, err := Setup(rng)
		require.NoError(t, err)
		return pk, vk
	}
	pk, _ := keys(t, proof.NewSeededReader([]byte("prooftest keys")))

	var valid []prooftest.Case[*Instance, *Witness]
	for i := 0; i < 3; i++ {
		inst, w := statement(t, pk.Params, fmt.Sprintf("statement-%d", i))
		valid = append(valid, prooftest.Case[*Instance, *Witness]{Name: fmt.Sprintf("valid-%d", i), Instance: inst, Witness: w})
	}

	wrong := *valid[0].Witness
	var one fr.Element
	one.SetOne()
	wrong.X.Add(&wrong.X, &one)

	prooftest.Harness[*ProvingKey, *VerifyingKey, *Instance, *Witness, *Proof]{
		Scheme: Scheme{},
		Keys:   keys,
		Valid:  valid,
		Invalid: []prooftest.Case[*Instance, *Witness]{
			{Name: "shifted-witness", Instance: valid[0].Instance, Witness: &wrong},
			{Name: "foreign-witness", Instance: valid[0].Instance, Witness: valid[1].Witness},
		},
		Equal: func(a, b *Instance) bool { return a.Y.Equal(&b.Y) },
	}.Run(t)
}

func TestCreateRejectsWrongWitness(t *testing.T) {
	pk, _ := setup(t, "keys")
	inst, _ := statement(t, pk.Params, "a")
	_, other := statement(t, pk.Params, "b")

	_, err := Scheme{}.Create(pk, inst, other, proof.NewSeededReader([]byte("rng")))
	assert.ErrorIs(t, err, proof.ErrUnsatisfied)
}

func TestVerifyRejectsTamperedProof(t *testing.T) {
	pk, vk := setup(t, "keys")
	inst, w := statement(t, pk.Params, "a")

	p, err := Scheme{}.Create(pk, inst, w, proof.NewSeededReader([]byte("rng")))
	require.NoError(t, err)
	require.NoError(t, Scheme{}.Verify(p, vk, inst))

	tampered := *p
	var one fr.Element
	one.SetOne()
	tampered.S.Add(&tampered.S, &one)
	assert.True(t, proof.Rejected(Scheme{}.Verify(&tampered, vk, inst)))

	// the original is untouched by verification of the copy
	assert.NoError(t, Scheme{}.Verify(p, vk, inst))
}

func TestVerifyRejectsOtherGenerator(t *testing.T) {
	pk, _ := setup(t, "keys")
	_, otherVk := setup(t, "other keys")
	inst, w := statement(t, pk.Params, "a")

	p, err := Scheme{}.Create(pk, inst, w, proof.NewSeededReader([]byte("rng")))
	require.NoError(t, err)
	assert.Error(t, Scheme{}.Verify(p, otherVk, inst))
}

func TestVerifyRejectsIdentityCommitment(t *testing.T) {
	pk, vk := setup(t, "keys")
	inst, w := statement(t, pk.Params, "a")
	p, err := Scheme{}.Create(pk, inst, w, proof.NewSeededReader([]byte("rng")))
	require.NoError(t, err)

	p.R.X.SetZero()
	p.R.Y.SetZero()
	assert.ErrorIs(t, Scheme{}.Verify(p, vk, inst), proof.ErrMalformed)
}

func TestCreateRejectsIdentityInstance(t *testing.T) {
	pk, _ := setup(t, "keys")
	var zero Witness
	identity := &Instance{Y: mul(&pk.G, &zero.X)}
	require.True(t, identity.Y.IsInfinity())

	p, err := Scheme{}.Create(pk, identity, &zero, proof.NewSeededReader([]byte("rng")))
	assert.Nil(t, p)
	assert.ErrorIs(t, err, proof.ErrMalformed)
}

func TestEncoding(t *testing.T) {
	pk, vk := setup(t, "keys")
	inst, w := statement(t, pk.Params, "a")
	p, err := Scheme{}.Create(pk, inst, w, proof.NewSeededReader([]byte("rng")))
	require.NoError(t, err)

	rawProof, err := p.MarshalBinary()
	require.NoError(t, err)
	rawVk, err := vk.MarshalBinary()
	require.NoError(t, err)

	var decodedProof Proof
	require.NoError(t, decodedProof.UnmarshalBinary(rawProof))
	var decodedVk VerifyingKey
	require.NoError(t, decodedVk.UnmarshalBinary(rawVk))

	instJSON, err := json.Marshal(inst)
	require.NoError(t, err)
	var decodedInst Instance
	require.NoError(t, json.Unmarshal(instJSON, &decodedInst))

	assert.NoError(t, Scheme{}.Verify(&decodedProof, &decodedVk, &decodedInst))

	witnessText, err := w.MarshalText()
	require.NoError(t, err)
	var decodedWitness Witness
	require.NoError(t, decodedWitness.UnmarshalText(witnessText))
	assert.True(t, decodedWitness.X.Equal(&w.X))

	assert.ErrorIs(t, decodedProof.UnmarshalBinary([]byte{0x01}), proof.ErrMalformed)
	assert.ErrorIs(t, decodedWitness.UnmarshalText([]byte(fr.Modulus().String())), proof.ErrMalformed)
}
