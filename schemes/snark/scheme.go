// Package snark is a Groth16 proof scheme over gnark circuits.
//
// The instance is a circuit assignment in which only the public fields are
// meaningful, the witness is the full assignment. Create checks that the
// witness agrees with the instance on public values and solves the
// constraint system before proving, so an unsatisfying witness fails with
// proof.ErrUnsatisfied.
//
// gnark samples the Groth16 blinding factors from crypto/rand itself. The
// randomness source passed to Create is required but not read.
package snark

import (
	"bytes"
	"crypto/sha256"
	"io"

	"github.com/Electron-Labs/quantum-proof-schemes/proof"
	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
)

const Name = "groth16"

type ProvingKey struct {
	Curve ecc.ID
	CS    constraint.ConstraintSystem
	PK    groth16.ProvingKey
}

type VerifyingKey struct {
	Curve ecc.ID
	VK    groth16.VerifyingKey
}

type Scheme struct{}

var _ proof.Scheme[*ProvingKey, *VerifyingKey, frontend.Circuit, frontend.Circuit, groth16.Proof] = Scheme{}

func (Scheme) Create(pk *ProvingKey, instance, assignment frontend.Circuit, rng io.Reader) (groth16.Proof, error) {
	if pk == nil || pk.CS == nil || pk.PK == nil {
		return nil, proof.Errorf(Name, proof.OpCreate, "incomplete proving key::%w", proof.ErrMalformed)
	}
	if rng == nil {
		return nil, &proof.Error{Scheme: Name, Op: proof.OpCreate, Err: proof.ErrNilRandomness}
	}

	// create prover witness from the assignment
	fullWitness, err := frontend.NewWitness(assignment, pk.Curve.ScalarField())
	if err != nil {
		return nil, proof.Errorf(Name, proof.OpCreate, "frontend.NewWitness::%v::%w", err, proof.ErrMalformed)
	}
	publicWitness, err := fullWitness.Public()
	if err != nil {
		return nil, proof.Errorf(Name, proof.OpCreate, "fullWitness.Public::%v::%w", err, proof.ErrMalformed)
	}
	instanceWitness, err := toPublicWitness(instance, pk.Curve)
	if err != nil {
		return nil, &proof.Error{Scheme: Name, Op: proof.OpCreate, Err: err}
	}
	same, err := sameWitness(publicWitness, instanceWitness)
	if err != nil {
		return nil, &proof.Error{Scheme: Name, Op: proof.OpCreate, Err: err}
	}
	if !same {
		return nil, proof.Errorf(Name, proof.OpCreate, "public values differ from instance::%w", proof.ErrUnsatisfied)
	}

	if err := pk.CS.IsSolved(fullWitness); err != nil {
		return nil, proof.Errorf(Name, proof.OpCreate, "%v::%w", err, proof.ErrUnsatisfied)
	}

	p, err := groth16.Prove(pk.CS, pk.PK, fullWitness, backend.WithProverHashToFieldFunction(sha256.New()))
	if err != nil {
		return nil, proof.Errorf(Name, proof.OpCreate, "groth16.Prove::%w", err)
	}
	return p, nil
}

func (Scheme) Verify(p groth16.Proof, vk *VerifyingKey, instance frontend.Circuit) error {
	if p == nil || vk == nil || vk.VK == nil {
		return proof.Errorf(Name, proof.OpVerify, "nil proof or key::%w", proof.ErrMalformed)
	}
	publicWitness, err := toPublicWitness(instance, vk.Curve)
	if err != nil {
		return &proof.Error{Scheme: Name, Op: proof.OpVerify, Err: err}
	}
	err = groth16.Verify(p, vk.VK, publicWitness, backend.WithVerifierHashToFieldFunction(sha256.New()))
	if err != nil {
		return proof.Errorf(Name, proof.OpVerify, "groth16.Verify::%v::%w", err, proof.ErrInvalidProof)
	}
	return nil
}

func toPublicWitness(instance frontend.Circuit, curve ecc.ID) (witness.Witness, error) {
	if instance == nil {
		return nil, proof.ErrMalformed
	}
	w, err := frontend.NewWitness(instance, curve.ScalarField(), frontend.PublicOnly())
	if err != nil {
		return nil, errorf("instance witness::%v", err)
	}
	return w, nil
}

func sameWitness(a, b witness.Witness) (bool, error) {
	rawA, err := a.MarshalBinary()
	if err != nil {
		return false, err
	}
	rawB, err := b.MarshalBinary()
	if err != nil {
		return false, err
	}
	return bytes.Equal(rawA, rawB), nil
}
