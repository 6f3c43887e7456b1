// Package schnorr is a non-interactive Schnorr proof of knowledge of a discrete
// logarithm on the BN254 G1 group. The statement is "I know x such that
// Y = x·G" for the instance Y and the generator G fixed by the keys. The
// challenge is derived with a Fiat-Shamir transcript over SHA-256.
//
// Create validates the witness and fails with proof.ErrUnsatisfied when
// Y != x·G, or with proof.ErrMalformed when Y is the identity. Nonces are drawn from the caller supplied randomness source.
package schnorr

import (
	"crypto/sha256"
	"fmt"
	"io"
	"math/big"

	"github.com/Electron-Labs/quantum-proof-schemes/proof"
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	fiatshamir "github.com/consensys/gnark-crypto/fiat-shamir"
)

const Name = "schnorr"

const challengeID = "c"

// Params are the public group parameters shared by both keys.
type Params struct {
	G bn254.G1Affine
}

type ProvingKey struct {
	Params
}

type VerifyingKey struct {
	Params
}

// Instance is the public point Y.
type Instance struct {
	Y bn254.G1Affine
}

// Witness is the secret scalar x.
type Witness struct {
	X fr.Element
}

type Proof struct {
	R bn254.G1Affine
	S fr.Element
}

type Scheme struct{}

var _ proof.Scheme[*ProvingKey, *VerifyingKey, *Instance, *Witness, *Proof] = Scheme{}

// Setup picks a random generator G = t·g1 with t != 0.
func Setup(rng io.Reader) (*ProvingKey, *VerifyingKey, error) {
	if rng == nil {
		return nil, nil, proof.ErrNilRandomness
	}
	t, err := randomScalar(rng)
	if err != nil {
		return nil, nil, err
	}
	_, _, g1, _ := bn254.Generators()

	var params Params
	params.G.ScalarMultiplication(&g1, t.BigInt(new(big.Int)))
	return &ProvingKey{Params: params}, &VerifyingKey{Params: params}, nil
}

// KeyPair samples a statement for params: a random witness x and the instance
// Y = x·G.
func KeyPair(params Params, rng io.Reader) (*Instance, *Witness, error) {
	if rng == nil {
		return nil, nil, proof.ErrNilRandomness
	}
	x, err := randomScalar(rng)
	if err != nil {
		return nil, nil, err
	}
	w := &Witness{X: x}
	return &Instance{Y: mul(&params.G, &w.X)}, w, nil
}

func (Scheme) Create(pk *ProvingKey, instance *Instance, witness *Witness, rng io.Reader) (*Proof, error) {
	if pk == nil || instance == nil || witness == nil {
		return nil, proof.Errorf(Name, proof.OpCreate, "nil key, instance or witness::%w", proof.ErrMalformed)
	}
	if rng == nil {
		return nil, &proof.Error{Scheme: Name, Op: proof.OpCreate, Err: proof.ErrNilRandomness}
	}
	if err := checkParams(&pk.Params); err != nil {
		return nil, &proof.Error{Scheme: Name, Op: proof.OpCreate, Err: err}
	}
	// Verify rejects the identity, so x = 0 must not yield a proof
	if err := checkPoint(&instance.Y); err != nil {
		return nil, proof.Errorf(Name, proof.OpCreate, "instance::%w", err)
	}
	y := mul(&pk.G, &witness.X)
	if !y.Equal(&instance.Y) {
		return nil, proof.Errorf(Name, proof.OpCreate, "Y != x·G::%w", proof.ErrUnsatisfied)
	}

	k, err := randomScalar(rng)
	if err != nil {
		return nil, &proof.Error{Scheme: Name, Op: proof.OpCreate, Err: err}
	}
	p := &Proof{R: mul(&pk.G, &k)}

	c, err := challenge(&pk.Params, instance, &p.R)
	if err != nil {
		return nil, &proof.Error{Scheme: Name, Op: proof.OpCreate, Err: err}
	}
	// s = k + c·x
	p.S.Mul(&c, &witness.X).Add(&p.S, &k)
	return p, nil
}

func (Scheme) Verify(p *Proof, vk *VerifyingKey, instance *Instance) error {
	if p == nil || vk == nil || instance == nil {
		return proof.Errorf(Name, proof.OpVerify, "nil proof, key or instance::%w", proof.ErrMalformed)
	}
	if err := checkParams(&vk.Params); err != nil {
		return &proof.Error{Scheme: Name, Op: proof.OpVerify, Err: err}
	}
	if err := checkPoint(&instance.Y); err != nil {
		return proof.Errorf(Name, proof.OpVerify, "instance::%w", err)
	}
	if err := checkPoint(&p.R); err != nil {
		return proof.Errorf(Name, proof.OpVerify, "commitment::%w", err)
	}

	c, err := challenge(&vk.Params, instance, &p.R)
	if err != nil {
		return &proof.Error{Scheme: Name, Op: proof.OpVerify, Err: err}
	}

	// s·G == R + c·Y
	lhs := mul(&vk.G, &p.S)
	cy := mul(&instance.Y, &c)
	var rhsJac bn254.G1Jac
	rhsJac.FromAffine(&p.R)
	rhsJac.AddMixed(&cy)
	var rhs bn254.G1Affine
	rhs.FromJacobian(&rhsJac)

	if !lhs.Equal(&rhs) {
		return proof.Errorf(Name, proof.OpVerify, "s·G != R + c·Y::%w", proof.ErrInvalidProof)
	}
	return nil
}

func challenge(params *Params, instance *Instance, r *bn254.G1Affine) (fr.Element, error) {
	var c fr.Element
	fs := fiatshamir.NewTranscript(sha256.New(), challengeID)
	for _, point := range []*bn254.G1Affine{&params.G, &instance.Y, r} {
		if err := fs.Bind(challengeID, point.Marshal()); err != nil {
			return c, fmt.Errorf("fs.Bind::%w", err)
		}
	}
	digest, err := fs.ComputeChallenge(challengeID)
	if err != nil {
		return c, fmt.Errorf("fs.ComputeChallenge::%w", err)
	}
	c.SetBytes(digest)
	return c, nil
}

func mul(p *bn254.G1Affine, s *fr.Element) bn254.G1Affine {
	var res bn254.G1Affine
	res.ScalarMultiplication(p, s.BigInt(new(big.Int)))
	return res
}

// randomScalar reads 48 bytes so the reduction modulo r is close to uniform,
// and retries on zero.
func randomScalar(rng io.Reader) (fr.Element, error) {
	var s fr.Element
	buf := make([]byte, 48)
	for s.IsZero() {
		if _, err := io.ReadFull(rng, buf); err != nil {
			return s, fmt.Errorf("read randomness::%w", err)
		}
		s.SetBytes(buf)
	}
	return s, nil
}

func checkParams(params *Params) error {
	if err := checkPoint(&params.G); err != nil {
		return fmt.Errorf("generator::%w", err)
	}
	return nil
}

func checkPoint(p *bn254.G1Affine) error {
	if p.IsInfinity() {
		return fmt.Errorf("point at infinity::%w", proof.ErrMalformed)
	}
	if !p.IsOnCurve() || !p.IsInSubGroup() {
		return fmt.Errorf("point not in G1::%w", proof.ErrMalformed)
	}
	return nil
}
