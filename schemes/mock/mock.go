// Package mock is a reference scheme for the statement "w equals n" over
// integers. Proofs are keyed keccak256 tags, so the scheme is designated
// verifier only and offers no cryptographic zero-knowledge guarantee. It exists
// to exercise generic callers and the conformance harness.
package mock

import (
	"crypto/subtle"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/Electron-Labs/quantum-proof-schemes/proof"
	"golang.org/x/crypto/sha3"
)

const (
	Name = "mock"

	KeySize   = 32
	NonceSize = 16
	TagSize   = 32
	ProofSize = NonceSize + TagSize
)

var domain = []byte("quantum-proof-schemes/mock/v1")

type Instance int64

type Witness int64

type ProvingKey struct {
	Key [KeySize]byte
}

type VerifyingKey struct {
	Key [KeySize]byte
}

type Proof struct {
	Nonce [NonceSize]byte
	Tag   [TagSize]byte
}

// Scheme implements proof.Scheme. Create checks the statement itself and fails
// with proof.ErrUnsatisfied instead of producing a proof.
type Scheme struct{}

var _ proof.Scheme[*ProvingKey, *VerifyingKey, Instance, Witness, *Proof] = Scheme{}

// Setup draws a fresh key shared by the proving and verifying key.
func Setup(rng io.Reader) (*ProvingKey, *VerifyingKey, error) {
	if rng == nil {
		return nil, nil, proof.ErrNilRandomness
	}
	var key [KeySize]byte
	if _, err := io.ReadFull(rng, key[:]); err != nil {
		return nil, nil, fmt.Errorf("read key::%w", err)
	}
	return &ProvingKey{Key: key}, &VerifyingKey{Key: key}, nil
}

func (Scheme) Create(pk *ProvingKey, instance Instance, witness Witness, rng io.Reader) (*Proof, error) {
	if pk == nil {
		return nil, proof.Errorf(Name, proof.OpCreate, "nil proving key::%w", proof.ErrMalformed)
	}
	if rng == nil {
		return nil, &proof.Error{Scheme: Name, Op: proof.OpCreate, Err: proof.ErrNilRandomness}
	}
	if int64(witness) != int64(instance) {
		return nil, proof.Errorf(Name, proof.OpCreate, "w=%d n=%d::%w", witness, instance, proof.ErrUnsatisfied)
	}

	p := &Proof{}
	if _, err := io.ReadFull(rng, p.Nonce[:]); err != nil {
		return nil, proof.Errorf(Name, proof.OpCreate, "read nonce::%w", err)
	}
	p.Tag = tag(pk.Key, instance, p.Nonce)
	return p, nil
}

func (Scheme) Verify(p *Proof, vk *VerifyingKey, instance Instance) error {
	if p == nil || vk == nil {
		return proof.Errorf(Name, proof.OpVerify, "nil proof or key::%w", proof.ErrMalformed)
	}
	expected := tag(vk.Key, instance, p.Nonce)
	if subtle.ConstantTimeCompare(expected[:], p.Tag[:]) != 1 {
		return proof.Errorf(Name, proof.OpVerify, "tag mismatch::%w", proof.ErrInvalidProof)
	}
	return nil
}

func tag(key [KeySize]byte, n Instance, nonce [NonceSize]byte) (out [TagSize]byte) {
	h := sha3.NewLegacyKeccak256()
	h.Write(domain)
	h.Write(key[:])
	h.Write(binary.BigEndian.AppendUint64(nil, uint64(n)))
	h.Write(nonce[:])
	copy(out[:], h.Sum(nil))
	return out
}
