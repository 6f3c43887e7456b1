// Package preimage is the circuit for "I know a preimage of length n whose
// keccak256 digest is Digest". Digest is public, the preimage is secret.
package preimage

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/Electron-Labs/quantum-proof-schemes/circuits/keccak"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/math/uints"
	"golang.org/x/crypto/sha3"
)

type Circuit struct {
	Preimage []uints.U8
	Digest   keccak.Hash `gnark:",public"`
}

// Make allocates a placeholder for preimages of n bytes.
func (circuit *Circuit) Make(n int) {
	circuit.Preimage = make([]uints.U8, n)
	circuit.Digest.Make()
}

func (circuit *Circuit) Define(api frontend.API) error {
	digest, err := keccak.Sum(api, circuit.Preimage)
	if err != nil {
		return fmt.Errorf("keccak.Sum::%w", err)
	}
	keccak.AssertEqual(api, digest, circuit.Digest)
	return nil
}

// NativeDigest is keccak256 computed outside the circuit.
func NativeDigest(preimage []byte) keccak.NativeHash {
	h := sha3.NewLegacyKeccak256()
	h.Write(preimage)
	return h.Sum(nil)
}

type Instance struct {
	Digest string `json:"digest"`
}

type Witness struct {
	Preimage string `json:"preimage"`
}

func decodeHex(name, s string) ([]byte, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return raw, nil
}

func (u Instance) digest() (keccak.NativeHash, error) {
	raw, err := decodeHex("digest", u.Digest)
	if err != nil {
		return nil, err
	}
	if len(raw) != keccak.N_BYTES_HASH {
		return nil, fmt.Errorf("digest: %d bytes, want %d", len(raw), keccak.N_BYTES_HASH)
	}
	return raw, nil
}

// PublicAssignment returns an assignment for preimages of n bytes carrying
// only the digest.
func (u Instance) PublicAssignment(n int) (*Circuit, error) {
	digest, err := u.digest()
	if err != nil {
		return nil, err
	}
	return &Circuit{Preimage: uints.NewU8Array(make([]byte, n)), Digest: digest.GetVariable()}, nil
}

// Assign returns the full assignment. The preimage must be n bytes long.
func (u Instance) Assign(w Witness, n int) (*Circuit, error) {
	digest, err := u.digest()
	if err != nil {
		return nil, err
	}
	preimage, err := decodeHex("preimage", w.Preimage)
	if err != nil {
		return nil, err
	}
	if len(preimage) != n {
		return nil, fmt.Errorf("preimage: %d bytes, circuit takes %d", len(preimage), n)
	}
	return &Circuit{Preimage: uints.NewU8Array(preimage), Digest: digest.GetVariable()}, nil
}

// Statement builds the native instance and witness for preimage.
func Statement(preimage []byte) (Instance, Witness) {
	return Instance{Digest: hex.EncodeToString(NativeDigest(preimage))}, Witness{Preimage: hex.EncodeToString(preimage)}
}

