// Package keccak holds the in-circuit keccak256 digest type shared by circuits.
package keccak

import (
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash/sha3"
	"github.com/consensys/gnark/std/math/uints"
)

const N_BYTES_HASH = 32

type Hash []uints.U8

type NativeHash []byte

func (hash *Hash) Make() {
	*hash = make([]uints.U8, N_BYTES_HASH)
}

func (nativeHash NativeHash) GetVariable() Hash {
	var hash Hash
	for _, elm := range nativeHash {
		hash = append(hash, uints.U8{Val: elm})
	}
	return hash
}

// Sum hashes data with keccak256 inside the circuit.
func Sum(api frontend.API, data []uints.U8) (Hash, error) {
	var hashComputed []uints.U8
	hasher, err := sha3.NewLegacyKeccak256(api)
	if err != nil {
		return hashComputed, err
	}
	hasher.Write(data)
	hashComputed = hasher.Sum()
	return hashComputed, nil
}

// AssertEqual constrains a and b to the same digest.
func AssertEqual(api frontend.API, a, b Hash) {
	if len(a) != len(b) {
		panic("keccak.AssertEqual: length mismatch")
	}
	for i := range a {
		api.AssertIsEqual(a[i].Val, b[i].Val)
	}
}
