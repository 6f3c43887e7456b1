// Package membership is the circuit for "I know an entry of the registry with
// root Root". Only the root is public: the entry index, its fingerprint and
// the Merkle path stay secret.
package membership

import (
	"fmt"

	"github.com/Electron-Labs/quantum-proof-schemes/circuits/keccak"
	"github.com/Electron-Labs/quantum-proof-schemes/registry"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/math/uints"
)

type Circuit struct {
	Root        keccak.Hash `gnark:",public"`
	Index       []uints.U8
	Fingerprint keccak.Hash
	Siblings    []keccak.Hash
	// Path[i] is bit i of Index, 1 when the level i node is a right child
	Path []frontend.Variable
}

// Make allocates a placeholder for registries of the given depth.
func (circuit *Circuit) Make(depth int) {
	circuit.Root.Make()
	circuit.Index = make([]uints.U8, registry.N_BYTES_INDEX)
	circuit.Fingerprint.Make()
	circuit.Siblings = make([]keccak.Hash, depth)
	for i := range circuit.Siblings {
		circuit.Siblings[i].Make()
	}
	circuit.Path = make([]frontend.Variable, depth)
}

func (circuit *Circuit) Define(api frontend.API) error {
	if len(circuit.Siblings) != len(circuit.Path) {
		return fmt.Errorf("%d siblings but %d path bits", len(circuit.Siblings), len(circuit.Path))
	}

	leaf := make([]uints.U8, 0, len(circuit.Index)+len(circuit.Fingerprint))
	leaf = append(leaf, circuit.Index...)
	leaf = append(leaf, circuit.Fingerprint...)
	leafHash, err := keccak.Sum(api, leaf)
	if err != nil {
		return fmt.Errorf("leaf hash::%w", err)
	}

	// the path must spell the committed index
	index := frontend.Variable(0)
	for i, bit := range circuit.Path {
		api.AssertIsBoolean(bit)
		index = api.Add(index, api.Mul(bit, 1<<i))
	}
	api.AssertIsEqual(index, beBytesToNum(api, circuit.Index))

	root, err := computeMerkleRoot(api, leafHash, circuit.Siblings, circuit.Path)
	if err != nil {
		return err
	}
	keccak.AssertEqual(api, root, circuit.Root)
	return nil
}

func computeMerkleRoot(api frontend.API, leafHash keccak.Hash, siblings []keccak.Hash, path []frontend.Variable) (keccak.Hash, error) {
	hash := leafHash
	one := frontend.Variable(1)
	for i := 0; i < len(path); i++ {
		// path bit 1: current is the right child, hash(sibling ‖ current)
		concat := make([]uints.U8, 2*keccak.N_BYTES_HASH)
		for j := 0; j < keccak.N_BYTES_HASH; j++ {
			concat[j].Val = api.Add(
				api.Mul(path[i], siblings[i][j].Val),
				api.Mul(api.Sub(one, path[i]), hash[j].Val),
			)
			concat[keccak.N_BYTES_HASH+j].Val = api.Add(
				api.Mul(path[i], hash[j].Val),
				api.Mul(api.Sub(one, path[i]), siblings[i][j].Val),
			)
		}
		next, err := keccak.Sum(api, concat)
		if err != nil {
			return nil, fmt.Errorf("level %d::%w", i, err)
		}
		hash = next
	}
	return hash, nil
}

func beBytesToNum(api frontend.API, bytes []uints.U8) frontend.Variable {
	sum := frontend.Variable(0)
	factor := frontend.Variable(1)
	base := frontend.Variable(256)

	for i := range bytes {
		sum = api.Add(sum, api.Mul(factor, bytes[len(bytes)-1-i].Val))
		factor = api.Mul(factor, base)
	}

	return sum
}
