package membership

import (
	"encoding/binary"
	"fmt"

	"github.com/Electron-Labs/quantum-proof-schemes/circuits/keccak"
	"github.com/Electron-Labs/quantum-proof-schemes/registry"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/math/uints"
)

type Instance struct {
	Root registry.Hash `json:"root"`
}

type Witness struct {
	Index       uint64          `json:"index"`
	Fingerprint registry.Hash   `json:"fingerprint"`
	Siblings    []registry.Hash `json:"siblings"`
}

func checkHash(name string, h []byte) error {
	if len(h) != keccak.N_BYTES_HASH {
		return fmt.Errorf("%s: %d bytes, want %d", name, len(h), keccak.N_BYTES_HASH)
	}
	return nil
}

// PublicAssignment returns an assignment for registries of depth carrying only
// the root.
func (u Instance) PublicAssignment(depth int) (*Circuit, error) {
	if err := checkHash("root", u.Root); err != nil {
		return nil, err
	}
	var circuit Circuit
	circuit.Make(depth)
	circuit.Root = keccak.NativeHash(u.Root).GetVariable()
	for i := range circuit.Index {
		circuit.Index[i] = uints.NewU8(0)
	}
	for i := range circuit.Fingerprint {
		circuit.Fingerprint[i] = uints.NewU8(0)
	}
	for i := range circuit.Siblings {
		for j := range circuit.Siblings[i] {
			circuit.Siblings[i][j] = uints.NewU8(0)
		}
		circuit.Path[i] = 0
	}
	return &circuit, nil
}

// Assign returns the full assignment. The path bits are taken from the index.
func (u Instance) Assign(w Witness, depth int) (*Circuit, error) {
	if err := checkHash("root", u.Root); err != nil {
		return nil, err
	}
	if err := checkHash("fingerprint", w.Fingerprint); err != nil {
		return nil, err
	}
	if len(w.Siblings) != depth {
		return nil, fmt.Errorf("siblings: %d, circuit takes %d", len(w.Siblings), depth)
	}
	if w.Index >= 1<<depth {
		return nil, fmt.Errorf("index %d does not fit depth %d", w.Index, depth)
	}

	index := make([]byte, registry.N_BYTES_INDEX)
	binary.BigEndian.PutUint64(index, w.Index)

	circuit := &Circuit{
		Root:        keccak.NativeHash(u.Root).GetVariable(),
		Index:       uints.NewU8Array(index),
		Fingerprint: keccak.NativeHash(w.Fingerprint).GetVariable(),
		Siblings:    make([]keccak.Hash, depth),
		Path:        make([]frontend.Variable, depth),
	}
	for i, sibling := range w.Siblings {
		if err := checkHash(fmt.Sprintf("sibling %d", i), sibling); err != nil {
			return nil, err
		}
		circuit.Siblings[i] = keccak.NativeHash(sibling).GetVariable()
		circuit.Path[i] = (w.Index >> i) & 1
	}
	return circuit, nil
}

// Statement builds the instance and witness for the entry of reg holding
// fingerprint.
func Statement(reg *registry.Registry, fingerprint []byte) (Instance, Witness, error) {
	entry, inclusion, err := reg.Prove(fingerprint)
	if err != nil {
		return Instance{}, Witness{}, err
	}
	return Instance{Root: reg.Root()}, Witness{
		Index:       entry.Index,
		Fingerprint: entry.Fingerprint,
		Siblings:    inclusion.Siblings,
	}, nil
}
