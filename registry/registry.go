// Package registry commits to the set of verifying keys an operator accepts.
// Each registered key is a leaf (index ‖ keccak fingerprint) of a fixed
// capacity keccak256 Merkle tree; empty slots hold zero fingerprints. A
// verifier holding only the root can check that a key was registered.
package registry

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	mt "github.com/txaty/go-merkletree"
	"golang.org/x/crypto/sha3"
)

const (
	N_BYTES_HASH  = 32
	N_BYTES_INDEX = 8

	MaxDepth = 20
)

var (
	ErrFull      = errors.New("registry is full")
	ErrDuplicate = errors.New("fingerprint already registered")
	ErrNotFound  = errors.New("not registered")
)

// Hash is a 32 byte digest rendered as hex in JSON.
type Hash []byte

func (h Hash) MarshalText() ([]byte, error) {
	return []byte(hex.EncodeToString(h)), nil
}

func (h *Hash) UnmarshalText(text []byte) error {
	raw, err := hex.DecodeString(string(text))
	if err != nil {
		return err
	}
	*h = raw
	return nil
}

type Entry struct {
	Index       uint64
	Name        string
	Fingerprint Hash
}

// leaf is the data block committed for a slot. The name is not committed.
type leaf struct {
	Index       uint64
	Fingerprint Hash
}

func (l leaf) Serialize() ([]byte, error) {
	serialized := binary.BigEndian.AppendUint64(make([]byte, 0, N_BYTES_INDEX+N_BYTES_HASH), l.Index)
	return append(serialized, l.Fingerprint...), nil
}

func (e Entry) leaf() leaf {
	return leaf{Index: e.Index, Fingerprint: e.Fingerprint}
}

type Registry struct {
	Depth   int
	Entries []Entry

	leaves []leaf
	tree   *mt.MerkleTree
}

func New(depth int) (*Registry, error) {
	if depth < 1 || depth > MaxDepth {
		return nil, fmt.Errorf("depth %d out of range [1, %d]", depth, MaxDepth)
	}
	r := &Registry{Depth: depth}
	if err := r.rebuild(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Registry) Capacity() int {
	return 1 << r.Depth
}

func (r *Registry) Root() Hash {
	return Hash(r.tree.Root)
}

// Register appends fingerprint under name. A name may be registered several
// times (key rotation), a fingerprint only once.
func (r *Registry) Register(name string, fingerprint []byte) (Entry, error) {
	if len(fingerprint) != N_BYTES_HASH {
		return Entry{}, fmt.Errorf("fingerprint has %d bytes, want %d", len(fingerprint), N_BYTES_HASH)
	}
	if _, err := r.find(fingerprint); err == nil {
		return Entry{}, ErrDuplicate
	}
	if len(r.Entries) >= r.Capacity() {
		return Entry{}, ErrFull
	}

	e := Entry{Index: uint64(len(r.Entries)), Name: name, Fingerprint: append(Hash(nil), fingerprint...)}
	r.Entries = append(r.Entries, e)
	if err := r.rebuild(); err != nil {
		r.Entries = r.Entries[:len(r.Entries)-1]
		return Entry{}, err
	}
	return e, nil
}

// Lookup returns the most recent entry registered under name.
func (r *Registry) Lookup(name string) (Entry, bool) {
	for i := len(r.Entries) - 1; i >= 0; i-- {
		if r.Entries[i].Name == name {
			return r.Entries[i], true
		}
	}
	return Entry{}, false
}

func (r *Registry) find(fingerprint []byte) (Entry, error) {
	for _, e := range r.Entries {
		if string(e.Fingerprint) == string(fingerprint) {
			return e, nil
		}
	}
	return Entry{}, ErrNotFound
}

// Prove returns the entry holding fingerprint and its inclusion proof against
// the current root.
func (r *Registry) Prove(fingerprint []byte) (Entry, *InclusionProof, error) {
	e, err := r.find(fingerprint)
	if err != nil {
		return Entry{}, nil, err
	}
	mtProof, err := r.tree.Proof(r.leaves[e.Index])
	if err != nil {
		return Entry{}, nil, fmt.Errorf("tree.Proof::%w", err)
	}
	p := getNativeInclusionProof(mtProof)
	return e, &p, nil
}

func (r *Registry) rebuild() error {
	leaves := make([]leaf, r.Capacity())
	for i := range leaves {
		leaves[i] = leaf{Index: uint64(i), Fingerprint: make(Hash, N_BYTES_HASH)}
	}
	for _, e := range r.Entries {
		leaves[e.Index] = e.leaf()
	}
	tree, err := treeFromLeaves(leaves)
	if err != nil {
		return err
	}
	r.leaves = leaves
	r.tree = tree
	return nil
}

func treeFromLeaves(leaves []leaf) (*mt.MerkleTree, error) {
	blocks := make([]mt.DataBlock, len(leaves))
	for i := range blocks {
		blocks[i] = leaves[i]
	}
	tree, err := mt.New(treeConfig(), blocks)
	if err != nil {
		return nil, fmt.Errorf("mt.New::%w", err)
	}
	return tree, nil
}

func treeConfig() *mt.Config {
	return &mt.Config{
		HashFunc: KeccakHashFunc,
		Mode:     mt.ModeTreeBuild,
	}
}

func KeccakHashFunc(data []byte) ([]byte, error) {
	keccakFunc := sha3.NewLegacyKeccak256()
	keccakFunc.Write(data)
	return keccakFunc.Sum(nil), nil
}

type file struct {
	Depth   int
	Root    Hash
	Entries []Entry
}

func (r *Registry) Save(path string) error {
	bytes, err := json.MarshalIndent(file{Depth: r.Depth, Root: r.Root(), Entries: r.Entries}, "", " ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, bytes, 0644)
}

// Load reads a registry written by Save and checks the stored root.
func Load(path string) (*Registry, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f file
	if err := json.Unmarshal(bytes, &f); err != nil {
		return nil, fmt.Errorf("json.Unmarshal(%s)::%w", path, err)
	}
	r, err := New(f.Depth)
	if err != nil {
		return nil, err
	}
	for i, e := range f.Entries {
		if e.Index != uint64(i) {
			return nil, fmt.Errorf("entry %d has index %d", i, e.Index)
		}
		if _, err := r.Register(e.Name, e.Fingerprint); err != nil {
			return nil, fmt.Errorf("entry %d::%w", i, err)
		}
	}
	if string(r.Root()) != string(f.Root) {
		return nil, fmt.Errorf("stored root %x does not match entries (%x)", []byte(f.Root), []byte(r.Root()))
	}
	return r, nil
}

// LoadOrNew loads path, or returns an empty registry of depth if the file
// does not exist.
func LoadOrNew(path string, depth int) (*Registry, error) {
	r, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return New(depth)
	}
	return r, err
}
