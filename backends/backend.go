// Package backends binds each proof scheme to byte level artifacts: binary
// keys and proofs, JSON instance and witness documents. The CLI only talks to
// the Backend interface.
package backends

import (
	"context"
	"fmt"
	"io"
	"sort"
)

// Job is a JSON instance and witness pair to prove.
type Job struct {
	Instance []byte
	Witness  []byte
}

// Item is a JSON instance and a binary proof to verify.
type Item struct {
	Instance []byte
	Proof    []byte
}

type Backend interface {
	Name() string
	// Setup returns encoded proving and verifying keys.
	Setup(ctx context.Context, rng io.Reader) (pk, vk []byte, err error)
	// Fingerprint is the 32 byte keccak256 digest the registry commits to.
	Fingerprint(vk []byte) ([]byte, error)
	ProveBatch(ctx context.Context, pk []byte, jobs []Job, rngFor func(int) io.Reader) ([][]byte, error)
	VerifyBatch(ctx context.Context, vk []byte, items []Item) error
}

// Sampler is implemented by backends that can generate a satisfied statement.
type Sampler interface {
	Sample(vk []byte, rng io.Reader) (instance, witness []byte, err error)
}

// ProofExporter is implemented by backends with a JSON proof rendering.
type ProofExporter interface {
	ExportProof(vk, proof []byte) ([]byte, error)
}

type Config struct {
	// PreimageLength is the preimage size in bytes of the groth16-keccak circuit.
	PreimageLength int `yaml:"preimage_length"`
	// RegistryDepth is the registry depth the groth16-registry circuit
	// proves membership for. The CLI takes it from the registry file, not
	// from the config file.
	RegistryDepth int `yaml:"-"`
}

func DefaultConfig() Config {
	return Config{PreimageLength: 32, RegistryDepth: 10}
}

var constructors = map[string]func(Config) (Backend, error){
	MockName:            func(Config) (Backend, error) { return Mock(), nil },
	SchnorrName:         func(Config) (Backend, error) { return Schnorr(), nil },
	Groth16EqualName:    func(Config) (Backend, error) { return Groth16Equal(), nil },
	Groth16KeccakName:   func(cfg Config) (Backend, error) { return Groth16Keccak(cfg.PreimageLength) },
	Groth16RegistryName: func(cfg Config) (Backend, error) { return Groth16Registry(cfg.RegistryDepth) },
}

// Get returns the backend called name.
func Get(name string, cfg Config) (Backend, error) {
	constructor, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("unknown backend %q, have %v", name, Names())
	}
	return constructor(cfg)
}

func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
