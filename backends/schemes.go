package backends

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math/big"

	"github.com/Electron-Labs/quantum-proof-schemes/circuits/equality"
	"github.com/Electron-Labs/quantum-proof-schemes/circuits/membership"
	"github.com/Electron-Labs/quantum-proof-schemes/circuits/preimage"
	"github.com/Electron-Labs/quantum-proof-schemes/proof"
	"github.com/Electron-Labs/quantum-proof-schemes/registry"
	"github.com/Electron-Labs/quantum-proof-schemes/schemes/mock"
	"github.com/Electron-Labs/quantum-proof-schemes/schemes/schnorr"
	"github.com/Electron-Labs/quantum-proof-schemes/schemes/snark"
	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/frontend"
)

const (
	MockName            = mock.Name
	SchnorrName         = schnorr.Name
	Groth16EqualName    = snark.Name + "-equal"
	Groth16KeccakName   = snark.Name + "-keccak"
	Groth16RegistryName = snark.Name + "-registry"
)

type mockBackend struct {
	*adapter[*mock.ProvingKey, *mock.VerifyingKey, mock.Instance, mock.Witness, *mock.Proof]
}

func Mock() Backend {
	return mockBackend{&adapter[*mock.ProvingKey, *mock.VerifyingKey, mock.Instance, mock.Witness, *mock.Proof]{
		name:   MockName,
		scheme: mock.Scheme{},
		setup: func(rng io.Reader) ([]byte, []byte, error) {
			pk, vk, err := mock.Setup(rng)
			if err != nil {
				return nil, nil, err
			}
			return marshalKeys(pk, vk)
		},
		fingerprint: keccakOf[*mock.VerifyingKey],
		codec: codec[*mock.ProvingKey, *mock.VerifyingKey, mock.Instance, mock.Witness, *mock.Proof]{
			decodePK:       decodeBinary[mock.ProvingKey],
			decodeVK:       decodeBinary[mock.VerifyingKey],
			decodeInstance: decodeJSON[mock.Instance],
			decodeWitness: func(_, witness []byte) (mock.Witness, error) {
				return decodeJSON[mock.Witness](witness)
			},
			encodeProof: encodeBinary[*mock.Proof],
			decodeProof: func(_ *mock.VerifyingKey, data []byte) (*mock.Proof, error) {
				return decodeBinary[mock.Proof](data)
			},
		},
	}}
}

// Sample draws a non-negative n and uses it as both instance and witness.
func (mockBackend) Sample(_ []byte, rng io.Reader) ([]byte, []byte, error) {
	var buf [8]byte
	if _, err := io.ReadFull(rng, buf[:]); err != nil {
		return nil, nil, fmt.Errorf("read randomness::%w", err)
	}
	n := int64(binary.BigEndian.Uint64(buf[:]) >> 1)
	return marshalStatement(mock.Instance(n), mock.Witness(n))
}

type schnorrBackend struct {
	*adapter[*schnorr.ProvingKey, *schnorr.VerifyingKey, *schnorr.Instance, *schnorr.Witness, *schnorr.Proof]
}

func Schnorr() Backend {
	return schnorrBackend{&adapter[*schnorr.ProvingKey, *schnorr.VerifyingKey, *schnorr.Instance, *schnorr.Witness, *schnorr.Proof]{
		name:   SchnorrName,
		scheme: schnorr.Scheme{},
		setup: func(rng io.Reader) ([]byte, []byte, error) {
			pk, vk, err := schnorr.Setup(rng)
			if err != nil {
				return nil, nil, err
			}
			return marshalKeys(pk, vk)
		},
		fingerprint: keccakOf[*schnorr.VerifyingKey],
		codec: codec[*schnorr.ProvingKey, *schnorr.VerifyingKey, *schnorr.Instance, *schnorr.Witness, *schnorr.Proof]{
			decodePK:       decodeBinary[schnorr.ProvingKey],
			decodeVK:       decodeBinary[schnorr.VerifyingKey],
			decodeInstance: decodeJSONPtr[schnorr.Instance],
			decodeWitness: func(_, witness []byte) (*schnorr.Witness, error) {
				return decodeJSONPtr[schnorr.Witness](witness)
			},
			encodeProof: encodeBinary[*schnorr.Proof],
			decodeProof: func(_ *schnorr.VerifyingKey, data []byte) (*schnorr.Proof, error) {
				return decodeBinary[schnorr.Proof](data)
			},
		},
	}}
}

// Sample draws a key pair for the generator of vk.
func (schnorrBackend) Sample(rawVk []byte, rng io.Reader) ([]byte, []byte, error) {
	var vk schnorr.VerifyingKey
	if err := vk.UnmarshalBinary(rawVk); err != nil {
		return nil, nil, fmt.Errorf("decode vk::%w", err)
	}
	instance, witness, err := schnorr.KeyPair(vk.Params, rng)
	if err != nil {
		return nil, nil, err
	}
	return marshalStatement(instance, witness)
}

func decodeJSONPtr[T any](data []byte) (*T, error) {
	v, err := decodeJSON[T](data)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func marshalStatement(instance, witness any) ([]byte, []byte, error) {
	rawInstance, err := json.MarshalIndent(instance, "", " ")
	if err != nil {
		return nil, nil, err
	}
	rawWitness, err := json.MarshalIndent(witness, "", " ")
	if err != nil {
		return nil, nil, err
	}
	return rawInstance, rawWitness, nil
}

type groth16Backend struct {
	*adapter[*snark.ProvingKey, *snark.VerifyingKey, frontend.Circuit, frontend.Circuit, groth16.Proof]
	sample func(rng io.Reader) ([]byte, []byte, error)
}

func newGroth16(name string, circuit frontend.Circuit, decodeInstance func([]byte) (frontend.Circuit, error),
	decodeWitness func(instance, witness []byte) (frontend.Circuit, error)) *adapter[*snark.ProvingKey, *snark.VerifyingKey, frontend.Circuit, frontend.Circuit, groth16.Proof] {
	return &adapter[*snark.ProvingKey, *snark.VerifyingKey, frontend.Circuit, frontend.Circuit, groth16.Proof]{
		name:   name,
		scheme: snark.Scheme{},
		// gnark draws the setup randomness itself
		setup: func(io.Reader) ([]byte, []byte, error) {
			pk, vk, err := snark.Setup(circuit, ecc.BN254)
			if err != nil {
				return nil, nil, err
			}
			return marshalKeys(pk, vk)
		},
		fingerprint: snark.VKHash,
		codec: codec[*snark.ProvingKey, *snark.VerifyingKey, frontend.Circuit, frontend.Circuit, groth16.Proof]{
			decodePK:       decodeBinary[snark.ProvingKey],
			decodeVK:       decodeBinary[snark.VerifyingKey],
			decodeInstance: decodeInstance,
			decodeWitness:  decodeWitness,
			encodeProof:    snark.MarshalProof,
			decodeProof: func(vk *snark.VerifyingKey, data []byte) (groth16.Proof, error) {
				return snark.UnmarshalProof(vk.Curve, data)
			},
		},
	}
}

func malformed(err error) error {
	return fmt.Errorf("%v::%w", err, proof.ErrMalformed)
}

// Groth16Equal proves "w equals n" with the equality circuit on BN254.
func Groth16Equal() Backend {
	decodeInstance := func(data []byte) (frontend.Circuit, error) {
		u, err := decodeJSON[equality.Instance](data)
		if err != nil {
			return nil, err
		}
		assignment, err := u.PublicAssignment()
		if err != nil {
			return nil, malformed(err)
		}
		return assignment, nil
	}
	decodeWitness := func(instance, witness []byte) (frontend.Circuit, error) {
		u, err := decodeJSON[equality.Instance](instance)
		if err != nil {
			return nil, err
		}
		w, err := decodeJSON[equality.Witness](witness)
		if err != nil {
			return nil, err
		}
		assignment, err := u.Assign(w)
		if err != nil {
			return nil, malformed(err)
		}
		return assignment, nil
	}
	return groth16Backend{
		adapter: newGroth16(Groth16EqualName, &equality.Circuit{}, decodeInstance, decodeWitness),
		sample: func(rng io.Reader) ([]byte, []byte, error) {
			var buf [16]byte
			if _, err := io.ReadFull(rng, buf[:]); err != nil {
				return nil, nil, fmt.Errorf("read randomness::%w", err)
			}
			n := new(big.Int).SetBytes(buf[:]).String()
			return marshalStatement(equality.Instance{N: n}, equality.Witness{W: n})
		},
	}
}

// Groth16Keccak proves knowledge of an n byte keccak256 preimage on BN254.
func Groth16Keccak(n int) (Backend, error) {
	if n <= 0 {
		return nil, fmt.Errorf("preimage length %d must be positive", n)
	}
	circuit := &preimage.Circuit{}
	circuit.Make(n)

	decodeInstance := func(data []byte) (frontend.Circuit, error) {
		u, err := decodeJSON[preimage.Instance](data)
		if err != nil {
			return nil, err
		}
		assignment, err := u.PublicAssignment(n)
		if err != nil {
			return nil, malformed(err)
		}
		return assignment, nil
	}
	decodeWitness := func(instance, witness []byte) (frontend.Circuit, error) {
		u, err := decodeJSON[preimage.Instance](instance)
		if err != nil {
			return nil, err
		}
		w, err := decodeJSON[preimage.Witness](witness)
		if err != nil {
			return nil, err
		}
		assignment, err := u.Assign(w, n)
		if err != nil {
			return nil, malformed(err)
		}
		return assignment, nil
	}
	return groth16Backend{
		adapter: newGroth16(Groth16KeccakName, circuit, decodeInstance, decodeWitness),
		sample: func(rng io.Reader) ([]byte, []byte, error) {
			data := make([]byte, n)
			if _, err := io.ReadFull(rng, data); err != nil {
				return nil, nil, fmt.Errorf("read randomness::%w", err)
			}
			instance, witness := preimage.Statement(data)
			return marshalStatement(instance, witness)
		},
	}, nil
}

func (b groth16Backend) Sample(_ []byte, rng io.Reader) ([]byte, []byte, error) {
	return b.sample(rng)
}

// ExportProof renders a BN254 proof in the JSON layout of snark.JSONProof.
func (b groth16Backend) ExportProof(rawVk, rawProof []byte) ([]byte, error) {
	vk, err := b.codec.decodeVK(rawVk)
	if err != nil {
		return nil, fmt.Errorf("decode vk::%w", err)
	}
	p, err := b.codec.decodeProof(vk, rawProof)
	if err != nil {
		return nil, fmt.Errorf("decode proof::%w", err)
	}
	jsonProof, err := snark.ToJSONProof(p)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(jsonProof, "", " ")
}

// Groth16Registry proves knowledge of an entry of a registry of the given
// depth on BN254. Only the registry root is public.
func Groth16Registry(depth int) (Backend, error) {
	if depth < 1 || depth > registry.MaxDepth {
		return nil, fmt.Errorf("registry depth %d out of range [1, %d]", depth, registry.MaxDepth)
	}
	circuit := &membership.Circuit{}
	circuit.Make(depth)

	decodeInstance := func(data []byte) (frontend.Circuit, error) {
		u, err := decodeJSON[membership.Instance](data)
		if err != nil {
			return nil, err
		}
		assignment, err := u.PublicAssignment(depth)
		if err != nil {
			return nil, malformed(err)
		}
		return assignment, nil
	}
	decodeWitness := func(instance, witness []byte) (frontend.Circuit, error) {
		u, err := decodeJSON[membership.Instance](instance)
		if err != nil {
			return nil, err
		}
		w, err := decodeJSON[membership.Witness](witness)
		if err != nil {
			return nil, err
		}
		assignment, err := u.Assign(w, depth)
		if err != nil {
			return nil, malformed(err)
		}
		return assignment, nil
	}
	return groth16Backend{
		adapter: newGroth16(Groth16RegistryName, circuit, decodeInstance, decodeWitness),
		// a throwaway registry holding a few random fingerprints
		sample: func(rng io.Reader) ([]byte, []byte, error) {
			reg, err := registry.New(depth)
			if err != nil {
				return nil, nil, err
			}
			var last []byte
			for i := 0; i < 3 && i < reg.Capacity(); i++ {
				fingerprint := make([]byte, registry.N_BYTES_HASH)
				if _, err := io.ReadFull(rng, fingerprint); err != nil {
					return nil, nil, fmt.Errorf("read randomness::%w", err)
				}
				if _, err := reg.Register("sample", fingerprint); err != nil {
					return nil, nil, err
				}
				last = fingerprint
			}
			instance, witness, err := membership.Statement(reg, last)
			if err != nil {
				return nil, nil, err
			}
			return marshalStatement(instance, witness)
		},
	}, nil
}
