package mock

import (
	"fmt"

	"github.com/Electron-Labs/quantum-proof-schemes/proof"
)

func (p *Proof) MarshalBinary() ([]byte, error) {
	out := make([]byte, 0, ProofSize)
	out = append(out, p.Nonce[:]...)
	return append(out, p.Tag[:]...), nil
}

func (p *Proof) UnmarshalBinary(data []byte) error {
	if len(data) != ProofSize {
		return fmt.Errorf("proof length %d, want %d::%w", len(data), ProofSize, proof.ErrMalformed)
	}
	copy(p.Nonce[:], data[:NonceSize])
	copy(p.Tag[:], data[NonceSize:])
	return nil
}

func (pk *ProvingKey) MarshalBinary() ([]byte, error) {
	return append([]byte(nil), pk.Key[:]...), nil
}

func (pk *ProvingKey) UnmarshalBinary(data []byte) error {
	return unmarshalKey(&pk.Key, data)
}

func (vk *VerifyingKey) MarshalBinary() ([]byte, error) {
	return append([]byte(nil), vk.Key[:]...), nil
}

func (vk *VerifyingKey) UnmarshalBinary(data []byte) error {
	return unmarshalKey(&vk.Key, data)
}

func unmarshalKey(key *[KeySize]byte, data []byte) error {
	if len(data) != KeySize {
		return fmt.Errorf("key length %d, want %d::%w", len(data), KeySize, proof.ErrMalformed)
	}
	copy(key[:], data)
	return nil
}
