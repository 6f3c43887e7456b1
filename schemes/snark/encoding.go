package snark

import (
	"bytes"
	"fmt"

	"github.com/Electron-Labs/quantum-proof-schemes/proof"
	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/fxamacker/cbor/v2"
)

// Keys travel in a CBOR envelope naming the curve, around gnark's own binary
// encodings. Proofs are gnark's encoding as is.

type wireProvingKey struct {
	Curve uint16 `cbor:"1,keyasint"`
	CS    []byte `cbor:"2,keyasint"`
	PK    []byte `cbor:"3,keyasint"`
}

type wireVerifyingKey struct {
	Curve uint16 `cbor:"1,keyasint"`
	VK    []byte `cbor:"2,keyasint"`
}

func errorf(format string, args ...any) error {
	return fmt.Errorf(format+"::%w", append(args, proof.ErrMalformed)...)
}

func (pk *ProvingKey) MarshalBinary() ([]byte, error) {
	var cs bytes.Buffer
	if _, err := pk.CS.WriteTo(&cs); err != nil {
		return nil, fmt.Errorf("write cs failed::%w", err)
	}
	var pkBuffer bytes.Buffer
	if _, err := pk.PK.WriteTo(&pkBuffer); err != nil {
		return nil, fmt.Errorf("write pk failed::%w", err)
	}
	return cbor.Marshal(wireProvingKey{Curve: uint16(pk.Curve), CS: cs.Bytes(), PK: pkBuffer.Bytes()})
}

func (pk *ProvingKey) UnmarshalBinary(data []byte) error {
	var w wireProvingKey
	if err := cbor.Unmarshal(data, &w); err != nil {
		return errorf("cbor.Unmarshal::%v", err)
	}
	curve, err := curveOf(w.Curve)
	if err != nil {
		return err
	}
	cs := groth16.NewCS(curve)
	if _, err := cs.ReadFrom(bytes.NewReader(w.CS)); err != nil {
		return errorf("read cs::%v", err)
	}
	gpk := groth16.NewProvingKey(curve)
	if _, err := gpk.ReadFrom(bytes.NewReader(w.PK)); err != nil {
		return errorf("read pk::%v", err)
	}
	*pk = ProvingKey{Curve: curve, CS: cs, PK: gpk}
	return nil
}

func (vk *VerifyingKey) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := vk.VK.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write vk failed::%w", err)
	}
	return cbor.Marshal(wireVerifyingKey{Curve: uint16(vk.Curve), VK: buf.Bytes()})
}

func (vk *VerifyingKey) UnmarshalBinary(data []byte) error {
	var w wireVerifyingKey
	if err := cbor.Unmarshal(data, &w); err != nil {
		return errorf("cbor.Unmarshal::%v", err)
	}
	curve, err := curveOf(w.Curve)
	if err != nil {
		return err
	}
	gvk := groth16.NewVerifyingKey(curve)
	if _, err := gvk.ReadFrom(bytes.NewReader(w.VK)); err != nil {
		return errorf("read vk::%v", err)
	}
	*vk = VerifyingKey{Curve: curve, VK: gvk}
	return nil
}

func MarshalProof(p groth16.Proof) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := p.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write proof failed::%w", err)
	}
	return buf.Bytes(), nil
}

func UnmarshalProof(curve ecc.ID, data []byte) (groth16.Proof, error) {
	p := groth16.NewProof(curve)
	if _, err := p.ReadFrom(bytes.NewReader(data)); err != nil {
		return nil, errorf("read proof::%v", err)
	}
	return p, nil
}

// curves gnark has a Groth16 backend for
var curves = []ecc.ID{ecc.BN254, ecc.BLS12_377, ecc.BLS12_381, ecc.BW6_761, ecc.BLS24_315, ecc.BLS24_317, ecc.BW6_633}

func curveOf(id uint16) (ecc.ID, error) {
	curve := ecc.ID(id)
	for _, c := range curves {
		if c == curve {
			return curve, nil
		}
	}
	return ecc.UNKNOWN, errorf("unsupported curve id %d", id)
}
