package schnorr

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/Electron-Labs/quantum-proof-schemes/proof"
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/fxamacker/cbor/v2"
)

// Points are stored compressed, scalars as 32 byte big-endian integers.

type wireKey struct {
	G []byte `cbor:"1,keyasint"`
}

type wireProof struct {
	R []byte `cbor:"1,keyasint"`
	S []byte `cbor:"2,keyasint"`
}

func (params *Params) MarshalBinary() ([]byte, error) {
	g := params.G.Bytes()
	return cbor.Marshal(wireKey{G: g[:]})
}

func (params *Params) UnmarshalBinary(data []byte) error {
	var w wireKey
	if err := cbor.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("cbor.Unmarshal::%v::%w", err, proof.ErrMalformed)
	}
	if err := decodePoint(&params.G, w.G); err != nil {
		return err
	}
	return checkParams(params)
}

func (p *Proof) MarshalBinary() ([]byte, error) {
	r := p.R.Bytes()
	s := p.S.Bytes()
	return cbor.Marshal(wireProof{R: r[:], S: s[:]})
}

func (p *Proof) UnmarshalBinary(data []byte) error {
	var w wireProof
	if err := cbor.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("cbor.Unmarshal::%v::%w", err, proof.ErrMalformed)
	}
	if err := decodePoint(&p.R, w.R); err != nil {
		return err
	}
	return decodeScalar(&p.S, w.S)
}

// MarshalText renders Y as hex of its compressed encoding.
func (inst Instance) MarshalText() ([]byte, error) {
	y := inst.Y.Bytes()
	return []byte(hex.EncodeToString(y[:])), nil
}

func (inst *Instance) UnmarshalText(text []byte) error {
	raw, err := hex.DecodeString(strings.TrimPrefix(string(text), "0x"))
	if err != nil {
		return fmt.Errorf("hex::%v::%w", err, proof.ErrMalformed)
	}
	return decodePoint(&inst.Y, raw)
}

// MarshalText renders x in decimal.
func (w Witness) MarshalText() ([]byte, error) {
	return []byte(w.X.String()), nil
}

func (w *Witness) UnmarshalText(text []byte) error {
	x, ok := new(big.Int).SetString(string(text), 10)
	if !ok || x.Sign() < 0 || x.Cmp(fr.Modulus()) >= 0 {
		return fmt.Errorf("witness %q is not a canonical scalar::%w", text, proof.ErrMalformed)
	}
	w.X.SetBigInt(x)
	return nil
}

func decodePoint(p *bn254.G1Affine, raw []byte) error {
	if len(raw) != bn254.SizeOfG1AffineCompressed {
		return fmt.Errorf("point length %d::%w", len(raw), proof.ErrMalformed)
	}
	if _, err := p.SetBytes(raw); err != nil {
		return fmt.Errorf("SetBytes::%v::%w", err, proof.ErrMalformed)
	}
	return nil
}

func decodeScalar(s *fr.Element, raw []byte) error {
	if len(raw) != fr.Bytes {
		return fmt.Errorf("scalar length %d::%w", len(raw), proof.ErrMalformed)
	}
	v := new(big.Int).SetBytes(raw)
	if v.Cmp(fr.Modulus()) >= 0 {
		return fmt.Errorf("scalar not reduced::%w", proof.ErrMalformed)
	}
	s.SetBigInt(v)
	return nil
}
