package snark

import (
	"encoding/json"
	"fmt"

	"github.com/consensys/gnark/backend/groth16"
	groth16_bn254 "github.com/consensys/gnark/backend/groth16/bn254"
)

// JSON rendering of BN254 proofs with decimal coordinates, for tools that do
// not speak gnark's binary encoding.

type G1 struct {
	X string
	Y string
}

type E2 struct {
	A0 string
	A1 string
}

type G2 struct {
	X E2
	Y E2
}

type JSONProof struct {
	Ar            G1
	Krs           G1
	Bs            G2
	Commitments   []G1
	CommitmentPok G1
}

func ToJSONProof(p groth16.Proof) (JSONProof, error) {
	var out JSONProof
	bnProof, ok := p.(*groth16_bn254.Proof)
	if !ok {
		return out, errorf("proof is %T, not a BN254 proof", p)
	}

	out.Ar = G1{X: bnProof.Ar.X.String(), Y: bnProof.Ar.Y.String()}
	out.Krs = G1{X: bnProof.Krs.X.String(), Y: bnProof.Krs.Y.String()}

	out.Bs.X = E2{A0: bnProof.Bs.X.A0.String(), A1: bnProof.Bs.X.A1.String()}
	out.Bs.Y = E2{A0: bnProof.Bs.Y.A0.String(), A1: bnProof.Bs.Y.A1.String()}

	out.Commitments = make([]G1, len(bnProof.Commitments))
	for i := range bnProof.Commitments {
		out.Commitments[i] = G1{X: bnProof.Commitments[i].X.String(), Y: bnProof.Commitments[i].Y.String()}
	}

	out.CommitmentPok = G1{X: bnProof.CommitmentPok.X.String(), Y: bnProof.CommitmentPok.Y.String()}
	return out, nil
}

// Groth16Proof converts back through gnark's JSON decoding of field elements.
func (p JSONProof) Groth16Proof() (groth16.Proof, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal::%w", err)
	}
	bnProof := new(groth16_bn254.Proof)
	if err := json.Unmarshal(raw, bnProof); err != nil {
		return nil, errorf("json.Unmarshal(raw, &groth16Proof)::%v", err)
	}
	return bnProof, nil
}
