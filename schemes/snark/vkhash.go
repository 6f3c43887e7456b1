package snark

import (
	"github.com/consensys/gnark-crypto/ecc/bn254"
	groth16_bn254 "github.com/consensys/gnark/backend/groth16/bn254"
	"golang.org/x/crypto/sha3"
)

func neg(elm bn254.G2Affine) *bn254.G2Affine {
	negElm := bn254.G2Affine{}
	negElm.Neg(&elm)
	return &negElm
}

func keccak(data []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	return h.Sum(nil)
}

// VKHash is the keccak256 fingerprint of a BN254 verifying key over the values
// a verifier actually uses: e(α, β), the K points, −γ, −δ and the commitment
// key. Keys of other curves are fingerprinted from their binary encoding.
func VKHash(vk *VerifyingKey) ([]byte, error) {
	bnVk, ok := vk.VK.(*groth16_bn254.VerifyingKey)
	if !ok {
		raw, err := vk.MarshalBinary()
		if err != nil {
			return nil, err
		}
		return keccak(raw), nil
	}

	var sha3Input []byte
	e, err := bn254.Pair([]bn254.G1Affine{bnVk.G1.Alpha}, []bn254.G2Affine{bnVk.G2.Beta})
	if err != nil {
		return nil, errorf("bn254.Pair::%v", err)
	}

	// E
	sha3Input = append(sha3Input, e.Marshal()...)

	for i := 0; i < len(bnVk.G1.K); i++ {
		sha3Input = append(sha3Input, bnVk.G1.K[i].Marshal()...)
	}

	// G2
	sha3Input = append(sha3Input, neg(bnVk.G2.Gamma).Marshal()...)
	sha3Input = append(sha3Input, neg(bnVk.G2.Delta).Marshal()...)

	// CommitmentKey
	sha3Input = append(sha3Input, bnVk.CommitmentKey.G.Marshal()...)
	sha3Input = append(sha3Input, bnVk.CommitmentKey.GRootSigmaNeg.Marshal()...)

	return keccak(sha3Input), nil
}
