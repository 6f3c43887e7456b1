package backends

import (
	"encoding"
	"encoding/json"
	"fmt"

	"github.com/Electron-Labs/quantum-proof-schemes/proof"
	"golang.org/x/crypto/sha3"
)

// binaryPtr is a pointer to T that can decode itself.
type binaryPtr[T any] interface {
	*T
	encoding.BinaryUnmarshaler
}

func decodeBinary[T any, PT binaryPtr[T]](data []byte) (PT, error) {
	v := PT(new(T))
	if err := v.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return v, nil
}

func decodeJSON[T any](data []byte) (T, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("json.Unmarshal::%v::%w", err, proof.ErrMalformed)
	}
	return v, nil
}

func encodeBinary[T encoding.BinaryMarshaler](v T) ([]byte, error) {
	return v.MarshalBinary()
}

func keccak(data []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	return h.Sum(nil)
}

// keccakOf fingerprints a key by its encoding.
func keccakOf[T encoding.BinaryMarshaler](v T) ([]byte, error) {
	raw, err := v.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return keccak(raw), nil
}

func marshalKeys(pk, vk encoding.BinaryMarshaler) ([]byte, []byte, error) {
	rawPk, err := pk.MarshalBinary()
	if err != nil {
		return nil, nil, fmt.Errorf("encode pk::%w", err)
	}
	rawVk, err := vk.MarshalBinary()
	if err != nil {
		return nil, nil, fmt.Errorf("encode vk::%w", err)
	}
	return rawPk, rawVk, nil
}
