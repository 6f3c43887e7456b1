package proof

import (
	"io"

	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/sha3"
)

type seededReader struct {
	stream *chacha20.Cipher
}

// NewSeededReader returns a deterministic randomness source: the ChaCha20
// keystream under key keccak256(seed). It is meant for reproducible tests and
// must never back a production prover.
func NewSeededReader(seed []byte) io.Reader {
	h := sha3.NewLegacyKeccak256()
	h.Write(seed)
	key := h.Sum(nil)

	stream, err := chacha20.NewUnauthenticatedCipher(key, make([]byte, chacha20.NonceSize))
	if err != nil {
		// key and nonce sizes are fixed above
		panic(err)
	}
	return &seededReader{stream: stream}
}

func (r *seededReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	r.stream.XORKeyStream(p, p)
	return len(p), nil
}
