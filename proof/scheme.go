// Package proof defines the contract shared by every zero-knowledge proof
// scheme in this module: creating a proof from a proving key, an instance, a
// witness and a caller supplied randomness source, and verifying a proof
// against a verifying key and an instance.
//
// The contract carries no arithmetic, serialization or key generation. Those
// belong to the concrete schemes under schemes/.
package proof

import "io"

// Prover creates proofs. The witness must satisfy the statement encoded by the
// instance; whether that is checked is documented by each scheme.
//
// rng is only read for the duration of the call. Concurrent calls must not
// share a randomness source.
type Prover[PK, I, W, P any] interface {
	Create(pk PK, instance I, witness W, rng io.Reader) (P, error)
}

// Verifier checks proofs. Verify must not mutate the proof, must be safe for
// concurrent use and must return the same result for the same inputs.
type Verifier[VK, I, P any] interface {
	Verify(proof P, vk VK, instance I) error
}

// Scheme is a complete proof system over proving key PK, verifying key VK,
// instance I, witness W and proof P.
type Scheme[PK, VK, I, W, P any] interface {
	Prover[PK, I, W, P]
	Verifier[VK, I, P]
}

// Job is one create request of a batch.
type Job[I, W any] struct {
	Instance I
	Witness  W
}

// Statement is one verify request of a batch.
type Statement[I, P any] struct {
	Instance I
	Proof    P
}
