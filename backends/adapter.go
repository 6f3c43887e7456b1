package backends

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/Electron-Labs/quantum-proof-schemes/proof"
	"github.com/rs/zerolog"
)

// codec converts between a scheme's types and their encodings.
type codec[PK, VK, I, W, P any] struct {
	decodePK       func([]byte) (PK, error)
	decodeVK       func([]byte) (VK, error)
	decodeInstance func([]byte) (I, error)
	// witnesses may need the instance to be decoded, circuit assignments do
	decodeWitness func(instance, witness []byte) (W, error)
	encodeProof   func(P) ([]byte, error)
	decodeProof   func(VK, []byte) (P, error)
}

// adapter implements Backend for any proof.Scheme.
type adapter[PK, VK, I, W, P any] struct {
	name        string
	scheme      proof.Scheme[PK, VK, I, W, P]
	setup       func(rng io.Reader) (pk, vk []byte, err error)
	fingerprint func(VK) ([]byte, error)
	codec       codec[PK, VK, I, W, P]
}

func (a *adapter[PK, VK, I, W, P]) Name() string {
	return a.name
}

func (a *adapter[PK, VK, I, W, P]) Setup(ctx context.Context, rng io.Reader) ([]byte, []byte, error) {
	start := time.Now()
	pk, vk, err := a.setup(rng)
	if err != nil {
		return nil, nil, fmt.Errorf("%s setup::%w", a.name, err)
	}
	zerolog.Ctx(ctx).Info().Str("backend", a.name).Int("pk_bytes", len(pk)).Int("vk_bytes", len(vk)).
		Dur("took", time.Since(start)).Msg("setup done")
	return pk, vk, nil
}

func (a *adapter[PK, VK, I, W, P]) Fingerprint(rawVk []byte) ([]byte, error) {
	vk, err := a.codec.decodeVK(rawVk)
	if err != nil {
		return nil, fmt.Errorf("decode vk::%w", err)
	}
	return a.fingerprint(vk)
}

func (a *adapter[PK, VK, I, W, P]) ProveBatch(ctx context.Context, rawPk []byte, jobs []Job, rngFor func(int) io.Reader) ([][]byte, error) {
	log := zerolog.Ctx(ctx).With().Str("backend", a.name).Logger()

	pk, err := a.codec.decodePK(rawPk)
	if err != nil {
		return nil, fmt.Errorf("decode pk::%w", err)
	}
	decoded := make([]proof.Job[I, W], len(jobs))
	for i, job := range jobs {
		instance, err := a.codec.decodeInstance(job.Instance)
		if err != nil {
			return nil, &proof.BatchError{Index: i, Err: fmt.Errorf("decode instance::%w", err)}
		}
		witness, err := a.codec.decodeWitness(job.Instance, job.Witness)
		if err != nil {
			return nil, &proof.BatchError{Index: i, Err: fmt.Errorf("decode witness::%w", err)}
		}
		decoded[i] = proof.Job[I, W]{Instance: instance, Witness: witness}
	}

	start := time.Now()
	proofs, err := proof.CreateAll[PK, I, W, P](ctx, a.scheme, pk, decoded, rngFor)
	if err != nil {
		return nil, err
	}
	log.Info().Int("proofs", len(proofs)).Dur("took", time.Since(start)).Msg("proofs created")

	out := make([][]byte, len(proofs))
	for i, p := range proofs {
		if out[i], err = a.codec.encodeProof(p); err != nil {
			return nil, &proof.BatchError{Index: i, Err: fmt.Errorf("encode proof::%w", err)}
		}
	}
	return out, nil
}

func (a *adapter[PK, VK, I, W, P]) VerifyBatch(ctx context.Context, rawVk []byte, items []Item) error {
	log := zerolog.Ctx(ctx).With().Str("backend", a.name).Logger()

	vk, err := a.codec.decodeVK(rawVk)
	if err != nil {
		return fmt.Errorf("decode vk::%w", err)
	}
	stmts := make([]proof.Statement[I, P], len(items))
	for i, item := range items {
		instance, err := a.codec.decodeInstance(item.Instance)
		if err != nil {
			return &proof.BatchError{Index: i, Err: fmt.Errorf("decode instance::%w", err)}
		}
		p, err := a.codec.decodeProof(vk, item.Proof)
		if err != nil {
			return &proof.BatchError{Index: i, Err: fmt.Errorf("decode proof::%w", err)}
		}
		stmts[i] = proof.Statement[I, P]{Instance: instance, Proof: p}
	}

	start := time.Now()
	if err := proof.VerifyAll[VK, I, P](ctx, a.scheme, vk, stmts); err != nil {
		return err
	}
	log.Info().Int("proofs", len(stmts)).Dur("took", time.Since(start)).Msg("proofs verified")
	return nil
}
