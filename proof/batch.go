package proof

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// CreateAndVerify creates a proof and checks it with vk before returning it.
func CreateAndVerify[PK, VK, I, W, P any](s Scheme[PK, VK, I, W, P], pk PK, vk VK, instance I, witness W, rng io.Reader) (P, error) {
	p, err := s.Create(pk, instance, witness, rng)
	if err != nil {
		var zero P
		return zero, err
	}
	if err := s.Verify(p, vk, instance); err != nil {
		var zero P
		return zero, fmt.Errorf("self verification failed::%w", err)
	}
	return p, nil
}

// CreateAll proves every job concurrently. rngFor(i) must return a randomness
// source that is not shared with any other job. The first failure cancels jobs
// that have not started yet and is returned as a *BatchError.
func CreateAll[PK, I, W, P any](ctx context.Context, prover Prover[PK, I, W, P], pk PK, jobs []Job[I, W], rngFor func(int) io.Reader) ([]P, error) {
	proofs := make([]P, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i := range jobs {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return &BatchError{Index: i, Err: err}
			}
			p, err := prover.Create(pk, jobs[i].Instance, jobs[i].Witness, rngFor(i))
			if err != nil {
				return &BatchError{Index: i, Err: err}
			}
			proofs[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return proofs, nil
}

// VerifyAll verifies every statement concurrently and returns nil only if all
// of them are accepted. Otherwise the *BatchError names the lowest rejected
// index, whatever order the verifications finish in.
func VerifyAll[VK, I, P any](ctx context.Context, verifier Verifier[VK, I, P], vk VK, stmts []Statement[I, P]) error {
	errs := make([]error, len(stmts))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i := range stmts {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			errs[i] = verifier.Verify(stmts[i].Proof, vk, stmts[i].Instance)
			return nil
		})
	}
	g.Wait()

	for i, err := range errs {
		if err != nil {
			return &BatchError{Index: i, Err: err}
		}
	}
	return nil
}
