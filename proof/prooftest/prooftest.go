// Package prooftest checks that a proof.Scheme honours the contract:
// completeness, soundness, instance binding and deterministic, repeatable,
// concurrency safe verification.
package prooftest

import (
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/Electron-Labs/quantum-proof-schemes/proof"
	"github.com/stretchr/testify/require"
)

type Case[I, W any] struct {
	Name     string
	Instance I
	Witness  W
}

// Harness describes a scheme under test.
type Harness[PK, VK, I, W, P any] struct {
	Scheme proof.Scheme[PK, VK, I, W, P]
	// Keys generates a matching key pair.
	Keys func(t testing.TB, rng io.Reader) (PK, VK)
	// Valid cases must have witnesses satisfying their instance.
	Valid []Case[I, W]
	// Invalid cases must have witnesses that do not.
	Invalid []Case[I, W]
	// Equal reports whether two instances are the same statement. Instance
	// binding is only checked for pairs of valid cases that are not Equal.
	Equal func(a, b I) bool
	// Seeds are the randomness draws used for completeness. Defaults to 3.
	Seeds int
}

func (h Harness[PK, VK, I, W, P]) seeds() int {
	if h.Seeds <= 0 {
		return 3
	}
	return h.Seeds
}

// Run executes every conformance check as a subtest of t.
func (h Harness[PK, VK, I, W, P]) Run(t *testing.T) {
	require.NotNil(t, h.Scheme, "harness needs a scheme")
	require.NotNil(t, h.Keys, "harness needs a key generator")
	require.NotEmpty(t, h.Valid, "harness needs at least one valid case")

	pk, vk := h.Keys(t, proof.NewSeededReader([]byte("prooftest keys")))

	t.Run("Completeness", func(t *testing.T) { h.completeness(t, pk, vk) })
	t.Run("Soundness", func(t *testing.T) { h.soundness(t, pk, vk) })
	t.Run("InstanceBinding", func(t *testing.T) { h.instanceBinding(t, pk, vk) })
	t.Run("Determinism", func(t *testing.T) { h.determinism(t, pk, vk) })
	t.Run("RepeatableVerification", func(t *testing.T) { h.repeatable(t, pk, vk) })
	t.Run("ConcurrentVerification", func(t *testing.T) { h.concurrent(t, pk, vk) })
}

func (h Harness[PK, VK, I, W, P]) create(t testing.TB, pk PK, c Case[I, W], seed int) P {
	rng := proof.NewSeededReader([]byte(fmt.Sprintf("%s/%d", c.Name, seed)))
	p, err := h.Scheme.Create(pk, c.Instance, c.Witness, rng)
	require.NoError(t, err, "create %s", c.Name)
	return p
}

func (h Harness[PK, VK, I, W, P]) completeness(t *testing.T, pk PK, vk VK) {
	for _, c := range h.Valid {
		for seed := 0; seed < h.seeds(); seed++ {
			p := h.create(t, pk, c, seed)
			require.NoError(t, h.Scheme.Verify(p, vk, c.Instance), "verify %s seed %d", c.Name, seed)
		}
	}
}

func (h Harness[PK, VK, I, W, P]) soundness(t *testing.T, pk PK, vk VK) {
	if len(h.Invalid) == 0 {
		t.Skip("no invalid cases")
	}
	for _, c := range h.Invalid {
		rng := proof.NewSeededReader([]byte("soundness/" + c.Name))
		p, err := h.Scheme.Create(pk, c.Instance, c.Witness, rng)
		if err != nil {
			continue
		}
		require.Error(t, h.Scheme.Verify(p, vk, c.Instance), "proof for %s must be rejected", c.Name)
	}
}

func (h Harness[PK, VK, I, W, P]) instanceBinding(t *testing.T, pk PK, vk VK) {
	if h.Equal == nil {
		t.Skip("no instance equality")
	}
	checked := 0
	for i, a := range h.Valid {
		p := h.create(t, pk, a, 0)
		for j, b := range h.Valid {
			if i == j || h.Equal(a.Instance, b.Instance) {
				continue
			}
			require.Error(t, h.Scheme.Verify(p, vk, b.Instance), "proof for %s verified against %s", a.Name, b.Name)
			checked++
		}
	}
	if checked == 0 {
		t.Skip("need two distinct valid instances")
	}
}

func (h Harness[PK, VK, I, W, P]) determinism(t *testing.T, pk PK, vk VK) {
	c := h.Valid[0]
	p := h.create(t, pk, c, 0)
	require.Equal(t, h.Scheme.Verify(p, vk, c.Instance), h.Scheme.Verify(p, vk, c.Instance))

	if len(h.Valid) > 1 && h.Equal != nil && !h.Equal(c.Instance, h.Valid[1].Instance) {
		first := h.Scheme.Verify(p, vk, h.Valid[1].Instance)
		second := h.Scheme.Verify(p, vk, h.Valid[1].Instance)
		require.Error(t, first)
		require.Equal(t, first.Error(), second.Error())
	}
}

func (h Harness[PK, VK, I, W, P]) repeatable(t *testing.T, pk PK, vk VK) {
	c := h.Valid[0]
	p := h.create(t, pk, c, 0)
	for i := 0; i < 16; i++ {
		require.NoError(t, h.Scheme.Verify(p, vk, c.Instance), "verification %d", i)
	}
}

func (h Harness[PK, VK, I, W, P]) concurrent(t *testing.T, pk PK, vk VK) {
	c := h.Valid[0]
	p := h.create(t, pk, c, 0)

	const workers = 8
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = h.Scheme.Verify(p, vk, c.Instance)
		}(i)
	}
	wg.Wait()
	for i, err := range errs {
		require.NoError(t, err, "worker %d", i)
	}
}
