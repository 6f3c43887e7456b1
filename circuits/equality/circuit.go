// Package equality is the circuit for the statement "w equals n": N is public,
// W is the prover's secret.
package equality

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark/frontend"
)

type Circuit struct {
	N frontend.Variable `gnark:",public"`
	W frontend.Variable
}

func (circuit *Circuit) Define(api frontend.API) error {
	api.AssertIsEqual(circuit.W, circuit.N)
	return nil
}

// Instance is the native public input, a decimal integer.
type Instance struct {
	N string `json:"n"`
}

// Witness is the native secret input, a decimal integer.
type Witness struct {
	W string `json:"w"`
}

func parse(name, value string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(value, 10)
	if !ok {
		return nil, fmt.Errorf("%s: %q is not a decimal integer", name, value)
	}
	return v, nil
}

// PublicAssignment returns an assignment carrying only the public input.
func (u Instance) PublicAssignment() (*Circuit, error) {
	n, err := parse("n", u.N)
	if err != nil {
		return nil, err
	}
	return &Circuit{N: n, W: 0}, nil
}

// Assign returns the full assignment for instance u and witness w.
func (u Instance) Assign(w Witness) (*Circuit, error) {
	n, err := parse("n", u.N)
	if err != nil {
		return nil, err
	}
	wv, err := parse("w", w.W)
	if err != nil {
		return nil, err
	}
	return &Circuit{N: n, W: wv}, nil
}
