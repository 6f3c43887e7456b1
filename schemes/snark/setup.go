package snark

import (
	"fmt"
	"time"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/consensys/gnark/logger"
)

// Setup compiles circuit to R1CS over curve and runs the Groth16 setup.
//
// The setup is single party: whoever runs it learns the toxic waste and can
// forge proofs. Keys meant for production must come from an MPC ceremony.
func Setup(circuit frontend.Circuit, curve ecc.ID) (*ProvingKey, *VerifyingKey, error) {
	log := logger.Logger().With().Str("scheme", Name).Str("curve", curve.String()).Logger()

	start := time.Now()
	ccs, err := frontend.Compile(curve.ScalarField(), r1cs.NewBuilder, circuit)
	if err != nil {
		return nil, nil, fmt.Errorf("frontend.Compile::%w", err)
	}
	log.Debug().Int("constraints", ccs.GetNbConstraints()).Dur("took", time.Since(start)).Msg("compiled circuit")

	start = time.Now()
	pk, vk, err := groth16.Setup(ccs)
	if err != nil {
		return nil, nil, fmt.Errorf("groth16.Setup::%w", err)
	}
	log.Debug().Dur("took", time.Since(start)).Msg("groth16 setup done")

	return &ProvingKey{Curve: curve, CS: ccs, PK: pk}, &VerifyingKey{Curve: curve, VK: vk}, nil
}
