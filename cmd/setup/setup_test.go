package setup

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/Electron-Labs/quantum-proof-schemes/backends"
	"github.com/Electron-Labs/quantum-proof-schemes/circuits/membership"
	"github.com/Electron-Labs/quantum-proof-schemes/cmd"
	"github.com/Electron-Labs/quantum-proof-schemes/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useOutputDir(t *testing.T) {
	out, seed, depth := cmd.OutputDir, cmd.Seed, cmd.RegistryDepth
	t.Cleanup(func() { cmd.OutputDir, cmd.Seed, cmd.RegistryDepth = out, seed, depth })
	cmd.OutputDir = t.TempDir()
	cmd.Seed = "setup test"
	cmd.RegistryDepth = 3
}

func TestSetupRegistersKeys(t *testing.T) {
	useOutputDir(t)
	ctx := context.Background()

	require.NoError(t, runSetup(ctx, backends.MockName))
	require.NoError(t, runSetup(ctx, backends.SchnorrName))

	reg, err := cmd.LoadRegistry()
	require.NoError(t, err)
	require.Len(t, reg.Entries, 2)
	assert.Equal(t, 3, reg.Depth)

	entry, ok := reg.Lookup(backends.SchnorrName)
	require.True(t, ok)
	assert.Equal(t, uint64(1), entry.Index)

	// same seed, same keys: the fingerprint is already registered
	err = runSetup(ctx, backends.MockName)
	assert.ErrorIs(t, err, registry.ErrDuplicate)

	assert.Error(t, runSetup(ctx, "plonk"))
}

func TestSampleAndMembership(t *testing.T) {
	useOutputDir(t)
	ctx := context.Background()

	assert.Error(t, runSample(ctx, backends.SchnorrName))

	require.NoError(t, runSetup(ctx, backends.SchnorrName))
	sampleCount = 2
	require.NoError(t, runSample(ctx, backends.SchnorrName))
	for _, file := range []string{"instance-0.json", "witness-0.json", "instance-1.json", "witness-1.json"} {
		_, err := os.Stat(filepath.Join(cmd.BackendDir(backends.SchnorrName), "samples", file))
		require.NoError(t, err)
	}

	require.NoError(t, runMembership(ctx, backends.SchnorrName))
	raw, err := os.ReadFile(filepath.Join(cmd.BackendDir(backends.Groth16RegistryName), "samples", "witness-schnorr.json"))
	require.NoError(t, err)
	var witness membership.Witness
	require.NoError(t, json.Unmarshal(raw, &witness))
	assert.Equal(t, uint64(0), witness.Index)
	assert.Len(t, witness.Siblings, 3)
}
