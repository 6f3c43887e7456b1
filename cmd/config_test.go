package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Electron-Labs/quantum-proof-schemes/registry"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFlagsTakePrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
out: from-file
log_level: debug
seed: file-seed
registry_depth: 4
backends:
  preimage_length: 64
`), 0644))

	c := &cobra.Command{Use: "test"}
	c.Flags().AddFlagSet(RootCmd.PersistentFlags())
	require.NoError(t, c.Flags().Parse([]string{"--config", path, "--log-level", "warn"}))
	t.Cleanup(func() {
		OutputDir, LogLevel, Seed, ConfigFile, RegistryDepth = "artifacts", "info", "", "", 10
		Backends = DefaultBackends()
	})

	require.NoError(t, loadConfig(c))
	assert.Equal(t, "from-file", OutputDir)
	assert.Equal(t, "warn", LogLevel)
	assert.Equal(t, "file-seed", Seed)
	assert.Equal(t, 4, RegistryDepth)
	assert.Equal(t, 64, Backends.PreimageLength)
}

func TestReadConfigDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("out: x\n"), 0644))
	cfg, err := readConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.Backends.PreimageLength)

	require.NoError(t, os.WriteFile(path, []byte("out: [\n"), 0644))
	_, err = readConfig(path)
	assert.Error(t, err)
}

func TestRandomness(t *testing.T) {
	t.Cleanup(func() { Seed = "" })
	Seed = "s"
	a, b := make([]byte, 16), make([]byte, 16)
	_, err := Randomness("x").Read(a)
	require.NoError(t, err)
	_, err = Randomness("x").Read(b)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	_, err = Randomness("y").Read(b)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestBackendConfigFollowsRegistryDepth(t *testing.T) {
	out, depth := OutputDir, RegistryDepth
	t.Cleanup(func() { OutputDir, RegistryDepth = out, depth })
	OutputDir = t.TempDir()
	RegistryDepth = 10

	cfg, err := BackendConfig()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.RegistryDepth)

	reg, err := registry.New(3)
	require.NoError(t, err)
	require.NoError(t, reg.Save(RegistryFile()))

	cfg, err = BackendConfig()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.RegistryDepth)

	require.NoError(t, os.WriteFile(RegistryFile(), []byte("{"), 0644))
	_, err = BackendConfig()
	assert.Error(t, err)
}
