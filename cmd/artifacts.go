package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Electron-Labs/quantum-proof-schemes/backends"
	"github.com/Electron-Labs/quantum-proof-schemes/registry"
)

// Layout of the output directory:
//
//	<out>/registry.json
//	<out>/<backend>/pk.bin
//	<out>/<backend>/vk.bin
//	<out>/<backend>/samples/
//	<out>/<backend>/proofs/

func BackendDir(name string) string {
	return filepath.Join(OutputDir, name)
}

func PkFile(name string) string {
	return filepath.Join(BackendDir(name), "pk.bin")
}

func VkFile(name string) string {
	return filepath.Join(BackendDir(name), "vk.bin")
}

func RegistryFile() string {
	return filepath.Join(OutputDir, "registry.json")
}

// BackendConfig is the loaded backend config with the registry depth of the
// existing registry, or --registry-depth when none was created yet.
func BackendConfig() (backends.Config, error) {
	cfg := Backends
	cfg.RegistryDepth = RegistryDepth
	reg, err := LoadRegistry()
	switch {
	case err == nil:
		cfg.RegistryDepth = reg.Depth
	case !errors.Is(err, os.ErrNotExist):
		return cfg, fmt.Errorf("load registry::%w", err)
	}
	return cfg, nil
}

func GetBackend(name string) (backends.Backend, error) {
	cfg, err := BackendConfig()
	if err != nil {
		return nil, err
	}
	return backends.Get(name, cfg)
}

func LoadRegistry() (*registry.Registry, error) {
	return registry.Load(RegistryFile())
}

func LoadOrNewRegistry() (*registry.Registry, error) {
	return registry.LoadOrNew(RegistryFile(), RegistryDepth)
}

func WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
