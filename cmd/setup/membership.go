package setup

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Electron-Labs/quantum-proof-schemes/backends"
	"github.com/Electron-Labs/quantum-proof-schemes/circuits/membership"
	"github.com/Electron-Labs/quantum-proof-schemes/cmd"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// membershipCmd represents the membership command
var membershipCmd = &cobra.Command{
	Use:   "membership <backend>",
	Short: fmt.Sprintf("Write a %s statement that the vk of a backend is registered", backends.Groth16RegistryName),
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMembership(cmd.Context(), args[0])
	},
}

func init() {
	setupCmd.AddCommand(membershipCmd)
}

func runMembership(ctx context.Context, name string) error {
	log := zerolog.Ctx(ctx).With().Str("backend", name).Logger()

	b, err := cmd.GetBackend(name)
	if err != nil {
		return err
	}
	vk, err := os.ReadFile(cmd.VkFile(name))
	if err != nil {
		return fmt.Errorf("read vk, run setup first::%w", err)
	}
	fingerprint, err := b.Fingerprint(vk)
	if err != nil {
		return fmt.Errorf("fingerprint::%w", err)
	}
	reg, err := cmd.LoadRegistry()
	if err != nil {
		return fmt.Errorf("load registry::%w", err)
	}
	instance, witness, err := membership.Statement(reg, fingerprint)
	if err != nil {
		return fmt.Errorf("vk %x::%w", fingerprint, err)
	}

	dir := filepath.Join(cmd.BackendDir(backends.Groth16RegistryName), "samples")
	for file, v := range map[string]any{
		"instance-" + name + ".json": instance,
		"witness-" + name + ".json":  witness,
	} {
		bytes, err := json.MarshalIndent(v, "", " ")
		if err != nil {
			return err
		}
		if err := cmd.WriteFile(filepath.Join(dir, file), bytes); err != nil {
			return err
		}
	}
	log.Info().Str("dir", dir).Uint64("index", witness.Index).Hex("root", instance.Root).Msg("membership statement written")
	return nil
}
