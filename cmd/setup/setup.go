package setup

import (
	"context"
	"fmt"

	"github.com/Electron-Labs/quantum-proof-schemes/backends"
	"github.com/Electron-Labs/quantum-proof-schemes/cmd"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// setupCmd represents the setup command
var setupCmd = &cobra.Command{
	Use:   "setup <backend>",
	Short: fmt.Sprintf("Generate pk and vk for a backend and register the vk (%v)", backends.Names()),
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetup(cmd.Context(), args[0])
	},
}

func init() {
	cmd.RootCmd.AddCommand(setupCmd)
}

func runSetup(ctx context.Context, name string) error {
	log := zerolog.Ctx(ctx).With().Str("backend", name).Logger()

	b, err := cmd.GetBackend(name)
	if err != nil {
		return err
	}
	// load the registry first so a broken one fails before the slow setup
	reg, err := cmd.LoadOrNewRegistry()
	if err != nil {
		return fmt.Errorf("load registry::%w", err)
	}

	pk, vk, err := b.Setup(ctx, cmd.Randomness("setup/"+name))
	if err != nil {
		return err
	}
	fingerprint, err := b.Fingerprint(vk)
	if err != nil {
		return fmt.Errorf("fingerprint::%w", err)
	}
	entry, err := reg.Register(name, fingerprint)
	if err != nil {
		return fmt.Errorf("register vk::%w", err)
	}

	if err := cmd.WriteFile(cmd.PkFile(name), pk); err != nil {
		return err
	}
	if err := cmd.WriteFile(cmd.VkFile(name), vk); err != nil {
		return err
	}
	if err := reg.Save(cmd.RegistryFile()); err != nil {
		return fmt.Errorf("save registry::%w", err)
	}

	log.Info().
		Str("dir", cmd.BackendDir(name)).
		Uint64("index", entry.Index).
		Hex("fingerprint", fingerprint).
		Hex("root", reg.Root()).
		Msg("keys written and registered")
	return nil
}
