package setup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Electron-Labs/quantum-proof-schemes/backends"
	"github.com/Electron-Labs/quantum-proof-schemes/cmd"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var sampleCount int

// sampleCmd represents the sample command
var sampleCmd = &cobra.Command{
	Use:   "sample <backend>",
	Short: "Write satisfied instance and witness files for a backend",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSample(cmd.Context(), args[0])
	},
}

func init() {
	setupCmd.AddCommand(sampleCmd)

	sampleCmd.Flags().IntVarP(&sampleCount, "count", "n", 1, "number of statements to write")
}

func runSample(ctx context.Context, name string) error {
	log := zerolog.Ctx(ctx).With().Str("backend", name).Logger()

	b, err := cmd.GetBackend(name)
	if err != nil {
		return err
	}
	sampler, ok := b.(backends.Sampler)
	if !ok {
		return fmt.Errorf("backend %s cannot sample statements", name)
	}
	// schnorr statements depend on the generator in the vk
	vk, err := os.ReadFile(cmd.VkFile(name))
	if err != nil {
		return fmt.Errorf("read vk, run setup first::%w", err)
	}

	dir := filepath.Join(cmd.BackendDir(name), "samples")
	for i := 0; i < sampleCount; i++ {
		instance, witness, err := sampler.Sample(vk, cmd.Randomness(fmt.Sprintf("sample/%s/%d", name, i)))
		if err != nil {
			return fmt.Errorf("sample %d::%w", i, err)
		}
		if err := cmd.WriteFile(filepath.Join(dir, fmt.Sprintf("instance-%d.json", i)), instance); err != nil {
			return err
		}
		if err := cmd.WriteFile(filepath.Join(dir, fmt.Sprintf("witness-%d.json", i)), witness); err != nil {
			return err
		}
	}
	log.Info().Str("dir", dir).Int("count", sampleCount).Msg("statements written")
	return nil
}
