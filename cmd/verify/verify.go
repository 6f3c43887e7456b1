package verify

import (
	"context"
	"fmt"
	"os"

	"github.com/Electron-Labs/quantum-proof-schemes/backends"
	"github.com/Electron-Labs/quantum-proof-schemes/cmd"
	"github.com/Electron-Labs/quantum-proof-schemes/proof"
	"github.com/Electron-Labs/quantum-proof-schemes/registry"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var instanceFiles []string
var proofFiles []string
var vkFile string

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <backend>",
	Short: "Check that the vk is registered and verify proofs against it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVerify(cmd.Context(), args[0])
	},
}

func init() {
	cmd.RootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringArrayVar(&instanceFiles, "instance", nil, "instance JSON file, repeatable")
	verifyCmd.Flags().StringArrayVar(&proofFiles, "proof", nil, "proof file, one per --instance")
	verifyCmd.Flags().StringVar(&vkFile, "vk", "", "verifying key (default <out>/<backend>/vk.bin)")
	verifyCmd.MarkFlagRequired("instance")
	verifyCmd.MarkFlagRequired("proof")
}

func readItems() ([]backends.Item, error) {
	if len(instanceFiles) != len(proofFiles) {
		return nil, fmt.Errorf("unequal number of instances(%d) and proofs(%d)", len(instanceFiles), len(proofFiles))
	}
	items := make([]backends.Item, len(instanceFiles))
	for i := range instanceFiles {
		instance, err := os.ReadFile(instanceFiles[i])
		if err != nil {
			return nil, err
		}
		p, err := os.ReadFile(proofFiles[i])
		if err != nil {
			return nil, err
		}
		items[i] = backends.Item{Instance: instance, Proof: p}
	}
	return items, nil
}

// checkRegistered proves and checks inclusion of the vk fingerprint under the
// registry root.
func checkRegistered(reg *registry.Registry, fingerprint []byte) (registry.Entry, error) {
	entry, inclusion, err := reg.Prove(fingerprint)
	if err != nil {
		return registry.Entry{}, fmt.Errorf("vk %x::%w", fingerprint, err)
	}
	ok, err := registry.Verify(reg.Root(), entry, inclusion)
	if err != nil {
		return registry.Entry{}, fmt.Errorf("registry.Verify::%w", err)
	}
	if !ok {
		return registry.Entry{}, fmt.Errorf("inclusion proof for entry %d does not match root %x", entry.Index, []byte(reg.Root()))
	}
	return entry, nil
}

func runVerify(ctx context.Context, name string) error {
	log := zerolog.Ctx(ctx).With().Str("backend", name).Logger()

	b, err := cmd.GetBackend(name)
	if err != nil {
		return err
	}
	path := vkFile
	if path == "" {
		path = cmd.VkFile(name)
	}
	vk, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	fingerprint, err := b.Fingerprint(vk)
	if err != nil {
		return fmt.Errorf("fingerprint::%w", err)
	}
	reg, err := cmd.LoadRegistry()
	if err != nil {
		return fmt.Errorf("load registry::%w", err)
	}
	entry, err := checkRegistered(reg, fingerprint)
	if err != nil {
		return err
	}
	if entry.Name != name {
		log.Warn().Str("registered_as", entry.Name).Msg("vk registered under another backend name")
	}
	log.Debug().Uint64("index", entry.Index).Hex("root", reg.Root()).Msg("vk is registered")

	items, err := readItems()
	if err != nil {
		return err
	}
	if err := b.VerifyBatch(ctx, vk, items); err != nil {
		if proof.Rejected(err) {
			log.Error().Err(err).Msg("proof rejected")
		}
		return err
	}
	log.Info().Int("proofs", len(items)).Msg("all proofs verified")
	return nil
}
