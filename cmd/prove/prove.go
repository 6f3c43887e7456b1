package prove

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Electron-Labs/quantum-proof-schemes/backends"
	"github.com/Electron-Labs/quantum-proof-schemes/cmd"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var instanceFiles []string
var witnessFiles []string
var proofsDir string
var exportJSON bool

// proveCmd represents the prove command
var proveCmd = &cobra.Command{
	Use:   "prove <backend>",
	Short: "Generate proofs for instance/witness pairs, concurrently",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProve(cmd.Context(), args[0])
	},
}

func init() {
	cmd.RootCmd.AddCommand(proveCmd)

	proveCmd.Flags().StringArrayVar(&instanceFiles, "instance", nil, "instance JSON file, repeatable")
	proveCmd.Flags().StringArrayVar(&witnessFiles, "witness", nil, "witness JSON file, one per --instance")
	proveCmd.Flags().StringVar(&proofsDir, "proofs-dir", "", "where to write proofs (default <out>/<backend>/proofs)")
	proveCmd.Flags().BoolVar(&exportJSON, "json", false, "also write a JSON rendering of each proof when the backend has one")
	proveCmd.MarkFlagRequired("instance")
	proveCmd.MarkFlagRequired("witness")
}

func readJobs() ([]backends.Job, error) {
	if len(instanceFiles) != len(witnessFiles) {
		return nil, fmt.Errorf("unequal number of instances(%d) and witnesses(%d)", len(instanceFiles), len(witnessFiles))
	}
	jobs := make([]backends.Job, len(instanceFiles))
	for i := range instanceFiles {
		instance, err := os.ReadFile(instanceFiles[i])
		if err != nil {
			return nil, err
		}
		witness, err := os.ReadFile(witnessFiles[i])
		if err != nil {
			return nil, err
		}
		jobs[i] = backends.Job{Instance: instance, Witness: witness}
	}
	return jobs, nil
}

func runProve(ctx context.Context, name string) error {
	log := zerolog.Ctx(ctx).With().Str("backend", name).Logger()

	b, err := cmd.GetBackend(name)
	if err != nil {
		return err
	}
	pk, err := os.ReadFile(cmd.PkFile(name))
	if err != nil {
		return fmt.Errorf("read pk, run setup first::%w", err)
	}
	jobs, err := readJobs()
	if err != nil {
		return err
	}

	rngFor := func(i int) io.Reader {
		return cmd.Randomness(fmt.Sprintf("prove/%s/%d", name, i))
	}
	proofs, err := b.ProveBatch(ctx, pk, jobs, rngFor)
	if err != nil {
		return err
	}

	dir := proofsDir
	if dir == "" {
		dir = filepath.Join(cmd.BackendDir(name), "proofs")
	}
	exporter, canExport := b.(backends.ProofExporter)
	var vk []byte
	if exportJSON && canExport {
		if vk, err = os.ReadFile(cmd.VkFile(name)); err != nil {
			return fmt.Errorf("read vk::%w", err)
		}
	}
	for i, p := range proofs {
		if err := cmd.WriteFile(filepath.Join(dir, fmt.Sprintf("proof-%d.bin", i)), p); err != nil {
			return err
		}
		if exportJSON && canExport {
			rendered, err := exporter.ExportProof(vk, p)
			if err != nil {
				return fmt.Errorf("export proof %d::%w", i, err)
			}
			if err := cmd.WriteFile(filepath.Join(dir, fmt.Sprintf("proof-%d.json", i)), rendered); err != nil {
				return err
			}
		}
	}
	if exportJSON && !canExport {
		log.Warn().Msg("backend has no JSON proof rendering")
	}
	log.Info().Str("dir", dir).Int("proofs", len(proofs)).Msg("proofs written")
	return nil
}
