package cmd

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"os"

	"github.com/Electron-Labs/quantum-proof-schemes/proof"
	"github.com/consensys/gnark/logger"
	"github.com/pkg/profile"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:           "quantum-proof-schemes",
	Short:         "CLI for setting up, proving and verifying with pluggable proof schemes",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		log, err := newLogger()
		if err != nil {
			return err
		}
		// gnark logs compilation and setup through its own global logger
		logger.Set(log)
		cmd.SetContext(log.WithContext(cmd.Context()))

		if Profile {
			stopProfile = profile.Start(profile.CPUProfile, profile.ProfilePath(OutputDir), profile.Quiet).Stop
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := RootCmd.ExecuteContext(context.Background())
	if stopProfile != nil {
		stopProfile()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

var (
	OutputDir     string
	ConfigFile    string
	LogLevel      string
	Seed          string
	Profile       bool
	RegistryDepth int

	stopProfile func()
)

func init() {
	RootCmd.PersistentFlags().StringVar(&OutputDir, "out", "artifacts", "Output directory for storing artifacts")
	RootCmd.PersistentFlags().StringVar(&ConfigFile, "config", "", "YAML config file, flags given on the command line take precedence")
	RootCmd.PersistentFlags().StringVar(&LogLevel, "log-level", "info", "trace, debug, info, warn or error")
	RootCmd.PersistentFlags().StringVar(&Seed, "seed", "", "derive all randomness from this seed (testing only)")
	RootCmd.PersistentFlags().BoolVar(&Profile, "profile", false, "write a CPU profile to the output directory")
	RootCmd.PersistentFlags().IntVar(&RegistryDepth, "registry-depth", 10, "depth of the verifying key registry created on first setup")

	RootCmd.CompletionOptions.DisableDefaultCmd = true
}

func newLogger() (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(LogLevel)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("log level %q::%w", LogLevel, err)
	}
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	return zerolog.New(output).Level(level).With().Timestamp().Logger(), nil
}

// Randomness returns the randomness source for label. With --seed every label
// gets its own deterministic stream, otherwise all labels share crypto/rand.
func Randomness(label string) io.Reader {
	if Seed == "" {
		return rand.Reader
	}
	return proof.NewSeededReader([]byte(Seed + "/" + label))
}
