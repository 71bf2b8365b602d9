// Package main implements qcscale, a rescaling tool for Source model
// compiler scripts and their companion helper-offset files.
package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Blaco/qc-scale-tool/internal/exitcode"
)

var (
	// Global flags
	flagScale   string
	flagQC      string
	flagVRD     string
	flagSuffix  bool
	flagYes     bool
	flagVerbose bool

	// Logger
	logger *zap.Logger
)

const version = "1.2.0"

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "qcscale",
	Short: "qcscale - uniform rescaling for QC scripts and VRD helper offsets",
	Long: `qcscale applies a uniform scale factor to a Source model.

It places or updates the $scale directive, corrects the eyeball fields
$scale does not reach, keeps the $modelname suffix in step, and rescales
the companion VRD helper-offset file from a normalized baseline so the
tool can be re-run at any scale without compounding error.

Run without flags for the interactive flow.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		config.OutputPaths = []string{"stderr"}
		if flagVerbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		base, err := config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = base.With(zap.String("run_id", uuid.NewString()))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runScale,
}

// versionCmd reports the tool version
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the qcscale version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("qcscale %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")
	rootCmd.Flags().StringVarP(&flagScale, "scale", "s", "", "new absolute scale (prompted for when omitted)")
	rootCmd.Flags().StringVar(&flagQC, "qc", "", "QC file to rewrite (default: found in working directory)")
	rootCmd.Flags().StringVar(&flagVRD, "vrd", "", "VRD file to rescale (default: next to the QC file)")
	rootCmd.Flags().BoolVar(&flagSuffix, "suffix", true, "maintain the _x<scale> suffix on $modelname")
	rootCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "answer yes to confirmations (non-interactive)")

	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "qcscale: %v\n", err)
		os.Exit(exitcode.CodeOf(err))
	}
}
