package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/csma-sim/csma-sim/sim"
)

const defaultOutputFile = "output.txt"

var (
	logLevel string // Log verbosity level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "csma-sim",
	Short: "Discrete-event simulator for the CSMA medium-access protocol",
}

// runCmd executes one simulation from a key-prefixed input file and
// writes the utilization rate to the output file.
var runCmd = &cobra.Command{
	Use:   "run <input-file> [output-file]",
	Short: "Run one CSMA simulation",
	Long: `Run one CSMA simulation from a key-prefixed input file.

The input file supplies the node count (N), packet length (L), max
retransmission attempts (M), contention-window sequence (R) and total
simulation ticks (T). The channel utilization rate is written to the
output file with two decimal places (default ` + defaultOutputFile + `).`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		setUpLogging()

		cfg, err := sim.LoadConfig(args[0])
		if err != nil {
			logrus.Fatalf("Unable to load configuration from %s: %v", args[0], err)
		}

		s := sim.NewSimulator(cfg)
		s.Run()
		s.Metrics.Print(cfg.TotalTicks)

		outputPath := defaultOutputFile
		if len(args) == 2 {
			outputPath = args[1]
		}
		writeResult(s, outputPath)

		logrus.Info("Simulation complete.")
	},
}

// writeResult writes the single-number utilization result.
func writeResult(s *sim.Simulator, path string) {
	f, err := os.Create(path)
	if err != nil {
		logrus.Fatalf("Unable to open output file %s: %v", path, err)
	}
	defer f.Close()

	if err := s.Metrics.WriteUtilization(f, s.TotalTicks); err != nil {
		logrus.Fatalf("Unable to write output file %s: %v", path, err)
	}
}

func setUpLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(sweepCmd)
}
