package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mahmoudkheyrati/cpu-scheduler/config"
	"github.com/mahmoudkheyrati/cpu-scheduler/internal/core"
	"github.com/mahmoudkheyrati/cpu-scheduler/internal/schedulers"
	"github.com/mahmoudkheyrati/cpu-scheduler/internal/workload"
)

var (
	configPath string // Path to config.yaml
	logLevel   string // Log verbosity level, overrides log.level

	// Workload flags shared by run, compare and play
	processesPath string  // YAML process file
	randomCount   int     // Number of random processes
	seed          int64   // Seed for random processes
	withPriority  bool    // Randomize priorities
	timeQuantum   int     // Round robin quantum
	contextSwitch float64 // Context switch cost in time units

	cfg *config.SchedulerConfig
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:           "cpusched",
	Short:         "CPU scheduling simulator and comparison tool",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configPath == "" {
			cfg = config.GetSchedulerConfig()
		} else {
			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			cfg = loaded
		}

		level := cfg.LogLevel
		if logLevel != "" {
			level = logLevel
		}
		parsed, err := logrus.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("invalid log level: %s", level)
		}
		logrus.SetLevel(parsed)
		return nil
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "", "Log level (trace, debug, info, warn, error, fatal, panic)")

	for _, c := range []*cobra.Command{runCmd, compareCmd, playCmd} {
		addWorkloadFlags(c)
	}
	rootCmd.AddCommand(serveCmd, runCmd, compareCmd, playCmd)
}

func addWorkloadFlags(c *cobra.Command) {
	c.Flags().StringVar(&processesPath, "processes", "", "Path to a YAML process file")
	c.Flags().IntVar(&randomCount, "random", 0, "Generate this many random processes instead of reading a file")
	c.Flags().Int64Var(&seed, "seed", 42, "Seed for random process generation")
	c.Flags().BoolVar(&withPriority, "priority", false, "Give random processes random priorities")
	c.Flags().IntVar(&timeQuantum, "quantum", 2, "Round robin time quantum (default from config)")
	c.Flags().Float64Var(&contextSwitch, "cs", 0, "Context switch time (default from config)")
	c.MarkFlagsMutuallyExclusive("processes", "random")
}

// loadWorkload returns the processes selected by --processes or --random.
func loadWorkload() ([]core.Process, error) {
	switch {
	case processesPath != "":
		return workload.Load(processesPath)
	case randomCount > 0:
		logrus.Debugf("generating %d random processes with seed %d", randomCount, seed)
		return workload.Random(randomCount, seed, withPriority)
	default:
		return nil, errors.New("either --processes or --random is required")
	}
}

// schedulerParams prefers explicit flags and falls back to the config file.
func schedulerParams(cmd *cobra.Command) schedulers.Params {
	params := schedulers.Params{
		TimeQuantum:       cfg.RoundRobinTimeQuantum,
		ContextSwitchTime: cfg.ContextSwitchTime,
	}
	if cmd.Flags().Changed("quantum") {
		params.TimeQuantum = timeQuantum
	}
	if cmd.Flags().Changed("cs") {
		params.ContextSwitchTime = contextSwitch
	}
	return params
}
