package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/iburimskiy/neuron-network/internal/config"
	"github.com/iburimskiy/neuron-network/internal/game"
	"github.com/iburimskiy/neuron-network/internal/logging"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "neurons",
		Short: "Animated network of drifting, linking points",
		Long: `neurons opens a window with a field of drifting points that link up
when they come close, and reach out to the mouse or touch pointer.

Drag the sliders to change the number of points, the link distance and the
number of links each point may draw per frame.`,
		SilenceUsage: true,
		RunE:         runWindow,
	}

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Config file (default ~/.neurons/config.yaml)")
	pf.Int("count", 0, "Number of points")
	pf.Float64("distance", 0, "Maximum link distance in pixels")
	pf.Int("connections", 0, "Maximum links a point draws per frame")
	pf.Int64("seed", 0, "Random seed (0 seeds from the clock)")
	pf.Bool("shimmer", false, "Flicker point brightness with simplex noise")
	pf.String("log-level", "", "Log level: info, debug or trace")
	pf.Bool("json", false, "Output as JSON")

	rootCmd.AddCommand(
		newVersionCmd(),
		newSimulateCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{"version": version})
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "neurons version %s\n", version)
			}
		},
	}
}

// loadConfig resolves configuration: file (explicit or default location),
// then environment, then any flags the user actually set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()

	var (
		cfg *config.Config
		err error
	)
	if path, _ := flags.GetString("config"); path != "" {
		cfg, err = config.LoadFromFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if flags.Changed("count") {
		cfg.Network.Count, _ = flags.GetInt("count")
	}
	if flags.Changed("distance") {
		cfg.Network.MaxDistance, _ = flags.GetFloat64("distance")
	}
	if flags.Changed("connections") {
		cfg.Network.MaxConnections, _ = flags.GetInt("connections")
	}
	if flags.Changed("seed") {
		cfg.Network.Seed, _ = flags.GetInt64("seed")
	}
	if flags.Changed("shimmer") {
		cfg.Network.Shimmer, _ = flags.GetBool("shimmer")
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level, _ = flags.GetString("log-level")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := logging.NewLogger(cfg.Logging.Level, os.Stderr)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	notifySignals(sigCh)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case sig := <-sigCh:
			log.Info("signal received, stopping", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	return game.New(cfg, log).Run(ctx)
}
