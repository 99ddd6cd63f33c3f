package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iburimskiy/neuron-network/internal/logging"
	"github.com/iburimskiy/neuron-network/internal/network"
)

// simSummary aggregates FrameStats over a headless run.
type simSummary struct {
	Frames       int     `json:"frames"`
	Points       int     `json:"points"`
	MeanLinks    float64 `json:"mean_links"`
	PeakLinks    int     `json:"peak_links"`
	PeakDegree   int     `json:"peak_degree"`
	PeakDrawn    int     `json:"peak_drawn"`
	PointerLines int     `json:"pointer_lines"`
	Circles      int     `json:"circles"`
	Lines        int     `json:"lines"`
}

// runSimulation steps sim frames times against a counting surface.
func runSimulation(sim *network.Simulation, frames int) simSummary {
	var (
		tally network.Tally
		sum   simSummary
		total int
	)
	for i := 0; i < frames; i++ {
		st := sim.Step(&tally)
		total += st.Links
		sum.PeakLinks = max(sum.PeakLinks, st.Links)
		sum.PeakDegree = max(sum.PeakDegree, st.MaxDegree)
		sum.PeakDrawn = max(sum.PeakDrawn, st.MaxDrawn)
		sum.PointerLines += st.PointerLines
	}
	sum.Frames = frames
	sum.Points = len(sim.Points())
	sum.Circles = tally.Circles
	sum.Lines = tally.Lines
	if frames > 0 {
		sum.MeanLinks = float64(total) / float64(frames)
	}
	return sum
}

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the network headless and print link statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			log := logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr())

			frames, _ := cmd.Flags().GetInt("frames")
			width, _ := cmd.Flags().GetFloat64("width")
			height, _ := cmd.Flags().GetFloat64("height")
			if frames < 0 {
				return fmt.Errorf("frames must be non-negative, got %d", frames)
			}

			sim := network.New(cfg.Network.Settings(), width, height)
			if cmd.Flags().Changed("pointer-x") || cmd.Flags().Changed("pointer-y") {
				px, _ := cmd.Flags().GetFloat64("pointer-x")
				py, _ := cmd.Flags().GetFloat64("pointer-y")
				sim.Pointer().Move(px, py)
			}

			log.Debug("simulating", "frames", frames, "points", len(sim.Points()), "width", width, "height", height)
			sum := runSimulation(sim, frames)

			out := cmd.OutOrStdout()
			if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(sum)
			}
			fmt.Fprintf(out, "frames:        %d\n", sum.Frames)
			fmt.Fprintf(out, "points:        %d\n", sum.Points)
			fmt.Fprintf(out, "mean links:    %.2f\n", sum.MeanLinks)
			fmt.Fprintf(out, "peak links:    %d\n", sum.PeakLinks)
			fmt.Fprintf(out, "peak degree:   %d\n", sum.PeakDegree)
			fmt.Fprintf(out, "peak drawn:    %d\n", sum.PeakDrawn)
			fmt.Fprintf(out, "pointer lines: %d\n", sum.PointerLines)
			return nil
		},
	}

	cmd.Flags().Int("frames", 600, "Number of frames to run")
	cmd.Flags().Float64("width", 1024, "Canvas width")
	cmd.Flags().Float64("height", 512, "Canvas height")
	cmd.Flags().Float64("pointer-x", 0, "Hold the pointer at this x for the whole run")
	cmd.Flags().Float64("pointer-y", 0, "Hold the pointer at this y for the whole run")
	return cmd
}
