package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mahmoudkheyrati/cpu-scheduler/internal/playback"
	"github.com/mahmoudkheyrati/cpu-scheduler/internal/schedulers"
)

var speed float64 // Playback speed in time units per second

// playCmd replays a generated sequence in real time
var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Replay a schedule unit by unit",
	RunE: func(cmd *cobra.Command, args []string) error {
		policy, err := schedulers.ParsePolicy(algorithm)
		if err != nil {
			return err
		}
		processes, err := loadWorkload()
		if err != nil {
			return err
		}
		steps, err := schedulers.Generate(policy, processes, schedulerParams(cmd))
		if err != nil {
			return err
		}

		rate := cfg.PlaybackSpeed
		if cmd.Flags().Changed("speed") {
			rate = speed
		}
		controller := playback.NewController()
		if err := controller.SetSpeed(rate); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		updates, cancel := controller.Subscribe(16)
		defer cancel()
		if err := controller.Load(processes, steps, false); err != nil {
			return err
		}
		return follow(ctx, cmd.OutOrStdout(), controller, updates)
	},
}

// follow prints every snapshot until playback finishes or ctx is cancelled.
func follow(ctx context.Context, w io.Writer, controller *playback.Controller, updates <-chan playback.Snapshot) error {
	for {
		select {
		case <-ctx.Done():
			controller.Clear()
			logrus.Info("playback interrupted")
			return nil
		case snap, ok := <-updates:
			if !ok {
				return nil
			}
			writeSnapshot(w, snap)
			if snap.State == playback.StateFinished {
				if snap.Summary != nil {
					_, _ = fmt.Fprintf(w, "done: avg wait %.2f, avg turnaround %.2f, avg response %.2f\n",
						snap.Summary.AvgWaitingTime, snap.Summary.AvgTurnaroundTime, snap.Summary.AvgResponseTime)
				}
				return nil
			}
		}
	}
}

func writeSnapshot(w io.Writer, snap playback.Snapshot) {
	if snap.TimeIndex == 0 && snap.State != playback.StateFinished {
		return
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "t=%d/%d %-4s", snap.TimeIndex, snap.Length, snap.Current)
	for _, p := range snap.Processes {
		fmt.Fprintf(&sb, " p%d:%s(%d)", p.PID, p.Status, p.RemainingBurstTime)
	}
	_, _ = fmt.Fprintln(w, sb.String())
}

func init() {
	playCmd.Flags().StringVar(&algorithm, "algorithm", "fcfs", "Policy: fcfs, sjf, srtf, rr, priority, priority-preemptive")
	playCmd.Flags().Float64Var(&speed, "speed", 1, "Time units per second (default from config)")
}
