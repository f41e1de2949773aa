package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/mahmoudkheyrati/cpu-scheduler/internal/comparison"
	"github.com/mahmoudkheyrati/cpu-scheduler/internal/gantt"
	"github.com/mahmoudkheyrati/cpu-scheduler/internal/schedulers"
)

var algorithms []string // Policies to compare, all when empty

// compareCmd runs one workload under several policies and ranks them
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare policies on the same workload",
	RunE: func(cmd *cobra.Command, args []string) error {
		policies := schedulers.Policies
		if len(algorithms) > 0 {
			policies = make([]schedulers.Policy, 0, len(algorithms))
			for _, name := range algorithms {
				p, err := schedulers.ParsePolicy(name)
				if err != nil {
					return err
				}
				policies = append(policies, p)
			}
		}
		processes, err := loadWorkload()
		if err != nil {
			return err
		}
		result, err := comparison.Compare(processes, policies, schedulerParams(cmd))
		if err != nil {
			return err
		}
		writeComparison(cmd.OutOrStdout(), result)
		return nil
	},
}

func writeComparison(w io.Writer, result comparison.Result) {
	_, _ = fmt.Fprintln(w, "Policy comparison (lower score is better)")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Rank", "Policy", "Avg Wait", "Avg Turnaround", "Avg Response", "Throughput", "Utilization", "Score", ""})
	for i, e := range result.Ranked() {
		marker := ""
		switch {
		case e.IsBest && e.IsWorst:
			marker = "tie"
		case e.IsBest:
			marker = "best"
		case e.IsWorst:
			marker = "worst"
		}
		table.Append([]string{
			strconv.Itoa(i + 1),
			e.Policy.DisplayName(),
			fmt.Sprintf("%.2f", e.Summary.AvgWaitingTime),
			fmt.Sprintf("%.2f", e.Summary.AvgTurnaroundTime),
			fmt.Sprintf("%.2f", e.Summary.AvgResponseTime),
			fmt.Sprintf("%.3f", e.Summary.CPUThroughput),
			fmt.Sprintf("%.2f%%", e.Summary.CPUUtilization),
			fmt.Sprintf("%.2f", e.Score),
			marker,
		})
	}
	table.Render()

	for _, e := range result.Entries {
		_, _ = fmt.Fprintf(w, "%-20s", e.Policy.DisplayName())
		_ = gantt.Render(w, e.Steps)
	}
}

func init() {
	compareCmd.Flags().StringSliceVar(&algorithms, "algorithms", nil, "Comma-separated policies to compare (default all)")
}
