package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/mahmoudkheyrati/cpu-scheduler/internal/core"
	"github.com/mahmoudkheyrati/cpu-scheduler/internal/gantt"
	"github.com/mahmoudkheyrati/cpu-scheduler/internal/schedulers"
)

var algorithm string // Policy for run and play

// runCmd schedules one workload under one policy and prints the results
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Schedule a workload with one policy",
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
		details, summary := schedulers.CalculateMetrics(processes, steps)
		return writeSchedule(cmd.OutOrStdout(), policy, steps, details, summary)
	},
}

func writeSchedule(w io.Writer, policy schedulers.Policy, steps []core.Event, details []core.ProcessResult, summary core.MetricsSummary) error {
	if _, err := fmt.Fprintf(w, "%s\n\n", policy.DisplayName()); err != nil {
		return err
	}
	if err := gantt.Render(w, steps); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(w)

	rows := make([][]string, len(details))
	for i, d := range details {
		rows[i] = []string{
			strconv.Itoa(d.PID),
			strconv.Itoa(d.ArrivalTime),
			strconv.Itoa(d.BurstTime),
			strconv.Itoa(d.Priority),
			d.StartTime.String(),
			d.EndTime.String(),
			strconv.Itoa(d.ResponseTime),
			strconv.Itoa(d.TurnaroundTime),
			strconv.Itoa(d.WaitingTime),
		}
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"PID", "Arrival", "Burst", "Priority", "Start", "End", "Response", "Turnaround", "Waiting"})
	table.AppendBulk(rows)
	table.SetFooter([]string{"", "", "", "", "", "",
		fmt.Sprintf("Average\n%.2f", summary.AvgResponseTime),
		fmt.Sprintf("Average\n%.2f", summary.AvgTurnaroundTime),
		fmt.Sprintf("Average\n%.2f", summary.AvgWaitingTime)})
	table.Render()

	_, err := fmt.Fprintf(w, "Total time %d, throughput %.3f/t, CPU utilization %.2f%%\n",
		summary.TotalTime, summary.CPUThroughput, summary.CPUUtilization)
	return err
}

func init() {
	runCmd.Flags().StringVar(&algorithm, "algorithm", "fcfs", "Policy: fcfs, sjf, srtf, rr, priority, priority-preemptive")
}
