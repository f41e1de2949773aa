package schedulers

import (
	"github.com/mahmoudkheyrati/cpu-scheduler/internal/core"
	"github.com/mahmoudkheyrati/cpu-scheduler/internal/util"
)

// CalculateMetrics replays events over fresh runtime state and derives the
// per-process results and summary. Inputs are not modified.
func CalculateMetrics(processes []core.Process, events []core.Event) ([]core.ProcessResult, core.MetricsSummary) {
	states := core.NewRuntimeStates(processes)
	for t, e := range events {
		core.StepAll(states, e, t)
	}
	return GenerateResults(states, len(events))
}

// GenerateResults turns runtime state at the end of a run of totalTime units
// into results. Processes that never finished are charged up to totalTime.
func GenerateResults(states []core.RuntimeProcessState, totalTime int) ([]core.ProcessResult, core.MetricsSummary) {
	details := make([]core.ProcessResult, 0, len(states))
	completed := 0
	totalBurst := 0
	for _, s := range states {
		details = append(details, s.Result(totalTime))
		totalBurst += s.BurstTime
		if s.Completed {
			completed++
		}
	}
	return details, generateSummary(details, completed, totalBurst, totalTime)
}

func generateSummary(details []core.ProcessResult, completed, totalBurst, totalTime int) core.MetricsSummary {
	averageWaitingTime, averageResponseTime, averageTurnAroundTime := util.CalculateAverage(details)

	summary := core.MetricsSummary{
		AvgWaitingTime:    averageWaitingTime,
		AvgTurnaroundTime: averageTurnAroundTime,
		AvgResponseTime:   averageResponseTime,
		TotalTime:         totalTime,
	}
	if totalTime > 0 {
		summary.CPUThroughput = float64(completed) / float64(totalTime)
		summary.CPUUtilization = float64(totalBurst) / float64(totalTime) * 100
	}
	return summary
}
