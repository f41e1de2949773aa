package schedulers

import "github.com/mahmoudkheyrati/cpu-scheduler/internal/core"

// ScheduleShortestJobFirst is non-preemptive: whenever the CPU frees up, the
// arrived process with the smallest burst time runs to completion.
func ScheduleShortestJobFirst(processes []core.Process, contextSwitchTime float64) ([]core.Event, error) {
	t, err := newTimeline(processes, contextSwitchTime)
	if err != nil {
		return nil, err
	}
	return t.simulate(SJF.Preemptive(), shortestJob), nil
}

func shortestJob(a, b *core.RuntimeProcessState) bool {
	if a.BurstTime != b.BurstTime {
		return a.BurstTime < b.BurstTime
	}
	return byArrival(a, b)
}
