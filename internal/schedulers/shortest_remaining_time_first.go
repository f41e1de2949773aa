package schedulers

import "github.com/mahmoudkheyrati/cpu-scheduler/internal/core"

// ScheduleShortestRemainingTimeFirst re-selects every time unit by remaining burst.
func ScheduleShortestRemainingTimeFirst(processes []core.Process, contextSwitchTime float64) ([]core.Event, error) {
	t, err := newTimeline(processes, contextSwitchTime)
	if err != nil {
		return nil, err
	}
	return t.simulate(SRTF.Preemptive(), shortestRemaining), nil
}

func shortestRemaining(a, b *core.RuntimeProcessState) bool {
	if a.RemainingBurstTime != b.RemainingBurstTime {
		return a.RemainingBurstTime < b.RemainingBurstTime
	}
	return byArrival(a, b)
}
