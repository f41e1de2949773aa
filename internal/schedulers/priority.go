package schedulers

import "github.com/mahmoudkheyrati/cpu-scheduler/internal/core"

// SchedulePriority is non-preemptive; the smallest priority value wins.
func SchedulePriority(processes []core.Process, contextSwitchTime float64) ([]core.Event, error) {
	t, err := newTimeline(processes, contextSwitchTime)
	if err != nil {
		return nil, err
	}
	return t.simulate(Priority.Preemptive(), highestPriority), nil
}

// SchedulePreemptivePriority re-evaluates priority every time unit.
func SchedulePreemptivePriority(processes []core.Process, contextSwitchTime float64) ([]core.Event, error) {
	t, err := newTimeline(processes, contextSwitchTime)
	if err != nil {
		return nil, err
	}
	return t.simulate(PriorityPreemptive.Preemptive(), highestPriority), nil
}

func highestPriority(a, b *core.RuntimeProcessState) bool {
	if a.Priority != b.Priority {
		return a.Priority < b.Priority
	}
	return byArrival(a, b)
}
