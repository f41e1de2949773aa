package schedulers

import "github.com/mahmoudkheyrati/cpu-scheduler/internal/core"

// ScheduleFirstComeFirstServe runs processes to completion in arrival order,
// lower pid first on equal arrival.
func ScheduleFirstComeFirstServe(processes []core.Process, contextSwitchTime float64) ([]core.Event, error) {
	t, err := newTimeline(processes, contextSwitchTime)
	if err != nil {
		return nil, err
	}
	return t.simulate(FCFS.Preemptive(), byArrival), nil
}
