package schedulers

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/mahmoudkheyrati/cpu-scheduler/internal/core"
)

// ScheduleRoundRobin serves a FIFO ready queue, giving each dispatched process
// up to timeQuantum consecutive units.
//
// After every executed unit the processes that have arrived by the new time are
// appended in (arrival, pid) order; only then is a process whose quantum expired
// re-appended, so same-instant arrivals are served before it.
func ScheduleRoundRobin(processes []core.Process, timeQuantum int, contextSwitchTime float64) ([]core.Event, error) {
	if timeQuantum < 1 {
		return nil, &core.ParameterError{Name: "timeQuantum", Value: timeQuantum, Reason: "must be >= 1"}
	}
	t, err := newTimeline(processes, contextSwitchTime)
	if err != nil {
		return nil, err
	}
	logrus.Debugf("running roundRobin algorithm with timeQuantum = %d", timeQuantum)

	// sort jobs by arrival time
	arrivals := make([]int, len(t.states))
	for i := range arrivals {
		arrivals[i] = i
	}
	sort.SliceStable(arrivals, func(i, j int) bool {
		return byArrival(&t.states[arrivals[i]], &t.states[arrivals[j]])
	})

	readyQueue := make([]int, 0, len(arrivals))
	next := 0
	admit := func(now int) {
		for next < len(arrivals) && t.states[arrivals[next]].ArrivalTime <= now {
			readyQueue = append(readyQueue, arrivals[next])
			next++
		}
	}

	admit(t.now())
	for !t.done() {
		if len(readyQueue) == 0 {
			t.idle()
			admit(t.now())
			continue
		}
		current := readyQueue[0]
		readyQueue = readyQueue[1:]

		for used := 0; used < timeQuantum && !t.states[current].Completed; used++ {
			t.run(current)
			admit(t.now())
		}
		if !t.states[current].Completed {
			logrus.Debugf("pid: %d quantum expired at %d, back to ready queue", t.states[current].PID, t.now())
			readyQueue = append(readyQueue, current)
		}
	}
	return t.events, nil
}
