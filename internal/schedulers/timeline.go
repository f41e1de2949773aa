package schedulers

import (
	"github.com/sirupsen/logrus"

	"github.com/mahmoudkheyrati/cpu-scheduler/internal/core"
)

// timeline is the generator-side bookkeeping of a single-core run.
// It appends one event per time unit and charges context switches.
type timeline struct {
	states      []core.RuntimeProcessState
	events      []core.Event
	switchUnits int
	last        int // index that ran in the previous unit, -1 after idle
	unfinished  int
}

// lessFunc orders two eligible processes; the earlier index wins on a full tie.
type lessFunc func(a, b *core.RuntimeProcessState) bool

func newTimeline(processes []core.Process, contextSwitchTime float64) (*timeline, error) {
	if err := core.ValidateProcesses(processes); err != nil {
		return nil, err
	}
	units, err := core.ContextSwitchUnits(contextSwitchTime)
	if err != nil {
		return nil, err
	}
	return &timeline{
		states:      core.NewRuntimeStates(processes),
		events:      make([]core.Event, 0, core.TotalBurst(processes)),
		switchUnits: units,
		last:        -1,
		unfinished:  len(processes),
	}, nil
}

func (t *timeline) now() int { return len(t.events) }

func (t *timeline) done() bool { return t.unfinished == 0 }

func (t *timeline) eligible(i int) bool {
	s := &t.states[i]
	return !s.Completed && s.ArrivalTime <= t.now()
}

// pick returns the best eligible process index under less, or -1.
func (t *timeline) pick(less lessFunc) int {
	best := -1
	for i := range t.states {
		if !t.eligible(i) {
			continue
		}
		if best < 0 || less(&t.states[i], &t.states[best]) {
			best = i
		}
	}
	return best
}

func (t *timeline) idle() {
	t.events = append(t.events, core.Idle())
	t.last = -1
}

// run gives the next unit to process i, preceded by context-switch units
// when a different process held the CPU in the previous unit.
func (t *timeline) run(i int) {
	if t.last != i {
		if t.last >= 0 {
			logrus.Debugf("pid: %d context switch to pid: %d at %d", t.states[t.last].PID, t.states[i].PID, t.now())
			for n := 0; n < t.switchUnits; n++ {
				t.events = append(t.events, core.ContextSwitch())
			}
		}
		logrus.Debugf("pid: %d dispatched at %d", t.states[i].PID, t.now())
	}
	e := core.Running(t.states[i].PID)
	t.states[i] = core.Step(t.states[i], e, t.now())
	t.events = append(t.events, e)
	t.last = i
	if t.states[i].Completed {
		logrus.Debugf("pid: %d completed at %d", t.states[i].PID, t.now())
		t.unfinished--
	}
}

// simulate drives a selection-rule policy. Non-preemptive runs keep the
// selected process until it completes; preemptive runs re-select every unit.
func (t *timeline) simulate(preemptive bool, less lessFunc) []core.Event {
	current := -1
	for !t.done() {
		if preemptive || current < 0 {
			current = t.pick(less)
		}
		if current < 0 {
			t.idle()
			continue
		}
		t.run(current)
		if t.states[current].Completed {
			current = -1
		}
	}
	return t.events
}

// byArrival breaks ties by arrival time, then pid.
func byArrival(a, b *core.RuntimeProcessState) bool {
	if a.ArrivalTime != b.ArrivalTime {
		return a.ArrivalTime < b.ArrivalTime
	}
	return a.PID < b.PID
}
