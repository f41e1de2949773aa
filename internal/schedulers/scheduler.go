package schedulers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mahmoudkheyrati/cpu-scheduler/internal/core"
)

// Policy identifies one of the supported scheduling algorithms.
type Policy string

const (
	FCFS               Policy = "fcfs"
	SJF                Policy = "sjf"
	SRTF               Policy = "srtf"
	RoundRobin         Policy = "rr"
	Priority           Policy = "priority"
	PriorityPreemptive Policy = "priority-preemptive"
)

// Policies lists every policy in canonical order.
var Policies = []Policy{FCFS, SJF, SRTF, RoundRobin, Priority, PriorityPreemptive}

var ErrUnknownPolicy = fmt.Errorf("%w: unknown policy", core.ErrInvalidParameter)

// DisplayName returns a human readable label, e.g. "Priority Preemptive".
func (p Policy) DisplayName() string {
	switch p {
	case FCFS, SJF, SRTF:
		return strings.ToUpper(string(p))
	case RoundRobin:
		return "Round Robin"
	case Priority:
		return "Priority"
	case PriorityPreemptive:
		return "Priority Preemptive"
	}
	return string(p)
}

// Preemptive reports whether the policy may interrupt a running process.
func (p Policy) Preemptive() bool {
	return p == SRTF || p == RoundRobin || p == PriorityPreemptive
}

// ParsePolicy accepts a policy identifier, case-insensitively.
func ParsePolicy(s string) (Policy, error) {
	p := Policy(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Policies {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownPolicy, s)
}

// Params carries the tunables shared by all generators.
type Params struct {
	TimeQuantum       int
	ContextSwitchTime float64
}

// Generate runs the generator for policy and returns its event sequence.
func Generate(policy Policy, processes []core.Process, params Params) ([]core.Event, error) {
	logrus.Infof("running %s algorithm on %d processes (quantum=%d, context switch=%v)",
		policy, len(processes), params.TimeQuantum, params.ContextSwitchTime)

	var (
		events []core.Event
		err    error
	)
	switch policy {
	case FCFS:
		events, err = ScheduleFirstComeFirstServe(processes, params.ContextSwitchTime)
	case SJF:
		events, err = ScheduleShortestJobFirst(processes, params.ContextSwitchTime)
	case SRTF:
		events, err = ScheduleShortestRemainingTimeFirst(processes, params.ContextSwitchTime)
	case RoundRobin:
		events, err = ScheduleRoundRobin(processes, params.TimeQuantum, params.ContextSwitchTime)
	case Priority:
		events, err = SchedulePriority(processes, params.ContextSwitchTime)
	case PriorityPreemptive:
		events, err = SchedulePreemptivePriority(processes, params.ContextSwitchTime)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownPolicy, policy)
	}
	if err != nil {
		if !errors.Is(err, core.ErrInvalidProcess) && !errors.Is(err, core.ErrInvalidParameter) {
			logrus.Errorf("%s generator failed: %v", policy, err)
		}
		return nil, err
	}
	logrus.Debugf("%s produced %d time units", policy, len(events))
	return events, nil
}
