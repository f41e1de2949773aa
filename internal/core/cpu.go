package core

import (
	"encoding/json"
	"strconv"
)

const (
	NotStarted   = "Not Started"
	NotCompleted = "Not Completed"
)

// TimeMark is a time index that may not have been reached yet.
// Unset marks encode as their sentinel string in JSON.
type TimeMark struct {
	Value    int
	Set      bool
	sentinel string
}

func Mark(v int) TimeMark { return TimeMark{Value: v, Set: true} }

func (m TimeMark) String() string {
	if !m.Set {
		return m.sentinel
	}
	return strconv.Itoa(m.Value)
}

func (m TimeMark) MarshalJSON() ([]byte, error) {
	if !m.Set {
		return json.Marshal(m.sentinel)
	}
	return json.Marshal(m.Value)
}

// RuntimeProcessState is the mutable view of one process inside a single run.
type RuntimeProcessState struct {
	Process
	RemainingBurstTime int
	Started            bool
	StartTime          int
	Completed          bool
	EndTime            int
}

// NewRuntimeStates creates fresh state for every process, in input order.
func NewRuntimeStates(processes []Process) []RuntimeProcessState {
	states := make([]RuntimeProcessState, len(processes))
	for i, p := range processes {
		states[i] = RuntimeProcessState{Process: p, RemainingBurstTime: p.BurstTime}
	}
	return states
}

// Step applies the event executed during time unit t and returns the new state.
// Only a Running event for this pid changes anything; a completed process is frozen.
func Step(s RuntimeProcessState, e Event, t int) RuntimeProcessState {
	if e.Kind != EventRunning || e.PID != s.PID || s.Completed {
		return s
	}
	if !s.Started {
		s.Started = true
		s.StartTime = t
	}
	s.RemainingBurstTime--
	if s.RemainingBurstTime == 0 {
		s.Completed = true
		s.EndTime = t + 1
	}
	return s
}

// StepAll applies e at time t to the first state owning the event's pid.
// Duplicate pids are the caller's problem; the first match wins.
func StepAll(states []RuntimeProcessState, e Event, t int) {
	if e.Kind != EventRunning {
		return
	}
	for i := range states {
		if states[i].PID == e.PID {
			states[i] = Step(states[i], e, t)
			return
		}
	}
}

// Start returns the start time mark.
func (s RuntimeProcessState) Start() TimeMark {
	if !s.Started {
		return TimeMark{sentinel: NotStarted}
	}
	return Mark(s.StartTime)
}

// End returns the completion time mark.
func (s RuntimeProcessState) End() TimeMark {
	if !s.Completed {
		return TimeMark{sentinel: NotCompleted}
	}
	return Mark(s.EndTime)
}

// ProcessResult holds the per-process metrics of a finished run.
type ProcessResult struct {
	PID            int      `json:"pid"`
	ArrivalTime    int      `json:"arrivalTime"`
	BurstTime      int      `json:"burstTime"`
	Priority       int      `json:"priority"`
	StartTime      TimeMark `json:"startTime"`
	EndTime        TimeMark `json:"endTime"`
	ResponseTime   int      `json:"responseTime"`
	TurnaroundTime int      `json:"turnaroundTime"`
	WaitingTime    int      `json:"waitingTime"`
}

// MetricsSummary aggregates a result set.
type MetricsSummary struct {
	AvgWaitingTime    float64 `json:"avgWaitingTime"`
	AvgTurnaroundTime float64 `json:"avgTurnaroundTime"`
	AvgResponseTime   float64 `json:"avgResponseTime"`
	CPUThroughput     float64 `json:"cpuThroughput"`
	CPUUtilization    float64 `json:"cpuUtilization"`
	TotalTime         int     `json:"totalTime"`
}

// Result derives the ProcessResult of s for a run that lasted totalTime units.
func (s RuntimeProcessState) Result(totalTime int) ProcessResult {
	end := totalTime
	if s.Completed {
		end = s.EndTime
	}
	turnaround := end - s.ArrivalTime
	waiting := turnaround - s.BurstTime
	if waiting < 0 {
		waiting = 0
	}
	response := 0
	if s.Started {
		response = s.StartTime - s.ArrivalTime
	}
	return ProcessResult{
		PID:            s.PID,
		ArrivalTime:    s.ArrivalTime,
		BurstTime:      s.BurstTime,
		Priority:       s.Priority,
		StartTime:      s.Start(),
		EndTime:        s.End(),
		ResponseTime:   response,
		TurnaroundTime: turnaround,
		WaitingTime:    waiting,
	}
}
