package core

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidProcess   = errors.New("invalid process")
	ErrInvalidParameter = errors.New("invalid parameter")
)

// Process is a schedulable unit with its static demand.
// Lower Priority values mean higher priority.
type Process struct {
	PID         int `json:"pid" yaml:"pid"`
	ArrivalTime int `json:"arrivalTime" yaml:"arrival_time"`
	BurstTime   int `json:"burstTime" yaml:"burst_time"`
	Priority    int `json:"priority" yaml:"priority"`
}

// ProcessError describes why a single process was rejected.
type ProcessError struct {
	PID    int
	Index  int
	Field  string
	Reason string
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("process %d (row %d): %s %s", e.PID, e.Index, e.Field, e.Reason)
}

func (e *ProcessError) Unwrap() error { return ErrInvalidProcess }

// ParameterError describes a rejected policy parameter.
type ParameterError struct {
	Name   string
	Value  any
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("parameter %s=%v: %s", e.Name, e.Value, e.Reason)
}

func (e *ParameterError) Unwrap() error { return ErrInvalidParameter }

// NewProcess builds a validated Process.
func NewProcess(pid, arrivalTime, burstTime, priority int) (Process, error) {
	p := Process{PID: pid, ArrivalTime: arrivalTime, BurstTime: burstTime, Priority: priority}
	if err := p.validate(0); err != nil {
		return Process{}, err
	}
	return p, nil
}

func (p Process) validate(index int) error {
	switch {
	case p.PID < 1:
		return &ProcessError{PID: p.PID, Index: index, Field: "pid", Reason: "must be positive"}
	case p.ArrivalTime < 0:
		return &ProcessError{PID: p.PID, Index: index, Field: "arrivalTime", Reason: "must be >= 0"}
	case p.BurstTime < 1:
		return &ProcessError{PID: p.PID, Index: index, Field: "burstTime", Reason: "must be >= 1"}
	case p.Priority < 1:
		return &ProcessError{PID: p.PID, Index: index, Field: "priority", Reason: "must be >= 1"}
	}
	return nil
}

// ValidateProcesses checks every process and reports all offending rows at once.
// PID uniqueness is left to the caller.
func ValidateProcesses(processes []Process) error {
	var errs []error
	for i, p := range processes {
		if err := p.validate(i); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ContextSwitchUnits converts a configured context-switch duration into whole time units.
func ContextSwitchUnits(contextSwitchTime float64) (int, error) {
	if contextSwitchTime < 0 || math.IsNaN(contextSwitchTime) || math.IsInf(contextSwitchTime, 0) {
		return 0, &ParameterError{Name: "contextSwitchTime", Value: contextSwitchTime, Reason: "must be a non-negative number"}
	}
	return int(contextSwitchTime), nil
}

// TotalBurst returns the sum of burst times.
func TotalBurst(processes []Process) int {
	total := 0
	for _, p := range processes {
		total += p.BurstTime
	}
	return total
}
