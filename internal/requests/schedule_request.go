package requests

import (
	"github.com/mahmoudkheyrati/cpu-scheduler/internal/core"
	"github.com/mahmoudkheyrati/cpu-scheduler/internal/schedulers"
)

type Job struct {
	ProcessId   int  `json:"process_id"`
	ArrivalTime int  `json:"arrival_time"`
	BurstTime   int  `json:"burst_time"`
	Priority    *int `json:"priority,omitempty"`
}

// ScheduleRequest leaves TimeQuantum and ContextSwitchTime nil when the client
// omits them, so configured defaults apply only to absent fields.
type ScheduleRequest struct {
	Algorithm         string   `json:"algorithm"`
	TimeQuantum       *int     `json:"time_quantum,omitempty"`
	ContextSwitchTime *float64 `json:"context_switch_time,omitempty"`
	Jobs              []Job    `json:"jobs"`
}

type CompareRequest struct {
	Algorithms        []string `json:"algorithms"`
	TimeQuantum       *int     `json:"time_quantum,omitempty"`
	ContextSwitchTime *float64 `json:"context_switch_time,omitempty"`
	Jobs              []Job    `json:"jobs"`
}

type PlaybackRequest struct {
	ScheduleRequest
	Speed  float64 `json:"speed"`
	Paused *bool   `json:"paused,omitempty"`
}

type SpeedRequest struct {
	Speed float64 `json:"speed"`
}

// Processes converts jobs to validated processes. Priority defaults to 1.
func Processes(jobs []Job) ([]core.Process, error) {
	processes := make([]core.Process, len(jobs))
	for i, job := range jobs {
		priority := 1
		if job.Priority != nil {
			priority = *job.Priority
		}
		processes[i] = core.Process{
			PID:         job.ProcessId,
			ArrivalTime: job.ArrivalTime,
			BurstTime:   job.BurstTime,
			Priority:    priority,
		}
	}
	if err := core.ValidateProcesses(processes); err != nil {
		return nil, err
	}
	return processes, nil
}

// Jobs is the inverse of Processes.
func Jobs(processes []core.Process) []Job {
	jobs := make([]Job, len(processes))
	for i, p := range processes {
		priority := p.Priority
		jobs[i] = Job{ProcessId: p.PID, ArrivalTime: p.ArrivalTime, BurstTime: p.BurstTime, Priority: &priority}
	}
	return jobs
}

// Params returns the generator parameters. Absent fields take the given
// defaults; explicit values, zero included, are passed through for validation.
func (r ScheduleRequest) Params(defaults schedulers.Params) schedulers.Params {
	params := defaults
	if r.TimeQuantum != nil {
		params.TimeQuantum = *r.TimeQuantum
	}
	if r.ContextSwitchTime != nil {
		params.ContextSwitchTime = *r.ContextSwitchTime
	}
	return params
}

func (r CompareRequest) Params(defaults schedulers.Params) schedulers.Params {
	return ScheduleRequest{TimeQuantum: r.TimeQuantum, ContextSwitchTime: r.ContextSwitchTime}.Params(defaults)
}

// StartPaused reports the requested start mode, or fallback when absent.
func (r PlaybackRequest) StartPaused(fallback bool) bool {
	if r.Paused == nil {
		return fallback
	}
	return *r.Paused
}

// Policies parses the requested algorithms; an empty list selects all of them.
func (r CompareRequest) Policies() ([]schedulers.Policy, error) {
	if len(r.Algorithms) == 0 {
		return schedulers.Policies, nil
	}
	policies := make([]schedulers.Policy, 0, len(r.Algorithms))
	for _, name := range r.Algorithms {
		p, err := schedulers.ParsePolicy(name)
		if err != nil {
			return nil, err
		}
		policies = append(policies, p)
	}
	return policies, nil
}
