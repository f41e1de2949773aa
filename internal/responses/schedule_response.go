package responses

import (
	"github.com/mahmoudkheyrati/cpu-scheduler/internal/comparison"
	"github.com/mahmoudkheyrati/cpu-scheduler/internal/core"
	"github.com/mahmoudkheyrati/cpu-scheduler/internal/gantt"
	"github.com/mahmoudkheyrati/cpu-scheduler/internal/requests"
	"github.com/mahmoudkheyrati/cpu-scheduler/internal/schedulers"
)

type ScheduleResponse struct {
	Algorithm schedulers.Policy    `json:"algorithm"`
	Steps     []core.Event         `json:"steps"`
	Gantt     []gantt.Bar          `json:"gantt"`
	Details   []core.ProcessResult `json:"details"`
	Summary   core.MetricsSummary  `json:"summary"`
}

type CompareResponse struct {
	Results comparison.Result   `json:"results"`
	Ranking []schedulers.Policy `json:"ranking"`
}

type RandomResponse struct {
	Jobs []requests.Job `json:"jobs"`
}

type PlaybackCreatedResponse struct {
	ID string `json:"id"`
}

func NewScheduleResponse(policy schedulers.Policy, steps []core.Event, details []core.ProcessResult, summary core.MetricsSummary) ScheduleResponse {
	return ScheduleResponse{
		Algorithm: policy,
		Steps:     steps,
		Gantt:     gantt.Group(steps),
		Details:   details,
		Summary:   summary,
	}
}

func NewCompareResponse(result comparison.Result) CompareResponse {
	ranked := result.Ranked()
	ranking := make([]schedulers.Policy, len(ranked))
	for i, e := range ranked {
		ranking[i] = e.Policy
	}
	return CompareResponse{Results: result, Ranking: ranking}
}
