package comparison

import (
	"math"
	"sort"

	"github.com/mahmoudkheyrati/cpu-scheduler/internal/core"
)

// scoreTolerance treats near-equal composite scores as tied for best/worst.
const scoreTolerance = 0.001

// Metric is one ranked dimension of a MetricsSummary.
type Metric struct {
	Name          string
	Weight        float64
	LowerIsBetter bool
	Value         func(core.MetricsSummary) float64
}

// Metrics are the weighted dimensions of the composite score; weights sum to 1.
var Metrics = []Metric{
	{Name: "avgWaitingTime", Weight: 0.25, LowerIsBetter: true, Value: func(s core.MetricsSummary) float64 { return s.AvgWaitingTime }},
	{Name: "avgTurnaroundTime", Weight: 0.25, LowerIsBetter: true, Value: func(s core.MetricsSummary) float64 { return s.AvgTurnaroundTime }},
	{Name: "avgResponseTime", Weight: 0.20, LowerIsBetter: true, Value: func(s core.MetricsSummary) float64 { return s.AvgResponseTime }},
	{Name: "cpuThroughput", Weight: 0.15, LowerIsBetter: false, Value: func(s core.MetricsSummary) float64 { return s.CPUThroughput }},
	{Name: "cpuUtilization", Weight: 0.15, LowerIsBetter: false, Value: func(s core.MetricsSummary) float64 { return s.CPUUtilization }},
}

// Rank returns the 1-based rank of every summary on metric m. Equal values get
// successive ranks in slice order.
func Rank(summaries []core.MetricsSummary, m Metric) []int {
	order := make([]int, len(summaries))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := m.Value(summaries[order[i]]), m.Value(summaries[order[j]])
		if m.LowerIsBetter {
			return a < b
		}
		return a > b
	})
	ranks := make([]int, len(summaries))
	for pos, idx := range order {
		ranks[idx] = pos + 1
	}
	return ranks
}

// Score is the composite outcome for one summary.
type Score struct {
	Ranks   map[string]int
	Score   float64
	IsBest  bool
	IsWorst bool
}

// ScoreAll computes weighted composite scores (lower is better) and flags the
// best and worst entries. It is the single ranking routine used by every
// consumer of comparison results.
func ScoreAll(summaries []core.MetricsSummary) []Score {
	scores := make([]Score, len(summaries))
	if len(summaries) == 0 {
		return scores
	}
	for i := range scores {
		scores[i].Ranks = make(map[string]int, len(Metrics))
	}
	for _, m := range Metrics {
		for i, r := range Rank(summaries, m) {
			scores[i].Ranks[m.Name] = r
			scores[i].Score += float64(r) * m.Weight
		}
	}

	best, worst := math.Inf(1), math.Inf(-1)
	for _, s := range scores {
		best = math.Min(best, s.Score)
		worst = math.Max(worst, s.Score)
	}
	for i := range scores {
		scores[i].IsBest = math.Abs(scores[i].Score-best) < scoreTolerance
		scores[i].IsWorst = math.Abs(scores[i].Score-worst) < scoreTolerance
	}
	return scores
}
