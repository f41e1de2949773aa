// Package comparison runs several scheduling policies over one process set and
// ranks them with a weighted, tie-aware composite score.
package comparison

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/mahmoudkheyrati/cpu-scheduler/internal/core"
	"github.com/mahmoudkheyrati/cpu-scheduler/internal/schedulers"
)

var ErrInsufficientPolicySelection = errors.New("at least two distinct policies are required for a comparison")

// Entry is one policy's outcome within a comparison.
type Entry struct {
	Policy  schedulers.Policy
	Summary core.MetricsSummary
	Results []core.ProcessResult
	Steps   []core.Event
	Ranks   map[string]int
	Score   float64
	IsBest  bool
	IsWorst bool
}

func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		core.MetricsSummary
		Steps   []core.Event   `json:"steps"`
		Ranks   map[string]int `json:"ranks"`
		Score   float64        `json:"score"`
		IsBest  bool           `json:"isBest"`
		IsWorst bool           `json:"isWorst"`
	}{e.Summary, e.Steps, e.Ranks, e.Score, e.IsBest, e.IsWorst})
}

// Result holds every entry in canonical policy order.
type Result struct {
	Entries []Entry
}

// Get returns the entry for policy.
func (r Result) Get(policy schedulers.Policy) (Entry, bool) {
	for _, e := range r.Entries {
		if e.Policy == policy {
			return e, true
		}
	}
	return Entry{}, false
}

// ByPolicy returns the entries keyed by policy identifier.
func (r Result) ByPolicy() map[schedulers.Policy]Entry {
	m := make(map[schedulers.Policy]Entry, len(r.Entries))
	for _, e := range r.Entries {
		m[e.Policy] = e
	}
	return m
}

// Ranked returns the entries ordered by composite score, best first.
func (r Result) Ranked() []Entry {
	ranked := append([]Entry(nil), r.Entries...)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score < ranked[j].Score })
	return ranked
}

func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ByPolicy())
}

// Normalize de-duplicates policies and puts them in canonical order.
func Normalize(policies []schedulers.Policy) []schedulers.Policy {
	selected := make(map[schedulers.Policy]bool, len(policies))
	for _, p := range policies {
		selected[p] = true
	}
	out := make([]schedulers.Policy, 0, len(selected))
	for _, p := range schedulers.Policies {
		if selected[p] {
			out = append(out, p)
		}
	}
	return out
}

// Compare generates and measures every selected policy concurrently, then scores them.
func Compare(processes []core.Process, policies []schedulers.Policy, params schedulers.Params) (Result, error) {
	parsed := make([]schedulers.Policy, len(policies))
	for i, p := range policies {
		known, err := schedulers.ParsePolicy(string(p))
		if err != nil {
			return Result{}, err
		}
		parsed[i] = known
	}
	selected := Normalize(parsed)
	if len(selected) < 2 {
		return Result{}, fmt.Errorf("%w: got %d", ErrInsufficientPolicySelection, len(selected))
	}
	if err := core.ValidateProcesses(processes); err != nil {
		return Result{}, err
	}

	entries := make([]Entry, len(selected))
	errs := make([]error, len(selected))
	var wg sync.WaitGroup
	wg.Add(len(selected))
	for i, policy := range selected {
		go func(i int, policy schedulers.Policy) {
			defer wg.Done()
			steps, err := schedulers.Generate(policy, processes, params)
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", policy, err)
				return
			}
			results, summary := schedulers.CalculateMetrics(processes, steps)
			entries[i] = Entry{Policy: policy, Summary: summary, Results: results, Steps: steps}
		}(i, policy)
	}
	wg.Wait()
	if err := errors.Join(errs...); err != nil {
		return Result{}, err
	}

	summaries := make([]core.MetricsSummary, len(entries))
	for i, e := range entries {
		summaries[i] = e.Summary
	}
	for i, s := range ScoreAll(summaries) {
		entries[i].Ranks = s.Ranks
		entries[i].Score = s.Score
		entries[i].IsBest = s.IsBest
		entries[i].IsWorst = s.IsWorst
	}

	result := Result{Entries: entries}
	if ranked := result.Ranked(); len(ranked) > 0 {
		logrus.Infof("compared %d policies, best: %s (score %.2f)", len(ranked), ranked[0].Policy, ranked[0].Score)
	}
	return result, nil
}
