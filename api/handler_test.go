package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahmoudkheyrati/cpu-scheduler/config"
	"github.com/mahmoudkheyrati/cpu-scheduler/internal/playback"
	"github.com/mahmoudkheyrati/cpu-scheduler/internal/requests"
)

type stoppedTimer struct{}

func (stoppedTimer) Stop() bool { return true }

// frozenClock never fires, so playback only moves when a test says so.
type frozenClock struct{}

func (frozenClock) AfterFunc(time.Duration, func()) playback.Timer { return stoppedTimer{} }

func testConfig() *config.SchedulerConfig {
	return &config.SchedulerConfig{Port: 9095, RoundRobinTimeQuantum: 2, PlaybackSpeed: 1, LogLevel: "info"}
}

func newTestHandler(cfg *config.SchedulerConfig) (*SchedulerHandlerImpl, *fiber.App) {
	handler := NewSchedulerHandlerImpl(cfg, playback.WithClock(frozenClock{}))
	return handler, NewApp(handler)
}

func newTestApp() *fiber.App {
	_, app := newTestHandler(testConfig())
	return app
}

func intPtr(v int) *int { return &v }
func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool { return &v }

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func twoJobs() []requests.Job {
	return []requests.Job{
		{ProcessId: 1, ArrivalTime: 0, BurstTime: 3},
		{ProcessId: 2, ArrivalTime: 1, BurstTime: 2},
	}
}

type scheduleBody struct {
	Algorithm string   `json:"algorithm"`
	Steps     []string `json:"steps"`
	Gantt     []struct {
		Token  string `json:"token"`
		Start  int    `json:"start"`
		Length int    `json:"length"`
	} `json:"gantt"`
	Details []struct {
		PID         int `json:"pid"`
		WaitingTime int `json:"waitingTime"`
	} `json:"details"`
	Summary struct {
		AvgWaitingTime float64 `json:"avgWaitingTime"`
		TotalTime      int     `json:"totalTime"`
	} `json:"summary"`
}

func TestFirstComeFirstServeRoute(t *testing.T) {
	app := newTestApp()

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/fcfs", requests.ScheduleRequest{Jobs: twoJobs()})

	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var got scheduleBody
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "fcfs", got.Algorithm)
	assert.Equal(t, []string{"p1", "p1", "p1", "p2", "p2"}, got.Steps)
	require.Len(t, got.Gantt, 2)
	assert.Equal(t, 3, got.Gantt[1].Start)
	require.Len(t, got.Details, 2)
	assert.Equal(t, 2, got.Details[1].WaitingTime)
	assert.InDelta(t, 1.0, got.Summary.AvgWaitingTime, 1e-9)
	assert.Equal(t, 5, got.Summary.TotalTime)
}

func TestScheduleRouteUsesAlgorithmField(t *testing.T) {
	app := newTestApp()

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/schedule",
		requests.ScheduleRequest{Algorithm: "RR", TimeQuantum: intPtr(1), Jobs: twoJobs()})

	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var got scheduleBody
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "rr", got.Algorithm)
	assert.Equal(t, []string{"p1", "p2", "p1", "p2", "p1"}, got.Steps)
}

func TestRoundRobinRouteFallsBackToConfiguredQuantum(t *testing.T) {
	app := newTestApp()

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/rr", requests.ScheduleRequest{Jobs: twoJobs()})

	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var got scheduleBody
	require.NoError(t, json.Unmarshal(body, &got))
	// quantum 2: p1 runs two units, p2 finishes, p1 takes the last unit
	assert.Equal(t, []string{"p1", "p1", "p2", "p2", "p1"}, got.Steps)
}

func TestScheduleRejectsBadInput(t *testing.T) {
	app := newTestApp()

	cases := []struct {
		name string
		path string
		body any
	}{
		{"unknown algorithm", "/api/v1/schedule", requests.ScheduleRequest{Algorithm: "lottery", Jobs: twoJobs()}},
		{"zero burst", "/api/v1/sjf", requests.ScheduleRequest{Jobs: []requests.Job{{ProcessId: 1, BurstTime: 0}}}},
		{"negative context switch", "/api/v1/fcfs", requests.ScheduleRequest{ContextSwitchTime: floatPtr(-1), Jobs: twoJobs()}},
		{"explicit zero quantum", "/api/v1/rr", json.RawMessage(`{"time_quantum":0,"jobs":[{"process_id":1,"arrival_time":0,"burst_time":3}]}`)},
		{"negative quantum in comparison", "/api/v1/all", requests.CompareRequest{TimeQuantum: intPtr(-1), Jobs: twoJobs()}},
		{"single policy comparison", "/api/v1/all", requests.CompareRequest{Algorithms: []string{"fcfs", "FCFS"}, Jobs: twoJobs()}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := doJSON(t, app, http.MethodPost, tc.path, tc.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, string(body))
			assert.Contains(t, string(body), "error")
		})
	}
}

func TestSchedule_OmittedContextSwitchUsesConfig(t *testing.T) {
	// GIVEN a server configured with a one unit context switch
	cfg := testConfig()
	cfg.ContextSwitchTime = 1
	_, app := newTestHandler(cfg)

	// WHEN a request omits context_switch_time
	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/fcfs", requests.ScheduleRequest{Jobs: twoJobs()})

	// THEN the configured cost is charged
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var got scheduleBody
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, []string{"p1", "p1", "p1", "cs", "p2", "p2"}, got.Steps)

	// and an explicit zero overrides it
	resp, body = doJSON(t, app, http.MethodPost, "/api/v1/fcfs", requests.ScheduleRequest{ContextSwitchTime: floatPtr(0), Jobs: twoJobs()})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, []string{"p1", "p1", "p1", "p2", "p2"}, got.Steps)
}

func TestMalformedBody(t *testing.T) {
	app := newTestApp()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/fcfs", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAllAlgorithmsComparesEveryPolicyByDefault(t *testing.T) {
	app := newTestApp()

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/all", requests.CompareRequest{Jobs: twoJobs()})

	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var got struct {
		Results map[string]struct {
			Score  float64  `json:"score"`
			IsBest bool     `json:"isBest"`
			Steps  []string `json:"steps"`
		} `json:"results"`
		Ranking []string `json:"ranking"`
	}
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Len(t, got.Results, 6)
	require.Len(t, got.Ranking, 6)
	assert.True(t, got.Results[got.Ranking[0]].IsBest)
	for policy, entry := range got.Results {
		assert.Len(t, entry.Steps, 5, policy)
	}
}

func TestRandomJobs(t *testing.T) {
	app := newTestApp()

	resp, first := doJSON(t, app, http.MethodGet, "/api/v1/random?count=4&seed=7&priority=true", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(first))
	_, second := doJSON(t, app, http.MethodGet, "/api/v1/random?count=4&seed=7&priority=true", nil)

	var got struct {
		Jobs []requests.Job `json:"jobs"`
	}
	require.NoError(t, json.Unmarshal(first, &got))
	assert.Len(t, got.Jobs, 4)
	assert.JSONEq(t, string(first), string(second))

	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/random?count=abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
