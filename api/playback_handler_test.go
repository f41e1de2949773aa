package api

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahmoudkheyrati/cpu-scheduler/internal/core"
	"github.com/mahmoudkheyrati/cpu-scheduler/internal/playback"
	"github.com/mahmoudkheyrati/cpu-scheduler/internal/requests"
	"github.com/mahmoudkheyrati/cpu-scheduler/internal/schedulers"
)

type snapshotBody struct {
	State     string  `json:"state"`
	TimeIndex int     `json:"timeIndex"`
	Length    int     `json:"length"`
	Speed     float64 `json:"speed"`
	Processes []struct {
		PID    int    `json:"pid"`
		Status string `json:"status"`
	} `json:"processes"`
}

func decodeSnapshot(t *testing.T, body []byte) snapshotBody {
	t.Helper()
	var s snapshotBody
	require.NoError(t, json.Unmarshal(body, &s), string(body))
	return s
}

func TestPlaybackSessionLifecycle(t *testing.T) {
	app := newTestApp()

	// GIVEN a paused session over an FCFS sequence
	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/playback", requests.PlaybackRequest{
		ScheduleRequest: requests.ScheduleRequest{Algorithm: "fcfs", Jobs: twoJobs()},
		Paused:          boolPtr(true),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body, &created))
	require.NotEmpty(t, created.ID)
	base := "/api/v1/playback/" + created.ID

	// WHEN it is inspected
	resp, body = doJSON(t, app, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snap := decodeSnapshot(t, body)

	// THEN nothing has been consumed yet
	assert.Equal(t, "paused", snap.State)
	assert.Equal(t, 0, snap.TimeIndex)
	assert.Equal(t, 5, snap.Length)
	require.Len(t, snap.Processes, 2)
	assert.Equal(t, "waiting", snap.Processes[0].Status)
	assert.Equal(t, "not-arrived", snap.Processes[1].Status)

	_, body = doJSON(t, app, http.MethodPost, base+"/resume", nil)
	assert.Equal(t, "running", decodeSnapshot(t, body).State)

	_, body = doJSON(t, app, http.MethodPost, base+"/pause", nil)
	assert.Equal(t, "paused", decodeSnapshot(t, body).State)

	_, body = doJSON(t, app, http.MethodPut, base+"/speed", requests.SpeedRequest{Speed: 4})
	assert.Equal(t, 4.0, decodeSnapshot(t, body).Speed)

	resp, _ = doJSON(t, app, http.MethodPut, base+"/speed", requests.SpeedRequest{Speed: -1})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPlaybackRejectsBadRequests(t *testing.T) {
	app := newTestApp()

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/playback", requests.PlaybackRequest{
		ScheduleRequest: requests.ScheduleRequest{Algorithm: "fcfs", Jobs: twoJobs()},
		Speed:           -2,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/playback", requests.PlaybackRequest{
		ScheduleRequest: requests.ScheduleRequest{Algorithm: "mlfq", Jobs: twoJobs()},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/playback/missing/pause", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPlaybackRequestOverridesConfiguredStartPaused(t *testing.T) {
	cfg := testConfig()
	cfg.PlaybackStartPaused = true
	_, app := newTestHandler(cfg)
	schedule := requests.ScheduleRequest{Algorithm: "fcfs", Jobs: twoJobs()}

	cases := []struct {
		name   string
		paused *bool
		want   string
	}{
		{"absent follows config", nil, "paused"},
		{"explicit false starts running", boolPtr(false), "running"},
		{"explicit true stays paused", boolPtr(true), "paused"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := doJSON(t, app, http.MethodPost, "/api/v1/playback",
				requests.PlaybackRequest{ScheduleRequest: schedule, Paused: tc.paused})
			require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
			var created struct {
				ID string `json:"id"`
			}
			require.NoError(t, json.Unmarshal(body, &created))

			_, body = doJSON(t, app, http.MethodGet, "/api/v1/playback/"+created.ID, nil)
			assert.Equal(t, tc.want, decodeSnapshot(t, body).State)
		})
	}
}

func finishedController(t *testing.T) *playback.Controller {
	t.Helper()
	procs := []core.Process{{PID: 1, ArrivalTime: 0, BurstTime: 2, Priority: 1}}
	steps, err := schedulers.Generate(schedulers.FCFS, procs, schedulers.Params{})
	require.NoError(t, err)
	c := playback.NewController(playback.WithClock(frozenClock{}))
	require.NoError(t, c.Load(procs, steps, false))
	for c.State() == playback.StateRunning {
		require.True(t, c.Tick())
	}
	require.Equal(t, playback.StateFinished, c.State())
	return c
}

func TestPlayback_FinishedSessionDroppedAfterRead(t *testing.T) {
	// GIVEN a session that has played to the end
	handler, app := newTestHandler(testConfig())
	id := handler.sessions.add(finishedController(t))

	// WHEN its final snapshot is read
	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/playback/"+id, nil)

	// THEN the results are delivered once and the session is gone
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "finished", decodeSnapshot(t, body).State)
	assert.Contains(t, string(body), "avgWaitingTime")
	assert.Equal(t, 0, handler.sessions.count())

	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/playback/"+id, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPlayback_UnreadFinishedSessionsExpire(t *testing.T) {
	handler, _ := newTestHandler(testConfig())
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	handler.sessions.now = func() time.Time { return now }

	finished := handler.sessions.add(finishedController(t))
	running := handler.sessions.add(playback.NewController(playback.WithClock(frozenClock{})))

	now = now.Add(finishedSessionTTL + time.Second)
	handler.sessions.add(finishedController(t))

	_, ok := handler.sessions.get(finished)
	assert.False(t, ok, "finished session past its TTL is evicted")
	_, ok = handler.sessions.get(running)
	assert.True(t, ok, "sessions that have not finished are kept")
	assert.Equal(t, 2, handler.sessions.count())
}
