package workload

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahmoudkheyrati/cpu-scheduler/internal/core"
)

func TestDecode_DefaultsPriority(t *testing.T) {
	in := `
processes:
  - pid: 1
    arrival_time: 0
    burst_time: 5
  - pid: 2
    arrival_time: 1
    burst_time: 3
    priority: 4
`
	procs, err := Decode(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []core.Process{
		{PID: 1, ArrivalTime: 0, BurstTime: 5, Priority: 1},
		{PID: 2, ArrivalTime: 1, BurstTime: 3, Priority: 4},
	}, procs)
}

func TestDecode_RejectsUnknownFields(t *testing.T) {
	in := `
processes:
  - pid: 1
    arival_time: 0
    burst_time: 5
`
	_, err := Decode(strings.NewReader(in))
	assert.Error(t, err)
}

func TestDecode_ValidatesProcesses(t *testing.T) {
	in := `
processes:
  - pid: 1
    arrival_time: -2
    burst_time: 5
`
	_, err := Decode(strings.NewReader(in))
	assert.True(t, errors.Is(err, core.ErrInvalidProcess))
}

func TestDecode_EmptyDocument(t *testing.T) {
	procs, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, procs)
}

func TestEncodeThenLoad(t *testing.T) {
	procs := []core.Process{{PID: 3, ArrivalTime: 2, BurstTime: 8, Priority: 2}}
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, procs))

	path := filepath.Join(t.TempDir(), "procs.yaml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, procs, got)
}

func TestRandom_DeterministicAndInRange(t *testing.T) {
	a, err := Random(50, 42, true)
	require.NoError(t, err)
	b, err := Random(50, 42, true)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	for i, p := range a {
		assert.Equal(t, i+1, p.PID)
		assert.GreaterOrEqual(t, p.ArrivalTime, 0)
		assert.LessOrEqual(t, p.ArrivalTime, 20)
		assert.GreaterOrEqual(t, p.BurstTime, 1)
		assert.LessOrEqual(t, p.BurstTime, 20)
		assert.GreaterOrEqual(t, p.Priority, 1)
		assert.LessOrEqual(t, p.Priority, 10)
	}
	assert.NoError(t, core.ValidateProcesses(a))
}

func TestRandom_WithoutPriorityUsesOne(t *testing.T) {
	procs, err := Random(10, 7, false)
	require.NoError(t, err)
	for _, p := range procs {
		assert.Equal(t, 1, p.Priority)
	}
}

func TestRandom_RejectsNonPositiveCount(t *testing.T) {
	_, err := Random(0, 1, false)
	assert.True(t, errors.Is(err, core.ErrInvalidParameter))
}
