package schedulers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mahmoudkheyrati/cpu-scheduler/internal/core"
)

// seq expands a compact description like "p1*5 cs p2*3" into tokens.
func seq(t *testing.T, pattern string) []string {
	t.Helper()
	var out []string
	for _, part := range strings.Fields(pattern) {
		token, count := part, 1
		if i := strings.IndexByte(part, '*'); i >= 0 {
			token = part[:i]
			n := 0
			for _, c := range part[i+1:] {
				n = n*10 + int(c-'0')
			}
			count = n
		}
		_, err := core.ParseEvent(token)
		require.NoError(t, err, "bad token in %q", pattern)
		for k := 0; k < count; k++ {
			out = append(out, token)
		}
	}
	return out
}

func textbookSet() []core.Process {
	return []core.Process{
		{PID: 1, ArrivalTime: 0, BurstTime: 5, Priority: 1},
		{PID: 2, ArrivalTime: 1, BurstTime: 3, Priority: 1},
		{PID: 3, ArrivalTime: 2, BurstTime: 8, Priority: 1},
	}
}

func shortJobSet() []core.Process {
	return []core.Process{
		{PID: 1, ArrivalTime: 0, BurstTime: 7, Priority: 1},
		{PID: 2, ArrivalTime: 2, BurstTime: 4, Priority: 1},
		{PID: 3, ArrivalTime: 4, BurstTime: 1, Priority: 1},
		{PID: 4, ArrivalTime: 5, BurstTime: 4, Priority: 1},
	}
}

func prioritySet() []core.Process {
	return []core.Process{
		{PID: 1, ArrivalTime: 0, BurstTime: 4, Priority: 3},
		{PID: 2, ArrivalTime: 1, BurstTime: 3, Priority: 1},
		{PID: 3, ArrivalTime: 2, BurstTime: 2, Priority: 2},
	}
}
