// Package workload loads process sets from YAML files and synthesizes random ones.
package workload

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/mahmoudkheyrati/cpu-scheduler/internal/core"
)

const (
	maxRandomArrival  = 20
	maxRandomBurst    = 20
	maxRandomPriority = 10
)

// File is the on-disk process list. Unknown keys are rejected.
type File struct {
	Processes []FileProcess `yaml:"processes"`
}

// FileProcess mirrors core.Process; Priority defaults to 1 when omitted.
type FileProcess struct {
	PID         int  `yaml:"pid"`
	ArrivalTime int  `yaml:"arrival_time"`
	BurstTime   int  `yaml:"burst_time"`
	Priority    *int `yaml:"priority,omitempty"`
}

// Load reads and validates a process file.
func Load(path string) ([]core.Process, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read process file %s: %w", path, err)
	}
	procs, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("process file %s: %w", path, err)
	}
	logrus.Debugf("loaded %d processes from %s", len(procs), path)
	return procs, nil
}

// Decode parses a process list with strict field checking.
func Decode(r io.Reader) ([]core.Process, error) {
	var f File
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	procs := make([]core.Process, 0, len(f.Processes))
	for _, fp := range f.Processes {
		priority := 1
		if fp.Priority != nil {
			priority = *fp.Priority
		}
		procs = append(procs, core.Process{
			PID:         fp.PID,
			ArrivalTime: fp.ArrivalTime,
			BurstTime:   fp.BurstTime,
			Priority:    priority,
		})
	}
	if err := core.ValidateProcesses(procs); err != nil {
		return nil, err
	}
	return procs, nil
}

// Encode writes processes in the format Decode accepts.
func Encode(w io.Writer, processes []core.Process) error {
	f := File{Processes: make([]FileProcess, len(processes))}
	for i, p := range processes {
		priority := p.Priority
		f.Processes[i] = FileProcess{PID: p.PID, ArrivalTime: p.ArrivalTime, BurstTime: p.BurstTime, Priority: &priority}
	}
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(f); err != nil {
		return err
	}
	return encoder.Close()
}

// Random synthesizes count processes with pids 1..count. Arrival is uniform in
// [0,20] and burst in [1,20]; priority is uniform in [1,10] when withPriority
// is set, otherwise 1. The same seed always yields the same set.
func Random(count int, seed int64, withPriority bool) ([]core.Process, error) {
	if count < 1 {
		return nil, &core.ParameterError{Name: "count", Value: count, Reason: "must be >= 1"}
	}
	rng := rand.New(rand.NewSource(seed))
	procs := make([]core.Process, count)
	for i := range procs {
		priority := 1
		arrival := rng.Intn(maxRandomArrival + 1)
		burst := rng.Intn(maxRandomBurst) + 1
		if withPriority {
			priority = rng.Intn(maxRandomPriority) + 1
		}
		procs[i] = core.Process{PID: i + 1, ArrivalTime: arrival, BurstTime: burst, Priority: priority}
	}
	return procs, nil
}
