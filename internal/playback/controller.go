// Package playback replays a precomputed event sequence one time unit per tick.
package playback

import (
	"errors"
	"math"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mahmoudkheyrati/cpu-scheduler/internal/core"
	"github.com/mahmoudkheyrati/cpu-scheduler/internal/schedulers"
)

var (
	ErrNoSequence   = errors.New("no sequence loaded")
	ErrInvalidSpeed = errors.New("speed must be a positive number")
)

type State int

const (
	StateIdle State = iota
	StateRunning
	StatePaused
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateFinished:
		return "finished"
	default:
		return "idle"
	}
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Status is the live condition of one process.
type Status string

const (
	StatusNotArrived Status = "not-arrived"
	StatusWaiting    Status = "waiting"
	StatusRunning    Status = "running"
	StatusCompleted  Status = "completed"
)

// LiveProcess is a read-only view of one process during playback.
type LiveProcess struct {
	PID                int           `json:"pid"`
	ArrivalTime        int           `json:"arrivalTime"`
	BurstTime          int           `json:"burstTime"`
	Priority           int           `json:"priority"`
	RemainingBurstTime int           `json:"remainingBurstTime"`
	StartTime          core.TimeMark `json:"startTime"`
	EndTime            core.TimeMark `json:"endTime"`
	Status             Status        `json:"status"`
}

// Snapshot is what the controller publishes after every change.
type Snapshot struct {
	State     State                `json:"state"`
	TimeIndex int                  `json:"timeIndex"`
	Length    int                  `json:"length"`
	Speed     float64              `json:"speed"`
	Current   string               `json:"current,omitempty"`
	Processes []LiveProcess        `json:"processes"`
	Results   []core.ProcessResult `json:"results,omitempty"`
	Summary   *core.MetricsSummary `json:"summary,omitempty"`
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock replaces the wall clock, mostly for tests.
func WithClock(clock Clock) Option {
	return func(c *Controller) { c.clock = clock }
}

// WithSpeed sets the initial speed in time units per second.
func WithSpeed(speed float64) Option {
	return func(c *Controller) { c.speed = speed }
}

// Controller is a discrete-time state machine: Idle -> Running <-> Paused -> Finished.
// Every tick is scheduled through a cancellable Timer and tagged with a
// generation; pause, clear and reload bump the generation so a tick that was
// already firing when it was cancelled is discarded.
type Controller struct {
	mu    sync.Mutex
	clock Clock
	speed float64

	state      State
	processes  []core.Process
	events     []core.Event
	live       []core.RuntimeProcessState
	index      int
	pending    Timer
	generation uint64

	finalized bool
	results   []core.ProcessResult
	summary   core.MetricsSummary

	subscribers map[int]chan Snapshot
	nextSubID   int
}

func NewController(opts ...Option) *Controller {
	c := &Controller{
		clock:       RealClock,
		speed:       1,
		subscribers: make(map[int]chan Snapshot),
	}
	for _, opt := range opts {
		opt(c)
	}
	if !validSpeed(c.speed) {
		c.speed = 1
	}
	return c
}

func validSpeed(speed float64) bool {
	return speed > 0 && !math.IsInf(speed, 0) && !math.IsNaN(speed)
}

// Subscribe returns a channel of snapshots. When the consumer falls behind the
// oldest pending snapshot is dropped, so the newest is always delivered.
func (c *Controller) Subscribe(buffer int) (<-chan Snapshot, func()) {
	if buffer < 1 {
		buffer = 1
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextSubID
	c.nextSubID++
	ch := make(chan Snapshot, buffer)
	c.subscribers[id] = ch
	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if sub, ok := c.subscribers[id]; ok {
			delete(c.subscribers, id)
			close(sub)
		}
	}
}

// Load resets all live state to the given sequence and starts it, or leaves it
// paused when startPaused is set.
func (c *Controller) Load(processes []core.Process, events []core.Event, startPaused bool) error {
	if err := core.ValidateProcesses(processes); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelLocked()
	c.processes = append([]core.Process(nil), processes...)
	c.events = append([]core.Event(nil), events...)
	c.live = core.NewRuntimeStates(c.processes)
	c.index = 0
	c.finalized = false
	c.results = nil
	c.summary = core.MetricsSummary{}
	c.state = StateRunning
	if startPaused {
		c.state = StatePaused
	} else {
		c.scheduleLocked()
	}
	logrus.Infof("playback loaded %d processes, %d time units (paused=%v)", len(processes), len(events), startPaused)
	c.publishLocked()
	return nil
}

// SetSpeed changes the tick rate. A pending tick is re-armed so the very next
// tick already uses the new period.
func (c *Controller) SetSpeed(speed float64) error {
	if !validSpeed(speed) {
		return ErrInvalidSpeed
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.speed = speed
	if c.state == StateRunning {
		c.scheduleLocked()
	}
	c.publishLocked()
	return nil
}

// Pause stops ticking without consuming a unit.
func (c *Controller) Pause() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.state {
	case StateIdle:
		return ErrNoSequence
	case StateRunning:
		c.cancelLocked()
		c.state = StatePaused
		c.publishLocked()
	}
	return nil
}

// Resume continues from the first unconsumed unit.
func (c *Controller) Resume() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.state {
	case StateIdle:
		return ErrNoSequence
	case StatePaused:
		c.state = StateRunning
		c.scheduleLocked()
		c.publishLocked()
	}
	return nil
}

// Clear discards the sequence and cancels any pending tick.
func (c *Controller) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelLocked()
	c.state = StateIdle
	c.processes, c.events, c.live = nil, nil, nil
	c.index = 0
	c.finalized = false
	c.results = nil
	c.summary = core.MetricsSummary{}
	c.publishLocked()
}

// Tick advances one unit immediately. Ticks outside Running are dropped and
// report false.
func (c *Controller) Tick() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateRunning {
		return false
	}
	c.advanceLocked()
	if c.state == StateRunning {
		c.scheduleLocked()
	}
	c.publishLocked()
	return true
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Snapshot returns the current observable state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) period() time.Duration {
	return time.Duration(float64(time.Second) / c.speed)
}

func (c *Controller) cancelLocked() {
	c.generation++
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
}

func (c *Controller) scheduleLocked() {
	c.cancelLocked()
	gen := c.generation
	c.pending = c.clock.AfterFunc(c.period(), func() { c.fire(gen) })
}

func (c *Controller) fire(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation || c.state != StateRunning {
		return
	}
	c.pending = nil
	c.advanceLocked()
	if c.state == StateRunning {
		c.scheduleLocked()
	}
	c.publishLocked()
}

func (c *Controller) advanceLocked() {
	if c.index >= len(c.events) {
		c.finishLocked()
		return
	}
	e := c.events[c.index]
	core.StepAll(c.live, e, c.index)
	c.index++
	logrus.Debugf("playback t=%d %s", c.index-1, e)
}

func (c *Controller) finishLocked() {
	c.state = StateFinished
	c.cancelLocked()
	if c.finalized {
		return
	}
	c.results, c.summary = schedulers.GenerateResults(c.live, len(c.events))
	c.finalized = true
	logrus.Infof("playback finished after %d time units", len(c.events))
}

func (c *Controller) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:     c.state,
		TimeIndex: c.index,
		Length:    len(c.events),
		Speed:     c.speed,
		Processes: make([]LiveProcess, len(c.live)),
	}
	var last core.Event
	if c.index > 0 {
		last = c.events[c.index-1]
		snap.Current = last.String()
	}
	for i, s := range c.live {
		lp := LiveProcess{
			PID:                s.PID,
			ArrivalTime:        s.ArrivalTime,
			BurstTime:          s.BurstTime,
			Priority:           s.Priority,
			RemainingBurstTime: s.RemainingBurstTime,
			StartTime:          s.Start(),
			EndTime:            s.End(),
		}
		switch {
		case s.Completed:
			lp.Status = StatusCompleted
		case c.index > 0 && last.Kind == core.EventRunning && last.PID == s.PID:
			lp.Status = StatusRunning
		case s.ArrivalTime > c.index:
			lp.Status = StatusNotArrived
		default:
			lp.Status = StatusWaiting
		}
		snap.Processes[i] = lp
	}
	if c.finalized {
		snap.Results = append([]core.ProcessResult(nil), c.results...)
		summary := c.summary
		snap.Summary = &summary
	}
	return snap
}

func (c *Controller) publishLocked() {
	if len(c.subscribers) == 0 {
		return
	}
	snap := c.snapshotLocked()
	for _, ch := range c.subscribers {
		select {
		case ch <- snap:
			continue
		default:
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}
