package playback

import "time"

// Timer is a handle to one scheduled tick.
type Timer interface {
	Stop() bool
}

// Clock schedules a single callback after d.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealClock is backed by time.AfterFunc.
var RealClock Clock = realClock{}
