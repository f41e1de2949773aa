package core

import (
	"fmt"
	"strconv"
	"strings"
)

type EventKind uint8

const (
	EventIdle EventKind = iota
	EventContextSwitch
	EventRunning
)

const (
	idleToken          = "idle"
	contextSwitchToken = "cs"
)

// Event is what the CPU did during exactly one time unit.
type Event struct {
	Kind EventKind
	PID  int
}

func Idle() Event          { return Event{Kind: EventIdle} }
func ContextSwitch() Event { return Event{Kind: EventContextSwitch} }
func Running(pid int) Event {
	return Event{Kind: EventRunning, PID: pid}
}

// String returns the timeline token: "idle", "cs" or "p<pid>".
func (e Event) String() string {
	switch e.Kind {
	case EventContextSwitch:
		return contextSwitchToken
	case EventRunning:
		return "p" + strconv.Itoa(e.PID)
	default:
		return idleToken
	}
}

// ParseEvent is the inverse of Event.String.
func ParseEvent(token string) (Event, error) {
	switch token {
	case idleToken:
		return Idle(), nil
	case contextSwitchToken:
		return ContextSwitch(), nil
	}
	if strings.HasPrefix(token, "p") {
		pid, err := strconv.Atoi(token[1:])
		if err == nil && pid > 0 {
			return Running(pid), nil
		}
	}
	return Event{}, fmt.Errorf("unknown timeline token %q", token)
}

func (e Event) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

func (e *Event) UnmarshalText(text []byte) error {
	parsed, err := ParseEvent(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// Tokens renders a sequence as its token list.
func Tokens(events []Event) []string {
	tokens := make([]string, len(events))
	for i, e := range events {
		tokens[i] = e.String()
	}
	return tokens
}

// RunningUnits counts the time units each pid occupied the CPU.
func RunningUnits(events []Event) map[int]int {
	units := make(map[int]int)
	for _, e := range events {
		if e.Kind == EventRunning {
			units[e.PID]++
		}
	}
	return units
}
