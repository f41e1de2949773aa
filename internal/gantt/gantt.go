// Package gantt groups an event sequence into timeline bars.
package gantt

import (
	"fmt"
	"io"
	"strings"

	"github.com/mahmoudkheyrati/cpu-scheduler/internal/core"
)

// Bar is a run of identical consecutive tokens.
type Bar struct {
	Token  string `json:"token"`
	Start  int    `json:"start"`
	Length int    `json:"length"`
}

// End is the first time unit after the bar.
func (b Bar) End() int { return b.Start + b.Length }

// Label is the display name of the bar: "Idle", "CS" or "P<pid>".
func (b Bar) Label() string {
	switch b.Token {
	case "idle":
		return "Idle"
	case "cs":
		return "CS"
	}
	return strings.ToUpper(b.Token)
}

// Group collapses consecutive identical events into bars.
func Group(events []core.Event) []Bar {
	bars := make([]Bar, 0)
	for i, e := range events {
		token := e.String()
		if n := len(bars); n > 0 && bars[n-1].Token == token {
			bars[n-1].Length++
			continue
		}
		bars = append(bars, Bar{Token: token, Start: i, Length: 1})
	}
	return bars
}

// Render writes a one-line text chart such as "|P1 0-5|CS 5-6|P2 6-9|".
func Render(w io.Writer, events []core.Event) error {
	bars := Group(events)
	if len(bars) == 0 {
		_, err := fmt.Fprintln(w, "(empty)")
		return err
	}
	var sb strings.Builder
	sb.WriteString("|")
	for _, b := range bars {
		fmt.Fprintf(&sb, "%s %d-%d|", b.Label(), b.Start, b.End())
	}
	sb.WriteString("\n")
	_, err := io.WriteString(w, sb.String())
	return err
}
