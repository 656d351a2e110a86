package client

import (
	"fmt"

	"github.com/mpdkeys/mpdkeys/client/mpd"
)

// Reply is what a transport action reports back: a line for the user and
// the playback state after the action.
type Reply struct {
	Text   string
	State  mpd.State
	Failed bool // Text is a server error message
}

// Action is a media key.
type Action string

const (
	ActionNext   Action = "next"
	ActionPrev   Action = "prev"
	ActionStop   Action = "stop"
	ActionToggle Action = "toggle"
)

// Actions lists the supported actions in help order.
var Actions = []Action{ActionNext, ActionPrev, ActionStop, ActionToggle}

func ParseAction(s string) (Action, error) {
	for _, a := range Actions {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown command %q", s)
}
