package mpd

import (
	"strconv"
	"strings"
)

// State is the playback state reported in the "state" field.
type State int

const (
	Stopped State = iota
	Paused
	Playing
)

func (s State) String() string {
	switch s {
	case Paused:
		return "pause"
	case Playing:
		return "play"
	}
	return "stop"
}

// Status is the result of the "status" command.
type Status struct {
	Volume         int
	Repeat         int
	Random         int
	Single         int
	Consume        int
	Partition      string
	Playlist       int
	PlaylistLength int
	MixRampDB      float64
	State          State
	Song           int
	SongID         int
	Time           string // "elapsed:total" in whole seconds
	Elapsed        float64
	Bitrate        int
	Duration       float64
	Audio          string // "samplerate:bits:channels"
	NextSong       int
	NextSongID     int
}

func newStatus() Status {
	return Status{Volume: 100, State: Stopped}
}

var statusFields = map[string]func(*Status, string) error{
	"volume":         func(s *Status, v string) error { return parseInt(&s.Volume, v) },
	"repeat":         func(s *Status, v string) error { return parseInt(&s.Repeat, v) },
	"random":         func(s *Status, v string) error { return parseInt(&s.Random, v) },
	"single":         func(s *Status, v string) error { return parseInt(&s.Single, v) },
	"consume":        func(s *Status, v string) error { return parseInt(&s.Consume, v) },
	"partition":      func(s *Status, v string) error { s.Partition = v; return nil },
	"playlist":       func(s *Status, v string) error { return parseInt(&s.Playlist, v) },
	"playlistlength": func(s *Status, v string) error { return parseInt(&s.PlaylistLength, v) },
	"mixrampdb":      func(s *Status, v string) error { return parseFloat(&s.MixRampDB, v) },
	"state":          func(s *Status, v string) error { s.State = parseState(v, s.State); return nil },
	"song":           func(s *Status, v string) error { return parseInt(&s.Song, v) },
	"songid":         func(s *Status, v string) error { return parseInt(&s.SongID, v) },
	"time":           func(s *Status, v string) error { s.Time = v; return nil },
	"elapsed":        func(s *Status, v string) error { return parseFloat(&s.Elapsed, v) },
	"bitrate":        func(s *Status, v string) error { return parseInt(&s.Bitrate, v) },
	"duration":       func(s *Status, v string) error { return parseFloat(&s.Duration, v) },
	"audio":          func(s *Status, v string) error { s.Audio = v; return nil },
	"nextsong":       func(s *Status, v string) error { return parseInt(&s.NextSong, v) },
	"nextsongid":     func(s *Status, v string) error { return parseInt(&s.NextSongID, v) },
}

// parseStatus builds a Status from the field lines of a response.
// Unknown keys are skipped; a malformed number discards the record.
func parseStatus(fields []Field) (Status, error) {
	s := newStatus()
	for _, f := range fields {
		set, ok := statusFields[f.Key]
		if !ok {
			continue
		}
		if err := set(&s, f.Value); err != nil {
			return Status{}, &Error{Kind: KindParse, Op: "status " + f.Key, Err: err}
		}
	}
	return s, nil
}

func parseState(v string, def State) State {
	switch v {
	case "stop":
		return Stopped
	case "pause":
		return Paused
	case "play":
		return Playing
	}
	return def
}

func parseInt(dst *int, v string) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return err
	}
	*dst = n
	return nil
}

func parseFloat(dst *float64, v string) error {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return err
	}
	*dst = f
	return nil
}

// parseTrack accepts both "3" and "3/12".
func parseTrack(dst *int, v string) error {
	n, _, _ := strings.Cut(v, "/")
	return parseInt(dst, n)
}
