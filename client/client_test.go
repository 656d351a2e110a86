package client

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpdkeys/mpdkeys/client/mpd"
	"github.com/mpdkeys/mpdkeys/internal/mpdtest"
)

func dial(t *testing.T, srv *mpdtest.Server) *Client {
	t.Helper()
	c, err := Dial(srv.Path)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestNext(t *testing.T) {
	srv := mpdtest.NewServer()
	defer srv.Close()
	srv.Handle("next", "OK\n")
	srv.Handle("currentsong", "file: a.mp3\nArtist: X\nTitle: Y\nOK\n")
	srv.Handle("status", "volume: 80\nstate: play\nOK\n")

	c := dial(t, srv)
	reply, err := c.Next()
	require.NoError(t, err)
	assert.Equal(t, Reply{Text: "X - Y", State: mpd.Playing}, reply)
	assert.Equal(t, []string{"next", "currentsong", "status"}, srv.Received())
}

func TestPreviousAndStop(t *testing.T) {
	srv := mpdtest.NewServer()
	defer srv.Close()
	srv.Handle("previous", "OK\n")
	srv.Handle("stop", "OK\n")
	srv.Handle("currentsong", "Artist: A\nTitle: B\nOK\n")
	srv.Handle("status", "state: play\nOK\n", "state: stop\nOK\n")

	c := dial(t, srv)
	reply, err := c.Previous()
	require.NoError(t, err)
	assert.Equal(t, Reply{Text: "A - B", State: mpd.Playing}, reply)

	reply, err = c.Stop()
	require.NoError(t, err)
	assert.Equal(t, Reply{Text: "A - B", State: mpd.Stopped}, reply)

	assert.Equal(t, []string{
		"previous", "currentsong", "status",
		"stop", "currentsong", "status",
	}, srv.Received())
}

func TestRunAck(t *testing.T) {
	srv := mpdtest.NewServer()
	defer srv.Close()
	srv.Handle("play", "ACK [5@0] {play} failed to play\n")
	srv.Handle("status", "state: stop\nOK\n")

	c := dial(t, srv)
	reply, err := c.Run("play")
	require.NoError(t, err)
	assert.Equal(t, Reply{Text: "failed to play", State: mpd.Stopped, Failed: true}, reply)
	// no currentsong query after a refusal
	assert.Equal(t, []string{"play", "status"}, srv.Received())
}

func TestRunMalformedAck(t *testing.T) {
	srv := mpdtest.NewServer()
	defer srv.Close()
	srv.Handle("next", "ACK [5@0] next failed\n")

	c := dial(t, srv)
	_, err := c.Next()
	assert.True(t, errors.Is(err, mpd.ErrProtocol), "got %v", err)
}

func TestRunUnrecognizedTerminator(t *testing.T) {
	srv := mpdtest.NewServer()
	defer srv.Close()
	// The server hangs up after a line that is neither OK nor ACK.
	srv.Handle("next", "WHAT\n"+mpdtest.Hangup)

	c := dial(t, srv)
	reply, err := c.Next()
	assert.True(t, errors.Is(err, mpd.ErrProtocol), "got %v", err)
	assert.Equal(t, Reply{}, reply)
}

func TestRunParseError(t *testing.T) {
	srv := mpdtest.NewServer()
	defer srv.Close()
	srv.Handle("next", "OK\n")
	srv.Handle("currentsong", "Artist: X\nTitle: Y\nOK\n")
	srv.Handle("status", "volume: abc\nstate: play\nOK\n")

	c := dial(t, srv)
	reply, err := c.Next()
	assert.True(t, errors.Is(err, mpd.ErrParse), "got %v", err)
	assert.Equal(t, Reply{}, reply)
}

func TestToggleCommand(t *testing.T) {
	tests := []struct {
		state mpd.State
		want  string
	}{
		{mpd.Stopped, "play"},
		{mpd.Paused, "pause"},
		{mpd.Playing, "pause"},
	}
	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, ToggleCommand(tt.state))
		})
	}
}

func TestToggle(t *testing.T) {
	tests := []struct {
		before  string
		command string
		after   string
		want    mpd.State
	}{
		{"stop", "play", "play", mpd.Playing},
		{"pause", "pause", "play", mpd.Playing},
		{"play", "pause", "pause", mpd.Paused},
	}
	for _, tt := range tests {
		t.Run(tt.before, func(t *testing.T) {
			srv := mpdtest.NewServer()
			defer srv.Close()
			srv.Handle("status", "state: "+tt.before+"\nOK\n", "state: "+tt.after+"\nOK\n")
			srv.Handle(tt.command, "OK\n")
			srv.Handle("currentsong", "Artist: X\nTitle: Y\nOK\n")

			c := dial(t, srv)
			reply, err := c.Toggle()
			require.NoError(t, err)
			assert.Equal(t, Reply{Text: "X - Y", State: tt.want}, reply)
			assert.Equal(t, []string{"status", tt.command, "currentsong", "status"}, srv.Received())
		})
	}
}

func TestDo(t *testing.T) {
	srv := mpdtest.NewServer()
	defer srv.Close()
	srv.Handle("status", "state: play\nOK\n")
	srv.Handle("currentsong", "Artist: X\nTitle: Y\nOK\n")
	for _, cmd := range []string{"next", "previous", "stop", "pause"} {
		srv.Handle(cmd, "OK\n")
	}

	c := dial(t, srv)
	for _, a := range Actions {
		_, err := c.Do(a)
		require.NoError(t, err, a)
	}
	_, err := c.Do(Action("shuffle"))
	assert.Error(t, err)

	assert.Equal(t, []string{
		"next", "currentsong", "status",
		"previous", "currentsong", "status",
		"stop", "currentsong", "status",
		"status", "pause", "currentsong", "status",
	}, srv.Received())
}

func TestParseAction(t *testing.T) {
	a, err := ParseAction("prev")
	require.NoError(t, err)
	assert.Equal(t, ActionPrev, a)

	_, err = ParseAction("previous")
	assert.Error(t, err)
}
