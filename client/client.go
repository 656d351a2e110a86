package client

import (
	"fmt"
	"log/slog"

	"github.com/mpdkeys/mpdkeys/client/mpd"
)

type Client struct {
	client *mpd.Client
	log    *slog.Logger
}

// Dial connects to the MPD control socket at path.
func Dial(path string) (*Client, error) {
	c, err := mpd.Dial(path)
	if err != nil {
		return nil, err
	}
	return New(c), nil
}

// New wraps an established connection.
func New(c *mpd.Client) *Client {
	return &Client{client: c, log: slog.Default()}
}

// WithLogger sets the logger used for command tracing.
func (c *Client) WithLogger(l *slog.Logger) *Client {
	c.log = l
	return c
}

func (c *Client) Close() error {
	return c.client.Close()
}

// describe formats the song the way it is shown to the user.
func describe(s mpd.Song) string {
	return fmt.Sprintf("%s - %s", s.Artist, s.Title)
}

// Run sends command and builds the reply from the server's answer. On
// success the reply text describes the current song; on an ACK it is the
// server's message. Either way the state comes from a fresh status query.
func (c *Client) Run(command string) (Reply, error) {
	resp, err := c.client.Command(command)
	if err != nil {
		return Reply{}, err
	}

	var reply Reply
	if resp.OK() {
		song, err := c.client.CurrentSong()
		if err != nil {
			return Reply{}, err
		}
		reply.Text = describe(song)
	} else {
		c.log.Debug("command refused", "command", command, "code", resp.Ack.Code, "message", resp.Ack.Message)
		reply.Text = resp.Ack.Message
		reply.Failed = true
	}

	status, err := c.client.Status()
	if err != nil {
		return Reply{}, err
	}
	reply.State = status.State

	c.log.Debug("command done", "command", command, "reply", reply.Text, "state", reply.State)
	return reply, nil
}

// Next skips to the next song in the playlist.
func (c *Client) Next() (Reply, error) {
	return c.Run("next")
}

// Previous goes back to the previous song in the playlist.
func (c *Client) Previous() (Reply, error) {
	return c.Run("previous")
}

// Stop stops playback. The reply names the song it stopped on.
func (c *Client) Stop() (Reply, error) {
	return c.Run("stop")
}

// ToggleCommand picks the command that flips playback from state.
// "pause" toggles between playing and paused; only "play" starts
// playback from a stopped server.
func ToggleCommand(state mpd.State) string {
	if state == mpd.Stopped {
		return "play"
	}
	return "pause"
}

// Toggle pauses if playing and plays otherwise.
func (c *Client) Toggle() (Reply, error) {
	status, err := c.client.Status()
	if err != nil {
		return Reply{}, err
	}
	return c.Run(ToggleCommand(status.State))
}

// Do runs the command behind a.
func (c *Client) Do(a Action) (Reply, error) {
	switch a {
	case ActionNext:
		return c.Next()
	case ActionPrev:
		return c.Previous()
	case ActionStop:
		return c.Stop()
	case ActionToggle:
		return c.Toggle()
	}
	return Reply{}, fmt.Errorf("unknown action %q", string(a))
}
