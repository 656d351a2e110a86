// Copyright 2009 The GoMPD Authors. All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file.

// Package mpd provides the client side interface to MPD (Music Player Daemon).
// The protocol reference can be found at http://www.musicpd.org/doc/protocol/index.html
//
// A Client holds one connection and is not safe for concurrent use: every
// command is written and its whole response read before the next one is
// sent. Reads block without a timeout.
package mpd

import (
	"fmt"
	"io"
	"net"
	"net/textproto"
	"strings"
)

const greeting = "OK MPD"

// Client represents a client connection to a MPD server.
type Client struct {
	text    *textproto.Conn
	version string
}

// Dial connects to the MPD control socket at path.
func Dial(path string) (*Client, error) {
	return DialNetwork("unix", path)
}

// DialNetwork connects to MPD listening on address addr (e.g. "127.0.0.1:6600")
// on network network (e.g. "tcp").
func DialNetwork(network, addr string) (*Client, error) {
	conn, err := net.Dial(network, addr)
	if err != nil {
		return nil, &Error{Kind: KindConnection, Op: "dial " + addr, Err: err}
	}
	c, err := NewClient(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return c, nil
}

// NewClient reads the server greeting from conn and returns a Client
// ready for commands.
func NewClient(conn io.ReadWriteCloser) (*Client, error) {
	text := textproto.NewConn(conn)
	lr := &lineReader{r: text.R, budget: MaxResponseSize}
	line, err := lr.readLine("greeting")
	if err != nil {
		if e, ok := err.(*Error); ok {
			err = e.Err
		}
		return nil, &Error{Kind: KindConnection, Op: "greeting", Err: err}
	}
	if !strings.HasPrefix(line, greeting) {
		return nil, errorf(KindConnection, "greeting", "no greeting: %q", line)
	}
	return &Client{
		text:    text,
		version: strings.TrimSpace(strings.TrimPrefix(line, greeting)),
	}, nil
}

// Version returns the protocol version announced in the greeting.
func (c *Client) Version() string { return c.version }

// We are reimplemeting Cmd() and PrintfLine() from textproto here, because
// the original functions append CR-LF to the end of commands. This behavior
// violates the MPD protocol: Commands must be terminated by '\n'.
func (c *Client) cmd(format string, args ...interface{}) (uint, error) {
	id := c.text.Next()
	c.text.StartRequest(id)
	defer c.text.EndRequest(id)
	if err := c.printfLine(format, args...); err != nil {
		return 0, &Error{Kind: KindTransport, Op: "write", Err: err}
	}
	return id, nil
}

func (c *Client) printfLine(format string, args ...interface{}) error {
	fmt.Fprintf(c.text.W, format, args...)
	c.text.W.WriteByte('\n')
	return c.text.W.Flush()
}

// Close terminates the connection with MPD.
func (c *Client) Close() (err error) {
	if c.text != nil {
		c.printfLine("close")
		err = c.text.Close()
		c.text = nil
	}
	return
}

// Command sends name on its own line and reads the whole response. A
// server refusal is reported in Response.Ack, not as an error.
func (c *Client) Command(name string) (*Response, error) {
	if c.text == nil {
		return nil, errorf(KindTransport, name, "connection closed")
	}
	id, err := c.cmd("%s", name)
	if err != nil {
		return nil, err
	}
	c.text.StartResponse(id)
	defer c.text.EndResponse(id)
	return readResponse(c.text.R, name)
}

// fields runs a query command and returns its field lines, turning an
// ACK into an error.
func (c *Client) fields(name string) ([]Field, error) {
	resp, err := c.Command(name)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, resp.Ack
	}
	return resp.Fields(), nil
}

// Status returns information about the current status of MPD.
func (c *Client) Status() (Status, error) {
	fields, err := c.fields("status")
	if err != nil {
		return Status{}, err
	}
	return parseStatus(fields)
}

// CurrentSong returns information about the current song in the playlist.
func (c *Client) CurrentSong() (Song, error) {
	fields, err := c.fields("currentsong")
	if err != nil {
		return Song{}, err
	}
	return parseSong(fields)
}

// Ping sends a no-op message to MPD.
func (c *Client) Ping() error {
	resp, err := c.Command("ping")
	if err != nil {
		return err
	}
	if !resp.OK() {
		return resp.Ack
	}
	return nil
}
