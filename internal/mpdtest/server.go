// Package mpdtest runs a scripted MPD server on a unix socket, in the
// manner of net/http/httptest.
package mpdtest

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DefaultGreeting is the greeting a new Server sends.
const DefaultGreeting = "OK MPD 0.23.5\n"

// Hangup at the end of a scripted reply closes the connection once the
// rest of the reply is written.
const Hangup = "\x00hangup"

// Server answers each command with the next scripted reply for that
// command. The last reply of a script repeats once the others are used.
// Commands without a script get an "unknown command" ACK. An empty
// greeting makes the server hang up as soon as a client connects.
type Server struct {
	Path string

	dir string
	ln  net.Listener

	mu       sync.Mutex
	greeting string
	replies  map[string][]string
	received []string
	conns    map[net.Conn]struct{}
	wg       sync.WaitGroup
}

// NewServer starts a Server listening in a fresh temporary directory.
// Short paths keep clear of the unix socket path length limit.
func NewServer() *Server {
	dir, err := os.MkdirTemp("", "mpdtest")
	if err != nil {
		panic(fmt.Sprintf("mpdtest: %v", err))
	}
	path := filepath.Join(dir, "socket")
	ln, err := net.Listen("unix", path)
	if err != nil {
		os.RemoveAll(dir)
		panic(fmt.Sprintf("mpdtest: failed to listen on %s: %v", path, err))
	}
	s := &Server{
		Path:     path,
		greeting: DefaultGreeting,
		dir:      dir,
		ln:       ln,
		replies:  make(map[string][]string),
		conns:    make(map[net.Conn]struct{}),
	}
	s.wg.Add(1)
	go s.serve()
	return s
}

// SetGreeting replaces the greeting sent to new connections.
func (s *Server) SetGreeting(greeting string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.greeting = greeting
}

// Handle scripts the replies sent for command, in order.
func (s *Server) Handle(command string, replies ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies[command] = append(s.replies[command], replies...)
}

// Received returns the command lines read so far.
func (s *Server) Received() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.received...)
}

// Close stops the listener, drops open connections and removes the
// socket directory.
func (s *Server) Close() {
	s.ln.Close()
	s.mu.Lock()
	for conn := range s.conns {
		conn.Close()
	}
	s.mu.Unlock()
	s.wg.Wait()
	os.RemoveAll(s.dir)
}

func (s *Server) serve() {
	defer s.wg.Done()
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConn(conn)
		}()
	}
}

func (s *Server) handleConn(conn net.Conn) {
	s.mu.Lock()
	s.conns[conn] = struct{}{}
	greeting := s.greeting
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.conns, conn)
		s.mu.Unlock()
		conn.Close()
	}()
	if greeting == "" {
		return
	}
	if _, err := conn.Write([]byte(greeting)); err != nil {
		return
	}

	r := bufio.NewReader(conn)
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return
		}
		command := strings.TrimSuffix(line, "\n")
		if command == "close" {
			return
		}
		reply := s.reply(command)
		hangup := strings.HasSuffix(reply, Hangup)
		reply = strings.TrimSuffix(reply, Hangup)
		if _, err := conn.Write([]byte(reply)); err != nil || hangup {
			return
		}
	}
}

func (s *Server) reply(command string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.received = append(s.received, command)
	script := s.replies[command]
	if len(script) == 0 {
		return fmt.Sprintf("ACK [5@0] {%s} unknown command \"%s\"\n", command, command)
	}
	if len(script) > 1 {
		s.replies[command] = script[1:]
	}
	return script[0]
}
