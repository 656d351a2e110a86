package mpd

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind classifies the errors returned by this package.
type Kind int

const (
	KindConnection Kind = iota + 1 // socket unreachable or bad greeting
	KindTransport                  // read/write failure mid-session
	KindProtocol                   // response does not match the wire format
	KindParse                      // field value of the wrong type
)

func (k Kind) String() string {
	switch k {
	case KindConnection:
		return "connection error"
	case KindTransport:
		return "transport error"
	case KindProtocol:
		return "protocol error"
	case KindParse:
		return "parse error"
	}
	return "error"
}

// Error is returned for every failure except server refusals, which
// are reported as *AckError.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

// Sentinels for use with errors.Is.
var (
	ErrConnection = &Error{Kind: KindConnection}
	ErrTransport  = &Error{Kind: KindTransport}
	ErrProtocol   = &Error{Kind: KindProtocol}
	ErrParse      = &Error{Kind: KindParse}
)

func (e *Error) Error() string {
	s := "mpd: " + e.Kind.String()
	if e.Op != "" {
		s += ": " + e.Op
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func errorf(kind Kind, op, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// AckError is a failure reported by the server:
//
//	ACK [<code>@<index>] {<command>} <message>
type AckError struct {
	Code    int
	Index   int
	Command string
	Message string
}

func (e *AckError) Error() string {
	return fmt.Sprintf("mpd: %s: %s (code %d)", e.Command, e.Message, e.Code)
}

// parseAck splits an ACK line. The message begins one character after
// the first '}' following the '{' of the command bracket.
func parseAck(line string) (*AckError, error) {
	open := strings.IndexByte(line, '{')
	if open < 0 {
		return nil, errorf(KindProtocol, "ack", "missing '{' in %q", line)
	}
	n := strings.IndexByte(line[open:], '}')
	if n < 0 {
		return nil, errorf(KindProtocol, "ack", "missing '}' in %q", line)
	}
	end := open + n

	ack := &AckError{Command: line[open+1 : end]}
	if end+2 <= len(line) {
		ack.Message = line[end+2:]
	}

	// [code@index] is informational; malformed values stay zero.
	if l, r := strings.IndexByte(line, '['), strings.IndexByte(line, ']'); l >= 0 && r > l && r < open {
		if code, index, ok := strings.Cut(line[l+1:r], "@"); ok {
			ack.Code, _ = strconv.Atoi(code)
			ack.Index, _ = strconv.Atoi(index)
		}
	}
	return ack, nil
}
