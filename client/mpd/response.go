package mpd

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// MaxResponseSize bounds the bytes buffered for a single response.
const MaxResponseSize = 64 << 10

// Response is one framed server reply: the field lines followed by
// either "OK" (Ack is nil) or an ACK line.
type Response struct {
	Lines []string
	Ack   *AckError
}

// OK reports whether the response ended with "OK".
func (r *Response) OK() bool { return r.Ack == nil }

// Field is one "key: value" line.
type Field struct {
	Key   string
	Value string
}

// splitField splits on the first ':' only. A line without ':' gives an
// empty Field.
func splitField(line string) Field {
	key, value, ok := strings.Cut(line, ":")
	if !ok {
		return Field{}
	}
	return Field{Key: strings.TrimSpace(key), Value: strings.TrimSpace(value)}
}

// Fields returns the field lines of r split into keys and values.
func (r *Response) Fields() []Field {
	fields := make([]Field, 0, len(r.Lines))
	for _, line := range r.Lines {
		fields = append(fields, splitField(line))
	}
	return fields
}

// lineReader reads newline-terminated lines while keeping count of the
// bytes consumed against a budget.
type lineReader struct {
	r      *bufio.Reader
	budget int
}

func (lr *lineReader) readLine(op string) (string, error) {
	var line []byte
	for {
		frag, err := lr.r.ReadSlice('\n')
		lr.budget -= len(frag)
		if lr.budget < 0 {
			return "", errorf(KindProtocol, op, "response exceeds %d bytes", MaxResponseSize)
		}
		line = append(line, frag...)
		if err == nil {
			break
		}
		if err == bufio.ErrBufferFull {
			continue
		}
		if errors.Is(err, io.EOF) && lr.budget < MaxResponseSize {
			// The server stopped in the middle of a response.
			return "", errorf(KindProtocol, op, "unrecognized server response: %w", io.ErrUnexpectedEOF)
		}
		return "", &Error{Kind: KindTransport, Op: op, Err: err}
	}
	line = line[:len(line)-1]
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}
	return string(line), nil
}

// readResponse accumulates lines from r until a terminator line.
func readResponse(r *bufio.Reader, op string) (*Response, error) {
	lr := &lineReader{r: r, budget: MaxResponseSize}
	resp := &Response{}
	for {
		line, err := lr.readLine(op)
		if err != nil {
			return nil, err
		}
		if line == "OK" {
			return resp, nil
		}
		if strings.HasPrefix(line, "ACK") {
			ack, err := parseAck(line)
			if err != nil {
				return nil, err
			}
			resp.Ack = ack
			return resp, nil
		}
		resp.Lines = append(resp.Lines, line)
	}
}
