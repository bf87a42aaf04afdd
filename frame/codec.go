package frame

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// frameTerminator ends every frame on the wire. It is never part of the
// payload.
const frameTerminator = 0x00

// Encode serializes f into its wire form: the command line, one line per
// header in iteration order, a blank line, the body bytes, and a single NUL
// terminator. Header values are written verbatim; see the package
// documentation for the escaping caveat.
func Encode(f *Frame) []byte {
	var buf bytes.Buffer
	buf.WriteString(f.Command)
	buf.WriteByte('\n')
	for _, h := range f.Headers {
		buf.WriteString(h.Name)
		buf.WriteString(": ")
		buf.WriteString(h.Value)
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.Write(f.Body)
	buf.WriteByte(frameTerminator)
	return buf.Bytes()
}

// Decode reads single bytes from r until the frame terminator, parses the
// accumulated payload, and classifies the result once: frames whose headers
// mark the body as a JSON map come back as *MapMessage, everything else as
// *Frame. An ERROR command decodes successfully; converting it into a
// broker failure is the reader's concern.
//
// Read failures (including a stream that closes before the terminator) are
// returned as-is so the caller can tell a dead transport from a malformed
// frame: ErrMalformedFrame and ErrMalformedHeader mark payloads that do not
// parse, every other error came from r.
func Decode(r io.ByteReader) (Message, error) {
	payload, err := readPayload(r)
	if err != nil {
		return nil, err
	}
	f, err := parse(payload)
	if err != nil {
		return nil, err
	}
	return promote(f)
}

// readPayload accumulates bytes until the frame terminator, which is
// consumed but not returned.
func readPayload(r io.ByteReader) ([]byte, error) {
	var payload []byte
	for {
		b, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		if b == frameTerminator {
			return payload, nil
		}
		payload = append(payload, b)
	}
}

// parse splits a frame payload into command, headers, and body.
func parse(payload []byte) (*Frame, error) {
	head, body, ok := bytes.Cut(payload, []byte("\n\n"))
	if !ok {
		return nil, fmt.Errorf("%w: missing header/body separator", ErrMalformedFrame)
	}

	lines := strings.Split(string(head), "\n")
	f := &Frame{Command: lines[0]}
	for _, line := range lines[1:] {
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMalformedHeader, line)
		}
		f.Headers.Set(name, strings.TrimSpace(value))
	}

	if body = bytes.TrimSpace(body); len(body) > 0 {
		f.Body = body
	}
	return f, nil
}
