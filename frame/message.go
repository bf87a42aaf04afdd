package frame

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Message is one decoded inbound frame. Decode classifies every frame
// exactly once: the concrete type is *Frame for ordinary traffic and
// *MapMessage when the HdrAmqMsgType header marks the body as a JSON map.
// Callers branch with a type switch, or use Wire when only the raw frame
// matters.
type Message interface {
	// Wire returns the underlying wire frame.
	Wire() *Frame

	message()
}

func (*Frame) message()      {}
func (*MapMessage) message() {}

// Wire returns f itself.
func (f *Frame) Wire() *Frame { return f }

// Wire returns the frame the map was decoded from.
func (m *MapMessage) Wire() *Frame { return m.Frame }

// MapMessage pairs a frame with its JSON-decoded map body. On the outbound
// path NewMapMessage fills both sides; on the inbound path Decode builds it
// from a received frame carrying the HdrAmqMsgType marker.
type MapMessage struct {
	Frame *Frame
	Map   map[string]any
}

// NewTextMessage creates a SEND frame carrying body and the given headers.
func NewTextMessage(body string, props ...Header) *Frame {
	f := New(CmdSend, props...)
	f.Body = []byte(body)
	return f
}

// NewBytesMessage creates a SEND frame with an opaque byte body. The
// content-length header is computed from the body and overrides any value
// supplied in props; it is not independently settable.
func NewBytesMessage(body []byte, props ...Header) *Frame {
	f := New(CmdSend, props...)
	f.Body = body
	f.Headers.Set(HdrContentLength, strconv.Itoa(len(body)))
	return f
}

// NewMapMessage creates a SEND frame whose body is the JSON encoding of m,
// marked with the HdrAmqMsgType header. Fails only if m cannot be encoded
// as JSON.
func NewMapMessage(m map[string]any, props ...Header) (*MapMessage, error) {
	body, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encoding map message body: %w", err)
	}
	f := New(CmdSend, props...)
	f.Headers.Set(HdrAmqMsgType, MapMessageType)
	f.Body = body
	return &MapMessage{Frame: f, Map: m}, nil
}

// promote wraps f into a MapMessage when its headers mark the body as a
// JSON map. A marked body that does not decode is a protocol error, never
// silently ignored.
func promote(f *Frame) (Message, error) {
	v, ok := f.Headers.Get(HdrAmqMsgType)
	if !ok || v != MapMessageType {
		return f, nil
	}
	var m map[string]any
	if err := json.Unmarshal(f.Body, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPayloadDecode, err)
	}
	return &MapMessage{Frame: f, Map: m}, nil
}
