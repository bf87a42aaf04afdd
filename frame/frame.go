package frame

// Client and server frame commands.
const (
	CmdConnect     = "CONNECT"
	CmdConnected   = "CONNECTED"
	CmdSend        = "SEND"
	CmdSubscribe   = "SUBSCRIBE"
	CmdUnsubscribe = "UNSUBSCRIBE"
	CmdBegin       = "BEGIN"
	CmdCommit      = "COMMIT"
	CmdAbort       = "ABORT"
	CmdAck         = "ACK"
	CmdNack        = "NACK"
	CmdDisconnect  = "DISCONNECT"
	CmdMessage     = "MESSAGE"
	CmdReceipt     = "RECEIPT"
	CmdError       = "ERROR"
)

// Well-known header names used by the client.
const (
	HdrDestination   = "destination"
	HdrContentLength = "content-length"
	HdrTransaction   = "transaction"
	HdrMessageID     = "message-id"
	HdrSubscription  = "subscription"
	HdrAck           = "ack"
	HdrLogin         = "login"
	HdrPasscode      = "passcode"
	HdrAmqMsgType    = "amq-msg-type"
)

// MapMessageType is the HdrAmqMsgType value that marks a frame body as the
// JSON encoding of a string-keyed map.
const MapMessageType = "MapMessage"

// Header is a single name/value pair.
type Header struct {
	Name  string
	Value string
}

// Headers is an ordered header collection. Names are unique within a frame;
// Set overwrites the value of an existing name in place, so the position of
// the first write is preserved. Iteration order is insertion order, and
// Encode writes headers in that order.
type Headers []Header

// Get returns the value for name and whether it is present.
func (h Headers) Get(name string) (string, bool) {
	for _, e := range h {
		if e.Name == name {
			return e.Value, true
		}
	}
	return "", false
}

// Contains reports whether name is present.
func (h Headers) Contains(name string) bool {
	_, ok := h.Get(name)
	return ok
}

// Set writes name to value, replacing the existing value if the name is
// already present (last write wins).
func (h *Headers) Set(name, value string) {
	for i, e := range *h {
		if e.Name == name {
			(*h)[i].Value = value
			return
		}
	}
	*h = append(*h, Header{Name: name, Value: value})
}

// Del removes name if present.
func (h *Headers) Del(name string) {
	for i, e := range *h {
		if e.Name == name {
			*h = append((*h)[:i], (*h)[i+1:]...)
			return
		}
	}
}

// Len returns the number of headers.
func (h Headers) Len() int { return len(h) }

// Clone returns an independent copy of h.
func (h Headers) Clone() Headers {
	if h == nil {
		return nil
	}
	out := make(Headers, len(h))
	copy(out, h)
	return out
}

// Frame is one protocol message unit: a command, an ordered header
// collection, and an optional body. A Frame is a plain data holder;
// construction never fails and no validation is performed. The headers are
// exposed for direct mutation (the session injects destination and
// transaction headers this way), so a Frame belongs to exactly one
// send or receive operation at a time. Passing the same Frame into two
// concurrent operations is unsafe.
type Frame struct {
	Command string
	Headers Headers
	Body    []byte
}

// New creates a frame with the given command and headers, in order.
// Duplicate names among props collapse to the last value.
func New(command string, props ...Header) *Frame {
	f := &Frame{Command: command}
	for _, p := range props {
		f.Headers.Set(p.Name, p.Value)
	}
	return f
}
