package stomp

import (
	"errors"
	"fmt"

	"github.com/mqwire/stomp-go/frame"
	"github.com/mqwire/stomp-go/internal/failover"
)

// ErrConnectionLost reports a transport failure while talking to the
// broker: a read or write failed for a reason other than a protocol
// violation.
var ErrConnectionLost = errors.New("stomp: connection lost")

// Connection sentinels re-exported so callers can match them without
// reaching into internal packages.
var (
	ErrNotConnected          = failover.ErrNotConnected
	ErrNoBrokersDefined      = failover.ErrNoBrokersDefined
	ErrAllBrokersUnreachable = failover.ErrAllBrokersUnreachable
)

// Protocol sentinels re-exported from package frame.
var (
	ErrMalformedFrame  = frame.ErrMalformedFrame
	ErrMalformedHeader = frame.ErrMalformedHeader
	ErrPayloadDecode   = frame.ErrPayloadDecode
)

// BrokerError is an ERROR frame received from the broker, surfaced as an
// error. Message is the frame body; Frame keeps the full frame for callers
// that need its headers.
type BrokerError struct {
	Message string
	Frame   *frame.Frame
}

func (e *BrokerError) Error() string {
	return fmt.Sprintf("stomp: broker error: %s", e.Message)
}

// DeliveryError reports a payload that could not be handed to the broker.
type DeliveryError struct {
	Destination string
	Err         error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("stomp: delivering to %s: %v", e.Destination, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }
