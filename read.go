package stomp

import (
	"errors"
	"fmt"

	"github.com/mqwire/stomp-go/frame"
)

// ReadFrame reads the next frame from the broker. MESSAGE frames tagged
// with the map marker header come back as *frame.MapMessage with the body
// decoded; everything else is the raw *frame.Frame. An ERROR frame is
// surfaced as a BrokerError. Read failures that are not protocol
// violations map to ErrConnectionLost, soTimeout expiry included.
func (c *Client) ReadFrame() (frame.Message, error) {
	msg, err := frame.Decode(c.mgr)
	if err != nil {
		return nil, classifyReadError(err)
	}
	f := msg.Wire()
	c.logger.Debug("frame read", "command", f.Command)
	if f.Command == frame.CmdError {
		return nil, &BrokerError{Message: string(f.Body), Frame: f}
	}
	return msg, nil
}

// classifyReadError keeps protocol and state errors as they are and wraps
// everything else as ErrConnectionLost.
func classifyReadError(err error) error {
	switch {
	case errors.Is(err, frame.ErrMalformedFrame),
		errors.Is(err, frame.ErrMalformedHeader),
		errors.Is(err, frame.ErrPayloadDecode),
		errors.Is(err, ErrNotConnected):
		return err
	default:
		return fmt.Errorf("%w: %w", ErrConnectionLost, err)
	}
}
