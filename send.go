package stomp

import (
	"github.com/mqwire/stomp-go/frame"
)

// Send delivers a text payload to destination. Extra headers are appended
// to the SEND frame in the order given.
func (c *Client) Send(destination, body string, props ...frame.Header) error {
	defer c.meter("send")()
	return c.send(frame.NewTextMessage(body, props...), destination, "")
}

// SendBytes delivers an opaque binary payload. The frame carries a
// content-length header computed from the body, so NUL bytes survive.
func (c *Client) SendBytes(destination string, body []byte, props ...frame.Header) error {
	defer c.meter("send")()
	return c.send(frame.NewBytesMessage(body, props...), destination, "")
}

// SendMap delivers a string-keyed map encoded as JSON and tagged so the
// receiving side decodes it back into a map.
func (c *Client) SendMap(destination string, m map[string]any, props ...frame.Header) error {
	defer c.meter("send")()
	mm, err := frame.NewMapMessage(m, props...)
	if err != nil {
		return &DeliveryError{Destination: destination, Err: err}
	}
	return c.send(mm.Frame, destination, "")
}

// SendFrame delivers a caller-built frame. Only the destination header is
// stamped on; the command, body, and remaining headers go out verbatim.
func (c *Client) SendFrame(destination string, f *frame.Frame) error {
	defer c.meter("send")()
	return c.send(f, destination, "")
}

// send stamps destination and an optional transaction onto the frame and
// writes it. The exported wrappers record exactly one send observation
// each; send itself is unmetered.
func (c *Client) send(f *frame.Frame, destination, transaction string) error {
	f.Headers.Set(frame.HdrDestination, destination)
	if transaction != "" {
		f.Headers.Set(frame.HdrTransaction, transaction)
	}
	if err := c.writeFrame(f); err != nil {
		return &DeliveryError{Destination: destination, Err: err}
	}
	return nil
}
