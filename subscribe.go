package stomp

import (
	"fmt"

	"github.com/mqwire/stomp-go/frame"
)

// Subscribe registers for messages on destination. When no ack header is
// given the subscription defaults to ack: client, so messages must be
// acknowledged explicitly. The destination is tracked in the subscription
// set only after the frame is written.
func (c *Client) Subscribe(destination string, props ...frame.Header) error {
	f := frame.New(frame.CmdSubscribe, props...)
	f.Headers.Set(frame.HdrDestination, destination)
	if !f.Headers.Contains(frame.HdrAck) {
		f.Headers.Set(frame.HdrAck, "client")
	}
	if err := c.writeFrame(f); err != nil {
		return err
	}

	c.mu.Lock()
	c.subs[destination] = frame.Headers(props).Clone()
	c.mu.Unlock()
	return nil
}

// Unsubscribe cancels the subscription on destination and drops it from
// the subscription set. A destination that was never subscribed still gets
// the frame; the broker decides what that means.
func (c *Client) Unsubscribe(destination string, props ...frame.Header) error {
	f := frame.New(frame.CmdUnsubscribe, props...)
	f.Headers.Set(frame.HdrDestination, destination)
	if err := c.writeFrame(f); err != nil {
		return err
	}

	c.mu.Lock()
	delete(c.subs, destination)
	c.mu.Unlock()
	return nil
}

// Subscriptions returns a copy of the active subscription set: each
// destination mapped to the extra headers given at subscribe time, nil
// when there were none.
func (c *Client) Subscriptions() map[string]frame.Headers {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]frame.Headers, len(c.subs))
	for d, h := range c.subs {
		out[d] = h.Clone()
	}
	return out
}

// Ack acknowledges the message carrying messageID. Extra headers, a
// transaction id for instance, are appended to the ACK frame.
func (c *Client) Ack(messageID string, props ...frame.Header) error {
	f := frame.New(frame.CmdAck, props...)
	f.Headers.Set(frame.HdrMessageID, messageID)
	return c.writeFrame(f)
}

// AckFrame acknowledges a received message. The ACK carries the received
// frame's headers verbatim, message-id and subscription included, with any
// extra headers applied on top.
func (c *Client) AckFrame(msg frame.Message, props ...frame.Header) error {
	w := msg.Wire()
	if !w.Headers.Contains(frame.HdrMessageID) {
		return fmt.Errorf("stomp: frame has no %s header", frame.HdrMessageID)
	}
	f := &frame.Frame{Command: frame.CmdAck, Headers: w.Headers.Clone()}
	for _, p := range props {
		f.Headers.Set(p.Name, p.Value)
	}
	return c.writeFrame(f)
}
