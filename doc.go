// Package stomp is a client for STOMP text-oriented message brokers. It
// speaks the NUL-terminated frame protocol over TCP and fails over across
// a set of candidate endpoints.
//
// A Client is built from a connection URI, either a single endpoint or a
// failover list:
//
//	c, err := stomp.NewClient("failover:(tcp://a:61613,tcp://b:61613)")
//	if err != nil {
//		...
//	}
//	defer c.Disconnect()
//
//	c.Subscribe("/queue/orders")
//	c.Send("/queue/orders", "hello")
//
//	msg, err := c.ReadFrame()
//
// Frames and their map/bytes/text specializations live in package frame;
// timing observations go to a stats.Recorder.
package stomp
