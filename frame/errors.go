package frame

import "errors"

var (
	// ErrMalformedFrame is returned when a decoded payload has no blank-line
	// separator between the header block and the body.
	ErrMalformedFrame = errors.New("stomp: malformed frame")

	// ErrMalformedHeader is returned when a header line carries no colon.
	ErrMalformedHeader = errors.New("stomp: malformed header")

	// ErrPayloadDecode is returned when a frame marked as a MapMessage does
	// not carry a valid JSON object body.
	ErrPayloadDecode = errors.New("stomp: map message payload does not decode")
)
