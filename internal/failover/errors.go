package failover

import (
	"errors"
	"fmt"
)

var (
	// ErrNoBrokersDefined is returned by Establish when the endpoint set is
	// empty. This is a configuration error; no connection attempt is made.
	ErrNoBrokersDefined = errors.New("stomp: no brokers defined")

	// ErrAllBrokersUnreachable is the failure kind carried by ConnectError
	// once every attempt has been exhausted.
	ErrAllBrokersUnreachable = errors.New("stomp: all brokers unreachable")

	// ErrNotConnected is returned when reading or writing without an
	// established transport.
	ErrNotConnected = errors.New("stomp: not connected")
)

// ConnectError reports an exhausted establishment run.
type ConnectError struct {
	Attempts int   // attempts made before giving up
	LastErr  error // error from the final attempt
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("%v after %d attempts (last error: %v)", ErrAllBrokersUnreachable, e.Attempts, e.LastErr)
}

// Is matches ErrAllBrokersUnreachable so callers can test the failure kind
// without naming this type.
func (e *ConnectError) Is(target error) bool {
	return target == ErrAllBrokersUnreachable
}

func (e *ConnectError) Unwrap() error {
	return e.LastErr
}
