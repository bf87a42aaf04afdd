// Package failover owns the broker transport for the stomp-go client.
//
// This package includes:
//   - ParseURI: turns a tcp:// or failover:(...) connection string into an
//     ordered endpoint list, connection parameters, and default credentials
//   - Manager: selects an endpoint (round-robin, or uniform-random when
//     randomize is set), dials it with the configured attempt bound, and
//     owns the resulting socket until Close or Shutdown
//
// The manager is the only component that opens or closes the socket. The
// session reads and writes through it; soTimeout is re-applied before every
// I/O operation, and connectionTimeout bounds each dial attempt. Failed
// attempts are retried against the next endpoint up to a fixed ceiling,
// after which the run fails with ErrAllBrokersUnreachable. Reconnection
// after an established session drops is the caller's decision, not this
// package's.
package failover
