// Package frame provides the STOMP frame model and wire codec for the
// stomp-go client.
//
// This package includes:
//   - Frame: one protocol message unit (command, ordered headers, body)
//   - Headers: an ordered name/value collection with last-write-wins updates
//   - Message constructors: NewTextMessage, NewBytesMessage, NewMapMessage
//   - Encode: serializes a Frame into its NUL-terminated wire form
//   - Decode: reads one frame from a byte source and classifies it once,
//     yielding either a plain *Frame or a *MapMessage
//
// Wire format, bit-exact:
//
//	<COMMAND>\n
//	<header-name>: <header-value>\n
//	...
//	\n
//	<body bytes>\0
//
// Header values are written verbatim with no escaping. On decode the first
// colon on a line separates name from value, and surrounding whitespace is
// trimmed from header values and from the body. A newline inside a value or
// a NUL inside a body therefore corrupts the framing, and round trips are
// only guaranteed for values without colons or newlines and bodies already
// trimmed. This is a deliberate property of the wire format shared with
// broker implementations speaking this dialect, and is kept for
// compatibility, not corrected here. Callers that need such bytes must
// encode them at the application layer.
package frame
