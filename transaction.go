package stomp

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/mqwire/stomp-go/frame"
)

// Begin opens the named transaction on the broker.
func (c *Client) Begin(transaction string) error {
	return c.txFrame(frame.CmdBegin, transaction)
}

// Commit commits the named transaction.
func (c *Client) Commit(transaction string) error {
	return c.txFrame(frame.CmdCommit, transaction)
}

// Abort rolls back the named transaction.
func (c *Client) Abort(transaction string) error {
	return c.txFrame(frame.CmdAbort, transaction)
}

// txFrame writes a transaction control frame. The transaction header is
// omitted when the id is empty.
func (c *Client) txFrame(command, transaction string) error {
	f := frame.New(command)
	if transaction != "" {
		f.Headers.Set(frame.HdrTransaction, transaction)
	}
	return c.writeFrame(f)
}

type txState int

const (
	txActive txState = iota
	txCommitted
	txAborted
)

// Transaction scopes sends and acknowledgments to one broker transaction.
// Obtain one from BeginTx and finish it with Commit or Abort; a finished
// transaction rejects further use. A Transaction is not safe for
// concurrent use.
type Transaction struct {
	c     *Client
	id    string
	state txState
}

// BeginTx opens a broker transaction under a fresh id and returns the
// handle scoped to it.
func (c *Client) BeginTx() (*Transaction, error) {
	id := uuid.New().String()
	if err := c.Begin(id); err != nil {
		return nil, err
	}
	return &Transaction{c: c, id: id}, nil
}

// ID returns the transaction id stamped on every frame in this
// transaction.
func (t *Transaction) ID() string { return t.id }

// Send delivers a text payload within the transaction.
func (t *Transaction) Send(destination, body string, props ...frame.Header) error {
	if err := t.active(); err != nil {
		return err
	}
	defer t.c.meter("send")()
	return t.c.send(frame.NewTextMessage(body, props...), destination, t.id)
}

// SendFrame delivers a caller-built frame within the transaction.
func (t *Transaction) SendFrame(destination string, f *frame.Frame) error {
	if err := t.active(); err != nil {
		return err
	}
	defer t.c.meter("send")()
	return t.c.send(f, destination, t.id)
}

// Ack acknowledges the message carrying messageID within the transaction.
func (t *Transaction) Ack(messageID string) error {
	if err := t.active(); err != nil {
		return err
	}
	return t.c.Ack(messageID,
		frame.Header{Name: frame.HdrTransaction, Value: t.id})
}

// AckFrame acknowledges a received message within the transaction.
func (t *Transaction) AckFrame(msg frame.Message) error {
	if err := t.active(); err != nil {
		return err
	}
	return t.c.AckFrame(msg,
		frame.Header{Name: frame.HdrTransaction, Value: t.id})
}

// Commit commits the transaction. The handle is finished once the COMMIT
// frame is written.
func (t *Transaction) Commit() error {
	if err := t.active(); err != nil {
		return err
	}
	if err := t.c.Commit(t.id); err != nil {
		return err
	}
	t.state = txCommitted
	return nil
}

// Abort rolls the transaction back. Aborting an already-aborted
// transaction is a no-op; aborting after a commit is an error.
func (t *Transaction) Abort() error {
	if t.state == txAborted {
		return nil
	}
	if t.state == txCommitted {
		return fmt.Errorf("stomp: transaction %s already committed", t.id)
	}
	if err := t.c.Abort(t.id); err != nil {
		return err
	}
	t.state = txAborted
	return nil
}

func (t *Transaction) active() error {
	switch t.state {
	case txCommitted:
		return fmt.Errorf("stomp: transaction %s already committed", t.id)
	case txAborted:
		return fmt.Errorf("stomp: transaction %s already aborted", t.id)
	}
	return nil
}
