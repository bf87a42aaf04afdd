package stomp

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mqwire/stomp-go/frame"
)

func TestTransactionControlFrames(t *testing.T) {
	c, conn := newTestClient(t)

	require.NoError(t, c.Begin("t1"))
	require.NoError(t, c.Commit("t1"))
	require.NoError(t, c.Abort("t2"))
	assert.Equal(t,
		[]byte("BEGIN\ntransaction: t1\n\n\x00COMMIT\ntransaction: t1\n\n\x00ABORT\ntransaction: t2\n\n\x00"),
		conn.Written())
}

func TestTransactionEmptyID(t *testing.T) {
	c, conn := newTestClient(t)

	require.NoError(t, c.Begin(""))
	assert.Equal(t, []byte("BEGIN\n\n\x00"), conn.Written())
}

func TestBeginTx(t *testing.T) {
	c, conn := newTestClient(t)

	tx, err := c.BeginTx()
	require.NoError(t, err)
	require.NotEmpty(t, tx.ID())

	_, err = uuid.Parse(tx.ID())
	assert.NoError(t, err, "transaction id must be a UUID")
	assert.Equal(t,
		[]byte("BEGIN\ntransaction: "+tx.ID()+"\n\n\x00"),
		conn.Written())
}

func TestTransactionSendAndAck(t *testing.T) {
	c, conn := newTestClient(t)
	tx, err := c.BeginTx()
	require.NoError(t, err)
	conn.resetWritten()

	require.NoError(t, tx.Send("/queue/x", "hi"))
	assert.Equal(t,
		[]byte("SEND\ndestination: /queue/x\ntransaction: "+tx.ID()+"\n\nhi\x00"),
		conn.Written())

	conn.resetWritten()
	require.NoError(t, tx.Ack("m-1"))
	assert.Equal(t,
		[]byte("ACK\ntransaction: "+tx.ID()+"\nmessage-id: m-1\n\n\x00"),
		conn.Written())
}

func TestTransactionCommitFinishes(t *testing.T) {
	c, conn := newTestClient(t)
	tx, err := c.BeginTx()
	require.NoError(t, err)
	conn.resetWritten()

	require.NoError(t, tx.Commit())
	assert.Equal(t,
		[]byte("COMMIT\ntransaction: "+tx.ID()+"\n\n\x00"),
		conn.Written())

	assert.ErrorContains(t, tx.Send("/queue/x", "late"), "already committed")
	assert.ErrorContains(t, tx.Abort(), "already committed")
	assert.ErrorContains(t, tx.Commit(), "already committed")
}

func TestTransactionAbortIdempotent(t *testing.T) {
	c, conn := newTestClient(t)
	tx, err := c.BeginTx()
	require.NoError(t, err)
	conn.resetWritten()

	require.NoError(t, tx.Abort())
	assert.Equal(t,
		[]byte("ABORT\ntransaction: "+tx.ID()+"\n\n\x00"),
		conn.Written())

	conn.resetWritten()
	require.NoError(t, tx.Abort())
	assert.Empty(t, conn.Written(), "repeated abort must not resend")
	assert.ErrorContains(t, tx.Commit(), "already aborted")
	assert.ErrorContains(t, tx.SendFrame("/queue/x", frame.New(frame.CmdSend)), "already aborted")
}
