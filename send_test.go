package stomp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mqwire/stomp-go/frame"
	"github.com/mqwire/stomp-go/stats"
)

func TestSendGoldenBytes(t *testing.T) {
	c, conn := newTestClient(t)

	require.NoError(t, c.Send("/queue/x", "hello"))
	assert.Equal(t, []byte("SEND\ndestination: /queue/x\n\nhello\x00"), conn.Written())
}

func TestSendExtraHeaders(t *testing.T) {
	c, conn := newTestClient(t)

	require.NoError(t, c.Send("/queue/x", "hi",
		frame.Header{Name: "priority", Value: "5"},
		frame.Header{Name: "persistent", Value: "true"}))
	assert.Equal(t,
		[]byte("SEND\npriority: 5\npersistent: true\ndestination: /queue/x\n\nhi\x00"),
		conn.Written())
}

func TestSendBytesContentLength(t *testing.T) {
	c, conn := newTestClient(t)

	require.NoError(t, c.SendBytes("/queue/b", []byte{0x01, 0x02, 0x03, 0x04, 0x05}))
	assert.Equal(t,
		[]byte("SEND\ncontent-length: 5\ndestination: /queue/b\n\n\x01\x02\x03\x04\x05\x00"),
		conn.Written())
}

func TestSendMap(t *testing.T) {
	c, conn := newTestClient(t)

	require.NoError(t, c.SendMap("/queue/m", map[string]any{"k": "v"}))
	assert.Equal(t,
		[]byte("SEND\namq-msg-type: MapMessage\ndestination: /queue/m\n\n{\"k\":\"v\"}\x00"),
		conn.Written())
}

func TestSendMapUnencodable(t *testing.T) {
	c, conn := newTestClient(t)

	err := c.SendMap("/queue/m", map[string]any{"f": func() {}})
	require.Error(t, err)

	var de *DeliveryError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "/queue/m", de.Destination)
	assert.Empty(t, conn.Written())
}

func TestSendFrameVerbatim(t *testing.T) {
	c, conn := newTestClient(t)

	f := frame.New(frame.CmdSend,
		frame.Header{Name: frame.HdrContentLength, Value: "999"})
	f.Body = []byte("xy")
	require.NoError(t, c.SendFrame("/queue/x", f))
	assert.Equal(t,
		[]byte("SEND\ncontent-length: 999\ndestination: /queue/x\n\nxy\x00"),
		conn.Written())
}

func TestSendNotConnected(t *testing.T) {
	c, _ := newTestClient(t)
	require.NoError(t, c.Disconnect())

	err := c.Send("/queue/x", "hello")
	require.Error(t, err)

	var de *DeliveryError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "/queue/x", de.Destination)
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestSendRecordsOneObservation(t *testing.T) {
	rec := stats.NewLog()
	c, _ := newTestClient(t, WithRecorder(rec))
	rec.Reset()

	require.NoError(t, c.Send("/queue/x", "a"))
	require.NoError(t, c.SendBytes("/queue/x", []byte("b")))
	require.NoError(t, c.SendMap("/queue/x", map[string]any{"c": 1}))

	obs := rec.Observations()
	require.Len(t, obs, 3)
	for _, o := range obs {
		assert.Equal(t, "send", o.Command)
	}
}
