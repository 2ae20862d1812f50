package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/Vasu1712/scenecast/internal/logger"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func startHub(t *testing.T) (*Hub, func()) {
	t.Helper()
	hub := NewHub(logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- hub.Run(ctx) }()
	return hub, func() {
		cancel()
		require.NoError(t, <-errc)
	}
}

func testClient(hub *Hub, buffer int) *Client {
	return &Client{ID: "test", send: make(chan []byte, buffer), hub: hub, log: hub.log}
}

func receive(t *testing.T, c *Client) Envelope {
	t.Helper()
	select {
	case msg, ok := <-c.send:
		require.True(t, ok, "send channel closed")
		var env Envelope
		require.NoError(t, json.Unmarshal(msg, &env))
		return env
	case <-time.After(time.Second):
		t.Fatal("no message received")
	}
	return Envelope{}
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.ClientCount() == n }, time.Second, 5*time.Millisecond)
}

func TestEncode(t *testing.T) {
	raw, err := Encode("scene:update", map[string]string{"type": "video"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"event":"scene:update","data":{"type":"video"}}`, string(raw))

	_, err = Encode("bad", make(chan int))
	assert.Error(t, err)
}

func TestPublishFansOut(t *testing.T) {
	hub, stop := startHub(t)
	defer stop()

	a, b := testClient(hub, 4), testClient(hub, 4)
	require.True(t, hub.Attach(a))
	require.True(t, hub.Attach(b))
	waitForClients(t, hub, 2)

	hub.Publish("audio:update", map[string]any{"tracks": []any{}})
	for _, c := range []*Client{a, b} {
		env := receive(t, c)
		assert.Equal(t, "audio:update", env.Event)
		assert.JSONEq(t, `{"tracks":[]}`, string(env.Data))
	}
}

func TestEnqueueBeforeAttachKeepsOrder(t *testing.T) {
	hub, stop := startHub(t)
	defer stop()

	c := testClient(hub, 4)
	require.NoError(t, c.Enqueue("scene:update", 1))
	require.NoError(t, c.Enqueue("audio:update", 2))
	require.True(t, hub.Attach(c))
	hub.Publish("library:update", 3)

	assert.Equal(t, "scene:update", receive(t, c).Event)
	assert.Equal(t, "audio:update", receive(t, c).Event)
	assert.Equal(t, "library:update", receive(t, c).Event)
}

func TestEnqueueBufferFull(t *testing.T) {
	hub := NewHub(logger.Nop())
	c := testClient(hub, 1)

	require.NoError(t, c.Enqueue("a", nil))
	assert.ErrorIs(t, c.Enqueue("b", nil), ErrSendBufferFull)
}

func TestSlowClientIsDropped(t *testing.T) {
	hub, stop := startHub(t)
	defer stop()

	slow, fast := testClient(hub, 1), testClient(hub, 8)
	require.True(t, hub.Attach(slow))
	require.True(t, hub.Attach(fast))
	waitForClients(t, hub, 2)

	hub.Publish("scene:update", 1)
	hub.Publish("scene:update", 2)
	waitForClients(t, hub, 1)

	assert.Equal(t, "scene:update", receive(t, fast).Event)
	assert.Equal(t, "scene:update", receive(t, fast).Event)

	<-slow.send
	_, ok := <-slow.send
	assert.False(t, ok, "slow client channel should be closed")

	hub.Detach(slow)
	waitForClients(t, hub, 1)
}

func TestDetach(t *testing.T) {
	hub, stop := startHub(t)
	defer stop()

	c := testClient(hub, 1)
	require.True(t, hub.Attach(c))
	hub.Detach(c)
	hub.Detach(c)
	waitForClients(t, hub, 0)

	_, ok := <-c.send
	assert.False(t, ok)
}

func TestStoppedHub(t *testing.T) {
	hub, stop := startHub(t)
	c := testClient(hub, 1)
	require.True(t, hub.Attach(c))
	stop()

	_, ok := <-c.send
	assert.False(t, ok, "clients are closed on shutdown")

	assert.False(t, hub.Attach(testClient(hub, 1)))
	hub.Publish("scene:update", 1)
	hub.Detach(c)
	assert.Equal(t, 0, hub.ClientCount())
}
