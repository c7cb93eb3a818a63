package socketscene

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/gategrid/internal/geom"
	"github.com/vk/gategrid/internal/model"
	"github.com/vk/gategrid/internal/scenestore"
)

type emitted struct {
	event   string
	payload map[string]any
}

// fakeService answers every emitted request through reply.
type fakeService struct {
	mu    sync.Mutex
	sent  []emitted
	reply func(event string, payload map[string]any) map[string]any
}

func (f *fakeService) client(t *testing.T, timeout time.Duration) *Client {
	t.Helper()
	var c *Client
	c = newClient(func(event string, payload any) {
		p := payload.(map[string]any)
		f.mu.Lock()
		f.sent = append(f.sent, emitted{event: event, payload: p})
		f.mu.Unlock()
		if f.reply == nil {
			return
		}
		if res := f.reply(event, p); res != nil {
			go func() { _ = c.dispatch(res) }()
		}
	}, timeout)
	return c
}

func TestClient_ListGates(t *testing.T) {
	f := &fakeService{reply: func(event string, p map[string]any) map[string]any {
		return map[string]any{
			"request_id": p["request_id"],
			"gates": []any{
				map[string]any{"id": "A", "gate_type": "AND", "scene_id": "s1", "position": map[string]any{"x": 1.0, "y": 2.0}},
			},
		}
	}}
	c := f.client(t, time.Second)

	gates, err := c.ListGates(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, gates, 1)
	assert.Equal(t, model.Gate{ID: "A", Type: "AND", SceneID: "s1", Position: geom.Pt(1, 2)}, gates[0])

	require.Len(t, f.sent, 1)
	assert.Equal(t, scenestore.OpListGates, f.sent[0].event)
	assert.Equal(t, "s1", f.sent[0].payload["scene_id"])
	assert.NotEmpty(t, f.sent[0].payload["request_id"])
}

func TestClient_CreateWirePayload(t *testing.T) {
	f := &fakeService{reply: func(_ string, p map[string]any) map[string]any {
		return map[string]any{"request_id": p["request_id"]}
	}}
	c := f.client(t, time.Second)

	err := c.CreateWire(context.Background(), model.Wire{
		ID: "ignored", SourceGate: "A", TargetGate: "B", SourceSlot: 2, TargetSlot: 1,
		Path: []geom.Point{geom.Pt(1, 1)}, SceneID: "s1",
	})
	require.NoError(t, err)

	require.Len(t, f.sent, 1)
	wire, ok := f.sent[0].payload["wire"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "", wire["id"])
	assert.Equal(t, "A", wire["source_circuit"])
	assert.Equal(t, 2.0, wire["number_input"])
	assert.Equal(t, 1.0, wire["number_output"])
	assert.Equal(t, "s1", f.sent[0].payload["scene_id"])
}

func TestClient_ErrorReply(t *testing.T) {
	f := &fakeService{reply: func(_ string, p map[string]any) map[string]any {
		return map[string]any{"request_id": p["request_id"], "error": "gate not found"}
	}}
	c := f.client(t, time.Second)

	err := c.UpdateGatePosition(context.Background(), "Z", geom.Pt(1, 1))
	var bre *scenestore.BackendRequestError
	require.ErrorAs(t, err, &bre)
	assert.Equal(t, scenestore.OpUpdateGatePosition, bre.Op)
	assert.Contains(t, err.Error(), "gate not found")
}

func TestClient_Timeout(t *testing.T) {
	f := &fakeService{}
	c := f.client(t, 20*time.Millisecond)

	err := c.DeleteWire(context.Background(), "w1")
	var bre *scenestore.BackendRequestError
	require.ErrorAs(t, err, &bre)
	assert.Equal(t, scenestore.OpDeleteWire, bre.Op)
	assert.Contains(t, err.Error(), "timed out")
	assert.Empty(t, c.pending)
}

func TestClient_ContextCancelled(t *testing.T) {
	f := &fakeService{}
	c := f.client(t, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.CreateGate(ctx, "s1", "AND", geom.Pt(0, 0))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_Close(t *testing.T) {
	f := &fakeService{}
	c := f.client(t, time.Minute)

	done := make(chan error, 1)
	go func() { done <- c.DeleteWire(context.Background(), "w1") }()

	require.Eventually(t, func() bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		return len(c.pending) == 1
	}, time.Second, time.Millisecond)

	require.NoError(t, c.Close())
	select {
	case err := <-done:
		assert.Contains(t, err.Error(), ErrClosed.Error())
	case <-time.After(time.Second):
		t.Fatal("pending request was not released by Close")
	}

	err := c.DeleteWire(context.Background(), "w2")
	assert.True(t, errors.Is(err, ErrClosed))
}

func TestDispatch_Rejects(t *testing.T) {
	c := newClient(func(string, any) {}, time.Second)

	assert.Error(t, c.dispatch())
	assert.Error(t, c.dispatch(map[string]any{"gates": []any{}}))
	assert.Error(t, c.dispatch(map[string]any{"request_id": "unknown"}))
	assert.Error(t, c.dispatch(map[string]any{"request_id": "x", "gates": "nope"}))
}
