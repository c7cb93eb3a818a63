package inmemoryscene

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/gategrid/internal/geom"
	"github.com/vk/gategrid/internal/model"
	"github.com/vk/gategrid/internal/scenestore"
)

func seeded() *Store {
	s := New()
	s.Seed(
		[]model.Gate{
			{ID: "A", Type: "INPUT", SceneID: "main"},
			{ID: "B", Type: "NOT", SceneID: "main"},
			{ID: "X", Type: "NOT", SceneID: "other"},
		},
		[]model.Wire{
			{ID: "w1", SourceGate: "A", TargetGate: "B", SceneID: "main", Path: []geom.Point{geom.Pt(1, 1)}},
		},
	)
	return s
}

func TestListFiltersByScene(t *testing.T) {
	s := seeded()
	ctx := context.Background()

	gates, err := s.ListGates(ctx, "main")
	require.NoError(t, err)
	assert.Len(t, gates, 2)

	all, err := s.ListGates(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	wires, err := s.ListWires(ctx, "other")
	require.NoError(t, err)
	assert.Empty(t, wires)
}

func TestListReturnsCopies(t *testing.T) {
	s := seeded()
	ctx := context.Background()

	wires, err := s.ListWires(ctx, "main")
	require.NoError(t, err)
	wires[0].Path[0] = geom.Pt(99, 99)

	again, err := s.ListWires(ctx, "main")
	require.NoError(t, err)
	assert.Equal(t, geom.Pt(1, 1), again[0].Path[0])
}

func TestCreateGate(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.CreateGate(ctx, "main", "AND", geom.Pt(3, 4)))

	gates, err := s.ListGates(ctx, "main")
	require.NoError(t, err)
	require.Len(t, gates, 1)
	assert.Equal(t, "AND", gates[0].Type)
	assert.Equal(t, geom.Pt(3, 4), gates[0].Position)
	_, err = uuid.Parse(gates[0].ID)
	assert.NoError(t, err, "ids are uuids")
}

func TestUpdateGatePosition(t *testing.T) {
	s := seeded()
	ctx := context.Background()

	require.NoError(t, s.UpdateGatePosition(ctx, "B", geom.Pt(7, 8)))
	gates, _ := s.ListGates(ctx, "main")
	assert.Equal(t, geom.Pt(7, 8), gates[1].Position)

	err := s.UpdateGatePosition(ctx, "nope", geom.Pt(0, 0))
	assert.ErrorIs(t, err, scenestore.ErrNotFound)
}

func TestCreateAndDeleteWire(t *testing.T) {
	s := seeded()
	ctx := context.Background()

	err := s.CreateWire(ctx, model.Wire{SourceGate: "B", TargetGate: "ghost", SceneID: "main"})
	assert.ErrorIs(t, err, scenestore.ErrNotFound)

	require.NoError(t, s.CreateWire(ctx, model.Wire{ID: "ignored", SourceGate: "A", TargetGate: "B", SceneID: "main"}))
	wires, _ := s.ListWires(ctx, "main")
	require.Len(t, wires, 2)
	assert.NotEqual(t, "ignored", wires[1].ID)

	require.NoError(t, s.DeleteWire(ctx, "w1"))
	wires, _ = s.ListWires(ctx, "main")
	require.Len(t, wires, 1)

	assert.ErrorIs(t, s.DeleteWire(ctx, "w1"), scenestore.ErrNotFound)
}

func TestFailureInjection(t *testing.T) {
	s := seeded()
	ctx := context.Background()
	boom := errors.New("boom")

	s.Fail(scenestore.OpDeleteWire, boom)
	err := s.DeleteWire(ctx, "w1")

	var bre *scenestore.BackendRequestError
	require.True(t, errors.As(err, &bre))
	assert.Equal(t, scenestore.OpDeleteWire, bre.Op)
	assert.ErrorIs(t, err, boom)

	s.Fail(scenestore.OpDeleteWire, nil)
	assert.NoError(t, s.DeleteWire(ctx, "w1"))
}

func TestConcurrentAccess(t *testing.T) {
	s := seeded()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = s.CreateGate(ctx, "main", "OR", geom.Pt(0, 0))
		}()
		go func() {
			defer wg.Done()
			_, _ = s.ListGates(ctx, "main")
		}()
	}
	wg.Wait()

	gates, err := s.ListGates(ctx, "main")
	require.NoError(t, err)
	assert.Len(t, gates, 22)
}
