package metrics

import (
	"context"
	"time"

	"github.com/vk/gategrid/internal/geom"
	"github.com/vk/gategrid/internal/model"
	"github.com/vk/gategrid/internal/scenestore"
)

// instrumentedStore records request counts and latency for every call of
// the wrapped store.
type instrumentedStore struct {
	next scenestore.Store
}

// InstrumentStore wraps a store so each call is counted in BackendRequests
// and timed in BackendDuration.
func InstrumentStore(next scenestore.Store) scenestore.Store {
	return &instrumentedStore{next: next}
}

func observe(op string, start time.Time, err error) {
	BackendDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	result := ResultSuccess
	if err != nil {
		result = ResultError
	}
	BackendRequests.WithLabelValues(op, result).Inc()
}

func (s *instrumentedStore) ListGates(ctx context.Context, sceneID string) (gates []model.Gate, err error) {
	defer func(start time.Time) { observe(scenestore.OpListGates, start, err) }(time.Now())
	return s.next.ListGates(ctx, sceneID)
}

func (s *instrumentedStore) ListWires(ctx context.Context, sceneID string) (wires []model.Wire, err error) {
	defer func(start time.Time) { observe(scenestore.OpListWires, start, err) }(time.Now())
	return s.next.ListWires(ctx, sceneID)
}

func (s *instrumentedStore) CreateGate(ctx context.Context, sceneID, tag string, pos geom.Point) (err error) {
	defer func(start time.Time) { observe(scenestore.OpCreateGate, start, err) }(time.Now())
	return s.next.CreateGate(ctx, sceneID, tag, pos)
}

func (s *instrumentedStore) UpdateGatePosition(ctx context.Context, gateID string, pos geom.Point) (err error) {
	defer func(start time.Time) { observe(scenestore.OpUpdateGatePosition, start, err) }(time.Now())
	return s.next.UpdateGatePosition(ctx, gateID, pos)
}

func (s *instrumentedStore) CreateWire(ctx context.Context, w model.Wire) (err error) {
	defer func(start time.Time) { observe(scenestore.OpCreateWire, start, err) }(time.Now())
	return s.next.CreateWire(ctx, w)
}

func (s *instrumentedStore) DeleteWire(ctx context.Context, wireID string) (err error) {
	defer func(start time.Time) { observe(scenestore.OpDeleteWire, start, err) }(time.Now())
	return s.next.DeleteWire(ctx, wireID)
}
