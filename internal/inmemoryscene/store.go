// Package inmemoryscene provides a thread-safe, in-memory implementation of
// the scenestore.Store interface.
//
// # Characteristics
//
//   - **Ephemeral:** records live as long as the Store value
//   - **Thread-Safe:** a single sync.RWMutex guards all records
//   - **Ordered:** gates and wires are listed in insertion order
//
// The store backs the CLI when a scene is loaded from a file, and the editor
// tests. Fail lets tests make a given operation fail.
package inmemoryscene

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/vk/gategrid/internal/geom"
	"github.com/vk/gategrid/internal/model"
	"github.com/vk/gategrid/internal/scenestore"
)

// Store implements scenestore.Store with slices and a mutex.
type Store struct {
	mu       sync.RWMutex
	gates    []model.Gate
	wires    []model.Wire
	failures map[string]error
	newID    func() string
}

var _ scenestore.Store = (*Store)(nil)

// New creates an empty in-memory scene store.
func New() *Store {
	return &Store{
		failures: make(map[string]error),
		newID:    func() string { return uuid.NewString() },
	}
}

// Seed replaces the store contents. Records are copied.
func (s *Store) Seed(gates []model.Gate, wires []model.Wire) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gates = append([]model.Gate(nil), gates...)
	s.wires = make([]model.Wire, len(wires))
	for i, w := range wires {
		w.Path = w.ClonePath()
		s.wires[i] = w
	}
}

// Fail makes every subsequent call of op return err. A nil err clears the
// failure.
func (s *Store) Fail(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

// injected returns the configured failure for op. Callers hold the lock.
func (s *Store) injected(op string) error {
	if err, ok := s.failures[op]; ok {
		return scenestore.Wrap(op, err)
	}
	return nil
}

// ListGates returns copies of the gates of a scene. An empty sceneID lists
// every gate.
func (s *Store) ListGates(ctx context.Context, sceneID string) ([]model.Gate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.injected(scenestore.OpListGates); err != nil {
		return nil, err
	}
	out := make([]model.Gate, 0, len(s.gates))
	for _, g := range s.gates {
		if sceneID == "" || g.SceneID == sceneID {
			out = append(out, g)
		}
	}
	return out, nil
}

// ListWires returns copies of the wires of a scene. An empty sceneID lists
// every wire.
func (s *Store) ListWires(ctx context.Context, sceneID string) ([]model.Wire, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.injected(scenestore.OpListWires); err != nil {
		return nil, err
	}
	out := make([]model.Wire, 0, len(s.wires))
	for _, w := range s.wires {
		if sceneID == "" || w.SceneID == sceneID {
			w.Path = w.ClonePath()
			out = append(out, w)
		}
	}
	return out, nil
}

// CreateGate appends a gate with a fresh id.
func (s *Store) CreateGate(ctx context.Context, sceneID, tag string, pos geom.Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.injected(scenestore.OpCreateGate); err != nil {
		return err
	}
	s.gates = append(s.gates, model.Gate{ID: s.newID(), Type: tag, Position: pos, SceneID: sceneID})
	return nil
}

// UpdateGatePosition moves a gate.
func (s *Store) UpdateGatePosition(ctx context.Context, gateID string, pos geom.Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.injected(scenestore.OpUpdateGatePosition); err != nil {
		return err
	}
	for i := range s.gates {
		if s.gates[i].ID == gateID {
			s.gates[i].Position = pos
			return nil
		}
	}
	return scenestore.Wrap(scenestore.OpUpdateGatePosition, fmt.Errorf("gate '%s': %w", gateID, scenestore.ErrNotFound))
}

// CreateWire appends a wire with a fresh id. Both gates must exist; slot
// ranges are not checked here.
func (s *Store) CreateWire(ctx context.Context, w model.Wire) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.injected(scenestore.OpCreateWire); err != nil {
		return err
	}
	for _, id := range []string{w.SourceGate, w.TargetGate} {
		if !s.hasGate(id) {
			return scenestore.Wrap(scenestore.OpCreateWire, fmt.Errorf("gate '%s': %w", id, scenestore.ErrNotFound))
		}
	}
	w.ID = s.newID()
	w.Path = w.ClonePath()
	s.wires = append(s.wires, w)
	return nil
}

// DeleteWire removes a wire.
func (s *Store) DeleteWire(ctx context.Context, wireID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.injected(scenestore.OpDeleteWire); err != nil {
		return err
	}
	for i := range s.wires {
		if s.wires[i].ID == wireID {
			s.wires = append(s.wires[:i], s.wires[i+1:]...)
			return nil
		}
	}
	return scenestore.Wrap(scenestore.OpDeleteWire, fmt.Errorf("wire '%s': %w", wireID, scenestore.ErrNotFound))
}

func (s *Store) hasGate(id string) bool {
	for _, g := range s.gates {
		if g.ID == id {
			return true
		}
	}
	return false
}
