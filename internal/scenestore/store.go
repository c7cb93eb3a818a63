// Package scenestore defines the interface the editor uses to read and
// mutate a scene held by some backend.
//
// # Why Scene Store Exists
//
// The editor never owns gate and wire records. It reads them, derives a
// graph, and sends mutation intents back. Every intent either succeeds, in
// which case the editor reloads and rebuilds, or fails with a
// BackendRequestError, in which case the editor reports it and changes
// nothing. Keeping that contract behind an interface lets the same
// controller run against an in-memory store in tests and the CLI, or a
// remote socket.io backend.
//
// # Thread-Safety Requirements
//
// Calls are issued from worker goroutines while the editor keeps handling
// input, and two requests may be in flight at once. Implementations MUST be
// safe for concurrent use. They are not required to order overlapping
// requests.
package scenestore

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/gategrid/internal/geom"
	"github.com/vk/gategrid/internal/model"
)

// Operation names, used in errors, metrics and remote event names.
const (
	OpListGates          = "list_gates"
	OpListWires          = "list_wires"
	OpCreateGate         = "create_gate"
	OpUpdateGatePosition = "update_gate_position"
	OpCreateWire         = "create_wire"
	OpDeleteWire         = "delete_wire"
)

// Store is the graph data service consumed by the editor.
type Store interface {
	// ListGates returns every gate record of a scene.
	ListGates(ctx context.Context, sceneID string) ([]model.Gate, error)

	// ListWires returns every wire record of a scene.
	ListWires(ctx context.Context, sceneID string) ([]model.Wire, error)

	// CreateGate adds a gate of the given type at a world position.
	CreateGate(ctx context.Context, sceneID, tag string, pos geom.Point) error

	// UpdateGatePosition moves an existing gate.
	UpdateGatePosition(ctx context.Context, gateID string, pos geom.Point) error

	// CreateWire adds a wire. The ID field of w is ignored; the store assigns
	// one.
	CreateWire(ctx context.Context, w model.Wire) error

	// DeleteWire removes a wire.
	DeleteWire(ctx context.Context, wireID string) error
}

// ErrNotFound is returned when a request names a record that does not exist.
var ErrNotFound = errors.New("record not found")

// BackendRequestError wraps any failure of a store call.
type BackendRequestError struct {
	Op  string
	Err error
}

func (e *BackendRequestError) Error() string {
	return fmt.Sprintf("backend request '%s' failed: %v", e.Op, e.Err)
}

func (e *BackendRequestError) Unwrap() error { return e.Err }

// Wrap returns err as a *BackendRequestError for op. A nil err stays nil and
// an error that already is a BackendRequestError is returned unchanged.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var bre *BackendRequestError
	if errors.As(err, &bre) {
		return err
	}
	return &BackendRequestError{Op: op, Err: err}
}
