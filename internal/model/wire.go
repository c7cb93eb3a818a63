// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package model

import "github.com/vk/gategrid/internal/geom"

// Wire is a directed connection from one gate's output slot to another gate's
// input slot.
type Wire struct {
	ID string `json:"id"`
	// SourceGate is the gate whose output drives the wire.
	SourceGate string `json:"source_circuit"`
	// TargetGate is the gate whose input the wire feeds.
	TargetGate string `json:"target_circuit"`
	// SourceSlot is the output index on SourceGate. The backend names it
	// after the wire's input end.
	SourceSlot int `json:"number_input"`
	// TargetSlot is the input index on TargetGate.
	TargetSlot int `json:"number_output"`
	// InitSignal is the initial signal the backend associates with the wire.
	InitSignal bool `json:"init_signal"`
	// Path holds the rendering waypoints in world space, source side first.
	Path []geom.Point `json:"path"`
	// SceneID is the scene the wire belongs to.
	SceneID string `json:"scene_id"`
}

// ClonePath returns a copy of the wire's waypoint path.
func (w *Wire) ClonePath() []geom.Point {
	if w.Path == nil {
		return nil
	}
	out := make([]geom.Point, len(w.Path))
	copy(out, w.Path)
	return out
}
