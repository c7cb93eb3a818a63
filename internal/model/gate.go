// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package model

import "github.com/vk/gategrid/internal/geom"

// Gate is a single placed gate as stored by the backend.
type Gate struct {
	// ID is the backend-assigned identifier, unique within a scene.
	ID string `json:"id"`
	// Position is the gate origin in world space (grid units).
	Position geom.Point `json:"position"`
	// Type is the gate-type tag, e.g. "AND". Unknown tags are not an error.
	Type string `json:"gate_type"`
	// SceneID is the scene the gate belongs to.
	SceneID string `json:"scene_id"`
}
