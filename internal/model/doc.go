// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model holds the flat records exchanged with the scene backend: one
// record per gate and one per wire. They arrive unordered and unvalidated; the
// circuit package is responsible for turning them into a connected graph.
//
// # Ownership
//
// Records are owned by the backend. The editor never mutates them in place
// except for a gate's Position, which is written optimistically while the
// user drags a gate and reconciled once the backend answers.
//
// # Why a separate model package?
//
// The records are shared by every store implementation (in-memory, socket.io,
// HCL scene files), by the graph builder and by the editor. Keeping them in a
// leaf package with no behaviour avoids import cycles between those layers.
package model
