// Package socketscene implements scenestore.Store on top of a socket.io
// connection.
//
// # Why Socket Scene Exists
//
// A shared scene normally lives in a remote service, not in the editor
// process. This package maps every store operation onto a request event and
// a matching "<op>.result" reply event, so the editor can work against that
// service with no knowledge of the transport.
//
// # Wire Protocol
//
// Each request is emitted as the operation name (for example
// "create_wire") with a JSON object payload carrying a fresh "request_id".
// The service answers with "<op>.result" and an object holding the same
// "request_id", an optional "error" string, and, for list operations, a
// "gates" or "wires" array. Replies for unknown request ids are dropped.
package socketscene
