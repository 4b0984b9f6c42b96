// Package interact owns hover state and the animation loop of one displayed
// graph.
//
// A [Session] binds a layout engine to an epoch. Adopting a new graph discards
// the old engine, starts a new epoch and releases every pointer
// [Subscription] of the old one, so frames and pointer events scheduled for a
// previous graph can never touch the current state. Sessions are not safe for
// concurrent use; hosts drive them from a single event loop.
package interact
