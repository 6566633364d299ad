// Package app wires the waitline client together and owns the refresh
// cycle.
//
// The Controller implements the reload state machine: a trigger (initial
// load, poll tick, manual refresh, post-mutation reload) marks the store as
// loading, fetches the full collection, and replaces the snapshot wholesale.
// Failures keep the stale entries; an unconfigured API substitutes the
// built-in demo dataset so the client stays usable for evaluation.
//
// StartPoller provides the fixed-interval trigger as a context-scoped
// goroutine; cancelling the context stops it, so no timers leak across test
// runs or after shutdown. There is no coalescing between the poller and
// UI-triggered reloads: overlapping reloads may race and the last response
// to arrive wins, which is an accepted limitation of the polling design.
package app
