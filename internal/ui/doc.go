// Package ui renders the waitline queue as a Bubble Tea program.
//
// The model is a thin projection over the shared snapshot store: a
// one-second tick re-reads the store (picking up background poller
// results), rebuilds the queue view-model, and prunes expired toasts.
// Mutations run as tea.Cmds against the queue service and every
// successful one schedules a full reload, so the screen always shows
// what the server stored rather than an optimistic guess.
//
// Views are queue list, join/edit form, remove confirmation, and a help
// overlay. Mutation keys are inert while a reload or mutation is in
// flight, and in demo mode they explain how to configure a real API
// instead of pretending to write.
package ui
