package app

import (
	"context"
	"log"
	"time"

	"github.com/waitline/waitline/internal/queueapi"
	"github.com/waitline/waitline/internal/state"
)

// Controller owns the reload cycle: fetch the full collection from the API,
// replace the store snapshot, fall back to the demo dataset when no source
// is configured. It never retries on its own; the next poll tick or user
// trigger is the retry.
type Controller struct {
	service  queueapi.QueueService
	store    *state.Store
	demoMode bool
}

// NewController builds a Controller. service may be nil only when demoMode
// is true (no API configured).
func NewController(service queueapi.QueueService, store *state.Store, demoMode bool) *Controller {
	return &Controller{service: service, store: store, demoMode: demoMode}
}

// Store exposes the snapshot store the controller writes into.
func (c *Controller) Store() *state.Store {
	return c.store
}

// DemoMode reports whether the controller serves the built-in dataset.
func (c *Controller) DemoMode() bool {
	return c.demoMode
}

// Reload performs one full refresh and returns the resulting snapshot.
//
// With no configured source the fixed demo collection is substituted and
// treated as a successful fetch, so the list and statistics still render.
// With a configured source a failure keeps the stale entries and records
// the error; the display stays usable until the next trigger.
func (c *Controller) Reload(ctx context.Context) state.Snapshot {
	c.store.SetLoading(true)

	if c.demoMode || c.service == nil {
		c.store.Update(DemoEntries(time.Now()), true, nil)
		return c.store.Snapshot()
	}

	entries, err := c.service.FetchQueue(ctx, "")
	if err != nil {
		log.Printf("queue reload failed: %v", err)
		c.store.Update(nil, false, err)
		return c.store.Snapshot()
	}
	c.store.Update(entries, false, nil)
	return c.store.Snapshot()
}
