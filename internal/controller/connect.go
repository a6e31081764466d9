package controller

import (
	"context"

	"github.com/creamcroissant/trackerctl/internal/connection"
	"github.com/creamcroissant/trackerctl/internal/notifier"
	"github.com/creamcroissant/trackerctl/internal/source"
)

// Endpoint is the mutable side of the gateway.
type Endpoint interface {
	Configure(baseURL, token string)
}

// Connector binds the session to a live endpoint. It is the only writer of
// the process-wide base URL and token.
type Connector struct {
	state    *connection.State
	store    *connection.Store
	endpoint Endpoint
	deps     Deps
}

// NewConnector creates the connect action. store may be nil when nothing
// should be persisted.
func NewConnector(state *connection.State, store *connection.Store, endpoint Endpoint, deps Deps) *Connector {
	return &Connector{state: state, store: store, endpoint: endpoint, deps: deps.withDefaults()}
}

// Connect saves p, rebinds the gateway and probes GET /stats. In demo mode
// it only reports that no connection is needed.
func (c *Connector) Connect(ctx context.Context, p connection.Profile) bool {
	if c.state.Demo() {
		c.deps.Notify.Notify(ctx, notifier.Success, "Demo mode - no connection needed")
		return true
	}
	if c.store != nil {
		if err := c.store.Save(ctx, p); err != nil {
			c.deps.Logger.WarnContext(ctx, "save connection profile", "error", err)
		}
	}
	c.endpoint.Configure(p.BaseURL, p.Token)

	if !c.deps.Source.Fetch(ctx, source.Get("/stats")).Success {
		return false
	}
	c.state.MarkConnected()
	c.deps.Notify.Notify(ctx, notifier.Success, "Connected!")
	return true
}
