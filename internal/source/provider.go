// Package source decides where resource controllers read from and write to:
// the static demonstration snapshot or the live admin API.
package source

import (
	"context"
	"net/http"

	"github.com/creamcroissant/trackerctl/internal/gateway"
	"github.com/creamcroissant/trackerctl/internal/notifier"
)

// Request describes one call in wire terms.
type Request struct {
	Method string
	Path   string
	Body   any
	// Notice names the action for the synthetic demo confirmation,
	// e.g. "Stats flushed to database".
	Notice string
}

// Get is shorthand for a read of path.
func Get(path string) Request {
	return Request{Method: http.MethodGet, Path: path}
}

// Provider is the capability every controller is written against.
type Provider interface {
	// Fetch reads a collection or record.
	Fetch(ctx context.Context, req Request) gateway.Result
	// Apply performs a mutation.
	Apply(ctx context.Context, req Request) gateway.Result
}

// Caller is the part of the gateway the live provider needs.
type Caller interface {
	Do(ctx context.Context, method, path string, body any) gateway.Result
}

// Live forwards everything to the admin API.
type Live struct {
	gw Caller
}

// NewLive wraps a gateway.
func NewLive(gw Caller) *Live {
	return &Live{gw: gw}
}

// Fetch implements Provider.
func (l *Live) Fetch(ctx context.Context, req Request) gateway.Result {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	return l.gw.Do(ctx, method, req.Path, req.Body)
}

// Apply implements Provider.
func (l *Live) Apply(ctx context.Context, req Request) gateway.Result {
	return l.gw.Do(ctx, req.Method, req.Path, req.Body)
}

// Select picks the provider for the whole session. It is called exactly once
// at startup; the choice never changes afterwards.
func Select(demo bool, gw Caller, n notifier.Notifier) Provider {
	if demo {
		return NewDemo(DefaultSnapshot(), n)
	}
	return NewLive(gw)
}
