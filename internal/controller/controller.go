// Package controller implements the per-resource lifecycle shared by every
// admin section: load, render, mutate, reload.
//
// 每个资源控制器独占自身状态，控制器之间不共享可变数据；所有请求都经由
// source.Provider 发出，所有结果都经由 notifier 呈现。
package controller

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/creamcroissant/trackerctl/internal/gateway"
	"github.com/creamcroissant/trackerctl/internal/notifier"
	"github.com/creamcroissant/trackerctl/internal/source"
	"github.com/creamcroissant/trackerctl/internal/support/logging"
)

// MinSearchLen is the shortest query a search action will issue.
const MinSearchLen = 3

// Validation messages.
const (
	MsgSearchTooShort = "Search requires at least 3 characters"
	MsgCancelled      = "Action cancelled"
)

// Phase is the controller state machine.
type Phase int

const (
	Idle Phase = iota
	Loading
	Submitting
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Submitting:
		return "submitting"
	default:
		return "idle"
	}
}

// Confirmer asks the operator before a destructive call.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) bool

// Confirm implements Confirmer.
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool { return f(ctx, prompt) }

// AutoConfirm approves every prompt.
var AutoConfirm Confirmer = ConfirmFunc(func(context.Context, string) bool { return true })

// Deps are the collaborators injected into every controller.
type Deps struct {
	Source  source.Provider
	Notify  notifier.Notifier
	Confirm Confirmer
	Logger  *slog.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Confirm == nil {
		d.Confirm = AutoConfirm
	}
	if d.Logger == nil {
		d.Logger = logging.Discard()
	}
	return d
}

// Controller holds the most recent successful load of one resource and runs
// every call for it. T is the decoded collection (or record) type.
type Controller[T any] struct {
	deps    Deps
	name    string
	request func() (source.Request, bool)

	mu         sync.Mutex
	data       T
	loaded     bool
	generation uint64
	loading    int
	submitting int
}

// New creates a controller whose Load issues the request built by request.
// request returning false makes Load a silent no-op (no lookup context yet).
func New[T any](name string, deps Deps, request func() (source.Request, bool)) *Controller[T] {
	return &Controller[T]{
		deps:    deps.withDefaults(),
		name:    name,
		request: request,
	}
}

// Static builds a request func for a fixed collection path.
func Static(path string) func() (source.Request, bool) {
	return func() (source.Request, bool) { return source.Get(path), true }
}

// Name returns the resource name.
func (c *Controller[T]) Name() string { return c.name }

// Items returns the held collection.
func (c *Controller[T]) Items() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data
}

// Loaded reports whether any load has succeeded yet.
func (c *Controller[T]) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// Phase returns the current state. Loading wins over Submitting when both
// are in flight.
func (c *Controller[T]) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.loading > 0:
		return Loading
	case c.submitting > 0:
		return Submitting
	default:
		return Idle
	}
}

// Load fetches the collection and replaces the held copy wholesale on
// success. A failed load leaves the held copy untouched.
func (c *Controller[T]) Load(ctx context.Context) bool {
	req, ok := c.request()
	if !ok {
		return false
	}
	return c.LoadFrom(ctx, req)
}

// LoadFrom is Load with an explicit request, used by search and lookups.
// Every call is stamped with a generation; a response that arrives after a
// newer load was issued is discarded. The superseded call still reports
// true since the backend answered; the newer load owns the collection.
func (c *Controller[T]) LoadFrom(ctx context.Context, req source.Request) bool {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.loading++
	c.mu.Unlock()

	res := c.deps.Source.Fetch(ctx, req)
	out, ok := c.decode(ctx, res)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading--
	if !ok {
		return false
	}
	if gen != c.generation {
		c.deps.Logger.DebugContext(ctx, "drop stale load", "resource", c.name, "path", req.Path, "generation", gen, "latest", c.generation)
		return true
	}
	c.data = out
	c.loaded = true
	return true
}

func (c *Controller[T]) decode(ctx context.Context, res gateway.Result) (T, bool) {
	var out T
	if !res.Success {
		return out, false
	}
	if err := res.Decode(&out); err != nil && !errors.Is(err, gateway.ErrNoData) {
		c.deps.Notify.Notify(ctx, notifier.Error, "Invalid response: "+err.Error())
		return out, false
	}
	return out, true
}

// Read fetches a single record into out without touching the collection.
func (c *Controller[T]) Read(ctx context.Context, req source.Request, out any) bool {
	c.mu.Lock()
	c.loading++
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.loading--
		c.mu.Unlock()
	}()

	res := c.deps.Source.Fetch(ctx, req)
	if !res.Success {
		return false
	}
	if err := res.Decode(out); err != nil {
		c.deps.Notify.Notify(ctx, notifier.Error, "Invalid response: "+err.Error())
		return false
	}
	return true
}

// Apply issues one mutating call.
func (c *Controller[T]) Apply(ctx context.Context, req source.Request) gateway.Result {
	c.mu.Lock()
	c.submitting++
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.submitting--
		c.mu.Unlock()
	}()
	return c.deps.Source.Apply(ctx, req)
}

// Submit issues one mutating call and, when reload is set, reloads after a
// success.
func (c *Controller[T]) Submit(ctx context.Context, req source.Request, reload bool) bool {
	if !c.Apply(ctx, req).Success {
		return false
	}
	if reload {
		c.Load(ctx)
	}
	return true
}

// Create issues a write; on success it runs reset to clear the input form
// and reloads.
func (c *Controller[T]) Create(ctx context.Context, req source.Request, reset func()) bool {
	if !c.Apply(ctx, req).Success {
		return false
	}
	if reset != nil {
		reset()
	}
	c.Load(ctx)
	return true
}

// Remove asks for confirmation, then issues exactly one destructive call
// followed by one reload on success. Declining issues nothing.
func (c *Controller[T]) Remove(ctx context.Context, prompt string, req source.Request) bool {
	if !c.deps.Confirm.Confirm(ctx, prompt) {
		c.Invalid(ctx, MsgCancelled)
		return false
	}
	return c.Submit(ctx, req, true)
}

// Invalid reports a local validation failure. It always returns false.
func (c *Controller[T]) Invalid(ctx context.Context, msg string) bool {
	c.deps.Notify.Notify(ctx, notifier.Error, msg)
	return false
}

// Notify reports an informational success.
func (c *Controller[T]) Notify(ctx context.Context, msg string) {
	c.deps.Notify.Notify(ctx, notifier.Success, msg)
}

// Present reports whether every value is non-blank.
func Present(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

// SearchOK reports whether q is long enough to search.
func SearchOK(q string) bool {
	return utf8.RuneCountInString(q) >= MinSearchLen
}
