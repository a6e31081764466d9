package controller

import (
	"context"
	"net/http"
	"net/url"

	"github.com/creamcroissant/trackerctl/internal/model"
	"github.com/creamcroissant/trackerctl/internal/source"
)

// WhitelistDraft is the add-client input form.
type WhitelistDraft struct {
	Prefix string
	Name   string
}

// Whitelist manages admitted client prefixes. Entries are keyed by prefix.
type Whitelist struct {
	*Controller[[]model.WhitelistEntry]
	Draft Slot[WhitelistDraft]
}

// NewWhitelist creates the whitelist controller.
func NewWhitelist(deps Deps) *Whitelist {
	return &Whitelist{Controller: New[[]model.WhitelistEntry]("whitelist", deps, Static("/whitelist"))}
}

// Add whitelists the drafted client.
func (w *Whitelist) Add(ctx context.Context) bool {
	d := w.Draft.Value()
	if !Present(d.Prefix, d.Name) {
		return w.Invalid(ctx, "Prefix and name required")
	}
	return w.Create(ctx, source.Request{
		Method: http.MethodPost,
		Path:   "/whitelist",
		Body:   map[string]string{"prefix": d.Prefix, "name": d.Name},
		Notice: "Client whitelisted",
	}, w.Draft.Clear)
}

// RemovePrefix drops prefix from the whitelist after confirmation.
func (w *Whitelist) RemovePrefix(ctx context.Context, prefix string) bool {
	return w.Remove(ctx, "Remove "+prefix+" from whitelist?", source.Request{
		Method: http.MethodDelete,
		Path:   "/whitelist/" + url.PathEscape(prefix),
		Notice: "Client removed from whitelist",
	})
}
