package controller

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/creamcroissant/trackerctl/internal/model"
	"github.com/creamcroissant/trackerctl/internal/source"
)

// BanDraft is the ban-IP input form. Duration is in seconds; empty means a
// permanent ban.
type BanDraft struct {
	IP       string
	Reason   string
	Duration string
}

type banRequest struct {
	IP       string `json:"ip"`
	Reason   string `json:"reason"`
	Duration *int64 `json:"duration,omitempty"`
}

// Bans manages IP bans. Entries are keyed by IP.
type Bans struct {
	*Controller[[]model.Ban]
	Draft      Slot[BanDraft]
	activeOnly atomic.Bool
}

// NewBans creates the bans controller.
func NewBans(deps Deps) *Bans {
	b := &Bans{}
	b.Controller = New[[]model.Ban]("bans", deps, func() (source.Request, bool) {
		if b.activeOnly.Load() {
			return source.Get("/bans/active"), true
		}
		return source.Get("/bans"), true
	})
	return b
}

// SetActiveOnly restricts subsequent loads to unexpired bans.
func (b *Bans) SetActiveOnly(on bool) {
	b.activeOnly.Store(on)
}

// ActiveOnly reports the current filter.
func (b *Bans) ActiveOnly() bool {
	return b.activeOnly.Load()
}

// Ban bans the drafted IP. duration is only sent when provided.
func (b *Bans) Ban(ctx context.Context) bool {
	d := b.Draft.Value()
	if !Present(d.IP, d.Reason) {
		return b.Invalid(ctx, "IP and reason required")
	}
	body := banRequest{IP: d.IP, Reason: d.Reason}
	if s := strings.TrimSpace(d.Duration); s != "" {
		secs, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return b.Invalid(ctx, "Duration must be a number of seconds")
		}
		body.Duration = &secs
	}
	return b.Create(ctx, source.Request{
		Method: http.MethodPost,
		Path:   "/bans",
		Body:   body,
		Notice: "IP banned",
	}, b.Draft.Clear)
}

// Unban lifts the ban on ip after confirmation.
func (b *Bans) Unban(ctx context.Context, ip string) bool {
	return b.Remove(ctx, "Unban "+ip+"?", source.Request{
		Method: http.MethodDelete,
		Path:   "/bans/" + url.PathEscape(ip),
		Notice: "IP unbanned",
	})
}

// Cleanup removes expired bans and reloads.
func (b *Bans) Cleanup(ctx context.Context) bool {
	return b.Submit(ctx, reqCleanBans, true)
}
