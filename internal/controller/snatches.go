package controller

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/creamcroissant/trackerctl/internal/model"
	"github.com/creamcroissant/trackerctl/internal/source"
)

// Lookup is the context the snatch list was last loaded for.
type Lookup struct {
	// Kind is "users" or "torrents".
	Kind string
	ID   string
}

func (l Lookup) path() string {
	return "/" + l.Kind + "/" + url.PathEscape(l.ID) + "/snatches"
}

// Snatches lists completion records for one user or one torrent.
type Snatches struct {
	*Controller[[]model.Snatch]
	Context Slot[Lookup]
	Detail  Slot[model.Snatch]
}

// NewSnatches creates the snatches controller. Load is a no-op until a
// lookup context exists.
func NewSnatches(deps Deps) *Snatches {
	s := &Snatches{}
	s.Controller = New[[]model.Snatch]("snatches", deps, func() (source.Request, bool) {
		l, ok := s.Context.Get()
		if !ok {
			return source.Request{}, false
		}
		return source.Get(l.path()), true
	})
	return s
}

// ByUser loads the snatches of a user.
func (s *Snatches) ByUser(ctx context.Context, userID string) bool {
	if !Present(userID) {
		return s.Invalid(ctx, "Enter a user ID")
	}
	return s.lookup(ctx, Lookup{Kind: "users", ID: strings.TrimSpace(userID)})
}

// ByTorrent loads the snatches of a torrent.
func (s *Snatches) ByTorrent(ctx context.Context, torrentID string) bool {
	if !Present(torrentID) {
		return s.Invalid(ctx, "Enter a torrent ID")
	}
	return s.lookup(ctx, Lookup{Kind: "torrents", ID: strings.TrimSpace(torrentID)})
}

func (s *Snatches) lookup(ctx context.Context, l Lookup) bool {
	s.Context.Set(l)
	return s.Load(ctx)
}

// Get loads one snatch into the detail slot.
func (s *Snatches) Get(ctx context.Context, id int64) bool {
	var sn model.Snatch
	if !s.Read(ctx, source.Get(snatchPath(id)), &sn) {
		return false
	}
	s.Detail.Set(sn)
	return true
}

// ClearHnR clears the hit-and-run flag of a snatch and reruns the lookup.
func (s *Snatches) ClearHnR(ctx context.Context, id int64) bool {
	return s.Submit(ctx, clearHnRRequest(id), true)
}

// Delete removes a snatch after confirmation and reruns the lookup.
func (s *Snatches) Delete(ctx context.Context, id int64) bool {
	return s.Remove(ctx, fmt.Sprintf("Delete snatch %d?", id), source.Request{
		Method: http.MethodDelete,
		Path:   snatchPath(id),
		Notice: "Snatch deleted",
	})
}

func snatchPath(id int64) string {
	return fmt.Sprintf("/snatches/%d", id)
}

func clearHnRRequest(id int64) source.Request {
	return source.Request{
		Method: http.MethodDelete,
		Path:   snatchPath(id) + "/hnr",
		Notice: "HnR flag cleared",
	}
}
