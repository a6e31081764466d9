package controller

import (
	"context"
	"fmt"
	"net/http"

	"github.com/creamcroissant/trackerctl/internal/model"
	"github.com/creamcroissant/trackerctl/internal/source"
)

// InfoHashLen is the length of a hex-encoded SHA-1 info hash.
const InfoHashLen = 40

// MsgBadInfoHash is reported for an info hash of the wrong length.
const MsgBadInfoHash = "Info hash must be 40 hex characters"

// TorrentDraft is the register-torrent input form.
type TorrentDraft struct {
	InfoHash string
}

// TorrentEdit is the open edit form of one torrent.
type TorrentEdit struct {
	ID                 int64
	UploadMultiplier   float64
	DownloadMultiplier float64
	Seeders            int
	Leechers           int
}

// Torrents manages registered info hashes.
type Torrents struct {
	*Controller[[]model.Torrent]
	Draft   Slot[TorrentDraft]
	Editing Slot[TorrentEdit]
}

// NewTorrents creates the torrents controller.
func NewTorrents(deps Deps) *Torrents {
	return &Torrents{Controller: New[[]model.Torrent]("torrents", deps, Static("/torrents"))}
}

// Register adds the drafted info hash, sent verbatim.
func (t *Torrents) Register(ctx context.Context) bool {
	hash := t.Draft.Value().InfoHash
	if len(hash) != InfoHashLen {
		return t.Invalid(ctx, MsgBadInfoHash)
	}
	return t.Create(ctx, source.Request{
		Method: http.MethodPost,
		Path:   "/torrents",
		Body:   map[string]string{"info_hash": hash},
		Notice: "Torrent registered",
	}, t.Draft.Clear)
}

// SetFreeleech toggles freeleech for id.
func (t *Torrents) SetFreeleech(ctx context.Context, id int64, on bool) bool {
	req := source.Request{Method: http.MethodPost, Path: torrentPath(id) + "/freeleech", Notice: "Freeleech enabled"}
	if !on {
		req.Method = http.MethodDelete
		req.Notice = "Freeleech disabled"
	}
	return t.Submit(ctx, req, true)
}

// Edit opens the edit form for id.
func (t *Torrents) Edit(ctx context.Context, id int64) bool {
	var tr model.Torrent
	if !t.Read(ctx, source.Get(torrentPath(id)), &tr) {
		return false
	}
	t.Editing.Set(TorrentEdit{
		ID:                 tr.ID,
		UploadMultiplier:   tr.UploadMultiplier,
		DownloadMultiplier: tr.DownloadMultiplier,
		Seeders:            tr.Seeders,
		Leechers:           tr.Leechers,
	})
	return true
}

// SaveEdit writes multipliers then swarm counters, closes the form and
// reloads.
func (t *Torrents) SaveEdit(ctx context.Context) bool {
	edit, ok := t.Editing.Get()
	if !ok {
		return t.Invalid(ctx, "No torrent is being edited")
	}
	if edit.UploadMultiplier < 0 || edit.DownloadMultiplier < 0 {
		return t.Invalid(ctx, "Multipliers must not be negative")
	}

	mult := t.Apply(ctx, source.Request{
		Method: http.MethodPut,
		Path:   torrentPath(edit.ID) + "/multipliers",
		Body: map[string]float64{
			"upload_multiplier":   edit.UploadMultiplier,
			"download_multiplier": edit.DownloadMultiplier,
		},
		Notice: "Multipliers updated",
	})
	stats := t.Apply(ctx, source.Request{
		Method: http.MethodPut,
		Path:   torrentPath(edit.ID) + "/stats",
		Body:   map[string]int{"seeders": edit.Seeders, "leechers": edit.Leechers},
		Notice: "Torrent stats updated",
	})

	t.Editing.Clear()
	t.Load(ctx)
	return mult.Success && stats.Success
}

// Delete removes torrent id after confirmation.
func (t *Torrents) Delete(ctx context.Context, id int64) bool {
	return t.Remove(ctx, fmt.Sprintf("Delete torrent %d?", id), source.Request{
		Method: http.MethodDelete,
		Path:   torrentPath(id),
		Notice: "Torrent deleted",
	})
}

func torrentPath(id int64) string {
	return fmt.Sprintf("/torrents/%d", id)
}
