package source

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/creamcroissant/trackerctl/internal/format"
	"github.com/creamcroissant/trackerctl/internal/gateway"
	"github.com/creamcroissant/trackerctl/internal/model"
	"github.com/creamcroissant/trackerctl/internal/notifier"
)

// DefaultNotice is used when a demo mutation carries no action notice.
const DefaultNotice = "Action completed"

// Demo serves a Snapshot through an in-process router speaking the admin
// envelope. It never opens a socket and never mutates the snapshot.
type Demo struct {
	snap   *Snapshot
	notify notifier.Notifier
	router chi.Router
}

// NewDemo builds the demo provider over snap.
func NewDemo(snap *Snapshot, n notifier.Notifier) *Demo {
	d := &Demo{snap: snap, notify: n}
	d.router = d.routes()
	return d
}

// Fetch implements Provider.
func (d *Demo) Fetch(ctx context.Context, req Request) gateway.Result {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	res, _ := d.serve(ctx, method, req.Path, req.Body)
	gateway.Report(ctx, d.notify, res)
	return res
}

// Apply implements Provider. Mutations short-circuit to a synthetic success;
// routes that compute a reply (redeem) still return their payload.
func (d *Demo) Apply(ctx context.Context, req Request) gateway.Result {
	res, status := d.serve(ctx, req.Method, req.Path, req.Body)
	if status == http.StatusNotFound || status == http.StatusMethodNotAllowed || !res.Success {
		res = gateway.Result{Success: true}
	}
	notice := req.Notice
	if notice == "" {
		notice = DefaultNotice
	}
	d.notify.Notify(ctx, notifier.Success, "Demo: "+notice)
	return res
}

func (d *Demo) serve(ctx context.Context, method, path string, body any) (gateway.Result, int) {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return gateway.Result{Success: false, Error: err.Error()}, http.StatusBadRequest
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, "http://demo.invalid"+path, reader)
	if err != nil {
		return gateway.Result{Success: false, Error: err.Error()}, http.StatusBadRequest
	}
	req.Header.Set("Content-Type", "application/json")

	rec := newRecorder()
	d.router.ServeHTTP(rec, req)

	var res gateway.Result
	if err := json.Unmarshal(rec.body.Bytes(), &res); err != nil {
		return gateway.Result{Success: false, Error: err.Error()}, rec.status
	}
	return res, rec.status
}

func (d *Demo) routes() chi.Router {
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/stats", func(w http.ResponseWriter, _ *http.Request) { writeData(w, d.snap.Stats) })

	r.Route("/users", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, _ *http.Request) { writeData(w, d.snap.Users) })
		r.Get("/search", d.searchUsers)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", d.getUser)
			r.Get("/snatches", d.userSnatches)
			r.Get("/points", d.userPoints)
			r.Post("/redeem", d.redeem)
		})
	})

	r.Route("/torrents", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, _ *http.Request) { writeData(w, d.snap.Torrents) })
		r.Get("/{id}", d.getTorrent)
		r.Get("/{id}/snatches", d.torrentSnatches)
	})

	r.Get("/whitelist", func(w http.ResponseWriter, _ *http.Request) { writeData(w, d.snap.Whitelist) })
	r.Get("/bans", func(w http.ResponseWriter, _ *http.Request) { writeData(w, d.snap.Bans) })
	r.Get("/bans/active", d.activeBans)
	r.Get("/ratelimits", func(w http.ResponseWriter, _ *http.Request) { writeData(w, d.snap.RateLimits) })
	r.Get("/ratelimits/{ip}", d.ipState)
	r.Get("/snatches/{id}", d.getSnatch)
	r.Get("/hnr", d.hnr)
	r.Get("/bonus/stats", func(w http.ResponseWriter, _ *http.Request) { writeData(w, d.snap.Bonus) })
	r.Get("/swarms", func(w http.ResponseWriter, _ *http.Request) { writeData(w, d.snap.Swarms) })
	r.Get("/verification/stats", func(w http.ResponseWriter, _ *http.Request) { writeData(w, d.snap.Verification) })
	return r
}

func (d *Demo) searchUsers(w http.ResponseWriter, r *http.Request) {
	q := strings.ToLower(r.URL.Query().Get("q"))
	out := make([]model.User, 0)
	for _, u := range d.snap.Users {
		if strings.Contains(strings.ToLower(u.Passkey), q) || strconv.FormatInt(u.ID, 10) == q {
			out = append(out, u)
		}
	}
	writeData(w, out)
}

func (d *Demo) getUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	for _, u := range d.snap.Users {
		if u.ID == id {
			writeData(w, u)
			return
		}
	}
	writeError(w, http.StatusNotFound, "User not found")
}

func (d *Demo) userSnatches(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	out := make([]model.Snatch, 0)
	for _, s := range d.snap.Snatches {
		if s.UserID == id {
			out = append(out, s)
		}
	}
	writeData(w, out)
}

func (d *Demo) userPoints(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	for _, u := range d.snap.Users {
		if u.ID == id {
			writeData(w, model.BonusBalance{UserID: u.ID, BonusPoints: u.BonusPoints})
			return
		}
	}
	writeError(w, http.StatusNotFound, "User not found")
}

func (d *Demo) redeem(w http.ResponseWriter, r *http.Request) {
	if _, ok := pathID(w, r); !ok {
		return
	}
	var body struct {
		Points float64 `json:"points"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Points <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid points")
		return
	}
	credit := int64(body.Points * float64(d.snap.Bonus.ConversionRate))
	writeData(w, model.Redemption{
		PointsRedeemed:        body.Points,
		UploadCredit:          credit,
		UploadCreditFormatted: format.Bytes(credit),
	})
}

func (d *Demo) getTorrent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	for _, t := range d.snap.Torrents {
		if t.ID == id {
			writeData(w, t)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Torrent not found")
}

func (d *Demo) torrentSnatches(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	out := make([]model.Snatch, 0)
	for _, s := range d.snap.Snatches {
		if s.TorrentID == id {
			out = append(out, s)
		}
	}
	writeData(w, out)
}

func (d *Demo) activeBans(w http.ResponseWriter, _ *http.Request) {
	out := make([]model.Ban, 0)
	for _, b := range d.snap.Bans {
		if b.Permanent() || b.ExpiresAt.After(d.snap.Taken) {
			out = append(out, b)
		}
	}
	writeData(w, out)
}

func (d *Demo) ipState(w http.ResponseWriter, r *http.Request) {
	ip := chi.URLParam(r, "ip")
	if state, ok := d.snap.IPStates[ip]; ok {
		writeData(w, state)
		return
	}
	writeData(w, model.IPRateLimit{IP: ip, Buckets: map[string]model.RateBucket{
		"announce":  {Limit: 30, WindowSeconds: 60},
		"scrape":    {Limit: 10, WindowSeconds: 60},
		"admin_api": {Limit: 100, WindowSeconds: 60},
	}})
}

func (d *Demo) getSnatch(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	for _, s := range d.snap.Snatches {
		if s.ID == id {
			writeData(w, s)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Snatch not found")
}

func (d *Demo) hnr(w http.ResponseWriter, _ *http.Request) {
	out := make([]model.Snatch, 0)
	for _, s := range d.snap.Snatches {
		if s.HnR {
			out = append(out, s)
		}
	}
	writeData(w, out)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}

func writeData(w http.ResponseWriter, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeResult(w, http.StatusOK, gateway.Result{Success: true, Data: raw})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeResult(w, status, gateway.Result{Success: false, Error: msg})
}

func writeResult(w http.ResponseWriter, status int, res gateway.Result) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(res)
}

// recorder is a minimal in-memory http.ResponseWriter.
type recorder struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func newRecorder() *recorder {
	return &recorder{header: make(http.Header), status: http.StatusOK}
}

func (r *recorder) Header() http.Header { return r.header }

func (r *recorder) WriteHeader(status int) { r.status = status }

func (r *recorder) Write(p []byte) (int, error) { return r.body.Write(p) }
