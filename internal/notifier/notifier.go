// Package notifier surfaces short-lived success and error messages to the
// operator.
package notifier

import (
	"context"
	"fmt"
	"html"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/microcosm-cc/bluemonday"
	gocache "github.com/patrickmn/go-cache"

	"github.com/creamcroissant/trackerctl/internal/support/logging"
)

// Severity classifies a notice.
type Severity string

const (
	Success Severity = "success"
	Error   Severity = "error"
)

// DismissAfter is how long a notice stays visible.
const DismissAfter = 3 * time.Second

// Notice is one message shown to the operator.
type Notice struct {
	ID       uint64
	Text     string
	Severity Severity
	At       time.Time
}

// Notifier accepts messages for display.
type Notifier interface {
	Notify(ctx context.Context, severity Severity, text string)
}

// Board 是带自动消失的消息面板，消息保存在 go-cache 中，过期即不可见。
type Board struct {
	items  *gocache.Cache
	policy *bluemonday.Policy
	logger *slog.Logger
	ttl    time.Duration
	seq    atomic.Uint64

	mu  sync.Mutex
	out io.Writer
}

// Option configures a Board.
type Option func(*Board)

// WithLogger 设置面板使用的日志实例。
func WithLogger(logger *slog.Logger) Option {
	return func(b *Board) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithWriter echoes every notice to w as it arrives.
func WithWriter(w io.Writer) Option {
	return func(b *Board) {
		b.out = w
	}
}

// WithTTL overrides the auto-dismiss duration.
func WithTTL(ttl time.Duration) Option {
	return func(b *Board) {
		if ttl > 0 {
			b.ttl = ttl
		}
	}
}

// NewBoard creates an empty board.
func NewBoard(opts ...Option) *Board {
	b := &Board{
		policy: bluemonday.StrictPolicy(),
		logger: logging.Discard(),
		ttl:    DismissAfter,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.items = gocache.New(b.ttl, b.ttl)
	return b
}

// Notify records a notice. Markup in text is stripped since backend supplied
// messages are displayed verbatim in the terminal.
func (b *Board) Notify(ctx context.Context, severity Severity, text string) {
	n := Notice{
		ID:       b.seq.Add(1),
		Text:     strings.TrimSpace(html.UnescapeString(b.policy.Sanitize(text))),
		Severity: severity,
		At:       time.Now(),
	}
	b.items.Set(strconv.FormatUint(n.ID, 10), n, gocache.DefaultExpiration)

	if severity == Error {
		b.logger.WarnContext(ctx, "notice", "severity", severity, "text", n.Text)
	} else {
		b.logger.InfoContext(ctx, "notice", "severity", severity, "text", n.Text)
	}

	if b.out != nil {
		b.mu.Lock()
		fmt.Fprintln(b.out, Format(n))
		b.mu.Unlock()
	}
}

// Active returns the notices that have not been dismissed yet, oldest first.
func (b *Board) Active() []Notice {
	items := b.items.Items()
	list := make([]Notice, 0, len(items))
	for _, item := range items {
		if n, ok := item.Object.(Notice); ok {
			list = append(list, n)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

// Dismiss removes a notice before its timer runs out.
func (b *Board) Dismiss(id uint64) {
	b.items.Delete(strconv.FormatUint(id, 10))
}

var (
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E")).Bold(true)
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
)

// Format renders a notice as a single terminal line.
func Format(n Notice) string {
	if n.Severity == Error {
		return styleError.Render("✗") + " " + n.Text
	}
	return styleSuccess.Render("✓") + " " + n.Text
}

// Recorder keeps every notice in memory; useful for tests and scripting.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

// Notify implements Notifier.
func (r *Recorder) Notify(_ context.Context, severity Severity, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, Notice{
		ID:       uint64(len(r.notices) + 1),
		Text:     text,
		Severity: severity,
		At:       time.Now(),
	})
}

// Notices returns a copy of the recorded notices.
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}

// Last returns the most recent notice.
func (r *Recorder) Last() (Notice, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return Notice{}, false
	}
	return r.notices[len(r.notices)-1], true
}

// Reset forgets all recorded notices.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.notices = nil
	r.mu.Unlock()
}
