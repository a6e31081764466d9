// Package connection tracks how the session is bound to the tracker: demo or
// live mode, whether a live endpoint has been confirmed, and which section the
// operator is looking at.
package connection

import (
	"fmt"
	"net/url"
	"sync"

	"github.com/creamcroissant/trackerctl/internal/config"
)

// Mode 表示会话数据来源，启动时确定后不可更改。
type Mode int

const (
	// Live routes every call through the admin API.
	Live Mode = iota
	// Demo serves the static snapshot.
	Demo
)

func (m Mode) String() string {
	if m == Demo {
		return "demo"
	}
	return "live"
}

// Section identifies a navigation section.
type Section string

const (
	SectionStats      Section = "stats"
	SectionUsers      Section = "users"
	SectionTorrents   Section = "torrents"
	SectionWhitelist  Section = "whitelist"
	SectionBans       Section = "bans"
	SectionRateLimits Section = "ratelimits"
	SectionSnatches   Section = "snatches"
	SectionHnR        Section = "hnr"
	SectionBonus      Section = "bonus"
	SectionSwarms     Section = "swarms"
	SectionSystem     Section = "system"
)

// Sections lists every section in navigation order.
var Sections = []Section{
	SectionStats, SectionUsers, SectionTorrents, SectionWhitelist, SectionBans,
	SectionRateLimits, SectionSnatches, SectionHnR, SectionBonus, SectionSwarms,
	SectionSystem,
}

// ParseSection validates a section name.
func ParseSection(name string) (Section, error) {
	for _, s := range Sections {
		if string(s) == name {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown section %q", name)
}

// DetectMode inspects configuration once at startup. Demo mode is selected
// by the demo flag or by demo=1 in the API URL query string.
func DetectMode(cfg *config.Config) Mode {
	if cfg == nil {
		return Live
	}
	if cfg.Demo {
		return Demo
	}
	if cfg.API.URL != "" {
		if u, err := url.Parse(cfg.API.URL); err == nil && u.Query().Get("demo") == "1" {
			return Demo
		}
	}
	return Live
}

// State is the process-wide connection state. Safe for concurrent use.
type State struct {
	mu        sync.RWMutex
	mode      Mode
	connected bool
	section   Section
}

// NewState creates the state for mode. Demo sessions start connected.
func NewState(mode Mode) *State {
	return &State{
		mode:      mode,
		connected: mode == Demo,
		section:   SectionStats,
	}
}

// Mode returns the session mode.
func (s *State) Mode() Mode {
	return s.mode
}

// Demo reports whether the session serves the snapshot.
func (s *State) Demo() bool {
	return s.mode == Demo
}

// Connected reports whether a live endpoint answered the connect action.
func (s *State) Connected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected
}

// MarkConnected records a successful connect.
func (s *State) MarkConnected() {
	s.mu.Lock()
	s.connected = true
	s.mu.Unlock()
}

// Section returns the active section.
func (s *State) Section() Section {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.section
}

// Show switches the active section.
func (s *State) Show(section Section) {
	s.mu.Lock()
	s.section = section
	s.mu.Unlock()
}
