package controller

import (
	"context"

	"github.com/creamcroissant/trackerctl/internal/connection"
)

// Loader is the lifecycle every controller exposes to its surface.
type Loader interface {
	Name() string
	Load(ctx context.Context) bool
	Phase() Phase
	Loaded() bool
}

// Set holds one controller per section.
type Set struct {
	Dashboard  *Dashboard
	Users      *Users
	Torrents   *Torrents
	Whitelist  *Whitelist
	Bans       *Bans
	RateLimits *RateLimits
	Snatches   *Snatches
	HnR        *HnR
	Bonus      *Bonus
	Swarms     *Swarms
	System     *System
}

// NewSet creates every controller over the same dependencies. Controllers
// share collaborators, never state.
func NewSet(deps Deps) *Set {
	return &Set{
		Dashboard:  NewDashboard(deps),
		Users:      NewUsers(deps),
		Torrents:   NewTorrents(deps),
		Whitelist:  NewWhitelist(deps),
		Bans:       NewBans(deps),
		RateLimits: NewRateLimits(deps),
		Snatches:   NewSnatches(deps),
		HnR:        NewHnR(deps),
		Bonus:      NewBonus(deps),
		Swarms:     NewSwarms(deps),
		System:     NewSystem(deps),
	}
}

// For returns the controller rendering section.
func (s *Set) For(section connection.Section) Loader {
	switch section {
	case connection.SectionUsers:
		return s.Users
	case connection.SectionTorrents:
		return s.Torrents
	case connection.SectionWhitelist:
		return s.Whitelist
	case connection.SectionBans:
		return s.Bans
	case connection.SectionRateLimits:
		return s.RateLimits
	case connection.SectionSnatches:
		return s.Snatches
	case connection.SectionHnR:
		return s.HnR
	case connection.SectionBonus:
		return s.Bonus
	case connection.SectionSwarms:
		return s.Swarms
	case connection.SectionSystem:
		return s.System
	default:
		return s.Dashboard
	}
}
