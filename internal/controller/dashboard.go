package controller

import (
	"context"
	"net/http"

	"github.com/creamcroissant/trackerctl/internal/model"
	"github.com/creamcroissant/trackerctl/internal/source"
)

// 维护类操作，仪表盘与系统页共用。
var (
	reqFlushStats = source.Request{Method: http.MethodPost, Path: "/stats/flush", Notice: "Stats flushed to database"}
	reqCheckHnR   = source.Request{Method: http.MethodPost, Path: "/hnr/check", Notice: "HnR check completed"}
	reqCalcBonus  = source.Request{Method: http.MethodPost, Path: "/bonus/calculate", Notice: "Bonus points calculated"}
	reqCleanBans  = source.Request{Method: http.MethodPost, Path: "/bans/cleanup", Notice: "Expired bans cleaned up"}
)

// Dashboard shows aggregate tracker statistics.
type Dashboard struct {
	*Controller[model.Stats]
}

// NewDashboard creates the dashboard controller.
func NewDashboard(deps Deps) *Dashboard {
	return &Dashboard{Controller: New[model.Stats]("stats", deps, Static("/stats"))}
}

// Flush persists in-memory counters to the database.
func (d *Dashboard) Flush(ctx context.Context) bool {
	return d.Submit(ctx, reqFlushStats, false)
}

// CheckHnR runs hit-and-run detection.
func (d *Dashboard) CheckHnR(ctx context.Context) bool {
	return d.Submit(ctx, reqCheckHnR, false)
}

// CalculateBonus recomputes bonus points.
func (d *Dashboard) CalculateBonus(ctx context.Context) bool {
	return d.Submit(ctx, reqCalcBonus, false)
}

// CleanupBans removes expired bans.
func (d *Dashboard) CleanupBans(ctx context.Context) bool {
	return d.Submit(ctx, reqCleanBans, false)
}
