package controller

import (
	"context"
	"net/http"

	"github.com/creamcroissant/trackerctl/internal/model"
	"github.com/creamcroissant/trackerctl/internal/source"
)

// System shows the verification cache and runs maintenance jobs.
type System struct {
	*Controller[model.VerificationStats]
}

// NewSystem creates the system controller.
func NewSystem(deps Deps) *System {
	return &System{Controller: New[model.VerificationStats]("system", deps, Static("/verification/stats"))}
}

func (s *System) Flush(ctx context.Context) bool          { return s.Submit(ctx, reqFlushStats, false) }
func (s *System) CheckHnR(ctx context.Context) bool       { return s.Submit(ctx, reqCheckHnR, false) }
func (s *System) CalculateBonus(ctx context.Context) bool { return s.Submit(ctx, reqCalcBonus, false) }
func (s *System) CleanupBans(ctx context.Context) bool    { return s.Submit(ctx, reqCleanBans, false) }

// ClearCache empties the torrent verification cache and reloads its stats.
func (s *System) ClearCache(ctx context.Context) bool {
	return s.Submit(ctx, source.Request{
		Method: http.MethodDelete,
		Path:   "/verification/cache",
		Notice: "Verification cache cleared",
	}, true)
}
