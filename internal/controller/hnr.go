package controller

import (
	"context"

	"github.com/creamcroissant/trackerctl/internal/model"
)

// HnR lists snatches currently flagged as hit-and-run.
type HnR struct {
	*Controller[[]model.Snatch]
}

// NewHnR creates the hit-and-run controller.
func NewHnR(deps Deps) *HnR {
	return &HnR{Controller: New[[]model.Snatch]("hnr", deps, Static("/hnr"))}
}

// Check runs detection and reloads.
func (h *HnR) Check(ctx context.Context) bool {
	return h.Submit(ctx, reqCheckHnR, true)
}

// Clear drops the flag on snatch id and reloads.
func (h *HnR) Clear(ctx context.Context, id int64) bool {
	return h.Submit(ctx, clearHnRRequest(id), true)
}
