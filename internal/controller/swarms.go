package controller

import "github.com/creamcroissant/trackerctl/internal/model"

// Swarms lists active swarms. Read-only.
type Swarms struct {
	*Controller[[]model.Swarm]
}

// NewSwarms creates the swarms controller.
func NewSwarms(deps Deps) *Swarms {
	return &Swarms{Controller: New[[]model.Swarm]("swarms", deps, Static("/swarms"))}
}
