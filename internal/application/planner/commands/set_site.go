package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/ti-habitat-planner/internal/application/mediator"
	"github.com/andrescamacho/ti-habitat-planner/internal/domain/habitat"
	"github.com/andrescamacho/ti-habitat-planner/internal/domain/shared"
)

// SetSiteCommand declares the monthly yield of one site resource
type SetSiteCommand struct {
	State    habitat.HabitatState
	Resource habitat.Resource
	Amount   float64
}

// SetSiteHandler handles the SetSite command
type SetSiteHandler struct{}

// NewSetSiteHandler creates a new SetSiteHandler
func NewSetSiteHandler() *SetSiteHandler {
	return &SetSiteHandler{}
}

// Handle executes the SetSite command
func (h *SetSiteHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*SetSiteCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SetSiteCommand")
	}
	if err := requireState(cmd.State); err != nil {
		return nil, err
	}
	if cmd.State.Type() != habitat.Base {
		return nil, shared.NewValidationError("site", "site resources apply to bases only")
	}
	if !isMaterial(cmd.Resource) {
		return nil, shared.NewValidationError("resource", fmt.Sprintf("unknown site resource %q", cmd.Resource))
	}

	state, err := cmd.State.WithSiteYield(cmd.Resource, cmd.Amount)
	if err != nil {
		return nil, err
	}
	return &HabitatResponse{State: state}, nil
}

func isMaterial(r habitat.Resource) bool {
	for _, m := range habitat.MaterialResources {
		if m == r {
			return true
		}
	}
	return false
}
