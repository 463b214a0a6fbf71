package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/ti-habitat-planner/internal/application/mediator"
	"github.com/andrescamacho/ti-habitat-planner/internal/domain/habitat"
)

// RenameHabitatCommand sets the display name
type RenameHabitatCommand struct {
	State habitat.HabitatState
	Name  string
}

// RenameHabitatHandler handles the RenameHabitat command
type RenameHabitatHandler struct{}

// NewRenameHabitatHandler creates a new RenameHabitatHandler
func NewRenameHabitatHandler() *RenameHabitatHandler {
	return &RenameHabitatHandler{}
}

// Handle executes the RenameHabitat command
func (h *RenameHabitatHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*RenameHabitatCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RenameHabitatCommand")
	}
	if err := requireState(cmd.State); err != nil {
		return nil, err
	}
	return &HabitatResponse{State: cmd.State.WithName(cmd.Name)}, nil
}
