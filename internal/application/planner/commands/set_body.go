package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/ti-habitat-planner/internal/application/mediator"
	"github.com/andrescamacho/ti-habitat-planner/internal/domain/habitat"
)

// SetBodyCommand moves a habitat to another solar body
type SetBodyCommand struct {
	State habitat.HabitatState
	Body  habitat.SolarBody
}

// SetBodyHandler handles the SetBody command
type SetBodyHandler struct {
	rules *habitat.Rules
}

// NewSetBodyHandler creates a new SetBodyHandler
func NewSetBodyHandler(rules *habitat.Rules) *SetBodyHandler {
	return &SetBodyHandler{rules: rules}
}

// Handle executes the SetBody command
func (h *SetBodyHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*SetBodyCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SetBodyCommand")
	}
	if err := requireState(cmd.State); err != nil {
		return nil, err
	}
	if err := validateBody(h.rules, cmd.Body); err != nil {
		return nil, err
	}
	return &HabitatResponse{State: cmd.State.WithBody(cmd.Body)}, nil
}
