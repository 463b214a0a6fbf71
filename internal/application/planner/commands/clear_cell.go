package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/ti-habitat-planner/internal/application/common"
	"github.com/andrescamacho/ti-habitat-planner/internal/application/mediator"
	"github.com/andrescamacho/ti-habitat-planner/internal/domain/habitat"
)

// ClearCellCommand removes whatever module occupies a cell
type ClearCellCommand struct {
	State habitat.HabitatState
	Cell  string
}

// ClearCellHandler handles the ClearCell command
type ClearCellHandler struct{}

// NewClearCellHandler creates a new ClearCellHandler
func NewClearCellHandler() *ClearCellHandler {
	return &ClearCellHandler{}
}

// Handle executes the ClearCell command
func (h *ClearCellHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*ClearCellCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ClearCellCommand")
	}
	if err := requireState(cmd.State); err != nil {
		return nil, err
	}

	label, err := habitat.ParseCellLabel(cmd.Cell)
	if err != nil {
		return nil, err
	}
	state, err := cmd.State.WithoutModule(label)
	if err != nil {
		return nil, err
	}

	common.LoggerFromContext(ctx).Log("DEBUG", "Cell cleared", map[string]interface{}{
		"cell": label.String(),
	})

	return &HabitatResponse{State: state}, nil
}
