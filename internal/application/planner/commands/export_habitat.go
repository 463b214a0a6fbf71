package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/ti-habitat-planner/internal/application/common"
	"github.com/andrescamacho/ti-habitat-planner/internal/application/mediator"
	"github.com/andrescamacho/ti-habitat-planner/internal/application/planner/ports"
	"github.com/andrescamacho/ti-habitat-planner/internal/domain/habitat"
)

// ExportHabitatCommand serializes a habitat, optionally writing it to Path
type ExportHabitatCommand struct {
	State habitat.HabitatState
	Path  string // Optional: when empty only Data is returned
}

// ExportHabitatResponse carries the compact JSON export
type ExportHabitatResponse struct {
	Data []byte
	Path string
}

// ExportHabitatHandler handles the ExportHabitat command
type ExportHabitatHandler struct {
	store ports.HabitatStore
}

// NewExportHabitatHandler creates a new ExportHabitatHandler
func NewExportHabitatHandler(store ports.HabitatStore) *ExportHabitatHandler {
	return &ExportHabitatHandler{store: store}
}

// Handle executes the ExportHabitat command
func (h *ExportHabitatHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*ExportHabitatCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ExportHabitatCommand")
	}
	if err := requireState(cmd.State); err != nil {
		return nil, err
	}

	data, err := h.store.Encode(cmd.State)
	if err != nil {
		return nil, fmt.Errorf("failed to export habitat: %w", err)
	}

	if cmd.Path != "" {
		if err := h.store.Save(ctx, cmd.Path, cmd.State); err != nil {
			return nil, err
		}
		common.LoggerFromContext(ctx).Log("INFO", "Habitat saved", map[string]interface{}{
			"path": cmd.Path,
		})
	}

	return &ExportHabitatResponse{Data: data, Path: cmd.Path}, nil
}
