package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/ti-habitat-planner/internal/adapters/metrics"
	"github.com/andrescamacho/ti-habitat-planner/internal/application/common"
	"github.com/andrescamacho/ti-habitat-planner/internal/application/mediator"
	"github.com/andrescamacho/ti-habitat-planner/internal/application/planner/ports"
	"github.com/andrescamacho/ti-habitat-planner/internal/domain/shared"
)

// ImportHabitatCommand loads a persisted habitat from a file or raw JSON.
// Exactly one of Path and Data must be set.
type ImportHabitatCommand struct {
	Path string
	Data []byte
}

// ImportHabitatHandler handles the ImportHabitat command. A failed import
// never yields a partial state; callers keep whatever they had.
type ImportHabitatHandler struct {
	store ports.HabitatStore
}

// NewImportHabitatHandler creates a new ImportHabitatHandler
func NewImportHabitatHandler(store ports.HabitatStore) *ImportHabitatHandler {
	return &ImportHabitatHandler{store: store}
}

// Handle executes the ImportHabitat command
func (h *ImportHabitatHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*ImportHabitatCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ImportHabitatCommand")
	}
	if (cmd.Path == "") == (len(cmd.Data) == 0) {
		return nil, shared.NewValidationError("import", "exactly one of path or data must be provided")
	}

	source := "data"
	load := func() (*HabitatResponse, error) {
		state, err := h.store.Decode(cmd.Data)
		return &HabitatResponse{State: state}, err
	}
	if cmd.Path != "" {
		source = "file"
		load = func() (*HabitatResponse, error) {
			state, err := h.store.Load(ctx, cmd.Path)
			return &HabitatResponse{State: state}, err
		}
	}

	logger := common.LoggerFromContext(ctx)
	resp, err := load()
	if err != nil {
		metrics.RecordImportFailure(source)
		logger.Log("WARNING", "Habitat import rejected", map[string]interface{}{
			"source": source,
			"path":   cmd.Path,
			"error":  err.Error(),
		})
		return nil, fmt.Errorf("failed to import habitat: %w", err)
	}

	logger.Log("INFO", "Habitat imported", map[string]interface{}{
		"source": source,
		"core":   resp.State.Core(),
		"name":   resp.State.Name(),
	})
	return resp, nil
}
