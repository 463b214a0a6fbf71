package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/ti-habitat-planner/internal/application/common"
	"github.com/andrescamacho/ti-habitat-planner/internal/application/mediator"
	"github.com/andrescamacho/ti-habitat-planner/internal/application/planner/ports"
	"github.com/andrescamacho/ti-habitat-planner/internal/domain/habitat"
	"github.com/andrescamacho/ti-habitat-planner/internal/domain/shared"
)

// NewHabitatCommand starts an empty habitat around a core module
type NewHabitatCommand struct {
	Core string
	Body habitat.SolarBody // Optional: defaults to Earth (LEO)
	Name string
}

// NewHabitatHandler handles the NewHabitat command
type NewHabitatHandler struct {
	catalog ports.CatalogProvider
	rules   *habitat.Rules
}

// NewNewHabitatHandler creates a new NewHabitatHandler
func NewNewHabitatHandler(catalog ports.CatalogProvider, rules *habitat.Rules) *NewHabitatHandler {
	return &NewHabitatHandler{catalog: catalog, rules: rules}
}

// Handle executes the NewHabitat command
func (h *NewHabitatHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*NewHabitatCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *NewHabitatCommand")
	}

	body := cmd.Body
	if body == "" {
		body = habitat.EarthLEO
	}
	if err := validateBody(h.rules, body); err != nil {
		return nil, err
	}

	core, err := h.catalog.Current().Resolve(cmd.Core)
	if err != nil {
		return nil, err
	}
	if !core.CoreModule {
		return nil, shared.NewValidationError("core", fmt.Sprintf("%s is not a core module", core.FriendlyName))
	}

	state, err := habitat.NewHabitatState(core, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create habitat: %w", err)
	}
	state = state.WithName(cmd.Name)

	common.LoggerFromContext(ctx).Log("INFO", "Habitat created", map[string]interface{}{
		"core": core.DataName,
		"type": string(state.Type()),
		"tier": state.Tier(),
		"body": string(body),
	})

	return &HabitatResponse{State: state}, nil
}
