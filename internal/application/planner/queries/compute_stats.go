package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/ti-habitat-planner/internal/adapters/metrics"
	"github.com/andrescamacho/ti-habitat-planner/internal/application/common"
	"github.com/andrescamacho/ti-habitat-planner/internal/application/mediator"
	"github.com/andrescamacho/ti-habitat-planner/internal/domain/display"
	"github.com/andrescamacho/ti-habitat-planner/internal/domain/habitat"
	"github.com/andrescamacho/ti-habitat-planner/internal/domain/shared"
)

// ComputeStatsQuery recomputes every derived value of a habitat
type ComputeStatsQuery struct {
	State habitat.HabitatState
}

func (q *ComputeStatsQuery) HabitatType() habitat.HabitatType { return q.State.Type() }

// ComputeStatsResponse holds the raw summary and its rendered form
type ComputeStatsResponse struct {
	Summary *habitat.Summary
	Report  display.Report
}

// ComputeStatsHandler handles the ComputeStats query
type ComputeStatsHandler struct {
	engine *habitat.Engine
}

// NewComputeStatsHandler creates a new ComputeStatsHandler
func NewComputeStatsHandler(engine *habitat.Engine) *ComputeStatsHandler {
	return &ComputeStatsHandler{engine: engine}
}

// Handle executes the ComputeStats query
func (h *ComputeStatsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ComputeStatsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ComputeStatsQuery")
	}
	if query.State.IsZero() {
		return nil, shared.NewValidationError("state", "no habitat loaded")
	}

	start := time.Now()
	summary := h.engine.Summarize(query.State)
	metrics.RecordRecompute(string(query.State.Type()), time.Since(start).Seconds(), len(summary.UnknownModules))

	if len(summary.UnknownModules) > 0 {
		common.LoggerFromContext(ctx).Log("WARNING", "Habitat references modules missing from the catalog", map[string]interface{}{
			"modules": summary.UnknownModules,
		})
	}

	return &ComputeStatsResponse{
		Summary: summary,
		Report:  display.Render(query.State, summary),
	}, nil
}
