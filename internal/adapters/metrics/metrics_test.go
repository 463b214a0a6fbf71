package metrics

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/ti-habitat-planner/internal/application/mediator"
	"github.com/andrescamacho/ti-habitat-planner/internal/domain/habitat"
	"github.com/andrescamacho/ti-habitat-planner/internal/domain/shared"
)

type placeModuleCommand struct {
	habType habitat.HabitatType
}

func (c *placeModuleCommand) HabitatType() habitat.HabitatType { return c.habType }

type listCoresQuery struct{}

func TestRequestName(t *testing.T) {
	assert.Equal(t, "placeModuleCommand", requestName(&placeModuleCommand{}))
	assert.Equal(t, "listCoresQuery", requestName(listCoresQuery{}))
	assert.Equal(t, "Unknown", requestName(nil))
}

func TestOutcome(t *testing.T) {
	tests := map[string]struct {
		err  error
		want string
	}{
		"success":        {nil, OutcomeOK},
		"validation":     {shared.NewValidationError("cell", "bad label"), OutcomeValidation},
		"unknown module": {shared.NewUnknownModuleError("Farmm", []string{"Farm"}), OutcomeUnknownModule},
		"invalid import": {shared.NewInvalidHabitatError("tier 9"), OutcomeRejected},
		"occupied core":  {shared.NewCellNotEditableError("1_3", "core cell"), OutcomeRejected},
		"wrapped":        {fmt.Errorf("place: %w", shared.NewModuleNotAllowedError("0_3", "Farm", "not a mine")), OutcomeRejected},
		"anything else":  {errors.New("disk full"), OutcomeInternal},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, Outcome(tt.err))
		})
	}
}

func TestPrometheusMiddleware_LabelsOutcomeAndHabitatType(t *testing.T) {
	// Arrange
	collector := NewCommandMetricsCollector()
	mw := PrometheusMiddleware(collector)
	base := &placeModuleCommand{habType: habitat.Base}
	ok := func(ctx context.Context, request mediator.Request) (mediator.Response, error) { return "done", nil }
	rejected := func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		return nil, shared.NewModuleNotAllowedError("0_3", "Farm", "not a mine")
	}
	broken := func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		return nil, errors.New("boom")
	}

	// Act
	resp, err := mw(context.Background(), base, ok)
	require.NoError(t, err)
	_, err = mw(context.Background(), base, rejected)
	require.Error(t, err)
	_, err = mw(context.Background(), listCoresQuery{}, broken)
	require.Error(t, err)

	// Assert
	assert.Equal(t, "done", resp)
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.requestsTotal.WithLabelValues("placeModuleCommand", OutcomeOK, "base")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.requestsTotal.WithLabelValues("placeModuleCommand", OutcomeRejected, "base")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.requestsTotal.WithLabelValues("listCoresQuery", OutcomeInternal, noHabitat)))
}

func TestPrometheusMiddleware_PrefersResponseHabitatType(t *testing.T) {
	collector := NewCommandMetricsCollector()
	mw := PrometheusMiddleware(collector)

	_, err := mw(context.Background(), &placeModuleCommand{}, func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		return &placeModuleCommand{habType: habitat.Station}, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.requestsTotal.WithLabelValues("placeModuleCommand", OutcomeOK, "station")))
}

func TestPrometheusMiddleware_NilCollectorPassesThrough(t *testing.T) {
	mw := PrometheusMiddleware(nil)

	resp, err := mw(context.Background(), &placeModuleCommand{},
		func(ctx context.Context, request mediator.Request) (mediator.Response, error) { return 7, nil })

	require.NoError(t, err)
	assert.Equal(t, 7, resp)
}

func TestPlannerMetricsCollector(t *testing.T) {
	// Arrange
	c := NewPlannerMetricsCollector()
	SetGlobalPlannerCollector(c)
	defer SetGlobalPlannerCollector(nil)

	// Act
	RecordRecompute("base", 0.0001, 2)
	RecordRecompute("base", 0.0002, 0)
	RecordImportFailure("file")
	RecordCatalogReload(true, 42)
	RecordCatalogReload(false, 0)

	// Assert
	assert.Equal(t, 2.0, testutil.ToFloat64(c.recomputesTotal.WithLabelValues("base")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.unknownModules.WithLabelValues("base")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.importFailures.WithLabelValues("file")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.catalogReloads.WithLabelValues("error")))
	assert.Equal(t, 42.0, testutil.ToFloat64(c.catalogModules))
}

func TestRegister_NoopWithoutRegistry(t *testing.T) {
	Registry = nil

	assert.NoError(t, NewPlannerMetricsCollector().Register())
	assert.NoError(t, NewCommandMetricsCollector().Register())
	assert.False(t, IsEnabled())
}

func TestRegister_WithRegistry(t *testing.T) {
	InitRegistry()
	defer func() { Registry = nil }()

	require.NoError(t, NewPlannerMetricsCollector().Register())
	require.NoError(t, NewAPIMetricsCollector().Register())
	assert.True(t, IsEnabled())
	assert.Same(t, Registry, GetRegistry())
}
