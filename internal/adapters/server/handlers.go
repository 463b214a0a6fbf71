package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/andrescamacho/ti-habitat-planner/internal/adapters/catalog"
	"github.com/andrescamacho/ti-habitat-planner/internal/application/mediator"
	"github.com/andrescamacho/ti-habitat-planner/internal/application/planner/commands"
	"github.com/andrescamacho/ti-habitat-planner/internal/application/planner/queries"
	"github.com/andrescamacho/ti-habitat-planner/internal/domain/habitat"
	"github.com/andrescamacho/ti-habitat-planner/internal/domain/shared"
)

func (s *Server) listModules(c *gin.Context) {
	tiers := make([]int, 0, len(c.QueryArray("tier")))
	for _, raw := range c.QueryArray("tier") {
		t, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "tier must be an integer"})
			return
		}
		tiers = append(tiers, t)
	}

	cellType := habitat.CellModule
	if c.Query("mining") == "true" {
		cellType = habitat.CellMining
	}

	resp, err := s.app.Mediator.Send(c.Request.Context(), &queries.ListModulesQuery{
		Core:     c.Query("core"),
		CellType: cellType,
		Filter:   catalog.Filter{Tiers: tiers, Incomes: c.QueryArray("income")},
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"modules": resp.(*queries.ListModulesResponse).Modules})
}

func (s *Server) moduleTooltip(c *gin.Context) {
	resp, err := s.app.Mediator.Send(c.Request.Context(), &queries.ModuleTooltipQuery{Module: c.Param("name")})
	if errors.Is(err, shared.ErrUnknownModule) {
		respondErrorStatus(c, http.StatusNotFound, err)
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	result := resp.(*queries.ModuleTooltipResponse)
	c.JSON(http.StatusOK, gin.H{"module": result.Module, "tooltip": result.Tooltip})
}

func (s *Server) listCores(c *gin.Context) {
	resp, err := s.app.Mediator.Send(c.Request.Context(), &queries.ListCoresQuery{
		Type: habitat.HabitatType(c.Query("type")),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cores": resp.(*queries.ListCoresResponse).Cores})
}

func (s *Server) listBodies(c *gin.Context) {
	bodies := make([]BodyResponse, 0, len(habitat.SolarBodies))
	for _, b := range habitat.SolarBodies {
		bodies = append(bodies, BodyResponse{Name: string(b), SolarModifier: s.app.Rules.SolarModifier(b)})
	}
	c.JSON(http.StatusOK, gin.H{"bodies": bodies})
}

func (s *Server) newHabitat(c *gin.Context) {
	var req NewHabitatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	body := habitat.SolarBody(req.Body)
	if body == "" {
		body = habitat.SolarBody(s.app.Config.Planner.DefaultBody)
	}
	s.respondWithHabitat(c, &commands.NewHabitatCommand{Core: req.Core, Body: body, Name: req.Name})
}

func (s *Server) habitatStats(c *gin.Context) {
	var req StatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	s.respondWithHabitat(c, &commands.ImportHabitatCommand{Data: req.Habitat})
}

func (s *Server) placeModule(c *gin.Context) {
	var req PlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	state, err := s.decode(c, req.Habitat)
	if err != nil {
		respondError(c, err)
		return
	}
	s.respondWithHabitat(c, &commands.PlaceModuleCommand{State: state, Cell: req.Cell, Module: req.Module})
}

func (s *Server) clearCell(c *gin.Context) {
	var req ClearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	state, err := s.decode(c, req.Habitat)
	if err != nil {
		respondError(c, err)
		return
	}
	s.respondWithHabitat(c, &commands.ClearCellCommand{State: state, Cell: req.Cell})
}

// importHabitat accepts a habitat file as the raw request body
func (s *Server) importHabitat(c *gin.Context) {
	data, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	s.respondWithHabitat(c, &commands.ImportHabitatCommand{Data: data})
}

func (s *Server) decode(c *gin.Context, data []byte) (habitat.HabitatState, error) {
	resp, err := s.app.Mediator.Send(c.Request.Context(), &commands.ImportHabitatCommand{Data: data})
	if err != nil {
		return habitat.HabitatState{}, err
	}
	return resp.(*commands.HabitatResponse).State, nil
}

// respondWithHabitat runs a habitat-producing command and replies with the
// new habitat, its summary and rendered report
func (s *Server) respondWithHabitat(c *gin.Context, cmd mediator.Request) {
	ctx := c.Request.Context()
	resp, err := s.app.Mediator.Send(ctx, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	out, err := s.render(c, resp.(*commands.HabitatResponse).State)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) render(c *gin.Context, state habitat.HabitatState) (*HabitatResponse, error) {
	ctx := c.Request.Context()
	exported, err := s.app.Mediator.Send(ctx, &commands.ExportHabitatCommand{State: state})
	if err != nil {
		return nil, err
	}
	stats, err := s.app.Mediator.Send(ctx, &queries.ComputeStatsQuery{State: state})
	if err != nil {
		return nil, err
	}
	result := stats.(*queries.ComputeStatsResponse)
	return &HabitatResponse{
		Habitat: exported.(*commands.ExportHabitatResponse).Data,
		Summary: result.Summary,
		Report:  result.Report,
	}, nil
}

// respondError maps planner errors to status codes
func respondError(c *gin.Context, err error) {
	respondErrorStatus(c, statusFor(err), err)
}

func respondErrorStatus(c *gin.Context, status int, err error) {
	body := ErrorResponse{Error: err.Error()}
	var unknown *shared.UnknownModuleError
	if errors.As(err, &unknown) {
		body.Suggestions = unknown.Suggestions
	}
	c.JSON(status, body)
}

func statusFor(err error) int {
	var validation *shared.ValidationError
	switch {
	case errors.Is(err, shared.ErrUnknownModule),
		errors.Is(err, shared.ErrInvalidHabitat),
		errors.Is(err, shared.ErrCellNotEditable),
		errors.Is(err, shared.ErrModuleNotAllowed),
		errors.As(err, &validation):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
