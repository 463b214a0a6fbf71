package server

import (
	"encoding/json"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/andrescamacho/ti-habitat-planner/internal/domain/display"
	"github.com/andrescamacho/ti-habitat-planner/internal/domain/habitat"
)

// NewHabitatRequest starts a habitat around a core
type NewHabitatRequest struct {
	Core string `json:"core" binding:"required"`
	Body string `json:"body"`
	Name string `json:"name" binding:"max=120"`
}

// StatsRequest carries a persisted habitat document
type StatsRequest struct {
	Habitat json.RawMessage `json:"habitat" binding:"required"`
}

// PlaceRequest installs a module into a cell of the given habitat
type PlaceRequest struct {
	Habitat json.RawMessage `json:"habitat" binding:"required"`
	Cell    string          `json:"cell" binding:"required,cell_label"`
	Module  string          `json:"module" binding:"required"`
}

// ClearRequest empties a cell of the given habitat
type ClearRequest struct {
	Habitat json.RawMessage `json:"habitat" binding:"required"`
	Cell    string          `json:"cell" binding:"required,cell_label"`
}

// HabitatResponse is returned by every endpoint that yields a habitat
type HabitatResponse struct {
	Habitat json.RawMessage  `json:"habitat"`
	Summary *habitat.Summary `json:"summary"`
	Report  display.Report   `json:"report"`
}

// BodyResponse describes one selectable solar body
type BodyResponse struct {
	Name          string  `json:"name"`
	SolarModifier float64 `json:"solar_modifier"`
}

// ErrorResponse is the body of every 4xx/5xx reply
type ErrorResponse struct {
	Error       string   `json:"error"`
	Suggestions []string `json:"suggestions,omitempty"`
}

var registerOnce sync.Once

// registerValidators adds the cell_label tag to gin's validator
func registerValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("cell_label", func(fl validator.FieldLevel) bool {
				_, err := habitat.ParseCellLabel(fl.Field().String())
				return err == nil
			})
		}
	})
}
