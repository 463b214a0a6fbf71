package persistence

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// HabitatDocument is the persisted habitat wire format:
//
//	{"cells": {"<row>_<col>": [cellType, moduleOrNull]}, "core": "...", "tier": 1,
//	 "type": "station", "body": "...", "name": "...", "site": {"metals": 2}}
type HabitatDocument struct {
	Cells map[string]CellEntry `json:"cells"`
	Core  string               `json:"core"`
	Tier  int                  `json:"tier"`
	Type  string               `json:"type"`
	Body  string               `json:"body"`
	Name  string               `json:"name"`
	Site  map[string]float64   `json:"site,omitempty"`
}

// CellEntry encodes as a two element array: [cellType, moduleName|null]
type CellEntry struct {
	Type   int
	Module *string
}

// MarshalJSON implements json.Marshaler
func (c CellEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]interface{}{c.Type, c.Module})
}

// UnmarshalJSON implements json.Unmarshaler
func (c *CellEntry) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("cell must be [type, module]: %w", err)
	}
	if len(parts) != 2 {
		return fmt.Errorf("cell must have 2 elements, got %d", len(parts))
	}
	var entry CellEntry
	if err := json.Unmarshal(parts[0], &entry.Type); err != nil {
		return fmt.Errorf("cell type: %w", err)
	}
	if !bytes.Equal(bytes.TrimSpace(parts[1]), []byte("null")) {
		var name string
		if err := json.Unmarshal(parts[1], &name); err != nil {
			return fmt.Errorf("cell module: %w", err)
		}
		entry.Module = &name
	}
	*c = entry
	return nil
}
