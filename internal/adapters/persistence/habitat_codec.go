package persistence

import (
	"encoding/json"
	"fmt"

	"github.com/andrescamacho/ti-habitat-planner/internal/domain/habitat"
	"github.com/andrescamacho/ti-habitat-planner/internal/domain/shared"
)

// EncodeHabitat renders state as compact JSON
func EncodeHabitat(state habitat.HabitatState) ([]byte, error) {
	return json.Marshal(stateToDocument(state))
}

// DecodeHabitat parses persisted JSON into a new state. On any error the
// caller's current state is left as it was; nothing is partially applied.
func DecodeHabitat(data []byte) (habitat.HabitatState, error) {
	var doc HabitatDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return habitat.HabitatState{}, invalid(fmt.Sprintf("malformed JSON: %v", err))
	}
	return documentToState(&doc)
}

func stateToDocument(state habitat.HabitatState) *HabitatDocument {
	data := state.Data()
	doc := &HabitatDocument{
		Cells: make(map[string]CellEntry, len(data.Cells)),
		Core:  data.Core,
		Tier:  data.Tier,
		Type:  string(data.Type),
		Body:  string(data.Body),
		Name:  data.Name,
	}
	for label, cell := range data.Cells {
		entry := CellEntry{Type: int(cell.Type)}
		if cell.Module != "" {
			name := cell.Module
			entry.Module = &name
		}
		doc.Cells[label.String()] = entry
	}
	for res, v := range data.Site {
		if v == 0 {
			continue
		}
		if doc.Site == nil {
			doc.Site = make(map[string]float64)
		}
		doc.Site[string(res)] = v
	}
	return doc
}

func documentToState(doc *HabitatDocument) (habitat.HabitatState, error) {
	if doc.Core == "" {
		return habitat.HabitatState{}, invalid("core is required")
	}
	typ := habitat.HabitatType(doc.Type)
	if !typ.IsValid() {
		return habitat.HabitatState{}, invalid(fmt.Sprintf("type must be station or base, got %q", doc.Type))
	}

	cells := make(map[habitat.CellLabel]habitat.Cell, len(doc.Cells))
	for key, entry := range doc.Cells {
		label, err := habitat.ParseCellLabel(key)
		if err != nil {
			return habitat.HabitatState{}, invalid(err.Error())
		}
		cell := habitat.Cell{Type: habitat.CellType(entry.Type)}
		if entry.Module != nil {
			cell.Module = *entry.Module
		}
		cells[label] = cell
	}

	site := make(habitat.ResourceMap, len(doc.Site))
	for res, v := range doc.Site {
		site[habitat.Resource(res)] = v
	}

	return habitat.RestoreHabitatState(habitat.HabitatStateData{
		Cells: cells,
		Core:  doc.Core,
		Tier:  doc.Tier,
		Type:  typ,
		Body:  habitat.SolarBody(doc.Body),
		Name:  doc.Name,
		Site:  site,
	})
}

func invalid(msg string) error {
	return shared.NewInvalidHabitatError(msg)
}
