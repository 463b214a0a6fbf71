package steps

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
	messages "github.com/cucumber/messages/go/v21"
)

const floatTolerance = 1e-9

// getCellValue returns the cell of row under columnName, or "" when the
// table has no such column
func getCellValue(table *godog.Table, row *messages.PickleTableRow, columnName string) string {
	if len(table.Rows) == 0 {
		return ""
	}
	for i, cell := range table.Rows[0].Cells {
		if cell.Value == columnName && i < len(row.Cells) {
			return strings.TrimSpace(row.Cells[i].Value)
		}
	}
	return ""
}

// tableColumn collects one column of every data row
func tableColumn(table *godog.Table, columnName string) []string {
	var values []string
	for i, row := range table.Rows {
		if i == 0 {
			continue // Skip header
		}
		values = append(values, getCellValue(table, row, columnName))
	}
	return values
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return v, nil
}

func assertFloat(what string, expected, actual float64) error {
	if math.Abs(expected-actual) > floatTolerance {
		return fmt.Errorf("expected %s to be %v, got %v", what, expected, actual)
	}
	return nil
}
