package service

import (
	"bytes"
	"fmt"

	"game-scheduler/core/constants"
	"game-scheduler/modules/scheduling/entity"

	"github.com/xuri/excelize/v2"
)

const gamesSheet = "Games"

var gamesHeader = []string{"Date", "Time", "Name", "Location", "Min Players", "Max Players", "Status"}

// BuildWorkbook renders games as one row each under a header row.
func BuildWorkbook(games []entity.Game) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", gamesSheet); err != nil {
		return nil, fmt.Errorf("renaming sheet: %w", err)
	}

	for col, title := range gamesHeader {
		if err := setCell(f, col+1, 1, title); err != nil {
			return nil, err
		}
	}

	for i, g := range games {
		row := i + 2
		values := []any{
			g.Date.Format(constants.DateLayout),
			g.Time,
			g.Name,
			g.Location,
			g.MinPlayers,
			g.MaxPlayers,
			string(g.Status),
		}
		for col, v := range values {
			if err := setCell(f, col+1, row, v); err != nil {
				return nil, err
			}
		}
	}

	if err := f.SetColWidth(gamesSheet, "A", "A", 12); err != nil {
		return nil, fmt.Errorf("setting column width: %w", err)
	}
	if err := f.SetColWidth(gamesSheet, "C", "D", 32); err != nil {
		return nil, fmt.Errorf("setting column width: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func setCell(f *excelize.File, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell name for %d,%d: %w", col, row, err)
	}
	if err := f.SetCellValue(gamesSheet, cell, value); err != nil {
		return fmt.Errorf("setting %s: %w", cell, err)
	}
	return nil
}
