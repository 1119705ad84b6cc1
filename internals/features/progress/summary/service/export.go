package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	SheetSummary    = "Summary"
	SheetCategories = "Categories"
)

// ExportXLSX laporan seluruh summary: sheet Summary (per rank) + sheet Categories.
func (a *Aggregator) ExportXLSX(ctx context.Context) (*bytes.Buffer, error) {
	ranks, err := a.Rubric.ListRanks(ctx, nil)
	if err != nil {
		return nil, err
	}
	categories, err := a.Rubric.ListCategories(ctx, nil)
	if err != nil {
		return nil, err
	}
	rows, _, err := a.List(ctx, 0, 0)
	if err != nil {
		return nil, err
	}

	rankNameByID := make(map[uint]string, len(ranks))
	for _, r := range ranks {
		rankNameByID[r.ID] = r.Name
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return nil, fmt.Errorf("xlsx sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetCategories); err != nil {
		return nil, fmt.Errorf("xlsx sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx style: %w", err)
	}

	// Sheet Summary
	header := []interface{}{"Pemain", "User ID", "Rank Saat Ini", "Selesai", "Total", "Overall %"}
	for _, r := range ranks {
		header = append(header, r.Name+" %")
	}
	if err := writeRow(f, SheetSummary, 1, header); err != nil {
		return nil, err
	}
	for i, s := range rows {
		current := ""
		if s.CurrentRankID != nil {
			current = rankNameByID[*s.CurrentRankID]
		}
		line := []interface{}{
			s.UserName,
			s.UserID.String(),
			current,
			s.OverallCompleted,
			s.OverallTotal,
			s.OverallPercentage,
		}
		rp := s.RankProgress.Data()
		for _, r := range ranks {
			line = append(line, rp[r.Name].Percentage)
		}
		if err := writeRow(f, SheetSummary, i+2, line); err != nil {
			return nil, err
		}
	}

	// Sheet Categories: satu baris per (pemain, kategori)
	if err := writeRow(f, SheetCategories, 1, []interface{}{"Pemain", "Kategori", "Rank Kategori", "Selesai", "Total", "%"}); err != nil {
		return nil, err
	}
	line := 2
	for _, s := range rows {
		cp := s.CategoryProgress.Data()
		for _, c := range categories {
			p, ok := cp[c.Name]
			if !ok {
				continue
			}
			if err := writeRow(f, SheetCategories, line, []interface{}{
				s.UserName, c.Name, p.RankName, p.Completed, p.Total, p.Percentage,
			}); err != nil {
				return nil, err
			}
			line++
		}
	}

	for _, sheet := range []string{SheetSummary, SheetCategories} {
		if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
			return nil, fmt.Errorf("xlsx style: %w", err)
		}
		if err := f.SetPanes(sheet, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		}); err != nil {
			return nil, fmt.Errorf("xlsx panes: %w", err)
		}
	}
	if err := f.SetColWidth(SheetSummary, "A", "C", 22); err != nil {
		return nil, fmt.Errorf("xlsx width: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf, nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("xlsx %s baris %d: %w", sheet, row, err)
	}
	return nil
}
