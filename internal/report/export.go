package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/balloonsight/balloonsight/internal/analyzer"
)

// Format defines the export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
)

// FormatForPath infers the export format from a file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("cannot infer export format from %q (use .csv, .xlsx or .json)", path)
	}
}

// Exporter writes reports to disk.
type Exporter struct {
	format Format
	path   string
}

// NewExporter creates an exporter for the given format and destination path.
func NewExporter(format Format, path string) *Exporter {
	return &Exporter{format: format, path: path}
}

// Export writes the report in the configured format.
func (e *Exporter) Export(r *Report) error {
	switch e.format {
	case FormatCSV:
		return e.exportCSV(r)
	case FormatXLSX:
		return e.exportXLSX(r)
	case FormatJSON:
		return e.exportJSON(r)
	default:
		return fmt.Errorf("unsupported export format: %s", e.format)
	}
}

func (e *Exporter) exportCSV(r *Report) error {
	file, err := os.Create(e.path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	// UTF-8 BOM for Excel compatibility
	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	w := csv.NewWriter(file)
	defer w.Flush()

	summary := [][]string{
		{"URL", r.Result.URL},
		{"Visibility Score", strconv.Itoa(r.Result.Score)},
		{"Archetype", r.Result.Persona.Archetype},
		{},
	}
	for _, row := range summary {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}

	if err := w.Write(checkColumns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range r.checkRows() {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	if err := w.Write([]string{}); err != nil {
		return fmt.Errorf("failed to write separator: %w", err)
	}
	if err := w.Write(quickWinColumns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range r.quickWinRows() {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write quick win: %w", err)
		}
	}

	return nil
}

func (e *Exporter) exportXLSX(r *Report) error {
	f := excelize.NewFile()
	defer f.Close()

	const checksSheet = "AI Visibility"
	index, err := f.NewSheet(checksSheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"3B82F6"}},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	// Summary block above the check table
	setCell := func(sheet, cell string, value any) {
		_ = f.SetCellValue(sheet, cell, value)
	}
	setCell(checksSheet, "A1", "URL")
	setCell(checksSheet, "B1", r.Result.URL)
	setCell(checksSheet, "A2", "Visibility Score")
	setCell(checksSheet, "B2", r.Result.Score)
	setCell(checksSheet, "A3", "Archetype")
	setCell(checksSheet, "B3", r.Result.Persona.Archetype)
	for i, cat := range analyzer.Categories {
		cell, _ := excelize.CoordinatesToCellName(i+1, 5)
		setCell(checksSheet, cell, string(cat))
		cell, _ = excelize.CoordinatesToCellName(i+1, 6)
		setCell(checksSheet, cell, r.Result.Categories[cat].Score)
	}

	// Check table
	const tableStart = 8
	for i, col := range checkColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, tableStart)
		setCell(checksSheet, cell, col)
		_ = f.SetCellStyle(checksSheet, cell, cell, headerStyle)
	}
	for rowIdx, row := range r.checkRows() {
		for colIdx, val := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, tableStart+1+rowIdx)
			setCell(checksSheet, cell, val)
		}
	}

	// Quick wins on their own sheet
	const winsSheet = "Quick Wins"
	if _, err := f.NewSheet(winsSheet); err == nil {
		for i, col := range quickWinColumns {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			setCell(winsSheet, cell, col)
			_ = f.SetCellStyle(winsSheet, cell, cell, headerStyle)
		}
		for rowIdx, row := range r.quickWinRows() {
			for colIdx, val := range row {
				cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
				setCell(winsSheet, cell, val)
			}
		}
	}

	if err := f.SaveAs(e.path); err != nil {
		return fmt.Errorf("failed to save xlsx: %w", err)
	}
	return nil
}

func (e *Exporter) exportJSON(r *Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(e.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
