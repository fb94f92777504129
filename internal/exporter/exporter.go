package exporter

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/vbonduro/tastetrails/internal/archive"
	"github.com/vbonduro/tastetrails/internal/domain"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

const SheetName = "Places"

var ErrInvalidFormat = errors.New("invalid export format")

var header = []any{
	"ID", "Name", "Type", "Cuisine", "Top Item", "Rating", "Favorite", "Price",
	"Tags", "City", "Neighborhood", "Date Visited", "Notes",
	"Map URL", "Website URL", "Menu URL", "Created", "Updated",
}

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
}

func (f Format) ContentType() string {
	if f == FormatXLSX {
		return archive.ContentTypeXLSX
	}
	return archive.ContentTypeJSON
}

// Filename returns the download name for an export taken at now, e.g.
// taste-trails-2025-03-14.json.
func Filename(now time.Time, f Format) string {
	return fmt.Sprintf("taste-trails-%s.%s", now.Format(time.DateOnly), f)
}

func Write(w io.Writer, f Format, ps []domain.Place) error {
	switch f {
	case FormatJSON:
		return JSON(w, ps)
	case FormatXLSX:
		return XLSX(w, ps)
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, f)
	}
}

// JSON writes ps as a two-space indented array.
func JSON(w io.Writer, ps []domain.Place) error {
	if ps == nil {
		ps = []domain.Place{}
	}
	data, err := json.MarshalIndent(ps, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode places: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

// XLSX writes ps as a single-sheet workbook with a header row.
func XLSX(w io.Writer, ps []domain.Place) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close workbook: %w", cerr)
		}
	}()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, p := range ps {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+2, err)
		}
		row := placeRow(p)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func placeRow(p domain.Place) []any {
	var rating any = ""
	if p.Rating != nil {
		rating = *p.Rating
	}
	favorite := "No"
	if p.IsFavorite {
		favorite = "Yes"
	}
	return []any{
		p.ID, p.Name, p.PlaceType, p.Cuisine, p.TopItem, rating, favorite, string(p.Price),
		strings.Join(p.Tags, ", "), p.City, p.Neighborhood, p.DateVisited, p.Notes,
		p.MapURL, p.WebsiteURL, p.MenuURL,
		formatMillis(p.CreatedAt), formatMillis(p.UpdatedAt),
	}
}

func formatMillis(ms int64) string {
	if ms == 0 {
		return ""
	}
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}
