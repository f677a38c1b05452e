package usecase

import (
	"math"
	"strconv"
	"strings"

	"github.com/benberthelsen/bower-kitchen-planner-2e763145-sub003/internal/domain"
)

// Column headers read from catalog rows
const (
	columnName   = "Name"
	columnLinkID = "LinkID"
	columnID     = "ID"
	columnWidth  = "Width"
	columnDepth  = "Depth"
	columnHeight = "Height"
)

// CatalogBuild is the outcome of turning a markup table into product records
type CatalogBuild struct {
	Records []domain.ProductRecord
	Tally   domain.CategoryTally
	Dropped int
}

// BuildProductRecords classifies every usable row of a markup table.
// Rows missing a name or link identifier are dropped and only counted.
func BuildProductRecords(table domain.MarkupTable) CatalogBuild {
	build := CatalogBuild{
		Records: make([]domain.ProductRecord, 0, len(table.Rows)),
		Tally:   make(domain.CategoryTally, len(domain.Categories)),
	}
	for _, category := range domain.Categories {
		build.Tally[category] = 0
	}

	for _, row := range table.Rows {
		record, err := BuildProductRecord(row)
		if err != nil {
			build.Dropped++
			continue
		}
		build.Records = append(build.Records, record)
		build.Tally[record.Category]++
	}

	return build
}

// BuildProductRecord classifies a single catalog row.
// It returns a record validation error when the name or link identifier is empty.
func BuildProductRecord(row domain.MarkupRow) (domain.ProductRecord, error) {
	name := strings.TrimSpace(row[columnName])
	if name == "" {
		return domain.ProductRecord{}, domain.ErrMissingName
	}

	linkID := strings.TrimSpace(row[columnLinkID])
	if linkID == "" {
		linkID = strings.TrimSpace(row[columnID])
	}
	if linkID == "" {
		return domain.ProductRecord{}, domain.ErrMissingLinkID
	}

	category := ClassifyForCatalog(name)
	cabinetType := ClassifyCabinetType(name)
	counts := ExtractCounts(name)
	defaults := DefaultDimensions(category, name)
	lower := strings.ToLower(name)

	return domain.ProductRecord{
		LinkID:            linkID,
		Name:              name,
		Category:          category,
		CabinetType:       cabinetType,
		DefaultWidth:      dimensionOrDefault(row[columnWidth], defaults.Width),
		DefaultDepth:      dimensionOrDefault(row[columnDepth], defaults.Depth),
		DefaultHeight:     dimensionOrDefault(row[columnHeight], defaults.Height),
		DoorCount:         counts.Doors,
		DrawerCount:       counts.Drawers,
		IsCorner:          strings.Contains(lower, "corner"),
		IsSink:            strings.Contains(lower, "sink"),
		IsBlind:           strings.Contains(lower, "blind"),
		SpecGroup:         SpecGroup(category, cabinetType),
		RoomComponentType: RoomComponentType(category, name),
		RawMetadata:       copyRow(row),
	}, nil
}

// dimensionOrDefault parses a numeric cell, falling back when it is absent, unparsable or not positive
func dimensionOrDefault(cell string, fallback float64) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		return fallback
	}
	return value
}

func copyRow(row domain.MarkupRow) domain.MarkupRow {
	out := make(domain.MarkupRow, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}
