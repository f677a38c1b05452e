package usecase

import (
	"strings"

	"github.com/benberthelsen/bower-kitchen-planner-2e763145-sub003/internal/domain"
)

// Fixed construction values not covered by the global constants
const (
	backPanelThickness    = 3.0
	shelfWidthClearance   = 10.0
	twoDoorSplitClearance = 1.0

	// BackingMaterial is the board every back panel is cut from
	BackingMaterial = "3mm White Hardboard"
)

// twoDoorMarkers in a definition id mean the opening is split into a pair of doors
var twoDoorMarkers = []string{"2door", "2-door", "2_door", "double"}

// shelfCountByCategory gives the adjustable shelf count; unlisted categories get one
var shelfCountByCategory = map[domain.Category]int{
	domain.CategoryTall: 4,
	domain.CategoryWall: 2,
}

// PartInput is the cabinet geometry the cut-list is derived from
type PartInput struct {
	DefinitionID string
	Width        float64
	Depth        float64
	Height       float64
	Category     domain.Category
}

// DeriveParts returns the cut parts of one carcass in a fixed order:
// side panels, bottom, top (non-base only), back, doors, shelves.
// Drawer products get no door parts; their fronts are ordered separately.
func DeriveParts(input PartInput, constants domain.ConstructionConstants, finish string) []domain.PartSpec {
	board := constants.BoardThickness
	internalWidth := input.Width - 2*board
	internalDepth := input.Depth - backPanelThickness

	panelHeight := input.Height
	if input.Category == domain.CategoryBase {
		panelHeight = input.Height - constants.ToeKickHeight
	}

	parts := make([]domain.PartSpec, 0, 12)
	parts = append(parts,
		domain.PartSpec{Name: "Left Panel", Width: input.Depth, Height: panelHeight, Thickness: board, Material: finish},
		domain.PartSpec{Name: "Right Panel", Width: input.Depth, Height: panelHeight, Thickness: board, Material: finish},
		domain.PartSpec{Name: "Bottom", Width: internalWidth, Height: internalDepth, Thickness: board, Material: finish},
	)

	if input.Category != domain.CategoryBase {
		parts = append(parts, domain.PartSpec{Name: "Top", Width: internalWidth, Height: internalDepth, Thickness: board, Material: finish})
	}

	parts = append(parts, domain.PartSpec{Name: "Back", Width: input.Width, Height: panelHeight, Thickness: backPanelThickness, Material: BackingMaterial})

	gap := constants.DoorGap
	doorHeight := panelHeight - 2*gap
	definition := strings.ToLower(input.DefinitionID)
	switch {
	case containsAny(definition, twoDoorMarkers):
		doorWidth := (input.Width-2*gap)/2 - twoDoorSplitClearance
		parts = append(parts,
			domain.PartSpec{Name: "Door Left", Width: doorWidth, Height: doorHeight, Thickness: board, Material: finish},
			domain.PartSpec{Name: "Door Right", Width: doorWidth, Height: doorHeight, Thickness: board, Material: finish},
		)
	case !strings.Contains(definition, "drawer"):
		parts = append(parts, domain.PartSpec{Name: "Door", Width: input.Width - 2*gap, Height: doorHeight, Thickness: board, Material: finish})
	}

	shelves, ok := shelfCountByCategory[input.Category]
	if !ok {
		shelves = 1
	}
	for i := 0; i < shelves; i++ {
		parts = append(parts, domain.PartSpec{
			Name:      "Shelf",
			Width:     internalWidth - shelfWidthClearance,
			Height:    internalDepth - constants.ShelfSetback,
			Thickness: board,
			Material:  finish,
		})
	}

	return parts
}
