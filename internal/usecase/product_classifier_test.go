package usecase

import (
	"testing"

	"github.com/benberthelsen/bower-kitchen-planner-2e763145-sub003/internal/domain"
)

func TestClassifyForCatalog(t *testing.T) {
	tests := []struct {
		name string
		want domain.Category
	}{
		{"Tall Pantry 600", domain.CategoryTall},
		{"PANTRY", domain.CategoryTall},
		{"Oven Tower 600", domain.CategoryTall},
		{"Broom Cupboard", domain.CategoryTall},
		{"Tall End Panel", domain.CategoryTall},
		{"Upper Cabinet", domain.CategoryWall},
		{"Single Door Wall", domain.CategoryWall},
		{"Rangehood 900", domain.CategoryWall},
		{"Microwave Housing", domain.CategoryWall},
		{"Wall Filler", domain.CategoryWall},
		{"End Panel", domain.CategoryAccessory},
		{"Filler 50", domain.CategoryAccessory},
		{"Spacer", domain.CategoryAccessory},
		{"Kick Board", domain.CategoryAccessory},
		{"Scribe Strip", domain.CategoryAccessory},
		{"Crown Moulding", domain.CategoryAccessory},
		{"2 Drawer Base", domain.CategoryBase},
		{"Sink Cabinet", domain.CategoryBase},
		{"", domain.CategoryBase},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyForCatalog(tt.name); got != tt.want {
				t.Errorf("ClassifyForCatalog(%q) = %s, want %s", tt.name, got, tt.want)
			}
		})
	}
}

func TestClassifyCabinetType(t *testing.T) {
	tests := []struct {
		name string
		want domain.CabinetType
	}{
		{"3 Drawer Sink Base", domain.CabinetTypeDrawer},
		{"Corner Sink", domain.CabinetTypeCorner},
		{"Blind Corner Base", domain.CabinetTypeCorner},
		{"Sink Base 900", domain.CabinetTypeSink},
		{"Blind Base", domain.CabinetTypeBlind},
		{"Oven Tower", domain.CabinetTypeAppliance},
		{"Appliance Pantry", domain.CabinetTypeAppliance},
		{"Double Door Pantry", domain.CabinetTypePantry},
		{"Rangehood Wall", domain.CabinetTypeRangehood},
		{"Wall 600", domain.CabinetTypeStandard},
		{"", domain.CabinetTypeStandard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyCabinetType(tt.name); got != tt.want {
				t.Errorf("ClassifyCabinetType(%q) = %s, want %s", tt.name, got, tt.want)
			}
		})
	}
}

func TestClassifiersAreTotal(t *testing.T) {
	validCategory := map[domain.Category]bool{}
	for _, c := range domain.Categories {
		validCategory[c] = true
	}
	validType := map[domain.CabinetType]bool{
		domain.CabinetTypeStandard: true, domain.CabinetTypeDrawer: true, domain.CabinetTypeCorner: true,
		domain.CabinetTypeSink: true, domain.CabinetTypeBlind: true, domain.CabinetTypeAppliance: true,
		domain.CabinetTypePantry: true, domain.CabinetTypeRangehood: true,
	}

	names := []string{"", " ", "???", "12345", "Ünïcödé Base", "wall\ttall", "<Row>", "drawerdrawer", "x"}
	for _, name := range names {
		if c := ClassifyForCatalog(name); !validCategory[c] {
			t.Errorf("ClassifyForCatalog(%q) = %q, not a known category", name, c)
		}
		if ct := ClassifyCabinetType(name); !validType[ct] {
			t.Errorf("ClassifyCabinetType(%q) = %q, not a known cabinet type", name, ct)
		}
	}
}

func TestExtractCounts(t *testing.T) {
	tests := []struct {
		name string
		want domain.FrontCounts
	}{
		{"2 Drawer Base", domain.FrontCounts{Doors: 0, Drawers: 2}},
		{"Single Door Wall", domain.FrontCounts{Doors: 1, Drawers: 0}},
		{"Double Door Pantry", domain.FrontCounts{Doors: 2, Drawers: 0}},
		{"600 Base 2 Door", domain.FrontCounts{Doors: 2, Drawers: 0}},
		{"Base 2-Door", domain.FrontCounts{Doors: 2, Drawers: 0}},
		{"Drawer Base", domain.FrontCounts{Doors: 0, Drawers: 1}},
		{"Base 1 Door 1 Drawer", domain.FrontCounts{Doors: 1, Drawers: 1}},
		{"Double Base", domain.FrontCounts{Doors: 2, Drawers: 0}},
		{"Corner Base", domain.FrontCounts{Doors: 1, Drawers: 0}},
		{"Oven Tower", domain.FrontCounts{Doors: 0, Drawers: 0}},
		{"Rangehood", domain.FrontCounts{Doors: 0, Drawers: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractCounts(tt.name); got != tt.want {
				t.Errorf("ExtractCounts(%q) = %+v, want %+v", tt.name, got, tt.want)
			}
		})
	}
}

func TestDefaultDimensions(t *testing.T) {
	tests := []struct {
		name     string
		category domain.Category
		product  string
		want     domain.Dimensions
	}{
		{"base", domain.CategoryBase, "Base 600", domain.Dimensions{Width: 600, Depth: 575, Height: 870}},
		{"base corner", domain.CategoryBase, "Blind Corner Base", domain.Dimensions{Width: 900, Depth: 575, Height: 870}},
		{"wall corner keeps wall width", domain.CategoryWall, "Corner Wall", domain.Dimensions{Width: 600, Depth: 350, Height: 720}},
		{"tall", domain.CategoryTall, "Pantry", domain.Dimensions{Width: 600, Depth: 580, Height: 2100}},
		{"accessory", domain.CategoryAccessory, "Filler", domain.Dimensions{Width: 50, Depth: 580, Height: 870}},
		{"unknown falls back to base", domain.Category("Island"), "Island", domain.Dimensions{Width: 600, Depth: 575, Height: 870}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DefaultDimensions(tt.category, tt.product); got != tt.want {
				t.Errorf("DefaultDimensions(%s, %q) = %+v, want %+v", tt.category, tt.product, got, tt.want)
			}
		})
	}
}

func TestSpecGroup(t *testing.T) {
	tests := []struct {
		category    domain.Category
		cabinetType domain.CabinetType
		want        string
	}{
		{domain.CategoryBase, domain.CabinetTypeStandard, "Base Cabinets"},
		{domain.CategoryBase, domain.CabinetTypeDrawer, "Base Cabinets - Drawer"},
		{domain.CategoryTall, domain.CabinetTypePantry, "Tall Cabinets - Pantry"},
		{domain.CategoryAccessory, domain.CabinetTypeStandard, ""},
	}

	for _, tt := range tests {
		got := SpecGroup(tt.category, tt.cabinetType)
		if tt.want == "" {
			if got != nil {
				t.Errorf("SpecGroup(%s, %s) = %q, want nil", tt.category, tt.cabinetType, *got)
			}
			continue
		}
		if got == nil || *got != tt.want {
			t.Errorf("SpecGroup(%s, %s) = %v, want %q", tt.category, tt.cabinetType, got, tt.want)
		}
	}
}

func TestRoomComponentType(t *testing.T) {
	tests := []struct {
		category domain.Category
		name     string
		want     string
	}{
		{domain.CategoryBase, "Sink Base", "base_cabinet"},
		{domain.CategoryWall, "Wall 600", "wall_cabinet"},
		{domain.CategoryTall, "Pantry", "tall_cabinet"},
		{domain.CategoryAccessory, "End Panel", "panel"},
		{domain.CategoryAccessory, "Scribe Strip", "filler"},
		{domain.CategoryAccessory, "Spacer 25", "filler"},
		{domain.CategoryAccessory, "Kick 2400", "kick"},
		{domain.CategoryAccessory, "Crown Moulding", "moulding"},
		{domain.CategoryAccessory, "Widget", ""},
	}

	for _, tt := range tests {
		got := RoomComponentType(tt.category, tt.name)
		if tt.want == "" {
			if got != nil {
				t.Errorf("RoomComponentType(%s, %q) = %q, want nil", tt.category, tt.name, *got)
			}
			continue
		}
		if got == nil || *got != tt.want {
			t.Errorf("RoomComponentType(%s, %q) = %v, want %q", tt.category, tt.name, got, tt.want)
		}
	}
}
