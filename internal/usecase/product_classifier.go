package usecase

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/benberthelsen/bower-kitchen-planner-2e763145-sub003/internal/domain"
)

// categoryRule assigns a category when any keyword appears in the lower-cased name
type categoryRule struct {
	category domain.Category
	keywords []string
}

// cabinetTypeRule assigns a cabinet type when any keyword appears in the lower-cased name
type cabinetTypeRule struct {
	cabinetType domain.CabinetType
	keywords    []string
}

// catalogCategoryRules are evaluated top to bottom; the first match wins
var catalogCategoryRules = []categoryRule{
	{domain.CategoryTall, []string{"tall", "pantry", "oven tower", "broom"}},
	{domain.CategoryWall, []string{"upper", "wall", "rangehood", "microwave"}},
	{domain.CategoryAccessory, []string{"panel", "filler", "spacer", "kick", "scribe", "moulding"}},
}

// cabinetTypeRules are evaluated top to bottom; the first match wins
var cabinetTypeRules = []cabinetTypeRule{
	{domain.CabinetTypeDrawer, []string{"drawer"}},
	{domain.CabinetTypeCorner, []string{"corner"}},
	{domain.CabinetTypeSink, []string{"sink"}},
	{domain.CabinetTypeBlind, []string{"blind"}},
	{domain.CabinetTypeAppliance, []string{"appliance", "oven"}},
	{domain.CabinetTypePantry, []string{"pantry"}},
	{domain.CabinetTypeRangehood, []string{"rangehood"}},
}

// doorFrontedTypes get a default door count when the name states none
var doorFrontedTypes = map[domain.CabinetType]bool{
	domain.CabinetTypeStandard: true,
	domain.CabinetTypePantry:   true,
	domain.CabinetTypeSink:     true,
	domain.CabinetTypeCorner:   true,
	domain.CabinetTypeBlind:    true,
}

// defaultDimensionsByCategory is the fallback size table in millimetres
var defaultDimensionsByCategory = map[domain.Category]domain.Dimensions{
	domain.CategoryBase:      {Width: 600, Depth: 575, Height: 870},
	domain.CategoryWall:      {Width: 600, Depth: 350, Height: 720},
	domain.CategoryTall:      {Width: 600, Depth: 580, Height: 2100},
	domain.CategoryAccessory: {Width: 50, Depth: 580, Height: 870},
}

const cornerBaseWidth = 900.0

var (
	drawerCountPattern = regexp.MustCompile(`(?i)(\d+)\s*-?\s*drawer`)
	doorCountPattern   = regexp.MustCompile(`(?i)(\d+)\s*-?\s*door`)
)

// ClassifyForCatalog maps a product name to its catalog category.
// Export uses ClassifyForExport instead, which only looks at definition id prefixes.
func ClassifyForCatalog(name string) domain.Category {
	lower := strings.ToLower(name)
	for _, rule := range catalogCategoryRules {
		if containsAny(lower, rule.keywords) {
			return rule.category
		}
	}
	return domain.CategoryBase
}

// ClassifyCabinetType maps a product name to its construction sub-type
func ClassifyCabinetType(name string) domain.CabinetType {
	lower := strings.ToLower(name)
	for _, rule := range cabinetTypeRules {
		if containsAny(lower, rule.keywords) {
			return rule.cabinetType
		}
	}
	return domain.CabinetTypeStandard
}

// ExtractCounts reads door and drawer counts from a product name.
// Explicit "<n> drawer" / "<n> door" phrases win. A bare "drawer" means one drawer.
// A door-fronted cabinet with no count and no drawer gets one door, or two when "double".
func ExtractCounts(name string) domain.FrontCounts {
	var counts domain.FrontCounts
	lower := strings.ToLower(name)

	drawerMatch := drawerCountPattern.FindStringSubmatch(lower)
	doorMatch := doorCountPattern.FindStringSubmatch(lower)

	if drawerMatch != nil {
		counts.Drawers = atoiOrZero(drawerMatch[1])
	} else if strings.Contains(lower, "drawer") {
		counts.Drawers = 1
	}

	if doorMatch != nil {
		counts.Doors = atoiOrZero(doorMatch[1])
	}

	if drawerMatch == nil && doorMatch == nil && !strings.Contains(lower, "drawer") &&
		doorFrontedTypes[ClassifyCabinetType(name)] {
		if strings.Contains(lower, "double") {
			counts.Doors = 2
		} else {
			counts.Doors = 1
		}
	}

	return counts
}

// DefaultDimensions returns the fallback size for a category.
// Base corner cabinets are wider than standard bases.
func DefaultDimensions(category domain.Category, name string) domain.Dimensions {
	dims, ok := defaultDimensionsByCategory[category]
	if !ok {
		category = domain.CategoryBase
		dims = defaultDimensionsByCategory[domain.CategoryBase]
	}
	if category == domain.CategoryBase && strings.Contains(strings.ToLower(name), "corner") {
		dims.Width = cornerBaseWidth
	}
	return dims
}

// SpecGroup names the specification group a cabinet is priced and documented under.
// Accessories are not grouped.
func SpecGroup(category domain.Category, cabinetType domain.CabinetType) *string {
	if category == domain.CategoryAccessory {
		return nil
	}
	group := string(category) + " Cabinets"
	if cabinetType != domain.CabinetTypeStandard {
		group += " - " + string(cabinetType)
	}
	return &group
}

// roomComponentKeywords map accessory names onto planner component kinds
var roomComponentKeywords = []struct {
	component string
	keywords  []string
}{
	{"panel", []string{"panel"}},
	{"filler", []string{"filler", "spacer", "scribe"}},
	{"kick", []string{"kick"}},
	{"moulding", []string{"moulding"}},
}

// RoomComponentType names the planner component a catalog product is placed as
func RoomComponentType(category domain.Category, name string) *string {
	var component string
	switch category {
	case domain.CategoryBase:
		component = "base_cabinet"
	case domain.CategoryWall:
		component = "wall_cabinet"
	case domain.CategoryTall:
		component = "tall_cabinet"
	default:
		lower := strings.ToLower(name)
		for _, entry := range roomComponentKeywords {
			if containsAny(lower, entry.keywords) {
				component = entry.component
				break
			}
		}
	}
	if component == "" {
		return nil
	}
	return &component
}

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
