package domain

// Category is the coarse cabinet family a catalog product belongs to
type Category string

const (
	CategoryBase      Category = "Base"
	CategoryWall      Category = "Wall"
	CategoryTall      Category = "Tall"
	CategoryAccessory Category = "Accessory"
)

// Categories lists every category in report order
var Categories = []Category{CategoryBase, CategoryWall, CategoryTall, CategoryAccessory}

// CabinetType is the construction sub-type of a catalog product
type CabinetType string

const (
	CabinetTypeStandard  CabinetType = "Standard"
	CabinetTypeDrawer    CabinetType = "Drawer"
	CabinetTypeCorner    CabinetType = "Corner"
	CabinetTypeSink      CabinetType = "Sink"
	CabinetTypeBlind     CabinetType = "Blind"
	CabinetTypeAppliance CabinetType = "Appliance"
	CabinetTypePantry    CabinetType = "Pantry"
	CabinetTypeRangehood CabinetType = "Rangehood"
)

// MarkupRow maps a column header to the cell text found under it
type MarkupRow map[string]string

// MarkupTable is the ordered set of data rows extracted from a tabular markup blob.
// Headers keeps the header row in column order.
type MarkupTable struct {
	Headers []string
	Rows    []MarkupRow
}

// Dimensions are millimetre extents of a cabinet
type Dimensions struct {
	Width  float64 `json:"width"`
	Depth  float64 `json:"depth"`
	Height float64 `json:"height"`
}

// FrontCounts holds the number of doors and drawers implied by a product name
type FrontCounts struct {
	Doors   int `json:"doors"`
	Drawers int `json:"drawers"`
}

// ProductRecord is one classified catalog product ready for the external store
type ProductRecord struct {
	LinkID            string      `json:"linkId"`
	Name              string      `json:"name"`
	Category          Category    `json:"category"`
	CabinetType       CabinetType `json:"cabinetType"`
	DefaultWidth      float64     `json:"defaultWidth"`
	DefaultDepth      float64     `json:"defaultDepth"`
	DefaultHeight     float64     `json:"defaultHeight"`
	DoorCount         int         `json:"doorCount"`
	DrawerCount       int         `json:"drawerCount"`
	IsCorner          bool        `json:"isCorner"`
	IsSink            bool        `json:"isSink"`
	IsBlind           bool        `json:"isBlind"`
	SpecGroup         *string     `json:"specGroup"`
	RoomComponentType *string     `json:"roomComponentType"`
	RawMetadata       MarkupRow   `json:"rawMetadata"`
}

// CategoryTally counts built records per category for the import summary
type CategoryTally map[Category]int

// ImportResult summarises a successful catalog import batch
type ImportResult struct {
	Success    bool          `json:"success"`
	Imported   int           `json:"imported"`
	Dropped    int           `json:"dropped"`
	Categories CategoryTally `json:"categories"`
}
