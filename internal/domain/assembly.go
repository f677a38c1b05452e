package domain

import "time"

// ConstructionConstants are the global millimetre parameters that drive part geometry
type ConstructionConstants struct {
	ToeKickHeight     float64 `mapstructure:"toe_kick_height" json:"toeKickHeight"`
	BaseHeight        float64 `mapstructure:"base_height" json:"baseHeight"`
	BaseDepth         float64 `mapstructure:"base_depth" json:"baseDepth"`
	WallHeight        float64 `mapstructure:"wall_height" json:"wallHeight"`
	WallDepth         float64 `mapstructure:"wall_depth" json:"wallDepth"`
	TallHeight        float64 `mapstructure:"tall_height" json:"tallHeight"`
	TallDepth         float64 `mapstructure:"tall_depth" json:"tallDepth"`
	BenchtopThickness float64 `mapstructure:"benchtop_thickness" json:"benchtopThickness"`
	SplashbackHeight  float64 `mapstructure:"splashback_height" json:"splashbackHeight"`
	DoorGap           float64 `mapstructure:"door_gap" json:"doorGap"`
	DrawerGap         float64 `mapstructure:"drawer_gap" json:"drawerGap"`
	BoardThickness    float64 `mapstructure:"board_thickness" json:"boardThickness"`
	ShelfSetback      float64 `mapstructure:"shelf_setback" json:"shelfSetback"`
}

// WallCabinetElevation is the height at which wall cabinets start above the floor
func (c ConstructionConstants) WallCabinetElevation() float64 {
	return c.ToeKickHeight + c.BaseHeight + c.BenchtopThickness + c.SplashbackHeight
}

// CabinetPlacement is one cabinet placed in a room layout
type CabinetPlacement struct {
	ID            string  `json:"id"`
	CabinetNumber string  `json:"cabinetNumber"`
	DefinitionID  string  `json:"definitionId"`
	Width         float64 `json:"width"`
	Depth         float64 `json:"depth"`
	Height        float64 `json:"height"`
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	Z             float64 `json:"z"`
	Rotation      float64 `json:"rotation"`
	Hinge         string  `json:"hinge,omitempty"`
	Material      string  `json:"material,omitempty"`
	HandleID      string  `json:"handleId,omitempty"`
	EndPanelLeft  bool    `json:"endPanelLeft"`
	EndPanelRight bool    `json:"endPanelRight"`
	FillerLeft    float64 `json:"fillerLeft"`
	FillerRight   float64 `json:"fillerRight"`
}

// PartSpec is one physical cut part derived from a cabinet
type PartSpec struct {
	Name      string  `json:"name"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Thickness float64 `json:"thickness"`
	Material  string  `json:"material"`
}

// HardwareLineItem is an accumulated hardware requirement keyed by SKU
type HardwareLineItem struct {
	SKU         string `json:"sku"`
	Qty         int    `json:"qty"`
	Description string `json:"description"`
}

// Job is the order header a layout belongs to
type Job struct {
	ID             string    `json:"id"`
	JobNumber      string    `json:"jobNumber"`
	Name           string    `json:"name"`
	Status         string    `json:"status"`
	DeliveryMethod string    `json:"deliveryMethod"`
	CostExTax      float64   `json:"costExTax"`
	CostIncTax     float64   `json:"costIncTax"`
	CreatedAt      time.Time `json:"createdAt"`
	Notes          string    `json:"notes"`
}

// Customer is the contact the job is made for
type Customer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
}

// Room is the room configuration a layout is drawn in.
// DimensionOverrides holds room-level construction constants keyed by their JSON name.
type Room struct {
	ID                 string             `json:"id"`
	Name               string             `json:"name"`
	Shape              string             `json:"shape"`
	Width              float64            `json:"width"`
	Depth              float64            `json:"depth"`
	Height             float64            `json:"height"`
	DimensionOverrides map[string]float64 `json:"globalDimensions,omitempty"`
}

// FinishSelection is the exterior finish chosen for the room
type FinishSelection struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// HardwareSelection is the hardware configuration chosen for the room
type HardwareSelection struct {
	HingeType      string `json:"hingeType"`
	DrawerType     string `json:"drawerType"`
	HandleID       string `json:"handleId"`
	SupplyHardware bool   `json:"supplyHardware"`
	AdjustableLegs bool   `json:"adjustableLegs"`
}

// JobExport is everything the store returns for one job in a single read
type JobExport struct {
	Job      Job                `json:"job"`
	Customer Customer           `json:"customer"`
	Room     Room               `json:"room"`
	Finish   FinishSelection    `json:"finish"`
	Hardware HardwareSelection  `json:"hardware"`
	Cabinets []CabinetPlacement `json:"cabinets"`
}

// ExportResult is a generated assembly document and its download name
type ExportResult struct {
	Filename string `json:"filename"`
	Document string `json:"document"`
	Archived bool   `json:"archived"`
}
