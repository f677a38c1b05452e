package usecase

import (
	"math"
	"strconv"
	"strings"

	"github.com/benberthelsen/bower-kitchen-planner-2e763145-sub003/internal/domain"
)

// AssemblySchemaVersion is written on the root element of every assembly document
const AssemblySchemaVersion = "1.0"

// AssemblyDefaults are the labels used when the stored job leaves a field empty
type AssemblyDefaults struct {
	FinishName     string
	HingeType      string
	DrawerType     string
	Status         string
	DeliveryMethod string
}

// DefaultAssemblyDefaults returns the built-in fallback labels
func DefaultAssemblyDefaults() AssemblyDefaults {
	return AssemblyDefaults{
		FinishName:     "Classic White",
		HingeType:      "Blum Clip Top Soft Close",
		DrawerType:     "Blum Tandembox",
		Status:         "draft",
		DeliveryMethod: "pickup",
	}
}

// AssemblyInput is everything needed to render one assembly document
type AssemblyInput struct {
	Export    domain.JobExport
	Constants domain.ConstructionConstants
	Defaults  AssemblyDefaults
}

// AssemblyDocument is a rendered document plus counters gathered while rendering
type AssemblyDocument struct {
	Content   string
	PartCount int
	Hardware  []domain.HardwareLineItem
}

var markupEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// EscapeMarkup escapes the five reserved markup characters and drops characters
// XML 1.0 cannot carry, such as C0 controls other than tab, newline and carriage return.
func EscapeMarkup(s string) string {
	if strings.IndexFunc(s, isIllegalXMLChar) >= 0 {
		s = strings.Map(func(r rune) rune {
			if isIllegalXMLChar(r) {
				return -1
			}
			return r
		}, s)
	}
	return markupEscaper.Replace(s)
}

func isIllegalXMLChar(r rune) bool {
	switch {
	case r == '\t', r == '\n', r == '\r':
		return false
	case r < 0x20:
		return true
	case r >= 0xD800 && r <= 0xDFFF, r == 0xFFFE, r == 0xFFFF:
		return true
	}
	return r > 0x10FFFF
}

// ClassifyForExport derives a coarse category from a cabinet definition id.
// It is intentionally simpler than ClassifyForCatalog and the two must not be merged:
// each feeds a separate output contract.
func ClassifyForExport(definitionID string) domain.Category {
	switch {
	case strings.Contains(definitionID, "wall-"):
		return domain.CategoryWall
	case strings.Contains(definitionID, "tall-"):
		return domain.CategoryTall
	default:
		return domain.CategoryBase
	}
}

// GenerateAssemblyDocument renders the manufacturing assembly markup for one job.
// Output is byte-identical for identical input.
func GenerateAssemblyDocument(input AssemblyInput) AssemblyDocument {
	w := &markupWriter{}
	export := input.Export
	defaults := input.Defaults

	finishName := firstNonEmpty(export.Finish.Name, defaults.FinishName)

	w.line(0, `<?xml version="1.0" encoding="UTF-8"?>`)
	w.line(0, `<CabinetAssembly version="`+AssemblySchemaVersion+`">`)

	w.open(1, "JobInfo")
	w.text(2, "JobNumber", export.Job.JobNumber)
	w.text(2, "JobName", export.Job.Name)
	w.text(2, "CustomerName", export.Customer.Name)
	w.text(2, "CustomerEmail", export.Customer.Email)
	w.text(2, "CustomerPhone", export.Customer.Phone)
	w.text(2, "CustomerCompany", export.Customer.Company)
	w.text(2, "Status", firstNonEmpty(export.Job.Status, defaults.Status))
	w.text(2, "DeliveryMethod", firstNonEmpty(export.Job.DeliveryMethod, defaults.DeliveryMethod))
	w.number(2, "CostExTax", export.Job.CostExTax)
	w.number(2, "CostIncTax", export.Job.CostIncTax)
	w.text(2, "CreatedDate", formatDate(export.Job))
	w.text(2, "Notes", export.Job.Notes)
	w.close(1, "JobInfo")

	w.open(1, "RoomConfig")
	w.text(2, "RoomName", export.Room.Name)
	w.text(2, "Shape", export.Room.Shape)
	w.number(2, "Width", export.Room.Width)
	w.number(2, "Depth", export.Room.Depth)
	w.number(2, "Height", export.Room.Height)
	w.close(1, "RoomConfig")

	c := input.Constants
	w.open(1, "GlobalDimensions")
	w.number(2, "ToeKickHeight", c.ToeKickHeight)
	w.number(2, "BaseHeight", c.BaseHeight)
	w.number(2, "BaseDepth", c.BaseDepth)
	w.number(2, "WallHeight", c.WallHeight)
	w.number(2, "WallDepth", c.WallDepth)
	w.number(2, "TallHeight", c.TallHeight)
	w.number(2, "TallDepth", c.TallDepth)
	w.number(2, "BenchtopThickness", c.BenchtopThickness)
	w.number(2, "SplashbackHeight", c.SplashbackHeight)
	w.number(2, "WallCabinetElevation", c.WallCabinetElevation())
	w.number(2, "DoorGap", c.DoorGap)
	w.number(2, "DrawerGap", c.DrawerGap)
	w.number(2, "BoardThickness", c.BoardThickness)
	w.number(2, "ShelfSetback", c.ShelfSetback)
	w.close(1, "GlobalDimensions")

	w.open(1, "Materials")
	w.text(2, "FinishId", export.Finish.ID)
	w.text(2, "FinishName", finishName)
	w.text(2, "FinishHex", export.Finish.Hex)
	w.close(1, "Materials")

	w.open(1, "Hardware")
	w.text(2, "HingeType", firstNonEmpty(export.Hardware.HingeType, defaults.HingeType))
	w.text(2, "DrawerType", firstNonEmpty(export.Hardware.DrawerType, defaults.DrawerType))
	w.text(2, "HandleId", export.Hardware.HandleID)
	w.boolean(2, "SupplyHardware", export.Hardware.SupplyHardware)
	w.boolean(2, "AdjustableLegs", export.Hardware.AdjustableLegs)
	w.close(1, "Hardware")

	hardware := NewHardwareAggregator()
	partCount := 0

	w.line(1, `<Cabinets count="`+strconv.Itoa(len(export.Cabinets))+`">`)
	for _, cab := range export.Cabinets {
		category := ClassifyForExport(cab.DefinitionID)
		material := firstNonEmpty(cab.Material, finishName)

		w.line(2, `<Cabinet id="`+EscapeMarkup(cab.ID)+`" number="`+EscapeMarkup(cab.CabinetNumber)+
			`" definition="`+EscapeMarkup(cab.DefinitionID)+`">`)
		w.text(3, "Category", string(category))
		w.number(3, "Width", cab.Width)
		w.number(3, "Depth", cab.Depth)
		w.number(3, "Height", cab.Height)
		w.position(3, "PositionX", cab.X)
		w.position(3, "PositionY", cab.Y)
		w.position(3, "PositionZ", cab.Z)
		w.number(3, "Rotation", cab.Rotation)
		w.text(3, "Hinge", cab.Hinge)
		w.text(3, "Material", material)
		w.text(3, "Handle", firstNonEmpty(cab.HandleID, export.Hardware.HandleID))
		w.boolean(3, "EndPanelLeft", cab.EndPanelLeft)
		w.boolean(3, "EndPanelRight", cab.EndPanelRight)
		w.number(3, "FillerLeft", cab.FillerLeft)
		w.number(3, "FillerRight", cab.FillerRight)

		parts := DeriveParts(PartInput{
			DefinitionID: cab.DefinitionID,
			Width:        cab.Width,
			Depth:        cab.Depth,
			Height:       cab.Height,
			Category:     category,
		}, c, material)
		partCount += len(parts)

		w.open(3, "Parts")
		for _, part := range parts {
			w.line(4, `<Part name="`+EscapeMarkup(part.Name)+
				`" w="`+formatNumber(part.Width)+
				`" h="`+formatNumber(part.Height)+
				`" d="`+formatNumber(part.Thickness)+
				`" material="`+EscapeMarkup(part.Material)+`"/>`)
		}
		w.close(3, "Parts")
		w.close(2, "Cabinet")

		hardware.AddCabinet(category, cab.Hinge)
	}
	w.close(1, "Cabinets")

	items := hardware.Items()
	w.open(1, "HardwareList")
	for _, item := range items {
		w.line(2, `<Item sku="`+EscapeMarkup(item.SKU)+
			`" qty="`+strconv.Itoa(item.Qty)+
			`" description="`+EscapeMarkup(item.Description)+`"/>`)
	}
	w.close(1, "HardwareList")

	w.line(0, "</CabinetAssembly>")

	return AssemblyDocument{
		Content:   w.String(),
		PartCount: partCount,
		Hardware:  items,
	}
}

// markupWriter appends indented markup lines
type markupWriter struct {
	strings.Builder
}

func (w *markupWriter) line(depth int, s string) {
	w.WriteString(strings.Repeat("  ", depth))
	w.WriteString(s)
	w.WriteByte('\n')
}

func (w *markupWriter) open(depth int, name string) {
	w.line(depth, "<"+name+">")
}

func (w *markupWriter) close(depth int, name string) {
	w.line(depth, "</"+name+">")
}

func (w *markupWriter) text(depth int, name, value string) {
	w.line(depth, "<"+name+">"+EscapeMarkup(value)+"</"+name+">")
}

func (w *markupWriter) number(depth int, name string, value float64) {
	w.line(depth, "<"+name+">"+formatNumber(value)+"</"+name+">")
}

func (w *markupWriter) position(depth int, name string, value float64) {
	w.line(depth, "<"+name+">"+formatNumber(roundPosition(value))+"</"+name+">")
}

func (w *markupWriter) boolean(depth int, name string, value bool) {
	w.line(depth, "<"+name+">"+strconv.FormatBool(value)+"</"+name+">")
}

// formatNumber prints the shortest decimal that round-trips the value
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// roundPosition rounds to the nearest millimetre and normalises negative zero
func roundPosition(v float64) float64 {
	r := math.Round(v)
	if r == 0 {
		return 0
	}
	return r
}

func formatDate(job domain.Job) string {
	if job.CreatedAt.IsZero() {
		return ""
	}
	return job.CreatedAt.UTC().Format("2006-01-02")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
