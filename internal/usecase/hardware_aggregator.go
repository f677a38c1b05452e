package usecase

import "github.com/benberthelsen/bower-kitchen-planner-2e763145-sub003/internal/domain"

// Hardware SKUs emitted for every cabinet
const (
	SKUHinge  = "HINGE-BLUM-SC"
	SKUHandle = "HANDLE-STD"

	hingeDescription  = "Blum soft-close concealed hinge"
	handleDescription = "Standard cabinet handle"
)

// hingesByCategory is the hinge count for a hinged cabinet; unlisted categories get four
var hingesByCategory = map[domain.Category]int{
	domain.CategoryTall: 6,
	domain.CategoryWall: 2,
}

// HardwareAggregator accumulates hardware line items across one generation pass.
// Items keep the order in which their SKU was first seen.
type HardwareAggregator struct {
	items []domain.HardwareLineItem
	index map[string]int
}

// NewHardwareAggregator creates an empty aggregator
func NewHardwareAggregator() *HardwareAggregator {
	return &HardwareAggregator{index: make(map[string]int)}
}

// AddCabinet records the hardware one cabinet needs
func (a *HardwareAggregator) AddCabinet(category domain.Category, hinge string) {
	if hinge != "" {
		qty, ok := hingesByCategory[category]
		if !ok {
			qty = 4
		}
		a.Add(SKUHinge, qty, hingeDescription)
	}
	a.Add(SKUHandle, 1, handleDescription)
}

// Add increments an existing SKU or appends a new line item
func (a *HardwareAggregator) Add(sku string, qty int, description string) {
	if i, ok := a.index[sku]; ok {
		a.items[i].Qty += qty
		return
	}
	a.index[sku] = len(a.items)
	a.items = append(a.items, domain.HardwareLineItem{SKU: sku, Qty: qty, Description: description})
}

// Items returns a copy of the accumulated line items
func (a *HardwareAggregator) Items() []domain.HardwareLineItem {
	out := make([]domain.HardwareLineItem, len(a.items))
	copy(out, a.items)
	return out
}
