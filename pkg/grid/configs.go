package grid

// Compiled-in grid configs for the stock entities. A yaml file with the
// same entity key under the grid-config directory overrides these.

func boolp(b bool) *bool { return &b }

var allFeatures = Features{
	ColumnVisibility: true,
	Sorting:          true,
	Filtering:        true,
	Pagination:       true,
	Export:           true,
}

// ItemsConfig is the default grid for the items entity.
func ItemsConfig() Config {
	return Config{
		Entity:   "items",
		Features: allFeatures,
		Columns: []Column{
			{ID: "sku", Field: "sku", Label: "SKU", Kind: CellLink, Width: 16, FilterKind: FilterText, Hideable: boolp(false)},
			{ID: "name", Field: "name", Label: "Name", Kind: CellText, Width: 28, FilterKind: FilterText},
			{ID: "item_type", Field: "item_type", Label: "Type", Kind: CellBadge, Width: 14, FilterKind: FilterSelect},
			{ID: "unit", Field: "unit", Label: "Unit", Kind: CellText, Width: 6, FilterKind: FilterSelect},
			{ID: "unit_cost", Field: "unit_cost", Label: "Unit Cost", Kind: CellNumber, Width: 12, FilterKind: FilterNumber},
			{ID: "sale_price", Field: "sale_price", Label: "Sale Price", Kind: CellNumber, Width: 12, FilterKind: FilterNumber},
			{ID: "safety_stock", Field: "safety_stock", Label: "Safety", Kind: CellNumber, Width: 8, FilterKind: FilterNumber},
			{ID: "is_active", Field: "is_active", Label: "Active", Kind: CellText, Width: 7, FilterKind: FilterSelect},
			{ID: "created_at", Field: "created_at", Label: "Created", Kind: CellDate, Width: 11, Filterable: boolp(false)},
		},
		InitialState: &InitialState{
			Sorting:  []SortEntry{{ID: "sku", Desc: false}},
			PageSize: 20,
		},
	}
}

// StocksConfig is the default grid for the stocks entity.
func StocksConfig() Config {
	return Config{
		Entity:   "stocks",
		Features: allFeatures,
		Columns: []Column{
			{ID: "sku", Field: "sku", Label: "SKU", Kind: CellLink, Width: 16, FilterKind: FilterText, Hideable: boolp(false)},
			{ID: "item_name", Field: "item_name", Label: "Item", Kind: CellText, Width: 28, FilterKind: FilterText},
			{ID: "location", Field: "location", Label: "Location", Kind: CellText, Width: 12, FilterKind: FilterSelect},
			{ID: "quantity", Field: "quantity", Label: "Qty", Kind: CellNumber, Width: 10, FilterKind: FilterNumber},
			{ID: "reserved", Field: "reserved", Label: "Reserved", Kind: CellNumber, Width: 10, FilterKind: FilterNumber},
			{ID: "available", Field: "available", Label: "Available", Kind: CellNumber, Width: 10, FilterKind: FilterNumber},
			{ID: "updated_at", Field: "updated_at", Label: "Updated", Kind: CellDate, Width: 11, Filterable: boolp(false)},
		},
		InitialState: &InitialState{
			Sorting:  []SortEntry{{ID: "sku", Desc: false}},
			PageSize: 20,
		},
	}
}

// InboundsConfig is the default grid for inbound receipts.
func InboundsConfig() Config {
	return Config{
		Entity:   "inbounds",
		Features: allFeatures,
		Columns: []Column{
			{ID: "ref_no", Field: "ref_no", Label: "Ref", Kind: CellLink, Width: 14, FilterKind: FilterText, Hideable: boolp(false)},
			{ID: "sku", Field: "sku", Label: "SKU", Kind: CellText, Width: 16, FilterKind: FilterText},
			{ID: "item_name", Field: "item_name", Label: "Item", Kind: CellText, Width: 24, FilterKind: FilterText},
			{ID: "quantity", Field: "quantity", Label: "Qty", Kind: CellNumber, Width: 9, FilterKind: FilterNumber},
			{ID: "unit_cost", Field: "unit_cost", Label: "Unit Cost", Kind: CellNumber, Width: 12, FilterKind: FilterNumber},
			{ID: "supplier", Field: "supplier", Label: "Supplier", Kind: CellText, Width: 18, FilterKind: FilterSelect},
			{ID: "status", Field: "status", Label: "Status", Kind: CellBadge, Width: 11, FilterKind: FilterSelect},
			{ID: "received_at", Field: "received_at", Label: "Received", Kind: CellDate, Width: 11, Filterable: boolp(false)},
			{ID: "created_at", Field: "created_at", Label: "Created", Kind: CellDate, Width: 11, Filterable: boolp(false)},
		},
		InitialState: &InitialState{
			ColumnVisibility: map[string]bool{"created_at": false},
			Sorting:          []SortEntry{{ID: "ref_no", Desc: true}},
			PageSize:         20,
		},
	}
}

// OutboundsConfig is the default grid for outbound shipments.
func OutboundsConfig() Config {
	return Config{
		Entity:   "outbounds",
		Features: allFeatures,
		Columns: []Column{
			{ID: "ref_no", Field: "ref_no", Label: "Ref", Kind: CellLink, Width: 14, FilterKind: FilterText, Hideable: boolp(false)},
			{ID: "sku", Field: "sku", Label: "SKU", Kind: CellText, Width: 16, FilterKind: FilterText},
			{ID: "item_name", Field: "item_name", Label: "Item", Kind: CellText, Width: 24, FilterKind: FilterText},
			{ID: "quantity", Field: "quantity", Label: "Qty", Kind: CellNumber, Width: 9, FilterKind: FilterNumber},
			{ID: "receiver", Field: "receiver", Label: "Receiver", Kind: CellText, Width: 18, FilterKind: FilterSelect},
			{ID: "status", Field: "status", Label: "Status", Kind: CellBadge, Width: 11, FilterKind: FilterSelect},
			{ID: "shipped_at", Field: "shipped_at", Label: "Shipped", Kind: CellDate, Width: 11, Filterable: boolp(false)},
			{ID: "created_at", Field: "created_at", Label: "Created", Kind: CellDate, Width: 11, Filterable: boolp(false)},
		},
		InitialState: &InitialState{
			ColumnVisibility: map[string]bool{"created_at": false},
			Sorting:          []SortEntry{{ID: "ref_no", Desc: true}},
			PageSize:         20,
		},
	}
}

// Builtin returns the compiled-in config for an entity, or false.
func Builtin(entity string) (Config, bool) {
	switch entity {
	case "items":
		return ItemsConfig(), true
	case "stocks":
		return StocksConfig(), true
	case "inbounds":
		return InboundsConfig(), true
	case "outbounds":
		return OutboundsConfig(), true
	default:
		return Config{}, false
	}
}

// Entities lists the entity keys with compiled-in grid configs, in the
// order the UI cycles through them.
func Entities() []string {
	return []string{"items", "stocks", "inbounds", "outbounds"}
}
