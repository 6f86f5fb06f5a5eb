package internal

// RawEmail is one order request as loaded from disk, keyed by filename.
type RawEmail struct {
	Filename string
	Content  string
}

type RequestedItem struct {
	SKU      string `json:"sku,omitempty"`
	Name     string `json:"name,omitempty"`
	Quantity int    `json:"quantity"`
	Unit     string `json:"unit,omitempty"`
}

// Identifier returns the value used to address the item: the catalog
// code when present, otherwise the free-text product name.
func (r RequestedItem) Identifier() string {
	if r.SKU != "" {
		return r.SKU
	}
	return r.Name
}

type DeliveryInfo struct {
	Date                string `json:"date,omitempty"`
	Address             string `json:"address,omitempty"`
	SpecialInstructions string `json:"special_instructions,omitempty"`
}

func (d DeliveryInfo) IsZero() bool {
	return d.Date == "" && d.Address == "" && d.SpecialInstructions == ""
}

type ExtractedOrder struct {
	Products []RequestedItem `json:"products"`
	Delivery DeliveryInfo    `json:"delivery"`
}

// EmptyOrder is the fallback shape when extraction cannot recover
// structured data from the generation response.
func EmptyOrder() ExtractedOrder {
	return ExtractedOrder{Products: []RequestedItem{}}
}

type CatalogEntry struct {
	Code             string
	Name             string
	Price            float64
	AvailableInStock int
	MinOrderQuantity int
	Description      string
}

type VerifiedItem struct {
	SKU                  string  `json:"sku,omitempty"`
	Name                 string  `json:"name,omitempty"`
	FoundInCatalog       bool    `json:"found_in_catalog"`
	QuantityRequested    int     `json:"quantity_requested"`
	QuantityAvailable    int     `json:"quantity_available"`
	MinimumOrderQuantity int     `json:"minimum_order_quantity"`
	QuantityValid        bool    `json:"quantity_valid"`
	Price                float64 `json:"price"`
	ProductCode          string  `json:"product_code,omitempty"`
	Description          string  `json:"description,omitempty"`
}

type ValidationReport struct {
	VerifiedProducts []VerifiedItem `json:"verified_products"`
	MissingProducts  []string       `json:"missing_products"`
	TotalPrice       float64        `json:"total_price"`
	Insights         string         `json:"insights"`
	Solutions        string         `json:"solutions,omitempty"`
}

// AllQuantitiesValid reports whether every verified item is orderable
// in the requested quantity.
func (v ValidationReport) AllQuantitiesValid() bool {
	for _, p := range v.VerifiedProducts {
		if !p.QuantityValid {
			return false
		}
	}
	return true
}

type OrderSummary struct {
	TotalProductsRequested int     `json:"total_products_requested"`
	ProductsFound          int     `json:"products_found"`
	ProductsMissing        int     `json:"products_missing"`
	TotalPrice             float64 `json:"total_price"`
	HasDeliveryInfo        bool    `json:"has_delivery_info"`
}

type FinalResult struct {
	EmailFilename string           `json:"email_filename"`
	Order         ExtractedOrder   `json:"order"`
	Validation    ValidationReport `json:"validation"`
	Success       bool             `json:"success"`
	Summary       OrderSummary     `json:"summary"`
	Errors        []string         `json:"errors,omitempty"`
}

type FetchedMailMessage struct {
	Provider   string
	MessageID  string
	Subject    string
	From       string
	ReceivedAt string
	Raw        []byte
}
