package pipeline

import (
	"context"
	"fmt"
	"strings"

	"ordersift/internal"
	"ordersift/internal/catalog"
	"ordersift/internal/llm"
	"ordersift/internal/util"
)

// ValidationError wraps any failure in matching or aggregation.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return fmt.Sprintf("validate order: %v", e.Err) }
func (e *ValidationError) Unwrap() error { return e.Err }

type Mode string

const (
	// ModeLocal resolves items against the catalog index directly.
	ModeLocal Mode = "local"
	// ModeLLM asks the generation service to verify against a catalog
	// sample, falling back to local matching on unusable responses.
	ModeLLM Mode = "llm"
)

const noProductsInsight = "No products found in the order."

// catalogSampleRows bounds how much of the catalog is embedded in the
// generation-assisted verification prompt.
const catalogSampleRows = 5

// Validator resolves requested items against the catalog and computes
// order economics. The mode is fixed at construction; calls are never
// blended between modes.
type Validator struct {
	index  *catalog.Index
	client llm.Client
	mode   Mode
}

func NewValidator(index *catalog.Index, client llm.Client, mode Mode) *Validator {
	if mode != ModeLLM {
		mode = ModeLocal
	}
	return &Validator{index: index, client: client, mode: mode}
}

func (v *Validator) Verify(ctx context.Context, order internal.ExtractedOrder) (internal.ValidationReport, error) {
	if len(order.Products) == 0 {
		return internal.ValidationReport{
			VerifiedProducts: []internal.VerifiedItem{},
			MissingProducts:  []string{},
			TotalPrice:       0,
			Insights:         noProductsInsight,
		}, nil
	}

	if v.mode == ModeLLM {
		if report, ok := v.assistedVerification(ctx, order.Products); ok {
			return report, nil
		}
	}
	return v.localVerification(order.Products), nil
}

func (v *Validator) localVerification(products []internal.RequestedItem) internal.ValidationReport {
	verified := []internal.VerifiedItem{}
	missing := []string{}
	totalPrice := 0.0

	for _, item := range products {
		entry, found := v.resolve(item)
		if !found {
			missing = append(missing, item.Identifier())
			continue
		}

		verified = append(verified, internal.VerifiedItem{
			SKU:                  item.SKU,
			Name:                 item.Name,
			FoundInCatalog:       true,
			QuantityRequested:    item.Quantity,
			QuantityAvailable:    entry.AvailableInStock,
			MinimumOrderQuantity: entry.MinOrderQuantity,
			QuantityValid:        item.Quantity >= entry.MinOrderQuantity && item.Quantity <= entry.AvailableInStock,
			Price:                entry.Price,
			ProductCode:          entry.Code,
			Description:          entry.Description,
		})
		totalPrice += entry.Price * float64(item.Quantity)
	}

	return internal.ValidationReport{
		VerifiedProducts: verified,
		MissingProducts:  missing,
		TotalPrice:       totalPrice,
		Insights:         composeInsights(verified, missing, totalPrice),
	}
}

// resolve applies the matching precedence: exact code lookup when the
// item carries a SKU, else the first case-insensitive name-substring
// match in catalog row order.
func (v *Validator) resolve(item internal.RequestedItem) (internal.CatalogEntry, bool) {
	if item.SKU != "" {
		if entry, ok := v.index.LookupByCode(item.SKU); ok {
			return entry, true
		}
	}
	if item.Name != "" {
		if matches := v.index.FindByName(item.Name); len(matches) > 0 {
			return matches[0], true
		}
	}
	return internal.CatalogEntry{}, false
}

type wireVerifiedItem struct {
	SKU                  *string  `json:"sku"`
	Name                 *string  `json:"name"`
	FoundInCatalog       bool     `json:"found_in_catalog"`
	Quantity             *float64 `json:"quantity"`
	QuantityAvailable    *float64 `json:"quantity_available"`
	MinimumOrderQuantity *float64 `json:"minimum_order_quantity"`
	QuantityValid        bool     `json:"quantity_valid"`
	Price                *float64 `json:"price"`
}

type wireVerification struct {
	VerifiedProducts []wireVerifiedItem `json:"verified_products"`
	MissingProducts  []string           `json:"missing_products"`
	TotalPrice       *float64           `json:"total_price"`
}

func (v *Validator) assistedVerification(ctx context.Context, products []internal.RequestedItem) (internal.ValidationReport, bool) {
	prompt := verificationPrompt(products, v.catalogSample())
	response, err := v.client.Complete(ctx, prompt)
	if err != nil {
		return internal.ValidationReport{}, false
	}

	var wire wireVerification
	if err := util.UnmarshalLoose(response, &wire); err != nil {
		return internal.ValidationReport{}, false
	}

	verified := []internal.VerifiedItem{}
	for _, item := range wire.VerifiedProducts {
		out := internal.VerifiedItem{
			FoundInCatalog: item.FoundInCatalog,
			QuantityValid:  item.QuantityValid,
		}
		if item.SKU != nil {
			out.SKU = *item.SKU
			out.ProductCode = *item.SKU
		}
		if item.Name != nil {
			out.Name = *item.Name
		}
		if item.Quantity != nil {
			out.QuantityRequested = int(*item.Quantity)
		}
		if item.QuantityAvailable != nil {
			out.QuantityAvailable = int(*item.QuantityAvailable)
		}
		if item.MinimumOrderQuantity != nil {
			out.MinimumOrderQuantity = int(*item.MinimumOrderQuantity)
		}
		if item.Price != nil {
			out.Price = *item.Price
		}
		verified = append(verified, out)
	}

	missing := wire.MissingProducts
	if missing == nil {
		missing = []string{}
	}
	totalPrice := 0.0
	if wire.TotalPrice != nil {
		totalPrice = *wire.TotalPrice
	}

	return internal.ValidationReport{
		VerifiedProducts: verified,
		MissingProducts:  missing,
		TotalPrice:       totalPrice,
		Insights:         composeInsights(verified, missing, totalPrice),
	}, true
}

func (v *Validator) catalogSample() string {
	var b strings.Builder
	entries := v.index.Entries()
	limit := len(entries)
	if limit > catalogSampleRows {
		limit = catalogSampleRows
	}
	for _, e := range entries[:limit] {
		fmt.Fprintf(&b, "Code: %s, Name: %s, Price: %.2f, Available: %d, MOQ: %d\n",
			e.Code, e.Name, e.Price, e.AvailableInStock, e.MinOrderQuantity)
	}
	fmt.Fprintf(&b, "(%d products in catalog total)", len(entries))
	return b.String()
}

// composeInsights builds the baseline insight text deterministically,
// line order fixed: missing, invalid quantities, all-clear, total.
func composeInsights(verified []internal.VerifiedItem, missing []string, totalPrice float64) string {
	lines := []string{}

	if len(missing) > 0 {
		lines = append(lines, fmt.Sprintf("❌ %d product(s) not found in catalog: %s", len(missing), strings.Join(missing, ", ")))
	}

	invalidCount := 0
	for _, item := range verified {
		if !item.QuantityValid {
			invalidCount++
		}
	}
	if invalidCount > 0 {
		lines = append(lines, fmt.Sprintf("⚠️ %d product(s) have invalid quantities", invalidCount))
	}

	if len(verified) > 0 && len(missing) == 0 && invalidCount == 0 {
		lines = append(lines, "✅ All products verified successfully")
	}

	lines = append(lines, "💰 Total order value: "+util.FormatCurrency(totalPrice))
	return strings.Join(lines, "\n")
}
