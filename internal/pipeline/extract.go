package pipeline

import (
	"context"
	"fmt"
	"math"

	"ordersift/internal"
	"ordersift/internal/llm"
	"ordersift/internal/util"
)

// ExtractionError wraps any failure producing structured order data.
// Unrecoverable JSON from the generation service is not one of them:
// that degrades to the empty default order instead.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string { return fmt.Sprintf("extract order: %v", e.Err) }
func (e *ExtractionError) Unwrap() error { return e.Err }

// Extractor turns free-text email content into a structured order via
// a single completion call.
type Extractor struct {
	client llm.Client
}

func NewExtractor(client llm.Client) *Extractor {
	return &Extractor{client: client}
}

// Wire-boundary shapes: pointer fields keep "omitted" distinguishable
// from zero values, so only the quantity default is ever synthesized.
type wireItem struct {
	SKU      *string  `json:"sku"`
	Name     *string  `json:"name"`
	Quantity *float64 `json:"quantity"`
	Unit     *string  `json:"unit"`
}

type wireDelivery struct {
	Date                *string `json:"date"`
	Address             *string `json:"address"`
	SpecialInstructions *string `json:"special_instructions"`
}

type wireOrder struct {
	Products []wireItem   `json:"products"`
	Delivery wireDelivery `json:"delivery"`
}

func (e *Extractor) Extract(ctx context.Context, emailContent string) (internal.ExtractedOrder, error) {
	normalized := util.NormalizeWhitespace(emailContent)
	prompt := extractionPrompt(normalized)

	response, err := e.client.Complete(ctx, prompt)
	if err != nil {
		return internal.EmptyOrder(), &ExtractionError{Err: err}
	}

	var wire wireOrder
	if err := util.UnmarshalLoose(response, &wire); err != nil {
		return internal.EmptyOrder(), nil
	}
	return fromWire(wire), nil
}

func fromWire(wire wireOrder) internal.ExtractedOrder {
	order := internal.EmptyOrder()
	for _, item := range wire.Products {
		requested := internal.RequestedItem{Quantity: 1}
		if item.SKU != nil {
			requested.SKU = util.NormalizeWhitespace(*item.SKU)
		}
		if item.Name != nil {
			requested.Name = util.NormalizeWhitespace(*item.Name)
		}
		if requested.SKU == "" && requested.Name == "" {
			continue
		}
		if item.Quantity != nil {
			qty := int(math.Round(*item.Quantity))
			if qty < 0 {
				qty = 0
			}
			requested.Quantity = qty
		}
		if item.Unit != nil {
			requested.Unit = util.NormalizeWhitespace(*item.Unit)
		}
		order.Products = append(order.Products, requested)
	}

	if wire.Delivery.Date != nil {
		order.Delivery.Date = util.NormalizeWhitespace(*wire.Delivery.Date)
	}
	if wire.Delivery.Address != nil {
		order.Delivery.Address = util.NormalizeWhitespace(*wire.Delivery.Address)
	}
	if wire.Delivery.SpecialInstructions != nil {
		order.Delivery.SpecialInstructions = util.NormalizeWhitespace(*wire.Delivery.SpecialInstructions)
	}
	return order
}
