package pipeline

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"ordersift/internal"
	"ordersift/internal/catalog"
	"ordersift/internal/llm"
)

func testIndex() *catalog.Index {
	return catalog.BuildIndex([]internal.CatalogEntry{
		{Code: "A100", Name: "Steel Bracket", Price: 10.00, AvailableInStock: 5, MinOrderQuantity: 2, Description: "Galvanized steel bracket"},
		{Code: "B200", Name: "Copper Wire 2mm", Price: 4.50, AvailableInStock: 120, MinOrderQuantity: 10},
		{Code: "B201", Name: "Copper Wire 4mm", Price: 6.00, AvailableInStock: 80, MinOrderQuantity: 10},
	})
}

func orderOf(items ...internal.RequestedItem) internal.ExtractedOrder {
	return internal.ExtractedOrder{Products: items}
}

func TestVerifyEmptyOrderShortCircuits(t *testing.T) {
	fake := &llm.Fake{}
	v := NewValidator(testIndex(), fake, ModeLocal)

	report, err := v.Verify(context.Background(), internal.EmptyOrder())
	if err != nil {
		t.Fatal(err)
	}
	if report.TotalPrice != 0 || len(report.VerifiedProducts) != 0 || len(report.MissingProducts) != 0 {
		t.Fatalf("report=%+v", report)
	}
	if report.Insights != "No products found in the order." {
		t.Fatalf("insights=%q", report.Insights)
	}
	if fake.CallCount() != 0 {
		t.Fatalf("no completion call expected, got %d", fake.CallCount())
	}
}

func TestVerifyValidOrder(t *testing.T) {
	v := NewValidator(testIndex(), &llm.Fake{}, ModeLocal)

	report, err := v.Verify(context.Background(), orderOf(internal.RequestedItem{SKU: "A100", Quantity: 3}))
	if err != nil {
		t.Fatal(err)
	}
	if len(report.VerifiedProducts) != 1 || len(report.MissingProducts) != 0 {
		t.Fatalf("report=%+v", report)
	}
	item := report.VerifiedProducts[0]
	if !item.FoundInCatalog || !item.QuantityValid {
		t.Fatalf("item=%+v", item)
	}
	if item.ProductCode != "A100" || item.Description != "Galvanized steel bracket" {
		t.Fatalf("item=%+v", item)
	}
	if report.TotalPrice != 30.00 {
		t.Fatalf("total=%v", report.TotalPrice)
	}
	if !strings.Contains(report.Insights, "✅ All products verified successfully") {
		t.Fatalf("insights=%q", report.Insights)
	}
	if !strings.Contains(report.Insights, "$30.00") {
		t.Fatalf("insights=%q", report.Insights)
	}
}

func TestVerifyQuantityBelowMinimum(t *testing.T) {
	v := NewValidator(testIndex(), &llm.Fake{}, ModeLocal)

	report, err := v.Verify(context.Background(), orderOf(internal.RequestedItem{SKU: "A100", Quantity: 1}))
	if err != nil {
		t.Fatal(err)
	}
	if len(report.MissingProducts) != 0 {
		t.Fatalf("missing=%v", report.MissingProducts)
	}
	item := report.VerifiedProducts[0]
	if item.QuantityValid {
		t.Fatal("quantity 1 below MOQ 2 must be invalid")
	}
	// Matched items price in regardless of quantity validity.
	if report.TotalPrice != 10.00 {
		t.Fatalf("total=%v", report.TotalPrice)
	}
	if !strings.Contains(report.Insights, "⚠️ 1 product(s) have invalid quantities") {
		t.Fatalf("insights=%q", report.Insights)
	}
}

func TestVerifyQuantityBoundaries(t *testing.T) {
	v := NewValidator(testIndex(), &llm.Fake{}, ModeLocal)

	cases := []struct {
		name string
		qty  int
		want bool
	}{
		{name: "exactly min", qty: 2, want: true},
		{name: "exactly available", qty: 5, want: true},
		{name: "below min", qty: 1, want: false},
		{name: "above available", qty: 6, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			report, err := v.Verify(context.Background(), orderOf(internal.RequestedItem{SKU: "A100", Quantity: tc.qty}))
			if err != nil {
				t.Fatal(err)
			}
			if got := report.VerifiedProducts[0].QuantityValid; got != tc.want {
				t.Fatalf("qty=%d valid=%v want %v", tc.qty, got, tc.want)
			}
		})
	}
}

func TestVerifyUnknownSKU(t *testing.T) {
	v := NewValidator(testIndex(), &llm.Fake{}, ModeLocal)

	report, err := v.Verify(context.Background(), orderOf(internal.RequestedItem{SKU: "Z999", Quantity: 1}))
	if err != nil {
		t.Fatal(err)
	}
	if len(report.VerifiedProducts) != 0 {
		t.Fatalf("verified=%v", report.VerifiedProducts)
	}
	if len(report.MissingProducts) != 1 || report.MissingProducts[0] != "Z999" {
		t.Fatalf("missing=%v", report.MissingProducts)
	}
	if report.TotalPrice != 0 {
		t.Fatalf("total=%v", report.TotalPrice)
	}
	if !strings.Contains(report.Insights, "❌ 1 product(s) not found in catalog: Z999") {
		t.Fatalf("insights=%q", report.Insights)
	}
}

func TestVerifyNameSubstringFirstRowWins(t *testing.T) {
	v := NewValidator(testIndex(), &llm.Fake{}, ModeLocal)

	report, err := v.Verify(context.Background(), orderOf(internal.RequestedItem{Name: "copper wire", Quantity: 10}))
	if err != nil {
		t.Fatal(err)
	}
	if len(report.VerifiedProducts) != 1 {
		t.Fatalf("report=%+v", report)
	}
	if report.VerifiedProducts[0].ProductCode != "B200" {
		t.Fatalf("tie-break should take catalog row order, got %s", report.VerifiedProducts[0].ProductCode)
	}
}

func TestVerifyMixedOrderAggregation(t *testing.T) {
	v := NewValidator(testIndex(), &llm.Fake{}, ModeLocal)

	report, err := v.Verify(context.Background(), orderOf(
		internal.RequestedItem{SKU: "A100", Quantity: 2},
		internal.RequestedItem{SKU: "Z999", Quantity: 4},
		internal.RequestedItem{Name: "Copper Wire 4mm", Quantity: 20},
	))
	if err != nil {
		t.Fatal(err)
	}
	if len(report.VerifiedProducts) != 2 || len(report.MissingProducts) != 1 {
		t.Fatalf("report=%+v", report)
	}
	// 2*10.00 + 20*6.00; the missing item contributes nothing.
	if report.TotalPrice != 140.00 {
		t.Fatalf("total=%v", report.TotalPrice)
	}
	if !strings.Contains(report.Insights, "❌ 1 product(s) not found in catalog: Z999") {
		t.Fatalf("insights=%q", report.Insights)
	}
	if !strings.Contains(report.Insights, "$140.00") {
		t.Fatalf("insights=%q", report.Insights)
	}
}

func TestVerifyInsightLineOrder(t *testing.T) {
	v := NewValidator(testIndex(), &llm.Fake{}, ModeLocal)

	report, err := v.Verify(context.Background(), orderOf(
		internal.RequestedItem{SKU: "A100", Quantity: 1},
		internal.RequestedItem{SKU: "Z999", Quantity: 1},
	))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(report.Insights, "\n")
	if len(lines) != 3 {
		t.Fatalf("lines=%v", lines)
	}
	if !strings.HasPrefix(lines[0], "❌") || !strings.HasPrefix(lines[1], "⚠️") || !strings.HasPrefix(lines[2], "💰") {
		t.Fatalf("line order wrong: %v", lines)
	}
}

func TestAssistedModeParsesResponse(t *testing.T) {
	fake := &llm.Fake{Responses: []string{
		`{"verified_products":[{"sku":"A100","found_in_catalog":true,"quantity":3,"quantity_available":5,"minimum_order_quantity":2,"quantity_valid":true,"price":10}],"missing_products":[],"total_price":30}`,
	}}
	v := NewValidator(testIndex(), fake, ModeLLM)

	report, err := v.Verify(context.Background(), orderOf(internal.RequestedItem{SKU: "A100", Quantity: 3}))
	if err != nil {
		t.Fatal(err)
	}
	if fake.CallCount() != 1 {
		t.Fatalf("calls=%d", fake.CallCount())
	}
	if len(report.VerifiedProducts) != 1 || report.TotalPrice != 30 {
		t.Fatalf("report=%+v", report)
	}
	// The prompt embeds a bounded catalog sample with the row total.
	if !strings.Contains(fake.Prompts[0], "(3 products in catalog total)") {
		t.Fatalf("prompt=%q", fake.Prompts[0])
	}
}

func TestAssistedModeFallsBackOnGarbage(t *testing.T) {
	fake := &llm.Fake{Responses: []string{"not json at all"}}
	v := NewValidator(testIndex(), fake, ModeLLM)

	report, err := v.Verify(context.Background(), orderOf(internal.RequestedItem{SKU: "A100", Quantity: 3}))
	if err != nil {
		t.Fatal(err)
	}
	// Local algorithm took over.
	if len(report.VerifiedProducts) != 1 || report.TotalPrice != 30.00 {
		t.Fatalf("report=%+v", report)
	}
}

func TestAssistedModeFallsBackOnCompletionFailure(t *testing.T) {
	fake := &llm.Fake{Err: fmt.Errorf("service down")}
	v := NewValidator(testIndex(), fake, ModeLLM)

	report, err := v.Verify(context.Background(), orderOf(internal.RequestedItem{SKU: "A100", Quantity: 3}))
	if err != nil {
		t.Fatal(err)
	}
	if len(report.VerifiedProducts) != 1 {
		t.Fatalf("report=%+v", report)
	}
}
