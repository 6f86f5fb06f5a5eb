package pipeline

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"ordersift/internal"
	"ordersift/internal/llm"
)

func sampleReport() internal.ValidationReport {
	return internal.ValidationReport{
		VerifiedProducts: []internal.VerifiedItem{},
		MissingProducts:  []string{"Z999"},
		TotalPrice:       0,
		Insights:         "❌ 1 product(s) not found in catalog: Z999\n💰 Total order value: $0.00",
	}
}

func TestGenerateSolutionsPassesThrough(t *testing.T) {
	fake := &llm.Fake{Responses: []string{"1. Consider code A100 as a likely typo fix for Z999."}}
	g := NewInsightGenerator(fake)

	got := g.GenerateSolutions(context.Background(), sampleReport())
	if got != "1. Consider code A100 as a likely typo fix for Z999." {
		t.Fatalf("got %q", got)
	}
	if !strings.Contains(fake.Prompts[0], `"Z999"`) {
		t.Fatalf("prompt should carry the serialized report: %q", fake.Prompts[0])
	}
}

func TestGenerateSolutionsFallbackKeepsBaseline(t *testing.T) {
	fake := &llm.Fake{Err: fmt.Errorf("rate limited")}
	g := NewInsightGenerator(fake)

	got := g.GenerateSolutions(context.Background(), sampleReport())
	if !strings.HasPrefix(got, "Solution generation failed:") {
		t.Fatalf("got %q", got)
	}
	if !strings.Contains(got, "Basic insights:\n❌ 1 product(s) not found in catalog: Z999") {
		t.Fatalf("baseline insights missing: %q", got)
	}
}

func TestGenerateInsightsPassesThrough(t *testing.T) {
	fake := &llm.Fake{Responses: []string{"- Order incomplete; follow up with customer."}}
	g := NewInsightGenerator(fake)

	got := g.GenerateInsights(context.Background(), sampleReport())
	if got != "- Order incomplete; follow up with customer." {
		t.Fatalf("got %q", got)
	}
}

func TestGenerateInsightsFallbackKeepsBaseline(t *testing.T) {
	fake := &llm.Fake{Err: fmt.Errorf("timeout")}
	g := NewInsightGenerator(fake)

	got := g.GenerateInsights(context.Background(), sampleReport())
	if !strings.HasPrefix(got, "Extended insights generation failed:") {
		t.Fatalf("got %q", got)
	}
	if !strings.Contains(got, "Basic insights:") {
		t.Fatalf("baseline insights missing: %q", got)
	}
}
