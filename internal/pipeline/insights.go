package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"ordersift/internal"
	"ordersift/internal/llm"
)

// InsightGenerator enriches validation results with generated
// narrative. Both operations are never-fatal: any completion failure
// degrades to a deterministic fallback carrying the baseline insights.
type InsightGenerator struct {
	client llm.Client
}

func NewInsightGenerator(client llm.Client) *InsightGenerator {
	return &InsightGenerator{client: client}
}

// GenerateInsights produces bullet-point business recommendations over
// the report: order completeness, inventory implications, customer
// service recommendations, business value.
func (g *InsightGenerator) GenerateInsights(ctx context.Context, report internal.ValidationReport) string {
	response, err := g.client.Complete(ctx, insightPrompt(serializeReport(report)))
	if err != nil {
		return fmt.Sprintf("Extended insights generation failed: %v\n\nBasic insights:\n%s", err, report.Insights)
	}
	return response
}

// GenerateSolutions proposes remediation for validation failures:
// substitutions for missing products, MOQ adjustments, restock and
// partial-fulfillment options.
func (g *InsightGenerator) GenerateSolutions(ctx context.Context, report internal.ValidationReport) string {
	response, err := g.client.Complete(ctx, solutionPrompt(serializeReport(report)))
	if err != nil {
		return fmt.Sprintf("Solution generation failed: %v\n\nBasic insights:\n%s", err, report.Insights)
	}
	return response
}

func serializeReport(report internal.ValidationReport) string {
	blob, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return report.Insights
	}
	return string(blob)
}
