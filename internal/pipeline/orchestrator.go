package pipeline

import (
	"context"

	"ordersift/internal"
	"ordersift/internal/catalog"
	"ordersift/internal/llm"
	"ordersift/internal/mail"
)

// Orchestrator drives the order-processing state machine. It holds the
// long-lived read-only catalog index and completion client; every call
// runs on a fresh State, so concurrent ProcessEmail calls are safe.
type Orchestrator struct {
	extractor *Extractor
	validator *Validator
	insights  *InsightGenerator
}

func NewOrchestrator(index *catalog.Index, client llm.Client, mode Mode) *Orchestrator {
	return &Orchestrator{
		extractor: NewExtractor(client),
		validator: NewValidator(index, client, mode),
		insights:  NewInsightGenerator(client),
	}
}

// ProcessEmail runs one email through extract → validate →
// (conditionally solutions) → final assembly. It always returns a
// FinalResult; degraded runs carry their stage errors in Errors.
func (o *Orchestrator) ProcessEmail(ctx context.Context, content, filename string) internal.FinalResult {
	state := newState(content, filename)
	stage := StageExtractOrder
	for stage != stageDone {
		state = o.apply(ctx, stage, state)
		stage = nextStage(stage, state)
	}
	return *state.Final
}

// ProcessAllEmails loads the directory and processes each email
// sequentially, keyed by filename.
func (o *Orchestrator) ProcessAllEmails(ctx context.Context, dir string) (map[string]internal.FinalResult, error) {
	emails, err := mail.LoadDir(dir)
	if err != nil {
		return nil, err
	}

	results := make(map[string]internal.FinalResult, len(emails))
	for _, email := range emails {
		results[email.Filename] = o.ProcessEmail(ctx, email.Content, email.Filename)
	}
	return results, nil
}

func (o *Orchestrator) apply(ctx context.Context, stage Stage, s State) State {
	switch stage {
	case StageExtractOrder:
		order, err := o.extractor.Extract(ctx, s.EmailContent)
		if err != nil {
			return s.withError(err.Error())
		}
		s.Order = &order
		return s

	case StageValidateOrder:
		report, err := o.validator.Verify(ctx, *s.Order)
		if err != nil {
			return s.withError((&ValidationError{Err: err}).Error())
		}
		s.Validation = &report
		return s

	case StageGenerateSolutions:
		report := *s.Validation
		report.Solutions = o.insights.GenerateSolutions(ctx, report)
		s.Validation = &report
		return s

	case StagePrepareFinalOutput:
		s.Final = assembleFinal(s)
		s.Status = StatusComplete
		return s
	}
	return s
}

// assembleFinal builds the terminal result from whatever partial state
// exists; prior stage failures leave empty sections, never a panic.
func assembleFinal(s State) *internal.FinalResult {
	order := internal.EmptyOrder()
	if s.Order != nil {
		order = *s.Order
	}
	validation := internal.ValidationReport{
		VerifiedProducts: []internal.VerifiedItem{},
		MissingProducts:  []string{},
	}
	if s.Validation != nil {
		validation = *s.Validation
	}

	return &internal.FinalResult{
		EmailFilename: s.EmailFilename,
		Order:         order,
		Validation:    validation,
		Success:       len(validation.MissingProducts) == 0 && validation.AllQuantitiesValid(),
		Summary: internal.OrderSummary{
			TotalProductsRequested: len(order.Products),
			ProductsFound:          len(validation.VerifiedProducts),
			ProductsMissing:        len(validation.MissingProducts),
			TotalPrice:             validation.TotalPrice,
			HasDeliveryInfo:        !order.Delivery.IsZero(),
		},
		Errors: s.Errors,
	}
}
