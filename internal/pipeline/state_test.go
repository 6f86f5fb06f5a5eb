package pipeline

import (
	"testing"

	"ordersift/internal"
)

func TestNextStageHappyPath(t *testing.T) {
	s := newState("body", "a.txt")
	if got := nextStage(StageExtractOrder, s); got != StageValidateOrder {
		t.Fatalf("after extract: %s", got)
	}

	s.Validation = &internal.ValidationReport{MissingProducts: []string{}}
	if got := nextStage(StageValidateOrder, s); got != StagePrepareFinalOutput {
		t.Fatalf("after validate with nothing missing: %s", got)
	}

	if got := nextStage(StagePrepareFinalOutput, s); got != stageDone {
		t.Fatalf("after final output: %s", got)
	}
}

func TestNextStageMissingProductsRouteThroughSolutions(t *testing.T) {
	s := newState("body", "a.txt")
	s.Validation = &internal.ValidationReport{MissingProducts: []string{"Z999"}}

	if got := nextStage(StageValidateOrder, s); got != StageGenerateSolutions {
		t.Fatalf("got %s", got)
	}
	if got := nextStage(StageGenerateSolutions, s); got != StagePrepareFinalOutput {
		t.Fatalf("got %s", got)
	}
}

func TestNextStageErrorsShortCircuitToFinalOutput(t *testing.T) {
	s := newState("body", "a.txt").withError("extract order: boom")
	if got := nextStage(StageExtractOrder, s); got != StagePrepareFinalOutput {
		t.Fatalf("got %s", got)
	}

	s = newState("body", "a.txt")
	s.Validation = &internal.ValidationReport{MissingProducts: []string{"Z999"}}
	s = s.withError("validate order: boom")
	if got := nextStage(StageValidateOrder, s); got != StagePrepareFinalOutput {
		t.Fatalf("errored validation must skip solutions, got %s", got)
	}
}

func TestWithErrorAppendsWithoutMutatingOriginal(t *testing.T) {
	s := newState("body", "a.txt")
	first := s.withError("one")
	second := first.withError("two")

	if len(s.Errors) != 0 {
		t.Fatalf("original mutated: %v", s.Errors)
	}
	if len(first.Errors) != 1 || first.Errors[0] != "one" {
		t.Fatalf("first=%v", first.Errors)
	}
	if len(second.Errors) != 2 || second.Errors[1] != "two" {
		t.Fatalf("second=%v", second.Errors)
	}
	if second.Status != StatusError {
		t.Fatalf("status=%s", second.Status)
	}
}
