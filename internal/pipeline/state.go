package pipeline

import "ordersift/internal"

type Status string

const (
	StatusProcessing Status = "processing"
	StatusComplete   Status = "complete"
	StatusError      Status = "error"
)

type Stage string

const (
	StageExtractOrder       Stage = "extract_order"
	StageValidateOrder      Stage = "validate_order"
	StageGenerateSolutions  Stage = "generate_solutions"
	StagePrepareFinalOutput Stage = "prepare_final_output"
	stageDone               Stage = "done"
)

// State is the transient carrier threaded through the pipeline for one
// process-email call. Stages take a State and return a new one; the
// error list is append-only.
type State struct {
	EmailContent  string
	EmailFilename string
	Order         *internal.ExtractedOrder
	Validation    *internal.ValidationReport
	Final         *internal.FinalResult
	Errors        []string
	Status        Status
}

func newState(content, filename string) State {
	return State{
		EmailContent:  content,
		EmailFilename: filename,
		Errors:        []string{},
		Status:        StatusProcessing,
	}
}

func (s State) withError(msg string) State {
	errs := make([]string, 0, len(s.Errors)+1)
	errs = append(errs, s.Errors...)
	errs = append(errs, msg)
	s.Errors = errs
	s.Status = StatusError
	return s
}

// nextStage is the whole transition graph. The only branch point is
// after validation: missing products route through solution
// generation. Stage failures route straight to final-output assembly,
// which always runs.
func nextStage(stage Stage, s State) Stage {
	switch stage {
	case StageExtractOrder:
		if s.Status == StatusError {
			return StagePrepareFinalOutput
		}
		return StageValidateOrder
	case StageValidateOrder:
		if s.Status == StatusError {
			return StagePrepareFinalOutput
		}
		if s.Validation != nil && len(s.Validation.MissingProducts) > 0 {
			return StageGenerateSolutions
		}
		return StagePrepareFinalOutput
	case StageGenerateSolutions:
		return StagePrepareFinalOutput
	default:
		return stageDone
	}
}
