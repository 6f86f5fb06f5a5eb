package llm

import "fmt"

// CompletionError wraps any transport, auth, quota or timeout failure
// of the generation service. Callers at the insight-generation and
// generation-assisted-validation boundaries downgrade it to fallback
// values; it must never propagate as fatal from those call sites.
type CompletionError struct {
	Provider string
	Err      error
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("%s completion: %v", e.Provider, e.Err)
}

func (e *CompletionError) Unwrap() error { return e.Err }
