package enhancer

import "strings"

// Input limits enforced by Validate. The UI relies on the same numbers for
// its form hints.
const (
	MinPromptLength = 3
	MaxPromptLength = 2000
	MaxTargetLength = 50
)

// Validate checks the target and prompt shape constraints. It returns a
// *ValidationError describing the first violated rule, or nil. Pure; no
// side effects.
//
// The minimum prompt length is checked on the trimmed text, the maximum on
// the raw text, so trailing whitespace still counts against the upper bound.
func Validate(target, prompt string) error {
	if strings.TrimSpace(target) == "" {
		return &ValidationError{Field: "target", Message: "cannot be empty"}
	}
	if len(target) > MaxTargetLength {
		return &ValidationError{Field: "target", Message: "must be at most 50 characters"}
	}

	trimmed := strings.TrimSpace(prompt)
	if trimmed == "" {
		return &ValidationError{Field: "prompt", Message: "cannot be empty"}
	}
	if len(trimmed) < MinPromptLength {
		return &ValidationError{Field: "prompt", Message: "must be at least 3 characters"}
	}
	if len(prompt) > MaxPromptLength {
		return &ValidationError{Field: "prompt", Message: "must be at most 2000 characters"}
	}

	return nil
}
