package model

import (
	"errors"
	"fmt"
)

// Invalid-input sentinels. Surfaced to the caller, never retried.
var (
	ErrEmptyInput   = errors.New("input text is empty")
	ErrInputTooLong = errors.New("input text exceeds maximum length")
)

// RuleLoadError reports a malformed rule definition at initialization.
// Fatal at startup: the process must not serve requests with partially
// loaded tables.
type RuleLoadError struct {
	Source string // Catalog name or file path
	Index  int    // Rule index within the source, -1 if not applicable
	Reason string
	Err    error
}

func (e *RuleLoadError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("rule table %s: rule %d: %s", e.Source, e.Index, e.Reason)
	}
	return fmt.Sprintf("rule table %s: %s", e.Source, e.Reason)
}

func (e *RuleLoadError) Unwrap() error {
	return e.Err
}
