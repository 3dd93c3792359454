package generator

import (
	"errors"
	"fmt"
)

var (
	ErrPatternEmpty       = errors.New("pattern is empty")
	ErrPatternTooLong     = fmt.Errorf("pattern longer than %d symbols", MaxPatternLength)
	ErrInvalidSymbol      = errors.New("symbol not in address alphabet")
	ErrUnknownChain       = errors.New("unknown chain")
	ErrUnknownPosition    = errors.New("unknown position")
	ErrUnreachablePattern = errors.New("pattern can never match this address format")
)

// ValidationError reports a rejected search parameter. It wraps one of the
// sentinel errors above so callers can branch with errors.Is.
type ValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
