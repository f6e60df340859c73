package adapter

import (
	"errors"
	"fmt"
	"strings"
)

// Conversion targets, used in error messages and metric labels.
const (
	TargetTaskConfig       = "Task Config"
	TargetValidationResult = "Validation Result"
	TargetTaskView         = "Task View"
	TargetExecutionResult  = "Execution Result"
)

// ConversionError reports a payload that could not be converted.
//
// Violations lists every contract breach found in one pass, in the order
// they were found. Cause is set instead when the payload could not be
// decoded at all (not JSON, not an object).
type ConversionError struct {
	Target     string
	Violations []string
	Cause      error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("Error occurred while converting the Json to %s. Error: %s.", e.Target, e.Detail())
}

// Detail returns the reason without the surrounding sentence.
func (e *ConversionError) Detail() string {
	if len(e.Violations) > 0 {
		return strings.Join(e.Violations, ", ")
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return "unknown error"
}

func (e *ConversionError) Unwrap() error { return e.Cause }

// Violations returns the contract violations carried by err, or nil when
// err is not a *ConversionError or failed for another reason.
func Violations(err error) []string {
	var ce *ConversionError
	if !errors.As(err, &ce) || len(ce.Violations) == 0 {
		return nil
	}
	out := make([]string, len(ce.Violations))
	copy(out, ce.Violations)
	return out
}

// Collector accumulates violations during a single conversion.
type Collector struct {
	violations []string
}

func (c *Collector) Add(msg string) {
	c.violations = append(c.violations, msg)
}

func (c *Collector) Addf(format string, args ...any) {
	c.Add(fmt.Sprintf(format, args...))
}

func (c *Collector) Empty() bool { return len(c.violations) == 0 }

// Failure returns a *ConversionError for target when anything was
// collected, and nil otherwise.
func (c *Collector) Failure(target string) *ConversionError {
	if c.Empty() {
		return nil
	}
	v := make([]string, len(c.violations))
	copy(v, c.violations)
	return &ConversionError{Target: target, Violations: v}
}

// Err is Failure as an error, keeping a nil result an untyped nil.
func (c *Collector) Err(target string) error {
	if ce := c.Failure(target); ce != nil {
		return ce
	}
	return nil
}
