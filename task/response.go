package task

// ValidationError points at a property key, or at the whole config when
// Key is empty.
type ValidationError struct {
	Key     string `json:"key"`
	Message string `json:"message"`
}

// ValidationResult is an ordered list of validation errors.
// An empty result means the configuration is valid.
type ValidationResult struct {
	errors []ValidationError
}

func (r *ValidationResult) AddError(e ValidationError) {
	r.errors = append(r.errors, e)
}

// Errors returns a copy of the recorded errors in the order they were added.
func (r *ValidationResult) Errors() []ValidationError {
	out := make([]ValidationError, len(r.errors))
	copy(out, r.errors)
	return out
}

func (r *ValidationResult) IsSuccessful() bool { return len(r.errors) == 0 }

// View is the plugin-provided UI description of a task.
// Template is opaque markup and is passed through untouched.
type View interface {
	DisplayValue() string
	Template() string
}

type staticView struct {
	displayValue string
	template     string
}

// NewView returns a read-only View over the two strings.
func NewView(displayValue, template string) View {
	return staticView{displayValue: displayValue, template: template}
}

func (v staticView) DisplayValue() string { return v.displayValue }
func (v staticView) Template() string     { return v.template }

// ExecutionResult is the outcome a plugin reports after running a task.
type ExecutionResult struct {
	Success bool `json:"success"`
	// Message is informational when Success is true and an error
	// description otherwise. HasMessage tells an empty message apart
	// from no message at all.
	Message    string `json:"message,omitempty"`
	HasMessage bool   `json:"-"`
}

// SuccessMessage returns the informational message of a successful run.
func (r ExecutionResult) SuccessMessage() (string, bool) {
	if !r.Success || !r.HasMessage {
		return "", false
	}
	return r.Message, true
}

// ErrorMessage returns the error message of a failed run.
func (r ExecutionResult) ErrorMessage() (string, bool) {
	if r.Success || !r.HasMessage {
		return "", false
	}
	return r.Message, true
}
