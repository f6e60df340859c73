// Package adapter defines the contract for task plugin message handlers.
//
// A handler converts host task objects (configuration, execution context)
// into the JSON a plugin expects, and converts plugin responses back into
// typed host objects. Each handler implements exactly one protocol
// version; its wire rules never change once published. New protocol
// versions are added as new handlers and selected through a Registry.
package adapter

import "github.com/vitas/task-adapters/task"

// Handler converts task extension messages for one protocol version.
//
// Implementations hold no per-call state and must be safe for concurrent
// use. Parse and deserialize methods return a *ConversionError on failure.
type Handler interface {
	// Version returns the protocol version identifier, e.g. "1.0".
	// It is used for dispatch and is never written into payloads.
	Version() string

	// SerializeConfig encodes a task configuration for the plugin.
	SerializeConfig(cfg *task.Config) []byte

	// DeserializeConfig decodes the configuration a plugin declares.
	DeserializeConfig(raw []byte) (*task.Config, error)

	// ParseValidationResult decodes a plugin's verdict on a configuration.
	ParseValidationResult(raw []byte) (*task.ValidationResult, error)

	// ParseTaskView decodes the plugin's UI description.
	ParseTaskView(raw []byte) (task.View, error)

	// ParseExecutionResult decodes the outcome of a task run.
	ParseExecutionResult(raw []byte) (*task.ExecutionResult, error)

	// BuildExecutionRequest encodes the body of an execute call.
	BuildExecutionRequest(cfg *task.Config, execCtx task.ExecutionContext) []byte
}
