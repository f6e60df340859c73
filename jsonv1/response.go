package jsonv1

import (
	"github.com/vitas/task-adapters/adapter"
	"github.com/vitas/task-adapters/internal/wire"
	"github.com/vitas/task-adapters/task"
)

const (
	fieldErrors       = "errors"
	fieldDisplayValue = "displayValue"
	fieldTemplate     = "template"
	fieldSuccess      = "success"
	fieldMessage      = "message"
)

// ParseValidationResult decodes
//
//	{"errors": {"<key>": "<message>", ...}}
//
// An empty body, {} and "errors": null all mean the config is valid.
// An empty errors object is rejected: the plugin must either omit it or
// name at least one error.
func (h *Handler) ParseValidationResult(raw []byte) (*task.ValidationResult, error) {
	result := &task.ValidationResult{}
	if wire.IsEmptyBody(raw) {
		return result, nil
	}
	obj, err := h.decode(adapter.TargetValidationResult, raw)
	if err != nil {
		return nil, err
	}

	var c adapter.Collector
	if errs, ok := obj.Get(fieldErrors); ok && !wire.IsNull(errs) {
		members, err := wire.DecodeObject(errs)
		switch {
		case err != nil:
			c.Add("The Json for Validation Result should contain an 'errors' object")
		case len(members) == 0:
			c.Add("The Json for Validation Result must either be an empty body or it should have errors with the 'errors' key")
		}
		for _, m := range lastWins(members) {
			msg, ok := wire.String(m.Value)
			if !ok {
				c.Addf("Key: '%s' - The Json for Validation Request must contain a not-null error message of type String", m.Name)
				continue
			}
			result.AddError(task.ValidationError{Key: m.Name, Message: msg})
		}
	}

	if err := h.check(&c, adapter.TargetValidationResult, raw); err != nil {
		return nil, err
	}
	return result, nil
}

// ParseTaskView decodes {"displayValue": "...", "template": "..."}.
// Both fields are required strings.
func (h *Handler) ParseTaskView(raw []byte) (task.View, error) {
	obj, err := h.decode(adapter.TargetTaskView, raw)
	if err != nil {
		return nil, err
	}

	var c adapter.Collector
	var displayValue, template string
	if len(obj) == 0 {
		c.Add("The Json for Task View cannot be empty")
	} else {
		if v, ok := obj.Get(fieldDisplayValue); !ok {
			c.Add("The Json for Task View must contain 'displayValue'")
		} else if displayValue, ok = wire.String(v); !ok {
			c.Add("The Json for Task View must contain a not-null 'displayValue' of type String")
		}
		if v, ok := obj.Get(fieldTemplate); !ok {
			c.Add("The Json for Task View must contain 'template'")
		} else if template, ok = wire.String(v); !ok {
			c.Add("The Json for Task View must contain a not-null 'template' of type String")
		}
	}

	if err := h.check(&c, adapter.TargetTaskView, raw); err != nil {
		return nil, err
	}
	return task.NewView(displayValue, template), nil
}

// ParseExecutionResult decodes {"success": true, "message": "..."}.
// The message is optional; when success is false it is the error message.
func (h *Handler) ParseExecutionResult(raw []byte) (*task.ExecutionResult, error) {
	obj, err := h.decode(adapter.TargetExecutionResult, raw)
	if err != nil {
		return nil, err
	}

	var c adapter.Collector
	var result task.ExecutionResult
	if v, ok := obj.Get(fieldSuccess); !ok {
		c.Add("The execution result must have a success status")
	} else if result.Success, ok = wire.Bool(v); !ok {
		c.Add("The success status must be a boolean value")
	}
	if v, ok := obj.Get(fieldMessage); ok {
		if result.Message, result.HasMessage = wire.String(v); !result.HasMessage {
			c.Add("If the 'message' key is present in the Json for Execution Result, it must contain a not-null message of type String")
		}
	}

	if err := h.check(&c, adapter.TargetExecutionResult, raw); err != nil {
		return nil, err
	}
	return &result, nil
}

// lastWins drops earlier members that share a name with a later one,
// keeping the position of the surviving member.
func lastWins(obj wire.Object) wire.Object {
	last := make(map[string]int, len(obj))
	for i, m := range obj {
		last[m.Name] = i
	}
	out := make(wire.Object, 0, len(last))
	for i, m := range obj {
		if last[m.Name] == i {
			out = append(out, m)
		}
	}
	return out
}
