package main

import "github.com/vitas/task-adapters/task"

// propertyDoc is the host-side JSON form of a property used on the CLI.
// It is not a plugin wire format.
type propertyDoc struct {
	Key          string  `json:"key"`
	Value        *string `json:"value,omitempty"`
	DefaultValue *string `json:"default_value,omitempty"`
	Secure       *bool   `json:"secure,omitempty"`
	Required     *bool   `json:"required,omitempty"`
}

type contextDoc struct {
	EnvironmentVariables map[string]string `json:"environment_variables"`
	WorkingDirectory     string            `json:"working_directory"`
}

func (d contextDoc) executionContext() task.ExecutionContext {
	return task.ExecutionContext{
		EnvironmentVariables: d.EnvironmentVariables,
		WorkingDirectory:     d.WorkingDirectory,
	}
}

// requestDoc is the stdin document of --kind=request.
type requestDoc struct {
	Properties []propertyDoc `json:"properties"`
	Context    contextDoc    `json:"context"`
}

func (d requestDoc) config() *task.Config {
	cfg := task.NewConfig()
	for _, p := range d.Properties {
		cfg.Add(task.Property{
			Key:          p.Key,
			Value:        p.Value,
			DefaultValue: p.DefaultValue,
			Secure:       p.Secure,
			Required:     p.Required,
		})
	}
	return cfg
}

func toPropertyDocs(cfg *task.Config) []propertyDoc {
	props := cfg.Properties()
	out := make([]propertyDoc, 0, len(props))
	for _, p := range props {
		out = append(out, propertyDoc{
			Key:          p.Key,
			Value:        p.Value,
			DefaultValue: p.DefaultValue,
			Secure:       p.Secure,
			Required:     p.Required,
		})
	}
	return out
}

type configOutput struct {
	Properties []propertyDoc `json:"properties"`
	Wire       any           `json:"wire"`
}

type validationOutput struct {
	Valid  bool                   `json:"valid"`
	Errors []task.ValidationError `json:"errors"`
}

type viewOutput struct {
	DisplayValue string `json:"display_value"`
	Template     string `json:"template"`
}
