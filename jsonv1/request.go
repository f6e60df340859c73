package jsonv1

import "github.com/vitas/task-adapters/task"

type requestContext struct {
	EnvironmentVariables map[string]string `json:"environmentVariables"`
	WorkingDirectory     string            `json:"workingDirectory"`
}

type executionRequest struct {
	Context requestContext `json:"context"`
	Config  configWire     `json:"config"`
}

// BuildExecutionRequest encodes the body of an execute call:
//
//	{"context": {"environmentVariables": {...}, "workingDirectory": "..."},
//	 "config": <SerializeConfig(cfg)>}
//
// Environment variables are written in key order.
func (h *Handler) BuildExecutionRequest(cfg *task.Config, execCtx task.ExecutionContext) []byte {
	env := execCtx.EnvironmentVariables
	if env == nil {
		env = map[string]string{}
	}
	return mustMarshal(executionRequest{
		Context: requestContext{
			EnvironmentVariables: env,
			WorkingDirectory:     execCtx.WorkingDirectory,
		},
		Config: configWire(cfg.Properties()),
	})
}
