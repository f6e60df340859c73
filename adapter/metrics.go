package adapter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vitas/task-adapters/task"
)

// Operation labels.
const (
	OpSerializeConfig       = "serialize_config"
	OpDeserializeConfig     = "deserialize_config"
	OpParseValidationResult = "parse_validation_result"
	OpParseTaskView         = "parse_task_view"
	OpParseExecutionResult  = "parse_execution_result"
	OpBuildExecutionRequest = "build_execution_request"
)

// Metrics holds the conversion collectors.
type Metrics struct {
	Conversions *prometheus.CounterVec
	Violations  *prometheus.CounterVec
}

// NewMetrics registers the conversion collectors with reg.
// Passing nil registers nothing, which is handy in tests.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Conversions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "conversions_total",
				Help:      "Task plugin message conversions by protocol version, operation and outcome",
			},
			[]string{"version", "operation", "outcome"},
		),
		Violations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "violations_total",
				Help:      "Contract violations found in plugin payloads",
			},
			[]string{"version", "operation"},
		),
	}
}

// Instrument wraps h so that every call is counted in m.
func Instrument(h Handler, m *Metrics) Handler {
	return &instrumented{next: h, m: m}
}

type instrumented struct {
	next Handler
	m    *Metrics
}

func (i *instrumented) observe(op string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	i.m.Conversions.WithLabelValues(i.next.Version(), op, outcome).Inc()
	if n := len(Violations(err)); n > 0 {
		i.m.Violations.WithLabelValues(i.next.Version(), op).Add(float64(n))
	}
}

func (i *instrumented) Version() string { return i.next.Version() }

func (i *instrumented) SerializeConfig(cfg *task.Config) []byte {
	out := i.next.SerializeConfig(cfg)
	i.observe(OpSerializeConfig, nil)
	return out
}

func (i *instrumented) DeserializeConfig(raw []byte) (*task.Config, error) {
	cfg, err := i.next.DeserializeConfig(raw)
	i.observe(OpDeserializeConfig, err)
	return cfg, err
}

func (i *instrumented) ParseValidationResult(raw []byte) (*task.ValidationResult, error) {
	r, err := i.next.ParseValidationResult(raw)
	i.observe(OpParseValidationResult, err)
	return r, err
}

func (i *instrumented) ParseTaskView(raw []byte) (task.View, error) {
	v, err := i.next.ParseTaskView(raw)
	i.observe(OpParseTaskView, err)
	return v, err
}

func (i *instrumented) ParseExecutionResult(raw []byte) (*task.ExecutionResult, error) {
	r, err := i.next.ParseExecutionResult(raw)
	i.observe(OpParseExecutionResult, err)
	return r, err
}

func (i *instrumented) BuildExecutionRequest(cfg *task.Config, execCtx task.ExecutionContext) []byte {
	out := i.next.BuildExecutionRequest(cfg, execCtx)
	i.observe(OpBuildExecutionRequest, nil)
	return out
}
