// Package jsonv1 implements protocol version 1.0 of the JSON task
// extension: the wire format of task configuration, validation results,
// task views, execution results and execution requests.
//
// The field names and error messages in this package are part of the
// published contract. Do not change them; add a new version package.
package jsonv1

import (
	"log/slog"

	"github.com/vitas/task-adapters/adapter"
	"github.com/vitas/task-adapters/internal/wire"
)

// Version is the protocol version implemented by this package.
const Version = "1.0"

// Handler converts task extension messages for protocol version 1.0.
// It carries no per-call state and is safe for concurrent use. The zero
// value is ready to use and logs to slog.Default.
type Handler struct {
	logger *slog.Logger
}

var _ adapter.Handler = (*Handler)(nil)

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the logger used to record rejected payloads.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// New returns a version 1.0 handler.
func New(opts ...Option) *Handler {
	h := &Handler{logger: slog.Default()}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) Version() string { return Version }

// decode parses raw as a JSON object, reporting failure against target.
func (h *Handler) decode(target string, raw []byte) (wire.Object, error) {
	obj, err := wire.DecodeObject(raw)
	if err != nil {
		return nil, h.reject(&adapter.ConversionError{Target: target, Cause: err}, raw)
	}
	return obj, nil
}

// reject logs a failed conversion together with the offending payload
// and returns err unchanged.
func (h *Handler) reject(err *adapter.ConversionError, raw []byte) error {
	logger := h.logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Error("Error occurred while converting the Json to "+err.Target,
		slog.String("version", Version),
		slog.String("error", err.Detail()),
		slog.String("payload", string(raw)),
	)
	return err
}

// check returns the collected violations as a logged *ConversionError,
// or nil when there are none.
func (h *Handler) check(c *adapter.Collector, target string, raw []byte) error {
	ce := c.Failure(target)
	if ce == nil {
		return nil
	}
	return h.reject(ce, raw)
}
