package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vitas/task-adapters/adapter"
	"github.com/vitas/task-adapters/internal/config"
	"github.com/vitas/task-adapters/internal/logging"
	"github.com/vitas/task-adapters/jsonv1"
)

// Version is the CLI version, set at build time via ldflags.
var Version = "dev"

const usage = "Usage: task-adapter --kind=config|validation|view|execution|request " +
	"[--version=1.0] [--config=FILE] [--json-errors] < payload.json\n"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, os.LookupEnv))
}

type cli struct {
	stderr     io.Writer
	jsonErrors bool
	version    string
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer, lookupEnv func(string) (string, bool)) int {
	c := &cli{stderr: stderr}
	var kind, configFile, version string
	listVersions := false

	for _, arg := range args {
		switch {
		case arg == "--json-errors":
			c.jsonErrors = true
		case arg == "--help" || arg == "-h":
			fmt.Fprint(stderr, usage)
			return 0
		case arg == "--cli-version":
			fmt.Fprintf(stdout, "task-adapter %s\n", Version)
			return 0
		case arg == "--versions":
			listVersions = true
		case strings.HasPrefix(arg, "--kind="):
			kind = strings.TrimPrefix(arg, "--kind=")
		case strings.HasPrefix(arg, "--version="):
			version = strings.TrimPrefix(arg, "--version=")
		case strings.HasPrefix(arg, "--config="):
			configFile = strings.TrimPrefix(arg, "--config=")
		default:
			return c.fail("USAGE_ERROR", fmt.Sprintf("unknown flag: %s", arg), "", 2)
		}
	}

	cfg, err := config.Load(config.Options{ConfigFile: configFile, LookupEnv: lookupEnv})
	if err != nil {
		return c.fail("USAGE_ERROR", err.Error(), "", 2)
	}
	if version != "" {
		cfg.Version = version
	}
	c.version = cfg.Version

	logger, closeLog := logging.New(cfg.Log, stdout, stderr)
	defer closeLog() //nolint:errcheck
	reg := prometheus.NewRegistry()
	metrics := adapter.NewMetrics("task_adapter", reg)
	if cfg.MetricsFile != "" {
		// Failed conversions are exported too.
		defer func() {
			if err := prometheus.WriteToTextfile(cfg.MetricsFile, reg); err != nil {
				logger.Warn("write metrics textfile", slog.String("path", cfg.MetricsFile), slog.Any("error", err))
			}
		}()
	}

	registry, err := adapter.NewRegistry(
		adapter.Instrument(jsonv1.New(jsonv1.WithLogger(logger)), metrics),
	)
	if err != nil {
		return c.fail("INTERNAL_ERROR", err.Error(), "", 1)
	}
	if listVersions {
		for _, v := range registry.Versions() {
			fmt.Fprintln(stdout, v)
		}
		return 0
	}
	if kind == "" {
		return c.fail("USAGE_ERROR", "missing --kind", strings.TrimSpace(usage), 2)
	}

	handler, err := registry.Lookup(cfg.Version)
	if err != nil {
		return c.fail("USAGE_ERROR", err.Error(), fmt.Sprintf("supported versions: %s",
			strings.Join(registry.Versions(), ", ")), 2)
	}

	raw, err := io.ReadAll(stdin)
	if err != nil {
		return c.fail("USAGE_ERROR", fmt.Sprintf("read stdin: %v", err), "", 2)
	}

	out, err := convert(handler, kind, raw)
	if err != nil {
		if ue, ok := err.(usageError); ok {
			return c.fail("USAGE_ERROR", ue.Error(), strings.TrimSpace(usage), 2)
		}
		code := "PARSE_ERROR"
		if len(adapter.Violations(err)) > 0 {
			code = "VALIDATION_ERROR"
		}
		return c.fail(code, err.Error(), "", 1)
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return c.fail("PARSE_ERROR", fmt.Sprintf("encode result: %v", err), "", 1)
	}
	return 0
}

type usageError string

func (e usageError) Error() string { return string(e) }

// convert runs one handler operation and returns a value ready for JSON
// output.
func convert(h adapter.Handler, kind string, raw []byte) (any, error) {
	switch kind {
	case "config":
		cfg, err := h.DeserializeConfig(raw)
		if err != nil {
			return nil, err
		}
		return configOutput{
			Properties: toPropertyDocs(cfg),
			Wire:       json.RawMessage(h.SerializeConfig(cfg)),
		}, nil
	case "validation":
		r, err := h.ParseValidationResult(raw)
		if err != nil {
			return nil, err
		}
		return validationOutput{Valid: r.IsSuccessful(), Errors: r.Errors()}, nil
	case "view":
		v, err := h.ParseTaskView(raw)
		if err != nil {
			return nil, err
		}
		return viewOutput{DisplayValue: v.DisplayValue(), Template: v.Template()}, nil
	case "execution":
		r, err := h.ParseExecutionResult(raw)
		if err != nil {
			return nil, err
		}
		return r, nil
	case "request":
		var doc requestDoc
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, usageError(fmt.Sprintf("decode request document: %v", err))
		}
		return json.RawMessage(h.BuildExecutionRequest(doc.config(), doc.Context.executionContext())), nil
	default:
		return nil, usageError(fmt.Sprintf("unknown kind: %s", kind))
	}
}

type errorEnvelope struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code            string `json:"code"`
	Message         string `json:"message"`
	Hint            string `json:"hint,omitempty"`
	Adapter         string `json:"adapter"`
	ProtocolVersion string `json:"protocol_version,omitempty"`
	AdapterVersion  string `json:"adapter_version"`
}

func (c *cli) fail(code, message, hint string, exitCode int) int {
	if c.jsonErrors {
		env := errorEnvelope{Error: errorDetail{
			Code:            code,
			Message:         message,
			Hint:            hint,
			Adapter:         "task-adapter",
			ProtocolVersion: c.version,
			AdapterVersion:  Version,
		}}
		json.NewEncoder(c.stderr).Encode(env) //nolint:errcheck
	} else {
		fmt.Fprintf(c.stderr, "error: %s\n", message)
		if hint != "" {
			fmt.Fprintf(c.stderr, "hint: %s\n", hint)
		}
	}
	return exitCode
}
