package jsonv1_test

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitas/task-adapters/adapter"
	"github.com/vitas/task-adapters/jsonv1"
	"github.com/vitas/task-adapters/task"
)

func quietHandler() *jsonv1.Handler {
	return jsonv1.New(jsonv1.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func requireViolations(t *testing.T, err error, want ...string) {
	t.Helper()
	require.Error(t, err)
	var ce *adapter.ConversionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, want, ce.Violations)
}

func TestDeserializeConfig_FullProperty(t *testing.T) {
	t.Parallel()

	cfg, err := quietHandler().DeserializeConfig(
		[]byte(`{"branch": {"default-value": "master", "secure": false, "required": true}}`))
	require.NoError(t, err)
	require.Equal(t, 1, cfg.Len())

	p, ok := cfg.Get("branch")
	require.True(t, ok)
	require.NotNil(t, p.DefaultValue)
	assert.Equal(t, "master", *p.DefaultValue)
	require.NotNil(t, p.Secure)
	assert.False(t, *p.Secure)
	require.NotNil(t, p.Required)
	assert.True(t, *p.Required)
	assert.Nil(t, p.Value)
}

func TestDeserializeConfig_WrongTypedDefault(t *testing.T) {
	t.Parallel()

	_, err := quietHandler().DeserializeConfig([]byte(`{"branch": {"default-value": 123}}`))
	requireViolations(t, err,
		"Key: 'branch' - The Json for Task Config should contain a not-null 'default-value' of type String")
	assert.Equal(t,
		"Error occurred while converting the Json to Task Config. Error: "+
			"Key: 'branch' - The Json for Task Config should contain a not-null 'default-value' of type String.",
		err.Error())
}

func TestDeserializeConfig_Empty(t *testing.T) {
	t.Parallel()

	_, err := quietHandler().DeserializeConfig([]byte(`{}`))
	requireViolations(t, err, "The Json for Task Config cannot be empty")
}

func TestDeserializeConfig_AggregatesAllViolations(t *testing.T) {
	t.Parallel()

	payload := `{
		"url":    {"default-value": null, "secure": "yes"},
		"branch": {"required": 1},
		"ok":     {"default-value": "x"}
	}`
	_, err := quietHandler().DeserializeConfig([]byte(payload))
	requireViolations(t, err,
		"Key: 'url' - The Json for Task Config should contain a not-null 'default-value' of type String",
		"Key: 'url' - The Json for Task Config should contain a 'secure' field of type Boolean",
		"Key: 'branch' - The Json for Task Config should contain a 'required' field of type Boolean",
	)
}

func TestDeserializeConfig_AbsentFieldsAreNotApplied(t *testing.T) {
	t.Parallel()

	cfg, err := quietHandler().DeserializeConfig([]byte(`{"a": {}, "b": null, "c": {"secure": true}}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, cfg.Keys())

	for _, key := range []string{"a", "b"} {
		p, _ := cfg.Get(key)
		assert.Equal(t, task.NewProperty(key), p, key)
	}
	c, _ := cfg.Get("c")
	require.NotNil(t, c.Secure)
	assert.True(t, *c.Secure)
	assert.Nil(t, c.Required)
	assert.Nil(t, c.DefaultValue)
}

func TestDeserializeConfig_KeepsDocumentOrder(t *testing.T) {
	t.Parallel()

	cfg, err := quietHandler().DeserializeConfig([]byte(`{"zeta": null, "alpha": null, "mid": null}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, cfg.Keys())
}

func TestDeserializeConfig_NonObjectMemberAndDuplicates(t *testing.T) {
	t.Parallel()

	_, err := quietHandler().DeserializeConfig([]byte(`{"a": "text", "b": null, "b": {}}`))
	requireViolations(t, err,
		"Key: 'a' - The Json for Task Config should contain an object",
		"Key: 'b' - The Json for Task Config contains a duplicate key",
	)
}

func TestDeserializeConfig_NotJSON(t *testing.T) {
	t.Parallel()

	_, err := quietHandler().DeserializeConfig([]byte(`{invalid}`))
	require.Error(t, err)

	var ce *adapter.ConversionError
	require.True(t, errors.As(err, &ce))
	assert.Empty(t, ce.Violations)
	require.Error(t, ce.Cause)
	assert.Contains(t, err.Error(), "Error occurred while converting the Json to Task Config. Error: ")
	assert.Nil(t, adapter.Violations(err))
}

func TestHandler_ZeroValue(t *testing.T) {
	// Not parallel: swaps the default logger.
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	var h jsonv1.Handler
	assert.Equal(t, "1.0", h.Version())

	_, err := h.DeserializeConfig([]byte(`{}`))
	requireViolations(t, err, "The Json for Task Config cannot be empty")
	assert.Contains(t, buf.String(), "Task Config")

	cfg, err := h.DeserializeConfig([]byte(`{"url": {}}`))
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Len())
}

func TestDeserializeConfig_LogsRejectedPayload(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := jsonv1.New(jsonv1.WithLogger(slog.New(slog.NewJSONHandler(&buf, nil))))

	_, err := h.DeserializeConfig([]byte(`{"k": {"secure": "no"}}`))
	require.Error(t, err)

	logged := buf.String()
	assert.Contains(t, logged, `"level":"ERROR"`)
	assert.Contains(t, logged, "Error occurred while converting the Json to Task Config")
	assert.Contains(t, logged, `"version":"1.0"`)
	assert.Contains(t, logged, `'secure' field of type Boolean`)
	assert.Contains(t, logged, `{\"k\": {\"secure\": \"no\"}}`)
}

func TestSerializeConfig(t *testing.T) {
	t.Parallel()

	cfg := task.NewConfig(
		task.NewProperty("url").WithValue("http://example.com").WithRequired(true),
		task.NewProperty("password").WithValue("s3cret").WithSecure(true).WithDefault("ignored"),
		task.NewProperty("unset"),
	)
	out := quietHandler().SerializeConfig(cfg)

	assert.Equal(t,
		`{"url":{"value":"http://example.com","secure":false,"required":true},`+
			`"password":{"value":"s3cret","secure":true,"required":false},`+
			`"unset":{"secure":false,"required":false}}`,
		string(out))
	assert.NotContains(t, string(out), "default-value")
}

func TestSerializeConfig_Empty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `{}`, string(quietHandler().SerializeConfig(task.NewConfig())))
	assert.Equal(t, `{}`, string(quietHandler().SerializeConfig(nil)))
}

func TestSerializeConfig_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	cfg := task.NewConfig(task.NewProperty("a").WithValue("1"))
	before := cfg.Properties()
	quietHandler().SerializeConfig(cfg)
	assert.Equal(t, before, cfg.Properties())
}

func TestConfig_RoundTrip(t *testing.T) {
	t.Parallel()

	configs := map[string]*task.Config{
		"flags": task.NewConfig(
			task.NewProperty("a").WithValue("1").WithSecure(true).WithRequired(false),
			task.NewProperty("b").WithValue("2").WithSecure(false).WithRequired(true),
		),
		"absent flags": task.NewConfig(task.NewProperty("only-key")),
		"unicode": task.NewConfig(
			task.NewProperty("ключ").WithValue("значение").WithRequired(true),
			task.NewProperty(`quote"key`).WithValue(`a\b`),
		),
	}

	h := quietHandler()
	for name, cfg := range configs {
		cfg := cfg
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := h.DeserializeConfig(h.SerializeConfig(cfg))
			require.NoError(t, err)
			assert.Equal(t, cfg.Keys(), got.Keys())
			for _, want := range cfg.Properties() {
				p, ok := got.Get(want.Key)
				require.True(t, ok, want.Key)
				assert.Equal(t, want.IsSecure(), p.IsSecure(), want.Key)
				assert.Equal(t, want.IsRequired(), p.IsRequired(), want.Key)
			}
		})
	}
}
