package adapter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitas/task-adapters/adapter"
)

func TestRegistry_LookupAndVersions(t *testing.T) {
	t.Parallel()

	r, err := adapter.NewRegistry(
		&stubHandler{version: "2.0"},
		&stubHandler{version: "1.0"},
		&stubHandler{version: "1.10"},
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"1.0", "1.10", "2.0"}, r.Versions())

	h, err := r.Lookup("1.0")
	require.NoError(t, err)
	assert.Equal(t, "1.0", h.Version())

	// Semantic comparison: trailing zero segments are equivalent.
	h, err = r.Lookup("1.0.0")
	require.NoError(t, err)
	assert.Equal(t, "1.0", h.Version())

	_, err = r.Lookup("3.0")
	assert.ErrorContains(t, err, `unsupported version "3.0"`)

	_, err = r.Lookup("not-a-version")
	assert.ErrorContains(t, err, "invalid version")
}

func TestRegistry_RejectsDuplicatesAndBadVersions(t *testing.T) {
	t.Parallel()

	_, err := adapter.NewRegistry(&stubHandler{version: "1.0"}, &stubHandler{version: "1"})
	assert.ErrorContains(t, err, "already registered")

	_, err = adapter.NewRegistry(&stubHandler{version: "one"})
	assert.ErrorContains(t, err, `handler version "one"`)

	_, err = adapter.NewRegistry(nil)
	assert.ErrorContains(t, err, "nil handler")
}

func TestRegistry_Negotiate(t *testing.T) {
	t.Parallel()

	r, err := adapter.NewRegistry(&stubHandler{version: "1.0"}, &stubHandler{version: "2.0"})
	require.NoError(t, err)

	h, err := r.Negotiate([]string{"1.0", "2.0", "3.0", "garbage"})
	require.NoError(t, err)
	assert.Equal(t, "2.0", h.Version())

	h, err = r.Negotiate([]string{"1.0"})
	require.NoError(t, err)
	assert.Equal(t, "1.0", h.Version())

	_, err = r.Negotiate([]string{"0.9", "4.0"})
	assert.ErrorContains(t, err, "no common version")

	_, err = r.Negotiate(nil)
	assert.Error(t, err)
}
