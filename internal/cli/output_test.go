package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitError(t *testing.T) {
	t.Run("message only", func(t *testing.T) {
		err := NewExitError(ExitCommandError, "journal not found")
		assert.Equal(t, "journal not found", err.Error())
		assert.Equal(t, ExitCommandError, err.Code)
	})

	t.Run("wrapped error", func(t *testing.T) {
		inner := errors.New("disk full")
		err := WrapExitError(ExitFailure, "failed to write", inner)
		assert.Equal(t, "failed to write: disk full", err.Error())
		assert.Equal(t, inner, errors.Unwrap(err))
	})
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain error")))
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "bad path")))

	// ExitError found through a wrapping chain.
	wrapped := fmt.Errorf("outer: %w", NewExitError(ExitCommandError, "inner"))
	assert.Equal(t, ExitCommandError, GetExitCode(wrapped))
}

func TestOutputJSONEnvelope(t *testing.T) {
	var buf strings.Builder
	require.NoError(t, outputJSON(&buf, map[string]int{"total": 3}))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(buf.String()), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Nil(t, resp.Error)
}

func TestOutputJSONErrorEnvelope(t *testing.T) {
	var buf strings.Builder
	require.NoError(t, outputJSONError(&buf, "E_SCENARIO_FAILED", "scenario x failed", nil))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(buf.String()), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E_SCENARIO_FAILED", resp.Error.Code)
}
