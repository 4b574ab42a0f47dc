package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"shoulders/internal/kube"
	"shoulders/internal/platform"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitCodeSuccess},
		{"invalid input", platform.InvalidInput("bad name"), ExitCodeInvalidInput},
		{"not found", platform.NotFound("application web does not exist"), ExitCodeError},
		{"kubeconfig", &kube.ConfigError{Path: "/nope", Err: errors.New("missing")}, ExitCodeEnvironment},
		{"wrapped environment", fmt.Errorf("listing: %w", &kube.ConfigError{Path: "/nope", Err: errors.New("missing")}), ExitCodeEnvironment},
		{"generic", errors.New("boom"), ExitCodeError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestFormatError(t *testing.T) {
	assert.Equal(t, "Error: boom", FormatError(errors.New("boom")))

	err := &platform.Error{Kind: platform.KindEnvironment, Message: "tunnel failed", Hint: platform.HintTunnel}
	assert.Equal(t, "Error: tunnel failed\nHint: "+platform.HintTunnel, FormatError(err))
}

func TestWithSpinner(t *testing.T) {
	called := false
	err := WithSpinner(nil, true, "Querying", func() error {
		called = true
		return errors.New("failed")
	})
	assert.True(t, called)
	assert.EqualError(t, err, "failed")
}

func TestFormatMessages(t *testing.T) {
	assert.Equal(t, "✓ done", FormatSuccess("done"))
	assert.Equal(t, "⚠ careful", FormatWarning("careful"))
}
