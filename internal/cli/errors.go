package cli

import (
	"strings"

	"shoulders/internal/platform"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (cluster call failed, object missing).
	ExitCodeError = 1
	// ExitCodeInvalidInput indicates bad arguments or flags.
	ExitCodeInvalidInput = 2
	// ExitCodeEnvironment indicates a local environment problem such as a
	// missing kubeconfig or a tunnel that could not be opened.
	ExitCodeEnvironment = 3
)

// ExitCode maps err onto a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitCodeSuccess
	}
	switch platform.Classify(err).Kind {
	case platform.KindInvalidInput:
		return ExitCodeInvalidInput
	case platform.KindEnvironment:
		return ExitCodeEnvironment
	default:
		return ExitCodeError
	}
}

// FormatError renders err for stderr, followed by its hint when it has one.
func FormatError(err error) string {
	pe := platform.Classify(err)
	var sb strings.Builder
	sb.WriteString("Error: ")
	sb.WriteString(pe.Message)
	if pe.Hint != "" {
		sb.WriteString("\nHint: ")
		sb.WriteString(pe.Hint)
	}
	return sb.String()
}
