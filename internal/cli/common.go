package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// FormatSuccess formats a success message for CLI output
func FormatSuccess(msg string) string {
	return fmt.Sprintf("✓ %s", msg)
}

// FormatWarning formats a warning message for CLI output
func FormatWarning(msg string) string {
	return fmt.Sprintf("⚠ %s", msg)
}

// WithSpinner runs fn while a spinner with suffix is drawn on w. With quiet
// set fn runs without one.
func WithSpinner(w io.Writer, quiet bool, suffix string, fn func() error) error {
	if quiet {
		return fn()
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " " + suffix
	s.Start()
	err := fn()
	s.Stop()
	return err
}
