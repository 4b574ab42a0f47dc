// Package cli provides the output layer shared by the shoulders commands.
//
// Commands call the platform service directly and hand the result to a
// Printer, which renders it in the format chosen with --output:
//   - table: kubectl-style plain tables built with go-pretty
//   - json: indented JSON of the same value
//   - yaml: YAML of the same value, using the JSON field names
//
// Long-running calls such as log queries that open a tunnel are wrapped in
// WithSpinner, which draws a progress spinner on stderr unless --quiet is set.
//
// Errors reaching the root command are rendered with FormatError and mapped
// to process exit codes with ExitCode.
package cli
