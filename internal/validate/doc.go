// Package validate holds the input checks shared by the MCP server, the
// dashboard backend and the CLI. Every check returns *Error so callers can
// tell bad input apart from cluster or environment failures.
package validate
