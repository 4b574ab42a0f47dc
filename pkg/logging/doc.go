// Package logging provides subsystem-tagged structured logging for shoulders.
//
// It is a thin layer over log/slog. Every entry carries a "subsystem" attribute
// so that output from the MCP server, the dashboard backend and the CLI can be
// filtered by origin.
//
// # Usage
//
//	logging.InitForCLI(logging.LevelInfo, os.Stderr)
//	logging.Info("Platform", "Applied %s %s/%s", kind, namespace, name)
//	logging.Error("Dashboard", err, "Failed to list %s", plural)
//
// The stdio MCP server must call InitForMCP, which pins output to stderr so
// the protocol stream on stdout stays clean.
package logging
