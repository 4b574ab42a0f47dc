// Package workspace persists the operator's current workspace selection.
//
// The selection lives in ~/.shoulders/config.yaml:
//
//	current_workspace: team-a
//
// Tools that take an optional namespace fall back to this value. Other keys
// in the file are preserved when it is rewritten.
package workspace
