// Package mcpserver exposes shoulders platform operations to AI assistants
// over the Model Context Protocol.
//
// Every tool answers with a JSON document of the form
//
//	{"ok": true, "message": "...", "data": ..., "meta": {"source": "kubernetes"}}
//
// and failures are tool errors carrying {"ok": false, "kind", "message", "hint"}
// where kind is one of the platform error kinds. The server also publishes
// the platform's CRD schemas and example manifests as text/yaml resources
// when it runs from a checkout of the platform repository.
package mcpserver
