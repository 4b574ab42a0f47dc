// Package platform implements the operations shared by the shoulders MCP
// server, dashboard backend and CLI.
//
// Every operation validates its input before touching the cluster, resolves
// the target namespace (explicit value, then the saved workspace preference)
// and returns errors that Classify maps onto a small set of kinds. Writes go
// through resource.Apply; multi-target deletes and the platform health checks
// are folded with resource.Aggregate.
package platform
