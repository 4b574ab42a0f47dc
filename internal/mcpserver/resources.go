package mcpserver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"

	"shoulders/pkg/logging"
)

// ResourceMIMEType is the MIME type of every published resource.
const ResourceMIMEType = "text/yaml"

// resourceEntry maps a resource URI to a file below the repository root.
type resourceEntry struct {
	URI         string
	Path        string
	Name        string
	Description string
}

var resourceIndex = []resourceEntry{
	{"shoulders://schemas/workspace", "2-addons/manifests/crossplane/definitions/workspace-xrd.yaml", "Workspace Schema", "Crossplane XRD for Workspaces"},
	{"shoulders://schemas/webapplication", "2-addons/manifests/crossplane/definitions/application-xrd.yaml", "WebApplication Schema", "Crossplane XRD for WebApplications"},
	{"shoulders://schemas/state-store", "2-addons/manifests/crossplane/definitions/state-store-xrd.yaml", "StateStore Schema", "Crossplane XRD for StateStores"},
	{"shoulders://schemas/event-stream", "2-addons/manifests/crossplane/definitions/event-stream-xrd.yaml", "EventStream Schema", "Crossplane XRD for EventStreams"},
	{"shoulders://examples/workspace", "3-user-space/team-a/workspace.yaml", "Workspace Example", "Sample Workspace manifest"},
	{"shoulders://examples/webapplication", "3-user-space/team-a/webapp.yaml", "WebApplication Example", "Sample WebApplication manifest"},
	{"shoulders://examples/state-store", "3-user-space/team-a/state-store.yaml", "StateStore Example", "Sample StateStore manifest"},
	{"shoulders://examples/event-stream", "3-user-space/team-a/event-stream.yaml", "EventStream Example", "Sample EventStream manifest"},
}

// registerResources publishes the index entries whose files exist.
func (m *MCPServer) registerResources() {
	if m.repoRoot == "" {
		return
	}
	registered := 0
	for _, entry := range resourceIndex {
		path := filepath.Join(m.repoRoot, entry.Path)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		res := mcp.NewResource(entry.URI, entry.Name,
			mcp.WithResourceDescription(entry.Description),
			mcp.WithMIMEType(ResourceMIMEType),
		)
		m.mcpServer.AddResource(res, m.readResource(entry.URI, path))
		registered++
	}
	logging.Debug("MCPServer", "Registered %d resources from %s", registered, m.repoRoot)
}

// readResource reads the file at call time so edits are picked up without
// a restart.
func (m *MCPServer) readResource(uri, path string) func(context.Context, mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("resource file missing at %s", path)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      uri,
				MIMEType: ResourceMIMEType,
				Text:     string(data),
			},
		}, nil
	}
}
