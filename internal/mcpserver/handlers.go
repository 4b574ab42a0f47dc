package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"shoulders/internal/platform"
	"shoulders/internal/resource"
)

func (m *MCPServer) handleCreateWorkspace(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, err := m.svc.CreateWorkspace(ctx, request.GetString("name", ""))
	if err != nil {
		return failure("create_workspace", err)
	}
	return success("Workspace created", out.Object.Object, Meta{Action: string(out.Action)})
}

func (m *MCPServer) handleListWorkspaces(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	items, err := m.svc.ListWorkspaces(ctx)
	if err != nil {
		return failure("list_workspaces", err)
	}
	return success("Workspaces listed", objects(items), Meta{})
}

func (m *MCPServer) handleUseWorkspace(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("name", "")
	if err := m.svc.UseWorkspace(ctx, name); err != nil {
		return failure("use_workspace", err)
	}
	return success("Workspace selected", map[string]string{"name": name}, Meta{Source: "local"})
}

func (m *MCPServer) handleCurrentWorkspace(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := m.svc.CurrentWorkspace()
	if err != nil {
		return failure("current_workspace", err)
	}
	if name == "" {
		return success("No workspace selected", map[string]any{"name": nil}, Meta{Source: "local"})
	}
	return success("Current workspace", map[string]string{"name": name}, Meta{Source: "local"})
}

func (m *MCPServer) handleDeleteWorkspace(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("name", "")
	if err := m.svc.DeleteWorkspace(ctx, name); err != nil {
		return failure("delete_workspace", err)
	}
	return success("Workspace deleted", map[string]string{"name": name}, Meta{})
}

func (m *MCPServer) handleDeployApp(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	opts := resource.AppOptions{
		Name:      request.GetString("name", ""),
		Namespace: request.GetString("namespace", ""),
		Image:     request.GetString("image", ""),
		Tag:       request.GetString("tag", ""),
		Host:      request.GetString("host", ""),
	}
	var err error
	if opts.Replicas, err = optionalInt(request, "replicas"); err != nil {
		return failure("deploy_app", err)
	}
	if opts.Port, err = optionalInt(request, "port"); err != nil {
		return failure("deploy_app", err)
	}

	out, err := m.svc.DeployApp(ctx, opts)
	if err != nil {
		return failure("deploy_app", err)
	}
	return success("Application deployed", out.Object.Object, Meta{Action: string(out.Action), Namespace: out.Object.GetNamespace()})
}

func (m *MCPServer) handleListApps(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	items, ns, err := m.svc.ListApps(ctx, request.GetString("namespace", ""))
	if err != nil {
		return failure("list_apps", err)
	}
	return success("Applications listed", objects(items), Meta{Namespace: ns})
}

func (m *MCPServer) handleGetAppStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	app, err := m.svc.GetApp(ctx, request.GetString("name", ""), request.GetString("namespace", ""))
	if err != nil {
		return failure("get_app_status", err)
	}
	return success("Application status", app.Object, Meta{Namespace: app.GetNamespace()})
}

func (m *MCPServer) handleDeleteApp(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("name", "")
	if err := m.svc.DeleteApp(ctx, name, request.GetString("namespace", "")); err != nil {
		return failure("delete_app", err)
	}
	return success("Application deleted", map[string]string{"name": name}, Meta{})
}

func (m *MCPServer) handleAddDatabase(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, err := m.svc.AddDatabase(ctx, resource.DatabaseOptions{
		Name:      request.GetString("name", ""),
		Namespace: request.GetString("namespace", ""),
		Type:      request.GetString("type", ""),
		Tier:      request.GetString("tier", ""),
	})
	if err != nil {
		return failure("add_database", err)
	}
	return success("Infrastructure created", out.Object.Object, Meta{Action: string(out.Action), Namespace: out.Object.GetNamespace()})
}

func (m *MCPServer) handleAddStream(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	opts := resource.StreamOptions{
		Name:      request.GetString("name", ""),
		Namespace: request.GetString("namespace", ""),
	}
	var err error
	if opts.Topics, err = stringList(request, "topics"); err != nil {
		return failure("add_stream", err)
	}
	if opts.Partitions, err = optionalInt32(request, "partitions"); err != nil {
		return failure("add_stream", err)
	}
	if opts.Replicas, err = optionalInt32(request, "replicas"); err != nil {
		return failure("add_stream", err)
	}
	if opts.Config, err = stringMap(request, "config"); err != nil {
		return failure("add_stream", err)
	}

	out, err := m.svc.AddStream(ctx, opts)
	if err != nil {
		return failure("add_stream", err)
	}
	return success("Event stream created", out.Object.Object, Meta{Action: string(out.Action), Namespace: out.Object.GetNamespace()})
}

func (m *MCPServer) handleListInfra(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	infra, err := m.svc.ListInfra(ctx, request.GetString("namespace", ""))
	if err != nil {
		return failure("list_infra", err)
	}
	return success("Infrastructure listed", objects(infra.Items()), Meta{Namespace: infra.Namespace})
}

func (m *MCPServer) handleDeleteInfra(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("name", "")
	result, err := m.svc.DeleteInfra(ctx, name, request.GetString("namespace", ""))
	if err != nil {
		return failure("delete_infra", err)
	}
	return success("Infrastructure deleted", map[string]any{"name": name, "result": result}, Meta{})
}

func (m *MCPServer) handlePlatformStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, err := m.svc.PlatformStatus(ctx)
	if err != nil {
		return failure("get_platform_status", err)
	}
	return success("Platform status", st, Meta{})
}

func (m *MCPServer) handleListClusters(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	clusters, err := m.svc.ListClusters()
	if err != nil {
		return failure("list_clusters", err)
	}
	return success("Clusters listed", clusters, Meta{Source: "kubeconfig"})
}

func (m *MCPServer) handleUseCluster(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sel, err := m.svc.UseCluster(request.GetString("name", ""))
	if err != nil {
		return failure("use_cluster", err)
	}
	return success("Cluster selected", sel, Meta{Source: "kubeconfig"})
}

func (m *MCPServer) handleAppLogs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, err := m.svc.AppLogs(ctx, platform.LogsRequest{
		Name:         request.GetString("name", ""),
		Namespace:    request.GetString("namespace", ""),
		Limit:        request.GetInt("limit", platform.DefaultLogLimit),
		SinceSeconds: request.GetInt("sinceSeconds", platform.DefaultLogSince),
	})
	if err != nil {
		return failure("get_app_logs", err)
	}
	if res.Source == platform.SourceLoki {
		return success("Application logs", res.Loki, Meta{Source: res.Source})
	}
	return success("Application logs", map[string]string{"output": res.Output}, Meta{Source: res.Source})
}

func (m *MCPServer) handleTrace(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	trace, err := m.svc.Trace(ctx, request.GetString("traceId", ""))
	if err != nil {
		return failure("get_trace", err)
	}
	return success("Trace fetched", trace, Meta{Source: platform.SourceTempo})
}
