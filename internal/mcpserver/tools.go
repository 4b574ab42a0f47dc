package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// registerTools registers all MCP tools
func (m *MCPServer) registerTools() {
	// Workspaces
	m.mcpServer.AddTool(mcp.NewTool("create_workspace",
		mcp.WithDescription("Create a Workspace (namespace + policies)"),
		mcp.WithString("name", mcp.Required(), mcp.Description("Workspace name")),
	), m.handleCreateWorkspace)

	m.mcpServer.AddTool(mcp.NewTool("list_workspaces",
		mcp.WithDescription("List Workspaces"),
	), m.handleListWorkspaces)

	m.mcpServer.AddTool(mcp.NewTool("use_workspace",
		mcp.WithDescription("Set the default workspace used when namespace is omitted"),
		mcp.WithString("name", mcp.Required(), mcp.Description("Workspace name")),
	), m.handleUseWorkspace)

	m.mcpServer.AddTool(mcp.NewTool("current_workspace",
		mcp.WithDescription("Show the default workspace"),
	), m.handleCurrentWorkspace)

	m.mcpServer.AddTool(mcp.NewTool("delete_workspace",
		mcp.WithDescription("Delete a Workspace"),
		mcp.WithString("name", mcp.Required(), mcp.Description("Workspace name")),
	), m.handleDeleteWorkspace)

	// Applications
	m.mcpServer.AddTool(mcp.NewTool("deploy_app",
		mcp.WithDescription("Deploy a WebApplication"),
		mcp.WithString("name", mcp.Required(), mcp.Description("Application name")),
		mcp.WithString("namespace", mcp.Required(), mcp.Description("Workspace namespace")),
		mcp.WithString("image", mcp.Required(), mcp.Description("Container image (optionally with :tag)")),
		mcp.WithString("tag", mcp.Description("Image tag, overrides a tag in image")),
		mcp.WithNumber("replicas", mcp.Description("Replica count, 0 scales the app down"), mcp.DefaultNumber(1)),
		mcp.WithString("host", mcp.Description("Ingress host, defaults to <name>.local")),
		mcp.WithNumber("port", mcp.Description("Container port, 0 omits the port annotation"), mcp.DefaultNumber(80)),
	), m.handleDeployApp)

	m.mcpServer.AddTool(mcp.NewTool("list_apps",
		mcp.WithDescription("List WebApplications in a workspace"),
		mcp.WithString("namespace", mcp.Description("Workspace namespace, defaults to the selected workspace")),
	), m.handleListApps)

	m.mcpServer.AddTool(mcp.NewTool("get_app_status",
		mcp.WithDescription("Get a WebApplication with its status"),
		mcp.WithString("name", mcp.Required(), mcp.Description("Application name")),
		mcp.WithString("namespace", mcp.Description("Workspace namespace")),
	), m.handleGetAppStatus)

	m.mcpServer.AddTool(mcp.NewTool("delete_app",
		mcp.WithDescription("Delete a WebApplication"),
		mcp.WithString("name", mcp.Required(), mcp.Description("Application name")),
		mcp.WithString("namespace", mcp.Description("Workspace namespace")),
	), m.handleDeleteApp)

	// Infrastructure
	m.mcpServer.AddTool(mcp.NewTool("add_database",
		mcp.WithDescription("Create a StateStore (PostgreSQL or Redis)"),
		mcp.WithString("name", mcp.Required(), mcp.Description("StateStore name")),
		mcp.WithString("namespace", mcp.Description("Workspace namespace")),
		mcp.WithString("type", mcp.Description("Database engine"), mcp.Enum("postgres", "postgresql", "redis")),
		mcp.WithString("tier", mcp.Description("Sizing tier"), mcp.Enum("dev", "prod")),
	), m.handleAddDatabase)

	m.mcpServer.AddTool(mcp.NewTool("add_stream",
		mcp.WithDescription("Create an EventStream (Kafka topics)"),
		mcp.WithString("name", mcp.Required(), mcp.Description("EventStream name")),
		mcp.WithString("namespace", mcp.Description("Workspace namespace")),
		mcp.WithArray("topics", mcp.Required(), mcp.Description("Topic names"), mcp.Items(map[string]any{"type": "string"})),
		mcp.WithNumber("partitions", mcp.Description("Partitions per topic")),
		mcp.WithNumber("replicas", mcp.Description("Replicas per topic")),
		mcp.WithObject("config", mcp.Description("Topic configuration (key/value)")),
	), m.handleAddStream)

	m.mcpServer.AddTool(mcp.NewTool("list_infra",
		mcp.WithDescription("List StateStores and EventStreams in a workspace"),
		mcp.WithString("namespace", mcp.Description("Workspace namespace")),
	), m.handleListInfra)

	m.mcpServer.AddTool(mcp.NewTool("delete_infra",
		mcp.WithDescription("Delete the StateStore and/or EventStream with the given name"),
		mcp.WithString("name", mcp.Required(), mcp.Description("Resource name")),
		mcp.WithString("namespace", mcp.Description("Workspace namespace")),
	), m.handleDeleteInfra)

	// Platform and clusters
	m.mcpServer.AddTool(mcp.NewTool("get_platform_status",
		mcp.WithDescription("Get cluster/platform status (Flux, Crossplane, Gateway)"),
	), m.handlePlatformStatus)

	m.mcpServer.AddTool(mcp.NewTool("list_clusters",
		mcp.WithDescription("List local kind clusters"),
	), m.handleListClusters)

	m.mcpServer.AddTool(mcp.NewTool("use_cluster",
		mcp.WithDescription("Switch kube context to a local kind cluster"),
		mcp.WithString("name", mcp.Required(), mcp.Description("Cluster name")),
	), m.handleUseCluster)

	// Observability
	m.mcpServer.AddTool(mcp.NewTool("get_app_logs",
		mcp.WithDescription("Fetch recent application logs via Loki (fallback to pod logs)"),
		mcp.WithString("name", mcp.Required(), mcp.Description("Application name")),
		mcp.WithString("namespace", mcp.Description("Workspace namespace (required for the pod log fallback)")),
		mcp.WithNumber("limit", mcp.Description("Max log entries to return"), mcp.DefaultNumber(200)),
		mcp.WithNumber("sinceSeconds", mcp.Description("Lookback window in seconds"), mcp.DefaultNumber(300)),
	), m.handleAppLogs)

	m.mcpServer.AddTool(mcp.NewTool("get_trace",
		mcp.WithDescription("Fetch a trace by ID from Tempo"),
		mcp.WithString("traceId", mcp.Required(), mcp.Description("Trace ID")),
	), m.handleTrace)
}
