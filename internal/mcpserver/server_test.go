package mcpserver

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	dynamicfake "k8s.io/client-go/dynamic/fake"
	"k8s.io/client-go/kubernetes/fake"

	"shoulders/internal/kube/kubefake"
	"shoulders/internal/platform"
	"shoulders/internal/workspace"
)

type testEnv struct {
	server *MCPServer
	client *client.Client
	dyn    *dynamicfake.FakeDynamicClient
	prefs  *workspace.Storage
}

func newTestEnv(t *testing.T, repoRoot string) *testEnv {
	t.Helper()
	dyn := kubefake.NewDynamicClient()
	prefs := workspace.NewStorageWithPath(filepath.Join(t.TempDir(), ".shoulders"))
	svc := platform.NewService(platform.Options{
		Clients:    kubefake.Provider(kubefake.NewClients(dyn, fake.NewSimpleClientset())),
		Kubeconfig: kubefake.WriteKubeconfig(t, "kind-dev", "kind-dev", "kind-demo"),
		Workspaces: prefs,
	})
	m := NewMCPServer(svc, repoRoot)

	c, err := client.NewInProcessClient(m.Server())
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, c.Start(ctx))
	t.Cleanup(func() { _ = c.Close() })

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{Name: "shoulders-test", Version: "1.0.0"}
	_, err = c.Initialize(ctx, initReq)
	require.NoError(t, err)

	return &testEnv{server: m, client: c, dyn: dyn, prefs: prefs}
}

func (e *testEnv) call(t *testing.T, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	result, err := e.client.CallTool(context.Background(), req)
	require.NoError(t, err)
	return result
}

func textOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text
}

func decodeOK(t *testing.T, result *mcp.CallToolResult) map[string]any {
	t.Helper()
	require.False(t, result.IsError, textOf(t, result))
	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(textOf(t, result)), &body))
	assert.Equal(t, true, body["ok"])
	return body
}

func decodeError(t *testing.T, result *mcp.CallToolResult) ErrorResponse {
	t.Helper()
	require.True(t, result.IsError)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal([]byte(textOf(t, result)), &body))
	assert.False(t, body.OK)
	return body
}

func TestListTools(t *testing.T) {
	env := newTestEnv(t, "")

	result, err := env.client.ListTools(context.Background(), mcp.ListToolsRequest{})
	require.NoError(t, err)

	var names []string
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{
		"create_workspace", "list_workspaces", "use_workspace", "current_workspace", "delete_workspace",
		"deploy_app", "list_apps", "get_app_status", "delete_app",
		"add_database", "add_stream", "list_infra", "delete_infra",
		"get_platform_status", "list_clusters", "use_cluster",
		"get_app_logs", "get_trace",
	}, names)
}

func TestUnknownTool(t *testing.T) {
	env := newTestEnv(t, "")

	req := mcp.CallToolRequest{}
	req.Params.Name = "drop_database"
	_, err := env.client.CallTool(context.Background(), req)
	assert.Error(t, err)
}

func TestWorkspaceTools(t *testing.T) {
	env := newTestEnv(t, "")

	body := decodeOK(t, env.call(t, "create_workspace", map[string]any{"name": "team-a"}))
	assert.Equal(t, "Workspace created", body["message"])
	assert.Equal(t, map[string]any{"source": "kubernetes", "action": "created"}, body["meta"])

	body = decodeOK(t, env.call(t, "create_workspace", map[string]any{"name": "team-a"}))
	assert.Equal(t, "updated", body["meta"].(map[string]any)["action"])

	body = decodeOK(t, env.call(t, "current_workspace", nil))
	assert.Equal(t, "No workspace selected", body["message"])

	decodeOK(t, env.call(t, "use_workspace", map[string]any{"name": "team-a"}))
	body = decodeOK(t, env.call(t, "current_workspace", nil))
	assert.Equal(t, "team-a", body["data"].(map[string]any)["name"])

	body = decodeOK(t, env.call(t, "list_workspaces", nil))
	assert.Len(t, body["data"], 1)

	decodeOK(t, env.call(t, "delete_workspace", map[string]any{"name": "team-a"}))
	errBody := decodeError(t, env.call(t, "delete_workspace", map[string]any{"name": "team-a"}))
	assert.Equal(t, platform.KindNotFound, errBody.Kind)
}

func TestCreateWorkspace_InvalidName(t *testing.T) {
	env := newTestEnv(t, "")

	body := decodeError(t, env.call(t, "create_workspace", map[string]any{"name": "Team A"}))
	assert.Equal(t, platform.KindInvalidInput, body.Kind)
	assert.Contains(t, body.Message, "DNS-1123")
	assert.Empty(t, env.dyn.Actions())
}

func TestDeployApp(t *testing.T) {
	env := newTestEnv(t, "")

	body := decodeOK(t, env.call(t, "deploy_app", map[string]any{
		"name":      "web",
		"namespace": "team-a",
		"image":     "ghcr.io/acme/web:2.0",
		"replicas":  float64(3),
		"port":      float64(8080),
	}))
	assert.Equal(t, "Application deployed", body["message"])
	meta := body["meta"].(map[string]any)
	assert.Equal(t, "team-a", meta["namespace"])

	data := body["data"].(map[string]any)
	spec := data["spec"].(map[string]any)
	assert.Equal(t, "ghcr.io/acme/web", spec["image"])
	assert.Equal(t, "2.0", spec["tag"])
	assert.EqualValues(t, 3, spec["replicas"])
	annotations := data["metadata"].(map[string]any)["annotations"].(map[string]any)
	assert.Equal(t, "8080", annotations["shoulders.io/port"])

	body = decodeOK(t, env.call(t, "list_apps", map[string]any{"namespace": "team-a"}))
	assert.Len(t, body["data"], 1)

	body = decodeOK(t, env.call(t, "get_app_status", map[string]any{"name": "web", "namespace": "team-a"}))
	assert.Equal(t, "Application status", body["message"])

	decodeOK(t, env.call(t, "delete_app", map[string]any{"name": "web", "namespace": "team-a"}))
}

func TestDeployApp_ExplicitZero(t *testing.T) {
	env := newTestEnv(t, "")

	body := decodeOK(t, env.call(t, "deploy_app", map[string]any{
		"name":      "web",
		"namespace": "team-a",
		"image":     "nginx",
		"replicas":  float64(0),
		"port":      float64(0),
	}))
	data := body["data"].(map[string]any)
	assert.EqualValues(t, 0, data["spec"].(map[string]any)["replicas"])
	assert.Nil(t, data["metadata"].(map[string]any)["annotations"])
}

func TestDeployApp_DefaultsWhenOmitted(t *testing.T) {
	env := newTestEnv(t, "")

	body := decodeOK(t, env.call(t, "deploy_app", map[string]any{
		"name":      "web",
		"namespace": "team-a",
		"image":     "nginx",
	}))
	data := body["data"].(map[string]any)
	assert.EqualValues(t, 1, data["spec"].(map[string]any)["replicas"])
	annotations := data["metadata"].(map[string]any)["annotations"].(map[string]any)
	assert.Equal(t, "80", annotations["shoulders.io/port"])
}

func TestDeployApp_ReplicasOutOfRange(t *testing.T) {
	env := newTestEnv(t, "")

	body := decodeError(t, env.call(t, "deploy_app", map[string]any{
		"name":      "web",
		"namespace": "team-a",
		"image":     "nginx",
		"replicas":  float64(1 << 40),
	}))
	assert.Equal(t, platform.KindInvalidInput, body.Kind)
	assert.Contains(t, body.Message, "replicas is out of range")
	assert.Empty(t, env.dyn.Actions())
}

func TestListApps_NoWorkspace(t *testing.T) {
	env := newTestEnv(t, "")

	body := decodeError(t, env.call(t, "list_apps", nil))
	assert.Equal(t, platform.KindInvalidInput, body.Kind)
	assert.Equal(t, "no active workspace: run 'shoulders workspace use <name>' or pass --namespace", body.Message)
}

func TestInfraTools(t *testing.T) {
	env := newTestEnv(t, "")
	require.NoError(t, env.prefs.SetCurrent("team-a"))

	body := decodeOK(t, env.call(t, "add_database", map[string]any{"name": "cache", "type": "redis"}))
	assert.Equal(t, "Infrastructure created", body["message"])

	body = decodeOK(t, env.call(t, "add_stream", map[string]any{
		"name":       "orders",
		"topics":     []any{"created", "shipped"},
		"partitions": float64(3),
		"config":     map[string]any{"retention.ms": float64(60000), "cleanup.policy": "compact"},
	}))
	topics := body["data"].(map[string]any)["spec"].(map[string]any)["topics"].([]any)
	require.Len(t, topics, 2)
	first := topics[0].(map[string]any)
	assert.Equal(t, "created", first["name"])
	assert.EqualValues(t, 3, first["partitions"])
	assert.Equal(t, map[string]any{"retention.ms": "60000", "cleanup.policy": "compact"}, first["config"])

	body = decodeOK(t, env.call(t, "list_infra", nil))
	assert.Len(t, body["data"], 2)
	assert.Equal(t, "team-a", body["meta"].(map[string]any)["namespace"])

	body = decodeOK(t, env.call(t, "delete_infra", map[string]any{"name": "cache"}))
	result := body["data"].(map[string]any)["result"].(map[string]any)
	assert.EqualValues(t, 1, result["succeeded"])
	assert.EqualValues(t, 1, result["notFound"])

	errBody := decodeError(t, env.call(t, "delete_infra", map[string]any{"name": "cache"}))
	assert.Equal(t, platform.KindNotFound, errBody.Kind)
	assert.Contains(t, errBody.Message, "infrastructure resource cache not found")
}

func TestAddStream_BadArguments(t *testing.T) {
	env := newTestEnv(t, "")

	body := decodeError(t, env.call(t, "add_stream", map[string]any{"name": "orders", "namespace": "team-a", "topics": []any{}}))
	assert.Contains(t, body.Message, "at least one topic is required")

	body = decodeError(t, env.call(t, "add_stream", map[string]any{"name": "orders", "namespace": "team-a", "topics": []any{1}}))
	assert.Equal(t, "topics must be a list of strings", body.Message)

	body = decodeError(t, env.call(t, "add_stream", map[string]any{
		"name": "orders", "namespace": "team-a", "topics": "a,b", "config": map[string]any{"x": []any{}},
	}))
	assert.Equal(t, platform.KindInvalidInput, body.Kind)
}

func TestClusterTools(t *testing.T) {
	env := newTestEnv(t, "")

	body := decodeOK(t, env.call(t, "list_clusters", nil))
	assert.Equal(t, []any{"demo", "dev"}, body["data"])

	body = decodeOK(t, env.call(t, "use_cluster", map[string]any{"name": "demo"}))
	assert.Equal(t, map[string]any{"name": "demo", "context": "kind-demo"}, body["data"])

	errBody := decodeError(t, env.call(t, "use_cluster", map[string]any{"name": "ghost"}))
	assert.Equal(t, platform.KindInvalidInput, errBody.Kind)
}

func TestPlatformStatusTool(t *testing.T) {
	env := newTestEnv(t, "")

	body := decodeOK(t, env.call(t, "get_platform_status", nil))
	data := body["data"].(map[string]any)
	assert.Equal(t, "Pending", data["gatewayAddress"])
	assert.EqualValues(t, 0, data["nodeCount"])
}

func TestTraceTool_RequiresID(t *testing.T) {
	env := newTestEnv(t, "")

	body := decodeError(t, env.call(t, "get_trace", map[string]any{"traceId": " "}))
	assert.Equal(t, platform.KindInvalidInput, body.Kind)
	assert.Equal(t, "traceId is required", body.Message)
}

func TestResources(t *testing.T) {
	root := t.TempDir()
	schema := filepath.Join(root, "2-addons/manifests/crossplane/definitions/workspace-xrd.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(schema), 0o755))
	require.NoError(t, os.WriteFile(schema, []byte("kind: CompositeResourceDefinition\n"), 0o644))

	env := newTestEnv(t, root)
	ctx := context.Background()

	list, err := env.client.ListResources(ctx, mcp.ListResourcesRequest{})
	require.NoError(t, err)
	require.Len(t, list.Resources, 1)
	assert.Equal(t, "shoulders://schemas/workspace", list.Resources[0].URI)
	assert.Equal(t, "Workspace Schema", list.Resources[0].Name)
	assert.Equal(t, ResourceMIMEType, list.Resources[0].MIMEType)

	req := mcp.ReadResourceRequest{}
	req.Params.URI = "shoulders://schemas/workspace"
	read, err := env.client.ReadResource(ctx, req)
	require.NoError(t, err)
	require.Len(t, read.Contents, 1)
	var text string
	switch c := read.Contents[0].(type) {
	case mcp.TextResourceContents:
		text = c.Text
	case *mcp.TextResourceContents:
		text = c.Text
	}
	assert.Equal(t, "kind: CompositeResourceDefinition\n", text)

	require.NoError(t, os.Remove(schema))
	_, err = env.client.ReadResource(ctx, req)
	assert.Error(t, err)

	req.Params.URI = "shoulders://schemas/unknown"
	_, err = env.client.ReadResource(ctx, req)
	assert.Error(t, err)
}
