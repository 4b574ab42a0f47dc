package mcpserver

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"shoulders/internal/platform"
	"shoulders/pkg/logging"
)

// Meta describes where a response came from.
type Meta struct {
	Source    string `json:"source"`
	Action    string `json:"action,omitempty"`
	Namespace string `json:"namespace,omitempty"`
}

// Response is the body of every successful tool call.
type Response struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Meta    Meta   `json:"meta"`
}

// ErrorResponse is the body of a failed tool call.
type ErrorResponse struct {
	OK      bool               `json:"ok"`
	Kind    platform.ErrorKind `json:"kind"`
	Message string             `json:"message"`
	Hint    string             `json:"hint,omitempty"`
}

func success(message string, data any, meta Meta) (*mcp.CallToolResult, error) {
	if meta.Source == "" {
		meta.Source = platform.SourceKubernetes
	}
	jsonData, err := json.MarshalIndent(Response{OK: true, Message: message, Data: data, Meta: meta}, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to format response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func failure(tool string, err error) (*mcp.CallToolResult, error) {
	pe := platform.Classify(err)
	if pe.Kind == platform.KindInvalidInput || pe.Kind == platform.KindNotFound {
		logging.Debug("MCPServer", "%s rejected: %s", tool, pe.Message)
	} else {
		logging.Error("MCPServer", err, "%s failed", tool)
	}
	jsonData, merr := json.MarshalIndent(ErrorResponse{Kind: pe.Kind, Message: pe.Message, Hint: pe.Hint}, "", "  ")
	if merr != nil {
		return mcp.NewToolResultError(pe.Message), nil
	}
	return mcp.NewToolResultError(string(jsonData)), nil
}

func objects(items []unstructured.Unstructured) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(items))
	for i := range items {
		out = append(out, items[i].Object)
	}
	return out
}
