package mcpserver

import (
	"fmt"
	"math"

	"github.com/mark3labs/mcp-go/mcp"

	"shoulders/internal/platform"
	"shoulders/internal/validate"
)

// optionalInt returns nil when the argument is absent or not a number, so
// the caller's default applies. An explicit zero is returned as zero.
func optionalInt(request mcp.CallToolRequest, name string) (*int, error) {
	raw, ok := request.GetArguments()[name]
	if !ok || raw == nil {
		return nil, nil
	}
	if f, isFloat := raw.(float64); isFloat && (f > math.MaxInt32 || f < math.MinInt32) {
		return nil, platform.InvalidInput("%s is out of range", name)
	}
	const unset = math.MinInt
	v := request.GetInt(name, unset)
	if v == unset {
		return nil, nil
	}
	return &v, nil
}

// optionalInt32 returns nil when the argument is absent.
func optionalInt32(request mcp.CallToolRequest, name string) (*int32, error) {
	if _, ok := request.GetArguments()[name]; !ok {
		return nil, nil
	}
	v := request.GetInt(name, math.MinInt32)
	if v == math.MinInt32 || v > math.MaxInt32 || v < math.MinInt32 {
		return nil, platform.InvalidInput("%s must be a number", name)
	}
	n := int32(v)
	return &n, nil
}

// stringList accepts a JSON array of strings or a comma/newline separated
// string, normalised the same way as CLI input.
func stringList(request mcp.CallToolRequest, name string) ([]string, error) {
	switch v := request.GetArguments()[name].(type) {
	case nil:
		return nil, nil
	case string:
		return validate.List(v), nil
	case []string:
		return validate.Items(v), nil
	case []interface{}:
		items := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, platform.InvalidInput("%s must be a list of strings", name)
			}
			items = append(items, s)
		}
		return validate.Items(items), nil
	default:
		return nil, platform.InvalidInput("%s must be a list of strings", name)
	}
}

// stringMap converts a JSON object of scalars to string values.
func stringMap(request mcp.CallToolRequest, name string) (map[string]string, error) {
	raw, ok := request.GetArguments()[name]
	if !ok || raw == nil {
		return nil, nil
	}
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return nil, platform.InvalidInput("%s must be an object", name)
	}
	out := make(map[string]string, len(obj))
	for k, v := range obj {
		switch val := v.(type) {
		case string:
			out[k] = val
		case float64, bool, int, int64:
			out[k] = fmt.Sprint(val)
		default:
			return nil, platform.InvalidInput("%s.%s must be a string, number or boolean", name, k)
		}
	}
	return out, nil
}
