package observability

import (
	"net/url"
	"strconv"
	"time"
)

const (
	LokiQueryRangePath = "/loki/api/v1/query_range"
	tempoTracesPath    = "/api/traces/"
)

// LokiQuery builds query_range parameters for the newest entries of app
// within the last since seconds, ending at now.
func LokiQuery(app string, limit, sinceSeconds int, now time.Time) url.Values {
	end := now.UnixMilli() * int64(time.Millisecond)
	start := end - int64(sinceSeconds)*int64(time.Second)

	q := url.Values{}
	q.Set("query", `{app="`+app+`"}`)
	q.Set("limit", strconv.Itoa(limit))
	q.Set("start", strconv.FormatInt(start, 10))
	q.Set("end", strconv.FormatInt(end, 10))
	q.Set("direction", "BACKWARD")
	return q
}

// LokiQueryURL joins base with the query_range path and parameters.
func LokiQueryURL(base string, q url.Values) string {
	return base + LokiQueryRangePath + "?" + q.Encode()
}

// TempoTracePath is the Tempo path for a single trace.
func TempoTracePath(traceID string) string {
	return tempoTracesPath + url.PathEscape(traceID)
}
