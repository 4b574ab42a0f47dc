package platform

import (
	"context"
	"errors"
	"fmt"
	"strings"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"shoulders/internal/observability"
	"shoulders/internal/validate"
	"shoulders/pkg/logging"
	pkgstrings "shoulders/pkg/strings"
)

// Log query bounds.
const (
	DefaultLogLimit     = 200
	MaxLogLimit         = 2000
	DefaultLogSince     = 300
	MinLogSince         = 60
	MaxLogSince         = 3600
	logOutputLimitChars = pkgstrings.DefaultOutputMaxLen
)

// Log sources reported in LogsResult.
const (
	SourceLoki       = "loki"
	SourceKubernetes = "kubernetes"
	SourceTempo      = "tempo"
)

// LogsRequest selects application logs.
type LogsRequest struct {
	Name         string
	Namespace    string
	Limit        int
	SinceSeconds int
}

// LogsResult holds logs from Loki or, failing that, from the pods.
type LogsResult struct {
	Source string `json:"source"`
	// Loki is the decoded query_range response.
	Loki any `json:"loki,omitempty"`
	// Output is the concatenated pod logs.
	Output string `json:"output,omitempty"`
}

var errNoForwarder = errors.New("no tunnel configured")

func (s *Service) lokiTarget() observability.Target {
	return observability.Target{Namespace: s.obs.Namespace, Service: s.obs.LokiService, RemotePort: s.obs.LokiRemotePort}
}

func (s *Service) tempoTarget() observability.Target {
	return observability.Target{Namespace: s.obs.Namespace, Service: s.obs.TempoService, RemotePort: s.obs.TempoRemotePort}
}

// AppLogs fetches recent logs for an application. Loki is queried first;
// when that fails the logs of pods labelled app=<name> are read directly.
func (s *Service) AppLogs(ctx context.Context, req LogsRequest) (*LogsResult, error) {
	if err := validate.Name(req.Name, "app name"); err != nil {
		return nil, err
	}
	limit := validate.Clamp(req.Limit, DefaultLogLimit, 1, MaxLogLimit)
	since := validate.Clamp(req.SinceSeconds, DefaultLogSince, MinLogSince, MaxLogSince)

	data, err := s.queryLoki(ctx, req.Name, limit, since)
	if err == nil {
		return &LogsResult{Source: SourceLoki, Loki: data}, nil
	}
	logging.Warn("Platform", "Loki query failed, falling back to pod logs: %v", err)

	ns, err := s.namespace(req.Namespace)
	if err != nil {
		return nil, err
	}
	output, err := s.podLogs(ctx, ns, req.Name, int64(limit), int64(since))
	if err != nil {
		return nil, err
	}
	return &LogsResult{Source: SourceKubernetes, Output: output}, nil
}

func (s *Service) queryLoki(ctx context.Context, app string, limit, since int) (any, error) {
	if s.forwarder == nil {
		return nil, errNoForwarder
	}
	q := observability.LokiQuery(app, limit, since, s.now())
	return observability.WithTunnel(ctx, s.forwarder, s.lokiTarget(), s.obs.PortForwardTimeout(),
		func(ctx context.Context, baseURL string) (any, error) {
			return observability.GetJSON(ctx, s.httpClient, observability.LokiQueryURL(baseURL, q))
		})
}

func (s *Service) podLogs(ctx context.Context, namespace, app string, tail, since int64) (string, error) {
	_, c, err := s.store()
	if err != nil {
		return "", err
	}
	selector := "app=" + app
	pods, err := c.Core.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{LabelSelector: selector})
	if err != nil {
		return "", fmt.Errorf("failed to list pods for %s: %w", selector, err)
	}
	if len(pods.Items) == 0 {
		return "", NotFound("no pods found for selector %s", selector)
	}

	var lines []string
	for _, pod := range pods.Items {
		if pod.Name == "" {
			continue
		}
		raw, err := c.Core.CoreV1().Pods(namespace).GetLogs(pod.Name, &corev1.PodLogOptions{
			TailLines:    &tail,
			SinceSeconds: &since,
		}).DoRaw(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to read logs of pod %s: %w", pod.Name, err)
		}
		lines = append(lines, fmt.Sprintf("--- pod/%s ---", pod.Name), string(raw))
	}
	return pkgstrings.TruncateOutput(strings.Join(lines, "\n"), logOutputLimitChars), nil
}

// Trace fetches one trace from Tempo.
func (s *Service) Trace(ctx context.Context, traceID string) (any, error) {
	traceID = strings.TrimSpace(traceID)
	if err := validate.Required(traceID, "traceId"); err != nil {
		return nil, err
	}
	if s.forwarder == nil {
		return nil, &Error{Kind: KindEnvironment, Message: "no tunnel configured for Tempo", Hint: HintTunnel}
	}
	return observability.WithTunnel(ctx, s.forwarder, s.tempoTarget(), s.obs.PortForwardTimeout(),
		func(ctx context.Context, baseURL string) (any, error) {
			return observability.GetJSON(ctx, s.httpClient, baseURL+observability.TempoTracePath(traceID))
		})
}
