package dashboard

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"golang.org/x/sync/errgroup"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"sigs.k8s.io/yaml"

	"shoulders/internal/platform"
	"shoulders/internal/resource"
	"shoulders/pkg/apis/shoulders/v1alpha1"
	"shoulders/pkg/logging"
)

type contextsResponse struct {
	Current  string   `json:"current"`
	Contexts []string `json:"contexts"`
}

type namespaceItem struct {
	Name string `json:"name"`
}

type summaryResponse struct {
	Context   *string                       `json:"context"`
	Cluster   *string                       `json:"cluster"`
	Server    *string                       `json:"server"`
	Counts    map[string]int                `json:"counts"`
	Resources map[string][]resource.Summary `json:"resources"`
	Warnings  []string                      `json:"warnings"`
}

type applyRequest struct {
	YAML      string `json:"yaml"`
	Namespace string `json:"namespace"`
}

type renderRequest struct {
	Kind string        `json:"kind"`
	Form resource.Form `json:"form"`
}

type renderResponse struct {
	Manifest map[string]interface{} `json:"manifest"`
	YAML     string                 `json:"yaml"`
}

// summaryKinds fixes the keys and order of the summary sections.
var summaryKinds = []struct {
	key  string
	kind v1alpha1.Kind
}{
	{"workspaces", v1alpha1.WorkspaceKind},
	{"webApplications", v1alpha1.WebApplicationKind},
	{"stateStores", v1alpha1.StateStoreKind},
	{"eventStreams", v1alpha1.EventStreamKind},
}

func emptyResources() map[string][]resource.Summary {
	out := make(map[string][]resource.Summary, len(summaryKinds))
	for _, sk := range summaryKinds {
		out[sk.key] = []resource.Summary{}
	}
	return out
}

func countsOf(resources map[string][]resource.Summary) map[string]int {
	counts := make(map[string]int, len(resources))
	for k, v := range resources {
		counts[k] = len(v)
	}
	return counts
}

func (s *Server) handleContexts(w http.ResponseWriter, r *http.Request) {
	if s.mock {
		writeJSON(w, http.StatusOK, contextsResponse{Current: mockContext, Contexts: mockContexts})
		return
	}
	names, _, err := s.contexts.Kubeconfig().Contexts()
	if err != nil {
		writeError(w, err, map[string]any{"contexts": []string{}})
		return
	}
	writeJSON(w, http.StatusOK, contextsResponse{Current: s.contexts.Context(), Contexts: names})
}

func (s *Server) handleSetContext(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Context string `json:"context"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err, nil)
		return
	}
	name := strings.TrimSpace(body.Context)
	if name == "" {
		writeError(w, platform.InvalidInput("Missing context name."), nil)
		return
	}
	if s.mock {
		writeJSON(w, http.StatusOK, map[string]string{"current": name})
		return
	}
	ok, err := s.contexts.Kubeconfig().HasContext(name)
	if err != nil {
		writeError(w, err, nil)
		return
	}
	if !ok {
		writeError(w, platform.InvalidInput("context %s not found in kubeconfig", name), nil)
		return
	}
	s.contexts.SetContext(name)
	logging.Info("Dashboard", "Active context set to %s", name)
	writeJSON(w, http.StatusOK, map[string]string{"current": name})
}

func (s *Server) handleNamespaces(w http.ResponseWriter, r *http.Request) {
	names := mockNamespaces
	if !s.mock {
		var err error
		names, err = s.svc.ListNamespaces(r.Context())
		if err != nil {
			writeError(w, err, map[string]any{"items": []namespaceItem{}})
			return
		}
	}
	items := make([]namespaceItem, 0, len(names))
	for _, n := range names {
		items = append(items, namespaceItem{Name: n})
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if s.mock {
		writeJSON(w, http.StatusOK, mockSummary())
		return
	}

	resp := summaryResponse{Resources: emptyResources(), Warnings: []string{}}
	info, err := s.contexts.Kubeconfig().Describe(s.contexts.Context())
	if err != nil {
		resp.Warnings = append(resp.Warnings, "kubeconfig: "+platform.Classify(err).Message)
		resp.Counts = countsOf(resp.Resources)
		writeJSON(w, http.StatusOK, resp)
		return
	}
	resp.Context = strPtr(info.Context)
	resp.Cluster = strPtr(info.Cluster)
	resp.Server = strPtr(info.Server)

	type listing struct {
		items []unstructured.Unstructured
		err   error
	}
	results := make([]listing, len(summaryKinds))
	var g errgroup.Group
	for i, sk := range summaryKinds {
		g.Go(func() error {
			items, err := s.svc.ListKind(r.Context(), sk.kind, "")
			results[i] = listing{items: items, err: err}
			return nil
		})
	}
	_ = g.Wait()

	for i, sk := range summaryKinds {
		res := results[i]
		if res.err == nil {
			resp.Resources[sk.key] = resource.Summarize(res.items)
			continue
		}
		resp.Warnings = append(resp.Warnings, sk.key+": "+platform.Classify(res.err).Message)
		if sk.kind != v1alpha1.WorkspaceKind {
			continue
		}
		// Clusters without the Workspace CRD still have namespaces.
		names, err := s.svc.ListNamespaces(r.Context())
		if err != nil {
			resp.Warnings = append(resp.Warnings, "namespaces: "+platform.Classify(err).Message)
			continue
		}
		fallback := make([]resource.Summary, 0, len(names))
		for _, n := range names {
			fallback = append(fallback, resource.Summary{Name: n})
		}
		resp.Resources[sk.key] = fallback
	}
	resp.Counts = countsOf(resp.Resources)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleResources(w http.ResponseWriter, r *http.Request) {
	alias := strings.ToLower(mux.Vars(r)["kind"])
	kind, err := v1alpha1.LookupKind(alias)
	if err != nil {
		writeError(w, platform.InvalidInput("Unknown kind: %s", alias), nil)
		return
	}
	if s.mock {
		writeJSON(w, http.StatusOK, map[string]any{"items": []resource.Summary{}})
		return
	}
	items, err := s.svc.ListKind(r.Context(), kind, r.URL.Query().Get("namespace"))
	if err != nil {
		writeError(w, err, map[string]any{"items": []resource.Summary{}})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": resource.Summarize(items)})
}

func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	var body applyRequest
	if err := decodeBody(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": []string{platform.Classify(err).Message}})
		return
	}
	report, err := s.svc.ApplyManifests(r.Context(), body.YAML, body.Namespace, s.mock)
	if err != nil {
		writeJSON(w, statusFor(err), map[string]any{"applied": []platform.AppliedObject{}, "errors": []string{platform.Classify(err).Message}})
		return
	}
	s.metrics.applyDocuments.WithLabelValues("applied").Add(float64(len(report.Applied)))
	s.metrics.applyDocuments.WithLabelValues("failed").Add(float64(len(report.Errors)))
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var body renderRequest
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err, nil)
		return
	}
	kind, err := v1alpha1.LookupKind(body.Kind)
	if err != nil {
		writeError(w, platform.InvalidInput("Unknown kind: %s", body.Kind), nil)
		return
	}
	obj, err := resource.FormManifest(kind, body.Form)
	if err != nil {
		writeError(w, err, nil)
		return
	}
	out, err := yaml.Marshal(obj.Object)
	if err != nil {
		writeError(w, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, renderResponse{Manifest: obj.Object, YAML: string(out)})
}
