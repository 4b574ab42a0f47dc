package dashboard

import "shoulders/internal/resource"

const mockContext = "kind-shoulders"

var mockContexts = []string{"kind-shoulders", "prod-cluster"}

var mockNamespaces = []string{"team-a", "team-b"}

func mockSummary() summaryResponse {
	ref := func(name, namespace string) resource.Summary {
		return resource.Summary{Name: name, Namespace: namespace}
	}
	resources := map[string][]resource.Summary{
		"workspaces":      {ref("team-a", ""), ref("team-b", "")},
		"webApplications": {ref("web-a", "team-a"), ref("web-b", "team-a"), ref("web-c", "team-b")},
		"stateStores":     {ref("state-a", "team-a")},
		"eventStreams":    {ref("events-a", "team-a")},
	}
	return summaryResponse{
		Context:   strPtr(mockContext),
		Cluster:   strPtr(mockContext),
		Server:    strPtr("https://127.0.0.1:6443"),
		Counts:    countsOf(resources),
		Resources: resources,
		Warnings:  []string{},
	}
}

func strPtr(s string) *string {
	return &s
}
