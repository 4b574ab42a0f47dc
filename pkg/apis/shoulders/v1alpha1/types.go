package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// PortAnnotation records the container port of a WebApplication.
const PortAnnotation = "shoulders.io/port"

// Workspace is a team's tenancy unit.
// +kubebuilder:object:root=true
// +kubebuilder:resource:scope=Cluster
type Workspace struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec WorkspaceSpec `json:"spec"`
}

// WorkspaceSpec is intentionally empty.
type WorkspaceSpec struct{}

// WebApplicationSpec defines the desired state of WebApplication
type WebApplicationSpec struct {
	// Image is the container image without tag.
	// +kubebuilder:validation:Required
	Image string `json:"image"`

	// Tag is the image tag.
	// +kubebuilder:default=latest
	Tag string `json:"tag"`

	// +kubebuilder:validation:Minimum=1
	Replicas int32 `json:"replicas"`

	// Host is the ingress hostname the application is served on.
	Host string `json:"host"`
}

// WebApplication is a stateless HTTP workload.
// +kubebuilder:object:root=true
// +kubebuilder:resource:scope=Namespaced
type WebApplication struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec WebApplicationSpec `json:"spec"`
}

// StateStoreSpec defines the desired state of StateStore.
// At least one of Postgresql or Redis should be enabled.
type StateStoreSpec struct {
	Postgresql *PostgresSpec `json:"postgresql,omitempty"`
	Redis      *RedisSpec    `json:"redis,omitempty"`
}

type PostgresSpec struct {
	Enabled *bool `json:"enabled,omitempty"`

	// Storage is a Kubernetes quantity, e.g. "1Gi".
	Storage string `json:"storage,omitempty"`

	Databases []string `json:"databases,omitempty"`
}

type RedisSpec struct {
	Enabled  *bool  `json:"enabled,omitempty"`
	Replicas *int32 `json:"replicas,omitempty"`
}

// StateStore is a database and/or cache bundle.
// +kubebuilder:object:root=true
// +kubebuilder:resource:scope=Namespaced
type StateStore struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec StateStoreSpec `json:"spec"`
}

type EventStreamSpec struct {
	Topics []EventTopic `json:"topics,omitempty"`
}

// EventTopic describes a single Kafka topic.
type EventTopic struct {
	Name       string            `json:"name"`
	Partitions *int32            `json:"partitions,omitempty"`
	Replicas   *int32            `json:"replicas,omitempty"`
	Config     map[string]string `json:"config,omitempty"`
}

// EventStream is a set of Kafka topics.
// +kubebuilder:object:root=true
// +kubebuilder:resource:scope=Namespaced
type EventStream struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec EventStreamSpec `json:"spec"`
}
