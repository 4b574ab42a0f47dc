// Package v1alpha1 contains API Schema definitions for the shoulders v1alpha1 API group.
//
// The platform exposes four custom resources which are reconciled by the
// platform's composition layer into concrete infrastructure. This package only
// describes their shape; it is used to build manifests and to decode list
// results for display.
//
// # API Group: shoulders.io/v1alpha1
//
// ## Workspace
//
// Workspace is cluster scoped and represents a team's namespace. Its spec is empty.
//
// ## WebApplication
//
// WebApplication runs a container image behind an ingress host.
//
//	apiVersion: shoulders.io/v1alpha1
//	kind: WebApplication
//	metadata:
//	  name: storefront
//	  namespace: team-a
//	  annotations:
//	    shoulders.io/port: "8080"
//	spec:
//	  image: nginx
//	  tag: "1.27"
//	  replicas: 2
//	  host: storefront.local
//
// ## StateStore
//
// StateStore requests a PostgreSQL database and/or a Redis cache.
//
// ## EventStream
//
// EventStream requests a set of Kafka topics.
//
// +kubebuilder:object:generate=true
// +groupName=shoulders.io
package v1alpha1
