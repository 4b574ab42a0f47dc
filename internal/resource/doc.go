// Package resource implements the cluster write path shared by every surface
// of shoulders.
//
// Apply makes a custom resource exist with a desired spec whether or not it
// already exists. Aggregate runs several independent operations to completion
// and folds their outcomes into one Result, so one failing item never hides
// the others.
//
// Both work against the Store interface. DynamicStore backs it with the
// client-go dynamic client; tests use in-memory implementations.
package resource
