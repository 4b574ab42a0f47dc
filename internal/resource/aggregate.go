package resource

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
)

// ErrNotFound can be wrapped by operations that detect absence themselves.
var ErrNotFound = errors.New("not found")

// IsNotFound reports whether err means the target did not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || apierrors.IsNotFound(err)
}

// Operation is one named unit of work inside an aggregation.
type Operation struct {
	Name string
	Run  func(ctx context.Context) error
}

// ItemError records the failure of a single operation.
type ItemError struct {
	Item    string `json:"item"`
	Message string `json:"message"`
}

// Result folds the outcomes of a set of operations.
type Result struct {
	Succeeded int         `json:"succeeded"`
	NotFound  int         `json:"notFound"`
	Errors    []ItemError `json:"errors"`
}

// Verdict is the caller-facing reading of a Result.
type Verdict int

const (
	// VerdictSucceeded means at least one operation succeeded and none failed.
	VerdictSucceeded Verdict = iota
	// VerdictNotFound means nothing succeeded and nothing failed.
	VerdictNotFound
	// VerdictFailed means at least one operation failed.
	VerdictFailed
)

func (v Verdict) String() string {
	switch v {
	case VerdictSucceeded:
		return "succeeded"
	case VerdictNotFound:
		return "not-found"
	case VerdictFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Aggregate runs every operation in order, never stopping early, and
// classifies each outcome as succeeded, not-found or error.
func Aggregate(ctx context.Context, ops ...Operation) Result {
	res := Result{Errors: []ItemError{}}
	for _, op := range ops {
		err := op.Run(ctx)
		switch {
		case err == nil:
			res.Succeeded++
		case IsNotFound(err):
			res.NotFound++
		default:
			res.Errors = append(res.Errors, ItemError{Item: op.Name, Message: err.Error()})
		}
	}
	return res
}

// Verdict applies the interpretation policy: any error fails the whole
// result, otherwise a single success is enough.
func (r Result) Verdict() Verdict {
	switch {
	case len(r.Errors) > 0:
		return VerdictFailed
	case r.Succeeded > 0:
		return VerdictSucceeded
	default:
		return VerdictNotFound
	}
}

// Err converts the verdict into an error for subject ("infra orders").
// A not-found verdict wraps ErrNotFound; a failure returns *AggregateError.
func (r Result) Err(subject string) error {
	switch r.Verdict() {
	case VerdictSucceeded:
		return nil
	case VerdictNotFound:
		return fmt.Errorf("%s: %w", subject, ErrNotFound)
	default:
		return &AggregateError{Subject: subject, Result: r}
	}
}

// AggregateError reports every failed item of a Result together with what
// did succeed.
type AggregateError struct {
	Subject string
	Result  Result
}

func (e *AggregateError) Error() string {
	parts := make([]string, 0, len(e.Result.Errors))
	for _, ie := range e.Result.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", ie.Item, ie.Message))
	}
	return fmt.Sprintf("%s failed (%d succeeded, %d not found): %s",
		e.Subject, e.Result.Succeeded, e.Result.NotFound, strings.Join(parts, "; "))
}
