package platform

import (
	"errors"
	"fmt"

	apierrors "k8s.io/apimachinery/pkg/api/errors"

	"shoulders/internal/kube"
	"shoulders/internal/observability"
	"shoulders/internal/resource"
	"shoulders/internal/validate"
)

// ErrorKind categorises failures for the translation layers.
type ErrorKind string

const (
	KindInvalidInput ErrorKind = "invalid_input"
	KindNotFound     ErrorKind = "not_found"
	KindConflict     ErrorKind = "conflict"
	KindExternal     ErrorKind = "external"
	KindEnvironment  ErrorKind = "environment"
)

// Hints attached to classified errors.
const (
	HintTunnel     = "ensure kubectl is installed and the cluster is reachable"
	HintKubeconfig = "check --kubeconfig/--context or run 'shoulders cluster use <name>'"
	HintConflict   = "the resource was modified concurrently; retry the command"
	HintWorkspace  = "run 'shoulders workspace list' to see available workspaces"
)

// Error is a categorised operation failure.
type Error struct {
	Kind    ErrorKind
	Message string
	Hint    string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// InvalidInput builds an invalid_input error.
func InvalidInput(format string, args ...any) *Error {
	return newError(KindInvalidInput, nil, format, args...)
}

// NotFound builds a not_found error wrapping resource.ErrNotFound.
func NotFound(format string, args ...any) *Error {
	return newError(KindNotFound, resource.ErrNotFound, format, args...)
}

// IsKind reports whether err classifies as kind.
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && Classify(err).Kind == kind
}

// Classify maps any error onto an *Error. Already classified errors are
// returned unchanged.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}
	var pe *Error
	if errors.As(err, &pe) {
		return pe
	}

	var tunnelErr *observability.TunnelError
	var configErr *kube.ConfigError
	var httpErr *observability.HTTPError
	var aggErr *resource.AggregateError

	switch {
	case validate.IsInvalid(err):
		return &Error{Kind: KindInvalidInput, Message: err.Error(), Err: err}
	case errors.Is(err, kube.ErrContextNotFound):
		return &Error{Kind: KindInvalidInput, Message: err.Error(), Hint: "run 'shoulders cluster list' to see available clusters", Err: err}
	case errors.As(err, &tunnelErr):
		return &Error{Kind: KindEnvironment, Message: err.Error(), Hint: HintTunnel, Err: err}
	case errors.As(err, &configErr):
		return &Error{Kind: KindEnvironment, Message: err.Error(), Hint: HintKubeconfig, Err: err}
	case errors.As(err, &httpErr):
		return &Error{Kind: KindExternal, Message: err.Error(), Err: err}
	case errors.As(err, &aggErr):
		return &Error{Kind: KindExternal, Message: err.Error(), Err: err}
	case resource.IsNotFound(err):
		return &Error{Kind: KindNotFound, Message: err.Error(), Err: err}
	case apierrors.IsAlreadyExists(err), apierrors.IsConflict(err):
		return &Error{Kind: KindConflict, Message: err.Error(), Hint: HintConflict, Err: err}
	case apierrors.IsBadRequest(err), apierrors.IsInvalid(err):
		return &Error{Kind: KindInvalidInput, Message: err.Error(), Err: err}
	case apierrors.IsUnauthorized(err), apierrors.IsForbidden(err):
		return &Error{Kind: KindEnvironment, Message: err.Error(), Hint: HintKubeconfig, Err: err}
	default:
		return &Error{Kind: KindExternal, Message: err.Error(), Err: err}
	}
}

// notFoundFor rewrites an API not-found into a message naming the object.
func notFoundFor(err error, ref resource.Ref, label string) error {
	if !resource.IsNotFound(err) {
		return err
	}
	if ref.Namespace != "" {
		return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s %s does not exist in namespace %s", label, ref.Name, ref.Namespace), Err: err}
	}
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s %s does not exist", label, ref.Name), Err: err}
}
