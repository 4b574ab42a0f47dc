package observability

import (
	"context"
	"fmt"
	"time"

	"github.com/phayes/freeport"

	"shoulders/pkg/logging"
)

// Target is an in-cluster service port to forward.
type Target struct {
	Namespace  string
	Service    string
	RemotePort int
}

func (t Target) String() string {
	return fmt.Sprintf("svc/%s.%s:%d", t.Service, t.Namespace, t.RemotePort)
}

// Session is an established tunnel.
type Session interface {
	Close() error
}

// Forwarder opens tunnels. Forward must block until the tunnel accepts
// connections on 127.0.0.1:localPort, or return an error once ctx is done.
type Forwarder interface {
	Forward(ctx context.Context, target Target, localPort int) (Session, error)
}

// TunnelError reports a tunnel that could not be established.
type TunnelError struct {
	Target Target
	Reason string
	Err    error
}

func (e *TunnelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("port-forward to %s failed: %s: %v", e.Target, e.Reason, e.Err)
	}
	return fmt.Sprintf("port-forward to %s failed: %s", e.Target, e.Reason)
}

func (e *TunnelError) Unwrap() error {
	return e.Err
}

// Tunnel is a ready tunnel bound to a local port.
type Tunnel struct {
	LocalPort int
	session   Session
}

// BaseURL is the HTTP root of the forwarded service.
func (t *Tunnel) BaseURL() string {
	return fmt.Sprintf("http://127.0.0.1:%d", t.LocalPort)
}

// Close tears the tunnel down.
func (t *Tunnel) Close() error {
	return t.session.Close()
}

// Open establishes a tunnel, waiting at most timeout for readiness.
func Open(ctx context.Context, fwd Forwarder, target Target, timeout time.Duration) (*Tunnel, error) {
	port, err := freeport.GetFreePort()
	if err != nil {
		return nil, &TunnelError{Target: target, Reason: "no free local port", Err: err}
	}

	readyCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	logging.Debug("Tunnel", "Opening %s on local port %d", target, port)
	session, err := fwd.Forward(readyCtx, target, port)
	if err != nil {
		return nil, err
	}
	return &Tunnel{LocalPort: port, session: session}, nil
}

// WithTunnel runs fn against a freshly opened tunnel and closes it afterwards,
// whether fn succeeds or not.
func WithTunnel[T any](ctx context.Context, fwd Forwarder, target Target, timeout time.Duration, fn func(ctx context.Context, baseURL string) (T, error)) (T, error) {
	var zero T
	tunnel, err := Open(ctx, fwd, target, timeout)
	if err != nil {
		return zero, err
	}
	defer func() {
		if cerr := tunnel.Close(); cerr != nil {
			logging.Warn("Tunnel", "Closing %s: %v", target, cerr)
		}
	}()
	return fn(ctx, tunnel.BaseURL())
}
