package observability

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"shoulders/pkg/logging"
)

const (
	readyMarker    = "Forwarding from"
	terminateGrace = 2 * time.Second
)

// KubectlForwarder runs "<Bin> -n <ns> port-forward svc/<svc> <local>:<remote>".
type KubectlForwarder struct {
	Bin string
	// Kubeconfig and Context are passed through when set.
	Kubeconfig string
	Context    string
}

func (f *KubectlForwarder) args(target Target, localPort int) []string {
	var args []string
	if f.Kubeconfig != "" {
		args = append(args, "--kubeconfig", f.Kubeconfig)
	}
	if f.Context != "" {
		args = append(args, "--context", f.Context)
	}
	return append(args,
		"-n", target.Namespace,
		"port-forward", "svc/"+target.Service,
		fmt.Sprintf("%d:%d", localPort, target.RemotePort),
	)
}

// Forward starts kubectl and waits for its readiness line on stdout or stderr.
func (f *KubectlForwarder) Forward(ctx context.Context, target Target, localPort int) (Session, error) {
	bin := f.Bin
	if bin == "" {
		bin = "kubectl"
	}

	ready := make(chan struct{})
	var once sync.Once
	onLine := func(line string) {
		logging.Debug("Tunnel", "kubectl: %s", line)
		if strings.Contains(line, readyMarker) {
			once.Do(func() { close(ready) })
		}
	}

	cmd := exec.Command(bin, f.args(target, localPort)...)
	cmd.Stdout = &lineWriter{onLine: onLine}
	cmd.Stderr = &lineWriter{onLine: onLine}
	cmd.WaitDelay = terminateGrace

	if err := cmd.Start(); err != nil {
		return nil, &TunnelError{Target: target, Reason: "kubectl error", Err: err}
	}

	s := &kubectlSession{cmd: cmd, done: make(chan struct{})}
	go func() {
		s.err = cmd.Wait()
		close(s.done)
	}()

	select {
	case <-ready:
		return s, nil
	case <-s.done:
		return nil, &TunnelError{Target: target, Reason: "kubectl exited", Err: s.exitErr()}
	case <-ctx.Done():
		_ = s.Close()
		return nil, &TunnelError{Target: target, Reason: "port-forward timed out", Err: ctx.Err()}
	}
}

type kubectlSession struct {
	cmd  *exec.Cmd
	done chan struct{}
	err  error
}

func (s *kubectlSession) exitErr() error {
	if s.err != nil {
		return s.err
	}
	return fmt.Errorf("exit code %d", s.cmd.ProcessState.ExitCode())
}

// Close interrupts kubectl and kills it if it is still running after the
// grace period.
func (s *kubectlSession) Close() error {
	select {
	case <-s.done:
		return nil
	default:
	}

	if err := s.cmd.Process.Signal(os.Interrupt); err != nil {
		_ = s.cmd.Process.Kill()
	}
	select {
	case <-s.done:
		return nil
	case <-time.After(terminateGrace):
	}
	if err := s.cmd.Process.Kill(); err != nil {
		return err
	}
	<-s.done
	return nil
}

// lineWriter calls onLine for every complete line written to it.
type lineWriter struct {
	mu     sync.Mutex
	buf    []byte
	onLine func(string)
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		line := strings.TrimRight(string(w.buf[:i]), "\r")
		w.buf = w.buf[i+1:]
		w.onLine(line)
	}
	return len(p), nil
}
