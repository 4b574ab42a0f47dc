package observability

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/apimachinery/pkg/util/intstr"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/portforward"
	"k8s.io/client-go/transport/spdy"

	"shoulders/internal/kube"
)

// NativeForwarder forwards to a pod behind the service using the
// port-forward subresource, without an external binary.
type NativeForwarder struct {
	Provider kube.ClientProvider
}

// Forward resolves a running pod and the container port behind
// target.RemotePort, then starts forwarding.
func (f *NativeForwarder) Forward(ctx context.Context, target Target, localPort int) (Session, error) {
	clients, err := f.Provider.Clients()
	if err != nil {
		return nil, &TunnelError{Target: target, Reason: "no cluster credentials", Err: err}
	}
	if clients.REST == nil {
		return nil, &TunnelError{Target: target, Reason: "no REST configuration for port-forward"}
	}

	svc, err := clients.Core.CoreV1().Services(target.Namespace).Get(ctx, target.Service, metav1.GetOptions{})
	if err != nil {
		return nil, &TunnelError{Target: target, Reason: "service lookup failed", Err: err}
	}
	pod, err := findServicePod(ctx, clients.Core, svc)
	if err != nil {
		return nil, &TunnelError{Target: target, Reason: "no backing pod", Err: err}
	}
	podPort, err := resolveTargetPort(svc, pod, target.RemotePort)
	if err != nil {
		return nil, &TunnelError{Target: target, Reason: "target port unresolved", Err: err}
	}

	req := clients.Core.CoreV1().RESTClient().Post().
		Resource("pods").
		Namespace(pod.Namespace).
		Name(pod.Name).
		SubResource("portforward")

	transport, upgrader, err := spdy.RoundTripperFor(clients.REST)
	if err != nil {
		return nil, &TunnelError{Target: target, Reason: "spdy transport", Err: err}
	}
	dialer := spdy.NewDialer(upgrader, &http.Client{Transport: transport}, http.MethodPost, req.URL())

	stopCh := make(chan struct{})
	readyCh := make(chan struct{})
	ports := []string{fmt.Sprintf("%d:%d", localPort, podPort)}
	fw, err := portforward.NewOnAddresses(dialer, []string{"127.0.0.1"}, ports, stopCh, readyCh, io.Discard, io.Discard)
	if err != nil {
		return nil, &TunnelError{Target: target, Reason: "port-forward setup", Err: err}
	}

	s := &nativeSession{stop: stopCh, done: make(chan struct{})}
	go func() {
		s.err = fw.ForwardPorts()
		close(s.done)
	}()

	select {
	case <-readyCh:
		return s, nil
	case <-s.done:
		return nil, &TunnelError{Target: target, Reason: "port-forward stopped", Err: s.err}
	case <-ctx.Done():
		_ = s.Close()
		return nil, &TunnelError{Target: target, Reason: "port-forward timed out", Err: ctx.Err()}
	}
}

type nativeSession struct {
	stop chan struct{}
	done chan struct{}
	err  error
	once sync.Once
}

func (s *nativeSession) Close() error {
	s.once.Do(func() { close(s.stop) })
	<-s.done
	return nil
}

// findServicePod prefers a running pod matching the service selector.
func findServicePod(ctx context.Context, core kubernetes.Interface, svc *corev1.Service) (*corev1.Pod, error) {
	if len(svc.Spec.Selector) == 0 {
		return nil, errors.New("service has no selector")
	}
	selector := labels.SelectorFromSet(svc.Spec.Selector).String()
	pods, err := core.CoreV1().Pods(svc.Namespace).List(ctx, metav1.ListOptions{LabelSelector: selector})
	if err != nil {
		return nil, err
	}
	if len(pods.Items) == 0 {
		return nil, fmt.Errorf("no pods found for service selector %s", selectorString(svc.Spec.Selector))
	}
	for i := range pods.Items {
		if pods.Items[i].Status.Phase == corev1.PodRunning {
			return pods.Items[i].DeepCopy(), nil
		}
	}
	return pods.Items[0].DeepCopy(), nil
}

// resolveTargetPort maps a service port to the container port it targets.
func resolveTargetPort(svc *corev1.Service, pod *corev1.Pod, servicePort int) (int, error) {
	for _, port := range svc.Spec.Ports {
		if int(port.Port) != servicePort {
			continue
		}
		switch port.TargetPort.Type {
		case intstr.Int:
			if port.TargetPort.IntVal > 0 {
				return int(port.TargetPort.IntVal), nil
			}
		case intstr.String:
			if name := port.TargetPort.StrVal; name != "" {
				for _, c := range pod.Spec.Containers {
					for _, cp := range c.Ports {
						if cp.Name == name {
							return int(cp.ContainerPort), nil
						}
					}
				}
				return 0, fmt.Errorf("service %s/%s targetPort %q not found in pod %s", svc.Namespace, svc.Name, name, pod.Name)
			}
		}
		return servicePort, nil
	}
	return servicePort, nil
}

func selectorString(selector map[string]string) string {
	pairs := make([]string, 0, len(selector))
	for k, v := range selector {
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)
	return strings.Join(pairs, ",")
}
