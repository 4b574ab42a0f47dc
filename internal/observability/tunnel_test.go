package observability

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct{ closed int }

func (s *fakeSession) Close() error {
	s.closed++
	return nil
}

type fakeForwarder struct {
	session *fakeSession
	block   bool
	target  Target
	port    int
}

func (f *fakeForwarder) Forward(ctx context.Context, target Target, localPort int) (Session, error) {
	f.target, f.port = target, localPort
	if f.block {
		<-ctx.Done()
		return nil, &TunnelError{Target: target, Reason: "port-forward timed out", Err: ctx.Err()}
	}
	return f.session, nil
}

func TestWithTunnel_ClosesAfterSuccessAndFailure(t *testing.T) {
	target := Target{Namespace: "observability", Service: "loki", RemotePort: 3100}
	fwd := &fakeForwarder{session: &fakeSession{}}

	base, err := WithTunnel(context.Background(), fwd, target, time.Second, func(_ context.Context, baseURL string) (string, error) {
		return baseURL, nil
	})
	require.NoError(t, err)
	assert.Equal(t, target, fwd.target)
	assert.Positive(t, fwd.port)
	assert.Equal(t, "http://127.0.0.1:"+strconv.Itoa(fwd.port), base)
	assert.Equal(t, 1, fwd.session.closed)

	_, err = WithTunnel(context.Background(), fwd, target, time.Second, func(context.Context, string) (int, error) {
		return 0, errors.New("query failed")
	})
	require.EqualError(t, err, "query failed")
	assert.Equal(t, 2, fwd.session.closed)
}

func TestWithTunnel_Timeout(t *testing.T) {
	fwd := &fakeForwarder{block: true}
	called := false

	start := time.Now()
	_, err := WithTunnel(context.Background(), fwd, Target{Namespace: "o", Service: "tempo", RemotePort: 3100}, 50*time.Millisecond,
		func(context.Context, string) (any, error) {
			called = true
			return nil, nil
		})

	var tErr *TunnelError
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, "port-forward timed out", tErr.Reason)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, called)
	assert.Less(t, time.Since(start), 2*time.Second)
}
