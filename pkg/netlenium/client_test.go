package netlenium

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netlenium/netlenium-go/pkg/netlenium/transport"
)

// fakeTransport records every call and replays a canned answer.
type fakeTransport struct {
	mu    sync.Mutex
	calls []fakeCall

	body string
	err  error
}

type fakeCall struct {
	endpoint string
	command  string
	params   map[string]string
}

func (f *fakeTransport) Do(_ context.Context, endpoint, command string, params map[string]string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fakeCall{endpoint: endpoint, command: command, params: params})
	return f.body, f.err
}

func (f *fakeTransport) lastCall(t *testing.T) fakeCall {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.calls, "transport was not called")
	return f.calls[len(f.calls)-1]
}

func TestNew_Defaults(t *testing.T) {
	c := New("")
	assert.Equal(t, DefaultEndpoint, c.Endpoint())
	assert.False(t, c.HasSecret())
	assert.IsType(t, &transport.HTTP{}, c.transport)
}

func TestSend_InjectsSecret(t *testing.T) {
	ft := &fakeTransport{body: "ok"}
	c := New("http://netlenium:6410", WithSecret("s3cr3t"), WithTransport(ft))

	params := map[string]string{}
	body, err := c.Send(context.Background(), "admin/active_sessions", params)
	require.NoError(t, err)
	assert.Equal(t, "ok", body)

	call := ft.lastCall(t)
	assert.Equal(t, "http://netlenium:6410", call.endpoint)
	assert.Equal(t, "admin/active_sessions", call.command)
	assert.Equal(t, map[string]string{"auth": "s3cr3t"}, call.params)
	assert.Empty(t, params, "caller map must not be mutated")
}

func TestSend_NoSecret(t *testing.T) {
	ft := &fakeTransport{body: "ok"}
	c := New("", WithTransport(ft))

	_, err := c.Send(context.Background(), "admin/active_sessions", map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{}, ft.lastCall(t).params)
}

func TestSend_NilParams(t *testing.T) {
	ft := &fakeTransport{body: "ok"}
	c := New("", WithSecret("k"), WithTransport(ft))

	_, err := c.Send(context.Background(), "admin/active_sessions", nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"auth": "k"}, ft.lastCall(t).params)
}

func TestSend_KeepsCallerParams(t *testing.T) {
	ft := &fakeTransport{body: "ok"}
	c := New("", WithSecret("k"), WithTransport(ft))

	params := map[string]string{"session_id": "abc", "auth": "caller"}
	_, err := c.Send(context.Background(), "session/close", params)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"session_id": "abc", "auth": "k"}, ft.lastCall(t).params)
	assert.Equal(t, map[string]string{"session_id": "abc", "auth": "caller"}, params)
}

func TestSend_EmptyCommand(t *testing.T) {
	ft := &fakeTransport{}
	c := New("", WithTransport(ft))

	_, err := c.Send(context.Background(), "", nil)
	assert.ErrorIs(t, err, ErrEmptyCommand)
	assert.Empty(t, ft.calls)
}

func TestSend_PropagatesRequestError(t *testing.T) {
	reqErr := &transport.RequestError{StatusCode: 500, Command: "x", Body: `{"ErrorCode":108,"Message":"gone"}`}
	c := New("", WithTransport(&fakeTransport{err: reqErr}))

	_, err := c.Send(context.Background(), "x", nil)
	assert.Same(t, reqErr, err)
}

func TestInvoke_DecodesRequestError(t *testing.T) {
	reqErr := &transport.RequestError{StatusCode: 500, Command: "x", Body: `{"ErrorCode":109,"Message":"bad secret"}`}
	c := New("", WithTransport(&fakeTransport{err: reqErr}))

	body, err := c.Invoke(context.Background(), "x", nil)
	assert.Empty(t, body)

	var ne *Error
	require.True(t, errors.As(err, &ne))
	assert.Equal(t, KindUnauthorized, ne.Kind)
	assert.Equal(t, "bad secret", ne.Message)
}

func TestInvoke_OpaqueTransportError(t *testing.T) {
	netErr := errors.New("dial tcp: connection refused")
	c := New("", WithTransport(&fakeTransport{err: netErr}))

	_, err := c.Invoke(context.Background(), "x", nil)
	assert.Same(t, netErr, err)
	assert.Equal(t, Kind(0), KindOf(err))
}

func TestGetSessions_Success(t *testing.T) {
	ft := &fakeTransport{body: oneSession}
	c := New("", WithSecret("s3cr3t"), WithTransport(ft))

	sessions, err := c.GetSessions(context.Background())
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "4f1c2a", sessions[0].ID)

	call := ft.lastCall(t)
	assert.Equal(t, CommandActiveSessions, call.command)
	assert.Equal(t, map[string]string{"auth": "s3cr3t"}, call.params)
}

func TestGetSessions_Empty(t *testing.T) {
	c := New("", WithTransport(&fakeTransport{body: `{"Sessions":[]}`}))

	sessions, err := c.GetSessions(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, sessions)
	assert.Len(t, sessions, 0)
}

func TestGetSessions_Failure(t *testing.T) {
	reqErr := &transport.RequestError{StatusCode: 403, Command: CommandActiveSessions, Body: `{"ErrorCode":109,"Message":"Unauthorized request"}`}
	c := New("", WithTransport(&fakeTransport{err: reqErr}))

	sessions, err := c.GetSessions(context.Background())
	assert.Nil(t, sessions)
	assert.ErrorIs(t, err, KindUnauthorized)
}

func TestGetSessions_UnparsableErrorBody(t *testing.T) {
	reqErr := &transport.RequestError{StatusCode: 502, Command: CommandActiveSessions, Body: "<html>bad gateway</html>"}
	c := New("", WithTransport(&fakeTransport{err: reqErr}))

	_, err := c.GetSessions(context.Background())

	var ne *Error
	require.True(t, errors.As(err, &ne))
	assert.Equal(t, KindBodyParse, ne.Kind)
	assert.Equal(t, "<html>bad gateway</html>", ne.Raw)
}

func TestGetSessions_OverHTTP(t *testing.T) {
	t.Parallel()

	var gotPath, gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.URL.Query().Get("auth")
		w.Header().Set("Content-Type", "application/json")
		if gotAuth != "s3cr3t" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"ErrorCode":109,"Message":"Unauthorized request"}`))
			return
		}
		_, _ = w.Write([]byte(oneSession))
	}))
	defer ts.Close()

	sessions, err := New(ts.URL, WithSecret("s3cr3t")).GetSessions(context.Background())
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "/admin/active_sessions", gotPath)
	assert.Equal(t, "s3cr3t", gotAuth)

	_, err = New(ts.URL, WithSecret("wrong")).GetSessions(context.Background())
	assert.Equal(t, KindUnauthorized, KindOf(err))
}

func TestClient_ConcurrentUse(t *testing.T) {
	ft := &fakeTransport{body: `{"Sessions":[]}`}
	c := New("", WithSecret("k"), WithTransport(ft))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.GetSessions(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Len(t, ft.calls, 16)
	for _, call := range ft.calls {
		assert.Equal(t, map[string]string{"auth": "k"}, call.params)
	}
}
