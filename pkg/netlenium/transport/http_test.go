package transport

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTP_Defaults(t *testing.T) {
	tr := NewHTTP()
	assert.Equal(t, DefaultTimeout, tr.httpClient.Timeout)
	assert.Equal(t, http.MethodGet, tr.Method())
	assert.Equal(t, DefaultUserAgent, tr.userAgent)
	assert.Equal(t, int64(DefaultMaxBodySize), tr.maxBodySize)
}

func TestNewHTTP_Options(t *testing.T) {
	tr := NewHTTP(WithTimeout(5*time.Second), WithMethod("post"), WithUserAgent("custom/1"))
	assert.Equal(t, 5*time.Second, tr.httpClient.Timeout)
	assert.Equal(t, http.MethodPost, tr.Method())
	assert.Equal(t, "custom/1", tr.userAgent)
}

func TestCommandURL(t *testing.T) {
	tests := []struct {
		endpoint, command, want string
	}{
		{"http://localhost:6410", "admin/active_sessions", "http://localhost:6410/admin/active_sessions"},
		{"http://localhost:6410/", "admin/active_sessions", "http://localhost:6410/admin/active_sessions"},
		{"http://localhost:6410", "/admin/active_sessions", "http://localhost:6410/admin/active_sessions"},
		{"http://host/base/", "/x", "http://host/base/x"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, CommandURL(tt.endpoint, tt.command))
		})
	}
}

func TestHTTP_Do_GetSendsQuery(t *testing.T) {
	t.Parallel()

	var gotPath, gotMethod, gotRequestID, gotAccept string
	var gotQuery url.Values
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		gotQuery = r.URL.Query()
		gotRequestID = r.Header.Get(RequestIDHeader)
		gotAccept = r.Header.Get("Accept")
		_, _ = w.Write([]byte(`{"Sessions":[]}`))
	}))
	defer ts.Close()

	body, err := NewHTTP().Do(context.Background(), ts.URL, "admin/active_sessions", map[string]string{"auth": "s3cr3t"})
	require.NoError(t, err)

	assert.Equal(t, `{"Sessions":[]}`, body)
	assert.Equal(t, "/admin/active_sessions", gotPath)
	assert.Equal(t, http.MethodGet, gotMethod)
	assert.Equal(t, "s3cr3t", gotQuery.Get("auth"))
	assert.Equal(t, "application/json", gotAccept)
	_, err = uuid.Parse(gotRequestID)
	assert.NoError(t, err, "request id should be a UUID")
}

func TestHTTP_Do_PostSendsForm(t *testing.T) {
	t.Parallel()

	var gotMethod, gotContentType string
	var gotForm url.Values
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		raw, _ := io.ReadAll(r.Body)
		gotForm, _ = url.ParseQuery(string(raw))
		_, _ = w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	tr := NewHTTP(WithMethod(http.MethodPost))
	_, err := tr.Do(context.Background(), ts.URL, "session/create", map[string]string{"driver": "chrome", "auth": "k"})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/x-www-form-urlencoded", gotContentType)
	assert.Equal(t, "chrome", gotForm.Get("driver"))
	assert.Equal(t, "k", gotForm.Get("auth"))
}

func TestHTTP_Do_ErrorStatusCarriesBody(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"ErrorCode":108,"Message":"gone"}`))
	}))
	defer ts.Close()

	body, err := NewHTTP().Do(context.Background(), ts.URL, "admin/active_sessions", nil)
	require.Error(t, err)
	assert.Empty(t, body)

	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, http.StatusNotFound, reqErr.StatusCode)
	assert.Equal(t, "admin/active_sessions", reqErr.Command)
	assert.Equal(t, `{"ErrorCode":108,"Message":"gone"}`, reqErr.Body)
	assert.Contains(t, reqErr.Error(), "404")
}

func TestHTTP_Do_ResponseTooLarge(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(r.URL.Query().Get("body")))
	}))
	defer ts.Close()

	tr := NewHTTP(WithMaxBodySize(8))

	body, err := tr.Do(context.Background(), ts.URL, "echo", map[string]string{"body": "12345678"})
	require.NoError(t, err)
	assert.Equal(t, "12345678", body)

	body, err = tr.Do(context.Background(), ts.URL, "echo", map[string]string{"body": "123456789"})
	require.Error(t, err)
	assert.Empty(t, body)
	assert.ErrorIs(t, err, ErrResponseTooLarge)
	assert.Contains(t, err.Error(), "more than 8 bytes")
}

func TestHTTP_Do_ConnectionFailure(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := ts.URL
	ts.Close()

	_, err := NewHTTP(WithTimeout(2*time.Second)).Do(context.Background(), endpoint, "admin/active_sessions", nil)
	require.Error(t, err)

	var reqErr *RequestError
	assert.False(t, errors.As(err, &reqErr), "network failures carry no body")
	assert.Contains(t, err.Error(), "cannot connect to netlenium")
}

func TestHTTP_Do_ContextCanceled(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewHTTP().Do(ctx, ts.URL, "admin/active_sessions", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestHTTP_Do_UnsupportedMethod(t *testing.T) {
	_, err := NewHTTP(WithMethod("PATCH")).Do(context.Background(), "http://localhost:6410", "x", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported method")
}
