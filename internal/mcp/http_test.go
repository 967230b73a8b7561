package mcp_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"stackit.dev/gitkit/internal/mcp"
)

type recordedRequest struct {
	Method string
	Header http.Header
	Body   map[string]any
}

// rpcServer answers GET with 200 and POST with the given handler
type rpcServer struct {
	*httptest.Server
	mu       sync.Mutex
	requests []recordedRequest
}

func newRPCServer(t *testing.T, handle func(req map[string]any) (int, string)) *rpcServer {
	t.Helper()
	s := &rpcServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{Method: r.Method, Header: r.Header.Clone()}
		if r.Method == http.MethodPost {
			data, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(data, &rec.Body)
		}
		s.mu.Lock()
		s.requests = append(s.requests, rec)
		s.mu.Unlock()

		if r.Method == http.MethodGet {
			w.WriteHeader(http.StatusOK)
			return
		}
		status, body := handle(rec.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *rpcServer) Requests() []recordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]recordedRequest(nil), s.requests...)
}

func TestHTTPTransportSend(t *testing.T) {
	ctx := context.Background()

	t.Run("posts a JSON-RPC envelope and returns the result", func(t *testing.T) {
		srv := newRPCServer(t, func(req map[string]any) (int, string) {
			return http.StatusOK, `{"jsonrpc":"2.0","id":"x","result":{"tools":["status"]}}`
		})
		tr := mcp.NewHTTPTransport("ctx", srv.URL, mcp.WithHeaders(map[string]string{"X-Client": "gitkit"}))

		result, err := tr.Send(ctx, "tools/list", map[string]any{"cursor": "abc"})
		require.NoError(t, err)
		require.JSONEq(t, `{"tools":["status"]}`, string(result))
		require.True(t, tr.IsConnected())

		reqs := srv.Requests()
		require.Len(t, reqs, 2)
		require.Equal(t, http.MethodGet, reqs[0].Method)
		require.Equal(t, http.MethodPost, reqs[1].Method)

		post := reqs[1]
		require.Equal(t, "application/json", post.Header.Get("Content-Type"))
		require.Equal(t, "application/json", post.Header.Get("Accept"))
		require.Equal(t, "gitkit", post.Header.Get("X-Client"))
		require.Equal(t, "2.0", post.Body["jsonrpc"])
		require.Equal(t, "tools/list", post.Body["method"])
		require.Equal(t, map[string]any{"cursor": "abc"}, post.Body["params"])
		id, _ := post.Body["id"].(string)
		require.True(t, strings.HasPrefix(id, "mcp_"), id)
	})

	t.Run("connects only once", func(t *testing.T) {
		srv := newRPCServer(t, func(map[string]any) (int, string) {
			return http.StatusOK, `{"result":1}`
		})
		tr := mcp.NewHTTPTransport("ctx", srv.URL)
		for i := 0; i < 3; i++ {
			_, err := tr.Send(ctx, "ping", nil)
			require.NoError(t, err)
		}

		gets := 0
		for _, r := range srv.Requests() {
			if r.Method == http.MethodGet {
				gets++
			}
		}
		require.Equal(t, 1, gets)
	})

	t.Run("nil params become an empty object", func(t *testing.T) {
		srv := newRPCServer(t, func(map[string]any) (int, string) {
			return http.StatusOK, `{"result":null}`
		})
		tr := mcp.NewHTTPTransport("ctx", srv.URL)

		result, err := tr.Send(ctx, "ping", nil)
		require.NoError(t, err)
		require.Equal(t, "null", string(result))
		require.Equal(t, map[string]any{}, srv.Requests()[1].Body["params"])
	})

	t.Run("missing result is null", func(t *testing.T) {
		srv := newRPCServer(t, func(map[string]any) (int, string) {
			return http.StatusOK, `{"jsonrpc":"2.0","id":"1"}`
		})
		result, err := mcp.NewHTTPTransport("ctx", srv.URL).Send(ctx, "ping", nil)
		require.NoError(t, err)
		require.Equal(t, "null", string(result))
	})

	t.Run("error member becomes RPCError", func(t *testing.T) {
		srv := newRPCServer(t, func(map[string]any) (int, string) {
			return http.StatusOK, `{"jsonrpc":"2.0","id":"1","error":{"code":-32601,"message":"Method not found","data":{"method":"nope"}}}`
		})
		_, err := mcp.NewHTTPTransport("ctx", srv.URL).Send(ctx, "nope", nil)

		var rpcErr *mcp.RPCError
		require.True(t, errors.As(err, &rpcErr))
		require.Equal(t, -32601, rpcErr.Code)
		require.Equal(t, "MCP server error: Method not found (code: -32601)", err.Error())
		require.JSONEq(t, `{"method":"nope"}`, string(rpcErr.Data))
	})

	t.Run("http error status", func(t *testing.T) {
		srv := newRPCServer(t, func(map[string]any) (int, string) {
			return http.StatusInternalServerError, `oops`
		})
		_, err := mcp.NewHTTPTransport("ctx", srv.URL).Send(ctx, "ping", nil)
		require.ErrorContains(t, err, "failed to send request to MCP server [ctx]")
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := newRPCServer(t, func(map[string]any) (int, string) {
			return http.StatusOK, `not json`
		})
		_, err := mcp.NewHTTPTransport("ctx", srv.URL).Send(ctx, "ping", nil)
		require.ErrorContains(t, err, "invalid response from MCP server [ctx]")
	})

	t.Run("bearer token", func(t *testing.T) {
		srv := newRPCServer(t, func(map[string]any) (int, string) {
			return http.StatusOK, `{"result":true}`
		})
		tr := mcp.NewHTTPTransport("ctx", srv.URL, mcp.WithBearerToken("s3cret"))
		_, err := tr.Send(ctx, "ping", nil)
		require.NoError(t, err)

		for _, r := range srv.Requests() {
			require.Equal(t, "Bearer s3cret", r.Header.Get("Authorization"))
		}
	})
}

func TestHTTPTransportConnect(t *testing.T) {
	ctx := context.Background()

	t.Run("unreachable server", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		tr := mcp.NewHTTPTransport("down", url, mcp.WithTimeout(2*time.Second))
		ok, err := tr.Connect(ctx)
		require.False(t, ok)
		require.ErrorContains(t, err, "failed to connect to MCP server [down] at "+url)
		require.False(t, tr.IsConnected())

		_, err = tr.Send(ctx, "ping", nil)
		require.ErrorContains(t, err, "failed to connect to MCP server [down]")
	})

	t.Run("non-200 success is not connected", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))
		t.Cleanup(srv.Close)

		ok, err := mcp.NewHTTPTransport("ctx", srv.URL).Connect(ctx)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("client error status fails", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		t.Cleanup(srv.Close)

		_, err := mcp.NewHTTPTransport("ctx", srv.URL).Connect(ctx)
		require.ErrorContains(t, err, "404")
	})

	t.Run("disconnect resets state", func(t *testing.T) {
		srv := newRPCServer(t, func(map[string]any) (int, string) { return http.StatusOK, `{}` })
		tr := mcp.NewHTTPTransport("ctx", srv.URL)

		ok, err := tr.Connect(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		tr.Disconnect()
		require.False(t, tr.IsConnected())
		require.Equal(t, "ctx", tr.Name())
		require.Equal(t, srv.URL, tr.URL())
	})

	t.Run("self-signed certificate", func(t *testing.T) {
		srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		t.Cleanup(srv.Close)

		_, err := mcp.NewHTTPTransport("tls", srv.URL).Connect(ctx)
		require.Error(t, err)

		ok, err := mcp.NewHTTPTransport("tls", srv.URL, mcp.WithVerify(false)).Connect(ctx)
		require.NoError(t, err)
		require.True(t, ok)
	})
}
