package mcp_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"stackit.dev/gitkit/internal/config"
	"stackit.dev/gitkit/internal/mcp"
)

type fakeTransport struct {
	name         string
	disconnected atomic.Bool
}

func (f *fakeTransport) Connect(context.Context) (bool, error) { return true, nil }
func (f *fakeTransport) Send(context.Context, string, any) (json.RawMessage, error) {
	return json.RawMessage(`"pong"`), nil
}
func (f *fakeTransport) Disconnect()       { f.disconnected.Store(true) }
func (f *fakeTransport) IsConnected() bool { return !f.disconnected.Load() }
func (f *fakeTransport) Name() string      { return f.name }
func (f *fakeTransport) URL() string       { return "fake://" + f.name }

func TestRegistry(t *testing.T) {
	t.Run("add and lookup", func(t *testing.T) {
		r := mcp.NewRegistry()
		ft := &fakeTransport{name: "a"}
		r.Add("a", ft)

		got, err := r.Transport("a")
		require.NoError(t, err)
		require.Same(t, ft, got)
		require.True(t, r.Has("a"))
		require.False(t, r.Has("b"))
	})

	t.Run("unknown name suggests close matches", func(t *testing.T) {
		r := mcp.NewRegistry()
		r.Add("context", &fakeTransport{name: "context"})
		r.Add("contacts", &fakeTransport{name: "contacts"})
		r.Add("zzz", &fakeTransport{name: "zzz"})

		_, err := r.Transport("cntxt")
		require.ErrorIs(t, err, mcp.ErrNotRegistered)

		var nr *mcp.NotRegisteredError
		require.True(t, errors.As(err, &nr))
		require.Equal(t, "cntxt", nr.Name)
		require.Contains(t, nr.Suggestions, "context")
		require.NotContains(t, nr.Suggestions, "zzz")
		require.Contains(t, err.Error(), "MCP transport [cntxt] is not registered.")
		require.Contains(t, err.Error(), "[context]")
	})

	t.Run("no suggestions", func(t *testing.T) {
		_, err := mcp.NewRegistry().Transport("x")
		require.EqualError(t, err, "MCP transport [x] is not registered.")
	})

	t.Run("factory runs once under concurrency", func(t *testing.T) {
		r := mcp.NewRegistry()
		var calls atomic.Int32
		r.Extend("lazy", func() (mcp.Transport, error) {
			calls.Add(1)
			return &fakeTransport{name: "lazy"}, nil
		})
		require.Equal(t, int32(0), calls.Load())

		const n = 16
		got := make([]mcp.Transport, n)
		var g errgroup.Group
		for i := 0; i < n; i++ {
			g.Go(func() error {
				tr, err := r.Transport("lazy")
				got[i] = tr
				return err
			})
		}
		require.NoError(t, g.Wait())
		require.Equal(t, int32(1), calls.Load())
		for _, tr := range got {
			require.Same(t, got[0], tr)
		}
	})

	t.Run("factory error is memoized", func(t *testing.T) {
		r := mcp.NewRegistry()
		var calls atomic.Int32
		boom := errors.New("boom")
		r.Extend("bad", func() (mcp.Transport, error) {
			calls.Add(1)
			return nil, boom
		})

		_, err := r.Transport("bad")
		require.ErrorIs(t, err, boom)
		_, err = r.Transport("bad")
		require.ErrorIs(t, err, boom)
		require.Equal(t, int32(1), calls.Load())
	})

	t.Run("remove and names", func(t *testing.T) {
		r := mcp.NewRegistry()
		b := &fakeTransport{name: "b"}
		r.Add("b", b)
		r.Add("a", &fakeTransport{name: "a"})
		r.Extend("c", func() (mcp.Transport, error) { return &fakeTransport{name: "c"}, nil })
		require.Equal(t, []string{"a", "b", "c"}, r.Names())

		r.Remove("b")
		require.True(t, b.disconnected.Load())
		require.Equal(t, []string{"a", "c"}, r.Names())
		r.Remove("missing")
	})

	t.Run("nil transport is an error", func(t *testing.T) {
		r := mcp.NewRegistry()
		r.Add("x", nil)
		r.Extend("y", func() (mcp.Transport, error) { return nil, nil })

		got, err := r.Transport("x")
		require.Nil(t, got)
		require.EqualError(t, err, "failed to create MCP transport [x]: no transport")

		got, err = r.Transport("y")
		require.Nil(t, got)
		require.EqualError(t, err, "failed to create MCP transport [y]: no transport")

		require.NotPanics(t, r.DisconnectAll)
		require.NotPanics(t, func() { r.Remove("x") })
		require.NotPanics(t, func() { r.Remove("y") })
		require.Empty(t, r.Names())
	})

	t.Run("disconnect all skips unbuilt factories", func(t *testing.T) {
		r := mcp.NewRegistry()
		a := &fakeTransport{name: "a"}
		r.Add("a", a)
		var calls atomic.Int32
		r.Extend("lazy", func() (mcp.Transport, error) {
			calls.Add(1)
			return &fakeTransport{name: "lazy"}, nil
		})

		r.DisconnectAll()
		require.True(t, a.disconnected.Load())
		require.Equal(t, int32(0), calls.Load())
	})
}

func TestNewRegistryFromConfig(t *testing.T) {
	srv := newRPCServer(t, func(map[string]any) (int, string) {
		return 200, `{"result":"ok"}`
	})

	cfg := config.Default()
	cfg.MCP.Transports["local"] = config.TransportConfig{
		Type:    config.TransportHTTP,
		URL:     srv.URL,
		Headers: map[string]string{"X-Env": "test"},
		Token:   "t0ken",
	}

	r := mcp.NewRegistryFromConfig(cfg)
	require.Equal(t, []string{"local"}, r.Names())

	tr, err := r.Transport("local")
	require.NoError(t, err)
	require.Equal(t, srv.URL, tr.URL())

	result, err := tr.Send(context.Background(), "ping", nil)
	require.NoError(t, err)
	require.Equal(t, `"ok"`, string(result))

	post := srv.Requests()[1]
	require.Equal(t, "test", post.Header.Get("X-Env"))
	require.Equal(t, "Bearer t0ken", post.Header.Get("Authorization"))

	require.Empty(t, mcp.NewRegistryFromConfig(nil).Names())
}
